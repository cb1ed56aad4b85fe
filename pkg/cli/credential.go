package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/boxlayout/pkg/storage"
	"github.com/dshills/boxlayout/pkg/validation"
)

// validateCredentialKey rejects a key containing anything but the
// identifier characters the keyring index format expects.
func validateCredentialKey(key string) error {
	if key == "" {
		return fmt.Errorf("credential key cannot be empty")
	}
	for _, ch := range key {
		if !validation.IsValidIdentifierChar(ch) {
			return fmt.Errorf("credential key %q contains invalid character %q (allowed: a-z A-Z 0-9 - _)", key, ch)
		}
	}
	return nil
}

const maxCredentialSize = 1 << 20 // 1MB limit for all credential inputs

// isOnlyWhitespace reports whether data is empty or contains only Unicode
// whitespace, without allocating strings.
func isOnlyWhitespace(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if !unicode.IsSpace(r) {
			return false
		}
		i += size
	}
	return true
}

// NewCredentialCommand creates the credential management command.
func NewCredentialCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage remote-source bearer tokens",
		Long: `Manage the bearer tokens RemoteDataSource authenticates with, stored
in your system's native credential store (Keychain on macOS, Credential
Manager on Windows, Secret Service on Linux) and never in plain text files.`,
	}

	cmd.AddCommand(newCredentialSetCommand())
	cmd.AddCommand(newCredentialListCommand())

	return cmd
}

// newCredentialSetCommand creates the credential set subcommand.
func newCredentialSetCommand() *cobra.Command {
	var (
		value    string
		useStdin bool
	)

	cmd := &cobra.Command{
		Use:   "set <key>",
		Short: "Set a bearer token credential",
		Long: `Store a bearer token under <key>, the same key a RemoteDataSource's
CredentialKey references.

Examples:
  # Interactive prompt (recommended for local use)
  orgchart-layout credential set hr-api

  # From stdin (recommended for automation/CI/CD)
  printf '%s' "$TOKEN" | orgchart-layout credential set hr-api --stdin

  # Inline (NOT recommended - visible in shell history)
  orgchart-layout credential set hr-api --value s3cr3t`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := validateCredentialKey(key); err != nil {
				return err
			}
			credStore := storage.NewKeyringCredentialStore()

			if _, err := credStore.Get(key); err == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Warning: credential '%s' already exists.\n", key)
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Overwrite? [y/N]: ")
				var response string
				_, _ = fmt.Fscanln(os.Stdin, &response)
				response = strings.ToLower(strings.TrimSpace(response))
				if response != "y" && response != "yes" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			var credValue string
			switch {
			case useStdin:
				limited := io.LimitReader(cmd.InOrStdin(), maxCredentialSize+1)
				inputBytes, err := io.ReadAll(limited)
				defer func() {
					for i := range inputBytes {
						inputBytes[i] = 0
					}
				}()
				if err != nil {
					return fmt.Errorf("failed to read from stdin: %w", err)
				}
				if len(inputBytes) > maxCredentialSize {
					return fmt.Errorf("credential value exceeds maximum size of %d bytes", maxCredentialSize)
				}
				trimmed := bytes.TrimRight(inputBytes, "\r\n")
				if len(trimmed) == 0 || isOnlyWhitespace(trimmed) {
					return fmt.Errorf("credential value cannot be empty or whitespace-only")
				}
				credValue = string(trimmed)
			case value != "":
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "Warning: --value exposes the credential in shell history.")
				if len(value) > maxCredentialSize {
					return fmt.Errorf("credential value exceeds maximum size of %d bytes", maxCredentialSize)
				}
				if strings.TrimSpace(value) == "" {
					return fmt.Errorf("credential value cannot be empty or whitespace-only")
				}
				credValue = value
			default:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Enter value for '%s': ", key)
				passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				defer func() {
					for i := range passwordBytes {
						passwordBytes[i] = 0
					}
				}()
				if err != nil {
					return fmt.Errorf("failed to read credential value: %w", err)
				}
				if len(passwordBytes) > maxCredentialSize {
					return fmt.Errorf("credential value exceeds maximum size of %d bytes", maxCredentialSize)
				}
				credValue = string(passwordBytes)
				if strings.TrimSpace(credValue) == "" {
					return fmt.Errorf("credential value cannot be empty or whitespace-only")
				}
			}

			if err := credStore.Set(key, credValue); err != nil {
				return fmt.Errorf("failed to store credential: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Credential '%s' set\n", key)
			return nil
		},
	}

	cmd.Flags().StringVarP(&value, "value", "v", "", "Credential value (optional - will prompt securely if omitted)")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "Read credential value from stdin")
	cmd.MarkFlagsMutuallyExclusive("stdin", "value")

	return cmd
}

// newCredentialListCommand creates the credential list subcommand.
func newCredentialListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured credential keys",
		Long:  "List every credential key currently set. Only key names are shown, never values.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			credStore := storage.NewKeyringCredentialStore()
			keys, err := credStore.List()
			if err != nil {
				return fmt.Errorf("failed to list credentials: %w", err)
			}

			if len(keys) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No credentials configured.")
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nAdd one with: orgchart-layout credential set <key>")
				return nil
			}

			sort.Strings(keys)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Configured credentials:")
			for _, k := range keys {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  - %s (set)\n", k)
			}
			return nil
		},
	}

	return cmd
}
