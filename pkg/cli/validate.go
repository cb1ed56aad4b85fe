package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/boxlayout/pkg/ingestion"
	"github.com/dshills/boxlayout/pkg/layout"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a box document",
		Long: `Validate a box document against the schema orgchart-layout expects,
then check that it resolves into a single-rooted, duplicate-free tree.

Examples:
  orgchart-layout validate org.json
  orgchart-layout validate org.json --verbose`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			if err := ingestion.ValidateBoxDocument(data); err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "✗ Schema validation failed")
				if verbose {
					_, _ = fmt.Fprintf(cmd.OutOrStderr(), "  Error: %v\n", err)
				}
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Schema valid")

			container, err := ingestion.LoadBoxContainer(data)
			if err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "✗ Failed to build box tree")
				if verbose {
					_, _ = fmt.Fprintf(cmd.OutOrStderr(), "  Error: %v\n", err)
				}
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Box container parsed")

			if _, err := layout.BuildTree(container); err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "✗ Tree construction failed")
				if verbose {
					_, _ = fmt.Fprintf(cmd.OutOrStderr(), "  Error: %v\n", err)
				}
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Tree structure valid")

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n✓ %s is valid (%d boxes)\n", path, container.Len())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed validation errors")
	return cmd
}
