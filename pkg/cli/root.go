package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Version is the current version of orgchart-layout.
const Version = "0.1.0"

// Config holds the global configuration for the orgchart-layout CLI.
type Config struct {
	ConfigDir string
	Debug     bool
}

// GlobalConfig is the shared configuration instance.
var GlobalConfig = &Config{}

// NewRootCommand creates the root cobra command for orgchart-layout.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgchart-layout",
		Short: "Computes organizational chart box geometry",
		Long: `orgchart-layout ingests a box tree (org chart, process diagram, any
parent/child hierarchy with optional per-node "assistant" attachments) and
runs the recursive two-pass layout algorithm against it, printing the
resulting box rectangles and connector segments as JSON. It never draws
anything itself — rendering is left to the caller.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			if GlobalConfig.Debug {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.orgchart-layout)")

	cmd.AddCommand(NewLayoutCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewCredentialCommand())

	return cmd
}

// initConfig initializes the orgchart-layout configuration directory.
func initConfig() error {
	if envDir := os.Getenv("ORGCHART_LAYOUT_CONFIG_DIR"); envDir != "" {
		GlobalConfig.ConfigDir = envDir
	} else if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		GlobalConfig.ConfigDir = filepath.Join(homeDir, ".orgchart-layout")
	}
	return os.MkdirAll(GlobalConfig.ConfigDir, 0755)
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string {
	if envDir := os.Getenv("ORGCHART_LAYOUT_CONFIG_DIR"); envDir != "" {
		return envDir
	}
	if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".orgchart-layout"
		}
		return filepath.Join(homeDir, ".orgchart-layout")
	}
	return GlobalConfig.ConfigDir
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
