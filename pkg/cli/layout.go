package cli

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/boxlayout/pkg/ingestion"
	"github.com/dshills/boxlayout/pkg/layout"
	"github.com/dshills/boxlayout/pkg/layoutio"
	"github.com/dshills/boxlayout/pkg/storage"
)

// NewLayoutCommand creates the layout command.
func NewLayoutCommand() *cobra.Command {
	var (
		settingsPath string
		useCache     bool
		useSchema    bool
	)

	cmd := &cobra.Command{
		Use:   "layout <file>",
		Short: "Compute box geometry for a box document",
		Long: `Ingests a box document (JSON), loads layout settings (YAML, falling
back to built-in single-column and assistants defaults), runs the layout algorithm, and
prints the resulting box rectangles and connector segments as JSON.

Examples:
  orgchart-layout layout org.json
  orgchart-layout layout org.json --settings settings.yaml
  orgchart-layout layout org.json --cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			settings, err := loadSettings(settingsPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			if useSchema {
				if err := ingestion.ValidateBoxDocument(data); err != nil {
					return err
				}
			}

			var cache *storage.SnapshotCache
			var contentHash string
			if useCache {
				sum := sha256.Sum256(data)
				contentHash = hex.EncodeToString(sum[:])

				cache, err = storage.NewSnapshotCache()
				if err != nil {
					return fmt.Errorf("failed to open snapshot cache: %w", err)
				}
				defer func() { _ = cache.Close() }()

				if snap, ok, err := cache.Get(path, contentHash); err == nil && ok {
					data = []byte(snap.BoxJSON)
				}
			}

			container, err := ingestion.LoadBoxContainer(data)
			if err != nil {
				return err
			}

			if cache != nil {
				if err := cache.Put(storage.Snapshot{
					SourceID:    path,
					ContentHash: contentHash,
					BoxJSON:     string(data),
					FetchedAt:   time.Now().UTC(),
				}); err != nil {
					return fmt.Errorf("failed to store snapshot: %w", err)
				}
			}

			algo := layout.NewLayoutAlgorithm(settings)
			root, err := algo.Apply(container, nil, nil)
			if err != nil {
				return fmt.Errorf("layout failed: %w", err)
			}

			out, err := layoutio.MarshalIndent(root)
			if err != nil {
				return fmt.Errorf("failed to marshal geometry: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&settingsPath, "settings", "", "Path to a YAML DiagramLayoutSettings file")
	cmd.Flags().BoolVar(&useCache, "cache", false, "Accelerate re-runs via the local snapshot cache")
	cmd.Flags().BoolVar(&useSchema, "schema-validate", true, "Validate the box document against the schema before ingesting")

	return cmd
}

// loadSettings loads settings from path, or, when path is empty, minimal
// defaults: a single-column strategy plus an assistants fishbone.
func loadSettings(path string) (*layout.DiagramLayoutSettings, error) {
	if path != "" {
		return ingestion.LoadDiagramLayoutSettings(path)
	}

	settings := layout.NewDiagramLayoutSettings()
	params := layout.StrategyParams{
		ParentChildSpacing:    40,
		SiblingSpacing:        20,
		ParentConnectorShield: 12,
		ChildConnectorHook:    8,
		ParentAlignment:       layout.AlignLeft,
	}
	settings.Register(layout.NewSingleColumnStrategy("single_column", params))
	settings.DefaultStrategyID = "single_column"

	assistantParams := params
	assistantParams.ParentAlignment = layout.AlignCenter
	settings.Register(layout.NewAssistantsFishboneStrategy("assistants_fishbone", assistantParams))
	settings.DefaultAssistantStrategyID = "assistants_fishbone"

	return settings, nil
}
