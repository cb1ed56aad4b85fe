package ingestion

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/boxlayout/pkg/layout"
)

// strategyYAML is the on-disk shape of one named LayoutStrategy entry. It
// carries only the tunable parameters a settings file can express; the
// concrete strategy implementation it maps to is chosen by Kind.
type strategyYAML struct {
	Kind                  string  `yaml:"kind"`
	ParentChildSpacing    float64 `yaml:"parent_child_spacing"`
	SiblingSpacing        float64 `yaml:"sibling_spacing"`
	ParentConnectorShield float64 `yaml:"parent_connector_shield"`
	ChildConnectorHook    float64 `yaml:"child_connector_hook"`
	ParentAlignment       string  `yaml:"parent_alignment"`
	MaxGroups             int     `yaml:"max_groups"`
}

// settingsYAML is the on-disk shape of a DiagramLayoutSettings document.
type settingsYAML struct {
	Strategies                 map[string]strategyYAML `yaml:"strategies"`
	DefaultStrategyID          string                   `yaml:"default_strategy_id"`
	DefaultAssistantStrategyID string                   `yaml:"default_assistant_strategy_id"`
	BranchSpacing              float64                  `yaml:"branch_spacing"`
	BoxVerticalMargin          float64                  `yaml:"box_vertical_margin"`
}

// LoadDiagramLayoutSettings reads a YAML settings file and builds a
// layout.DiagramLayoutSettings from it, instantiating each named strategy
// entry by its Kind. A file that declares no strategies registers none;
// an error is returned when default_strategy_id is unset.
func LoadDiagramLayoutSettings(path string) (*layout.DiagramLayoutSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingestion: failed to read settings file: %w", err)
	}

	var doc settingsYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ingestion: failed to parse settings YAML: %w", err)
	}

	settings := layout.NewDiagramLayoutSettings()
	settings.DefaultStrategyID = doc.DefaultStrategyID
	settings.DefaultAssistantStrategyID = doc.DefaultAssistantStrategyID
	settings.BranchSpacing = doc.BranchSpacing
	settings.BoxVerticalMargin = doc.BoxVerticalMargin

	for id, s := range doc.Strategies {
		strat, err := buildStrategy(id, s)
		if err != nil {
			return nil, err
		}
		settings.Register(strat)
	}

	if settings.DefaultStrategyID == "" {
		return nil, fmt.Errorf("ingestion: settings file must set default_strategy_id")
	}
	return settings, nil
}

func buildStrategy(id string, s strategyYAML) (layout.LayoutStrategy, error) {
	params := layout.StrategyParams{
		ParentChildSpacing:    s.ParentChildSpacing,
		SiblingSpacing:        s.SiblingSpacing,
		ParentConnectorShield: s.ParentConnectorShield,
		ChildConnectorHook:    s.ChildConnectorHook,
		ParentAlignment:       parseAlignment(s.ParentAlignment),
		MaxGroups:             s.MaxGroups,
	}

	switch s.Kind {
	case "single_column":
		return layout.NewSingleColumnStrategy(id, params), nil
	case "linear":
		return layout.NewLinearStrategy(id, params), nil
	case "multiline_fishbone":
		return layout.NewMultiLineFishboneStrategy(id, params), nil
	case "assistants_fishbone":
		return layout.NewAssistantsFishboneStrategy(id, params), nil
	default:
		return nil, fmt.Errorf("ingestion: unknown strategy kind %q for strategy %q", s.Kind, id)
	}
}

func parseAlignment(v string) layout.Alignment {
	switch v {
	case "left":
		return layout.AlignLeft
	case "right":
		return layout.AlignRight
	case "center":
		return layout.AlignCenter
	default:
		return layout.AlignCenter
	}
}
