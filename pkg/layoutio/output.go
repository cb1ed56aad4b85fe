// Package layoutio flattens a positioned layout.TreeNode into the JSON
// geometry dump the orgchart-layout CLI prints to stdout.
package layoutio

import (
	"encoding/json"

	"github.com/dshills/boxlayout/pkg/layout"
)

// RectJSON is the wire shape of a laid-out rectangle.
type RectJSON struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EdgeJSON is one orthogonal connector segment.
type EdgeJSON struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// BoxGeometry is one node's resolved geometry, along with its laid-out
// descendants.
type BoxGeometry struct {
	ID             int            `json:"id"`
	DataID         string         `json:"data_id,omitempty"`
	IsAssistant    bool           `json:"is_assistant,omitempty"`
	Rect           RectJSON       `json:"rect"`
	BranchExterior RectJSON       `json:"branch_exterior"`
	Connector      []EdgeJSON     `json:"connector,omitempty"`
	Children       []*BoxGeometry `json:"children,omitempty"`
}

// BuildGeometry converts a positioned tree (post layout.LayoutAlgorithm.Apply)
// into its JSON-ready shape, omitting synthetic spacer boxes.
func BuildGeometry(node *layout.TreeNode) *BoxGeometry {
	g := &BoxGeometry{
		ID:             node.Box.ID,
		DataID:         node.Box.DataID,
		IsAssistant:    node.Box.IsAssistant,
		Rect:           rectJSON(node.Rect()),
		BranchExterior: rectJSON(node.State.BranchExterior),
	}
	if c := node.State.Connector; c != nil {
		g.Connector = make([]EdgeJSON, 0, len(c.Segments))
		for _, seg := range c.Segments {
			g.Connector = append(g.Connector, EdgeJSON{
				X1: seg.From.X, Y1: seg.From.Y,
				X2: seg.To.X, Y2: seg.To.Y,
			})
		}
	}

	if node.AssistantsRoot != nil {
		for _, a := range node.AssistantsRoot.RegularChildren() {
			g.Children = append(g.Children, BuildGeometry(a))
		}
	}
	for _, c := range node.RegularChildren() {
		g.Children = append(g.Children, BuildGeometry(c))
	}
	return g
}

func rectJSON(r layout.Rect) RectJSON {
	return RectJSON{X: r.TopLeft.X, Y: r.TopLeft.Y, Width: r.Size.Width, Height: r.Size.Height}
}

// MarshalIndent renders root's full geometry as indented JSON.
func MarshalIndent(root *layout.TreeNode) ([]byte, error) {
	return json.MarshalIndent(BuildGeometry(root), "", "  ")
}
