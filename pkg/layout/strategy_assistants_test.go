package layout

import "testing"

func assistantsSettings() *DiagramLayoutSettings {
	settings := NewDiagramLayoutSettings()
	params := StrategyParams{
		ParentChildSpacing:    20,
		SiblingSpacing:        10,
		ParentConnectorShield: 8,
		ChildConnectorHook:    4,
		ParentAlignment:       AlignLeft,
	}
	settings.Register(NewSingleColumnStrategy("single_column", params))
	settings.DefaultStrategyID = "single_column"
	settings.Register(NewAssistantsFishboneStrategy("assistants_fishbone", StrategyParams{
		ParentChildSpacing:    20,
		SiblingSpacing:        10,
		ParentConnectorShield: 8,
		ParentAlignment:       AlignCenter,
	}))
	settings.DefaultAssistantStrategyID = "assistants_fishbone"
	return settings
}

// TestAssistantsSplitIntoLeftRightPillars confirms n assistants split
// left/right with max_on_left = ceil(n/2): three assistants put two on the
// left and one on the right.
func TestAssistantsSplitIntoLeftRightPillars(t *testing.T) {
	c := NewBoxContainer()
	if err := c.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := c.Add(&Box{ID: 2 + i, ParentID: 1, IsAssistant: true, Size: Size{Width: 30, Height: 20}, AffectsLayout: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	algo := NewLayoutAlgorithm(assistantsSettings())
	root, err := algo.Apply(c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assistantsRoot := root.AssistantsRoot
	if assistantsRoot == nil {
		t.Fatalf("expected an assistants root")
	}
	assistants := assistantsRoot.RegularChildren()
	if len(assistants) != 3 {
		t.Fatalf("expected 3 assistants, got %d", len(assistants))
	}

	left, right := assistantSides(assistants)
	if len(left) != 2 || len(right) != 1 {
		t.Fatalf("expected 2 on the left and 1 on the right, got %d/%d", len(left), len(right))
	}
	if assistantsMaxOnLeft(3) != 2 {
		t.Fatalf("expected assistantsMaxOnLeft(3) == 2, got %d", assistantsMaxOnLeft(3))
	}
	for _, c := range left {
		if c.Rect().CenterH() >= right[0].Rect().CenterH() {
			t.Fatalf("expected left-pillar assistants to sit left of the right pillar")
		}
	}
}

// TestAssistantsLevelMatchesAssistantsRoot confirms an assistant's Level
// equals its assistants-root's Level, not owner.Level+1.
func TestAssistantsLevelMatchesAssistantsRoot(t *testing.T) {
	c := NewBoxContainer()
	if err := c.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(&Box{ID: 2, ParentID: 1, IsAssistant: true, Size: Size{Width: 30, Height: 20}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	algo := NewLayoutAlgorithm(assistantsSettings())
	root, err := algo.Apply(c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assistant := root.AssistantsRoot.RegularChildren()[0]
	if assistant.Level != root.AssistantsRoot.Level {
		t.Fatalf("expected assistant Level %d to equal assistants-root Level %d", assistant.Level, root.AssistantsRoot.Level)
	}
}

// TestAssistantsCarrierProtectorOnlyWhenOwnerChildless confirms the
// carrier-protector spacer is only injected when the owner has no regular
// children of its own.
func TestAssistantsCarrierProtectorOnlyWhenOwnerChildless(t *testing.T) {
	c := NewBoxContainer()
	if err := c.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(&Box{ID: 2, ParentID: 1, IsAssistant: true, Size: Size{Width: 30, Height: 20}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	algo := NewLayoutAlgorithm(assistantsSettings())
	root, err := algo.Apply(c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := root.AssistantsRoot.State.Spacers["carrier-protector"]; !ok {
		t.Fatalf("expected a carrier-protector spacer when the owner has no regular children")
	}

	c2 := NewBoxContainer()
	if err := c2.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c2.Add(&Box{ID: 2, ParentID: 1, Size: Size{Width: 80, Height: 30}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c2.Add(&Box{ID: 3, ParentID: 1, IsAssistant: true, Size: Size{Width: 30, Height: 20}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root2, err := algo.Apply(c2, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := root2.AssistantsRoot.State.Spacers["carrier-protector"]; ok {
		t.Fatalf("did not expect a carrier-protector spacer when the owner has regular children")
	}
	if _, ok := root2.AssistantsRoot.State.Spacers["carrier"]; !ok {
		t.Fatalf("expected the vertical-carrier spacer regardless of the protector")
	}
}

// TestAssistantsRejectsNonCenterAlignment confirms only Center alignment
// is accepted, matching the other fishbone-shaped strategies.
func TestAssistantsRejectsNonCenterAlignment(t *testing.T) {
	settings := assistantsSettings()
	settings.Strategies["assistants_fishbone"].(*AssistantsFishboneStrategy).params.ParentAlignment = AlignLeft

	c := NewBoxContainer()
	if err := c.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(&Box{ID: 2, ParentID: 1, IsAssistant: true, Size: Size{Width: 30, Height: 20}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	algo := NewLayoutAlgorithm(settings)
	if _, err := algo.Apply(c, nil, nil); err != ErrInvalidAlignment {
		t.Fatalf("expected ErrInvalidAlignment, got %v", err)
	}
}

// TestAssistantsRoutesAxisAlignedConnectors confirms every emitted segment
// is purely horizontal or vertical.
func TestAssistantsRoutesAxisAlignedConnectors(t *testing.T) {
	c := NewBoxContainer()
	if err := c.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := c.Add(&Box{ID: 2 + i, ParentID: 1, IsAssistant: true, Size: Size{Width: 30, Height: 20}, AffectsLayout: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	algo := NewLayoutAlgorithm(assistantsSettings())
	root, err := algo.Apply(c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.AssistantsRoot.State.Connector == nil || len(root.AssistantsRoot.State.Connector.Segments) == 0 {
		t.Fatalf("expected routed connector segments")
	}
	for _, seg := range root.AssistantsRoot.State.Connector.Segments {
		if !seg.IsAxisAligned() {
			t.Fatalf("connector segment %+v is not axis-aligned", seg)
		}
	}
}
