package layout

import "testing"

func singleColumnSettings() *DiagramLayoutSettings {
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
	settings.Register(NewAssistantsFishboneStrategy("assistants_fishbone", params))
	settings.DefaultAssistantStrategyID = "assistants_fishbone"
	return settings
}

// TestApplyStacksSingleColumnChildrenVertically pins the geometry a
// root with two children produces under SingleColumnStrategy: each child sits
// ParentChildSpacing below the previous branch's bottom edge.
func TestApplyStacksSingleColumnChildrenVertically(t *testing.T) {
	c := NewBoxContainer()
	_ = c.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true})
	_ = c.Add(&Box{ID: 2, ParentID: 1, Size: Size{Width: 80, Height: 30}, AffectsLayout: true})
	_ = c.Add(&Box{ID: 3, ParentID: 1, Size: Size{Width: 80, Height: 30}, AffectsLayout: true})

	algo := NewLayoutAlgorithm(singleColumnSettings())
	root, err := algo.Apply(c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.Rect().TopLeft != (Point{X: 0, Y: 0}) {
		t.Fatalf("expected root at origin, got %+v", root.Rect().TopLeft)
	}

	children := root.RegularChildren()
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	first, second := children[0], children[1]

	if got, want := first.Rect().Top(), root.Rect().Bottom()+20; got != want {
		t.Fatalf("expected first child top %v, got %v", want, got)
	}
	if got, want := second.Rect().Top(), first.Rect().Bottom()+20; got != want {
		t.Fatalf("expected second child top %v, got %v", want, got)
	}
}

// TestApplyRoutesConnectorsAxisAligned checks the invariant that every
// emitted connector segment is purely horizontal or vertical.
func TestApplyRoutesConnectorsAxisAligned(t *testing.T) {
	c := NewBoxContainer()
	_ = c.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true})
	_ = c.Add(&Box{ID: 2, ParentID: 1, Size: Size{Width: 80, Height: 30}, AffectsLayout: true})
	_ = c.Add(&Box{ID: 3, ParentID: 1, Size: Size{Width: 80, Height: 30}, AffectsLayout: true})

	algo := NewLayoutAlgorithm(singleColumnSettings())
	root, err := algo.Apply(c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.State.Connector == nil || len(root.State.Connector.Segments) == 0 {
		t.Fatalf("expected the root to have routed connector segments")
	}
	for _, seg := range root.State.Connector.Segments {
		if !seg.IsAxisAligned() {
			t.Fatalf("connector segment %+v is not axis-aligned", seg)
		}
	}
}

// TestApplyMissingSystemRoot exercises the ErrSystemRootNotSet path.
func TestApplyMissingSystemRoot(t *testing.T) {
	c := NewBoxContainer()
	algo := NewLayoutAlgorithm(singleColumnSettings())
	if _, err := algo.Apply(c, nil, nil); err != ErrSystemRootNotSet {
		t.Fatalf("expected ErrSystemRootNotSet, got %v", err)
	}
}

// TestApplyUnregisteredDefaultStrategy exercises the
// ErrDefaultStrategyMissing path when no default strategy id is
// registered.
func TestApplyUnregisteredDefaultStrategy(t *testing.T) {
	c := NewBoxContainer()
	_ = c.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true})
	_ = c.Add(&Box{ID: 2, ParentID: 1, Size: Size{Width: 80, Height: 30}, AffectsLayout: true})

	settings := NewDiagramLayoutSettings()
	algo := NewLayoutAlgorithm(settings)
	if _, err := algo.Apply(c, nil, nil); err != ErrDefaultStrategyMissing {
		t.Fatalf("expected ErrDefaultStrategyMissing, got %v", err)
	}
}

// TestApplyCollapsedNodeHidesDescendants confirms a collapsed node's
// children are excluded from the layout's branch exterior.
func TestApplyCollapsedNodeHidesDescendants(t *testing.T) {
	c := NewBoxContainer()
	_ = c.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true})
	_ = c.Add(&Box{ID: 2, ParentID: 1, IsCollapsed: true, Size: Size{Width: 80, Height: 30}, AffectsLayout: true})
	_ = c.Add(&Box{ID: 3, ParentID: 2, Size: Size{Width: 500, Height: 500}, AffectsLayout: true})

	algo := NewLayoutAlgorithm(singleColumnSettings())
	root, err := algo.Apply(c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	collapsed := root.RegularChildren()[0]
	if collapsed.State.BranchExterior.Size != collapsed.Rect().Size {
		t.Fatalf("collapsed node's branch exterior should equal its own rect, got %+v vs %+v",
			collapsed.State.BranchExterior, collapsed.Rect())
	}
}

// TestApplyStrategyResolverOverridesStaticChain confirms a
// StrategyResolver takes priority over per-box and default strategy ids.
type fixedResolver struct{ id string }

func (r fixedResolver) ResolveStrategyID(_ *Box, _ bool) (string, bool) {
	return r.id, true
}

func TestApplyStrategyResolverOverridesStaticChain(t *testing.T) {
	c := NewBoxContainer()
	_ = c.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true})
	_ = c.Add(&Box{ID: 2, ParentID: 1, Size: Size{Width: 80, Height: 30}, AffectsLayout: true})

	settings := singleColumnSettings()
	params := StrategyParams{ParentChildSpacing: 20, ParentConnectorShield: 8, ParentAlignment: AlignLeft}
	settings.Register(NewLinearStrategy("linear", params))
	settings.Resolver = fixedResolver{id: "linear"}

	algo := NewLayoutAlgorithm(settings)
	root, err := algo.Apply(c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.State.EffectiveStrategy.ID() != "linear" {
		t.Fatalf("expected resolver-selected strategy 'linear', got %q", root.State.EffectiveStrategy.ID())
	}
}
