package layout

import (
	"fmt"
	"testing"
)

func fishboneSettings(maxGroups int) *DiagramLayoutSettings {
	settings := NewDiagramLayoutSettings()
	params := StrategyParams{
		ParentChildSpacing:    20,
		SiblingSpacing:        10,
		ParentConnectorShield: 8,
		ChildConnectorHook:    4,
		ParentAlignment:       AlignCenter,
		MaxGroups:             maxGroups,
	}
	settings.Register(NewMultiLineFishboneStrategy("fishbone", params))
	settings.DefaultStrategyID = "fishbone"
	settings.Register(NewAssistantsFishboneStrategy("assistants_fishbone", StrategyParams{
		ParentChildSpacing:    20,
		SiblingSpacing:        10,
		ParentConnectorShield: 8,
		ParentAlignment:       AlignCenter,
	}))
	settings.DefaultAssistantStrategyID = "assistants_fishbone"
	return settings
}

func buildFishboneContainer(t *testing.T, n int) *BoxContainer {
	t.Helper()
	c := NewBoxContainer()
	if err := c.AddSystemRoot(&Box{ID: 1, ParentID: NoParent, Size: Size{Width: 100, Height: 40}, AffectsLayout: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < n; i++ {
		if err := c.Add(&Box{ID: 2 + i, ParentID: 1, Size: Size{Width: 40, Height: 20}, AffectsLayout: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return c
}

func groupCounts(groups []fishboneGroup) []int {
	counts := make([]int, len(groups))
	for i, g := range groups {
		counts[i] = len(g.children)
	}
	return counts
}

// TestFishboneGroupsDistributesByRow pins the group-iterator algorithm:
// walking rows of width 2*g, with the trailing partial row handed out
// starting from group 0.
func TestFishboneGroupsDistributesByRow(t *testing.T) {
	children := make([]*TreeNode, 10)
	for i := range children {
		children[i] = &TreeNode{Box: &Box{ID: i}}
	}

	groups := fishboneGroups(children, 3)
	got := groupCounts(groups)
	want := []int{4, 4, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %d groups, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected group counts %v, got %v", want, got)
		}
	}
	if groups[0].maxOnLeft != 2 || groups[1].maxOnLeft != 2 || groups[2].maxOnLeft != 1 {
		t.Fatalf("unexpected maxOnLeft values: %d %d %d", groups[0].maxOnLeft, groups[1].maxOnLeft, groups[2].maxOnLeft)
	}
}

// TestFishboneGroupsSingleGroupTakesAllChildren confirms max_groups=1 puts
// every child in one group.
func TestFishboneGroupsSingleGroupTakesAllChildren(t *testing.T) {
	children := make([]*TreeNode, 4)
	for i := range children {
		children[i] = &TreeNode{Box: &Box{ID: i}}
	}
	groups := fishboneGroups(children, 1)
	if len(groups) != 1 || len(groups[0].children) != 4 {
		t.Fatalf("expected a single group of 4, got %v", groupCounts(groups))
	}
	if groups[0].maxOnLeft != 2 {
		t.Fatalf("expected maxOnLeft 2, got %d", groups[0].maxOnLeft)
	}
}

// TestFishboneGroupsDropsEmptyGroups confirms requesting more groups than
// a single row can seat drops the groups that receive no children.
func TestFishboneGroupsDropsEmptyGroups(t *testing.T) {
	children := make([]*TreeNode, 4)
	for i := range children {
		children[i] = &TreeNode{Box: &Box{ID: i}}
	}
	groups := fishboneGroups(children, 10)
	got := groupCounts(groups)
	want := []int{2, 2}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected group counts %v, got %v", want, got)
	}
}

// TestFishboneSidesAlternateLeftRight confirms a group's even indices land
// left and odd indices land right, preserving row order.
func TestFishboneSidesAlternateLeftRight(t *testing.T) {
	children := make([]*TreeNode, 4)
	for i := range children {
		children[i] = &TreeNode{Box: &Box{ID: i}}
	}
	g := fishboneGroup{children: children, maxOnLeft: 2}
	left, right := g.sides()
	if len(left) != 2 || left[0] != children[0] || left[1] != children[2] {
		t.Fatalf("unexpected left side: %+v", left)
	}
	if len(right) != 2 || right[0] != children[1] || right[1] != children[3] {
		t.Fatalf("unexpected right side: %+v", right)
	}
}

// TestFishboneInjectsHorizontalCarrierOnlyWithMultipleGroups confirms
// Testable Property: the horizontal-carrier spacer is injected exactly
// when there is more than one group, alongside one pillar spacer per
// group and the parent-drop spacer.
func TestFishboneInjectsHorizontalCarrierOnlyWithMultipleGroups(t *testing.T) {
	c := buildFishboneContainer(t, 4)
	algo := NewLayoutAlgorithm(fishboneSettings(1))
	root, err := algo.Apply(c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := root.State.Spacers["horizontal-carrier"]; ok {
		t.Fatalf("did not expect a horizontal-carrier spacer with a single group")
	}
	if _, ok := root.State.Spacers["parent-drop"]; !ok {
		t.Fatalf("expected a parent-drop spacer")
	}
	if _, ok := root.State.Spacers["pillar-0"]; !ok {
		t.Fatalf("expected a pillar-0 spacer")
	}

	c2 := buildFishboneContainer(t, 10)
	algo2 := NewLayoutAlgorithm(fishboneSettings(3))
	root2, err := algo2.Apply(c2, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := root2.State.Spacers["horizontal-carrier"]; !ok {
		t.Fatalf("expected a horizontal-carrier spacer with 3 groups")
	}
	for gi := 0; gi < 3; gi++ {
		key := fmt.Sprintf("pillar-%d", gi)
		if _, ok := root2.State.Spacers[key]; !ok {
			t.Fatalf("expected %q spacer", key)
		}
	}
}

// TestFishboneCenterPillarsSideBySide confirms left/right pillars straddle
// max_groups=1's single carrier, matching children 0,2 on the left and
// 1,3 on the right.
func TestFishboneCenterPillarsSideBySide(t *testing.T) {
	c := buildFishboneContainer(t, 4)
	algo := NewLayoutAlgorithm(fishboneSettings(1))
	root, err := algo.Apply(c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	children := root.RegularChildren()
	if children[0].Rect().CenterH() != children[2].Rect().CenterH() {
		t.Fatalf("expected children 0 and 2 to share a column")
	}
	if children[1].Rect().CenterH() != children[3].Rect().CenterH() {
		t.Fatalf("expected children 1 and 3 to share a column")
	}
	if children[0].Rect().CenterH() >= children[1].Rect().CenterH() {
		t.Fatalf("expected the left pillar to sit left of the right pillar")
	}
}

// TestFishboneRejectsMissingMaxGroups confirms MaxGroups <= 0 is rejected.
func TestFishboneRejectsMissingMaxGroups(t *testing.T) {
	c := buildFishboneContainer(t, 2)
	algo := NewLayoutAlgorithm(fishboneSettings(0))
	if _, err := algo.Apply(c, nil, nil); err != ErrInvalidMaxGroups {
		t.Fatalf("expected ErrInvalidMaxGroups, got %v", err)
	}
}

// TestFishboneRejectsNonCenterAlignment confirms only Center alignment is
// accepted.
func TestFishboneRejectsNonCenterAlignment(t *testing.T) {
	settings := fishboneSettings(1)
	settings.Strategies["fishbone"].(*MultiLineFishboneStrategy).params.ParentAlignment = AlignLeft
	c := buildFishboneContainer(t, 2)
	algo := NewLayoutAlgorithm(settings)
	if _, err := algo.Apply(c, nil, nil); err != ErrInvalidAlignment {
		t.Fatalf("expected ErrInvalidAlignment, got %v", err)
	}
}

// TestFishboneRoutesAxisAlignedConnectors confirms every emitted segment,
// including the shared parent-to-carrier and horizontal-carrier segments,
// is purely horizontal or vertical.
func TestFishboneRoutesAxisAlignedConnectors(t *testing.T) {
	c := buildFishboneContainer(t, 10)
	algo := NewLayoutAlgorithm(fishboneSettings(3))
	root, err := algo.Apply(c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.State.Connector == nil || len(root.State.Connector.Segments) == 0 {
		t.Fatalf("expected routed connector segments")
	}
	for _, seg := range root.State.Connector.Segments {
		if !seg.IsAxisAligned() {
			t.Fatalf("connector segment %+v is not axis-aligned", seg)
		}
	}
}
