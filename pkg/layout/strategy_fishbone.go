package layout

import (
	"fmt"
	"math"
)

// MultiLineFishboneStrategy partitions a node's regular children into
// Params().MaxGroups contiguous groups and lays out each group as a short
// fishbone: a vertical pillar with children alternating left and right of
// it, row by row. Groups hang off a single horizontal carrier below the
// parent and are placed side by side, each offset from the ones already
// placed by exactly enough to clear their combined boundary. Because
// children split symmetrically around each pillar, only Center alignment
// is meaningful.
type MultiLineFishboneStrategy struct {
	baseStrategy
}

// NewMultiLineFishboneStrategy builds a MultiLineFishboneStrategy. Params
// must have MaxGroups > 0 and ParentAlignment == AlignCenter; PreProcess
// and ApplyHorizontalLayout surface ErrInvalidMaxGroups / ErrInvalidAlignment
// otherwise.
func NewMultiLineFishboneStrategy(id string, params StrategyParams) *MultiLineFishboneStrategy {
	return &MultiLineFishboneStrategy{baseStrategy{id: id, params: params}}
}

// fishboneGroup is one contiguous slice of a node's regular children,
// alternating left/right around its own pillar.
type fishboneGroup struct {
	children  []*TreeNode
	maxOnLeft int
}

// sides splits a group's children into its left-side (even index) and
// right-side (odd index) halves, preserving row order.
func (g fishboneGroup) sides() (left, right []*TreeNode) {
	for i, c := range g.children {
		if i%2 == 0 {
			left = append(left, c)
		} else {
			right = append(right, c)
		}
	}
	return left, right
}

// fishboneGroups partitions children into g == maxGroups contiguous groups
// by walking rows of width 2g: every full row hands each group one child on
// the left and one on the right, and the trailing partial row (if any) is
// handed out two-at-a-time starting from group 0. A group that receives no
// children from either the full rows or the trailing row is dropped, which
// only happens when maxGroups exceeds what a single row can seat.
func fishboneGroups(children []*TreeNode, maxGroups int) []fishboneGroup {
	n := len(children)
	if n == 0 || maxGroups < 1 {
		return nil
	}
	g := maxGroups
	rowWidth := 2 * g
	fullRows := n / rowWidth
	remainder := n % rowWidth

	counts := make([]int, g)
	for k := 0; k < g; k++ {
		extra := remainder - 2*k
		switch {
		case extra < 0:
			extra = 0
		case extra > 2:
			extra = 2
		}
		counts[k] = fullRows*2 + extra
	}

	groups := make([]fishboneGroup, 0, g)
	idx := 0
	for _, count := range counts {
		if count == 0 {
			continue
		}
		group := children[idx : idx+count]
		idx += count
		groups = append(groups, fishboneGroup{children: group, maxOnLeft: (count + 1) / 2})
	}
	return groups
}

// PreProcess validates MaxGroups, records sibling-grouping stats, and
// injects the parent-drop spacer, one vertical-carrier spacer per group,
// and — when there is more than one group — the horizontal-carrier spacer
// that ties the group carriers together.
func (s *MultiLineFishboneStrategy) PreProcess(state *LayoutState, node *TreeNode) error {
	if s.params.MaxGroups <= 0 {
		return ErrInvalidMaxGroups
	}
	regular := node.RegularChildren()
	node.State.NumberOfSiblings = len(regular)
	groups := fishboneGroups(regular, s.params.MaxGroups)
	node.State.NumberOfSiblingColumns = len(groups)
	maxRows := 0
	for _, g := range groups {
		if g.maxOnLeft > maxRows {
			maxRows = g.maxOnLeft
		}
	}
	node.State.NumberOfSiblingRows = maxRows

	if node.Box.IsCollapsed || len(groups) == 0 {
		return nil
	}
	if node.State.Spacers == nil {
		node.State.Spacers = make(map[string]*TreeNode)
	}
	node.State.Spacers["parent-drop"] = newSpacerChild(node, state.NextID)
	for gi := range groups {
		node.State.Spacers[fmt.Sprintf("pillar-%d", gi)] = newSpacerChild(node, state.NextID)
	}
	if len(groups) >= 2 {
		node.State.Spacers["horizontal-carrier"] = newSpacerChild(node, state.NextID)
	}
	return nil
}

// ApplyVerticalLayout stacks every group's rows starting at the same Y
// just below the parent: a group's row r holds up to two children (its
// left and right member) at a shared Y, and rows within a group are
// separated by SiblingSpacing.
func (s *MultiLineFishboneStrategy) ApplyVerticalLayout(state *LayoutState, level *LayoutLevel) error {
	node := level.BranchRoot

	if node.AssistantsRoot != nil {
		seedAssistantsRoot(node)
		if err := VerticalLayout(state, node.AssistantsRoot); err != nil {
			return err
		}
	}

	groups := fishboneGroups(node.RegularChildren(), s.params.MaxGroups)
	top := node.Rect().Bottom() + s.params.ParentChildSpacing
	for _, g := range groups {
		y := top
		for r := 0; r < g.maxOnLeft; r++ {
			var row []*TreeNode
			if left := 2 * r; left < len(g.children) {
				row = append(row, g.children[left])
			}
			if right := 2*r + 1; right < len(g.children) {
				row = append(row, g.children[right])
			}
			for _, c := range row {
				c.State.TopLeft = Point{X: 0, Y: y}
				c.State.Size = c.Box.Size
				if err := VerticalLayout(state, c); err != nil {
					return err
				}
			}
			rowBottom := y
			for _, c := range row {
				if b := verticalExtentBottom(c); b > rowBottom {
					rowBottom = b
				}
			}
			for _, c := range row {
				c.State.SiblingsRowV = Dimensions{From: y, To: rowBottom}
			}
			y = rowBottom + s.params.SiblingSpacing
		}
	}
	return nil
}

// ApplyHorizontalLayout recurses into every child, centers each group's
// left/right halves against its own pillar, places pillars side by side
// (each offset just enough to clear the ones already placed), re-centers
// the whole fishbone under the parent, and finally places the parent-drop
// and horizontal-carrier spacers relative to the settled group pillars.
func (s *MultiLineFishboneStrategy) ApplyHorizontalLayout(state *LayoutState, level *LayoutLevel) error {
	if s.params.ParentAlignment != AlignCenter {
		return ErrInvalidAlignment
	}
	node := level.BranchRoot

	if node.AssistantsRoot != nil {
		if err := HorizontalLayout(state, node.AssistantsRoot); err != nil {
			return err
		}
	}
	regular := node.RegularChildren()
	for _, c := range regular {
		if err := HorizontalLayout(state, c); err != nil {
			return err
		}
	}
	if len(regular) == 0 {
		return nil
	}

	groups := fishboneGroups(regular, s.params.MaxGroups)
	shield := s.params.ParentConnectorShield
	carrierY := node.Rect().Bottom()

	var accumulated Boundary
	pillarX := make([]float64, len(groups))

	for gi, g := range groups {
		left, right := g.sides()
		for _, c := range left {
			if dx := -shield/2 - c.State.BranchExterior.Right(); dx < -epsilon || dx > epsilon {
				moveOneChild(c, dx)
			}
		}
		for _, c := range right {
			if dx := shield/2 - c.State.BranchExterior.Left(); dx < -epsilon || dx > epsilon {
				moveOneChild(c, dx)
			}
		}

		ySpan := MinMaxDimensions()
		for _, c := range g.children {
			ySpan = ySpan.Union(c.State.BranchExterior.VDimensions())
		}
		pillarLocal := NewRect(Point{X: -shield / 2, Y: carrierY}, Size{Width: shield, Height: ySpan.To - carrierY})

		var local Boundary
		for _, c := range g.children {
			local.Merge(c.State.BranchExterior)
		}
		local.Merge(pillarLocal)

		dx := 0.0
		if gi > 0 {
			dx = accumulated.MinOffsetToClear(&local, s.params.SiblingSpacing)
		}
		if dx > epsilon {
			for _, c := range g.children {
				moveOneChild(c, dx)
			}
		}
		pillarX[gi] = dx

		absPillar := NewRect(Point{X: dx - shield/2, Y: carrierY}, Size{Width: shield, Height: ySpan.To - carrierY})
		if spacer := node.State.Spacers[fmt.Sprintf("pillar-%d", gi)]; spacer != nil {
			placeSpacer(state, node, fmt.Sprintf("pillar-%d", gi), spacer, absPillar)
		}
		accumulated.Merge(absPillar)
		for _, c := range g.children {
			accumulated.Merge(c.State.BranchExterior)
		}
	}

	blockLeft, blockRight := math.Inf(1), math.Inf(-1)
	for _, c := range regular {
		ext := c.State.BranchExterior
		if ext.Left() < blockLeft {
			blockLeft = ext.Left()
		}
		if ext.Right() > blockRight {
			blockRight = ext.Right()
		}
	}
	for gi := range groups {
		if l := pillarX[gi] - shield/2; l < blockLeft {
			blockLeft = l
		}
		if r := pillarX[gi] + shield/2; r > blockRight {
			blockRight = r
		}
	}
	shiftAll := node.Rect().CenterH() - (blockLeft+blockRight)/2
	if shiftAll < -epsilon || shiftAll > epsilon {
		for _, c := range regular {
			moveOneChild(c, shiftAll)
		}
		for _, spacer := range node.State.Spacers {
			spacer.State.TopLeft.X += shiftAll
		}
	}

	leftmost, rightmost := math.Inf(1), math.Inf(-1)
	for gi := range groups {
		x := pillarX[gi] + shiftAll
		if l := x - shield/2; l < leftmost {
			leftmost = l
		}
		if r := x + shield/2; r > rightmost {
			rightmost = r
		}
	}

	if pd := node.State.Spacers["parent-drop"]; pd != nil {
		rect := NewRect(Point{X: node.Rect().CenterH() - shield/2, Y: node.Rect().Bottom()}, Size{Width: shield, Height: carrierY - node.Rect().Bottom()})
		placeSpacer(state, node, "parent-drop", pd, rect)
	}
	if hc := node.State.Spacers["horizontal-carrier"]; hc != nil {
		rect := NewRect(Point{X: leftmost, Y: carrierY}, Size{Width: rightmost - leftmost, Height: 0})
		placeSpacer(state, node, "horizontal-carrier", hc, rect)
	}
	return nil
}

// RouteConnectors emits a single vertical segment from the parent down to
// the horizontal-carrier level, the horizontal-carrier segment spanning
// the group pillars when there is more than one group, and per group a
// vertical carrier segment down to its lowest left-pillar child plus one
// hook per child from the pillar to the child's inner edge.
func (s *MultiLineFishboneStrategy) RouteConnectors(state *LayoutState, node *TreeNode) error {
	regular := node.RegularChildren()
	if len(regular) == 0 {
		return nil
	}
	groups := fishboneGroups(regular, s.params.MaxGroups)
	centerH := node.Rect().CenterH()
	parentBottom := node.Rect().Bottom()

	carrierY := parentBottom
	if pd := node.State.Spacers["parent-drop"]; pd != nil {
		carrierY = pd.Rect().Bottom()
	}

	segments := []Edge{
		NewEdge(Point{X: centerH, Y: parentBottom}, Point{X: centerH, Y: carrierY}),
	}
	if hc := node.State.Spacers["horizontal-carrier"]; hc != nil {
		segments = append(segments, NewEdge(Point{X: hc.Rect().Left(), Y: carrierY}, Point{X: hc.Rect().Right(), Y: carrierY}))
	}

	for gi, g := range groups {
		spacer := node.State.Spacers[fmt.Sprintf("pillar-%d", gi)]
		if spacer == nil {
			continue
		}
		pillarX := spacer.Rect().CenterH()
		left, right := g.sides()

		lowestLeft := carrierY
		for _, c := range left {
			if b := c.Rect().Bottom(); b > lowestLeft {
				lowestLeft = b
			}
		}
		segments = append(segments, NewEdge(Point{X: pillarX, Y: carrierY}, Point{X: pillarX, Y: lowestLeft}))

		for _, c := range left {
			segments = append(segments, NewEdge(Point{X: pillarX, Y: c.Rect().CenterV()}, Point{X: c.Rect().Right(), Y: c.Rect().CenterV()}))
		}
		for _, c := range right {
			segments = append(segments, NewEdge(Point{X: pillarX, Y: c.Rect().CenterV()}, Point{X: c.Rect().Left(), Y: c.Rect().CenterV()}))
		}
	}
	node.State.Connector = &Connector{Segments: segments}
	return nil
}
