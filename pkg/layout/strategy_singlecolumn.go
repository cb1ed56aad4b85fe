package layout

// SingleColumnStrategy stacks a node's regular children in a single
// vertical column, offset to the left or right of a thin vertical carrier
// hanging from the parent. Center alignment has no well-defined carrier
// side and is rejected.
type SingleColumnStrategy struct {
	baseStrategy
}

// NewSingleColumnStrategy builds a SingleColumnStrategy with the given id
// and tunables.
func NewSingleColumnStrategy(id string, params StrategyParams) *SingleColumnStrategy {
	return &SingleColumnStrategy{baseStrategy{id: id, params: params}}
}

// PreProcess records the sibling count and, unless node is collapsed or
// childless, injects the single vertical-carrier spacer.
func (s *SingleColumnStrategy) PreProcess(state *LayoutState, node *TreeNode) error {
	regular := node.RegularChildren()
	node.State.NumberOfSiblings = len(regular)
	node.State.NumberOfSiblingRows = len(regular)
	node.State.NumberOfSiblingColumns = 1

	if node.Box.IsCollapsed || len(regular) == 0 {
		return nil
	}
	carrier := newSpacerChild(node, state.NextID)
	if node.State.Spacers == nil {
		node.State.Spacers = make(map[string]*TreeNode)
	}
	node.State.Spacers["carrier"] = carrier
	return nil
}

// ApplyVerticalLayout stacks assistants first, then each regular child,
// sequentially below the previous one with ParentChildSpacing between
// branch exteriors.
func (s *SingleColumnStrategy) ApplyVerticalLayout(state *LayoutState, level *LayoutLevel) error {
	node := level.BranchRoot

	if node.AssistantsRoot != nil {
		seedAssistantsRoot(node)
		if err := VerticalLayout(state, node.AssistantsRoot); err != nil {
			return err
		}
	}

	y := node.Rect().Bottom() + s.params.ParentChildSpacing
	for _, c := range node.RegularChildren() {
		c.State.TopLeft = Point{X: 0, Y: y}
		c.State.Size = c.Box.Size
		if err := VerticalLayout(state, c); err != nil {
			return err
		}
		bottom := verticalExtentBottom(c)
		c.State.SiblingsRowV = Dimensions{From: y, To: bottom}
		y = bottom + s.params.ParentChildSpacing
	}
	return nil
}

// ApplyHorizontalLayout recurses into each child, aligns their centers,
// shifts the whole block to the configured side of the parent's connector
// shield, and places the vertical carrier spacer.
func (s *SingleColumnStrategy) ApplyHorizontalLayout(state *LayoutState, level *LayoutLevel) error {
	if s.params.ParentAlignment == AlignCenter {
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

	leftSpan, rightSpan := alignHorizontalCenters(level, regular)

	centerH := node.Rect().CenterH()
	shield := s.params.ParentConnectorShield
	var dx, carrierX float64
	switch s.params.ParentAlignment {
	case AlignLeft:
		target := centerH + shield/2
		dx = target - leftSpan
		carrierX = centerH - shield/2
	case AlignRight:
		target := centerH - shield/2
		dx = target - rightSpan
		carrierX = centerH - shield/2
	}
	if dx < -epsilon || dx > epsilon {
		for _, c := range regular {
			moveBranch(level, c, dx)
		}
	}

	if carrier := node.State.Spacers["carrier"]; carrier != nil {
		last := regular[len(regular)-1]
		top := node.Rect().Bottom()
		bottom := last.State.BranchExterior.Bottom()
		rect := NewRect(Point{X: carrierX, Y: top}, Size{Width: shield, Height: bottom - top})
		placeSpacer(state, node, "carrier", carrier, rect)
	}
	return nil
}

// RouteConnectors emits one vertical carrier segment from the parent's
// bottom to the last child's vertical center, plus one horizontal hook per
// child from the carrier to the child's inner edge.
func (s *SingleColumnStrategy) RouteConnectors(state *LayoutState, node *TreeNode) error {
	regular := node.RegularChildren()
	if len(regular) == 0 {
		return nil
	}
	centerH := node.Rect().CenterH()
	last := regular[len(regular)-1]
	segments := []Edge{
		NewEdge(Point{X: centerH, Y: node.Rect().Bottom()}, Point{X: centerH, Y: last.Rect().CenterV()}),
	}
	for _, c := range regular {
		innerX := c.Rect().Left()
		if s.params.ParentAlignment == AlignRight {
			innerX = c.Rect().Right()
		}
		segments = append(segments, NewEdge(Point{X: centerH, Y: c.Rect().CenterV()}, Point{X: innerX, Y: c.Rect().CenterV()}))
	}
	node.State.Connector = &Connector{Segments: segments}
	return nil
}
