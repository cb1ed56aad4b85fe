package layout

// AssistantsFishboneStrategy is the strategy assigned to an
// assistants-root node: it arranges an owner's assistants as a single
// two-pillar fishbone (left pillar, vertical carrier, right pillar)
// hanging beside the owner, starting at the owner's own Y rather than
// below it, so assistants can share the owner's siblings-row band instead
// of pushing later siblings further down. Because children split
// symmetrically around the carrier, only Center alignment is meaningful.
type AssistantsFishboneStrategy struct {
	baseStrategy
}

// NewAssistantsFishboneStrategy builds an AssistantsFishboneStrategy with
// the given id and tunables. ParentConnectorShield doubles as the width of
// the vertical carrier placed between the owner and the assistants.
func NewAssistantsFishboneStrategy(id string, params StrategyParams) *AssistantsFishboneStrategy {
	return &AssistantsFishboneStrategy{baseStrategy{id: id, params: params}}
}

// assistantsMaxOnLeft returns ceil(n/2): the left pillar fills first, the
// right pillar takes what's left.
func assistantsMaxOnLeft(n int) int {
	return (n + 1) / 2
}

// assistantSides splits assistants into their left-side (even index) and
// right-side (odd index) halves, preserving order.
func assistantSides(children []*TreeNode) (left, right []*TreeNode) {
	for i, c := range children {
		if i%2 == 0 {
			left = append(left, c)
		} else {
			right = append(right, c)
		}
	}
	return left, right
}

// PreProcess records sibling stats and, unless collapsed or childless,
// injects the vertical-carrier spacer between the two pillars. It also
// injects a carrier-protector spacer between the owner and the carrier,
// but only when the owner has no regular children of its own: when it
// does, the owner's own fishbone carrier already shields that gap.
func (s *AssistantsFishboneStrategy) PreProcess(state *LayoutState, node *TreeNode) error {
	regular := node.RegularChildren()
	node.State.NumberOfSiblings = len(regular)
	node.State.NumberOfSiblingColumns = 1
	node.State.NumberOfSiblingRows = assistantsMaxOnLeft(len(regular))

	if node.Box.IsCollapsed || len(regular) == 0 {
		return nil
	}
	if node.State.Spacers == nil {
		node.State.Spacers = make(map[string]*TreeNode)
	}
	node.State.Spacers["carrier"] = newSpacerChild(node, state.NextID)
	if owner := node.Parent(); owner == nil || len(owner.RegularChildren()) == 0 {
		node.State.Spacers["carrier-protector"] = newSpacerChild(node, state.NextID)
	}
	return nil
}

// ApplyVerticalLayout stacks assistant rows starting at the owner's own Y
// (seeded onto node.State.TopLeft.Y by the owner's strategy before
// recursing here): row r holds up to two assistants (left and right) at a
// shared Y, and rows are separated by SiblingSpacing.
func (s *AssistantsFishboneStrategy) ApplyVerticalLayout(state *LayoutState, level *LayoutLevel) error {
	node := level.BranchRoot
	regular := node.RegularChildren()
	maxOnLeft := assistantsMaxOnLeft(len(regular))

	y := node.State.TopLeft.Y
	for r := 0; r < maxOnLeft; r++ {
		var row []*TreeNode
		if left := 2 * r; left < len(regular) {
			row = append(row, regular[left])
		}
		if right := 2*r + 1; right < len(regular) {
			row = append(row, regular[right])
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
	return nil
}

// ApplyHorizontalLayout recurses into every assistant, packs the left
// pillar against the owner's right edge and the right pillar past the
// carrier, and places the carrier and (when present) carrier-protector
// spacers spanning the pillars.
func (s *AssistantsFishboneStrategy) ApplyHorizontalLayout(state *LayoutState, level *LayoutLevel) error {
	if s.params.ParentAlignment != AlignCenter {
		return ErrInvalidAlignment
	}
	node := level.BranchRoot
	owner := node.Parent()

	regular := node.RegularChildren()
	for _, c := range regular {
		if err := HorizontalLayout(state, c); err != nil {
			return err
		}
	}
	if len(regular) == 0 {
		return nil
	}

	shield := s.params.ParentConnectorShield
	left, right := assistantSides(regular)
	carrierX := owner.Rect().Right() + shield/2

	for _, c := range left {
		if dx := carrierX - shield/2 - c.State.BranchExterior.Right(); dx < -epsilon || dx > epsilon {
			moveOneChild(c, dx)
		}
	}
	for _, c := range right {
		if dx := carrierX + shield/2 - c.State.BranchExterior.Left(); dx < -epsilon || dx > epsilon {
			moveOneChild(c, dx)
		}
	}

	rowTop, rowBottom := regular[0].State.BranchExterior.Top(), regular[0].State.BranchExterior.Bottom()
	for _, c := range regular[1:] {
		ext := c.State.BranchExterior
		if ext.Top() < rowTop {
			rowTop = ext.Top()
		}
		if ext.Bottom() > rowBottom {
			rowBottom = ext.Bottom()
		}
	}

	if carrier := node.State.Spacers["carrier"]; carrier != nil {
		rect := NewRect(Point{X: carrierX - shield/2, Y: rowTop}, Size{Width: shield, Height: rowBottom - rowTop})
		placeSpacer(state, node, "carrier", carrier, rect)
	}
	if protector := node.State.Spacers["carrier-protector"]; protector != nil {
		ownerY := owner.Rect().CenterV()
		rect := NewRect(Point{X: owner.Rect().Right(), Y: ownerY - shield/2}, Size{Width: carrierX - shield/2 - owner.Rect().Right(), Height: shield})
		placeSpacer(state, node, "carrier-protector", protector, rect)
	}
	return nil
}

// RouteConnectors emits the vertical carrier spanning the assistants, one
// hook per assistant from the carrier to its inner edge, and — only when
// a carrier-protector spacer was injected — a horizontal segment bridging
// the owner to the carrier, since otherwise the owner's own fishbone
// carrier already reaches this gap.
func (s *AssistantsFishboneStrategy) RouteConnectors(state *LayoutState, node *TreeNode) error {
	regular := node.RegularChildren()
	if len(regular) == 0 {
		return nil
	}
	carrier := node.State.Spacers["carrier"]
	if carrier == nil {
		return nil
	}
	carrierX := carrier.Rect().CenterH()

	segments := []Edge{
		NewEdge(Point{X: carrierX, Y: carrier.Rect().Top()}, Point{X: carrierX, Y: carrier.Rect().Bottom()}),
	}
	if protector := node.State.Spacers["carrier-protector"]; protector != nil {
		owner := node.Parent()
		ownerY := owner.Rect().CenterV()
		segments = append(segments, NewEdge(Point{X: owner.Rect().Right(), Y: ownerY}, Point{X: carrierX, Y: ownerY}))
	}
	for _, c := range regular {
		if c.Rect().CenterH() <= carrierX {
			segments = append(segments, NewEdge(Point{X: carrierX, Y: c.Rect().CenterV()}, Point{X: c.Rect().Right(), Y: c.Rect().CenterV()}))
		} else {
			segments = append(segments, NewEdge(Point{X: carrierX, Y: c.Rect().CenterV()}, Point{X: c.Rect().Left(), Y: c.Rect().CenterV()}))
		}
	}
	node.State.Connector = &Connector{Segments: segments}
	return nil
}
