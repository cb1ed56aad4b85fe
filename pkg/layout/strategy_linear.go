package layout

import "math"

// LinearStrategy generalizes SingleColumnStrategy to a fixed number of
// columns: regular children fill rows left-to-right, Params().MaxGroups
// wide, with rows stacked below the parent and every row's horizontal
// center aligned to the widest row before the whole block is shifted to
// the configured side of the parent's connector shield.
type LinearStrategy struct {
	baseStrategy
}

// NewLinearStrategy builds a LinearStrategy with the given id and
// tunables. Params.MaxGroups is the column count; zero or negative is
// treated as one column.
func NewLinearStrategy(id string, params StrategyParams) *LinearStrategy {
	return &LinearStrategy{baseStrategy{id: id, params: params}}
}

func (s *LinearStrategy) columns() int {
	if s.params.MaxGroups > 0 {
		return s.params.MaxGroups
	}
	return 1
}

func linearRows(children []*TreeNode, columns int) [][]*TreeNode {
	if columns < 1 {
		columns = 1
	}
	var rows [][]*TreeNode
	for i := 0; i < len(children); i += columns {
		end := i + columns
		if end > len(children) {
			end = len(children)
		}
		rows = append(rows, children[i:end])
	}
	return rows
}

// PreProcess records the row/column layout and injects the vertical
// carrier spacer, mirroring SingleColumnStrategy.
func (s *LinearStrategy) PreProcess(state *LayoutState, node *TreeNode) error {
	regular := node.RegularChildren()
	cols := s.columns()
	node.State.NumberOfSiblings = len(regular)
	node.State.NumberOfSiblingColumns = cols
	if len(regular) == 0 {
		node.State.NumberOfSiblingRows = 0
	} else {
		node.State.NumberOfSiblingRows = (len(regular) + cols - 1) / cols
	}

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

// ApplyVerticalLayout stacks rows below the parent, each row's Y equal to
// the previous row's deepest descendant bottom plus ParentChildSpacing.
func (s *LinearStrategy) ApplyVerticalLayout(state *LayoutState, level *LayoutLevel) error {
	node := level.BranchRoot

	if node.AssistantsRoot != nil {
		seedAssistantsRoot(node)
		if err := VerticalLayout(state, node.AssistantsRoot); err != nil {
			return err
		}
	}

	rows := linearRows(node.RegularChildren(), s.columns())
	y := node.Rect().Bottom() + s.params.ParentChildSpacing
	for _, row := range rows {
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
		y = rowBottom + s.params.ParentChildSpacing
	}
	return nil
}

// ApplyHorizontalLayout packs each row left-to-right with SiblingSpacing,
// aligns every row's center to the widest row, shifts the whole block per
// ParentAlignment, and places the vertical carrier spacer.
func (s *LinearStrategy) ApplyHorizontalLayout(state *LayoutState, level *LayoutLevel) error {
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
	rows := linearRows(regular, s.columns())

	for _, row := range rows {
		x := 0.0
		for i, c := range row {
			if i > 0 {
				x += s.params.SiblingSpacing
			}
			if dx := x - c.State.BranchExterior.Left(); dx < -epsilon || dx > epsilon {
				moveOneChild(c, dx)
			}
			x = c.State.BranchExterior.Right()
		}
	}

	maxCenter := math.Inf(-1)
	for _, row := range rows {
		if c := rowCenter(row); c > maxCenter {
			maxCenter = c
		}
	}
	for _, row := range rows {
		if dx := maxCenter - rowCenter(row); dx > epsilon {
			for _, c := range row {
				moveOneChild(c, dx)
			}
		}
	}
	level.Boundary.ReloadFromBranch(node)

	leftSpan, rightSpan := math.Inf(1), math.Inf(-1)
	for _, c := range regular {
		ext := c.State.BranchExterior
		if ext.Left() < leftSpan {
			leftSpan = ext.Left()
		}
		if ext.Right() > rightSpan {
			rightSpan = ext.Right()
		}
	}

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
			moveOneChild(c, dx)
		}
		level.Boundary.ReloadFromBranch(node)
	}

	if carrier := node.State.Spacers["carrier"]; carrier != nil {
		top := node.Rect().Bottom()
		bottom := math.Inf(-1)
		for _, c := range regular {
			if b := c.State.BranchExterior.Bottom(); b > bottom {
				bottom = b
			}
		}
		rect := NewRect(Point{X: carrierX, Y: top}, Size{Width: shield, Height: bottom - top})
		placeSpacer(state, node, "carrier", carrier, rect)
	}
	return nil
}

// rowCenter returns the horizontal center of a packed row's combined span.
func rowCenter(row []*TreeNode) float64 {
	left := math.Inf(1)
	right := math.Inf(-1)
	for _, c := range row {
		ext := c.State.BranchExterior
		if ext.Left() < left {
			left = ext.Left()
		}
		if ext.Right() > right {
			right = ext.Right()
		}
	}
	return (left + right) / 2
}

// RouteConnectors emits one vertical carrier segment from the parent down
// to the deepest row, one horizontal drop per row from the carrier to that
// row's center, and one hook per child from its row's center to its inner
// edge.
func (s *LinearStrategy) RouteConnectors(state *LayoutState, node *TreeNode) error {
	regular := node.RegularChildren()
	if len(regular) == 0 {
		return nil
	}
	centerH := node.Rect().CenterH()
	rows := linearRows(regular, s.columns())

	bottom := node.Rect().Bottom()
	for _, c := range regular {
		if b := c.State.BranchExterior.Bottom(); b > bottom {
			bottom = b
		}
	}
	segments := []Edge{
		NewEdge(Point{X: centerH, Y: node.Rect().Bottom()}, Point{X: centerH, Y: bottom}),
	}
	for _, row := range rows {
		rowY := row[0].Rect().CenterV()
		rc := rowCenter(row)
		segments = append(segments, NewEdge(Point{X: centerH, Y: rowY}, Point{X: rc, Y: rowY}))
		for _, c := range row {
			innerX := c.Rect().Left()
			if s.params.ParentAlignment == AlignRight {
				innerX = c.Rect().Right()
			}
			segments = append(segments, NewEdge(Point{X: rc, Y: rowY}, Point{X: innerX, Y: c.Rect().CenterV()}))
		}
	}
	node.State.Connector = &Connector{Segments: segments}
	return nil
}
