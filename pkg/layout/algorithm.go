package layout

import "math"

// LayoutAlgorithm drives the preprocess/vertical/horizontal/connector
// passes over a box tree according to a DiagramLayoutSettings.
type LayoutAlgorithm struct {
	settings *DiagramLayoutSettings
}

// NewLayoutAlgorithm builds a LayoutAlgorithm bound to settings.
func NewLayoutAlgorithm(settings *DiagramLayoutSettings) *LayoutAlgorithm {
	return &LayoutAlgorithm{settings: settings}
}

// Apply runs the full layout pipeline over container and returns the
// positioned tree root.
func (a *LayoutAlgorithm) Apply(container *BoxContainer, sizeOf SizeLookup, observer Observer) (*TreeNode, error) {
	rootBox, ok := container.SystemRoot()
	if !ok {
		return nil, ErrSystemRootNotSet
	}

	root, err := BuildTree(container)
	if err != nil {
		return nil, err
	}
	if root.Box.ID != rootBox.ID {
		return nil, ErrRootMismatch
	}

	state := NewLayoutState(treeDepth(root) + 2)
	state.SetSizeLookup(sizeOf)
	state.SetObserver(observer)
	state.SetNextIDFunc(container.NextID)

	state.SetOperation(OpPreparing)
	resolveSizes(root, state)
	propagateAffectsLayout(root, true)

	state.SetOperation(OpPreprocess)
	if err := a.preprocess(state, root); err != nil {
		return nil, err
	}

	state.SetOperation(OpVertical)
	root.State.TopLeft = Point{X: 0, Y: 0}
	root.State.Size = root.Box.Size
	if err := VerticalLayout(state, root); err != nil {
		return nil, err
	}

	state.SetOperation(OpHorizontal)
	if err := HorizontalLayout(state, root); err != nil {
		return nil, err
	}
	if root.State.BranchExterior.IsEmpty() {
		root.State.BranchExterior = root.Rect()
	}

	state.SetOperation(OpConnectors)
	if err := a.routeConnectors(state, root); err != nil {
		return nil, err
	}

	state.SetOperation(OpCompleted)
	return root, nil
}

// preprocess is a parent-first walk that resolves and records every
// reachable node's EffectiveStrategy and invokes its PreProcess hook.
// Descent stops at a collapsed node or one that no longer affects layout,
// leaving its descendants at their zero-value (unlaid) state.
func (a *LayoutAlgorithm) preprocess(state *LayoutState, root *TreeNode) error {
	var firstErr error
	root.ParentFirst(func(n *TreeNode) bool {
		if firstErr != nil {
			return false
		}
		if !n.Box.AffectsLayout {
			return false
		}
		n.State.TopLeft = Point{X: 0, Y: 0}
		n.State.Size = n.Box.Size
		n.State.BranchExterior = Rect{TopLeft: Point{X: 0, Y: 0}, Size: n.Box.Size}

		strat, err := resolveStrategy(a.settings, n)
		if err != nil {
			firstErr = err
			return false
		}
		n.State.EffectiveStrategy = strat

		if err := strat.PreProcess(state, n); err != nil {
			firstErr = err
			return false
		}
		return !n.Box.IsCollapsed && n.HasRegularOrAssistantChildren()
	}, nil)
	return firstErr
}

func (a *LayoutAlgorithm) routeConnectors(state *LayoutState, node *TreeNode) error {
	if !node.Box.AffectsLayout || node.Box.IsCollapsed || node.State.EffectiveStrategy == nil {
		return nil
	}
	if node.AssistantsRoot != nil {
		if err := a.routeConnectors(state, node.AssistantsRoot); err != nil {
			return err
		}
	}
	for _, c := range node.RegularChildren() {
		if err := a.routeConnectors(state, c); err != nil {
			return err
		}
	}
	if !node.HasRegularOrAssistantChildren() {
		return nil
	}
	return node.State.EffectiveStrategy.RouteConnectors(state, node)
}

// VerticalLayout positions node's children vertically by pushing a fresh
// level for node and dispatching to node's EffectiveStrategy. It is a
// no-op for collapsed nodes, nodes that don't affect layout, and leaves —
// and it is how a strategy recurses into each child's own vertical pass.
func VerticalLayout(state *LayoutState, node *TreeNode) error {
	if !node.Box.AffectsLayout || node.Box.IsCollapsed || node.State.EffectiveStrategy == nil {
		return nil
	}
	if !node.HasRegularOrAssistantChildren() {
		return nil
	}
	level := state.PushLayoutLevel(node)
	err := node.State.EffectiveStrategy.ApplyVerticalLayout(state, level)
	state.PopLayoutLevel()
	return err
}

// HorizontalLayout positions node's children horizontally, then recomputes
// node.State.BranchExterior from the accumulated boundary. Leaves and
// collapsed nodes get their own rect as their branch exterior; nodes that
// do not affect layout are left untouched.
func HorizontalLayout(state *LayoutState, node *TreeNode) error {
	if !node.Box.AffectsLayout {
		return nil
	}
	if node.Box.IsCollapsed || node.State.EffectiveStrategy == nil || !node.HasRegularOrAssistantChildren() {
		node.State.BranchExterior = node.Rect()
		return nil
	}
	level := state.PushLayoutLevel(node)
	err := node.State.EffectiveStrategy.ApplyHorizontalLayout(state, level)
	if err == nil {
		level.Boundary.ReloadFromBranch(node)
		node.State.BranchExterior = level.Boundary.BoundingRect()
		if node.State.BranchExterior.IsEmpty() {
			node.State.BranchExterior = node.Rect()
		}
	}
	state.PopLayoutLevel()
	return err
}

// verticalExtentBottom returns the lowest Y reached by n's subtree, using
// only the Y values the vertical pass has set so far (X is not yet
// resolved when this is called).
func verticalExtentBottom(n *TreeNode) float64 {
	bottom := n.State.TopLeft.Y + n.State.Size.Height
	if n.AssistantsRoot != nil && n.AssistantsRoot.Box.AffectsLayout {
		if b := verticalExtentBottom(n.AssistantsRoot); b > bottom {
			bottom = b
		}
	}
	for _, c := range n.Children {
		if c.Box.AffectsLayout {
			if b := verticalExtentBottom(c); b > bottom {
				bottom = b
			}
		}
	}
	return bottom
}

// seedAssistantsRoot anchors node's assistants-root at node's own
// position before the assistants-root's own strategy lays out the
// assistants relative to it.
func seedAssistantsRoot(node *TreeNode) {
	ar := node.AssistantsRoot
	ar.State.TopLeft = node.State.TopLeft
	ar.State.Size = Size{}
}

// moveOneChild shifts every rect and branch exterior in root's subtree by
// dx, without touching any level boundary.
func moveOneChild(root *TreeNode, dx float64) {
	root.ChildFirst(func(n *TreeNode) bool {
		n.State.TopLeft.X += dx
		if !n.State.BranchExterior.IsEmpty() {
			n.State.BranchExterior = n.State.BranchExterior.MoveH(dx)
		}
		return true
	})
}

// moveBranch shifts root's subtree by dx and reloads level's boundary from
// level.BranchRoot.
func moveBranch(level *LayoutLevel, root *TreeNode, dx float64) {
	moveOneChild(root, dx)
	level.Boundary.ReloadFromBranch(level.BranchRoot)
}

// alignHorizontalCenters shifts every node in subset rightwards so each
// shares the maximum CenterH among them, reloads the level boundary, and
// returns the resulting (leftmost, rightmost) X span across subset's
// branch exteriors.
func alignHorizontalCenters(level *LayoutLevel, subset []*TreeNode) (left, right float64) {
	if len(subset) == 0 {
		return 0, 0
	}
	maxCenter := subset[0].State.BranchExterior.CenterH()
	for _, n := range subset[1:] {
		if c := n.State.BranchExterior.CenterH(); c > maxCenter {
			maxCenter = c
		}
	}
	for _, n := range subset {
		if dx := maxCenter - n.State.BranchExterior.CenterH(); dx > epsilon {
			moveOneChild(n, dx)
		}
	}
	level.Boundary.ReloadFromBranch(level.BranchRoot)

	left = math.Inf(1)
	right = math.Inf(-1)
	for _, n := range subset {
		ext := n.State.BranchExterior
		if ext.Left() < left {
			left = ext.Left()
		}
		if ext.Right() > right {
			right = ext.Right()
		}
	}
	return left, right
}

// VisualBoundingRect returns the smallest rect enclosing root's entire
// laid-out branch: root.State.BranchExterior alone once Apply has
// returned.
func VisualBoundingRect(root *TreeNode) Rect {
	return root.State.BranchExterior
}
