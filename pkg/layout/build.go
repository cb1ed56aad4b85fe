package layout

import "log"

// BuildTree turns a flat BoxContainer into the TreeNode forest the layout
// passes walk. Assistant boxes (IsAssistant) are attached under their
// parent's assistants-root rather than as regular children. A box whose
// declared parent is missing from the container is treated as an orphan:
// rather than failing the whole run, it is reattached directly under the
// system root and a warning is logged, since a dangling parent reference is
// recoverable and building organizational charts tolerates partial data.
func BuildTree(container *BoxContainer) (*TreeNode, error) {
	rootBox, ok := container.SystemRoot()
	if !ok {
		return nil, ErrSystemRootNotSet
	}

	nodes := make(map[int]*TreeNode, container.Len())
	for _, b := range container.All() {
		nodes[b.ID] = NewTreeNode(b)
	}
	root := nodes[rootBox.ID]

	for _, b := range container.All() {
		if b.ID == rootBox.ID {
			continue
		}
		n := nodes[b.ID]
		parent, ok := nodes[b.ParentID]
		if !ok {
			log.Printf("layout: box %d has unresolvable parent %d, attaching under system root", b.ID, b.ParentID)
			parent = root
		}
		if b.IsAssistant {
			parent.AddAssistant(n, container.NextID)
			continue
		}
		parent.AddChild(n)
	}

	// Levels assigned while attaching go stale when a parent is attached
	// after its children, so recompute them top-down. An assistants-root
	// and its assistants share their owner's level.
	root.ParentFirst(func(n *TreeNode) bool {
		if p := n.Parent(); p != nil {
			if n.IsAssistantsRoot() || p.IsAssistantsRoot() {
				n.Level = p.Level
			} else {
				n.Level = p.Level + 1
			}
		}
		return true
	}, nil)

	var roots []int
	for _, b := range container.All() {
		if b.ParentID == NoParent {
			roots = append(roots, b.ID)
		}
	}
	if len(roots) > 1 {
		return nil, ErrMultipleRoots
	}

	return root, nil
}

// resolveSizes fills in the Size of every data-bound box (DataID set, Size
// zero) from the installed SizeLookup. Boxes with an explicit non-zero size
// are left untouched.
func resolveSizes(root *TreeNode, state *LayoutState) {
	lookup := state.SizeLookup()
	if lookup == nil {
		return
	}
	root.ChildFirst(func(n *TreeNode) bool {
		if n.Box.DataID != "" && n.Box.Size == (Size{}) {
			if size, ok := lookup(n.Box.DataID); ok {
				n.Box.Size = size
			}
		}
		return true
	})
}

// propagateAffectsLayout sets AffectsLayout on every descendant of a
// collapsed node to false, visiting the whole tree; everything else keeps
// the value ingestion assigned it (normally true).
func propagateAffectsLayout(n *TreeNode, parentAffects bool) {
	effective := parentAffects && n.Box.AffectsLayout
	n.Box.AffectsLayout = effective
	if n.Box.IsCollapsed {
		effective = false
	}
	if n.AssistantsRoot != nil {
		propagateAffectsLayout(n.AssistantsRoot, effective)
	}
	for _, c := range n.Children {
		propagateAffectsLayout(c, effective)
	}
}

// treeDepth returns the number of edges on the longest root-to-leaf path,
// used to size the LayoutState boundary pool.
func treeDepth(n *TreeNode) int {
	max := 0
	if n.AssistantsRoot != nil {
		if d := treeDepth(n.AssistantsRoot) + 1; d > max {
			max = d
		}
	}
	for _, c := range n.Children {
		if d := treeDepth(c) + 1; d > max {
			max = d
		}
	}
	return max
}
