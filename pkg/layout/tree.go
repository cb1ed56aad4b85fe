package layout

// Operation names the current phase of a LayoutAlgorithm.Apply run.
type Operation int

const (
	OpPreparing Operation = iota
	OpPreprocess
	OpVertical
	OpHorizontal
	OpConnectors
	OpCompleted
)

func (o Operation) String() string {
	switch o {
	case OpPreparing:
		return "preparing"
	case OpPreprocess:
		return "preprocess"
	case OpVertical:
		return "vertical"
	case OpHorizontal:
		return "horizontal"
	case OpConnectors:
		return "connectors"
	case OpCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Alignment controls how a strategy centers its children block against the
// parent's connector shield.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Connector is the ordered set of orthogonal segments routed from a node to
// its children.
type Connector struct {
	Segments []Edge
}

// NodeLayoutInfo is the per-node mutable geometry and strategy scratch
// space built up across the preprocess/vertical/horizontal/connector
// passes.
type NodeLayoutInfo struct {
	TopLeft        Point
	Size           Size
	BranchExterior Rect
	SiblingsRowV   Dimensions

	NumberOfSiblings       int
	NumberOfSiblingRows    int
	NumberOfSiblingColumns int

	EffectiveStrategy LayoutStrategy
	Connector         *Connector

	// Spacers holds the synthetic boxes a strategy injected during
	// PreProcess, keyed by a strategy-chosen name (e.g. "carrier",
	// "parent-drop"). They are regular children of the owning node so
	// that boundary bookkeeping sees them, but strategies position them
	// directly instead of recursing into them.
	Spacers map[string]*TreeNode
}

// TreeNode wraps a single Box with the tree structure and per-node state
// the layout kernel needs. Children are owned; Parent is a lookup-only
// back-reference.
type TreeNode struct {
	Box            *Box
	Level          int
	Children       []*TreeNode
	AssistantsRoot *TreeNode

	parent           *TreeNode
	isAssistantsRoot bool

	State NodeLayoutInfo
}

// NewTreeNode wraps box as a fresh, unpositioned tree node.
func NewTreeNode(box *Box) *TreeNode {
	return &TreeNode{Box: box}
}

// Parent returns n's parent, or nil for the system root.
func (n *TreeNode) Parent() *TreeNode {
	return n.parent
}

// IsAssistantsRoot reports whether n is the synthetic assistants-root of
// some other node.
func (n *TreeNode) IsAssistantsRoot() bool {
	return n.isAssistantsRoot
}

// AddChild appends child as a regular child of n, wiring the parent
// back-reference and level.
func (n *TreeNode) AddChild(child *TreeNode) {
	child.parent = n
	child.Level = n.Level + 1
	n.Children = append(n.Children, child)
}

// EnsureAssistantsRoot lazily creates n's assistants-root wrapper around a
// synthetic, special box, and returns it.
func (n *TreeNode) EnsureAssistantsRoot(nextID func() int) *TreeNode {
	if n.AssistantsRoot != nil {
		return n.AssistantsRoot
	}
	box := &Box{ID: nextID(), ParentID: n.Box.ID, IsSpecial: true, AffectsLayout: true}
	root := &TreeNode{Box: box, parent: n, isAssistantsRoot: true, Level: n.Level}
	n.AssistantsRoot = root
	return root
}

// AddAssistant appends child as an assistant under n's assistants-root
// (creating it if necessary).
func (n *TreeNode) AddAssistant(child *TreeNode, nextID func() int) {
	root := n.EnsureAssistantsRoot(nextID)
	child.parent = root
	child.Level = root.Level
	root.Children = append(root.Children, child)
}

// Rect returns n's current placed rectangle.
func (n *TreeNode) Rect() Rect {
	return Rect{TopLeft: n.State.TopLeft, Size: n.State.Size}
}

// HasRegularOrAssistantChildren reports whether n has anything to descend
// into during a traversal.
func (n *TreeNode) HasRegularOrAssistantChildren() bool {
	return len(n.Children) > 0 || n.AssistantsRoot != nil
}

// RegularChildren returns n's non-special children — the ones a strategy
// recurses a full vertical/horizontal pass into, as opposed to the spacer
// boxes it positions directly.
func (n *TreeNode) RegularChildren() []*TreeNode {
	result := make([]*TreeNode, 0, len(n.Children))
	for _, c := range n.Children {
		if !c.Box.IsSpecial {
			result = append(result, c)
		}
	}
	return result
}

// ChildFirst performs a depth-first, children-before-parent traversal:
// the assistants-root subtree first, then each regular child subtree, then
// n itself. It stops and returns false as soon as visit returns false.
func (n *TreeNode) ChildFirst(visit func(*TreeNode) bool) bool {
	if n.AssistantsRoot != nil {
		if !n.AssistantsRoot.ChildFirst(visit) {
			return false
		}
	}
	for _, c := range n.Children {
		if !c.ChildFirst(visit) {
			return false
		}
	}
	return visit(n)
}

// ParentFirst performs a depth-first, parent-before-children traversal.
// enter(n) decides whether to descend into n's assistants-root and
// children; exit(n), if non-nil, is always called once descent (or the
// decision not to descend) is settled. Siblings are never short-circuited
// by one subtree's decision not to descend.
func (n *TreeNode) ParentFirst(enter func(*TreeNode) bool, exit func(*TreeNode)) {
	descend := enter(n)
	if !descend {
		if exit != nil {
			exit(n)
		}
		return
	}
	if n.AssistantsRoot != nil {
		n.AssistantsRoot.ParentFirst(enter, exit)
	}
	for _, c := range n.Children {
		c.ParentFirst(enter, exit)
	}
	if exit != nil {
		exit(n)
	}
}
