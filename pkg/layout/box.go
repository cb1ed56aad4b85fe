package layout

import "fmt"

// NoParent marks a box with no parent (the system root).
const NoParent = -1

// Box is the immutable identity plus mutable layout flags of a single node
// in the organizational chart. Boxes marked IsSpecial are synthetic spacers
// injected by a LayoutStrategy purely to reserve connector-routing space;
// they never appear in ingested data and are excluded from visual output.
type Box struct {
	ID       int
	ParentID int
	DataID   string
	Size     Size

	IsSpecial     bool
	IsCollapsed   bool
	IsAssistant   bool
	AffectsLayout bool

	// StrategyID and AssistantStrategyID are optional per-box overrides of
	// the default layout strategy. An empty value means "inherit from the
	// nearest ancestor that sets one, or fall back to the diagram default."
	StrategyID          string
	AssistantStrategyID string

	// Attributes carries ingestion-supplied key/value data a
	// StrategyResolver may evaluate rules against. The kernel itself never
	// reads it.
	Attributes map[string]interface{}
}

// IsSystemRoot reports whether b has no parent.
func (b *Box) IsSystemRoot() bool {
	return b.ParentID == NoParent
}

// BoxContainer is the id -> Box map the layout algorithm builds its visual
// tree from. Exactly one box may be the system root.
type BoxContainer struct {
	boxes      map[int]*Box
	order      []int
	systemRoot int
	nextID     int
}

// NewBoxContainer returns an empty container.
func NewBoxContainer() *BoxContainer {
	return &BoxContainer{
		boxes:      make(map[int]*Box),
		systemRoot: NoParent,
		nextID:     1,
	}
}

// NewSystemRoot creates and registers the container's synthetic system
// root box (parent_id = NoParent) and returns it. It is an error to call
// this more than once.
func (c *BoxContainer) NewSystemRoot(size Size) (*Box, error) {
	if c.systemRoot != NoParent {
		return nil, fmt.Errorf("layout: system root already set (id %d)", c.systemRoot)
	}
	root := &Box{ID: c.allocID(), ParentID: NoParent, Size: size, AffectsLayout: true}
	c.boxes[root.ID] = root
	c.order = append(c.order, root.ID)
	c.systemRoot = root.ID
	return root, nil
}

// AddSystemRoot registers an explicitly-identified root box (ParentID
// must be NoParent) as the container's system root. It is an error to
// call this more than once, or after NewSystemRoot.
func (c *BoxContainer) AddSystemRoot(b *Box) error {
	if c.systemRoot != NoParent {
		return fmt.Errorf("layout: system root already set (id %d)", c.systemRoot)
	}
	if b.ParentID != NoParent {
		return fmt.Errorf("layout: system root must have ParentID == NoParent")
	}
	if err := c.Add(b); err != nil {
		return err
	}
	c.systemRoot = b.ID
	return nil
}

// SystemRoot returns the container's system root box, if set.
func (c *BoxContainer) SystemRoot() (*Box, bool) {
	if c.systemRoot == NoParent {
		return nil, false
	}
	b, ok := c.boxes[c.systemRoot]
	return b, ok
}

// SystemRootID returns the id of the system root, or NoParent if unset.
func (c *BoxContainer) SystemRootID() int {
	return c.systemRoot
}

func (c *BoxContainer) allocID() int {
	id := c.nextID
	c.nextID++
	return id
}

// NextID reserves and returns the next monotonically increasing box id.
func (c *BoxContainer) NextID() int {
	return c.allocID()
}

// Add registers b in the container. Returns an error on duplicate id.
func (c *BoxContainer) Add(b *Box) error {
	if _, exists := c.boxes[b.ID]; exists {
		return fmt.Errorf("layout: duplicate box id %d", b.ID)
	}
	c.boxes[b.ID] = b
	c.order = append(c.order, b.ID)
	if b.ID >= c.nextID {
		c.nextID = b.ID + 1
	}
	return nil
}

// Get returns the box with the given id, if present.
func (c *BoxContainer) Get(id int) (*Box, bool) {
	b, ok := c.boxes[id]
	return b, ok
}

// All returns every box in insertion order (deterministic).
func (c *BoxContainer) All() []*Box {
	result := make([]*Box, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.boxes[id])
	}
	return result
}

// Len returns the number of registered boxes.
func (c *BoxContainer) Len() int {
	return len(c.boxes)
}
