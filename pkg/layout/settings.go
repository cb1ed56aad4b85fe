package layout

// StrategyResolver optionally overrides the static per-box/default strategy
// chain, e.g. to evaluate dynamic rules over a box's attributes before
// falling back to configuration. It returns ok=false to defer to the
// static chain.
type StrategyResolver interface {
	ResolveStrategyID(box *Box, isAssistantsRoot bool) (id string, ok bool)
}

// DiagramLayoutSettings is the per-diagram configuration the layout
// algorithm consults while resolving each node's EffectiveStrategy.
type DiagramLayoutSettings struct {
	Strategies                 map[string]LayoutStrategy
	DefaultStrategyID          string
	DefaultAssistantStrategyID string
	BranchSpacing              float64
	BoxVerticalMargin          float64
	Resolver                   StrategyResolver
}

// NewDiagramLayoutSettings builds an empty settings value ready to have
// strategies registered into it.
func NewDiagramLayoutSettings() *DiagramLayoutSettings {
	return &DiagramLayoutSettings{Strategies: make(map[string]LayoutStrategy)}
}

// Register adds a strategy under its own ID().
func (s *DiagramLayoutSettings) Register(strat LayoutStrategy) {
	s.Strategies[strat.ID()] = strat
}

// resolveStrategy picks node's EffectiveStrategy: the dynamic resolver (if
// any and if it answers), else the nearest ancestor override, else the
// diagram default for node's kind (regular vs. assistants-root).
func resolveStrategy(settings *DiagramLayoutSettings, node *TreeNode) (LayoutStrategy, error) {
	id := ""
	if settings.Resolver != nil {
		if resolved, ok := settings.Resolver.ResolveStrategyID(node.Box, node.IsAssistantsRoot()); ok {
			id = resolved
		}
	}
	if id == "" {
		id = staticStrategyID(settings, node)
	}
	if id == "" {
		return nil, ErrDefaultStrategyMissing
	}
	strat, ok := settings.Strategies[id]
	if !ok {
		return nil, ErrStrategyNotFound
	}
	return strat, nil
}

func staticStrategyID(settings *DiagramLayoutSettings, node *TreeNode) string {
	if node.IsAssistantsRoot() {
		for n := node.Parent(); n != nil; n = n.Parent() {
			if n.Box.AssistantStrategyID != "" {
				return n.Box.AssistantStrategyID
			}
		}
		return settings.DefaultAssistantStrategyID
	}
	for n := node; n != nil; n = n.Parent() {
		if n.Box.StrategyID != "" {
			return n.Box.StrategyID
		}
	}
	return settings.DefaultStrategyID
}
