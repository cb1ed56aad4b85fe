package layout

import "errors"

// Kernel faults are programmer/configuration errors: the kernel surfaces
// them as plain errors (wrapped with %w where context helps) rather than
// attempting any retry or partial-progress recovery.
var (
	// ErrSystemRootNotSet is returned by Apply when no system root has
	// been registered in the container.
	ErrSystemRootNotSet = errors.New("layout: system root not set")

	// ErrMultipleRoots is returned when BoxTree construction finds more
	// than one root (a box with no resolvable parent) after orphan
	// recovery.
	ErrMultipleRoots = errors.New("layout: more than one root after build")

	// ErrRootMismatch is returned when the sole root is not the
	// container's designated system root.
	ErrRootMismatch = errors.New("layout: root is not the system root")

	// ErrStrategyNotFound is returned when a requested strategy id is not
	// registered in DiagramLayoutSettings.
	ErrStrategyNotFound = errors.New("layout: strategy id not registered")

	// ErrDefaultStrategyMissing is returned when no strategy id resolves
	// for a node: no resolver answer, no per-box override, and an empty
	// default id. A default id that is set but not registered yields
	// ErrStrategyNotFound instead.
	ErrDefaultStrategyMissing = errors.New("layout: default strategy not registered")

	// ErrAffectsLayoutFalse names the fault of laying out a node that does
	// not affect layout (an ancestor is collapsed). No function in this
	// package returns it: the layout passes skip such nodes.
	ErrAffectsLayoutFalse = errors.New("layout: node does not affect layout")

	// ErrInvalidAlignment is returned when a strategy is configured with
	// an alignment its geometric contract rejects.
	ErrInvalidAlignment = errors.New("layout: invalid parent alignment for strategy")

	// ErrInvalidMaxGroups is returned when MultiLineFishbone is
	// configured with max_groups <= 0.
	ErrInvalidMaxGroups = errors.New("layout: max_groups must be positive")

	// ErrRootLevelStrategy names the fault of invoking a strategy that
	// requires level > 0 on the system root. No function in this package
	// returns it.
	ErrRootLevelStrategy = errors.New("layout: strategy requires level > 0")
)
