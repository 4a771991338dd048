package outliner

import (
	"fmt"
	"io"
	"log/slog"
)

// NodeState is the per-node UI metadata kept by a Hierarchy. Nodes never
// carry UI state themselves. Values are refreshed by Recalculate; between a
// structural change and the next Recalculate, Index and Offset are stale.
type NodeState struct {
	expanded bool
	selected bool
	index    int
	level    int
	offset   float64
	height   float64
}

// Expanded reports whether the node's children are shown.
func (s *NodeState) Expanded() bool { return s.expanded }

// Selected reports whether the node is part of the multi-selection.
func (s *NodeState) Selected() bool { return s.selected }

// Index is the node's position in document order.
func (s *NodeState) Index() int { return s.index }

// Level is the node's depth; root-level nodes are 0.
func (s *NodeState) Level() int { return s.level }

// Offset is the y coordinate of the node's row in document space.
func (s *NodeState) Offset() float64 { return s.offset }

// Height is the node's own row plus the height of its visible descendants.
func (s *NodeState) Height() float64 { return s.height }

// Hierarchy is the outliner's view model over a Registry: it keeps
// expansion and selection state per node, flattens the visible tree into
// document order for virtualized scrolling, and applies drag-and-drop moves.
//
// Hierarchy is single-threaded. Call Update once at the start of every
// frame, then read layout (VisibleRows, RowAt, State) and feed input
// (ProcessPointer). Moves requested while a frame is traversing the tree are
// deferred to the next Update.
type Hierarchy struct {
	registry *Registry
	cfg      Config
	logger   *slog.Logger
	debug    bool

	states map[*Node]*NodeState
	dirty  bool

	// Layout results
	rootIndex   []*Node
	rowCount    int
	totalHeight float64

	// Selection, ordered by flattened index
	selection []selectionEntry
	anchor    *Node

	// Deferred move slot
	pending    Move
	hasPending bool
	traversing int

	// Pointer gesture state
	pointer    pointerState
	preview    DropPlan
	hasPreview bool

	// OnMove is called after each move is applied (nil by default).
	OnMove func(Move)
}

// NewHierarchy creates a Hierarchy bound to reg and subscribes it to reg's
// notifications. Nodes already registered get a default state. The
// hierarchy subscribes before any later observer, so state for a new node
// exists by the time other observers run. Panics if cfg is invalid.
func NewHierarchy(reg *Registry, cfg Config) *Hierarchy {
	if reg == nil {
		panic("outliner: nil registry")
	}
	if err := cfg.Validate(); err != nil {
		panic("outliner: " + err.Error())
	}
	h := &Hierarchy{
		registry: reg,
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		debug:    cfg.Debug,
		states:   make(map[*Node]*NodeState),
		dirty:    true,
	}
	for n := reg.roots.first; n != nil; n = n.next {
		h.ensureStates(n, 0)
	}
	reg.Subscribe(h)
	return h
}

// Registry returns the registry this hierarchy observes.
func (h *Hierarchy) Registry() *Registry {
	return h.registry
}

// Config returns the active configuration.
func (h *Hierarchy) Config() Config {
	return h.cfg
}

// SetConfig replaces the configuration and marks the layout dirty.
// Panics if cfg is invalid.
func (h *Hierarchy) SetConfig(cfg Config) {
	if err := cfg.Validate(); err != nil {
		panic("outliner: " + err.Error())
	}
	h.cfg = cfg
	h.debug = cfg.Debug
	h.dirty = true
}

// SetLogger replaces the logger. A nil logger discards all output.
func (h *Hierarchy) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h.logger = l
}

// SetDebugMode enables or disables debug mode. When enabled, every
// Recalculate validates the structural invariants and logs violations,
// tree depth and container size warnings.
func (h *Hierarchy) SetDebugMode(enabled bool) {
	h.debug = enabled
}

// Update starts a new tick: it applies the pending move, if any, then
// recalculates the layout when a structural change made it dirty.
func (h *Hierarchy) Update() {
	if h.hasPending {
		m := h.pending
		h.hasPending = false
		h.pending = Move{}
		h.ApplyMove(m)
	}
	if h.dirty {
		h.Recalculate()
	}
}

// --- State store ---

// State returns the hierarchy state for n. A missing entry means the node was
// never registered with this hierarchy's registry, which is a programming
// error: State panics.
func (h *Hierarchy) State(n *Node) *NodeState {
	st, ok := h.states[n]
	if !ok {
		panic(fmt.Sprintf("outliner: no hierarchy state for node %q", nodeName(n)))
	}
	return st
}

// Dirty reports whether a structural change is waiting for Recalculate.
func (h *Hierarchy) Dirty() bool {
	return h.dirty
}

// MarkDirty forces the next Update to recalculate the layout.
func (h *Hierarchy) MarkDirty() {
	h.dirty = true
}

// IsExpanded reports whether n's children are shown.
func (h *Hierarchy) IsExpanded(n *Node) bool {
	return h.State(n).expanded
}

// SetExpanded expands or collapses n.
func (h *Hierarchy) SetExpanded(n *Node, expanded bool) {
	st := h.State(n)
	if st.expanded == expanded {
		return
	}
	st.expanded = expanded
	h.dirty = true
}

// ToggleExpanded flips n's expansion and returns the new value.
func (h *Hierarchy) ToggleExpanded(n *Node) bool {
	st := h.State(n)
	st.expanded = !st.expanded
	h.dirty = true
	return st.expanded
}

// ExpandAll expands every registered node.
func (h *Hierarchy) ExpandAll() {
	h.setAllExpanded(true)
}

// CollapseAll collapses every registered node.
func (h *Hierarchy) CollapseAll() {
	h.setAllExpanded(false)
}

func (h *Hierarchy) setAllExpanded(expanded bool) {
	for _, st := range h.states {
		st.expanded = expanded
	}
	h.dirty = true
}

// NodeAdded implements Observer. A node re-added from another container
// keeps its expansion and selection; its subtree levels are restamped.
func (h *Hierarchy) NodeAdded(n *Node) {
	h.ensureStates(n, depth(n))
	h.dirty = true
}

// NodeRemoved implements Observer. The node's state is dropped along with
// any selection, anchor, drag, or pending move that references it.
func (h *Hierarchy) NodeRemoved(n *Node) {
	st, ok := h.states[n]
	if !ok {
		return
	}
	if st.selected {
		h.removeSelectionEntry(n)
	}
	if h.anchor == n {
		h.anchor = nil
	}
	if h.pointer.pressNode == n {
		h.CancelDrag()
	}
	if h.hasPending && h.pending.Target == n {
		h.logger.Debug("pending move dropped: target removed", "target", n.Name)
		h.hasPending = false
		h.pending = Move{}
	}
	delete(h.states, n)
	h.dirty = true
}

// ensureStates creates missing state entries for n and its subtree and
// stamps their levels starting at level.
func (h *Hierarchy) ensureStates(n *Node, level int) {
	st, ok := h.states[n]
	if !ok {
		st = &NodeState{expanded: true}
		h.states[n] = st
	}
	st.level = level
	for c := n.children.first; c != nil; c = c.next {
		h.ensureStates(c, level+1)
	}
}

// depth counts n's ancestors.
func depth(n *Node) int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

func nodeName(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Name
}
