package outliner

import "fmt"

// PlaceAbove moves every selected node directly above target, as siblings of
// target, preserving the selection's order. Sources equal to target or
// ancestors of target are skipped.
func (h *Hierarchy) PlaceAbove(target *Node) {
	h.mustBeRegistered(target, "PlaceAbove")
	mark := target
	h.eachSourceReverse(func(src *Node) {
		if src == target || isAncestor(src, target) {
			return
		}
		h.reparent(src, target.parent, h.State(target).level)
		mark.list.insertBefore(src, mark)
		mark = src
	})
	h.dirty = true
}

// PlaceBelow moves every selected node directly below target, as siblings of
// target, preserving the selection's order. Sources equal to target or
// ancestors of target are skipped.
func (h *Hierarchy) PlaceBelow(target *Node) {
	h.mustBeRegistered(target, "PlaceBelow")
	h.eachSourceReverse(func(src *Node) {
		if src == target || isAncestor(src, target) {
			return
		}
		h.reparent(src, target.parent, h.State(target).level)
		target.list.insertAfter(src, target)
	})
	h.dirty = true
}

// PlaceAsFirstChild moves every selected node to the front of target's
// children, preserving the selection's order, and expands target so the
// moved nodes are visible. Sources equal to target or ancestors of target are
// skipped.
func (h *Hierarchy) PlaceAsFirstChild(target *Node) {
	h.mustBeRegistered(target, "PlaceAsFirstChild")
	h.eachSourceReverse(func(src *Node) {
		if src == target || isAncestor(src, target) {
			return
		}
		h.reparent(src, target, h.State(target).level+1)
		target.children.pushFront(src)
	})
	h.State(target).expanded = true
	h.dirty = true
}

// PromoteToRoot moves every selected node to the front of the root list,
// preserving the selection's order.
func (h *Hierarchy) PromoteToRoot() {
	h.eachSourceReverse(func(src *Node) {
		h.reparent(src, nil, 0)
		h.registry.roots.pushFront(src)
	})
	h.dirty = true
}

// ApplyMove runs m immediately. Panics on an unknown move kind.
func (h *Hierarchy) ApplyMove(m Move) {
	switch m.Kind {
	case MovePlaceAbove:
		h.PlaceAbove(m.Target)
	case MovePlaceBelow:
		h.PlaceBelow(m.Target)
	case MoveFirstChild:
		h.PlaceAsFirstChild(m.Target)
	case MovePromoteToRoot:
		h.PromoteToRoot()
	default:
		panic(fmt.Sprintf("outliner: unknown move kind %d", m.Kind))
	}
	h.logger.Debug("move applied", "kind", m.Kind.String(), "target", nodeName(m.Target),
		"sources", len(h.selection))
	if h.OnMove != nil {
		h.OnMove(m)
	}
}

// RequestMove applies m now, or, while a frame is traversing the tree,
// records it to be applied at the start of the next Update. Only one move
// can be pending: a later request replaces an earlier one.
func (h *Hierarchy) RequestMove(m Move) {
	if h.traversing == 0 {
		h.ApplyMove(m)
		return
	}
	if h.hasPending {
		h.logger.Debug("pending move replaced",
			"old", h.pending.Kind.String(), "new", m.Kind.String())
	}
	h.pending = m
	h.hasPending = true
}

// PendingMove returns the move waiting for the next Update, if any.
func (h *Hierarchy) PendingMove() (Move, bool) {
	return h.pending, h.hasPending
}

// DiscardPendingMove drops the pending move without applying it.
func (h *Hierarchy) DiscardPendingMove() {
	h.pending = Move{}
	h.hasPending = false
}

// eachSourceReverse calls fn for each selected node from the highest index
// down. The selection is snapshotted first because fn splices nodes.
func (h *Hierarchy) eachSourceReverse(fn func(*Node)) {
	sources := h.Selected()
	for i := len(sources) - 1; i >= 0; i-- {
		fn(sources[i])
	}
}

// reparent detaches src, points it at parent and restamps the levels of its
// subtree. The caller links src into its new list.
func (h *Hierarchy) reparent(src, parent *Node, level int) {
	src.detach()
	src.parent = parent
	h.State(src).level = level
	h.restampLevels(src, level+1)
}

// restampLevels stamps level on n's children and one more per generation
// below them, including nodes hidden under collapsed ancestors.
func (h *Hierarchy) restampLevels(n *Node, level int) {
	for c := n.children.first; c != nil; c = c.next {
		h.State(c).level = level
		h.restampLevels(c, level+1)
	}
}

func (h *Hierarchy) mustBeRegistered(n *Node, op string) {
	if n == nil || !n.Registered() {
		panic(fmt.Sprintf("outliner: %s target %q is not registered", op, nodeName(n)))
	}
}
