package outliner

// Previous returns the row rendered directly above n.
//
// With a previous sibling p: if p is collapsed or childless, p is returned as
// RelationSibling; otherwise the walk descends p's last-child chain while
// each node is expanded and has children, and the deepest node is returned
// as RelationChild. Without a previous sibling the parent is returned as
// RelationParent. The first row has no previous: nil, RelationNone.
func (h *Hierarchy) Previous(n *Node) (*Node, Relation) {
	p := n.prev
	if p == nil {
		if n.parent == nil {
			return nil, RelationNone
		}
		return n.parent, RelationParent
	}
	if p.children.len == 0 || !h.State(p).expanded {
		return p, RelationSibling
	}
	for p.children.len > 0 && h.State(p).expanded {
		p = p.children.last
	}
	return p, RelationChild
}

// Next returns the row rendered directly below n.
//
// An expanded node with children yields its first child (RelationChild).
// Otherwise the next sibling is returned (RelationSibling). Otherwise the
// walk climbs the ancestors and returns the next sibling of the nearest one
// that has one (RelationParent). The last row has no next: nil, RelationNone.
func (h *Hierarchy) Next(n *Node) (*Node, Relation) {
	if n.children.len > 0 && h.State(n).expanded {
		return n.children.first, RelationChild
	}
	if n.next != nil {
		return n.next, RelationSibling
	}
	for p := n.parent; p != nil; p = p.parent {
		if p.next != nil {
			return p.next, RelationParent
		}
	}
	return nil, RelationNone
}

// AncestorAtLevel walks from n (inclusive) up through its parents and
// returns the first node whose level equals level.
func (h *Hierarchy) AncestorAtLevel(n *Node, level int) (*Node, bool) {
	for p := n; p != nil; p = p.parent {
		if h.State(p).level == level {
			return p, true
		}
	}
	return nil, false
}

// IsAncestorOf reports whether candidate is a strict ancestor of n.
// A node is not its own ancestor.
func (h *Hierarchy) IsAncestorOf(candidate, n *Node) bool {
	return isAncestor(candidate, n)
}

// IsVisible reports whether every ancestor of n is expanded.
func (h *Hierarchy) IsVisible(n *Node) bool {
	for p := n.parent; p != nil; p = p.parent {
		if !h.State(p).expanded {
			return false
		}
	}
	return true
}
