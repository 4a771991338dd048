package outliner

import "iter"

// Node is a named element of the scene hierarchy. Identity is pointer
// identity. Nodes are created through a Registry and always live in exactly
// one List: the registry's root list or their parent's children.
//
// The sibling links are intrusive so a node can be detached from and spliced
// into any list in O(1) without searching.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Node
	children List

	// Container membership: list is the List that currently holds this
	// node (nil when unregistered), prev/next are the neighbours inside it.
	list       *List
	prev, next *Node
}

// Parent returns the parent node, or nil for a root-level node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the live child list. The list MUST NOT be mutated by the
// caller except through Registry and Hierarchy operations.
func (n *Node) Children() *List {
	return &n.children
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	return n.children.len
}

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool {
	return n.children.len > 0
}

// NextSibling returns the node after n in its container, or nil.
func (n *Node) NextSibling() *Node {
	return n.next
}

// PrevSibling returns the node before n in its container, or nil.
func (n *Node) PrevSibling() *Node {
	return n.prev
}

// IsRoot reports whether n sits in the registry's root list.
func (n *Node) IsRoot() bool {
	return n.list != nil && n.parent == nil
}

// Registered reports whether n currently belongs to a container. Children of
// a removed node still do; use Registry.Contains to test membership in the
// tree.
func (n *Node) Registered() bool {
	return n.list != nil
}

// String returns the node name.
func (n *Node) String() string {
	return n.Name
}

// --- List ---

// List is an ordered, intrusive sequence of nodes. The zero value is an
// empty list.
type List struct {
	first, last *Node
	len         int
}

// First returns the first node, or nil if the list is empty.
func (l *List) First() *Node {
	return l.first
}

// Last returns the last node, or nil if the list is empty.
func (l *List) Last() *Node {
	return l.last
}

// Len returns the number of nodes in the list.
func (l *List) Len() int {
	return l.len
}

// All iterates the list front to back. The list must not be spliced while
// the iteration is running.
func (l *List) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := l.first; n != nil; n = n.next {
			if !yield(n) {
				return
			}
		}
	}
}

// Backward iterates the list back to front.
func (l *List) Backward() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := l.last; n != nil; n = n.prev {
			if !yield(n) {
				return
			}
		}
	}
}

// pushBack appends an unlinked node.
func (l *List) pushBack(n *Node) {
	n.list = l
	n.next = nil
	n.prev = l.last
	if l.last != nil {
		l.last.next = n
	} else {
		l.first = n
	}
	l.last = n
	l.len++
}

// pushFront prepends an unlinked node.
func (l *List) pushFront(n *Node) {
	n.list = l
	n.prev = nil
	n.next = l.first
	if l.first != nil {
		l.first.prev = n
	} else {
		l.last = n
	}
	l.first = n
	l.len++
}

// insertBefore links an unlinked node in front of mark. mark must belong to l.
func (l *List) insertBefore(n, mark *Node) {
	n.list = l
	n.next = mark
	n.prev = mark.prev
	if mark.prev != nil {
		mark.prev.next = n
	} else {
		l.first = n
	}
	mark.prev = n
	l.len++
}

// insertAfter links an unlinked node behind mark. mark must belong to l.
func (l *List) insertAfter(n, mark *Node) {
	n.list = l
	n.prev = mark
	n.next = mark.next
	if mark.next != nil {
		mark.next.prev = n
	} else {
		l.last = n
	}
	mark.next = n
	l.len++
}

// remove unlinks n from l. n must belong to l.
func (l *List) remove(n *Node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.first = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.last = n.prev
	}
	n.prev = nil
	n.next = nil
	n.list = nil
	l.len--
}

// detach removes n from whichever list holds it. No-op for unlinked nodes.
func (n *Node) detach() {
	if n.list != nil {
		n.list.remove(n)
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is a strict ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node.parent; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// walkSubtree calls fn for every descendant of n in pre-order, excluding n.
func walkSubtree(n *Node, fn func(*Node)) {
	for c := n.children.first; c != nil; c = c.next {
		fn(c)
		walkSubtree(c, fn)
	}
}
