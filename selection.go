package outliner

import (
	"cmp"
	"slices"
)

// selectionEntry keys a selected node by its flattened index.
type selectionEntry struct {
	index int
	node  *Node
}

func compareEntries(a, b selectionEntry) int {
	return cmp.Compare(a.index, b.index)
}

// SetSelection clears the selection, selects only n and makes it the anchor.
func (h *Hierarchy) SetSelection(n *Node) {
	h.ClearSelection()
	h.State(n).selected = true
	h.insertSelectionEntry(n)
	h.anchor = n
}

// ToggleSelection flips n's selected state and makes n the anchor either way.
// Returns the new state.
func (h *Hierarchy) ToggleSelection(n *Node) bool {
	st := h.State(n)
	st.selected = !st.selected
	if st.selected {
		h.insertSelectionEntry(n)
	} else {
		h.removeSelectionEntry(n)
	}
	h.anchor = n
	return st.selected
}

// ExtendSelectionTo selects every row from the anchor to target inclusive,
// walking in document order (forward when target's index is greater than
// the anchor's). Existing selections elsewhere are kept. The walk stops early
// if it runs out of rows. target becomes the new anchor. Returns false, and
// does nothing, when there is no anchor or the anchor is target.
//
// Indices must be current: call Update first after structural changes.
func (h *Hierarchy) ExtendSelectionTo(target *Node) bool {
	if h.anchor == nil || h.anchor == target {
		return false
	}
	forward := h.State(target).index > h.State(h.anchor).index
	for cur := h.anchor; cur != nil; {
		h.selectNode(cur)
		if cur == target {
			break
		}
		if forward {
			cur, _ = h.Next(cur)
		} else {
			cur, _ = h.Previous(cur)
		}
	}
	h.anchor = target
	return true
}

// ClearSelection deselects every node. The anchor is kept.
func (h *Hierarchy) ClearSelection() {
	for _, e := range h.selection {
		if st, ok := h.states[e.node]; ok {
			st.selected = false
		}
	}
	h.selection = h.selection[:0]
}

// IsSelected reports whether n is selected.
func (h *Hierarchy) IsSelected(n *Node) bool {
	return h.State(n).selected
}

// Selected returns the selected nodes ordered by flattened index.
func (h *Hierarchy) Selected() []*Node {
	nodes := make([]*Node, len(h.selection))
	for i, e := range h.selection {
		nodes[i] = e.node
	}
	return nodes
}

// SelectionLen returns the number of selected nodes.
func (h *Hierarchy) SelectionLen() int {
	return len(h.selection)
}

// Anchor returns the node range selection extends from, or nil.
func (h *Hierarchy) Anchor() *Node {
	return h.anchor
}

func (h *Hierarchy) selectNode(n *Node) {
	st := h.State(n)
	if st.selected {
		return
	}
	st.selected = true
	h.insertSelectionEntry(n)
}

func (h *Hierarchy) insertSelectionEntry(n *Node) {
	e := selectionEntry{index: h.State(n).index, node: n}
	i, _ := slices.BinarySearchFunc(h.selection, e, compareEntries)
	// Stale indices may collide before the next Recalculate; keep both.
	for i < len(h.selection) && h.selection[i].index == e.index {
		i++
	}
	h.selection = slices.Insert(h.selection, i, e)
}

func (h *Hierarchy) removeSelectionEntry(n *Node) {
	h.selection = slices.DeleteFunc(h.selection, func(e selectionEntry) bool {
		return e.node == n
	})
}

// rebuildSelection re-keys every entry from its node's current index.
func (h *Hierarchy) rebuildSelection() {
	for i := range h.selection {
		h.selection[i].index = h.states[h.selection[i].node].index
	}
	slices.SortStableFunc(h.selection, compareEntries)
}
