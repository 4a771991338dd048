package outliner

import (
	"sort"
	"time"
)

// Recalculate flattens the visible tree in pre-order. Every node not hidden
// by a collapsed ancestor gets a contiguous index, its level, its row offset
// and its subtree height (own row plus expanded descendants; a collapsed node
// is exactly one row). Root-level nodes are recorded in offset order for
// FindFirstVisible. Selection keys are rebuilt from the new indices.
func (h *Hierarchy) Recalculate() {
	var t0 time.Time
	if h.debug {
		t0 = time.Now()
	}

	h.rootIndex = h.rootIndex[:0]
	h.rowCount = 0
	h.totalHeight = 0
	h.layoutList(&h.registry.roots, 0)
	h.dirty = false

	h.rebuildSelection()

	if h.debug {
		h.logger.Debug("hierarchy recalculated",
			"rows", h.rowCount,
			"roots", len(h.rootIndex),
			"height", h.totalHeight,
			"elapsed", time.Since(t0))
		h.debugValidate()
	}
}

// layoutList assigns layout to each node of l and its expanded descendants
// and returns the summed height of l's nodes.
func (h *Hierarchy) layoutList(l *List, level int) float64 {
	rowHeight := h.cfg.RowHeight
	var total float64
	for n := l.first; n != nil; n = n.next {
		st := h.State(n)
		st.index = h.rowCount
		st.level = level
		st.offset = h.totalHeight
		st.height = rowHeight
		h.rowCount++
		h.totalHeight += rowHeight

		if level == 0 {
			h.rootIndex = append(h.rootIndex, n)
		}
		if st.expanded && n.children.len > 0 {
			st.height += h.layoutList(&n.children, level+1)
		}
		total += st.height
	}
	return total
}

// RowCount returns the number of visible rows after the last Recalculate.
func (h *Hierarchy) RowCount() int {
	return h.rowCount
}

// TotalHeight returns the document height after the last Recalculate.
func (h *Hierarchy) TotalHeight() float64 {
	return h.totalHeight
}

// FindFirstVisible returns the last root-level node whose offset is at or
// above scrollY, the subtree a renderer starts walking from. A scrollY above
// the document returns the first root; a scrollY below it returns the last
// root. Returns nil, false only for an empty tree.
func (h *Hierarchy) FindFirstVisible(scrollY float64) (*Node, bool) {
	if len(h.rootIndex) == 0 {
		return nil, false
	}
	// First root strictly below scrollY; the one before it is the answer.
	i := sort.Search(len(h.rootIndex), func(i int) bool {
		return h.states[h.rootIndex[i]].offset > scrollY
	})
	if i > 0 {
		i--
	}
	return h.rootIndex[i], true
}

// RowAt returns the visible node whose row contains document coordinate y.
// Whole child subtrees that end above y are skipped using their heights, so
// the lookup costs O(log R + depth * siblings).
func (h *Hierarchy) RowAt(y float64) (*Node, bool) {
	if y < 0 || y >= h.totalHeight {
		return nil, false
	}
	n, ok := h.FindFirstVisible(y)
	if !ok {
		return nil, false
	}
	rowHeight := h.cfg.RowHeight
	for {
		st := h.State(n)
		if y < st.offset+rowHeight {
			return n, true
		}
		if !st.expanded {
			return nil, false
		}
		var next *Node
		for c := n.children.first; c != nil; c = c.next {
			cs := h.State(c)
			if y < cs.offset+cs.height {
				next = c
				break
			}
		}
		if next == nil {
			return nil, false
		}
		n = next
	}
}

// VisibleRows calls fn, in document order, for every row intersecting the
// viewport [scrollY, scrollY+viewportHeight). It stops early when fn returns
// false. Move requests issued from fn (or from input processed while the
// walk runs) are deferred to the next Update. fn is meant to read state; if
// it removes the current row from the registry the walk ends there.
func (h *Hierarchy) VisibleRows(scrollY, viewportHeight float64, fn func(n *Node, st *NodeState) bool) {
	if scrollY < 0 {
		scrollY = 0
	}
	n, ok := h.RowAt(scrollY)
	if !ok {
		return
	}

	h.traversing++
	defer func() { h.traversing-- }()

	bottom := scrollY + viewportHeight
	for n != nil {
		st := h.State(n)
		if st.offset >= bottom {
			return
		}
		if !fn(n, st) {
			return
		}
		if _, ok := h.states[n]; !ok {
			return
		}
		n, _ = h.Next(n)
	}
}

// Traversing reports whether a VisibleRows walk or pointer processing is in
// progress, during which moves are deferred.
func (h *Hierarchy) Traversing() bool {
	return h.traversing > 0
}
