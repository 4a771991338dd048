package outliner

import (
	"errors"
	"fmt"
)

// debugMaxTreeDepth and debugMaxChildCount are the thresholds above which
// debug mode logs a warning.
const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// CheckInvariants walks the registry and the hierarchy state and reports
// every broken structural invariant: container back-links, parent links,
// missing or orphaned state, contiguous pre-order indices, non-decreasing
// offsets, subtree heights, and selection keys. Layout checks are skipped
// while the layout is dirty.
func (h *Hierarchy) CheckInvariants() error {
	var errs []error
	seen := make(map[*Node]bool, len(h.states))

	var checkList func(l *List, parent *Node)
	checkList = func(l *List, parent *Node) {
		count := 0
		var prev *Node
		for n := l.first; n != nil; n = n.next {
			count++
			seen[n] = true
			if n.list != l {
				errs = append(errs, fmt.Errorf("node %q: container link does not resolve to its list", n.Name))
			}
			if n.prev != prev {
				errs = append(errs, fmt.Errorf("node %q: broken prev link", n.Name))
			}
			if n.parent != parent {
				errs = append(errs, fmt.Errorf("node %q: parent %q, want %q", n.Name, nodeName(n.parent), nodeName(parent)))
			}
			if _, ok := h.states[n]; !ok {
				errs = append(errs, fmt.Errorf("node %q: no hierarchy state", n.Name))
			}
			prev = n
			checkList(&n.children, n)
		}
		if l.last != prev {
			errs = append(errs, fmt.Errorf("list under %q: last link is stale", nodeName(parent)))
		}
		if l.len != count {
			errs = append(errs, fmt.Errorf("list under %q: len %d, counted %d", nodeName(parent), l.len, count))
		}
	}
	checkList(&h.registry.roots, nil)

	for n := range h.states {
		if !seen[n] {
			errs = append(errs, fmt.Errorf("node %q: state outlives registration", n.Name))
		}
	}

	if !h.dirty && len(errs) == 0 {
		errs = append(errs, h.checkLayout()...)
	}
	return errors.Join(errs...)
}

// checkLayout verifies the flattened projection against a fresh walk.
func (h *Hierarchy) checkLayout() []error {
	var errs []error
	want := 0
	lastOffset := -1.0
	var walk func(l *List, level int) float64
	walk = func(l *List, level int) float64 {
		var total float64
		for n := l.first; n != nil; n = n.next {
			st := h.states[n]
			if st.index != want {
				errs = append(errs, fmt.Errorf("node %q: index %d, want %d", n.Name, st.index, want))
			}
			if st.level != level {
				errs = append(errs, fmt.Errorf("node %q: level %d, want %d", n.Name, st.level, level))
			}
			if st.offset < lastOffset {
				errs = append(errs, fmt.Errorf("node %q: offset %v decreases from %v", n.Name, st.offset, lastOffset))
			}
			lastOffset = st.offset
			want++
			height := h.cfg.RowHeight
			if st.expanded {
				height += walk(&n.children, level+1)
			}
			if st.height != height {
				errs = append(errs, fmt.Errorf("node %q: height %v, want %v", n.Name, st.height, height))
			}
			total += height
		}
		return total
	}
	walk(&h.registry.roots, 0)
	if want != h.rowCount {
		errs = append(errs, fmt.Errorf("row count %d, want %d", h.rowCount, want))
	}

	for i, e := range h.selection {
		st, ok := h.states[e.node]
		if !ok || !st.selected {
			errs = append(errs, fmt.Errorf("selection entry %q is not selected", e.node.Name))
			continue
		}
		if e.index != st.index {
			errs = append(errs, fmt.Errorf("selection entry %q: key %d, index %d", e.node.Name, e.index, st.index))
		}
		if i > 0 && h.selection[i-1].index > e.index {
			errs = append(errs, fmt.Errorf("selection out of order at %q", e.node.Name))
		}
	}
	for n, st := range h.states {
		if st.selected && !h.selectionContains(n) {
			errs = append(errs, fmt.Errorf("node %q: selected but missing from the selection set", n.Name))
		}
	}
	return errs
}

func (h *Hierarchy) selectionContains(n *Node) bool {
	for _, e := range h.selection {
		if e.node == n {
			return true
		}
	}
	return false
}

// debugValidate logs invariant violations and size warnings. Only called in
// debug mode.
func (h *Hierarchy) debugValidate() {
	if err := h.CheckInvariants(); err != nil {
		h.logger.Error("hierarchy invariants violated", "err", err)
	}
	var walk func(l *List, depth int)
	walk = func(l *List, depth int) {
		if l.len > debugMaxChildCount {
			parent := "<root>"
			if l.first != nil && l.first.parent != nil {
				parent = l.first.parent.Name
			}
			h.logger.Warn("container exceeds child threshold",
				"parent", parent, "children", l.len, "threshold", debugMaxChildCount)
		}
		for n := l.first; n != nil; n = n.next {
			if depth+1 > debugMaxTreeDepth && n.children.len == 0 {
				h.logger.Warn("tree depth exceeds threshold",
					"node", n.Name, "depth", depth+1, "threshold", debugMaxTreeDepth)
			}
			walk(&n.children, depth+1)
		}
	}
	walk(&h.registry.roots, 0)
}
