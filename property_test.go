package outliner

import (
	"fmt"
	"math"
	"testing"

	"pgregory.net/rapid"
)

// genHierarchy draws a random forest of 1..40 nodes with roughly a quarter
// of them collapsed, laid out and ready to query.
func genHierarchy(t *rapid.T) (*Hierarchy, []*Node) {
	reg, h := newTestHierarchy(10)
	count := rapid.IntRange(1, 40).Draw(t, "nodes")
	nodes := make([]*Node, 0, count)
	for i := range count {
		parent := rapid.IntRange(-1, i-1).Draw(t, "parent")
		name := fmt.Sprintf("n%d", i)
		if parent < 0 {
			nodes = append(nodes, reg.Create(name))
		} else {
			nodes = append(nodes, reg.CreateChild(name, nodes[parent]))
		}
	}
	for _, n := range nodes {
		if rapid.IntRange(0, 3).Draw(t, "collapse") == 0 {
			h.SetExpanded(n, false)
		}
	}
	h.Update()
	return h, nodes
}

func checkInvariants(t *rapid.T, h *Hierarchy) {
	if err := h.CheckInvariants(); err != nil {
		t.Fatalf("invariants violated:\n%v", err)
	}
}

func TestPropLayoutIsContiguousPreOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h, _ := genHierarchy(t)
		checkInvariants(t, h)

		rows := 0
		for n := h.Registry().Roots().First(); n != nil; n, _ = h.Next(n) {
			st := h.State(n)
			if st.Index() != rows {
				t.Fatalf("%v index = %d, want %d", n, st.Index(), rows)
			}
			if st.Offset() != float64(rows)*10 {
				t.Fatalf("%v offset = %v, want %v", n, st.Offset(), float64(rows)*10)
			}
			if !st.Expanded() && st.Height() != 10 {
				t.Fatalf("collapsed %v height = %v, want 10", n, st.Height())
			}
			if !h.IsVisible(n) {
				t.Fatalf("Next yielded hidden node %v", n)
			}
			rows++
		}
		if rows != h.RowCount() {
			t.Fatalf("walked %d rows, RowCount = %d", rows, h.RowCount())
		}
		if h.TotalHeight() != float64(rows)*10 {
			t.Fatalf("TotalHeight = %v, want %v", h.TotalHeight(), float64(rows)*10)
		}
	})
}

func TestPropNextPreviousRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h, _ := genHierarchy(t)
		first := h.Registry().Roots().First()
		if prev, rel := h.Previous(first); prev != nil || rel != RelationNone {
			t.Fatalf("Previous(first) = %v, %v", prev, rel)
		}
		for n := first; n != nil; {
			next, _ := h.Next(n)
			if next == nil {
				break
			}
			if back, _ := h.Previous(next); back != n {
				t.Fatalf("Previous(Next(%v)) = %v", n, back)
			}
			n = next
		}
	})
}

func TestPropRowAtMatchesOffsets(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h, _ := genHierarchy(t)
		y := rapid.Float64Range(0, h.TotalHeight()-0.001).Draw(t, "y")
		n, ok := h.RowAt(y)
		if !ok {
			t.Fatalf("RowAt(%v) missed inside a %v document", y, h.TotalHeight())
		}
		if want := int(math.Floor(y / 10)); h.State(n).Index() != want {
			t.Fatalf("RowAt(%v) = %v at index %d, want index %d", y, n, h.State(n).Index(), want)
		}
	})
}

func TestPropFindFirstVisibleIsLastRootAbove(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h, _ := genHierarchy(t)
		y := rapid.Float64Range(0, h.TotalHeight()+50).Draw(t, "y")
		root, ok := h.FindFirstVisible(y)
		if !ok {
			t.Fatal("FindFirstVisible missed on a non-empty tree")
		}
		if !root.IsRoot() {
			t.Fatalf("FindFirstVisible returned non-root %v", root)
		}
		if h.State(root).Offset() > y {
			t.Fatalf("root %v offset %v is below y %v", root, h.State(root).Offset(), y)
		}
		if next := root.NextSibling(); next != nil && h.State(next).Offset() <= y {
			t.Fatalf("root %v at %v is also above y %v", next, h.State(next).Offset(), y)
		}
	})
}

func TestPropMovesKeepStructure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h, nodes := genHierarchy(t)
		reg := h.Registry()
		total := reg.Len()

		steps := rapid.IntRange(1, 10).Draw(t, "steps")
		for range steps {
			h.ClearSelection()
			for _, n := range nodes {
				if rapid.IntRange(0, 4).Draw(t, "select") == 0 {
					h.ToggleSelection(n)
				}
			}
			kind := MoveKind(rapid.IntRange(int(MovePlaceAbove), int(MovePromoteToRoot)).Draw(t, "kind"))
			target := rapid.SampledFrom(nodes).Draw(t, "target")

			blocked := true
			for _, src := range h.Selected() {
				if src != target && !isAncestor(src, target) {
					blocked = false
				}
			}
			before := treeString(reg)

			h.ApplyMove(Move{Kind: kind, Target: target})
			h.Update()
			checkInvariants(t, h)

			if reg.Len() != total {
				t.Fatalf("registry holds %d nodes, want %d", reg.Len(), total)
			}
			if kind != MovePromoteToRoot && blocked && treeString(reg) != before {
				t.Fatalf("%v onto %v changed the tree:\n%s\n%s", kind, target, before, treeString(reg))
			}
			for _, n := range nodes {
				if want := depth(n); h.State(n).Level() != want {
					t.Fatalf("%v level = %d, want depth %d", n, h.State(n).Level(), want)
				}
			}
		}
	})
}

func TestPropExtendSelectionCoversRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h, _ := genHierarchy(t)
		var visible []*Node
		for n := h.Registry().Roots().First(); n != nil; n, _ = h.Next(n) {
			visible = append(visible, n)
		}
		i := rapid.IntRange(0, len(visible)-1).Draw(t, "from")
		j := rapid.IntRange(0, len(visible)-1).Draw(t, "to")

		h.SetSelection(visible[i])
		h.ExtendSelectionTo(visible[j])

		lo, hi := min(i, j), max(i, j)
		if h.SelectionLen() != hi-lo+1 {
			t.Fatalf("SelectionLen = %d, want %d", h.SelectionLen(), hi-lo+1)
		}
		for k := lo; k <= hi; k++ {
			if !h.IsSelected(visible[k]) {
				t.Fatalf("%v at row %d should be selected", visible[k], k)
			}
		}
	})
}
