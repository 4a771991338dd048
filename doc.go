// Package outliner is the data model behind a scene-hierarchy outliner: a
// tree of named nodes that an editor displays, scrolls, reorders by
// drag-and-drop, and multi-selects, where the number of rows on screen is
// tiny compared to the number of nodes.
//
// # Quick start
//
// A [Registry] owns the nodes. A [Hierarchy] observes it and keeps the
// per-node UI state (expansion, selection, flattened layout):
//
//	reg := outliner.NewRegistry()
//	h := outliner.NewHierarchy(reg, outliner.DefaultConfig())
//
//	a := reg.Create("A")
//	reg.CreateChild("B", a)
//	c := reg.CreateChild("C", a)
//	reg.CreateChild("D", c)
//
// Drive it once per frame from your game loop. Update applies deferred moves
// and recalculates the layout if anything changed; rendering only reads:
//
//	func (g *Game) Update() error {
//		g.h.Update()
//		g.h.ProcessPointer(outliner.PointerEvent{X: mx, Y: my, ScrollY: g.scroll.Y, Pressed: down})
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.h.VisibleRows(g.scroll.Y, g.scroll.ViewportHeight, func(n *outliner.Node, st *outliner.NodeState) bool {
//			drawRow(screen, n, st.Offset()-g.scroll.Y, st.Level())
//			return true
//		})
//	}
//
// # Layout
//
// [Hierarchy.Recalculate] walks the tree in pre-order, descending only into
// expanded nodes, and assigns each visible node a contiguous index, a level,
// a row offset and a subtree height. Root-level offsets are kept in a sorted
// index so [Hierarchy.FindFirstVisible] and [Hierarchy.RowAt] find the first
// on-screen row in O(log R) for R root nodes, independent of tree size.
//
// # Visual order
//
// [Hierarchy.Next] and [Hierarchy.Previous] step through rows exactly in
// rendered order and classify the step as child, sibling, or parent. They are
// the basis for range selection ([Hierarchy.ExtendSelectionTo]) and drop
// planning ([Hierarchy.PlanDrop]).
//
// # Moves
//
// [Hierarchy.PlaceAbove], [Hierarchy.PlaceBelow],
// [Hierarchy.PlaceAsFirstChild] and [Hierarchy.PromoteToRoot] reparent the
// whole selection, refusing any source that would become its own
// descendant. [Hierarchy.RequestMove] defers a move issued while a frame is
// walking the tree until the next Update.
//
// # Threading
//
// Everything here is single-threaded. Registry and Hierarchy must only be
// used from the goroutine running the editor loop.
package outliner
