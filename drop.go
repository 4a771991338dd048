package outliner

import "math"

// DropPlan describes where a drag released over a row would put the
// selection and how to draw the insertion indicator.
type DropPlan struct {
	Zone DropZone
	Move Move
	// Level is the indent level of the insertion line.
	Level int
	// Parent is the ancestor the selection lands next to when the pointer's
	// indent column climbs out of the row's own level (nil otherwise). Views
	// highlight it as the drop's anchor.
	Parent *Node
}

// ZoneAt classifies a pointer position inside a row, given as the fraction
// of the row height measured from the row's top.
func (h *Hierarchy) ZoneAt(fraction float64) DropZone {
	switch {
	case fraction <= h.cfg.DropAboveFraction:
		return DropAbove
	case fraction >= h.cfg.DropBelowFraction:
		return DropBelow
	default:
		return DropInto
	}
}

// ColumnAt converts a pointer x, relative to the row's left edge, into an
// indent column (negative left of the level-0 line).
func (h *Hierarchy) ColumnAt(x float64) int {
	return int(math.Floor((x - h.cfg.LineStartOffset) / h.cfg.IndentWidth))
}

// PlanDrop computes the move for a drop onto target. fraction is the pointer
// position inside target's row (0 top, 1 bottom) and column the pointer's
// indent column, which picks the level when the gap between two rows is
// shared by several depths.
func (h *Hierarchy) PlanDrop(target *Node, fraction float64, column int) DropPlan {
	switch h.ZoneAt(fraction) {
	case DropAbove:
		return h.planAbove(target, column)
	case DropBelow:
		return h.planBelow(target, column)
	default:
		return DropPlan{
			Zone:  DropInto,
			Move:  Move{Kind: MoveFirstChild, Target: target},
			Level: h.State(target).level + 1,
		}
	}
}

// planAbove handles the gap between target and the row above it.
func (h *Hierarchy) planAbove(target *Node, column int) DropPlan {
	plan := DropPlan{Zone: DropAbove}
	prev, rel := h.Previous(target)
	switch rel {
	case RelationNone:
		plan.Move = Move{Kind: MovePromoteToRoot}
		plan.Level = 0
	case RelationChild:
		// The row above closes one or more subtrees: any level from the
		// deepest one up to target's own is a valid insertion point.
		prevLevel := h.State(prev).level
		plan.Level = clampInt(column, h.State(target).level, prevLevel)
		if plan.Level == prevLevel {
			plan.Move = Move{Kind: MovePlaceBelow, Target: prev}
			break
		}
		anc, _ := h.AncestorAtLevel(prev, plan.Level)
		plan.Move = Move{Kind: MovePlaceBelow, Target: anc}
		plan.Parent = anc
	default:
		plan.Level = h.State(target).level
		plan.Move = Move{Kind: MovePlaceAbove, Target: target}
	}
	return plan
}

// planBelow handles the gap between target and the row below it.
func (h *Hierarchy) planBelow(target *Node, column int) DropPlan {
	plan := DropPlan{Zone: DropBelow}
	next, rel := h.Next(target)
	switch rel {
	case RelationChild:
		plan.Level = h.State(next).level
		plan.Move = Move{Kind: MoveFirstChild, Target: target}
		return plan
	case RelationSibling:
		plan.Level = h.State(next).level
		plan.Move = Move{Kind: MovePlaceBelow, Target: target}
		return plan
	}

	// target ends one or more subtrees. Levels between the next row's
	// and target's own are all valid; the last row can climb to 0.
	minLevel := 0
	if rel == RelationParent {
		minLevel = h.State(next).level
	}
	targetLevel := h.State(target).level
	plan.Level = clampInt(column, minLevel, targetLevel)
	if plan.Level == targetLevel {
		plan.Move = Move{Kind: MovePlaceBelow, Target: target}
		return plan
	}
	anc, _ := h.AncestorAtLevel(target, plan.Level)
	plan.Move = Move{Kind: MovePlaceBelow, Target: anc}
	plan.Parent = anc
	return plan
}

// DropAllowed reports whether applying plan would move at least one selected
// node: every source equal to or an ancestor of the destination is skipped.
func (h *Hierarchy) DropAllowed(plan DropPlan) bool {
	if plan.Move.Kind == MovePromoteToRoot {
		return len(h.selection) > 0
	}
	for _, e := range h.selection {
		if e.node != plan.Move.Target && !isAncestor(e.node, plan.Move.Target) {
			return true
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
