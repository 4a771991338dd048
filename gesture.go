package outliner

import "math"

// PointerEvent is one frame of primary-button pointer input. X and Y are
// relative to the viewport's top-left corner; ScrollY is the document offset
// of the viewport's top edge.
type PointerEvent struct {
	X, Y      float64
	ScrollY   float64
	Pressed   bool
	Modifiers KeyModifiers
}

// pointerState tracks one press/drag/release interaction in document
// coordinates.
type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	pressNode *Node
	dragging  bool
}

// ProcessPointer runs the pointer state machine for one frame.
//
// A press followed by a release over the same row is a click: plain clicks
// set the selection, Ctrl/Meta toggles, Shift extends from the anchor.
// Moving farther than the drag dead zone while pressed starts a drag; a row
// that was not selected becomes the selection. While dragging, DropPreview
// reports the planned drop under the pointer. Releasing over a row requests
// the planned move, which is applied by the next Update; releasing outside
// every row abandons the drag.
func (h *Hierarchy) ProcessPointer(ev PointerEvent) {
	h.traversing++
	defer func() { h.traversing-- }()

	x, y := ev.X, ev.Y+ev.ScrollY
	hit, _ := h.RowAt(y)
	ps := &h.pointer

	switch {
	case ev.Pressed && !ps.down:
		*ps = pointerState{
			down:      true,
			startX:    x,
			startY:    y,
			lastX:     x,
			lastY:     y,
			pressNode: hit,
		}
	case !ev.Pressed && ps.down:
		if ps.dragging {
			h.endDrag(hit, x, y)
		} else if ps.pressNode != nil && ps.pressNode == hit {
			h.click(hit, ev.Modifiers)
		}
		h.pointer = pointerState{lastX: x, lastY: y}
		h.hasPreview = false
	case ev.Pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		if !ps.dragging && ps.pressNode != nil {
			dx := x - ps.startX
			dy := y - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > h.cfg.DragDeadZone {
				ps.dragging = true
				if !h.State(ps.pressNode).selected {
					h.SetSelection(ps.pressNode)
				}
				h.logger.Debug("drag started", "node", ps.pressNode.Name, "selected", len(h.selection))
			}
		}
		if ps.dragging {
			h.updatePreview(hit, x, y)
		}
		ps.lastX = x
		ps.lastY = y
	default:
		ps.lastX = x
		ps.lastY = y
	}
}

// Dragging returns the node the current drag started on.
func (h *Hierarchy) Dragging() (*Node, bool) {
	if !h.pointer.dragging {
		return nil, false
	}
	return h.pointer.pressNode, true
}

// DropPreview returns the drop planned under the pointer while dragging.
func (h *Hierarchy) DropPreview() (DropPlan, bool) {
	return h.preview, h.hasPreview
}

// CancelDrag abandons the current press or drag and discards any pending
// move without applying it.
func (h *Hierarchy) CancelDrag() {
	if h.pointer.dragging {
		h.logger.Debug("drag abandoned", "node", nodeName(h.pointer.pressNode))
	}
	h.pointer = pointerState{lastX: h.pointer.lastX, lastY: h.pointer.lastY}
	h.hasPreview = false
	h.preview = DropPlan{}
	h.DiscardPendingMove()
}

func (h *Hierarchy) click(n *Node, mods KeyModifiers) {
	switch {
	case mods&(ModCtrl|ModMeta) != 0:
		h.ToggleSelection(n)
	case mods&ModShift != 0:
		if !h.ExtendSelectionTo(n) && h.anchor == nil {
			h.SetSelection(n)
		}
	default:
		h.SetSelection(n)
	}
}

func (h *Hierarchy) updatePreview(hit *Node, x, y float64) {
	if hit == nil {
		h.hasPreview = false
		h.preview = DropPlan{}
		return
	}
	fraction := (y - h.State(hit).offset) / h.cfg.RowHeight
	h.preview = h.PlanDrop(hit, fraction, h.ColumnAt(x))
	h.hasPreview = true
}

func (h *Hierarchy) endDrag(hit *Node, x, y float64) {
	h.updatePreview(hit, x, y)
	if !h.hasPreview {
		h.logger.Debug("drag released outside rows", "node", nodeName(h.pointer.pressNode))
		return
	}
	plan := h.preview
	if !h.DropAllowed(plan) {
		h.logger.Debug("drop refused", "kind", plan.Move.Kind.String(), "target", nodeName(plan.Move.Target))
		return
	}
	h.RequestMove(plan.Move)
}
