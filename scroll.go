package outliner

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Scroller holds a viewport's vertical scroll position over a Hierarchy's
// document and animates scroll-to-row requests.
type Scroller struct {
	// Y is the document offset of the viewport's top edge.
	Y float64
	// ViewportHeight is the visible height in pixels.
	ViewportHeight float64

	tween *gween.Tween
}

// NewScroller creates a Scroller for a viewport of the given height.
func NewScroller(viewportHeight float64) *Scroller {
	return &Scroller{ViewportHeight: viewportHeight}
}

// MaxY returns the largest valid Y for a document of the given height.
func (s *Scroller) MaxY(totalHeight float64) float64 {
	return max(0, totalHeight-s.ViewportHeight)
}

// ScrollBy moves the viewport by dy pixels, cancelling any animation.
func (s *Scroller) ScrollBy(dy, totalHeight float64) {
	s.tween = nil
	s.Y = clampFloat(s.Y+dy, 0, s.MaxY(totalHeight))
}

// ScrollToRow animates the viewport so n's row is fully visible, moving as
// little as possible. Returns false, without scrolling, when the row is
// already visible or hidden under a collapsed ancestor. A nil easeFn uses
// ease.OutQuad; a zero duration jumps immediately.
func (s *Scroller) ScrollToRow(h *Hierarchy, n *Node, duration float32, easeFn ease.TweenFunc) bool {
	if !h.IsVisible(n) {
		return false
	}
	top := h.State(n).offset
	bottom := top + h.cfg.RowHeight

	var target float64
	switch {
	case top < s.Y:
		target = top
	case bottom > s.Y+s.ViewportHeight:
		target = bottom - s.ViewportHeight
	default:
		return false
	}
	target = clampFloat(target, 0, s.MaxY(h.totalHeight))

	if duration <= 0 {
		s.tween = nil
		s.Y = target
		return true
	}
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	s.tween = gween.New(float32(s.Y), float32(target), duration, easeFn)
	return true
}

// Animating reports whether a scroll animation is running.
func (s *Scroller) Animating() bool {
	return s.tween != nil
}

// Update advances the scroll animation by dt seconds.
func (s *Scroller) Update(dt float32) {
	if s.tween == nil {
		return
	}
	val, done := s.tween.Update(dt)
	s.Y = float64(val)
	if done {
		s.tween = nil
	}
}

// Clamp pulls Y back into range after the document shrank.
func (s *Scroller) Clamp(totalHeight float64) {
	s.Y = clampFloat(s.Y, 0, s.MaxY(totalHeight))
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
