package outliner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var (
	// ErrUnknownAction is returned for a script step with an unsupported action.
	ErrUnknownAction = errors.New("unknown script action")
	// ErrUnknownNode is returned when a step names a node that does not exist.
	ErrUnknownNode = errors.New("unknown node")
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action  string   `json:"action"`
	Name    string   `json:"name,omitempty"`
	Parent  string   `json:"parent,omitempty"`
	Target  string   `json:"target,omitempty"`
	X       float64  `json:"x,omitempty"`
	Y       float64  `json:"y,omitempty"`
	FromX   float64  `json:"fromX,omitempty"`
	FromY   float64  `json:"fromY,omitempty"`
	ToX     float64  `json:"toX,omitempty"`
	ToY     float64  `json:"toY,omitempty"`
	ScrollY float64  `json:"scrollY,omitempty"`
	Frames  int      `json:"frames,omitempty"`
	Mods    []string `json:"mods,omitempty"`
}

// scriptFile is the top-level JSON structure of a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays hierarchy edits and synthetic pointer input one frame at a
// time. Node names in steps resolve to nodes the script created, then to the
// first registry node with that name.
type Script struct {
	steps  []scriptStep
	cursor int
	queue  []PointerEvent
	nodes  map[string]*Node
	done   bool
}

// LoadScript parses a JSON script of the form {"steps": [{"action": ...}]}.
func LoadScript(data []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	return &Script{steps: file.Steps, nodes: make(map[string]*Node)}, nil
}

// Done reports whether every step ran and every injected pointer frame was
// consumed.
func (s *Script) Done() bool {
	return s.done
}

// Node returns a node by name, as steps resolve it. Nodes removed by a
// script step are forgotten.
func (s *Script) Node(name string) (*Node, bool) {
	if n, ok := s.nodes[name]; ok {
		return n, true
	}
	return nil, false
}

// Run drives h until the script is done: each frame calls h.Update and then
// Step. A final Update applies any move requested by the last frame.
func (s *Script) Run(h *Hierarchy) error {
	for !s.done {
		h.Update()
		if err := s.Step(h); err != nil {
			return err
		}
	}
	h.Update()
	return nil
}

// Step advances the script by one frame. Queued pointer frames drain first,
// one per call; otherwise the next step runs.
func (s *Script) Step(h *Hierarchy) error {
	if s.done {
		return nil
	}
	if len(s.queue) > 0 {
		ev := s.queue[0]
		s.queue = s.queue[1:]
		h.ProcessPointer(ev)
		s.done = s.cursor >= len(s.steps) && len(s.queue) == 0
		return nil
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return nil
	}

	st := s.steps[s.cursor]
	s.cursor++
	if err := s.exec(h, st); err != nil {
		return fmt.Errorf("script step %d (%s): %w", s.cursor-1, st.Action, err)
	}
	s.done = s.cursor >= len(s.steps) && len(s.queue) == 0
	return nil
}

func (s *Script) exec(h *Hierarchy, st scriptStep) error {
	reg := h.Registry()
	switch st.Action {
	case "create":
		if st.Parent == "" {
			s.nodes[st.Name] = reg.Create(st.Name)
			return nil
		}
		parent, err := s.lookup(reg, st.Parent)
		if err != nil {
			return err
		}
		s.nodes[st.Name] = reg.CreateChild(st.Name, parent)
	case "remove":
		n, err := s.lookup(reg, st.Name)
		if err != nil {
			return err
		}
		reg.Remove(n)
		s.forgetRemoved(reg)
	case "select", "toggle", "extend", "expand", "collapse",
		"place_above", "place_below", "first_child":
		n, err := s.lookup(reg, s.subject(st))
		if err != nil {
			return err
		}
		s.apply(h, st.Action, n)
	case "promote":
		h.PromoteToRoot()
	case "update":
		h.Update()
	case "press":
		s.inject(st.X, st.Y, st.ScrollY, true, st.Mods)
	case "move":
		s.inject(st.X, st.Y, st.ScrollY, true, st.Mods)
	case "release":
		s.inject(st.X, st.Y, st.ScrollY, false, st.Mods)
	case "click":
		s.inject(st.X, st.Y, st.ScrollY, true, st.Mods)
		s.inject(st.X, st.Y, st.ScrollY, false, st.Mods)
	case "drag":
		s.injectDrag(st)
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, st.Action)
	}
	return nil
}

func (s *Script) apply(h *Hierarchy, action string, n *Node) {
	switch action {
	case "select":
		h.SetSelection(n)
	case "toggle":
		h.ToggleSelection(n)
	case "extend":
		h.ExtendSelectionTo(n)
	case "expand":
		h.SetExpanded(n, true)
	case "collapse":
		h.SetExpanded(n, false)
	case "place_above":
		h.RequestMove(Move{Kind: MovePlaceAbove, Target: n})
	case "place_below":
		h.RequestMove(Move{Kind: MovePlaceBelow, Target: n})
	case "first_child":
		h.RequestMove(Move{Kind: MoveFirstChild, Target: n})
	}
}

// subject prefers Target and falls back to Name.
func (s *Script) subject(st scriptStep) string {
	if st.Target != "" {
		return st.Target
	}
	return st.Name
}

// forgetRemoved drops every created node that is no longer in reg, which
// after a remove includes the removed node's descendants.
func (s *Script) forgetRemoved(reg *Registry) {
	for name, n := range s.nodes {
		if !reg.Contains(n) {
			delete(s.nodes, name)
		}
	}
}

func (s *Script) lookup(reg *Registry, name string) (*Node, error) {
	if n, ok := s.nodes[name]; ok && reg.Contains(n) {
		return n, nil
	}
	if n, ok := reg.Find(name); ok {
		return n, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownNode, name)
}

func (s *Script) inject(x, y, scrollY float64, pressed bool, mods []string) {
	s.queue = append(s.queue, PointerEvent{
		X:         x,
		Y:         y,
		ScrollY:   scrollY,
		Pressed:   pressed,
		Modifiers: parseModifiers(mods),
	})
}

// injectDrag queues a press at (fromX, fromY), linearly interpolated moves
// over frames-2 intermediate frames, and a release at (toX, toY).
func (s *Script) injectDrag(st scriptStep) {
	frames := st.Frames
	if frames < 2 {
		frames = 2
	}
	s.inject(st.FromX, st.FromY, st.ScrollY, true, st.Mods)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := st.FromX + (st.ToX-st.FromX)*t
		y := st.FromY + (st.ToY-st.FromY)*t
		s.inject(x, y, st.ScrollY, true, st.Mods)
	}
	s.inject(st.ToX, st.ToY, st.ScrollY, false, st.Mods)
}

func parseModifiers(names []string) KeyModifiers {
	var mods KeyModifiers
	for _, name := range names {
		switch strings.ToLower(name) {
		case "shift":
			mods |= ModShift
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt", "option":
			mods |= ModAlt
		case "meta", "cmd", "super":
			mods |= ModMeta
		}
	}
	return mods
}
