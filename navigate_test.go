package outliner

import "testing"

type step struct {
	from *Node
	want *Node
	rel  Relation
}

func checkSteps(t *testing.T, name string, fn func(*Node) (*Node, Relation), steps []step) {
	t.Helper()
	for _, s := range steps {
		got, rel := fn(s.from)
		if got != s.want || rel != s.rel {
			t.Errorf("%s(%v) = (%v, %v), want (%v, %v)", name, s.from, got, rel, s.want, s.rel)
		}
	}
}

func TestNextScenario(t *testing.T) {
	s := newScenario(t)
	checkSteps(t, "Next", s.h.Next, []step{
		{s.a, s.b, RelationChild},
		{s.b, s.c, RelationSibling},
		{s.c, s.d, RelationChild},
		{s.d, s.e, RelationSibling},
		{s.e, nil, RelationNone},
	})
}

func TestPreviousScenario(t *testing.T) {
	s := newScenario(t)
	checkSteps(t, "Previous", s.h.Previous, []step{
		{s.e, s.d, RelationSibling},
		{s.d, s.c, RelationParent},
		{s.c, s.b, RelationSibling},
		{s.b, s.a, RelationParent},
		{s.a, nil, RelationNone},
	})
}

func TestNextClimbsToNearestAncestorSibling(t *testing.T) {
	// A{B{C}, X}, D
	reg, h := newTestHierarchy(10)
	a := reg.Create("A")
	b := reg.CreateChild("B", a)
	c := reg.CreateChild("C", b)
	x := reg.CreateChild("X", a)
	d := reg.Create("D")
	h.Update()

	checkSteps(t, "Next", h.Next, []step{
		{c, x, RelationParent},
		{x, d, RelationParent},
		{d, nil, RelationNone},
	})
	checkSteps(t, "Previous", h.Previous, []step{
		{d, x, RelationChild},
		{x, c, RelationChild},
	})
}

func TestNavigationSkipsCollapsed(t *testing.T) {
	// A{B{C}}, D with B collapsed
	reg, h := newTestHierarchy(10)
	a := reg.Create("A")
	b := reg.CreateChild("B", a)
	reg.CreateChild("C", b)
	d := reg.Create("D")
	h.SetExpanded(b, false)
	h.Update()

	checkSteps(t, "Next", h.Next, []step{
		{b, d, RelationParent},
	})
	checkSteps(t, "Previous", h.Previous, []step{
		{d, b, RelationChild},
	})

	h.SetExpanded(a, false)
	h.Update()
	checkSteps(t, "Next", h.Next, []step{
		{a, d, RelationSibling},
	})
	checkSteps(t, "Previous", h.Previous, []step{
		{d, a, RelationSibling},
	})
}

func TestNextPreviousRoundTrip(t *testing.T) {
	s := newScenario(t)
	s.reg.Create("F")
	s.h.Update()
	for n := s.reg.Roots().First(); n != nil; {
		next, rel := s.h.Next(n)
		if next == nil {
			break
		}
		if back, _ := s.h.Previous(next); back != n {
			t.Errorf("Previous(Next(%v)) = %v via %v", n, back, rel)
		}
		n = next
	}
}

func TestAncestorAtLevel(t *testing.T) {
	s := newScenario(t)
	tests := []struct {
		level int
		want  *Node
		ok    bool
	}{
		{0, s.a, true},
		{1, s.c, true},
		{2, s.e, true},
		{3, nil, false},
	}
	for _, tt := range tests {
		got, ok := s.h.AncestorAtLevel(s.e, tt.level)
		if got != tt.want || ok != tt.ok {
			t.Errorf("AncestorAtLevel(E, %d) = (%v, %v), want (%v, %v)", tt.level, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsAncestorOf(t *testing.T) {
	s := newScenario(t)
	tests := []struct {
		candidate, n *Node
		want         bool
	}{
		{s.a, s.e, true},
		{s.c, s.e, true},
		{s.b, s.e, false},
		{s.e, s.e, false},
		{s.e, s.a, false},
	}
	for _, tt := range tests {
		if got := s.h.IsAncestorOf(tt.candidate, tt.n); got != tt.want {
			t.Errorf("IsAncestorOf(%v, %v) = %v, want %v", tt.candidate, tt.n, got, tt.want)
		}
	}
}

func TestIsVisible(t *testing.T) {
	s := newScenario(t)
	s.h.SetExpanded(s.c, false)
	if !s.h.IsVisible(s.c) {
		t.Error("C should be visible")
	}
	if s.h.IsVisible(s.d) {
		t.Error("D should be hidden under collapsed C")
	}
}

func TestRelationString(t *testing.T) {
	tests := map[Relation]string{
		RelationNone:    "none",
		RelationChild:   "child",
		RelationSibling: "sibling",
		RelationParent:  "parent",
		Relation(99):    "unknown",
	}
	for r, want := range tests {
		if got := r.String(); got != want {
			t.Errorf("Relation(%d).String() = %q, want %q", r, got, want)
		}
	}
}
