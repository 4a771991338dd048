package outliner

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCheckInvariantsClean(t *testing.T) {
	s := newScenario(t)
	assertInvariants(t, s.h)
}

func TestCheckInvariantsBrokenLinks(t *testing.T) {
	s := newScenario(t)
	s.c.children.len = 7
	s.e.prev = nil

	err := s.h.CheckInvariants()
	if err == nil {
		t.Fatal("expected violations")
	}
	for _, want := range []string{"broken prev link", "len 7, counted 2"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q:\n%v", want, err)
		}
	}
}

func TestCheckInvariantsStaleLayout(t *testing.T) {
	s := newScenario(t)
	s.h.State(s.d).offset = 0
	s.h.State(s.b).index = 9
	err := s.h.CheckInvariants()
	if err == nil {
		t.Fatal("expected violations")
	}
	for _, want := range []string{`"B": index 9, want 1`, `"D": offset 0 decreases`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q:\n%v", want, err)
		}
	}
}

func TestCheckInvariantsSkipsLayoutWhileDirty(t *testing.T) {
	s := newScenario(t)
	s.h.State(s.b).index = 9
	s.h.MarkDirty()
	assertInvariants(t, s.h)
}

func TestCheckInvariantsOrphanedState(t *testing.T) {
	s := newScenario(t)
	s.h.states[&Node{Name: "ghost"}] = &NodeState{}
	err := s.h.CheckInvariants()
	if err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Errorf("err = %v, want orphaned state for ghost", err)
	}
}

func TestCheckInvariantsSelection(t *testing.T) {
	s := newScenario(t)
	s.h.SetSelection(s.c)
	s.h.State(s.d).selected = true
	err := s.h.CheckInvariants()
	if err == nil || !strings.Contains(err.Error(), "missing from the selection set") {
		t.Errorf("err = %v, want missing selection entry", err)
	}
}

func TestDebugModeLogsRecalculate(t *testing.T) {
	var buf bytes.Buffer
	s := newScenario(t)
	s.h.SetLogger(debugLogger(&buf))
	s.h.SetDebugMode(true)
	s.h.MarkDirty()
	s.h.Update()

	out := buf.String()
	if !strings.Contains(out, "hierarchy recalculated") || !strings.Contains(out, "rows=5") {
		t.Errorf("missing recalculate log:\n%s", out)
	}
	if strings.Contains(out, "invariants violated") {
		t.Errorf("clean tree should not log violations:\n%s", out)
	}
}

func TestDebugModeWarnsOnWideContainer(t *testing.T) {
	var buf bytes.Buffer
	reg, h := newTestHierarchy(10)
	h.SetLogger(debugLogger(&buf))
	h.SetDebugMode(true)
	p := reg.Create("wide")
	for i := range debugMaxChildCount + 1 {
		reg.CreateChild(fmt.Sprintf("c%d", i), p)
	}
	h.Update()
	if !strings.Contains(buf.String(), "container exceeds child threshold") {
		t.Error("expected child count warning")
	}
}

func TestDebugModeWarnsOnDeepTree(t *testing.T) {
	var buf bytes.Buffer
	reg, h := newTestHierarchy(10)
	h.SetLogger(debugLogger(&buf))
	h.SetDebugMode(true)
	n := reg.Create("d0")
	for i := 1; i <= debugMaxTreeDepth+1; i++ {
		n = reg.CreateChild(fmt.Sprintf("d%d", i), n)
	}
	h.Update()
	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Error("expected depth warning")
	}
}

func TestDebugModeFromConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(10)
	cfg.Debug = true
	reg := NewRegistry()
	h := NewHierarchy(reg, cfg)
	h.SetLogger(debugLogger(&buf))
	reg.Create("a")
	h.Update()
	if !strings.Contains(buf.String(), "hierarchy recalculated") {
		t.Error("Config.Debug should enable debug logging")
	}
}

func TestDebugModeOffIsSilent(t *testing.T) {
	var buf bytes.Buffer
	s := newScenario(t)
	s.h.SetLogger(debugLogger(&buf))
	s.h.MarkDirty()
	s.h.Update()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got:\n%s", buf.String())
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	s := newScenario(t)
	s.h.SetLogger(nil)
	s.h.SetDebugMode(true)
	s.h.MarkDirty()
	s.h.Update()
}
