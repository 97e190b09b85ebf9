package tacmap

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := logOut
	logOut = &buf
	t.Cleanup(func() { logOut = old })
	return &buf
}

func TestDebugCheckRemoved(t *testing.T) {
	// Release mode ignores removed entities.
	debugCheckRemoved(true, "SetPosition", "ghost")

	s := NewSession()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	debugCheckRemoved(false, "SetPosition", "live")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for a removed entity")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "SetPosition") || !strings.Contains(msg, `"ghost"`) {
			t.Errorf("panic message = %q", msg)
		}
	}()
	debugCheckRemoved(true, "SetPosition", "ghost")
}

func TestRemovedZonePanicsInDebug(t *testing.T) {
	s := NewSession()
	z := s.AddNewZone()
	s.RemoveZone(z)
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when resizing a removed zone")
		}
	}()
	z.SetSize(3, 3)
}

func TestLogPrefixes(t *testing.T) {
	buf := captureLog(t)
	logf("loaded %d tokens", 3)
	warnf("missing %s", "image")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q, want 2", lines)
	}
	if !strings.Contains(lines[0], "[tacmap]") || !strings.HasSuffix(lines[0], "loaded 3 tokens") {
		t.Errorf("logf line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "warning:") || !strings.HasSuffix(lines[1], "missing image") {
		t.Errorf("warnf line = %q", lines[1])
	}
}

func TestDebugLogOnlyInDebugMode(t *testing.T) {
	buf := captureLog(t)
	s := NewSession()
	s.debugLog(debugStats{commandCount: 10})
	if buf.Len() != 0 {
		t.Errorf("release mode logged %q", buf.String())
	}

	s.SetDebugMode(true)
	defer s.SetDebugMode(false)
	s.debugLog(debugStats{commandCount: 10, recomputeCount: 1, recomputedEntities: 1})
	out := buf.String()
	if !strings.Contains(out, "commands: 10") {
		t.Errorf("log = %q, want command count", out)
	}
	if strings.Contains(out, "warning:") {
		t.Errorf("unexpected warning in %q", out)
	}
}

func TestDebugLogWarnsOnExcessRecomputes(t *testing.T) {
	buf := captureLog(t)
	s := NewSession()
	s.AddNewToken()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	s.debugLog(debugStats{recomputeCount: 5, recomputedEntities: 1})
	if !strings.Contains(buf.String(), "5 recomputes for 1 entities") {
		t.Errorf("log = %q, want recompute warning", buf.String())
	}
}

func TestRecomputeStatsReset(t *testing.T) {
	s := NewSession()
	s.AddNewToken()
	s.AddNewToken()
	s.ctx.SetGridCellSize(60)
	if s.recomputeCount != 4 || s.recomputed.Size() != 2 {
		t.Errorf("stats = (%d, %d), want (4, 2)", s.recomputeCount, s.recomputed.Size())
	}
	s.resetRecomputeStats()
	if s.recomputeCount != 0 || s.recomputed.Size() != 0 {
		t.Errorf("after reset = (%d, %d), want (0, 0)", s.recomputeCount, s.recomputed.Size())
	}
}
