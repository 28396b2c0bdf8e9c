package touch

import (
	"math/rand"
	"testing"
)

// lineOf flattens an emission for comparison, empty when nothing came out.
func lineOf(msg Message, ok bool) string {
	if !ok {
		return ""
	}
	return msg.Line()
}

func TestTracker_ContactLifecycle(t *testing.T) {
	tr := NewTracker(Mapping{ScreenW: 800, ScreenH: 480, TargetW: 828, TargetH: 1792})

	// axis updates while idle are recorded but not emitted
	if got := lineOf(tr.PointerX(400)); got != "" {
		t.Fatalf("Expected nothing, got %q", got)
	}
	if got := lineOf(tr.PointerY(240)); got != "" {
		t.Fatalf("Expected nothing, got %q", got)
	}

	if got := lineOf(tr.Touch(true)); got != "DOWN 414 896" {
		t.Fatalf("Expected DOWN 414 896, got %q", got)
	}

	// same device position again, target unchanged
	if got := lineOf(tr.PointerX(400)); got != "" {
		t.Fatalf("Expected nothing, got %q", got)
	}
	if got := lineOf(tr.PointerY(240)); got != "" {
		t.Fatalf("Expected nothing, got %q", got)
	}

	// a real move, one MOVE per axis event
	if got := lineOf(tr.PointerX(100)); got != "MOVE 103 896" {
		t.Fatalf("Expected MOVE 103 896, got %q", got)
	}
	if got := lineOf(tr.PointerY(100)); got != "MOVE 103 373" {
		t.Fatalf("Expected MOVE 103 373, got %q", got)
	}

	if got := lineOf(tr.Touch(false)); got != "UP 103 373" {
		t.Fatalf("Expected UP 103 373, got %q", got)
	}

	// still idle, nothing to emit
	if got := lineOf(tr.PointerX(0)); got != "" {
		t.Fatalf("Expected nothing, got %q", got)
	}
	if got := lineOf(tr.PointerY(0)); got != "" {
		t.Fatalf("Expected nothing, got %q", got)
	}

	// a fresh contact uses the latest recorded position
	if got := lineOf(tr.Touch(true)); got != "DOWN 0 0" {
		t.Fatalf("Expected DOWN 0 0, got %q", got)
	}
}

func TestTracker_RedundantSignals(t *testing.T) {
	tr := NewTracker(Mapping{ScreenW: 800, ScreenH: 480, TargetW: 828, TargetH: 1792})

	// release while idle
	if got := lineOf(tr.Touch(false)); got != "" {
		t.Fatalf("Expected nothing, got %q", got)
	}

	if got := lineOf(tr.Touch(true)); got != "DOWN 0 0" {
		t.Fatalf("Expected DOWN 0 0, got %q", got)
	}

	// press while already touching
	if got := lineOf(tr.Touch(true)); got != "" {
		t.Fatalf("Expected nothing, got %q", got)
	}

	if got := lineOf(tr.Touch(false)); got != "UP 0 0" {
		t.Fatalf("Expected UP 0 0, got %q", got)
	}

	// release while already idle
	if got := lineOf(tr.Touch(false)); got != "" {
		t.Fatalf("Expected nothing, got %q", got)
	}
}

func TestTracker_QuantizedMoveSuppression(t *testing.T) {
	// distinct device readings that collapse onto the same target pixel
	// must not produce redundant MOVEs
	tr := NewTracker(Mapping{ScreenW: 1000, ScreenH: 1000, TargetW: 100, TargetH: 100})

	tr.PointerX(15)
	tr.PointerY(15)
	if got := lineOf(tr.Touch(true)); got != "DOWN 1 1" {
		t.Fatalf("Expected DOWN 1 1, got %q", got)
	}

	if got := lineOf(tr.PointerX(19)); got != "" {
		t.Fatalf("Expected nothing, got %q", got)
	}
	if got := lineOf(tr.PointerY(12)); got != "" {
		t.Fatalf("Expected nothing, got %q", got)
	}

	if got := lineOf(tr.PointerX(20)); got != "MOVE 2 1" {
		t.Fatalf("Expected MOVE 2 1, got %q", got)
	}
}

func TestTracker_RandomStream(t *testing.T) {
	tr := NewTracker(Mapping{ScreenW: 800, ScreenH: 480, TargetW: 828, TargetH: 1792})

	touching := false
	lastX, lastY := 0, 0
	hasLast := false

	checkMove := func(msg Message, ok bool) {
		if !ok {
			return
		}
		if !touching {
			t.Fatal("MOVE while idle")
		}
		if msg.Verb != Move {
			t.Fatalf("Expected MOVE, got %s", msg.Verb)
		}
		if hasLast && msg.X == lastX && msg.Y == lastY {
			t.Fatalf("duplicate MOVE %d %d", msg.X, msg.Y)
		}
		lastX, lastY, hasLast = msg.X, msg.Y, true
	}

	for range 100_000 + rand.Intn(100_000) {
		switch rand.Intn(4) {
		case 0:
			checkMove(tr.PointerX(rand.Intn(800)))
		case 1:
			checkMove(tr.PointerY(rand.Intn(480)))
		case 2:
			msg, ok := tr.Touch(true)
			if touching {
				if ok {
					t.Fatal("second DOWN without UP")
				}
			} else {
				if !ok || msg.Verb != Down {
					t.Fatal("press while idle must emit DOWN")
				}
				touching = true
				lastX, lastY, hasLast = msg.X, msg.Y, true
			}
		case 3:
			msg, ok := tr.Touch(false)
			if touching {
				if !ok || msg.Verb != Up {
					t.Fatal("release while touching must emit UP")
				}
				touching = false
				hasLast = false
			} else if ok {
				t.Fatal("UP while already idle")
			}
		}
	}
}
