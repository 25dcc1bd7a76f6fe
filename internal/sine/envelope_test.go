package sine

import (
	"math"
	"testing"
)

func TestEnvelopeLevelStaysBounded(t *testing.T) {
	for _, tc := range []struct {
		name  string
		slope float64
	}{
		{"gentle attack", 0.001},
		{"steep attack", 5},
		{"gentle release", -0.001},
		{"steep release", -5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := envelope{level: 0.5, slope: tc.slope}
			for i := 0; i < 1000; i++ {
				lvl := e.tick()
				if lvl < 0 || lvl > 1 {
					t.Fatalf("tick %d: level %v outside [0, 1]", i, lvl)
				}
				if lvl != e.level {
					t.Fatalf("tick returned %v but stored %v", lvl, e.level)
				}
			}
		})
	}
}

func TestEnvelopeAttackSlope(t *testing.T) {
	var e envelope
	e.noteTriggered(48000, 0.01)
	want := 1.0 / (48000 * 0.01)
	if math.Abs(e.slope-want) > 1e-15 {
		t.Fatalf("attack slope = %v, want %v", e.slope, want)
	}
	e.noteReleased(48000, 0.01)
	if math.Abs(e.slope+want) > 1e-15 {
		t.Fatalf("release slope = %v, want %v", e.slope, -want)
	}
}

func TestEnvelopeRetriggerPivotsFromCurrentLevel(t *testing.T) {
	var e envelope
	e.noteTriggered(100, 0.1) // slope +0.1
	for i := 0; i < 10; i++ {
		e.tick()
	}
	if e.level != 1 {
		t.Fatalf("level after full attack = %v, want 1", e.level)
	}
	e.noteReleased(100, 0.1)
	for i := 0; i < 4; i++ {
		e.tick()
	}
	mid := e.level
	if mid <= 0 || mid >= 1 {
		t.Fatalf("expected mid-release level, got %v", mid)
	}

	// Retrigger must not reset the level; it resumes climbing from mid.
	e.noteTriggered(100, 0.1)
	if e.level != mid {
		t.Fatalf("retrigger changed level from %v to %v", mid, e.level)
	}
	if got := e.tick(); got <= mid {
		t.Fatalf("level after retrigger tick = %v, want > %v", got, mid)
	}
}

func TestEnvelopeSlopeNotZeroedAtRails(t *testing.T) {
	e := envelope{level: 1, slope: 0.25}
	e.tick()
	if e.slope != 0.25 {
		t.Fatalf("slope changed to %v at upper rail", e.slope)
	}
	e = envelope{level: 0, slope: -0.25}
	e.tick()
	if e.slope != -0.25 {
		t.Fatalf("slope changed to %v at lower rail", e.slope)
	}
}
