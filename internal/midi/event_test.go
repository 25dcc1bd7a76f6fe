package midi

import (
	"math"
	"testing"
)

func TestNoteOnNoteOffClassification(t *testing.T) {
	for _, tc := range []struct {
		name    string
		ev      Event
		wantOn  bool
		wantOff bool
	}{
		{"note-on", NoteOn(0, 60, 100), true, false},
		{"note-off", NoteOff(0, 60), false, true},
		{"velocity-0 note-on", NoteOn(0, 60, 0), false, true},
		{"control change", Event{Status: 0xB0, Data1: 64, Data2: 127}, false, false},
		{"note-on other channel", Event{Status: 0x93, Data1: 60, Data2: 100}, true, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ev.IsNoteOn(); got != tc.wantOn {
				t.Errorf("IsNoteOn() = %v, want %v", got, tc.wantOn)
			}
			if got := tc.ev.IsNoteOff(); got != tc.wantOff {
				t.Errorf("IsNoteOff() = %v, want %v", got, tc.wantOff)
			}
		})
	}
}

func TestNoteToFrequency(t *testing.T) {
	for _, tc := range []struct {
		note int
		want float64
	}{
		{69, 440},
		{57, 220},
		{81, 880},
		{60, 261.6255653005986},
	} {
		if got := NoteToFrequency(tc.note); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("NoteToFrequency(%d) = %v, want %v", tc.note, got, tc.want)
		}
	}
}
