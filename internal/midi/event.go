package midi

import "math"

// Status byte high nibbles for the channel voice messages the synth reacts to.
// Everything else passes through the engine unrecognized and is dropped.
const (
	StatusNoteOff = 0x80
	StatusNoteOn  = 0x90
)

// Event is one raw MIDI message pinned to a frame inside an audio block.
// SampleOffset is relative to the start of the block the event is delivered
// with. Events are immutable once built; the engine consumes them read-only.
type Event struct {
	SampleOffset uint32
	Status       byte
	Data1        byte
	Data2        byte
}

// NoteOn builds a note-on event on channel 1.
func NoteOn(offset uint32, note, velocity byte) Event {
	return Event{SampleOffset: offset, Status: StatusNoteOn, Data1: note, Data2: velocity}
}

// NoteOff builds a note-off event on channel 1.
func NoteOff(offset uint32, note byte) Event {
	return Event{SampleOffset: offset, Status: StatusNoteOff, Data1: note}
}

// IsNoteOn reports whether the event triggers a note. A note-on with
// velocity 0 is a note-off by MIDI convention and returns false here.
func (e Event) IsNoteOn() bool {
	return e.Status&0xF0 == StatusNoteOn && e.Data2 > 0
}

// IsNoteOff reports whether the event releases a note, counting the
// velocity-0 note-on form.
func (e Event) IsNoteOff() bool {
	switch e.Status & 0xF0 {
	case StatusNoteOff:
		return true
	case StatusNoteOn:
		return e.Data2 == 0
	}
	return false
}

// Note returns the note number carried by a note-on or note-off event.
func (e Event) Note() int {
	return int(e.Data1)
}

// Velocity returns the velocity carried by a note-on event.
func (e Event) Velocity() int {
	return int(e.Data2)
}

// NoteToFrequency converts a MIDI note number to its equal-tempered
// frequency with A4 (note 69) at 440 Hz.
func NoteToFrequency(note int) float64 {
	return 440.0 * math.Exp2(float64(note-69)/12.0)
}
