package sine

import "github.com/hollance/synth-recipes/internal/midi"

// velocityCeiling maps full velocity to -6 dB, leaving headroom so the
// raw sine can never reach the clamp threshold on its own.
const velocityCeiling = 0.5

// voice is the single note-producing unit of the engine. A new note-on
// always steals it: pitch, amplitude and envelope target are overwritten
// even while the previous note is still releasing.
type voice struct {
	note       int // 0 = none, 1-127 = active MIDI note
	freq       float64
	amp        float64
	sampleRate float64

	osc oscillator
	env envelope

	envOn      bool
	attackSec  float64
	releaseSec float64
}

// prepare resets the voice for a (new) sample rate. Callers must not render
// concurrently; the engine has no internal synchronization.
func (v *voice) prepare(sampleRate float64) {
	v.sampleRate = sampleRate
	v.note = 0
	v.env.level = 0
	v.env.slope = 0
	v.osc.reset()
}

// noteOn steals the voice for the given note. The oscillator phase is kept:
// a phase jump would click, and the envelope alone handles declicking.
func (v *voice) noteOn(note, velocity int) {
	v.note = note
	v.amp = float64(velocity) / 127.0 * velocityCeiling
	v.freq = midi.NoteToFrequency(note)
	v.env.noteTriggered(v.sampleRate, v.attackSec)
	v.osc.setFrequency(v.freq, v.sampleRate)
}

// noteOff releases the voice only when the note matches the active one.
// Stale note-offs from a stolen voice are ignored.
func (v *voice) noteOff(note int) {
	if v.note != note {
		return
	}
	v.note = 0
	v.env.noteReleased(v.sampleRate, v.releaseSec)
}

// silent reports whether the voice needs no render work. With the envelope
// off there is no release tail, so an inactive note is enough.
func (v *voice) silent() bool {
	if !v.envOn {
		return v.note == 0
	}
	return v.note == 0 && v.env.level == 0
}

// renderSample produces one output sample. A silent voice returns exactly 0
// and advances nothing; state must not drift while idle.
func (v *voice) renderSample() float64 {
	if v.silent() {
		return 0
	}
	out := v.osc.tick() * v.amp
	if v.envOn {
		out *= v.env.tick()
	}
	return out
}
