// Package sine implements a monophonic, MIDI-driven sine synthesizer:
// a phase-accumulator oscillator, a linear attack/release envelope, and a
// block renderer that splits each audio block at MIDI event boundaries so
// note changes land on the exact sample they were timestamped for.
//
// The engine is an explicit instance with fixed-size value state only. It is
// single-threaded and allocation-free once constructed: safe inside a real-time
// audio callback. Rendering and Prepare must not run concurrently; that is
// the caller's responsibility.
package sine

import "github.com/hollance/synth-recipes/internal/midi"

// Config selects runtime behavior for one engine instance.
type Config struct {
	// EnvelopeEnabled applies the attack/release ramp to the output. When
	// false the output is unscaled and a released note cuts off immediately.
	EnvelopeEnabled bool
	AttackSec       float64
	ReleaseSec      float64
}

// DefaultConfig enables the envelope with 10 ms attack and release ramps.
func DefaultConfig() Config {
	return Config{
		EnvelopeEnabled: true,
		AttackSec:       0.01,
		ReleaseSec:      0.01,
	}
}

// Stats counts what the output guard had to do. Cheap counters instead of
// logging: the render path must never block or branch on I/O.
type Stats struct {
	SpansClamped  int // spans where at least one sample was clamped to +/-1
	SpansSilenced int // spans zeroed for NaN/Inf or runaway magnitude
}

// Engine owns the single voice and renders audio blocks from it.
// The zero Config is usable but silent-on-release; most callers want
// DefaultConfig. Call Prepare before the first RenderBlock.
type Engine struct {
	voice voice
	stats Stats
}

func New(cfg Config) *Engine {
	e := &Engine{}
	e.voice.envOn = cfg.EnvelopeEnabled
	e.voice.attackSec = cfg.AttackSec
	e.voice.releaseSec = cfg.ReleaseSec
	return e
}

// Prepare (re)initializes the engine for a sample rate: active note cleared,
// envelope level zeroed, oscillator reset. Must not overlap a RenderBlock.
func (e *Engine) Prepare(sampleRate float64) {
	e.voice.prepare(sampleRate)
}

// Silent reports whether the voice is fully quiescent, including any
// release tail still fading out.
func (e *Engine) Silent() bool {
	return e.voice.silent()
}

// Stats returns the accumulated output-guard counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// RenderBlock fills frames samples of out in place. out holds one or two
// channel slices, each at least frames long; a mono voice value is written
// to every channel so stereo stays phase coherent.
//
// events must be in nondecreasing SampleOffset order with offsets inside
// [0, frames). The block is rendered in contiguous spans between event
// timestamps: each event's MIDI effect is applied exactly at its offset,
// before the next span renders. Events sharing an offset apply in given
// order with nothing rendered between them. The slice is consumed in one
// pass and never replayed.
func (e *Engine) RenderBlock(out [][]float32, frames int, events []midi.Event) {
	cursor := 0
	for _, ev := range events {
		if off := int(ev.SampleOffset); off > cursor {
			e.renderSpan(out, cursor, off-cursor)
			cursor = off
		}
		e.handleMIDI(ev.Status, ev.Data1, ev.Data2)
	}
	if frames > cursor {
		e.renderSpan(out, cursor, frames-cursor)
	}
}

// handleMIDI applies one message to the voice. Only note-on and note-off are
// recognized; a note-on with velocity 0 is a note-off by MIDI convention.
// Anything else is dropped without error.
func (e *Engine) handleMIDI(status, data1, data2 byte) {
	switch status & 0xF0 {
	case midi.StatusNoteOff:
		e.voice.noteOff(int(data1))
	case midi.StatusNoteOn:
		if data2 > 0 {
			e.voice.noteOn(int(data1), int(data2))
		} else {
			e.voice.noteOff(int(data1))
		}
	}
}

// renderSpan fills [start, start+n) on every channel and then runs the
// output guard over each touched slice — silent spans included, so the
// guard stays the one unconditional enforcement point.
func (e *Engine) renderSpan(out [][]float32, start, n int) {
	for i := 0; i < n; i++ {
		s := float32(e.voice.renderSample())
		for c := range out {
			out[c][start+i] = s
		}
	}
	for c := range out {
		res := guardSpan(out[c][start : start+n])
		if res.clamped {
			e.stats.SpansClamped++
		}
		if res.silenced {
			e.stats.SpansSilenced++
		}
	}
}
