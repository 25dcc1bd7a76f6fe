package sine

import "math"

const twoPi = 2 * math.Pi

// oscillator is a phase accumulator producing one sine sample per tick.
// Both fields are plain value state so a voice can live inside a real-time
// callback without allocation.
type oscillator struct {
	phase float64 // radians, kept in [0, 2*pi)
	inc   float64 // radians per sample
}

// setFrequency derives the per-sample phase increment. No range check on hz;
// frequencies at or above Nyquist alias rather than fail.
func (o *oscillator) setFrequency(hz, sampleRate float64) {
	o.inc = hz * twoPi / sampleRate
}

func (o *oscillator) reset() {
	o.phase = 0
	o.inc = 0
}

// tick returns sin(phase) and advances the accumulator. A single subtraction
// wraps the phase; the increment is assumed smaller than 2*pi, i.e. the
// frequency stays well below the sample rate.
func (o *oscillator) tick() float64 {
	out := math.Sin(o.phase)
	o.phase += o.inc
	if o.phase > twoPi {
		o.phase -= twoPi
	}
	return out
}
