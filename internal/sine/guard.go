package sine

import "math"

// feedbackThreshold marks samples so far out of range that the whole span is
// presumed garbage (runaway feedback, broken math) rather than mere overdrive.
const feedbackThreshold = 2.0

type guardResult struct {
	clamped  bool // at least one sample was pulled back to +/-1
	silenced bool // the span was zeroed outright
}

// guardSpan is the engine's single safety net, run over every rendered
// channel span without exception. One left-to-right scan:
//
//   - NaN or Inf anywhere zeroes the ENTIRE span and stops scanning. One
//     corrupted sample invalidates the whole block; this is deliberate,
//     not a bug, even though it destroys otherwise-valid samples.
//   - Magnitude above 2 is treated the same way.
//   - Magnitude above 1 (exactly 1 is fine) clamps just that sample and
//     scanning continues. Only the first clamp in a span is flagged.
func guardSpan(buf []float32) guardResult {
	var res guardResult
	for i, x := range buf {
		kill := false
		switch {
		case math.IsNaN(float64(x)) || math.IsInf(float64(x), 0):
			kill = true
		case x < -feedbackThreshold || x > feedbackThreshold:
			kill = true
		case x < -1:
			buf[i] = -1
			res.clamped = true
		case x > 1:
			buf[i] = 1
			res.clamped = true
		}
		if kill {
			for j := range buf {
				buf[j] = 0
			}
			res.silenced = true
			return res
		}
	}
	return res
}
