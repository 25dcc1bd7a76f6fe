package sine

// envelope is a linear ramp toward 0 or 1 used to fade notes in and out so
// transitions never click. It has no stage machine: the sign of slope is the
// whole state, and the level simply rails at the clamp bounds until the
// slope flips.
type envelope struct {
	level float64 // unitless gain, clamped to [0, 1]
	slope float64 // level change per sample; positive = attack
}

// noteTriggered aims the ramp at 1 over attackSec seconds. The level is left
// alone on purpose: retriggering mid-release pivots from the current level
// instead of jumping, which is what avoids the click.
func (e *envelope) noteTriggered(sampleRate, attackSec float64) {
	e.slope = 1.0 / (sampleRate * attackSec)
}

// noteReleased aims the ramp at 0 over releaseSec seconds.
func (e *envelope) noteReleased(sampleRate, releaseSec float64) {
	e.slope = -1.0 / (sampleRate * releaseSec)
}

// tick advances the ramp one sample and returns the post-clamp level.
// The slope is not zeroed when the level hits a rail; the voice decides
// silence from the active note and the level, not from envelope state.
func (e *envelope) tick() float64 {
	e.level += e.slope
	if e.level >= 1 {
		e.level = 1
	} else if e.level <= 0 {
		e.level = 0
	}
	return e.level
}
