package midi

import "sort"

type scheduled struct {
	frame int64
	ev    Event
}

// Schedule holds MIDI events at absolute frame positions and hands them out
// one audio block at a time with block-relative offsets. Events added in any
// order are played back in time order; ties keep insertion order.
//
// A Schedule is not safe for concurrent use; callers that feed it from
// outside the render path must serialize access themselves.
type Schedule struct {
	events []scheduled
	pos    int64
	sorted bool
}

// Add appends an event at the given absolute frame position.
func (s *Schedule) Add(frame int64, ev Event) {
	s.events = append(s.events, scheduled{frame: frame, ev: ev})
	s.sorted = false
}

// AddNote schedules a complete note: note-on at startFrame, note-off after
// durFrames. Zero or negative durations still emit the note-off so the
// voice is never left hanging.
func (s *Schedule) AddNote(startFrame, durFrames int64, note, velocity byte) {
	if durFrames < 0 {
		durFrames = 0
	}
	s.Add(startFrame, NoteOn(0, note, velocity))
	s.Add(startFrame+durFrames, NoteOff(0, note))
}

// CollectBlock advances the schedule by frames and returns the events that
// fall inside that span, rebased to block-relative sample offsets. Events
// whose frame has already passed fire at offset 0. The returned slice is in
// nondecreasing offset order; nil when the span holds no events.
func (s *Schedule) CollectBlock(frames int) []Event {
	if !s.sorted {
		sort.SliceStable(s.events, func(i, j int) bool {
			return s.events[i].frame < s.events[j].frame
		})
		s.sorted = true
	}
	end := s.pos + int64(frames)
	var out []Event
	for len(s.events) > 0 && s.events[0].frame < end {
		se := s.events[0]
		s.events = s.events[1:]
		rel := se.frame - s.pos
		if rel < 0 {
			rel = 0
		}
		ev := se.ev
		ev.SampleOffset = uint32(rel)
		out = append(out, ev)
	}
	s.pos = end
	return out
}

// Pending returns the number of events not yet collected.
func (s *Schedule) Pending() int {
	return len(s.events)
}

// Reset drops all pending events and rewinds the frame position to zero.
func (s *Schedule) Reset() {
	s.events = s.events[:0]
	s.pos = 0
	s.sorted = true
}
