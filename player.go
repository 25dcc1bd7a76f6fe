// Package synth is a monophonic MIDI sine synthesizer. The root package is
// the playback facade: Player streams the engine to the audio device in real
// time, the offline helpers render the same engine to a sample buffer or a
// 16-bit PCM WAV file. The synthesis core lives in internal/sine.
package synth

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	intaudio "github.com/hollance/synth-recipes/internal/audio"
	intmidi "github.com/hollance/synth-recipes/internal/midi"
	intsine "github.com/hollance/synth-recipes/internal/sine"
)

// Note is one scheduled note in a sequence: when it starts, how long it
// holds before release, and how hard it is struck. The engine is
// monophonic, so overlapping notes steal the voice in start order.
type Note struct {
	Number   int // MIDI note number, 1-127
	Velocity int // 1-127
	Start    time.Duration
	Duration time.Duration
}

type PlayerOption func(*playerConfig)

type playerConfig struct {
	engine    intsine.Config
	sampleTap func([]float32)
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{engine: intsine.DefaultConfig()}
}

// WithEnvelope toggles the attack/release declick ramp. Disabling it makes
// note edges instantaneous (and clicky); useful for analysis and tests.
func WithEnvelope(enabled bool) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.engine.EnvelopeEnabled = enabled
	}
}

// WithAttackTime sets the envelope attack ramp length. Default 10 ms.
func WithAttackTime(d time.Duration) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.engine.AttackSec = d.Seconds()
	}
}

// WithReleaseTime sets the envelope release ramp length. Default 10 ms.
func WithReleaseTime(d time.Duration) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.engine.ReleaseSec = d.Seconds()
	}
}

// WithSampleTap installs a callback invoked with each generated stereo
// buffer. The callback runs on the audio thread; keep work brief and
// non-blocking.
func WithSampleTap(tap func([]float32)) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleTap = tap
	}
}

// Player renders the sine engine to the audio device. Construction is
// cheap and device-free; the audio backend opens on Play or Start.
type Player struct {
	mu         sync.Mutex
	sampleRate int
	cfg        playerConfig
	src        *engineSource
	audio      *intaudio.Player
	volume     float64
	done       chan struct{}
}

func NewPlayer(sampleRate int, opts ...PlayerOption) (*Player, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Player{
		sampleRate: sampleRate,
		cfg:        cfg,
		volume:     1,
	}, nil
}

// engineSource feeds the audio stream from the engine. Scheduled events
// come from the midi.Schedule, live events from NoteOn/NoteOff; both are
// merged per block under the mutex and handed to the engine in offset
// order. The engine itself is only ever touched on the audio thread.
type engineSource struct {
	mu    sync.Mutex
	live  []intmidi.Event
	sched *intmidi.Schedule

	engine *intsine.Engine
	left   []float32
	right  []float32

	volume     uint64 // float64 bits, updated lock-free
	sampleTap  func([]float32)
	draining   bool
	finished   atomic.Bool
	onFinished func()
}

func (s *engineSource) Process(dst []float32) {
	frames := len(dst) / 2
	if cap(s.left) < frames {
		s.left = make([]float32, frames)
		s.right = make([]float32, frames)
	}
	left := s.left[:frames]
	right := s.right[:frames]

	s.mu.Lock()
	// Live events fire at the top of the block; scheduled events follow
	// with their own offsets, keeping the slice in nondecreasing order.
	events := s.live
	s.live = nil
	events = append(events, s.sched.CollectBlock(frames)...)
	pending := s.sched.Pending()
	s.mu.Unlock()

	s.engine.RenderBlock([][]float32{left, right}, frames, events)

	vol := float32(math.Float64frombits(atomic.LoadUint64(&s.volume)))
	for i := 0; i < frames; i++ {
		dst[i*2] = left[i] * vol
		dst[i*2+1] = right[i] * vol
	}
	if s.sampleTap != nil {
		s.sampleTap(dst)
	}
	if s.draining && pending == 0 && s.engine.Silent() {
		if s.finished.CompareAndSwap(false, true) && s.onFinished != nil {
			s.onFinished()
		}
	}
}

func (s *engineSource) Finished() bool {
	return s.finished.Load()
}

func (s *engineSource) enqueue(ev intmidi.Event) {
	s.mu.Lock()
	s.live = append(s.live, ev)
	s.mu.Unlock()
}

func (s *engineSource) setVolume(v float64) {
	atomic.StoreUint64(&s.volume, math.Float64bits(v))
}

// Play starts playback of a note sequence and returns immediately. The
// stream ends on its own once the last note's release tail has faded;
// Wait blocks until then. A second Play replaces the current playback
// with a fresh engine so no voice state leaks between sequences.
func (p *Player) Play(seq []Note) error {
	sched := &intmidi.Schedule{}
	for _, n := range seq {
		start := durationToFrames(n.Start, p.sampleRate)
		dur := durationToFrames(n.Duration, p.sampleRate)
		sched.AddNote(start, dur, byte(n.Number), byte(n.Velocity))
	}
	return p.start(sched, true)
}

// Start opens an endless stream for live input: NoteOn and NoteOff take
// effect at the next block boundary. Stop ends the stream.
func (p *Player) Start() error {
	return p.start(&intmidi.Schedule{}, false)
}

func (p *Player) start(sched *intmidi.Schedule, draining bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Signal any existing Wait that the previous playback was replaced.
	if p.done != nil {
		close(p.done)
	}
	p.done = make(chan struct{})

	engine := intsine.New(p.cfg.engine)
	engine.Prepare(float64(p.sampleRate))
	src := &engineSource{
		sched:      sched,
		engine:     engine,
		sampleTap:  p.cfg.sampleTap,
		draining:   draining,
		onFinished: p.signalDone,
	}
	src.setVolume(p.volume)

	backend, err := intaudio.NewPlayer(p.sampleRate, src)
	if err != nil {
		return err
	}
	if p.audio != nil {
		_ = p.audio.Stop()
	}
	p.src = src
	p.audio = backend
	p.audio.Play()
	return nil
}

// NoteOn triggers a note on the live stream. A no-op unless Play or Start
// has been called; the monophonic voice is stolen by each new note.
func (p *Player) NoteOn(note, velocity int) {
	p.mu.Lock()
	src := p.src
	p.mu.Unlock()
	if src != nil {
		src.enqueue(intmidi.NoteOn(0, byte(note), byte(velocity)))
	}
}

// NoteOff releases the note if it is still the active one. Stale releases
// for stolen notes are ignored by the engine.
func (p *Player) NoteOff(note int) {
	p.mu.Lock()
	src := p.src
	p.mu.Unlock()
	if src != nil {
		src.enqueue(intmidi.NoteOff(0, byte(note)))
	}
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Pause()
	}
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Play()
	}
}

func (p *Player) Stop() error {
	p.mu.Lock()
	if p.audio == nil {
		p.mu.Unlock()
		return nil
	}
	err := p.audio.Stop()
	p.audio = nil
	p.src = nil
	done := p.done
	p.done = nil
	p.mu.Unlock()
	if done != nil {
		close(done)
	}
	return err
}

// Wait blocks until the current playback ends, including the final release
// tail. It returns immediately if no playback is active. A live Start
// stream never ends by itself; use Stop.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (p *Player) signalDone() {
	p.mu.Lock()
	done := p.done
	p.done = nil
	p.mu.Unlock()
	if done != nil {
		close(done)
	}
}

// SetMasterVolume sets the runtime volume scalar. 1.0 is default; negative
// values clamp to silence. Applied after the engine's own output guard.
func (p *Player) SetMasterVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = volume
	if p.src != nil {
		p.src.setVolume(volume)
	}
}

func (p *Player) MasterVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// GuardStats returns the output-guard counters of the current playback,
// or zeros when nothing is playing. The counters are updated on the audio
// thread, so a reading taken mid-stream is a snapshot, not a total.
func (p *Player) GuardStats() intsine.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.src == nil {
		return intsine.Stats{}
	}
	return p.src.engine.Stats()
}

// PlaybackPosition returns the current output position of the audio
// driver, i.e. what the listener actually hears right now. 0 when idle.
func (p *Player) PlaybackPosition() int64 {
	p.mu.Lock()
	a := p.audio
	p.mu.Unlock()
	if a == nil {
		return 0
	}
	return int64(a.Position().Seconds() * float64(p.sampleRate))
}

func durationToFrames(d time.Duration, sampleRate int) int64 {
	return int64(d.Seconds() * float64(sampleRate))
}
