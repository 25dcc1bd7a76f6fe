// Package audio adapts a block-based sample source to the ebiten audio
// device layer. It is transport only: no synthesis happens here.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleSource produces interleaved stereo float32 samples. Process is
// called on the audio thread and must fill dst completely.
type SampleSource interface {
	Process(dst []float32)
}

// FinishingSource is a SampleSource that can signal end of playback.
// When Finished returns true the stream reports io.EOF on the next Read,
// which lets the device player wind down on its own.
type FinishingSource interface {
	SampleSource
	Finished() bool
}

// StreamReader exposes a SampleSource as the little-endian float32 byte
// stream the ebiten audio player consumes.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 2 channels * 4 bytes per float32 sample.
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(r.buf[i]))
	}
	n := frames * 8
	if fs, ok := r.source.(FinishingSource); ok && fs.Finished() {
		return n, io.EOF
	}
	return n, nil
}

func (r *StreamReader) Close() error { return nil }

// Player drives a SampleSource through the shared ebiten audio context.
type Player struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// sharedAudioContext returns the process-wide ebiten audio context. The
// context can only ever exist at one sample rate; a mismatch is an error
// rather than a silent resample.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

func NewPlayer(sampleRate int, source SampleSource) (*Player, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &Player{player: pl, reader: reader}, nil
}

func (p *Player) Play()  { p.player.Play() }
func (p *Player) Pause() { p.player.Pause() }

func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Position returns the playback position the listener actually hears.
func (p *Player) Position() time.Duration { return p.player.Position() }

func (p *Player) Stop() error {
	p.player.Pause()
	p.player.Close()
	return p.reader.Close()
}
