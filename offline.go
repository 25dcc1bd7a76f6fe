package synth

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	intmidi "github.com/hollance/synth-recipes/internal/midi"
	intsine "github.com/hollance/synth-recipes/internal/sine"
)

// renderBlockFrames is the block size used for offline rendering. Any size
// works; events still land sample-accurately inside each block.
const renderBlockFrames = 512

// RenderSequence renders a note sequence to a mono float32 buffer of
// seconds length, using the same engine and event scheduling as real-time
// playback. Notes past the end of the buffer are cut off.
func RenderSequence(seq []Note, sampleRate int, seconds float64, opts ...PlayerOption) []float32 {
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	engine := intsine.New(cfg.engine)
	engine.Prepare(float64(sampleRate))

	sched := &intmidi.Schedule{}
	for _, n := range seq {
		start := durationToFrames(n.Start, sampleRate)
		dur := durationToFrames(n.Duration, sampleRate)
		sched.AddNote(start, dur, byte(n.Number), byte(n.Velocity))
	}

	frames := int(float64(sampleRate) * seconds)
	out := make([]float32, frames)
	for pos := 0; pos < frames; pos += renderBlockFrames {
		n := renderBlockFrames
		if frames-pos < n {
			n = frames - pos
		}
		block := out[pos : pos+n]
		engine.RenderBlock([][]float32{block}, n, sched.CollectBlock(n))
	}
	return out
}

// RenderTone renders the plain demo tone: middle C (261.63 Hz) at
// amplitude 0.5 with the envelope off, held for the whole buffer.
func RenderTone(sampleRate int, seconds float64) []float32 {
	hold := time.Duration(seconds * float64(time.Second))
	seq := []Note{{Number: 60, Velocity: 127, Duration: hold}}
	return RenderSequence(seq, sampleRate, seconds, WithEnvelope(false))
}

// WriteWAVPCM16 writes samples as a canonical mono 16-bit PCM WAV:
// 44-byte RIFF/fmt/data header followed by little-endian int16 samples,
// each round(sample * 32767). The engine's output guard already bounds
// samples to [-1, 1], so no extra clipping happens here.
func WriteWAVPCM16(w io.WriteSeeker, samples []float32, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = int(math.Round(float64(s) * 32767))
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// WriteWAVFile renders samples to a WAV file at path. An unwritable path
// is a hard error; nothing is retried.
func WriteWAVFile(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}
	if err := WriteWAVPCM16(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
