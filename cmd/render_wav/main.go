// Command render_wav renders the synth offline to a 16-bit mono PCM WAV
// file. With no -notes it produces the classic demo: 10 seconds of middle C
// at amplitude 0.5 with the envelope off.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	synth "github.com/hollance/synth-recipes"
)

func main() {
	var (
		outPath    = flag.String("out", "output.wav", "output WAV path")
		sampleRate = flag.Int("sample-rate", 48000, "output sample rate")
		seconds    = flag.Float64("seconds", 10, "length of the rendered file")
		notes      = flag.String("notes", "", "comma-separated MIDI notes to play in order (empty = plain tone)")
		velocity   = flag.Int("velocity", 100, "velocity for -notes")
		noteMS     = flag.Int("note-ms", 400, "hold time per note in milliseconds")
		noEnvelope = flag.Bool("no-envelope", false, "disable the attack/release envelope")
	)
	flag.Parse()

	var samples []float32
	if strings.TrimSpace(*notes) == "" {
		samples = synth.RenderTone(*sampleRate, *seconds)
	} else {
		seq, err := parseNotes(*notes, *velocity, *noteMS)
		if err != nil {
			log.Fatal(err)
		}
		var opts []synth.PlayerOption
		if *noEnvelope {
			opts = append(opts, synth.WithEnvelope(false))
		}
		samples = synth.RenderSequence(seq, *sampleRate, *seconds, opts...)
	}

	if err := synth.WriteWAVFile(*outPath, samples, *sampleRate); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%d samples, %d Hz)\n", *outPath, len(samples), *sampleRate)
}

func parseNotes(list string, velocity, noteMS int) ([]synth.Note, error) {
	hold := time.Duration(noteMS) * time.Millisecond
	var seq []synth.Note
	for i, field := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 || n > 127 {
			return nil, fmt.Errorf("invalid -notes entry %q (expected MIDI note 1-127)", field)
		}
		seq = append(seq, synth.Note{
			Number:   n,
			Velocity: velocity,
			Start:    time.Duration(i) * hold,
			Duration: hold,
		})
	}
	return seq, nil
}
