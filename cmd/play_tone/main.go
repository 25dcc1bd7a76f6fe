// Command play_tone plays a short note phrase through the audio device and
// exits when the last release tail fades out.
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

const defaultNotes = "60,64,67,72"

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 48000, "output sample rate")
		notes      = flag.String("notes", defaultNotes, "comma-separated MIDI notes to play in order")
		velocity   = flag.Int("velocity", 100, "note velocity (1-127)")
		noteMS     = flag.Int("note-ms", 400, "hold time per note in milliseconds")
		noEnvelope = flag.Bool("no-envelope", false, "disable the attack/release envelope")
		volume     = flag.Float64("volume", 1.0, "master volume scalar")
	)
	flag.Parse()

	seq, err := parseNotes(*notes, *velocity, *noteMS)
	if err != nil {
		log.Fatal(err)
	}

	var opts []synth.PlayerOption
	if *noEnvelope {
		opts = append(opts, synth.WithEnvelope(false))
	}
	pl, err := synth.NewPlayer(*sampleRate, opts...)
	if err != nil {
		log.Fatal(err)
	}
	pl.SetMasterVolume(*volume)
	if err := pl.Play(seq); err != nil {
		log.Fatal(err)
	}
	pl.Wait()
	fmt.Println("playback completed")
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
