// Command render-wav renders a built-in preset to a WAV file. It exists for
// quick auditioning of the renderer; the WAV container writing stays out of
// the library core.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	synth "github.com/tonefab/go-audio-synth"
)

func main() {
	var (
		preset   = flag.String("preset", "pluck", "preset to render: pluck, kick, snare, vowel, bell, frozen, demo")
		freq     = flag.Float64("freq", 220, "base frequency in Hz for tonal presets")
		duration = flag.Float64("duration", 2, "render length in seconds")
		rate     = flag.Int("rate", synth.RateCD, "sample rate: 22050, 44100, or 48000")
		seed     = flag.Uint("seed", 1, "render seed")
		bits     = flag.Int("bits", 16, "output bit depth: 16 or 24")
		output   = flag.String("out", "out.wav", "output WAV path")
		verbose  = flag.Bool("verbose", false, "print render details")
	)
	flag.Parse()

	if err := run(*preset, *freq, *duration, *rate, uint32(*seed), *bits, *output, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "render-wav: %v\n", err)
		os.Exit(1)
	}
}

func run(preset string, freq, duration float64, rate int, seed uint32, bits int, output string, verbose bool) error {
	params, err := buildParams(preset, freq, duration, rate)
	if err != nil {
		return err
	}

	result, err := synth.Render(params, seed)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if verbose {
		log.Printf("rendered %d samples, stereo=%v, peak before normalize %.4f",
			result.Output.Len(), result.Output.IsStereo(), result.PeakBeforeNormalize)
		if result.BaseFrequencyHz > 0 {
			log.Printf("base frequency: %.2f Hz", result.BaseFrequencyHz)
		}
	}

	if err := writeWAV(output, result.Output, rate, bits); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	if verbose {
		log.Printf("wrote %s", output)
	}
	return nil
}

func buildParams(preset string, freq, duration float64, rate int) (*synth.RenderParams, error) {
	params := &synth.RenderParams{
		SampleRate:      rate,
		DurationSeconds: duration,
	}
	switch preset {
	case "pluck":
		params.Layers = []synth.Layer{synth.PluckedString(freq)}
	case "kick":
		params.Layers = []synth.Layer{synth.Kick()}
	case "snare":
		params.Layers = []synth.Layer{synth.Snare()}
	case "vowel":
		params.Layers = []synth.Layer{synth.VowelPad(freq)}
	case "bell":
		params.Layers = []synth.Layer{synth.BellTone(freq)}
	case "frozen":
		params.Layers = []synth.Layer{synth.FrozenPad(freq)}
	case "demo":
		// A small stereo scene exercising panning and the effect chain.
		left := synth.PluckedString(freq)
		left.Pan = -0.5
		right := synth.BellTone(freq * 1.5)
		right.Pan = 0.5
		right.StartDelaySec = 0.25
		params.Layers = []synth.Layer{left, right}
		params.Effects = []synth.Effect{
			synth.ReverbEffect{RoomSize: 0.7, Damping: 0.4, Wet: 0.25, Dry: 0.8, Width: 1},
			synth.TapeSaturationEffect{Drive: 2, Bias: 0.1, HissLevel: 0.05},
		}
	default:
		return nil, fmt.Errorf("unknown preset %q", preset)
	}
	return params, nil
}
