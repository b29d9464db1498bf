package main

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	synth "github.com/tonefab/go-audio-synth"
)

const wavAudioFormatPCM = 1

// writeWAV encodes the rendered output as a PCM WAV file.
func writeWAV(path string, out *synth.MixerOutput, sampleRate, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("unsupported bit depth %d (want 16 or 24)", bitDepth)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	numChannels := 1
	if out.IsStereo() {
		numChannels = 2
	}

	encoder := wav.NewEncoder(file, sampleRate, bitDepth, numChannels, wavAudioFormatPCM)
	buf := &audio.IntBuffer{
		Data: out.PCMInt(bitDepth),
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: bitDepth,
	}

	if err := encoder.Write(buf); err != nil {
		_ = encoder.Close()
		_ = file.Close()
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := encoder.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return file.Close()
}
