// Package synth is a deterministic procedural audio renderer: given a
// declarative description of synthesis layers plus optional modulation and a
// post-processing effect chain, it produces a fixed-length buffer of
// float64 samples that is bit-identical for a given integer seed on every
// run and every machine.
//
// # Quick Start
//
//	params := &synth.RenderParams{
//	    SampleRate:      synth.RateCD,
//	    DurationSeconds: 2,
//	    Layers: []synth.Layer{
//	        synth.PluckedString(220),
//	    },
//	}
//	result, err := synth.Render(params, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	samples := result.Output.Mono()
//
// # Pipeline
//
// A render runs the stages in fixed order:
//
//	Layers -> Envelope/LFO -> Mixer -> [Master Filter] -> Effect Chain
//
// Each layer is synthesized by one of the tagged Synthesis variants (plain
// oscillators, AM, FM, Karplus-Strong, additive, metallic, formant, impact,
// spectral freeze, vocoder), shaped by its ADSR envelope and optional LFO,
// then accumulated into the mix with volume, constant-power pan, and start
// delay. The mix is normalized to -3 dBFS, optionally swept by a master
// biquad, and handed through the declared effects in order.
//
// # Determinism
//
// Every stochastic element (noise excitation, tape hiss, breath noise, grain
// jitter) draws from a source derived from the top-level seed and the
// component's position, so the whole render is reproducible from one seed
// while sub-components remain decorrelated. Rendering is single-threaded
// with fixed iteration order; independent renders are safe to run
// concurrently.
//
// # Validation
//
// Render validates every numeric field against its documented range before
// generating any sample and fails with a *RangeError naming the offending
// field, so a render either fully succeeds or produces nothing.
package synth
