// ABOUTME: Phase-accumulator sine wave generator
// ABOUTME: Produces normalized samples with atomically published tone parameters
package sinegen

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// ErrInvalidParameter indicates a non-positive frequency or sample rate.
var ErrInvalidParameter = errors.New("invalid parameter")

const twoPi = 2 * math.Pi

// params is an immutable tone parameter snapshot. The control path publishes
// a fresh snapshot; the audio path loads it once per Generate call, so
// parameter changes take effect at the next buffer boundary.
type params struct {
	frequency float64
	amplitude float64
}

// Generator produces a phase-continuous sine tone one buffer at a time.
//
// Generate must only be called from a single goroutine (the audio path).
// SetFrequency, SetAmplitude, and Reset are safe to call concurrently from a
// control path. The audio path never allocates or blocks.
type Generator struct {
	phase      float64
	sampleRate float64
	cur        atomic.Pointer[params]
	resetFlag  atomic.Bool
}

// New creates a generator. Sample rate and frequency must be positive.
// Frequencies at or above sampleRate/2 alias; callers should validate the
// frequency against the Nyquist limit before construction.
func New(frequencyHz, sampleRate, amplitude float64) (*Generator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %v must be positive", ErrInvalidParameter, sampleRate)
	}
	if frequencyHz <= 0 {
		return nil, fmt.Errorf("%w: frequency %v must be positive", ErrInvalidParameter, frequencyHz)
	}

	g := &Generator{sampleRate: sampleRate}
	g.cur.Store(&params{frequency: frequencyHz, amplitude: amplitude})
	return g, nil
}

// Generate fills dst with the next len(dst) samples of the tone. Each sample
// is amplitude*sin(phase) with phase advanced by 2π·frequency/sampleRate.
func (g *Generator) Generate(dst []float64) {
	if g.resetFlag.Swap(false) {
		g.phase = 0
	}

	p := g.cur.Load()
	increment := twoPi * p.frequency / g.sampleRate

	for i := range dst {
		dst[i] = p.amplitude * math.Sin(g.phase)
		g.phase += increment

		// Loop rather than subtract once: a single subtraction only
		// re-normalizes when the increment itself is below 2π.
		for g.phase >= twoPi {
			g.phase -= twoPi
		}
	}
}

// SetFrequency changes the tone frequency without resetting phase. The tone
// stays phase-continuous across the change.
func (g *Generator) SetFrequency(frequencyHz float64) error {
	if frequencyHz <= 0 {
		return fmt.Errorf("%w: frequency %v must be positive", ErrInvalidParameter, frequencyHz)
	}
	p := g.cur.Load()
	g.cur.Store(&params{frequency: frequencyHz, amplitude: p.amplitude})
	return nil
}

// SetAmplitude changes the tone amplitude without resetting phase.
func (g *Generator) SetAmplitude(amplitude float64) {
	p := g.cur.Load()
	g.cur.Store(&params{frequency: p.frequency, amplitude: amplitude})
}

// Reset schedules the phase back to zero at the next Generate call.
func (g *Generator) Reset() {
	g.resetFlag.Store(true)
}

// Frequency returns the currently published frequency in Hz.
func (g *Generator) Frequency() float64 {
	return g.cur.Load().frequency
}

// Amplitude returns the currently published amplitude.
func (g *Generator) Amplitude() float64 {
	return g.cur.Load().amplitude
}

// SampleRate returns the sample rate in Hz.
func (g *Generator) SampleRate() float64 {
	return g.sampleRate
}

// Phase returns the current phase in radians, in [0, 2π).
func (g *Generator) Phase() float64 {
	return g.phase
}
