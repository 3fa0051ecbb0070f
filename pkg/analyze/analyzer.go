// ABOUTME: Loopback signal analyzer
// ABOUTME: Zero-crossing frequency detection and amplitude/DC-offset checks
package analyze

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientData indicates too few samples for a meaningful analysis.
var ErrInsufficientData = errors.New("insufficient data")

// Default thresholds, expressed as fractions of the sample format's full
// scale. They match the source harness limits of 1000 counts on 16-bit audio.
const (
	DefaultMinRMS      = 0.03
	DefaultMaxDCOffset = 0.03
)

// Thresholds configures the amplitude check. Values are fractions of full
// scale so the same logical tolerance applies across sample formats.
type Thresholds struct {
	MinRMS      float64
	MaxDCOffset float64
}

// DefaultThresholds returns the source harness tolerances.
func DefaultThresholds() Thresholds {
	return Thresholds{MinRMS: DefaultMinRMS, MaxDCOffset: DefaultMaxDCOffset}
}

// FailureReason identifies which verification check failed.
type FailureReason string

const (
	FailTooQuiet  FailureReason = "too quiet"
	FailDCOffset  FailureReason = "dc offset"
	FailFrequency FailureReason = "frequency mismatch"
)

// Amplitude holds the measured signal level statistics.
type Amplitude struct {
	RMS      float64
	Mean     float64
	TooQuiet bool
	DCOffset bool
}

// OK reports whether both amplitude checks passed.
func (a Amplitude) OK() bool {
	return !a.TooQuiet && !a.DCOffset
}

// Config parameterizes a full loopback verification.
type Config struct {
	SampleRate           int
	ExpectedFrequencyHz  float64
	FrequencyToleranceHz float64
	Thresholds           Thresholds
}

// Result is the immutable verdict of a loopback verification. Tolerance
// failures are reported here, not as errors; the measured values are always
// carried for diagnostics.
type Result struct {
	DetectedFrequencyHz float64
	RMS                 float64
	DCOffset            float64
	Passed              bool
	Failures            []FailureReason
}

// DetectFrequency estimates the dominant frequency of a mono signal by
// counting zero crossings. A crossing is a transition between a negative
// sample and a non-negative one in either direction; a sample of exactly
// zero counts as non-negative. For a pure sine observed over duration D the
// error is bounded by roughly 1/D.
func DetectFrequency(samples []float64, sampleRate int) (float64, error) {
	if len(samples) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples, have %d", ErrInsufficientData, len(samples))
	}
	if sampleRate <= 0 {
		return 0, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	crossings := 0
	prev := samples[0]
	for _, curr := range samples[1:] {
		if (prev < 0 && curr >= 0) || (prev >= 0 && curr < 0) {
			crossings++
		}
		prev = curr
	}

	duration := float64(len(samples)) / float64(sampleRate)
	return (float64(crossings) / 2.0) / duration, nil
}

// CheckAmplitude computes the arithmetic mean and RMS of a normalized mono
// signal and flags a too-quiet signal or a DC offset against th.
func CheckAmplitude(samples []float64, th Thresholds) (Amplitude, error) {
	if len(samples) == 0 {
		return Amplitude{}, fmt.Errorf("%w: empty buffer", ErrInsufficientData)
	}

	var sum, sumSq float64
	for _, s := range samples {
		sum += s
		sumSq += s * s
	}

	n := float64(len(samples))
	a := Amplitude{
		Mean: sum / n,
		RMS:  math.Sqrt(sumSq / n),
	}
	a.TooQuiet = a.RMS < th.MinRMS
	a.DCOffset = math.Abs(a.Mean) > th.MaxDCOffset
	return a, nil
}

// Verify runs the full loopback verification over a captured mono signal:
// amplitude and DC-offset checks plus zero-crossing frequency detection
// against the expected frequency. Pure; call once after capture completes.
func Verify(samples []float64, cfg Config) (Result, error) {
	amp, err := CheckAmplitude(samples, cfg.Thresholds)
	if err != nil {
		return Result{}, err
	}

	freq, err := DetectFrequency(samples, cfg.SampleRate)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		DetectedFrequencyHz: freq,
		RMS:                 amp.RMS,
		DCOffset:            amp.Mean,
	}
	if amp.TooQuiet {
		res.Failures = append(res.Failures, FailTooQuiet)
	}
	if amp.DCOffset {
		res.Failures = append(res.Failures, FailDCOffset)
	}
	if math.Abs(freq-cfg.ExpectedFrequencyHz) > cfg.FrequencyToleranceHz {
		res.Failures = append(res.Failures, FailFrequency)
	}
	res.Passed = len(res.Failures) == 0
	return res, nil
}
