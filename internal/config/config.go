// ABOUTME: Configuration schema for tone generation and loopback verification
// ABOUTME: YAML loading with strict fields, defaults, and joined validation
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ToneProbe/toneprobe-go/pkg/analyze"
	"github.com/ToneProbe/toneprobe-go/pkg/pcm"
)

// Config is the root configuration.
type Config struct {
	Tone   Tone   `yaml:"tone"`
	Verify Verify `yaml:"verify"`
}

// Tone configures the reference tone and its wire format.
type Tone struct {
	FrequencyHz float64 `yaml:"frequency_hz"`
	Amplitude   float64 `yaml:"amplitude"`
	SampleRate  int     `yaml:"sample_rate"`
	Channels    int     `yaml:"channels"`
	BitDepth    int     `yaml:"bit_depth"`
	Float       bool    `yaml:"float"`
}

// Format returns the encoder sample format for the tone.
func (t Tone) Format() pcm.Format {
	return pcm.Format{Float: t.Float, BitsPerSample: t.BitDepth}
}

// Verify configures the loopback capture and analysis.
type Verify struct {
	DurationSeconds      float64 `yaml:"duration_seconds"`
	ExpectedFrequencyHz  float64 `yaml:"expected_frequency_hz"` // 0 means use tone.frequency_hz
	FrequencyToleranceHz float64 `yaml:"frequency_tolerance_hz"`
	MinRMS               float64 `yaml:"min_rms"`
	MaxDCOffset          float64 `yaml:"max_dc_offset"`
}

// AnalyzeConfig builds the analyzer configuration, defaulting the expected
// frequency to the generated tone.
func (c Config) AnalyzeConfig() analyze.Config {
	expected := c.Verify.ExpectedFrequencyHz
	if expected == 0 {
		expected = c.Tone.FrequencyHz
	}
	return analyze.Config{
		SampleRate:           c.Tone.SampleRate,
		ExpectedFrequencyHz:  expected,
		FrequencyToleranceHz: c.Verify.FrequencyToleranceHz,
		Thresholds: analyze.Thresholds{
			MinRMS:      c.Verify.MinRMS,
			MaxDCOffset: c.Verify.MaxDCOffset,
		},
	}
}

// Default returns the reference configuration: the A4 test tone on a stereo
// 16-bit 48 kHz stream, verified over 2 seconds within ±5 Hz.
func Default() Config {
	return Config{
		Tone: Tone{
			FrequencyHz: 440.0,
			Amplitude:   0.5,
			SampleRate:  48000,
			Channels:    2,
			BitDepth:    16,
		},
		Verify: Verify{
			DurationSeconds:      2.0,
			FrequencyToleranceHz: 5.0,
			MinRMS:               analyze.DefaultMinRMS,
			MaxDCOffset:          analyze.DefaultMaxDCOffset,
		},
	}
}

// Load reads and validates the YAML configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, fills unset fields from
// Default, and validates the result. Useful in tests where configs are
// constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Tone.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("tone.sample_rate %d must be positive", cfg.Tone.SampleRate))
	}
	if cfg.Tone.FrequencyHz <= 0 {
		errs = append(errs, fmt.Errorf("tone.frequency_hz %v must be positive", cfg.Tone.FrequencyHz))
	} else if cfg.Tone.SampleRate > 0 && cfg.Tone.FrequencyHz >= float64(cfg.Tone.SampleRate)/2 {
		errs = append(errs, fmt.Errorf("tone.frequency_hz %v is at or above the Nyquist limit for %d Hz",
			cfg.Tone.FrequencyHz, cfg.Tone.SampleRate))
	}
	if cfg.Tone.Amplitude < 0 || cfg.Tone.Amplitude > 1 {
		errs = append(errs, fmt.Errorf("tone.amplitude %v must be within [0, 1]", cfg.Tone.Amplitude))
	}
	if cfg.Tone.Channels < 1 {
		errs = append(errs, fmt.Errorf("tone.channels %d must be at least 1", cfg.Tone.Channels))
	}
	if !cfg.Tone.Format().Supported() {
		errs = append(errs, fmt.Errorf("tone format %s is not supported", cfg.Tone.Format()))
	}

	if cfg.Verify.DurationSeconds <= 0 {
		errs = append(errs, fmt.Errorf("verify.duration_seconds %v must be positive", cfg.Verify.DurationSeconds))
	}
	if cfg.Verify.FrequencyToleranceHz <= 0 {
		errs = append(errs, fmt.Errorf("verify.frequency_tolerance_hz %v must be positive", cfg.Verify.FrequencyToleranceHz))
	}
	if cfg.Verify.MinRMS < 0 {
		errs = append(errs, fmt.Errorf("verify.min_rms %v must not be negative", cfg.Verify.MinRMS))
	}
	if cfg.Verify.MaxDCOffset < 0 {
		errs = append(errs, fmt.Errorf("verify.max_dc_offset %v must not be negative", cfg.Verify.MaxDCOffset))
	}

	return errors.Join(errs...)
}
