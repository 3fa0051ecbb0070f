// ABOUTME: Tests for the sine generator
// ABOUTME: Covers phase invariants, amplitude bounds, and parameter updates
package sinegen

import (
	"errors"
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	gen, err := New(440.0, 48000.0, 0.5)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	if gen.Frequency() != 440.0 {
		t.Errorf("expected frequency 440, got %v", gen.Frequency())
	}
	if gen.Amplitude() != 0.5 {
		t.Errorf("expected amplitude 0.5, got %v", gen.Amplitude())
	}
	if gen.Phase() != 0 {
		t.Errorf("expected initial phase 0, got %v", gen.Phase())
	}
}

func TestNew_InvalidSampleRate(t *testing.T) {
	_, err := New(440.0, 0, 0.5)
	if err == nil {
		t.Fatal("expected error for zero sample rate, got nil")
	}
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	_, err = New(440.0, -48000.0, 0.5)
	if err == nil {
		t.Fatal("expected error for negative sample rate, got nil")
	}
}

func TestNew_InvalidFrequency(t *testing.T) {
	_, err := New(0, 48000.0, 0.5)
	if err == nil {
		t.Fatal("expected error for zero frequency, got nil")
	}
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestGenerate_FirstSampleIsZero(t *testing.T) {
	for _, freq := range []float64{20.0, 440.0, 1000.0, 15000.0} {
		gen, err := New(freq, 48000.0, 1.0)
		if err != nil {
			t.Fatalf("failed to create generator: %v", err)
		}

		buf := make([]float64, 1)
		gen.Generate(buf)

		if math.Abs(buf[0]) > 1e-12 {
			t.Errorf("freq %v: expected first sample 0, got %v", freq, buf[0])
		}
	}
}

func TestGenerate_AmplitudeBound(t *testing.T) {
	const amplitude = 0.7
	gen, err := New(997.0, 44100.0, amplitude)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	buf := make([]float64, 4410)
	gen.Generate(buf)

	for i, s := range buf {
		if math.Abs(s) > amplitude+1e-12 {
			t.Fatalf("sample %d out of range: %v (amplitude %v)", i, s, amplitude)
		}
	}
}

func TestGenerate_PhaseStaysNormalized(t *testing.T) {
	gen, err := New(440.0, 48000.0, 1.0)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	buf := make([]float64, 480)
	for call := 0; call < 100; call++ {
		gen.Generate(buf)

		phase := gen.Phase()
		if phase < 0 || phase >= 2*math.Pi {
			t.Fatalf("phase out of [0, 2π) after call %d: %v", call, phase)
		}
	}
}

func TestGenerate_PhaseNormalizedForHighFrequency(t *testing.T) {
	// Increment above π but below 2π; a single subtraction still works here,
	// the loop must too.
	gen, err := New(20000.0, 48000.0, 1.0)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	buf := make([]float64, 4800)
	gen.Generate(buf)

	phase := gen.Phase()
	if phase < 0 || phase >= 2*math.Pi {
		t.Errorf("phase out of [0, 2π): %v", phase)
	}
}

func TestGenerate_MatchesReferenceSine(t *testing.T) {
	const (
		freq = 440.0
		rate = 48000.0
	)
	gen, err := New(freq, rate, 1.0)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	buf := make([]float64, 256)
	gen.Generate(buf)

	for i, got := range buf {
		want := math.Sin(2 * math.Pi * freq * float64(i) / rate)
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestSetFrequency_PhaseContinuous(t *testing.T) {
	gen, err := New(440.0, 48000.0, 1.0)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	buf := make([]float64, 100)
	gen.Generate(buf)
	phaseBefore := gen.Phase()

	if err := gen.SetFrequency(880.0); err != nil {
		t.Fatalf("SetFrequency failed: %v", err)
	}

	if gen.Phase() != phaseBefore {
		t.Errorf("SetFrequency changed phase: %v -> %v", phaseBefore, gen.Phase())
	}
	if gen.Frequency() != 880.0 {
		t.Errorf("expected frequency 880, got %v", gen.Frequency())
	}
}

func TestSetFrequency_Invalid(t *testing.T) {
	gen, err := New(440.0, 48000.0, 1.0)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	if err := gen.SetFrequency(-1.0); err == nil {
		t.Fatal("expected error for negative frequency, got nil")
	}
	if gen.Frequency() != 440.0 {
		t.Errorf("failed SetFrequency should not change frequency, got %v", gen.Frequency())
	}
}

func TestSetAmplitude(t *testing.T) {
	gen, err := New(440.0, 48000.0, 1.0)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	gen.SetAmplitude(0.25)

	buf := make([]float64, 1000)
	gen.Generate(buf)

	for i, s := range buf {
		if math.Abs(s) > 0.25+1e-12 {
			t.Fatalf("sample %d exceeds new amplitude: %v", i, s)
		}
	}
}

func TestGenerate_ConcurrentParameterUpdates(t *testing.T) {
	// Hammer the control path while the audio path generates. The race
	// detector checks the handoff; the assertions check that every buffer
	// stays a bounded sine and the phase stays normalized throughout.
	gen, err := New(440.0, 48000.0, 0.5)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			if err := gen.SetFrequency(100.0 + float64(i%200)); err != nil {
				t.Errorf("SetFrequency failed: %v", err)
				return
			}
			gen.SetAmplitude(float64(i%10) / 10.0)
			if i%100 == 0 {
				gen.Reset()
			}
		}
	}()

	buf := make([]float64, 256)
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}

		gen.Generate(buf)
		for i, s := range buf {
			if math.Abs(s) > 1.0+1e-12 {
				t.Fatalf("sample %d out of range during update: %v", i, s)
			}
		}
		if phase := gen.Phase(); phase < 0 || phase >= 2*math.Pi {
			t.Fatalf("phase out of [0, 2π) during update: %v", phase)
		}
	}
}

func TestReset(t *testing.T) {
	gen, err := New(440.0, 48000.0, 1.0)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	buf := make([]float64, 777)
	gen.Generate(buf)

	gen.Reset()
	one := make([]float64, 1)
	gen.Generate(one)

	if math.Abs(one[0]) > 1e-12 {
		t.Errorf("expected first sample after reset to be 0, got %v", one[0])
	}
}
