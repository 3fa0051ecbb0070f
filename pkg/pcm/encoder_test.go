// ABOUTME: Tests for the interleaving sample encoder
// ABOUTME: Covers each encoding path, channel replication, and silence on failure
package pcm

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestEncodePCM16_FullScalePeak(t *testing.T) {
	enc, err := NewEncoder(Format{BitsPerSample: 16}, 1)
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}

	// 440/48000 = 11/1200, so 1200 samples cover 11 whole periods and the
	// sample grid lands within 2π/2400 of the sine peak.
	const (
		rate    = 48000.0
		freq    = 440.0
		periodN = 1200
	)
	samples := make([]float64, periodN)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / rate)
	}

	dst := make([]byte, len(samples)*2)
	if err := enc.Encode(samples, dst); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var peak int16
	for i := 0; i < len(samples); i++ {
		v := int16(binary.LittleEndian.Uint16(dst[i*2:]))
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	if peak < Max16Bit-2 || peak > Max16Bit {
		t.Errorf("expected peak near %d, got %d", Max16Bit, peak)
	}
}

func TestEncodePCM16_TruncatesTowardZero(t *testing.T) {
	enc, err := NewEncoder(Format{BitsPerSample: 16}, 1)
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}

	// 0.9999 * 32767 = 32763.72...; truncation gives 32763, rounding would give 32764
	dst := make([]byte, 4)
	if err := enc.Encode([]float64{0.9999, -0.9999}, dst); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	got := int16(binary.LittleEndian.Uint16(dst))
	if got != 32763 {
		t.Errorf("expected truncated value 32763, got %d", got)
	}
	gotNeg := int16(binary.LittleEndian.Uint16(dst[2:]))
	if gotNeg != -32763 {
		t.Errorf("expected truncated value -32763, got %d", gotNeg)
	}
}

func TestEncode_ChannelReplication(t *testing.T) {
	enc, err := NewEncoder(Format{BitsPerSample: 16}, 2)
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}

	samples := []float64{0.5, -0.5, 0.25}
	dst := make([]byte, len(samples)*enc.BytesPerFrame())
	if err := enc.Encode(samples, dst); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	for i := range samples {
		left := int16(binary.LittleEndian.Uint16(dst[i*4:]))
		right := int16(binary.LittleEndian.Uint16(dst[i*4+2:]))
		if left != right {
			t.Errorf("frame %d: channels differ: %d vs %d", i, left, right)
		}
	}
}

func TestEncodeFloat32_Unconverted(t *testing.T) {
	enc, err := NewEncoder(Format{Float: true, BitsPerSample: 32}, 1)
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}

	samples := []float64{0.5, -0.125, 1.0}
	dst := make([]byte, len(samples)*4)
	if err := enc.Encode(samples, dst); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	for i, want := range samples {
		got := math.Float32frombits(binary.LittleEndian.Uint32(dst[i*4:]))
		if got != float32(want) {
			t.Errorf("sample %d: got %v, want %v", i, got, float32(want))
		}
	}
}

func TestEncodePCM24_Packing(t *testing.T) {
	enc, err := NewEncoder(Format{BitsPerSample: 24}, 1)
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}

	dst := make([]byte, 6)
	if err := enc.Encode([]float64{1.0, -1.0}, dst); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	pos := SampleFrom24Bit([3]byte{dst[0], dst[1], dst[2]})
	if pos != Max24Bit {
		t.Errorf("expected %d, got %d", Max24Bit, pos)
	}
	neg := SampleFrom24Bit([3]byte{dst[3], dst[4], dst[5]})
	if neg != -Max24Bit {
		t.Errorf("expected %d, got %d", -Max24Bit, neg)
	}
}

func TestEncodePCM32_FullScale(t *testing.T) {
	enc, err := NewEncoder(Format{BitsPerSample: 32}, 1)
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}

	dst := make([]byte, 4)
	if err := enc.Encode([]float64{1.0}, dst); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	got := int32(binary.LittleEndian.Uint32(dst))
	if got != Max32Bit {
		t.Errorf("expected %d, got %d", Max32Bit, got)
	}
}

func TestEncode_UnsupportedFormatFillsSilence(t *testing.T) {
	enc, err := NewEncoder(Format{BitsPerSample: 8}, 2)
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}

	dst := make([]byte, 8)
	for i := range dst {
		dst[i] = 0xAA // stale data that must be cleared
	}

	err = enc.Encode([]float64{0.5, 0.5, 0.5, 0.5}, dst)
	if err == nil {
		t.Fatal("expected error for unsupported format, got nil")
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	for i, b := range dst {
		if b != 0 {
			t.Fatalf("expected silence at byte %d, got 0x%02X", i, b)
		}
	}
}

func TestEncode_BufferTooSmall(t *testing.T) {
	enc, err := NewEncoder(Format{BitsPerSample: 16}, 2)
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}

	dst := make([]byte, 2) // one frame needs 4 bytes
	if err := enc.Encode([]float64{0.5}, dst); err == nil {
		t.Fatal("expected error for short buffer, got nil")
	}
}

func TestSample24BitRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, Max24Bit, Min24Bit, 123456, -123456}
	for _, v := range values {
		got := SampleFrom24Bit(SampleTo24Bit(v))
		if got != v {
			t.Errorf("round trip failed: %d -> %d", v, got)
		}
	}
}

func TestNormalizeInt16(t *testing.T) {
	out := NormalizeInt16([]int16{Max16Bit, -Max16Bit, 0})
	if out[0] != 1.0 || out[1] != -1.0 || out[2] != 0 {
		t.Errorf("unexpected normalization: %v", out)
	}
}
