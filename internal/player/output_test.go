// ABOUTME: Tests for the oto output wrapper
// ABOUTME: Format mapping only; device playback needs real hardware
package player

import (
	"testing"

	"github.com/ToneProbe/toneprobe-go/pkg/pcm"
	"github.com/ebitengine/oto/v3"
)

func TestOtoFormat(t *testing.T) {
	f, err := otoFormat(pcm.Format{BitsPerSample: 16})
	if err != nil {
		t.Fatalf("pcm16 should map: %v", err)
	}
	if f != oto.FormatSignedInt16LE {
		t.Errorf("expected FormatSignedInt16LE, got %v", f)
	}

	f, err = otoFormat(pcm.Format{Float: true, BitsPerSample: 32})
	if err != nil {
		t.Fatalf("float32 should map: %v", err)
	}
	if f != oto.FormatFloat32LE {
		t.Errorf("expected FormatFloat32LE, got %v", f)
	}
}

func TestOtoFormat_Unsupported(t *testing.T) {
	// oto has no 24-bit or 32-bit integer path
	if _, err := otoFormat(pcm.Format{BitsPerSample: 24}); err == nil {
		t.Fatal("expected error for pcm24, got nil")
	}
	if _, err := otoFormat(pcm.Format{BitsPerSample: 32}); err == nil {
		t.Fatal("expected error for pcm32, got nil")
	}
}

func TestPlay_NotInitialized(t *testing.T) {
	o := &Output{}
	if err := o.Play(nil); err == nil {
		t.Fatal("expected error for uninitialized output, got nil")
	}
}
