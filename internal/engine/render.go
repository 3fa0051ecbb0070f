// ABOUTME: Offline tone rendering helpers
// ABOUTME: Produces finite sample buffers for the tone file artifact
package engine

import (
	"fmt"

	"github.com/ToneProbe/toneprobe-go/pkg/pcm"
	"github.com/ToneProbe/toneprobe-go/pkg/sinegen"
)

// RenderPCM16 generates n mono 16-bit samples from gen. This is the offline
// path used to produce the tone file artifact; it allocates freely.
func RenderPCM16(gen *sinegen.Generator, n int) ([]int16, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid sample count: %d", n)
	}

	mono := make([]float64, n)
	gen.Generate(mono)

	out := make([]int16, n)
	for i, s := range mono {
		out[i] = int16(s * pcm.Max16Bit)
	}
	return out, nil
}
