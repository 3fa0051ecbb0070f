// ABOUTME: Capture-side sample accumulator for loopback verification
// ABOUTME: Collects channel 0 of captured frames and signals completion
package capture

import (
	"context"
	"fmt"
	"sync"

	"github.com/ToneProbe/toneprobe-go/pkg/pcm"
)

// Accumulator collects mono samples from a capture callback until a target
// count is reached. Completion is signaled through Done rather than polled.
//
// Add-side calls come from a single capture callback goroutine; readers wait
// on Done (or Wait) and then treat Samples as read-only. The accumulator
// enforces no timeout of its own; callers impose one through Wait's context.
type Accumulator struct {
	mu      sync.Mutex
	samples []float64
	target  int
	done    chan struct{}
	full    bool
}

// NewAccumulator creates an accumulator for durationSeconds of mono audio.
func NewAccumulator(durationSeconds float64, sampleRate int) (*Accumulator, error) {
	if durationSeconds <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("invalid capture target: %v s at %d Hz", durationSeconds, sampleRate)
	}
	target := int(durationSeconds * float64(sampleRate))
	return &Accumulator{
		samples: make([]float64, 0, target),
		target:  target,
		done:    make(chan struct{}),
	}, nil
}

// AddFrames ingests interleaved normalized frames from a capture buffer,
// keeping channel 0 of each frame. Frames past the target are discarded.
// Returns the number of frames consumed.
func (a *Accumulator) AddFrames(interleaved []float64, channels int) int {
	if channels < 1 {
		return 0
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.full {
		return 0
	}

	frames := len(interleaved) / channels
	consumed := 0
	for i := 0; i < frames && len(a.samples) < a.target; i++ {
		a.samples = append(a.samples, interleaved[i*channels])
		consumed++
	}

	if len(a.samples) >= a.target {
		a.full = true
		close(a.done)
	}
	return consumed
}

// AddPCM16Frames ingests interleaved 16-bit frames, normalizing by the
// 16-bit full scale. This is the capture format loopback endpoints deliver.
func (a *Accumulator) AddPCM16Frames(interleaved []int16, channels int) int {
	if channels < 1 {
		return 0
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.full {
		return 0
	}

	frames := len(interleaved) / channels
	consumed := 0
	for i := 0; i < frames && len(a.samples) < a.target; i++ {
		a.samples = append(a.samples, float64(interleaved[i*channels])/pcm.Max16Bit)
		consumed++
	}

	if len(a.samples) >= a.target {
		a.full = true
		close(a.done)
	}
	return consumed
}

// Done returns a channel closed when the target sample count is reached.
func (a *Accumulator) Done() <-chan struct{} {
	return a.done
}

// Wait blocks until the accumulator fills or ctx is canceled.
func (a *Accumulator) Wait(ctx context.Context) error {
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Full reports whether the target has been reached.
func (a *Accumulator) Full() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.full
}

// Len returns the current fill count.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.samples)
}

// Target returns the target sample count.
func (a *Accumulator) Target() int {
	return a.target
}

// Samples returns the collected mono samples. Only valid once Done has
// fired; the returned slice must be treated as read-only.
func (a *Accumulator) Samples() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.samples
}
