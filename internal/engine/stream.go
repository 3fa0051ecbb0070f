// ABOUTME: Binds the sine generator to the format encoder
// ABOUTME: Implements the per-period buffer fill contract and io.Reader
package engine

import (
	"fmt"
	"io"

	"github.com/ToneProbe/toneprobe-go/pkg/pcm"
	"github.com/ToneProbe/toneprobe-go/pkg/sinegen"
)

// ToneStream produces the encoded reference tone one buffer period at a
// time. The platform audio layer pulls from it, either through FillFrames
// (callback integration) or io.Reader (byte-pull sinks such as oto); the
// stream never calls into the platform layer itself.
type ToneStream struct {
	gen     *sinegen.Generator
	enc     *pcm.Encoder
	scratch []float64
}

// NewToneStream creates a stream over gen encoded with enc. maxFrames sizes
// the scratch buffer so the fill path never allocates; fills larger than
// maxFrames grow it once.
func NewToneStream(gen *sinegen.Generator, enc *pcm.Encoder, maxFrames int) (*ToneStream, error) {
	if gen == nil || enc == nil {
		return nil, fmt.Errorf("generator and encoder are required")
	}
	if maxFrames <= 0 {
		return nil, fmt.Errorf("invalid max frame count: %d", maxFrames)
	}
	return &ToneStream{
		gen:     gen,
		enc:     enc,
		scratch: make([]float64, maxFrames),
	}, nil
}

// Generator returns the underlying generator, for control-path adjustments.
func (s *ToneStream) Generator() *sinegen.Generator { return s.gen }

// BytesPerFrame returns the encoded frame size across all channels.
func (s *ToneStream) BytesPerFrame() int { return s.enc.BytesPerFrame() }

// FillFrames fills dst with exactly frames encoded frames. On an encoding
// failure dst holds silence and the error is returned; generator phase is
// already advanced, so the stream stays re-entrant after device recovery.
func (s *ToneStream) FillFrames(dst []byte, frames int) error {
	if frames < 0 {
		return fmt.Errorf("invalid frame count: %d", frames)
	}
	if need := frames * s.enc.BytesPerFrame(); len(dst) < need {
		return fmt.Errorf("output buffer too small: need %d bytes, have %d", need, len(dst))
	}

	if frames > len(s.scratch) {
		s.scratch = make([]float64, frames)
	}
	mono := s.scratch[:frames]

	s.gen.Generate(mono)
	return s.enc.Encode(mono, dst)
}

// Read implements io.Reader over whole frames. Partial frames at the end of
// p are left untouched; the stream is infinite and never returns io.EOF.
func (s *ToneStream) Read(p []byte) (int, error) {
	frames := len(p) / s.enc.BytesPerFrame()
	if frames == 0 {
		return 0, nil
	}
	if err := s.FillFrames(p[:frames*s.enc.BytesPerFrame()], frames); err != nil {
		return 0, err
	}
	return frames * s.enc.BytesPerFrame(), nil
}

var _ io.Reader = (*ToneStream)(nil)
