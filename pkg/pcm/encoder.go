// ABOUTME: Encodes normalized mono samples into interleaved wire buffers
// ABOUTME: Supports float32 and 16/24/32-bit signed PCM with channel replication
package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedFormat indicates a bit depth the encoder does not implement.
// The output buffer is filled with silence when this is returned.
var ErrUnsupportedFormat = errors.New("unsupported sample format")

// Format selects the wire representation of a sample.
type Format struct {
	Float         bool
	BitsPerSample int
}

// Supported reports whether the encoder implements this format.
func (f Format) Supported() bool {
	if f.Float {
		return f.BitsPerSample == 32
	}
	switch f.BitsPerSample {
	case 16, 24, 32:
		return true
	}
	return false
}

// BytesPerSample returns the encoded size of one sample.
func (f Format) BytesPerSample() int {
	return f.BitsPerSample / 8
}

func (f Format) String() string {
	if f.Float {
		return fmt.Sprintf("float%d", f.BitsPerSample)
	}
	return fmt.Sprintf("pcm%d", f.BitsPerSample)
}

// Encoder maps normalized mono samples into an interleaved output buffer,
// replicating each sample identically across every channel. Encode does not
// allocate and is safe to call from an audio callback.
type Encoder struct {
	format   Format
	channels int
}

// NewEncoder creates an encoder for the given format and channel count.
// The format is allowed to be unsupported here: wire formats arrive from an
// external device descriptor, and Encode answers with silence plus
// ErrUnsupportedFormat instead of failing the stream setup.
func NewEncoder(format Format, channels int) (*Encoder, error) {
	if channels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	return &Encoder{format: format, channels: channels}, nil
}

// Channels returns the output channel count.
func (e *Encoder) Channels() int { return e.channels }

// Format returns the wire format.
func (e *Encoder) Format() Format { return e.format }

// BytesPerFrame returns the encoded size of one frame across all channels.
func (e *Encoder) BytesPerFrame() int {
	return e.channels * e.format.BytesPerSample()
}

// Encode writes len(samples) frames into dst. dst must hold at least
// len(samples)*BytesPerFrame() bytes. On an unsupported format dst is filled
// with silence and ErrUnsupportedFormat is returned; dst is never left with
// garbage.
func (e *Encoder) Encode(samples []float64, dst []byte) error {
	need := len(samples) * e.BytesPerFrame()
	if len(dst) < need {
		return fmt.Errorf("output buffer too small: need %d bytes, have %d", need, len(dst))
	}

	switch {
	case e.format.Float && e.format.BitsPerSample == 32:
		e.encodeFloat32(samples, dst)
	case !e.format.Float && e.format.BitsPerSample == 16:
		e.encodePCM16(samples, dst)
	case !e.format.Float && e.format.BitsPerSample == 24:
		e.encodePCM24(samples, dst)
	case !e.format.Float && e.format.BitsPerSample == 32:
		e.encodePCM32(samples, dst)
	default:
		for i := 0; i < need; i++ {
			dst[i] = 0
		}
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, e.format)
	}
	return nil
}

func (e *Encoder) encodeFloat32(samples []float64, dst []byte) {
	for i, s := range samples {
		bits := math.Float32bits(float32(s))
		for ch := 0; ch < e.channels; ch++ {
			off := (i*e.channels + ch) * 4
			binary.LittleEndian.PutUint32(dst[off:], bits)
		}
	}
}

func (e *Encoder) encodePCM16(samples []float64, dst []byte) {
	for i, s := range samples {
		// Conversion truncates toward zero, same as the integer cast the
		// loopback amplitude accounting expects.
		v := int16(s * Max16Bit)
		for ch := 0; ch < e.channels; ch++ {
			off := (i*e.channels + ch) * 2
			binary.LittleEndian.PutUint16(dst[off:], uint16(v))
		}
	}
}

func (e *Encoder) encodePCM24(samples []float64, dst []byte) {
	for i, s := range samples {
		b := SampleTo24Bit(int32(s * Max24Bit))
		for ch := 0; ch < e.channels; ch++ {
			off := (i*e.channels + ch) * 3
			dst[off] = b[0]
			dst[off+1] = b[1]
			dst[off+2] = b[2]
		}
	}
}

func (e *Encoder) encodePCM32(samples []float64, dst []byte) {
	for i, s := range samples {
		v := int32(s * Max32Bit)
		for ch := 0; ch < e.channels; ch++ {
			off := (i*e.channels + ch) * 4
			binary.LittleEndian.PutUint32(dst[off:], uint32(v))
		}
	}
}
