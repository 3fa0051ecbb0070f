// ABOUTME: Wire-format descriptor resolution
// ABOUTME: Distinguishes float from integer PCM, including extensible descriptors
package pcm

import (
	"fmt"

	"github.com/google/uuid"
)

// Wire format tags as they appear in device format descriptors.
const (
	TagPCM        uint16 = 0x0001
	TagIEEEFloat  uint16 = 0x0003
	TagExtensible uint16 = 0xFFFE
)

// Sub-format identifiers used by extensible descriptors. The tag alone is
// ambiguous for TagExtensible; the sub-format GUID decides.
var (
	SubFormatPCM       = uuid.MustParse("00000001-0000-0010-8000-00aa00389b71")
	SubFormatIEEEFloat = uuid.MustParse("00000003-0000-0010-8000-00aa00389b71")
)

// WireFormat is a device-supplied stream format descriptor.
type WireFormat struct {
	Tag           uint16
	Channels      int
	SampleRate    int
	BitsPerSample int
	SubFormat     uuid.UUID // only meaningful when Tag == TagExtensible
}

// IsFloat reports whether the descriptor carries IEEE float samples. The
// sub-format is consulted only when the tag is ambiguous.
func (w WireFormat) IsFloat() bool {
	if w.Tag == TagIEEEFloat {
		return true
	}
	if w.Tag == TagExtensible {
		return w.SubFormat == SubFormatIEEEFloat
	}
	return false
}

// IsPCM reports whether the descriptor carries integer PCM samples.
func (w WireFormat) IsPCM() bool {
	if w.Tag == TagPCM {
		return true
	}
	if w.Tag == TagExtensible {
		return w.SubFormat == SubFormatPCM
	}
	return false
}

// Resolve maps the descriptor onto an encoder sample format.
func (w WireFormat) Resolve() (Format, error) {
	switch {
	case w.IsFloat():
		return Format{Float: true, BitsPerSample: w.BitsPerSample}, nil
	case w.IsPCM():
		return Format{Float: false, BitsPerSample: w.BitsPerSample}, nil
	}
	return Format{}, fmt.Errorf("%w: tag 0x%04X sub-format %s", ErrUnsupportedFormat, w.Tag, w.SubFormat)
}
