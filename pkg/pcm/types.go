// ABOUTME: PCM sample representation helpers
// ABOUTME: Full-scale constants and 24-bit two's-complement packing
package pcm

const (
	// Full-scale values for signed PCM encodings
	Max16Bit = 32767      // 2^15 - 1
	Max24Bit = 8388607    // 2^23 - 1
	Min24Bit = -8388608   // -2^23
	Max32Bit = 2147483647 // 2^31 - 1
)

// SampleTo24Bit packs the low 24 bits of a sample into three little-endian
// bytes, the layout pcm24 frames use on the wire.
func SampleTo24Bit(sample int32) [3]byte {
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit rebuilds a sample from three little-endian bytes. The
// shift pair carries bit 23 into the upper byte, so negative samples come
// back negative.
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	return (val << 8) >> 8
}

// NormalizeInt16 converts interleaved int16 samples to normalized float64
// values in [-1, 1], dividing by the 16-bit full scale.
func NormalizeInt16(samples []int16) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s) / Max16Bit
	}
	return out
}
