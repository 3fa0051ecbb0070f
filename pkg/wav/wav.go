// ABOUTME: Minimal fixed-layout WAV container for tone files
// ABOUTME: Mono 16-bit PCM with the canonical 44-byte header
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const headerSize = 44

// header is the fixed 44-byte RIFF/WAVE layout, little-endian on the wire.
type header struct {
	RIFF          [4]byte // "RIFF"
	FileSize      uint32  // total size - 8
	WAVE          [4]byte // "WAVE"
	Fmt           [4]byte // "fmt "
	FmtSize       uint32  // 16 for PCM
	AudioFormat   uint16  // 1 = PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // sampleRate * channels * bytesPerSample
	BlockAlign    uint16 // channels * bytesPerSample
	BitsPerSample uint16 // 16
	Data          [4]byte // "data"
	DataSize      uint32
}

// Info describes a decoded tone file.
type Info struct {
	SampleRate int
	Channels   int
	DataSize   int
	FileSize   int
}

// Write encodes samples as a mono 16-bit PCM WAV stream.
func Write(w io.Writer, samples []int16, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	dataSize := uint32(len(samples) * 2)
	h := header{
		FileSize:      36 + dataSize,
		FmtSize:       16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * 2),
		BlockAlign:    2,
		BitsPerSample: 16,
		DataSize:      dataSize,
	}
	copy(h.RIFF[:], "RIFF")
	copy(h.WAVE[:], "WAVE")
	copy(h.Fmt[:], "fmt ")
	copy(h.Data[:], "data")

	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("failed to write WAV header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	return nil
}

// WriteFile writes a mono 16-bit PCM WAV file.
func WriteFile(path string, samples []int16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, samples, sampleRate); err != nil {
		return err
	}
	return f.Close()
}

// Read decodes a mono 16-bit PCM WAV stream produced by Write. Every fixed
// header field is validated.
func Read(r io.Reader) ([]int16, Info, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, Info{}, fmt.Errorf("failed to read WAV header: %w", err)
	}

	if string(h.RIFF[:]) != "RIFF" || string(h.WAVE[:]) != "WAVE" {
		return nil, Info{}, fmt.Errorf("not a RIFF/WAVE stream")
	}
	if string(h.Fmt[:]) != "fmt " || h.FmtSize != 16 {
		return nil, Info{}, fmt.Errorf("unexpected fmt chunk (size %d)", h.FmtSize)
	}
	if h.AudioFormat != 1 {
		return nil, Info{}, fmt.Errorf("unsupported audio format code %d (want PCM)", h.AudioFormat)
	}
	if h.NumChannels != 1 {
		return nil, Info{}, fmt.Errorf("unsupported channel count %d (want mono)", h.NumChannels)
	}
	if h.BitsPerSample != 16 {
		return nil, Info{}, fmt.Errorf("unsupported bit depth %d (want 16)", h.BitsPerSample)
	}
	if h.ByteRate != h.SampleRate*2 || h.BlockAlign != 2 {
		return nil, Info{}, fmt.Errorf("inconsistent frame layout: byte rate %d, block align %d", h.ByteRate, h.BlockAlign)
	}
	if string(h.Data[:]) != "data" {
		return nil, Info{}, fmt.Errorf("missing data chunk")
	}
	if h.FileSize != 36+h.DataSize {
		return nil, Info{}, fmt.Errorf("inconsistent sizes: file %d, data %d", h.FileSize, h.DataSize)
	}
	if h.DataSize%2 != 0 {
		return nil, Info{}, fmt.Errorf("odd data size %d", h.DataSize)
	}

	// Grow with the actual stream rather than trusting the header's data
	// size for the allocation.
	data, err := io.ReadAll(io.LimitReader(r, int64(h.DataSize)))
	if err != nil {
		return nil, Info{}, fmt.Errorf("failed to read WAV data: %w", err)
	}
	if uint32(len(data)) != h.DataSize {
		return nil, Info{}, fmt.Errorf("truncated data chunk: %d of %d bytes", len(data), h.DataSize)
	}

	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}

	info := Info{
		SampleRate: int(h.SampleRate),
		Channels:   int(h.NumChannels),
		DataSize:   int(h.DataSize),
		FileSize:   int(h.FileSize),
	}
	return samples, info, nil
}

// ReadFile reads a mono 16-bit PCM WAV file.
func ReadFile(path string) ([]int16, Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}
