// ABOUTME: Audio output using oto library
// ABOUTME: Plays the encoded tone stream through the default device
package player

import (
	"fmt"
	"io"
	"log"

	"github.com/ToneProbe/toneprobe-go/pkg/pcm"
	"github.com/ebitengine/oto/v3"
)

// Output manages tone playback through the platform audio device.
type Output struct {
	otoCtx *oto.Context
	player *oto.Player
	ready  bool
}

// otoFormat maps an encoder sample format onto oto's playback formats.
func otoFormat(format pcm.Format) (oto.Format, error) {
	if format.Float && format.BitsPerSample == 32 {
		return oto.FormatFloat32LE, nil
	}
	if !format.Float && format.BitsPerSample == 16 {
		return oto.FormatSignedInt16LE, nil
	}
	return 0, fmt.Errorf("%w: %s has no oto playback path", pcm.ErrUnsupportedFormat, format)
}

// NewOutput creates an audio output for the given stream format and waits
// for the device to become ready.
func NewOutput(sampleRate, channels int, format pcm.Format) (*Output, error) {
	otoFmt, err := otoFormat(format)
	if err != nil {
		return nil, err
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       otoFmt,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	log.Printf("Audio output initialized: %dHz, %d channels, %s",
		sampleRate, channels, format)

	return &Output{otoCtx: ctx, ready: true}, nil
}

// Play starts pulling encoded audio from r. The device drives the pull
// cadence; r must fill each request before the buffer deadline.
func (o *Output) Play(r io.Reader) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	o.player = o.otoCtx.NewPlayer(r)
	o.player.Play()
	return nil
}

// Playing reports whether the device is still pulling samples.
func (o *Output) Playing() bool {
	return o.player != nil && o.player.IsPlaying()
}

// Close stops playback and suspends the device context.
func (o *Output) Close() error {
	if o.player != nil {
		if err := o.player.Close(); err != nil {
			log.Printf("Error closing player: %v", err)
		}
		o.player = nil
	}
	if o.otoCtx != nil {
		o.ready = false
		return o.otoCtx.Suspend()
	}
	return nil
}
