// ABOUTME: Entry point for the ToneProbe tone generator
// ABOUTME: Plays the reference tone or writes it to a tone file
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ToneProbe/toneprobe-go/internal/config"
	"github.com/ToneProbe/toneprobe-go/internal/engine"
	"github.com/ToneProbe/toneprobe-go/internal/player"
	"github.com/ToneProbe/toneprobe-go/internal/ui"
	"github.com/ToneProbe/toneprobe-go/pkg/pcm"
	"github.com/ToneProbe/toneprobe-go/pkg/sinegen"
	"github.com/ToneProbe/toneprobe-go/pkg/wav"
)

var (
	configPath = flag.String("config", "", "YAML config file path")
	frequency  = flag.Float64("freq", 0, "Tone frequency in Hz (overrides config)")
	amplitude  = flag.Float64("amplitude", -1, "Tone amplitude 0..1 (overrides config)")
	duration   = flag.Int("duration", 0, "Playback duration in seconds (0 = until quit)")
	wavPath    = flag.String("wav", "", "Write the tone to this WAV file instead of playing")
	wavSeconds = flag.Float64("wav-seconds", 0, "Tone file length in seconds (default: verify.duration_seconds)")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	logFile    = flag.String("log-file", "toneprobe.log", "Log file path")
)

func main() {
	flag.Parse()

	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	useTUI := !*noTUI && *wavPath == ""
	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	cfg := loadConfig()

	gen, err := sinegen.New(cfg.Tone.FrequencyHz, float64(cfg.Tone.SampleRate), cfg.Tone.Amplitude)
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}

	if *wavPath != "" {
		writeToneFile(gen, cfg)
		return
	}

	play(gen, cfg, useTUI)
}

func loadConfig() *config.Config {
	var cfg *config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	} else {
		def := config.Default()
		cfg = &def
	}

	if *frequency > 0 {
		cfg.Tone.FrequencyHz = *frequency
	}
	if *amplitude >= 0 {
		cfg.Tone.Amplitude = *amplitude
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func writeToneFile(gen *sinegen.Generator, cfg *config.Config) {
	seconds := *wavSeconds
	if seconds <= 0 {
		seconds = cfg.Verify.DurationSeconds
	}
	n := int(seconds * float64(cfg.Tone.SampleRate))
	samples, err := engine.RenderPCM16(gen, n)
	if err != nil {
		log.Fatalf("Failed to render tone: %v", err)
	}

	if err := wav.WriteFile(*wavPath, samples, cfg.Tone.SampleRate); err != nil {
		log.Fatalf("Failed to write tone file: %v", err)
	}
	log.Printf("Wrote %d samples of %.1f Hz to %s", n, cfg.Tone.FrequencyHz, *wavPath)
}

func play(gen *sinegen.Generator, cfg *config.Config, useTUI bool) {
	enc, err := pcm.NewEncoder(cfg.Tone.Format(), cfg.Tone.Channels)
	if err != nil {
		log.Fatalf("Failed to create encoder: %v", err)
	}

	stream, err := engine.NewToneStream(gen, enc, 8192)
	if err != nil {
		log.Fatalf("Failed to create tone stream: %v", err)
	}

	out, err := player.NewOutput(cfg.Tone.SampleRate, cfg.Tone.Channels, cfg.Tone.Format())
	if err != nil {
		log.Fatalf("Failed to open audio output: %v", err)
	}
	defer out.Close()

	if err := out.Play(stream); err != nil {
		log.Fatalf("Failed to start playback: %v", err)
	}
	log.Printf("Playing %.1f Hz at amplitude %.2f (%s, %d channels)",
		cfg.Tone.FrequencyHz, cfg.Tone.Amplitude, cfg.Tone.Format(), cfg.Tone.Channels)

	control := ui.NewToneControl()
	if useTUI {
		model := ui.NewModel(control, cfg.Tone.FrequencyHz, cfg.Tone.Amplitude,
			cfg.Tone.SampleRate, cfg.Tone.Channels, cfg.Tone.Format().String())
		prog, err := ui.Run(model)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go func() {
			if _, err := prog.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var timeout <-chan time.Time
	if *duration > 0 {
		timeout = time.After(time.Duration(*duration) * time.Second)
	}

	for {
		select {
		case change := <-control.Changes:
			applyChange(gen, change)
		case <-control.Quit:
			log.Printf("Stopping playback")
			return
		case <-sigChan:
			log.Printf("Received signal, stopping playback")
			return
		case <-timeout:
			log.Printf("Playback duration reached")
			return
		}
	}
}

// applyChange carries TUI adjustments onto the generator's control path.
func applyChange(gen *sinegen.Generator, change ui.ToneChangeMsg) {
	if change.ResetPhase {
		gen.Reset()
		log.Printf("Phase reset")
		return
	}
	if change.FrequencyHz != gen.Frequency() {
		if err := gen.SetFrequency(change.FrequencyHz); err != nil {
			log.Printf("Rejected frequency change: %v", err)
			return
		}
		log.Printf("Frequency set to %.1f Hz", change.FrequencyHz)
	}
	if change.Amplitude != gen.Amplitude() {
		gen.SetAmplitude(change.Amplitude)
		log.Printf("Amplitude set to %.2f", change.Amplitude)
	}
}
