// ABOUTME: Entry point for loopback verification
// ABOUTME: Analyzes a captured tone file and reports a pass/fail verdict
package main

import (
	"flag"
	"log"
	"os"

	"github.com/ToneProbe/toneprobe-go/internal/config"
	"github.com/ToneProbe/toneprobe-go/pkg/analyze"
	"github.com/ToneProbe/toneprobe-go/pkg/pcm"
	"github.com/ToneProbe/toneprobe-go/pkg/wav"
)

var (
	configPath = flag.String("config", "", "YAML config file path")
	wavPath    = flag.String("wav", "", "Captured tone file to analyze (required)")
	expected   = flag.Float64("expect", 0, "Expected frequency in Hz (overrides config)")
	tolerance  = flag.Float64("tolerance", 0, "Frequency tolerance in Hz (overrides config)")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	if *wavPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *expected > 0 {
		cfg.Verify.ExpectedFrequencyHz = *expected
	}
	if *tolerance > 0 {
		cfg.Verify.FrequencyToleranceHz = *tolerance
	}

	samples, info, err := wav.ReadFile(*wavPath)
	if err != nil {
		log.Fatalf("Failed to read tone file: %v", err)
	}
	log.Printf("Loaded %s: %d samples at %d Hz", *wavPath, len(samples), info.SampleRate)

	acfg := cfg.AnalyzeConfig()
	acfg.SampleRate = info.SampleRate

	res, err := analyze.Verify(pcm.NormalizeInt16(samples), acfg)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	log.Printf("Detected frequency: %.2f Hz (expected %.2f ± %.2f Hz)",
		res.DetectedFrequencyHz, acfg.ExpectedFrequencyHz, acfg.FrequencyToleranceHz)
	log.Printf("RMS: %.4f, DC offset: %.4f", res.RMS, res.DCOffset)

	if !res.Passed {
		for _, reason := range res.Failures {
			log.Printf("FAIL: %s", reason)
		}
		log.Printf("=== VERIFICATION FAILED ===")
		os.Exit(1)
	}
	log.Printf("=== VERIFICATION PASSED ===")
}
