// ABOUTME: Bubbletea model for the tone control TUI
// ABOUTME: Live frequency and amplitude adjustment during playback
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToneChangeMsg carries a control-path parameter change to the player.
type ToneChangeMsg struct {
	FrequencyHz float64
	Amplitude   float64
	ResetPhase  bool
}

// QuitMsg signals that the user asked to stop playback.
type QuitMsg struct{}

// tickMsg drives the elapsed-time display.
type tickMsg time.Time

// Frequency step per keypress, in Hz.
const freqStep = 10.0

// Amplitude step per keypress.
const ampStep = 0.05

// Model represents the TUI state.
type Model struct {
	frequencyHz float64
	amplitude   float64
	sampleRate  int
	channels    int
	format      string

	started time.Time
	elapsed time.Duration

	control *ToneControl

	width  int
	height int
}

// Init starts the elapsed-time ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		m.elapsed = time.Since(m.started)
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.control.sendQuit()
		return m, tea.Quit
	case "up":
		m.frequencyHz += freqStep
		m.publish(false)
	case "down":
		if m.frequencyHz-freqStep > 0 {
			m.frequencyHz -= freqStep
			m.publish(false)
		}
	case "+", "=":
		if m.amplitude+ampStep <= 1.0 {
			m.amplitude += ampStep
			m.publish(false)
		}
	case "-":
		if m.amplitude-ampStep >= 0 {
			m.amplitude -= ampStep
			m.publish(false)
		}
	case "r":
		m.publish(true)
	}
	return m, nil
}

// publish hands the current parameters to the player's control path.
func (m Model) publish(reset bool) {
	m.control.sendChange(ToneChangeMsg{
		FrequencyHz: m.frequencyHz,
		Amplitude:   m.amplitude,
		ResetPhase:  reset,
	})
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := "┌─ ToneProbe ──────────────────────────────────────────┐\n"
	s += fmt.Sprintf("│ Tone:    %8.1f Hz at %.2f amplitude%-16s │\n", m.frequencyHz, m.amplitude, "")
	s += fmt.Sprintf("│ Stream:  %dHz %s %s%-21s │\n", m.sampleRate, channelName(m.channels), m.format, "")
	s += fmt.Sprintf("│ Elapsed: %-43s │\n", m.elapsed.Truncate(time.Second))
	s += "├──────────────────────────────────────────────────────┤\n"
	s += "│ ↑/↓:Frequency  +/-:Amplitude  r:Reset phase  q:Quit  │\n"
	s += "└──────────────────────────────────────────────────────┘\n"
	return s
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	}
	return fmt.Sprintf("%dch", channels)
}
