// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the tone control UI
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToneControl holds channels carrying control-path changes to the player.
type ToneControl struct {
	Changes chan ToneChangeMsg
	Quit    chan QuitMsg
}

// NewToneControl creates a new tone control handler.
func NewToneControl() *ToneControl {
	return &ToneControl{
		Changes: make(chan ToneChangeMsg, 10),
		Quit:    make(chan QuitMsg, 1),
	}
}

// sendChange forwards a change without blocking the UI loop.
func (c *ToneControl) sendChange(msg ToneChangeMsg) {
	select {
	case c.Changes <- msg:
	default:
	}
}

func (c *ToneControl) sendQuit() {
	select {
	case c.Quit <- QuitMsg{}:
	default:
	}
}

// NewModel creates a new TUI model.
func NewModel(control *ToneControl, frequencyHz, amplitude float64, sampleRate, channels int, format string) Model {
	return Model{
		frequencyHz: frequencyHz,
		amplitude:   amplitude,
		sampleRate:  sampleRate,
		channels:    channels,
		format:      format,
		control:     control,
		started:     time.Now(),
	}
}

// Run starts the TUI.
func Run(m Model) (*tea.Program, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	return p, nil
}
