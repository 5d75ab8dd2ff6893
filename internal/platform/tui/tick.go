// Package tui provides the Bubble Tea integration for Lumines.
// It handles the terminal UI loop, input mapping, name entry and score screens.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	Time time.Time
	id   uint64 // loop that scheduled the tick
}

// loopIDs hands out tick loop identifiers, so a model ignores ticks still in
// flight from a loop it replaced.
var loopIDs atomic.Uint64

func nextLoopID() uint64 {
	return loopIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, id uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 12
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, id: id}
	})
}
