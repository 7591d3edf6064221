package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			return m, touch(m.source)
		case key.Matches(msg, keys.Lock):
			locked := m.screen != nil && m.screen.Locked
			return m, setLock(m.source, !locked)
		}

	case refreshMsg:
		return m, tea.Batch(fetchScreen(m.source), scheduleRefresh())

	case screenMsg:
		if msg.err != nil {
			m.connected = false
			m.lastErr = msg.err
			return m, nil
		}
		m.connected = true
		m.lastErr = nil
		screen := msg.screen
		m.screen = &screen
	}

	return m, nil
}
