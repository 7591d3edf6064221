package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	displayhandlers "github.com/aristath/stockticker/internal/modules/display/handlers"
)

// ScreenSource is the part of Client the model uses.
type ScreenSource interface {
	Screen() (displayhandlers.ScreenResponse, error)
	Next() (displayhandlers.ScreenResponse, error)
	SetLock(locked bool) (displayhandlers.ScreenResponse, error)
}

// Model is the bubbletea model of the terminal screen.
type Model struct {
	source ScreenSource
	apiURL string

	screen    *displayhandlers.ScreenResponse
	connected bool
	lastErr   error

	width  int
	height int
}

// Messages

type screenMsg struct {
	screen displayhandlers.ScreenResponse
	err    error
}

type refreshMsg struct{}

// refreshInterval matches the carousel job, so switches show up promptly.
const refreshInterval = time.Second

// NewModel creates the model.
func NewModel(source ScreenSource, apiURL string) Model {
	return Model{source: source, apiURL: apiURL}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchScreen(m.source), scheduleRefresh())
}

// Commands

func fetchScreen(s ScreenSource) tea.Cmd {
	return func() tea.Msg {
		screen, err := s.Screen()
		return screenMsg{screen, err}
	}
}

func touch(s ScreenSource) tea.Cmd {
	return func() tea.Msg {
		screen, err := s.Next()
		return screenMsg{screen, err}
	}
}

func setLock(s ScreenSource, locked bool) tea.Cmd {
	return func() tea.Msg {
		screen, err := s.SetLock(locked)
		return screenMsg{screen, err}
	}
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}
