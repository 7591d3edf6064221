package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the palette of the ticker screen.
type Theme struct {
	Base    lipgloss.Color
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Gain    lipgloss.Color
	Loss    lipgloss.Color
	Flat    lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// DefaultTheme mirrors the device colours: green up, red down, blue flat.
var DefaultTheme = Theme{
	Base:    lipgloss.Color("#000000"),
	Border:  lipgloss.Color("#4D4C57"),
	Muted:   lipgloss.Color("#858392"),
	Text:    lipgloss.Color("#FFFFFF"),
	Gain:    lipgloss.Color("#00FF00"),
	Loss:    lipgloss.Color("#FF0000"),
	Flat:    lipgloss.Color("#0000FF"),
	Warning: lipgloss.Color("#FFD300"),
	Error:   lipgloss.Color("#E94090"),
}

// ChangeColor picks the colour for a price change.
func (t Theme) ChangeColor(change float64) lipgloss.Color {
	switch {
	case change > 0:
		return t.Gain
	case change < 0:
		return t.Loss
	default:
		return t.Flat
	}
}
