package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/aristath/stockticker/internal/modules/display"
	displayhandlers "github.com/aristath/stockticker/internal/modules/display/handlers"
)

// dimThreshold is the backlight level below which the screen renders faint.
const dimThreshold = 128

func (m Model) View() string {
	t := DefaultTheme

	if m.screen == nil {
		if m.lastErr != nil {
			return lipgloss.NewStyle().Foreground(t.Error).Padding(1, 2).
				Render(fmt.Sprintf("Cannot reach ticker at %s\n%v", m.apiURL, m.lastErr))
		}
		return "\n  Connecting..."
	}

	screen := *m.screen
	var body string
	if screen.Status.FatalError != "" {
		body = viewFatal(screen.Status.FatalError)
	} else {
		body = viewQuote(screen)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, body, "", viewIndicators(screen, m.connected))

	page := lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)
	if screen.Brightness < dimThreshold {
		page = page.Faint(true)
	}
	return page.Render(content)
}

func viewFatal(message string) string {
	t := DefaultTheme
	title := lipgloss.NewStyle().Foreground(t.Error).Bold(true).Render("ERROR")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", lipgloss.NewStyle().Foreground(t.Text).Render(message))
}

func viewQuote(screen displayhandlers.ScreenResponse) string {
	t := DefaultTheme
	muted := lipgloss.NewStyle().Foreground(t.Muted)

	record := screen.Record
	if record == nil {
		return muted.Render("No symbols configured")
	}

	if !record.IsValid {
		symbol := lipgloss.NewStyle().Foreground(t.Muted).Render(renderFiglet(record.Symbol))
		reason := lipgloss.NewStyle().Foreground(t.Warning).Render("Invalid symbol: " + record.ErrorString)
		return lipgloss.JoinVertical(lipgloss.Left, symbol, reason)
	}

	lines := screen.Lines
	if lines == nil {
		symbol := lipgloss.NewStyle().Foreground(t.Text).Render(renderFiglet(record.Symbol))
		return lipgloss.JoinVertical(lipgloss.Left, symbol, muted.Render("Waiting for data..."))
	}

	color := t.ChangeColor(record.Change)
	symbol := lipgloss.NewStyle().Foreground(color).Render(renderFiglet(strings.TrimSpace(lines.Symbol)))
	name := lipgloss.NewStyle().Foreground(t.Text).Render(lines.CompanyName)
	price := lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(lines.Price)
	change := lipgloss.NewStyle().Foreground(color).Render(lines.Change + "  " + lines.ChangePercent)

	return lipgloss.JoinVertical(lipgloss.Left,
		symbol,
		name,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, price, "  ", change),
		muted.Render(lines.Open+"  "+lines.PERatio),
		"",
		viewRange(record.QuoteValues),
	)
}

// rangeWidth is the width of the 52 week bar in cells.
const rangeWidth = 30

func viewRange(q domain.QuoteValues) string {
	t := DefaultTheme
	if q.Week52High <= q.Week52Low {
		return ""
	}

	cell := int(display.Week52Position(q, 0, rangeWidth-1))
	bar := strings.Repeat("─", cell) + "●" + strings.Repeat("─", rangeWidth-1-cell)

	muted := lipgloss.NewStyle().Foreground(t.Muted)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		muted.Render(fmt.Sprintf("%.2f ", q.Week52Low)),
		lipgloss.NewStyle().Foreground(t.Text).Render(bar),
		muted.Render(fmt.Sprintf(" %.2f", q.Week52High)),
	)
}

func viewIndicators(screen displayhandlers.ScreenResponse, connected bool) string {
	t := DefaultTheme
	indicator := func(label string, on bool) string {
		color := t.Muted
		if on {
			color = t.Gain
		}
		return lipgloss.NewStyle().Foreground(color).Render(label)
	}

	st := screen.Status
	parts := []string{
		indicator("WIFI", st.Wifi),
		indicator("SD", st.SD),
		indicator("API", st.Api),
		indicator("TIME", st.Time),
	}
	if st.SymbolLocked {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Warning).Render("LOCKED"))
	}
	if st.RequestInProgress {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Flat).Render("●"))
	}
	if !connected {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Error).Render("OFFLINE"))
	}
	return strings.Join(parts, " ")
}

// renderFiglet renders text in the standard figlet font.
func renderFiglet(text string) string {
	fig := figure.NewFigure(text, "", false)
	return strings.TrimRight(strings.Join(fig.Slicify(), "\n"), "\n ")
}
