package display

import (
	"fmt"
	"strings"

	"github.com/aristath/stockticker/internal/domain"
)

// SymbolWidth is the number of character cells the symbol field occupies.
const SymbolWidth = 5

// CompanyNameWidth is the longest company name shown before truncation.
const CompanyNameWidth = 15

// PadEven pads s with spaces to width, alternating right then left so the
// text stays centred with any odd space on the right.
func PadEven(s string, width int) string {
	left, right := 0, 0
	for toggle := false; len(s)+left+right < width; toggle = !toggle {
		if toggle {
			left++
		} else {
			right++
		}
	}
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// FormatSymbol centres a ticker symbol in the symbol field.
func FormatSymbol(symbol string) string {
	return PadEven(symbol, SymbolWidth)
}

// FormatCompanyName truncates long names and marks the cut with an ellipsis.
// Width is counted in runes.
func FormatCompanyName(name string) string {
	runes := []rune(name)
	if len(runes) <= CompanyNameWidth {
		return name
	}
	return string(runes[:CompanyNameWidth-1]) + "..."
}

// FormatChange renders the absolute change with two decimals.
func FormatChange(change float64) string {
	return fmt.Sprintf("%1.2f", change)
}

// FormatChangePercent drops decimals as the magnitude grows so the value
// fits its field.
func FormatChangePercent(percent float64) string {
	switch {
	case percent < 10:
		return fmt.Sprintf("%1.2f%%", percent)
	case percent < 100:
		return fmt.Sprintf("%2.1f%%", percent)
	default:
		return fmt.Sprintf("%3.0f%%", percent)
	}
}

// Week52Position places the current price on a bar running from lo to hi.
// Prices outside the 52 week range are clamped to the ends of the bar.
func Week52Position(q domain.QuoteValues, lo, hi float64) float64 {
	if q.Week52High <= q.Week52Low {
		return lo
	}
	pos := MapFloat(q.CurrentPrice, q.Week52Low, q.Week52High, lo, hi)
	if pos < lo {
		return lo
	}
	if pos > hi {
		return hi
	}
	return pos
}

// QuoteLines renders the text lines of the quote screen.
type QuoteLines struct {
	Symbol        string `json:"symbol"`
	CompanyName   string `json:"company_name"`
	Price         string `json:"price"`
	Change        string `json:"change"`
	ChangePercent string `json:"change_percent"`
	Open          string `json:"open"`
	PERatio       string `json:"pe_ratio"`
}

// RenderQuote formats a quote for the screen.
func RenderQuote(symbol string, q domain.QuoteValues) QuoteLines {
	return QuoteLines{
		Symbol:        FormatSymbol(symbol),
		CompanyName:   FormatCompanyName(q.CompanyName),
		Price:         fmt.Sprintf("%.2f", q.CurrentPrice),
		Change:        FormatChange(q.Change),
		ChangePercent: FormatChangePercent(q.ChangePercent),
		Open:          fmt.Sprintf("Open: %3.2f", q.OpenPrice),
		PERatio:       fmt.Sprintf("P/E: %3.2f", q.PERatio),
	}
}
