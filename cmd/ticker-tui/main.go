// Command ticker-tui renders the ticker screen in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aristath/stockticker/internal/tui"
)

func main() {
	apiURL := flag.String("api-url", "http://localhost:8001", "Ticker API URL")
	flag.Parse()

	m := tui.NewModel(tui.NewClient(*apiURL), *apiURL)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
