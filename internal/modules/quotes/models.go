package quotes

import "github.com/aristath/stockticker/internal/domain"

// SymbolRecord is one row of the symbol table.
// LastFetch is epoch seconds of the last successful fetch; zero means never fetched.
type SymbolRecord struct {
	Symbol string `json:"symbol"`
	domain.QuoteValues
	LastFetch   int64  `json:"last_fetch"`
	IsValid     bool   `json:"is_valid"`
	ErrorString string `json:"error,omitempty"`
}

// NeverFetched reports whether the record still holds no data.
func (r SymbolRecord) NeverFetched() bool {
	return r.LastFetch == 0
}
