// Package quotes holds the shared symbol table read by renderers and written
// by the refresh scheduler.
package quotes

import (
	"strings"
	"sync"

	"github.com/aristath/stockticker/internal/domain"
)

// Table is the symbol table. Every access takes the single table lock for the
// duration of the copy or update only; callers never hold it across I/O.
type Table struct {
	mu      sync.RWMutex
	records []SymbolRecord
	index   map[string]int
}

// NewTable creates a table with one never-fetched, valid record per symbol.
// Symbols are upper-cased and duplicates collapse onto the first occurrence.
func NewTable(symbols []string) *Table {
	t := &Table{
		records: make([]SymbolRecord, 0, len(symbols)),
		index:   make(map[string]int, len(symbols)),
	}
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, exists := t.index[s]; exists {
			continue
		}
		t.index[s] = len(t.records)
		t.records = append(t.records, SymbolRecord{Symbol: s, IsValid: true})
	}
	return t
}

// Len returns the number of records.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

// Snapshot returns a copy of all records in table order.
func (t *Table) Snapshot() []SymbolRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]SymbolRecord, len(t.records))
	copy(out, t.records)
	return out
}

// At returns a copy of the record at position i.
func (t *Table) At(i int) (SymbolRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if i < 0 || i >= len(t.records) {
		return SymbolRecord{}, false
	}
	return t.records[i], true
}

// Get returns a copy of the record for symbol.
func (t *Table) Get(symbol string) (SymbolRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i, ok := t.index[strings.ToUpper(symbol)]
	if !ok {
		return SymbolRecord{}, false
	}
	return t.records[i], true
}

// SelectOldest returns the valid record with the smallest LastFetch. Ties go
// to the earliest record in table order. ok is false when no valid record
// remains.
func (t *Table) SelectOldest() (SymbolRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	best := -1
	for i, r := range t.records {
		if !r.IsValid {
			continue
		}
		if best < 0 || r.LastFetch < t.records[best].LastFetch {
			best = i
		}
	}
	if best < 0 {
		return SymbolRecord{}, false
	}
	return t.records[best], true
}

// MarkFetched stores fresh values and the completion timestamp.
// Records already marked invalid stay untouched.
func (t *Table) MarkFetched(symbol string, values domain.QuoteValues, fetchedAt int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.lookup(symbol)
	if r == nil || !r.IsValid {
		return false
	}
	r.QuoteValues = values
	r.LastFetch = fetchedAt
	r.ErrorString = ""
	return true
}

// MarkInvalid permanently excludes symbol from selection.
func (t *Table) MarkInvalid(symbol, reason string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.lookup(symbol)
	if r == nil || !r.IsValid {
		return false
	}
	r.IsValid = false
	r.ErrorString = reason
	return true
}

// MarkFailed records a transient failure. LastFetch is left as is so the
// record stays the most likely next candidate.
func (t *Table) MarkFailed(symbol, reason string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.lookup(symbol)
	if r == nil {
		return false
	}
	r.ErrorString = reason
	return true
}

// ValidCount returns how many records are still eligible for refresh.
func (t *Table) ValidCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, r := range t.records {
		if r.IsValid {
			n++
		}
	}
	return n
}

// lookup must be called with mu held.
func (t *Table) lookup(symbol string) *SymbolRecord {
	i, ok := t.index[strings.ToUpper(symbol)]
	if !ok {
		return nil
	}
	return &t.records[i]
}
