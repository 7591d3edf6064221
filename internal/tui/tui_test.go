package tui

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/aristath/stockticker/internal/modules/display"
	displayhandlers "github.com/aristath/stockticker/internal/modules/display/handlers"
	"github.com/aristath/stockticker/internal/modules/quotes"
)

type fakeSource struct {
	screen  displayhandlers.ScreenResponse
	err     error
	touches int
	locks   []bool
}

func (f *fakeSource) Screen() (displayhandlers.ScreenResponse, error) {
	return f.screen, f.err
}

func (f *fakeSource) Next() (displayhandlers.ScreenResponse, error) {
	f.touches++
	return f.screen, f.err
}

func (f *fakeSource) SetLock(locked bool) (displayhandlers.ScreenResponse, error) {
	f.locks = append(f.locks, locked)
	f.screen.Locked = locked
	return f.screen, f.err
}

func quoteScreen() displayhandlers.ScreenResponse {
	values := domain.QuoteValues{
		CompanyName:   "Apple Inc.",
		OpenPrice:     186.10,
		CurrentPrice:  187.44,
		Change:        1.25,
		ChangePercent: 0.67,
		PERatio:       29.1,
		Week52High:    199.62,
		Week52Low:     124.17,
	}
	lines := display.RenderQuote("AAPL", values)
	return displayhandlers.ScreenResponse{
		Brightness: 255,
		Record:     &quotes.SymbolRecord{Symbol: "AAPL", QuoteValues: values, LastFetch: 1, IsValid: true},
		Lines:      &lines,
		Status:     display.Status{Wifi: true, SD: true, Api: true, Time: true},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestUpdate_ScreenMessage(t *testing.T) {
	m := NewModel(&fakeSource{}, "http://ticker")

	m, _ = update(t, m, screenMsg{screen: quoteScreen()})
	assert.True(t, m.connected)
	require.NotNil(t, m.screen)
	assert.Equal(t, "AAPL", m.screen.Record.Symbol)

	m, _ = update(t, m, screenMsg{err: errors.New("connection refused")})
	assert.False(t, m.connected)
	assert.Error(t, m.lastErr)
	assert.NotNil(t, m.screen, "last screen is kept while offline")
}

func TestUpdate_Keys(t *testing.T) {
	source := &fakeSource{screen: quoteScreen()}
	m := NewModel(source, "http://ticker")
	m, _ = update(t, m, screenMsg{screen: source.screen})

	t.Run("space touches", func(t *testing.T) {
		_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace})
		require.NotNil(t, cmd)
		msg := cmd()
		assert.IsType(t, screenMsg{}, msg)
		assert.Equal(t, 1, source.touches)
	})

	t.Run("l toggles lock", func(t *testing.T) {
		m, cmd := update(t, m, runes("l"))
		m, _ = update(t, m, cmd())
		assert.True(t, m.screen.Locked)

		_, cmd = update(t, m, runes("l"))
		cmd()
		assert.Equal(t, []bool{true, false}, source.locks)
	})

	t.Run("q quits", func(t *testing.T) {
		_, cmd := update(t, m, runes("q"))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestView(t *testing.T) {
	t.Run("connecting", func(t *testing.T) {
		m := NewModel(&fakeSource{}, "http://ticker")
		assert.Contains(t, m.View(), "Connecting")
	})

	t.Run("unreachable", func(t *testing.T) {
		m := NewModel(&fakeSource{}, "http://ticker")
		m, _ = update(t, m, screenMsg{err: errors.New("connection refused")})
		view := m.View()
		assert.Contains(t, view, "http://ticker")
		assert.Contains(t, view, "connection refused")
	})

	t.Run("quote", func(t *testing.T) {
		m := NewModel(&fakeSource{}, "http://ticker")
		m, _ = update(t, m, screenMsg{screen: quoteScreen()})
		view := m.View()
		assert.Contains(t, view, "Apple Inc.")
		assert.Contains(t, view, "187.44")
		assert.Contains(t, view, "0.67%")
		assert.Contains(t, view, "WIFI")
		assert.Contains(t, view, "124.17")
		assert.NotContains(t, view, "LOCKED")
	})

	t.Run("invalid symbol", func(t *testing.T) {
		screen := quoteScreen()
		screen.Record.IsValid = false
		screen.Record.ErrorString = "unknown symbol"
		screen.Lines = nil
		screen.Status.SymbolLocked = true

		m := NewModel(&fakeSource{}, "http://ticker")
		m, _ = update(t, m, screenMsg{screen: screen})
		view := m.View()
		assert.Contains(t, view, "Invalid symbol: unknown symbol")
		assert.Contains(t, view, "LOCKED")
	})

	t.Run("fatal error", func(t *testing.T) {
		screen := quoteScreen()
		screen.Status.FatalError = "config api.key: required in live mode"

		m := NewModel(&fakeSource{}, "http://ticker")
		m, _ = update(t, m, screenMsg{screen: screen})
		view := m.View()
		assert.Contains(t, view, "ERROR")
		assert.Contains(t, view, "required in live mode")
	})
}

func TestClient(t *testing.T) {
	var lastMethod, lastPath, lastBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastMethod, lastPath = r.Method, r.URL.Path
		body, _ := io.ReadAll(r.Body)
		lastBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": quoteScreen()})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	screen, err := client.Screen()
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, lastMethod)
	assert.Equal(t, "/api/display", lastPath)
	assert.Equal(t, "AAPL", screen.Record.Symbol)

	_, err = client.Next()
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, lastMethod)
	assert.Equal(t, "/api/display/next", lastPath)

	_, err = client.SetLock(true)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, lastMethod)
	assert.JSONEq(t, `{"locked": true}`, lastBody)
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Screen()
	assert.Error(t, err)
}
