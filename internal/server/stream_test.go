package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aristath/stockticker/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

type streamedEvent struct {
	Type   events.EventType       `json:"type"`
	Module string                 `json:"module"`
	Data   map[string]interface{} `json:"data"`
}

func dialStream(t *testing.T, s *Server, query string) (*websocket.Conn, context.Context) {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/stream" + query
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn, ctx
}

func TestStream_InitialStatusThenEvents(t *testing.T) {
	s := newTestServer(t, demoParameters)
	conn, ctx := dialStream(t, s, "")

	var first streamedEvent
	require.NoError(t, wsjson.Read(ctx, conn, &first))
	assert.Equal(t, events.StatusChanged, first.Type)
	assert.Equal(t, true, first.Data["sd"])

	s.container.EventManager.Emit("refresh", &events.QuoteUpdatedData{
		Symbol:       "AAPL",
		CurrentPrice: 187.44,
	})

	var next streamedEvent
	require.NoError(t, wsjson.Read(ctx, conn, &next))
	assert.Equal(t, events.QuoteUpdated, next.Type)
	assert.Equal(t, "refresh", next.Module)
	assert.Equal(t, "AAPL", next.Data["symbol"])
	assert.Equal(t, 187.44, next.Data["current_price"])
}

func TestStream_TypeFilter(t *testing.T) {
	s := newTestServer(t, demoParameters)
	conn, ctx := dialStream(t, s, "?types=SYMBOL_INVALIDATED")

	// No status snapshot when the filter excludes it, so wait for the
	// subscription before emitting.
	require.Eventually(t, func() bool {
		return s.container.EventBus.SubscriberCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	s.container.EventManager.Emit("refresh", &events.QuoteUpdatedData{Symbol: "AAPL"})
	s.container.EventManager.Emit("refresh", &events.SymbolInvalidatedData{Symbol: "ZZZZ", Reason: "unknown symbol"})

	var got streamedEvent
	require.NoError(t, wsjson.Read(ctx, conn, &got))
	assert.Equal(t, events.SymbolInvalidated, got.Type)
	assert.Equal(t, "ZZZZ", got.Data["symbol"])
}

func TestStream_UnsubscribesOnClose(t *testing.T) {
	s := newTestServer(t, demoParameters)
	conn, ctx := dialStream(t, s, "")

	var first streamedEvent
	require.NoError(t, wsjson.Read(ctx, conn, &first))
	require.Equal(t, 1, s.container.EventBus.SubscriberCount())

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, "bye"))

	assert.Eventually(t, func() bool {
		return s.container.EventBus.SubscriberCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestParseTypes(t *testing.T) {
	assert.Nil(t, parseTypes(""))

	allowed := parseTypes("QUOTE_UPDATED, STATUS_CHANGED,")
	assert.Len(t, allowed, 2)
	assert.True(t, allows(allowed, events.QuoteUpdated))
	assert.True(t, allows(allowed, events.StatusChanged))
	assert.False(t, allows(allowed, events.FetchFailed))
	assert.True(t, allows(nil, events.FetchFailed))
}
