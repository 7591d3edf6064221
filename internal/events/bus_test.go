package events

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_EmitToSubscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	first := bus.Subscribe()
	second := bus.Subscribe()
	assert.Equal(t, 2, bus.SubscriberCount())

	bus.Emit("refresh", &QuoteUpdatedData{Symbol: "AAPL", CurrentPrice: 190.5})

	for _, ch := range []chan Event{first, second} {
		select {
		case event := <-ch:
			assert.Equal(t, QuoteUpdated, event.Type)
			assert.Equal(t, "refresh", event.Module)
			data, ok := event.Data.(*QuoteUpdatedData)
			require.True(t, ok)
			assert.Equal(t, "AAPL", data.Symbol)
		default:
			t.Fatal("expected event")
		}
	}
}

func TestBus_FullSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	ch := bus.Subscribe()

	for i := 0; i < subscriberBuffer*2; i++ {
		bus.Emit("test", &MarketStateChangedData{From: "Closed", To: "PreHours"})
	}

	assert.Len(t, ch, subscriberBuffer)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	ch := bus.Subscribe()

	bus.Unsubscribe(ch)
	bus.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestManager_Emit(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	manager := NewManager(bus, zerolog.Nop())
	ch := bus.Subscribe()

	manager.EmitError("refresh", errors.New("boom"), map[string]interface{}{"symbol": "AAPL"})
	manager.EmitError("refresh", nil, nil)

	require.Len(t, ch, 1)
	event := <-ch
	assert.Equal(t, ErrorOccurred, event.Type)
	assert.Equal(t, "boom", event.Data.(*ErrorEventData).Error)

	var nilManager *Manager
	assert.NotPanics(t, func() {
		nilManager.Emit("x", &StatusChangedData{})
	})
}
