// Package display holds everything that renders core state: indicator
// flags, backlight and matrix brightness, the symbol carousel and the LED
// matrix bridge.
package display

import (
	"sync"

	"github.com/aristath/stockticker/internal/events"
	"github.com/rs/zerolog"
)

// Status holds the indicator flags shown along the bottom of the screen.
type Status struct {
	Wifi              bool   `json:"wifi"`
	SD                bool   `json:"sd"`
	Api               bool   `json:"api"`
	Time              bool   `json:"time"`
	SymbolLocked      bool   `json:"symbol_locked"`
	RequestInProgress bool   `json:"request_in_progress"`
	FatalError        string `json:"fatal_error,omitempty"`
}

// StatusManager handles thread-safe indicator state. Only changes are logged
// and emitted.
type StatusManager struct {
	status Status
	mu     sync.RWMutex
	events *events.Manager
	log    zerolog.Logger
}

// NewStatusManager creates a new status manager. eventManager may be nil.
func NewStatusManager(eventManager *events.Manager, log zerolog.Logger) *StatusManager {
	return &StatusManager{
		events: eventManager,
		log:    log.With().Str("component", "status_manager").Logger(),
	}
}

// Get returns a copy of the current status.
func (sm *StatusManager) Get() Status {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.status
}

// Update applies fn to the status and reports whether anything changed.
func (sm *StatusManager) Update(fn func(*Status)) bool {
	sm.mu.Lock()
	previous := sm.status
	fn(&sm.status)
	current := sm.status
	sm.mu.Unlock()

	if current == previous {
		return false
	}

	sm.log.Debug().Interface("status", current).Msg("Status changed")
	sm.events.Emit("display", current.EventData())
	return true
}

// SetWifi sets the network indicator.
func (sm *StatusManager) SetWifi(ok bool) bool {
	return sm.Update(func(s *Status) { s.Wifi = ok })
}

// SetSD sets the parameters-loaded indicator.
func (sm *StatusManager) SetSD(ok bool) bool {
	return sm.Update(func(s *Status) { s.SD = ok })
}

// SetApi sets the API reachability indicator.
func (sm *StatusManager) SetApi(ok bool) {
	sm.Update(func(s *Status) { s.Api = ok })
}

// SetTime sets the clock-synchronised indicator.
func (sm *StatusManager) SetTime(ok bool) bool {
	return sm.Update(func(s *Status) { s.Time = ok })
}

// SetSymbolLocked sets the carousel lock indicator.
func (sm *StatusManager) SetSymbolLocked(locked bool) bool {
	return sm.Update(func(s *Status) { s.SymbolLocked = locked })
}

// SetRequestInProgress sets the request activity indicator.
func (sm *StatusManager) SetRequestInProgress(inProgress bool) {
	sm.Update(func(s *Status) { s.RequestInProgress = inProgress })
}

// SetFatalError puts the display into its persistent error state.
func (sm *StatusManager) SetFatalError(message string) {
	if sm.Update(func(s *Status) { s.FatalError = message }) && message != "" {
		sm.log.Error().Str("error", message).Msg("Entered fatal error state")
	}
}

// EventData converts the flags into their event payload.
func (s Status) EventData() *events.StatusChangedData {
	return &events.StatusChangedData{
		Wifi:              s.Wifi,
		SD:                s.SD,
		Api:               s.Api,
		Time:              s.Time,
		SymbolLocked:      s.SymbolLocked,
		RequestInProgress: s.RequestInProgress,
		FatalError:        s.FatalError,
	}
}
