// Package refresh decides how often quotes may be requested and which symbol
// is refreshed on each tick.
package refresh

import (
	"time"

	"github.com/aristath/stockticker/internal/domain"
)

const secondsPerDay = 24 * 60 * 60

// Planner turns a daily request budget into the delay between requests.
type Planner struct {
	policy FetchPolicy
}

// NewPlanner creates a planner for the given fetch policy.
func NewPlanner(policy FetchPolicy) *Planner {
	return &Planner{policy: policy}
}

// ActiveSeconds is the number of seconds per day during which live requests
// are spent: market hours plus each extended session the policy enables.
func (p *Planner) ActiveSeconds(d SessionDurations) uint64 {
	active := uint64(d.Market)
	if p.policy.FetchPreMarket {
		active += uint64(d.PreMarket)
	}
	if p.policy.FetchAfterMarket {
		active += uint64(d.AfterMarket)
	}
	return active
}

// IntervalFor computes the delay between requests.
//
// Live spreads the live budget over the active session seconds. Sandbox
// spreads the sandbox budget over the whole day. Demo uses its fixed
// interval. A budget that is not positive, or one large enough to round the
// interval down to zero, is rejected with ErrInvalidBudget.
func (p *Planner) IntervalFor(budget RateBudget, d SessionDurations) (time.Duration, error) {
	switch budget.Mode {
	case ModeLive:
		return spread(p.ActiveSeconds(d), budget.LiveRequestsPerDay, "api.liveRequestsPerDay")
	case ModeSandbox:
		return spread(secondsPerDay, budget.SandboxRequestsPerDay, "api.sandboxRequestsPerDay")
	case ModeDemo:
		if budget.DemoInterval <= 0 {
			return 0, domain.NewConfigError("api.demoIntervalMs", domain.ErrInvalidBudget)
		}
		return budget.DemoInterval, nil
	default:
		return 0, domain.NewConfigError("api.mode", domain.ErrUnknownApiMode)
	}
}

func spread(activeSeconds uint64, requestsPerDay int, field string) (time.Duration, error) {
	if requestsPerDay <= 0 {
		return 0, domain.NewConfigError(field, domain.ErrInvalidBudget)
	}
	ms := activeSeconds * 1000 / uint64(requestsPerDay)
	if ms == 0 {
		return 0, domain.NewConfigError(field, domain.ErrInvalidBudget)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
