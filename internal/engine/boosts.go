package engine

import (
	"time"

	"AITycoon/internal/model"
)

// ApplyBoost grants kind at multiplier until now+duration. An existing grant
// of the same kind is replaced, never stacked.
func (e *Engine) ApplyBoost(kind model.BoostKind, multiplier float64, duration time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := &e.state.Game.ActiveBoosts
	if !b.Set(kind, multiplier) {
		return false
	}
	b.ExpiryTimes[kind] = e.now().Add(duration).UnixMilli()
	e.emit(EventBoostApplied, string(kind), multiplier)
	return true
}

// BoostRemaining returns how long kind stays active, or 0.
func (e *Engine) BoostRemaining(kind model.BoostKind) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	exp, ok := e.state.Game.ActiveBoosts.ExpiryTimes[kind]
	if !ok {
		return 0
	}
	left := time.UnixMilli(exp).Sub(e.now())
	if left < 0 {
		return 0
	}
	return left
}

// SweepBoosts resets every expired boost to 1. It is idempotent and also runs
// at the end of every Tick.
func (e *Engine) SweepBoosts() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sweepBoosts()
}

func (e *Engine) sweepBoosts() {
	b := &e.state.Game.ActiveBoosts
	now := e.now().UnixMilli()
	for kind, exp := range b.ExpiryTimes {
		if now >= exp {
			b.Set(kind, 1)
			delete(b.ExpiryTimes, kind)
			e.emit(EventBoostExpired, string(kind), 0)
		}
	}
}
