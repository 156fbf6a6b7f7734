// Package offline projects resource gains for the time the game was not running.
package offline

import (
	"math"
	"time"

	"AITycoon/internal/model"
)

// Config holds the offline projection policy. Rates are flat per second and
// do not depend on upgrades or boosts.
type Config struct {
	// Ceiling is the largest gap that still earns offline progress. Longer
	// gaps earn nothing at all.
	Ceiling time.Duration
	// MaxSeconds caps how many seconds are credited.
	MaxSeconds int64

	MoneyPerCompute  float64 // money per second per unit of compute power
	ComputePerSecond float64
	DataPerSecond    float64
}

// DefaultConfig returns the standard one-hour policy.
func DefaultConfig() Config {
	return Config{
		Ceiling:          time.Hour,
		MaxSeconds:       3600,
		MoneyPerCompute:  0.1,
		ComputePerSecond: 1,
		DataPerSecond:    0.5,
	}
}

// Result describes what Reconcile credited.
type Result struct {
	Applied bool
	Elapsed time.Duration
	Seconds int64
	Gained  model.Resources
}

// Reconcile returns a copy of state with offline gains for the gap between
// savedAt and now applied. state itself is never modified.
func Reconcile(state *model.GameState, savedAt, now time.Time, cfg Config) (*model.GameState, Result) {
	out := state.Clone()
	elapsed := now.Sub(savedAt)
	res := Result{Elapsed: elapsed}

	if elapsed < 0 || elapsed > cfg.Ceiling {
		return out, res
	}

	seconds := int64(math.Floor(elapsed.Seconds()))
	if cfg.MaxSeconds >= 0 && seconds > cfg.MaxSeconds {
		seconds = cfg.MaxSeconds
	}
	res.Applied = true
	res.Seconds = seconds
	if seconds == 0 {
		return out, res
	}

	r := &out.Game.Resources
	before := *r
	s := float64(seconds)
	// Money rate comes from compute power as loaded, before compute grows.
	r.Money += before.ComputePower * cfg.MoneyPerCompute * s
	r.ComputePower += cfg.ComputePerSecond * s
	r.DataQuality += cfg.DataPerSecond * s
	r.Clamp()

	res.Gained = model.Resources{
		Money:        r.Money - before.Money,
		ComputePower: r.ComputePower - before.ComputePower,
		DataQuality:  r.DataQuality - before.DataQuality,
	}
	return out, res
}
