// Package reward wraps the asynchronous yes/no source that gates boosts.
package reward

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var (
	ErrNotReady = errors.New("reward not ready, try again in a moment")
	ErrDeclined = errors.New("reward was not granted, try again")
	ErrTimeout  = errors.New("reward timed out, try again")
)

// Trigger is an opaque reward source, such as an ad network.
type Trigger interface {
	IsReady() bool
	RequestReward(ctx context.Context) (bool, error)
}

// Claim asks t for a reward and waits at most timeout. A nil error means the
// reward was granted; every failure is transient and may be retried.
func Claim(ctx context.Context, t Trigger, timeout time.Duration) error {
	if !t.IsReady() {
		return ErrNotReady
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		ok, err := t.RequestReward(ctx)
		done <- result{ok, err}
	}()

	select {
	case <-ctx.Done():
		return ErrTimeout
	case r := <-done:
		switch {
		case r.err != nil:
			if errors.Is(r.err, context.DeadlineExceeded) {
				return ErrTimeout
			}
			return fmt.Errorf("request reward: %w", r.err)
		case !r.ok:
			return ErrDeclined
		}
		return nil
	}
}

// MockTrigger simulates an ad network with fixed odds and latency.
type MockTrigger struct {
	ReadyChance   float64
	SuccessChance float64
	Delay         time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockTrigger returns a MockTrigger seeded with seed.
func NewMockTrigger(readyChance, successChance float64, delay time.Duration, seed int64) *MockTrigger {
	return &MockTrigger{
		ReadyChance:   readyChance,
		SuccessChance: successChance,
		Delay:         delay,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

func (m *MockTrigger) roll(p float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Float64() < p
}

func (m *MockTrigger) IsReady() bool {
	return m.roll(m.ReadyChance)
}

func (m *MockTrigger) RequestReward(ctx context.Context) (bool, error) {
	timer := time.NewTimer(m.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
	}
	return m.roll(m.SuccessChance), nil
}
