// Package engine owns the mutable game state and advances it one simulated
// second per Tick. Player intents are applied through Engine methods.
package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"AITycoon/internal/catalog"
	"AITycoon/internal/model"
)

// progressEpsilon absorbs float drift so that N steps of 100/N always finish.
const progressEpsilon = 1e-9

// EventKind classifies a notable state change.
type EventKind string

const (
	EventModelStarted      EventKind = "MODEL_STARTED"
	EventModelCompleted    EventKind = "MODEL_COMPLETED"
	EventUpgradePurchased  EventKind = "UPGRADE_PURCHASED"
	EventGPUPurchased      EventKind = "GPU_PURCHASED"
	EventResearchStarted   EventKind = "RESEARCH_STARTED"
	EventResearchCompleted EventKind = "RESEARCH_COMPLETED"
	EventResearchCancelled EventKind = "RESEARCH_CANCELLED"
	EventAchievement       EventKind = "ACHIEVEMENT"
	EventBoostApplied      EventKind = "BOOST_APPLIED"
	EventBoostExpired      EventKind = "BOOST_EXPIRED"
)

// Event is emitted for history recording and client notification.
type Event struct {
	Kind    EventKind
	Subject string
	Amount  float64
	Tick    int64
	At      time.Time
}

// Options tunes engine behaviour that is not part of the catalog.
type Options struct {
	// ChargeResearch debits the research cost on start. Off by default:
	// the cost is informational only.
	ChargeResearch bool
}

// Engine is the progression engine. All methods are safe for concurrent use,
// but callers are expected to serialize them through one job loop.
type Engine struct {
	mu     sync.Mutex
	state  *model.GameState
	opts   Options
	now    func() time.Time
	newID  func() string
	events []Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock used for boost expiry and history stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides model instance id generation.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// WithOptions sets behavioural options.
func WithOptions(o Options) Option {
	return func(e *Engine) { e.opts = o }
}

// New wraps state. A nil state starts a fresh game.
func New(state *model.GameState, opts ...Option) *Engine {
	if state == nil {
		state = NewState()
	}
	e := &Engine{
		state: state,
		now:   time.Now,
		newID: newModelID,
	}
	for _, o := range opts {
		o(e)
	}
	normalize(e.state)
	return e
}

// newModelID returns a time-ordered UUIDv7, so ids are creation-time-derived.
func newModelID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewState returns the starting state of a new game.
func NewState() *model.GameState {
	s := &model.GameState{
		Game: model.Game{
			Resources: model.Resources{Money: 1000, ComputePower: 100, DataQuality: 50},
			Models:    []model.ModelInstance{},
			Upgrades:  model.Upgrades{GPUs: 1, Datasets: 1, Researchers: 1},
			Stats: model.Stats{
				History: model.History{
					Earnings: []float64{},
					Models:   []model.ModelRecord{},
					Upgrades: []model.UpgradeRecord{},
				},
			},
			Achievements: map[string]*model.Achievement{},
			ActiveBoosts: model.ActiveBoosts{
				RevenueMultiplier: 1,
				ComputeEfficiency: 1,
				TrainingSpeed:     1,
				ExpiryTimes:       map[model.BoostKind]int64{},
			},
		},
		Research: model.ResearchState{
			Researched: []string{},
			Bonuses:    model.ResearchBonuses{TrainingSpeed: 1, ComputeCost: 1},
		},
	}
	normalize(s)
	return s
}

// normalize repairs loaded state. Achievement definitions always come from
// the catalog; only the achieved flag is taken from the save. A boost with no
// expiry entry has multiplier 1.
func normalize(s *model.GameState) {
	g := &s.Game
	achievements := make(map[string]*model.Achievement, len(catalog.Achievements))
	for _, def := range catalog.Achievements {
		a := def
		if saved, ok := g.Achievements[def.ID]; ok && saved != nil {
			a.Achieved = saved.Achieved
		}
		achievements[def.ID] = &a
	}
	g.Achievements = achievements

	if g.ActiveBoosts.ExpiryTimes == nil {
		g.ActiveBoosts.ExpiryTimes = map[model.BoostKind]int64{}
	}
	for kind := range g.ActiveBoosts.ExpiryTimes {
		if _, known := catalog.Boosts[kind]; !known {
			delete(g.ActiveBoosts.ExpiryTimes, kind)
		}
	}
	for kind := range catalog.Boosts {
		if _, active := g.ActiveBoosts.ExpiryTimes[kind]; !active {
			g.ActiveBoosts.Set(kind, 1)
		}
	}
	if s.Research.Bonuses.TrainingSpeed == 0 {
		s.Research.Bonuses.TrainingSpeed = 1
	}
	if s.Research.Bonuses.ComputeCost == 0 {
		s.Research.Bonuses.ComputeCost = 1
	}
	if s.Research.CurrentResearch == nil {
		s.Research.ResearchProgress = 0
	}
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() *model.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// DrainEvents returns and clears the events emitted since the last call.
func (e *Engine) DrainEvents() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.events
	e.events = nil
	return out
}

func (e *Engine) emit(kind EventKind, subject string, amount float64) {
	e.events = append(e.events, Event{
		Kind:    kind,
		Subject: subject,
		Amount:  amount,
		Tick:    e.state.Game.Stats.TimeElapsed,
		At:      e.now(),
	})
}

// AvailableModels lists base models plus models unlocked by completed research,
// cheapest first.
func (e *Engine) AvailableModels() []catalog.ModelType {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]catalog.ModelType, 0, len(catalog.BaseModels))
	for _, m := range catalog.BaseModels {
		out = append(out, m)
	}
	for _, id := range e.state.Research.Researched {
		r, ok := catalog.ResearchTree[id]
		if ok && r.Unlocks.Kind == catalog.UnlockModel && r.Unlocks.Model != nil {
			out = append(out, *r.Unlocks.Model)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// AvailableResearch lists research that is not done and whose requirements are met.
func (e *Engine) AvailableResearch() []catalog.Research {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []catalog.Research
	for _, id := range catalog.ResearchIDs() {
		r := catalog.ResearchTree[id]
		if e.state.Research.IsResearched(id) || !e.requirementsMet(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (e *Engine) requirementsMet(r catalog.Research) bool {
	for _, req := range r.Requirements {
		if !e.state.Research.IsResearched(req) {
			return false
		}
	}
	return true
}

// Replace swaps in a new state, as after importing a save. Pending events
// are discarded.
func (e *Engine) Replace(state *model.GameState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	normalize(state)
	e.state = state
	e.events = nil
}
