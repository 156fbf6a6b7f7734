package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"AITycoon/internal/engine"
	"AITycoon/internal/model"
	"AITycoon/internal/notifier"
	"AITycoon/internal/offline"
	"AITycoon/internal/recorder"
	"AITycoon/internal/reward"
	"AITycoon/internal/save"

	"github.com/robfig/cron/v3"
)

// Sender delivers text to connected players.
type Sender interface {
	Send(text string) error
}

// Scheduler drives the engine. Cron jobs and player commands are queued as
// jobs and executed one at a time by a single goroutine.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *engine.Engine
	Store    *save.Store
	Recorder recorder.Recorder
	Notifier Sender
	Reward   reward.Trigger
	Ctx      context.Context

	RewardTimeout   time.Duration
	AutosaveEvery   int64 // simulated seconds between autosaves
	BroadcastStatus bool
	Offline         offline.Config

	now      func() time.Time
	jobs     chan func()
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, eng *engine.Engine, store *save.Store, rec recorder.Recorder, n Sender, trig reward.Trigger) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Engine:        eng,
		Store:         store,
		Recorder:      rec,
		Notifier:      n,
		Reward:        trig,
		Ctx:           ctx,
		RewardTimeout: 10 * time.Second,
		AutosaveEvery: 5,
		Offline:       offline.DefaultConfig(),
		now:           time.Now,
		jobs:          make(chan func(), 64),
		quit:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// RegisterAll registers the tick, boost sweep and stats snapshot jobs.
func (s *Scheduler) RegisterAll(tickCron, sweepCron, statsCron string) error {
	if _, err := s.Cron.AddFunc(tickCron, func() { s.enqueue(s.tick) }); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	if _, err := s.Cron.AddFunc(sweepCron, func() { s.enqueue(s.Engine.SweepBoosts) }); err != nil {
		return fmt.Errorf("register boost sweep: %w", err)
	}
	if statsCron != "" {
		if _, err := s.Cron.AddFunc(statsCron, func() { s.enqueue(s.recordStats) }); err != nil {
			return fmt.Errorf("register stats task: %w", err)
		}
	}
	return nil
}

// Start starts the job loop and the cron scheduler.
func (s *Scheduler) Start() {
	go s.loop()
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler, saves the game and ends the job loop.
// Calls after the first are no-ops.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		<-s.Cron.Stop().Done()
		s.Do(func() { s.save(s.Engine.Snapshot()) })
		close(s.quit)
		<-s.done
		log.Println("[INFO] scheduler stopped")
	})
}

func (s *Scheduler) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case job := <-s.jobs:
			job()
			s.flushEvents()
		}
	}
}

// enqueue queues job without waiting. Cron jobs are dropped while the loop
// is backed up; the next firing catches up.
func (s *Scheduler) enqueue(job func()) {
	select {
	case s.jobs <- job:
	default:
		log.Println("[WARN] job queue full, skipping")
	}
}

// Do runs job on the loop and waits for it to finish.
func (s *Scheduler) Do(job func()) {
	finished := make(chan struct{})
	select {
	case s.jobs <- func() { defer close(finished); job() }:
	case <-s.quit:
		return
	}
	select {
	case <-finished:
	case <-s.quit:
	}
}

func (s *Scheduler) tick() {
	s.Engine.Tick()
	snap := s.Engine.Snapshot()
	if s.AutosaveEvery > 0 && snap.Game.Stats.TimeElapsed%s.AutosaveEvery == 0 {
		s.save(snap)
	}
	if s.BroadcastStatus {
		s.trySend(notifier.FormatStatus(snap, s.boostsRemaining()))
	}
}

func (s *Scheduler) boostsRemaining() map[model.BoostKind]time.Duration {
	out := map[model.BoostKind]time.Duration{}
	for _, kind := range []model.BoostKind{model.BoostRevenue, model.BoostComputeEfficiency, model.BoostTrainingSpeed} {
		if left := s.Engine.BoostRemaining(kind); left > 0 {
			out[kind] = left
		}
	}
	return out
}

func (s *Scheduler) save(snap *model.GameState) {
	if s.Store == nil {
		return
	}
	if err := s.Store.Save(snap, s.now()); err != nil {
		log.Printf("[ERROR] save game: %v", err)
	}
}

func (s *Scheduler) recordStats() {
	snap := s.Engine.Snapshot()
	g := snap.Game
	if err := s.Recorder.RecordStats(&recorder.StatsSnapshot{
		Timestamp:          s.now().Unix(),
		TimeElapsed:        g.Stats.TimeElapsed,
		Money:              g.Resources.Money,
		ComputePower:       g.Resources.ComputePower,
		DataQuality:        g.Resources.DataQuality,
		Reputation:         g.Resources.Reputation,
		TotalEarnings:      g.Stats.TotalEarnings,
		TotalSpent:         g.Stats.TotalSpent,
		HighestEarningRate: g.Stats.HighestEarningRate,
		TotalModels:        g.Stats.TotalModels,
		ModelsCompleted:    g.Stats.ModelsCompleted,
		UpgradesPurchased:  g.Stats.UpgradesPurchased,
	}); err != nil {
		log.Printf("[ERROR] record stats: %v", err)
	}
}

// flushEvents records and announces everything the engine emitted.
func (s *Scheduler) flushEvents() {
	for _, ev := range s.Engine.DrainEvents() {
		if err := s.Recorder.RecordEvent(&recorder.EventRecord{
			Timestamp: ev.At.Unix(),
			Tick:      ev.Tick,
			Kind:      string(ev.Kind),
			Subject:   ev.Subject,
			Amount:    ev.Amount,
		}); err != nil {
			log.Printf("[ERROR] record event: %v", err)
		}
		if msg := notifier.FormatEvent(ev); msg != "" {
			log.Printf("[INFO] %s", msg)
			s.trySend(msg)
		}
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Send(text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
