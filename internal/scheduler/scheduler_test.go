package scheduler

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"AITycoon/internal/engine"
	"AITycoon/internal/recorder"
	"AITycoon/internal/save"
)

type captureSender struct {
	mu   sync.Mutex
	msgs []string
}

func (c *captureSender) Send(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, text)
	return nil
}

func (c *captureSender) contains(sub string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.msgs {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}

type memRecorder struct {
	mu     sync.Mutex
	events []recorder.EventRecord
	stats  []recorder.StatsSnapshot
}

func (m *memRecorder) RecordEvent(evt *recorder.EventRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *evt)
	return nil
}

func (m *memRecorder) RecordStats(snap *recorder.StatsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = append(m.stats, *snap)
	return nil
}

func (m *memRecorder) RecentEvents(limit int) ([]recorder.EventRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []recorder.EventRecord
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

func (m *memRecorder) Close() error { return nil }

type fixedTrigger struct {
	ready bool
	ok    bool
}

func (f fixedTrigger) IsReady() bool { return f.ready }
func (f fixedTrigger) RequestReward(ctx context.Context) (bool, error) {
	return f.ok, nil
}

func newTestScheduler(t *testing.T) (*Scheduler, *captureSender, *memRecorder) {
	t.Helper()
	store := save.NewStore(filepath.Join(t.TempDir(), "save.json"))
	sender := &captureSender{}
	rec := &memRecorder{}
	s := NewScheduler(context.Background(), engine.New(nil), store, rec, sender, fixedTrigger{ready: true, ok: true})
	s.Start()
	return s, sender, rec
}

func TestHandleCommand_TrainAndTick(t *testing.T) {
	s, sender, rec := newTestScheduler(t)
	defer s.Stop()

	if got := s.HandleCommand("/train chatbot"); !strings.Contains(got, "Training chatbot started") {
		t.Fatalf("unexpected reply %q", got)
	}
	if got := s.HandleCommand("/train chatbot"); !strings.Contains(got, "Cannot train") {
		t.Fatalf("second chatbot should be unaffordable, got %q", got)
	}

	for i := 0; i < 5; i++ {
		s.Do(s.tick)
	}
	if !sender.contains("Hello AI World!") {
		t.Error("achievement should be announced")
	}

	state, _, err := s.Store.Load()
	if err != nil {
		t.Fatalf("autosave missing: %v", err)
	}
	if state.Game.Stats.TimeElapsed != 5 {
		t.Errorf("expected autosave at tick 5, got %d", state.Game.Stats.TimeElapsed)
	}

	kinds := map[string]bool{}
	for _, e := range rec.events {
		kinds[e.Kind] = true
	}
	if !kinds[string(engine.EventModelStarted)] || !kinds[string(engine.EventAchievement)] {
		t.Errorf("events not recorded: %v", kinds)
	}
	if got := s.HandleCommand("/history"); !strings.Contains(got, "ACHIEVEMENT firstModel") {
		t.Errorf("history missing achievement:\n%s", got)
	}
}

func TestHandleCommand_Purchases(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	defer s.Stop()

	if got := s.HandleCommand("/upgrade gpus"); !strings.Contains(got, "Not enough money") {
		t.Errorf("unexpected reply %q", got)
	}
	if got := s.HandleCommand("/upgrade rockets"); !strings.Contains(got, "Usage") {
		t.Errorf("unexpected reply %q", got)
	}
	if got := s.HandleCommand("/gpu nope"); !strings.Contains(got, "Usage") {
		t.Errorf("unexpected reply %q", got)
	}
	if got := s.HandleCommand("/shop"); !strings.Contains(got, "$7,500") {
		t.Errorf("shop should quote gpus at $7,500:\n%s", got)
	}
}

func TestHandleCommand_Research(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	defer s.Stop()

	if got := s.HandleCommand("/research"); !strings.Contains(got, "enhancedChatbot") {
		t.Errorf("research list missing enhancedChatbot:\n%s", got)
	}
	if got := s.HandleCommand("/research enhancedChatbot"); !strings.Contains(got, "started") {
		t.Fatalf("unexpected reply %q", got)
	}
	if got := s.HandleCommand("/research efficientCompute"); !strings.Contains(got, "Cannot research") {
		t.Errorf("second research should be refused, got %q", got)
	}
	if got := s.HandleCommand("/cancel"); !strings.Contains(got, "cancelled") {
		t.Errorf("unexpected reply %q", got)
	}
	if got := s.HandleCommand("/cancel"); !strings.Contains(got, "No research") {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestHandleCommand_Boost(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	defer s.Stop()

	if got := s.HandleCommand("/boost revenueMultiplier"); !strings.Contains(got, "activated") {
		t.Fatalf("unexpected reply %q", got)
	}
	if m := s.Engine.Snapshot().Game.ActiveBoosts.RevenueMultiplier; m != 2 {
		t.Errorf("revenue multiplier = %v", m)
	}

	s.Reward = fixedTrigger{ready: false}
	if got := s.HandleCommand("/boost trainingSpeed"); !strings.Contains(got, "not granted") {
		t.Errorf("unexpected reply %q", got)
	}
	if m := s.Engine.Snapshot().Game.ActiveBoosts.TrainingSpeed; m != 1 {
		t.Errorf("failed reward must not change state, multiplier = %v", m)
	}
	if got := s.HandleCommand("/boost"); !strings.Contains(got, "Fast Training") {
		t.Errorf("boost list expected, got %q", got)
	}
}

func TestHandleCommand_ExportImport(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	defer s.Stop()

	s.HandleCommand("/train chatbot")
	path := filepath.Join(t.TempDir(), "backup.json.zst")
	if got := s.HandleCommand("/export " + path); !strings.Contains(got, "Exported") {
		t.Fatalf("unexpected reply %q", got)
	}

	s.Do(func() { s.Engine.Replace(engine.NewState()) })
	if got := s.HandleCommand("/import " + path); !strings.Contains(got, "Save imported") {
		t.Fatalf("unexpected reply %q", got)
	}
	if n := len(s.Engine.Snapshot().Game.Models); n != 1 {
		t.Errorf("expected imported model, got %d", n)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if got := s.HandleCommand("/import " + bad); !strings.Contains(got, "Import failed") {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestRecordStats(t *testing.T) {
	s, _, rec := newTestScheduler(t)
	defer s.Stop()

	s.Do(s.tick)
	s.Do(s.recordStats)
	if len(rec.stats) != 1 || rec.stats[0].TimeElapsed != 1 || rec.stats[0].ComputePower != 110 {
		t.Fatalf("unexpected stats %+v", rec.stats)
	}
}

func TestStop_SavesGame(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	s.Do(s.tick)
	s.Do(s.tick)
	s.Stop()

	state, _, err := s.Store.Load()
	if err != nil {
		t.Fatalf("expected save on stop: %v", err)
	}
	if state.Game.Stats.TimeElapsed != 2 {
		t.Errorf("saved tick = %d", state.Game.Stats.TimeElapsed)
	}
}

func TestStop_Twice(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	s.Stop()
	s.Stop()

	if got := s.HandleCommand("/status"); got != "" {
		t.Errorf("commands after stop should not run, got %q", got)
	}
}

func TestRegisterAll_InvalidSpec(t *testing.T) {
	s := NewScheduler(context.Background(), engine.New(nil), nil, recorder.NewNoopRecorder(), nil, nil)
	if err := s.RegisterAll("not a spec", "@every 1s", ""); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
	if err := s.RegisterAll("@every 1s", "@every 1s", "@every 1m"); err != nil {
		t.Fatalf("valid specs rejected: %v", err)
	}
	if n := len(s.Cron.Entries()); n < 3 {
		t.Errorf("expected registered entries, got %d", n)
	}
}
