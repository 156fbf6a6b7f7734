package offline

import (
	"testing"
	"time"

	"AITycoon/internal/model"
)

func testState() *model.GameState {
	return &model.GameState{
		Game: model.Game{
			Resources: model.Resources{Money: 1000, ComputePower: 100, DataQuality: 50, Reputation: 7},
			Models:    []model.ModelInstance{{ID: "a", Progress: 40, TrainingTime: 30, Status: model.StatusTraining}},
		},
	}
}

func TestReconcile_WithinCeiling(t *testing.T) {
	saved := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	in := testState()

	out, res := Reconcile(in, saved, saved.Add(10*time.Minute+900*time.Millisecond), DefaultConfig())
	if !res.Applied || res.Seconds != 600 {
		t.Fatalf("expected 600 applied seconds, got %+v", res)
	}
	r := out.Game.Resources
	if r.Money != 1000+100*0.1*600 {
		t.Errorf("money = %v", r.Money)
	}
	if r.ComputePower != 700 || r.DataQuality != 350 {
		t.Errorf("compute/data = %v/%v", r.ComputePower, r.DataQuality)
	}
	if r.Reputation != 7 {
		t.Errorf("reputation must not change, got %v", r.Reputation)
	}
	if res.Gained.Money != 6000 || res.Gained.ComputePower != 600 || res.Gained.DataQuality != 300 {
		t.Errorf("unexpected gains %+v", res.Gained)
	}
	if out.Game.Models[0].Progress != 40 {
		t.Error("training progress is not projected offline")
	}
}

func TestReconcile_BeyondCeilingIsUnchanged(t *testing.T) {
	saved := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	in := testState()

	out, res := Reconcile(in, saved, saved.Add(time.Hour+time.Second), DefaultConfig())
	if res.Applied || res.Seconds != 0 {
		t.Fatalf("expected nothing applied, got %+v", res)
	}
	if out.Game.Resources != in.Game.Resources {
		t.Errorf("resources changed: %+v", out.Game.Resources)
	}
}

func TestReconcile_ExactlyAtCeiling(t *testing.T) {
	saved := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	_, res := Reconcile(testState(), saved, saved.Add(time.Hour), DefaultConfig())
	if !res.Applied || res.Seconds != 3600 {
		t.Fatalf("expected full hour, got %+v", res)
	}
}

func TestReconcile_MaxSecondsCaps(t *testing.T) {
	saved := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	cfg.MaxSeconds = 120

	out, res := Reconcile(testState(), saved, saved.Add(30*time.Minute), cfg)
	if res.Seconds != 120 {
		t.Fatalf("expected 120 seconds, got %d", res.Seconds)
	}
	if out.Game.Resources.ComputePower != 220 {
		t.Errorf("compute = %v", out.Game.Resources.ComputePower)
	}
}

func TestReconcile_ClockSkew(t *testing.T) {
	saved := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	in := testState()
	out, res := Reconcile(in, saved, saved.Add(-time.Minute), DefaultConfig())
	if res.Applied {
		t.Fatal("a save from the future must not earn anything")
	}
	if out.Game.Resources != in.Game.Resources {
		t.Error("resources changed")
	}
}

func TestReconcile_ClampsAndDoesNotMutateInput(t *testing.T) {
	saved := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	in := testState()
	in.Game.Resources.ComputePower = model.ResourceCap - 10

	out, res := Reconcile(in, saved, saved.Add(time.Minute), DefaultConfig())
	if out.Game.Resources.ComputePower != model.ResourceCap {
		t.Errorf("compute not clamped: %v", out.Game.Resources.ComputePower)
	}
	if res.Gained.ComputePower != 10 {
		t.Errorf("gain should reflect the clamp, got %v", res.Gained.ComputePower)
	}
	if in.Game.Resources.ComputePower != model.ResourceCap-10 || in.Game.Resources.Money != 1000 {
		t.Errorf("input mutated: %+v", in.Game.Resources)
	}
}
