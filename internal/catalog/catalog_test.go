package catalog

import "testing"

func TestCatalog_PositiveTimes(t *testing.T) {
	for key, m := range BaseModels {
		if m.BaseTime <= 0 {
			t.Errorf("model %s: base time must be positive, got %v", key, m.BaseTime)
		}
		if m.Key != key {
			t.Errorf("model %s: key mismatch %q", key, m.Key)
		}
	}
	for id, r := range ResearchTree {
		if r.ResearchTime <= 0 {
			t.Errorf("research %s: research time must be positive", id)
		}
		if r.ID != id {
			t.Errorf("research %s: id mismatch %q", id, r.ID)
		}
		if r.Unlocks.Kind == UnlockModel && (r.Unlocks.Model == nil || r.Unlocks.Model.BaseTime <= 0) {
			t.Errorf("research %s: unlocked model must have a positive base time", id)
		}
		if r.Unlocks.Kind == UnlockBonus && r.Unlocks.Effect == nil {
			t.Errorf("research %s: bonus unlock without effect", id)
		}
	}
}

func TestCatalog_RequirementsExist(t *testing.T) {
	for id, r := range ResearchTree {
		for _, req := range r.Requirements {
			if _, ok := ResearchTree[req]; !ok {
				t.Errorf("research %s requires unknown %s", id, req)
			}
		}
	}
}

func TestModelByKey(t *testing.T) {
	if _, r, ok := ModelByKey("chatbot"); !ok || r != nil {
		t.Fatalf("chatbot should be a base model")
	}
	m, r, ok := ModelByKey("multimodalAssistant")
	if !ok {
		t.Fatal("expected multimodalAssistant to resolve")
	}
	if r == nil || r.ID != "multimodalAI" {
		t.Fatalf("expected unlocking research multimodalAI, got %+v", r)
	}
	if m.RevenuePerTick != 500 {
		t.Errorf("expected revenue 500, got %v", m.RevenuePerTick)
	}
	if _, _, ok := ModelByKey("nope"); ok {
		t.Error("unknown key should not resolve")
	}
}

func TestAchievementIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Achievements {
		if seen[a.ID] {
			t.Errorf("duplicate achievement %s", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestAchievementByID(t *testing.T) {
	a, ok := AchievementByID("datacenter")
	if !ok || a.Reward != 25000 {
		t.Fatalf("unexpected datacenter achievement %+v", a)
	}
	if _, ok := AchievementByID("missing"); ok {
		t.Error("unknown achievement should not resolve")
	}
}
