package engine

import (
	"AITycoon/internal/catalog"
	"AITycoon/internal/model"
)

const (
	researcherSpeedBonus = 0.1
	computePerGPU        = 10
	dataPerDataset       = 5
)

// Tick advances the game by exactly one simulated second, regardless of how
// much wall-clock time passed since the previous call.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := &e.state.Game
	g.Stats.TimeElapsed++

	e.advanceResearch()

	speed := (1 + float64(g.Upgrades.Researchers)*researcherSpeedBonus) *
		e.state.Research.Bonuses.TrainingSpeed *
		g.ActiveBoosts.TrainingSpeed
	e.advanceTraining(speed)

	income := 0.0
	for _, m := range g.Models {
		if m.Status == model.StatusComplete {
			income += m.RevenuePerTick
		}
	}
	income *= g.ActiveBoosts.RevenueMultiplier

	g.Resources.ComputePower += float64(g.Upgrades.GPUs) * computePerGPU * g.ActiveBoosts.ComputeEfficiency
	g.Resources.DataQuality += float64(g.Upgrades.Datasets) * dataPerDataset
	g.Resources.Clamp()

	g.Resources.Money += income
	e.recordEarnings(income)

	e.evaluateAchievements()
	e.sweepBoosts()
}

func (e *Engine) advanceResearch() {
	r := &e.state.Research
	id := r.Active()
	if id == "" {
		return
	}
	item, ok := catalog.ResearchTree[id]
	if !ok {
		// Unknown ids can only come from a hand-edited save.
		r.CurrentResearch = nil
		r.ResearchProgress = 0
		return
	}
	r.ResearchProgress += 100 / item.ResearchTime
	if r.ResearchProgress < 100-progressEpsilon {
		return
	}

	if !r.IsResearched(id) {
		r.Researched = append(r.Researched, id)
	}
	r.CurrentResearch = nil
	r.ResearchProgress = 0
	if item.Unlocks.Kind == catalog.UnlockBonus && item.Unlocks.Effect != nil {
		switch item.Unlocks.Effect.Type {
		case catalog.BonusTrainingSpeed:
			r.Bonuses.TrainingSpeed = item.Unlocks.Effect.Value
		case catalog.BonusComputeCost:
			r.Bonuses.ComputeCost = item.Unlocks.Effect.Value
		}
	}
	e.emit(EventResearchCompleted, id, 0)
}

func (e *Engine) advanceTraining(speed float64) {
	g := &e.state.Game
	for i := range g.Models {
		m := &g.Models[i]
		if m.Status != model.StatusTraining {
			continue
		}
		next := 100.0
		if m.TrainingTime > 0 {
			next = m.Progress + 100/m.TrainingTime*speed
		}
		if next >= 100-progressEpsilon {
			m.Progress = 100
			m.Status = model.StatusComplete
			g.Stats.ModelsCompleted++
			e.emit(EventModelCompleted, m.Type, m.RevenuePerTick)
			continue
		}
		m.Progress = next
	}
}

func (e *Engine) recordEarnings(delta float64) {
	s := &e.state.Game.Stats
	if delta > 0 {
		s.TotalEarnings += delta
		if delta > s.HighestEarningRate {
			s.HighestEarningRate = delta
		}
	}
	// Zero-income ticks are kept in the window too, unlike totals.
	s.PushEarnings(delta)
}
