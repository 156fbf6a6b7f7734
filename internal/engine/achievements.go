package engine

import (
	"sort"

	"AITycoon/internal/catalog"
	"AITycoon/internal/model"
)

// conditions maps each condition kind to its predicate.
var conditions = map[model.ConditionKind]func(s *model.GameState, c model.Condition) bool{
	model.CondTotalModels: func(s *model.GameState, c model.Condition) bool {
		return float64(s.Game.Stats.TotalModels) >= c.Threshold
	},
	model.CondTotalEarnings: func(s *model.GameState, c model.Condition) bool {
		return s.Game.Stats.TotalEarnings >= c.Threshold
	},
	model.CondCompletedModels: func(s *model.GameState, c model.Condition) bool {
		return float64(s.Game.CompletedModels()) >= c.Threshold
	},
	model.CondUpgradeLevel: func(s *model.GameState, c model.Condition) bool {
		level, ok := s.Game.Upgrades.Level(c.Upgrade)
		return ok && float64(level) >= c.Threshold
	},
}

// evaluateAchievements checks every pending achievement against the state as
// it stands before any reward of this pass is paid out.
func (e *Engine) evaluateAchievements() {
	g := &e.state.Game

	ids := make([]string, 0, len(g.Achievements))
	for id := range g.Achievements {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var unlocked []*model.Achievement
	for _, id := range ids {
		a := g.Achievements[id]
		if a.Achieved {
			continue
		}
		check, ok := conditions[a.Condition.Kind]
		if ok && check(e.state, a.Condition) {
			unlocked = append(unlocked, a)
		}
	}

	for _, a := range unlocked {
		a.Achieved = true
		g.Resources.Money += a.Reward
		g.Resources.Reputation += catalog.AchievementReputation
		e.emit(EventAchievement, a.ID, a.Reward)
	}
}
