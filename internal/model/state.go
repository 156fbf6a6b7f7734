package model

// Game is the economy half of the persisted state.
type Game struct {
	Resources    Resources               `json:"resources"`
	Models       []ModelInstance         `json:"models"`
	Upgrades     Upgrades                `json:"upgrades"`
	Stats        Stats                   `json:"stats"`
	Achievements map[string]*Achievement `json:"achievements"`
	ActiveBoosts ActiveBoosts            `json:"activeBoosts"`
}

// GameState is the full progression-engine state.
type GameState struct {
	Game     Game          `json:"game"`
	Research ResearchState `json:"research"`
}

// Clone returns a deep copy of s.
func (s *GameState) Clone() *GameState {
	c := *s

	if s.Game.Models != nil {
		c.Game.Models = cloneSlice(s.Game.Models)
	}
	h := s.Game.Stats.History
	if h.Earnings != nil {
		c.Game.Stats.History.Earnings = cloneSlice(h.Earnings)
	}
	if h.Models != nil {
		c.Game.Stats.History.Models = cloneSlice(h.Models)
	}
	if h.Upgrades != nil {
		c.Game.Stats.History.Upgrades = cloneSlice(h.Upgrades)
	}
	if s.Game.Achievements != nil {
		c.Game.Achievements = make(map[string]*Achievement, len(s.Game.Achievements))
		for k, a := range s.Game.Achievements {
			cp := *a
			c.Game.Achievements[k] = &cp
		}
	}
	if s.Game.ActiveBoosts.ExpiryTimes != nil {
		c.Game.ActiveBoosts.ExpiryTimes = make(map[BoostKind]int64, len(s.Game.ActiveBoosts.ExpiryTimes))
		for k, v := range s.Game.ActiveBoosts.ExpiryTimes {
			c.Game.ActiveBoosts.ExpiryTimes[k] = v
		}
	}

	if s.Research.Researched != nil {
		c.Research.Researched = cloneSlice(s.Research.Researched)
	}
	if s.Research.CurrentResearch != nil {
		id := *s.Research.CurrentResearch
		c.Research.CurrentResearch = &id
	}
	return &c
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// CountByType returns how many models of type t are owned.
func (g *Game) CountByType(t string) int {
	n := 0
	for _, m := range g.Models {
		if m.Type == t {
			n++
		}
	}
	return n
}

// CompletedModels returns how many models have finished training.
func (g *Game) CompletedModels() int {
	n := 0
	for _, m := range g.Models {
		if m.Status == StatusComplete {
			n++
		}
	}
	return n
}
