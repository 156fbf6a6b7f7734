package model

// ResearchBonuses are the multipliers granted by completed research.
type ResearchBonuses struct {
	TrainingSpeed float64 `json:"trainingSpeed"`
	ComputeCost   float64 `json:"computeCost"`
}

// ResearchState tracks the research tree. ResearchProgress is only
// meaningful while CurrentResearch is set; otherwise it is 0.
type ResearchState struct {
	Researched       []string        `json:"researched"`
	CurrentResearch  *string         `json:"currentResearch"`
	ResearchProgress float64         `json:"researchProgress"`
	Bonuses          ResearchBonuses `json:"bonuses"`
}

// IsResearched reports whether id has been completed.
func (r ResearchState) IsResearched(id string) bool {
	for _, v := range r.Researched {
		if v == id {
			return true
		}
	}
	return false
}

// Active returns the current research id, or "" when idle.
func (r ResearchState) Active() string {
	if r.CurrentResearch == nil {
		return ""
	}
	return *r.CurrentResearch
}
