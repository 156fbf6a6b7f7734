package model

// ModelStatus is the lifecycle of a trained model.
type ModelStatus string

const (
	StatusTraining ModelStatus = "training"
	StatusComplete ModelStatus = "complete"
)

// ModelInstance is one model owned by the player.
type ModelInstance struct {
	ID             string      `json:"id"`
	Type           string      `json:"type"`
	Name           string      `json:"name"`
	Progress       float64     `json:"progress"`
	TrainingTime   float64     `json:"trainingTime"`
	RevenuePerTick float64     `json:"revenuePerTick"`
	Status         ModelStatus `json:"status"`
}

// UpgradeKind names a repeatable upgrade.
type UpgradeKind string

const (
	UpgradeGPUs        UpgradeKind = "gpus"
	UpgradeDatasets    UpgradeKind = "datasets"
	UpgradeResearchers UpgradeKind = "researchers"
)

// Upgrades tracks owned upgrade levels.
type Upgrades struct {
	GPUs        int `json:"gpus"`
	Datasets    int `json:"datasets"`
	Researchers int `json:"researchers"`
}

// Level returns the level for kind and whether kind is known.
func (u Upgrades) Level(kind UpgradeKind) (int, bool) {
	switch kind {
	case UpgradeGPUs:
		return u.GPUs, true
	case UpgradeDatasets:
		return u.Datasets, true
	case UpgradeResearchers:
		return u.Researchers, true
	}
	return 0, false
}

// Add raises the level of kind by n. Unknown kinds are ignored.
func (u *Upgrades) Add(kind UpgradeKind, n int) {
	switch kind {
	case UpgradeGPUs:
		u.GPUs += n
	case UpgradeDatasets:
		u.Datasets += n
	case UpgradeResearchers:
		u.Researchers += n
	}
}

// BoostKind names a boostable game rate.
type BoostKind string

const (
	BoostRevenue           BoostKind = "revenueMultiplier"
	BoostComputeEfficiency BoostKind = "computeEfficiency"
	BoostTrainingSpeed     BoostKind = "trainingSpeed"
)

// ActiveBoosts holds the live multipliers and their expiry (epoch milliseconds).
// A multiplier is 1 whenever its kind has no entry in ExpiryTimes.
type ActiveBoosts struct {
	RevenueMultiplier float64             `json:"revenueMultiplier"`
	ComputeEfficiency float64             `json:"computeEfficiency"`
	TrainingSpeed     float64             `json:"trainingSpeed"`
	ExpiryTimes       map[BoostKind]int64 `json:"expiryTimes"`
}

// Multiplier returns the current multiplier for kind.
func (b ActiveBoosts) Multiplier(kind BoostKind) float64 {
	switch kind {
	case BoostRevenue:
		return b.RevenueMultiplier
	case BoostComputeEfficiency:
		return b.ComputeEfficiency
	case BoostTrainingSpeed:
		return b.TrainingSpeed
	}
	return 1
}

// Set overwrites the multiplier for kind. Returns false for unknown kinds.
func (b *ActiveBoosts) Set(kind BoostKind, v float64) bool {
	switch kind {
	case BoostRevenue:
		b.RevenueMultiplier = v
	case BoostComputeEfficiency:
		b.ComputeEfficiency = v
	case BoostTrainingSpeed:
		b.TrainingSpeed = v
	default:
		return false
	}
	return true
}

// ConditionKind tags the predicate an achievement is evaluated with.
type ConditionKind string

const (
	CondTotalModels     ConditionKind = "total_models"
	CondTotalEarnings   ConditionKind = "total_earnings"
	CondCompletedModels ConditionKind = "completed_models"
	CondUpgradeLevel    ConditionKind = "upgrade_level"
)

// Condition is the data form of an achievement predicate.
type Condition struct {
	Kind      ConditionKind `json:"kind"`
	Threshold float64       `json:"threshold"`
	Upgrade   UpgradeKind   `json:"upgrade,omitempty"`
}

// Achievement is a one-shot milestone.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Reward      float64   `json:"reward"`
	Condition   Condition `json:"condition"`
	Achieved    bool      `json:"achieved"`
}

// ModelRecord is a history entry for a started model.
type ModelRecord struct {
	Timestamp int64  `json:"timestamp"`
	Type      string `json:"type"`
}

// UpgradeRecord is a history entry for a purchased upgrade.
type UpgradeRecord struct {
	Timestamp int64       `json:"timestamp"`
	Type      UpgradeKind `json:"type"`
	Cost      float64     `json:"cost"`
}

// History holds the bounded earnings window and purchase logs.
type History struct {
	Earnings []float64       `json:"earnings"`
	Models   []ModelRecord   `json:"models"`
	Upgrades []UpgradeRecord `json:"upgrades"`
}

// EarningsWindow is the number of per-tick earnings entries kept.
const EarningsWindow = 60

// Stats are monotonically accumulating counters.
type Stats struct {
	TotalEarnings      float64 `json:"totalEarnings"`
	TotalModels        int     `json:"totalModels"`
	ModelsCompleted    int     `json:"modelsCompleted"`
	UpgradesPurchased  int     `json:"upgradesPurchased"`
	TimeElapsed        int64   `json:"timeElapsed"`
	HighestEarningRate float64 `json:"highestEarningRate"`
	TotalSpent         float64 `json:"totalSpent"`
	History            History `json:"history"`
}

// PushEarnings appends a per-tick delta and evicts the oldest beyond the window.
func (s *Stats) PushEarnings(delta float64) {
	s.History.Earnings = append(s.History.Earnings, delta)
	if n := len(s.History.Earnings); n > EarningsWindow {
		s.History.Earnings = s.History.Earnings[n-EarningsWindow:]
	}
}
