// Package catalog holds the static game definitions: model types, upgrades,
// research tree, boosts, GPU hardware and achievements.
package catalog

import (
	"sort"

	"AITycoon/internal/model"
)

// ModelType defines a trainable model.
type ModelType struct {
	Key            string
	Name           string
	Cost           float64
	ComputeCost    float64
	DataCost       float64
	BaseTime       float64 // seconds
	RevenuePerTick float64
}

// Upgrade defines a repeatable upgrade.
type Upgrade struct {
	Kind            model.UpgradeKind
	Name            string
	Description     string
	BasePrice       float64
	PriceMultiplier float64
	Benefit         string
}

// UnlockKind says what completing a research item grants.
type UnlockKind string

const (
	UnlockModel UnlockKind = "model"
	UnlockBonus UnlockKind = "bonus"
)

// BonusType names the research multiplier a bonus overwrites.
type BonusType string

const (
	BonusTrainingSpeed BonusType = "trainingSpeed"
	BonusComputeCost   BonusType = "computeCost"
)

// Effect is a research bonus.
type Effect struct {
	Type  BonusType
	Value float64
}

// Unlock is the payload of a completed research item. Exactly one of Model
// and Effect is set, depending on Kind.
type Unlock struct {
	Kind   UnlockKind
	Model  *ModelType
	Effect *Effect
}

// Research defines one node of the research tree.
type Research struct {
	ID           string
	Name         string
	Description  string
	Cost         float64
	ResearchTime float64 // seconds
	Requirements []string
	Unlocks      Unlock
}

// Boost defines a rewarded temporary multiplier.
type Boost struct {
	Kind        model.BoostKind
	Name        string
	Description string
	Multiplier  float64
	Duration    float64 // seconds
}

// GPU is fixed-price hardware that adds one GPU cluster.
type GPU struct {
	ID           string
	Name         string
	ComputePower float64
	PowerUsage   float64
	Price        float64
	Cores        int
}

// DefaultScaling is the per-owned growth factor for model costs.
const DefaultScaling = 1.15

// BaseModels are trainable without research.
var BaseModels = map[string]ModelType{
	"chatbot": {
		Key: "chatbot", Name: "Chatbot",
		Cost: 1000, ComputeCost: 50, DataCost: 20, BaseTime: 30, RevenuePerTick: 100,
	},
	"imageGen": {
		Key: "imageGen", Name: "Image Generator",
		Cost: 2500, ComputeCost: 100, DataCost: 40, BaseTime: 60, RevenuePerTick: 250,
	},
	"codeAssistant": {
		Key: "codeAssistant", Name: "Code Assistant",
		Cost: 5000, ComputeCost: 200, DataCost: 80, BaseTime: 90, RevenuePerTick: 500,
	},
}

// Upgrades is keyed by upgrade kind.
var Upgrades = map[model.UpgradeKind]Upgrade{
	model.UpgradeGPUs: {
		Kind: model.UpgradeGPUs, Name: "GPU Cluster",
		Description: "Increases compute power generation",
		BasePrice:   5000, PriceMultiplier: 1.5,
		Benefit: "+10 compute power per second",
	},
	model.UpgradeDatasets: {
		Kind: model.UpgradeDatasets, Name: "Dataset Collection",
		Description: "Improves data quality generation",
		BasePrice:   3000, PriceMultiplier: 1.4,
		Benefit: "+5 data quality per second",
	},
	model.UpgradeResearchers: {
		Kind: model.UpgradeResearchers, Name: "AI Researcher",
		Description: "Accelerates model training",
		BasePrice:   10000, PriceMultiplier: 1.6,
		Benefit: "-10% training time",
	},
}

// ResearchTree is keyed by research id.
var ResearchTree = map[string]Research{
	"enhancedChatbot": {
		ID: "enhancedChatbot", Name: "Enhanced Chatbot",
		Description: "Improved chatbot with better context understanding",
		Cost:        25000, ResearchTime: 60,
		Unlocks: Unlock{Kind: UnlockModel, Model: &ModelType{
			Key: "enhancedChatbot", Name: "Enhanced Chatbot",
			Cost: 2000, ComputeCost: 75, DataCost: 30, BaseTime: 45, RevenuePerTick: 200,
		}},
	},
	"multimodalAI": {
		ID: "multimodalAI", Name: "Multimodal AI",
		Description:  "AI that can process both text and images",
		Cost:         50000, ResearchTime: 120,
		Requirements: []string{"enhancedChatbot"},
		Unlocks: Unlock{Kind: UnlockModel, Model: &ModelType{
			Key: "multimodalAssistant", Name: "Multimodal Assistant",
			Cost: 5000, ComputeCost: 150, DataCost: 60, BaseTime: 90, RevenuePerTick: 500,
		}},
	},
	"agentNetwork": {
		ID: "agentNetwork", Name: "AI Agent Network",
		Description:  "Network of specialized AI agents working together",
		Cost:         100000, ResearchTime: 180,
		Requirements: []string{"multimodalAI"},
		Unlocks: Unlock{Kind: UnlockModel, Model: &ModelType{
			Key: "agentNetwork", Name: "AI Agent Network",
			Cost: 10000, ComputeCost: 300, DataCost: 120, BaseTime: 120, RevenuePerTick: 1000,
		}},
	},
	"parallelTraining": {
		ID: "parallelTraining", Name: "Parallel Training",
		Description:  "Train multiple models simultaneously faster",
		Cost:         75000, ResearchTime: 90,
		Requirements: []string{"enhancedChatbot"},
		Unlocks:      Unlock{Kind: UnlockBonus, Effect: &Effect{Type: BonusTrainingSpeed, Value: 1.5}},
	},
	"efficientCompute": {
		ID: "efficientCompute", Name: "Efficient Computing",
		Description:  "Reduce compute costs for all models",
		Cost:         60000, ResearchTime: 75,
		Requirements: []string{"parallelTraining"},
		Unlocks:      Unlock{Kind: UnlockBonus, Effect: &Effect{Type: BonusComputeCost, Value: 0.8}},
	},
}

// Boosts is keyed by boost kind.
var Boosts = map[model.BoostKind]Boost{
	model.BoostRevenue: {
		Kind: model.BoostRevenue, Name: "2x Revenue",
		Description: "Double your revenue from all models",
		Multiplier:  2, Duration: 300,
	},
	model.BoostComputeEfficiency: {
		Kind: model.BoostComputeEfficiency, Name: "Compute Efficiency",
		Description: "50% reduced compute costs",
		Multiplier:  0.5, Duration: 300,
	},
	model.BoostTrainingSpeed: {
		Kind: model.BoostTrainingSpeed, Name: "Fast Training",
		Description: "2x training speed for all models",
		Multiplier:  2, Duration: 300,
	},
}

// GPUs is keyed by hardware id.
var GPUs = map[string]GPU{
	"rtx3060": {ID: "rtx3060", Name: "RTX 3060", ComputePower: 10, PowerUsage: 170, Price: 2000, Cores: 3584},
	"rtx3070": {ID: "rtx3070", Name: "RTX 3070", ComputePower: 20, PowerUsage: 220, Price: 5000, Cores: 5888},
	"rtx3080": {ID: "rtx3080", Name: "RTX 3080", ComputePower: 40, PowerUsage: 320, Price: 10000, Cores: 8704},
	"rtx4090": {ID: "rtx4090", Name: "RTX 4090", ComputePower: 100, PowerUsage: 450, Price: 25000, Cores: 16384},
}

// Achievements lists every milestone in evaluation order.
var Achievements = []model.Achievement{
	{
		ID: "firstModel", Title: "Hello AI World!",
		Description: "Train your first AI model", Reward: 5000,
		Condition: model.Condition{Kind: model.CondTotalModels, Threshold: 1},
	},
	{
		ID: "moneyMaker", Title: "Money Maker",
		Description: "Earn $100,000 in total", Reward: 10000,
		Condition: model.Condition{Kind: model.CondTotalEarnings, Threshold: 100000},
	},
	{
		ID: "aiFactory", Title: "AI Factory",
		Description: "Have 5 models running simultaneously", Reward: 15000,
		Condition: model.Condition{Kind: model.CondCompletedModels, Threshold: 5},
	},
	{
		ID: "researcher", Title: "Lead Researcher",
		Description: "Hire 3 researchers", Reward: 20000,
		Condition: model.Condition{Kind: model.CondUpgradeLevel, Threshold: 3, Upgrade: model.UpgradeResearchers},
	},
	{
		ID: "datacenter", Title: "Data Center Owner",
		Description: "Own 10 GPU clusters", Reward: 25000,
		Condition: model.Condition{Kind: model.CondUpgradeLevel, Threshold: 10, Upgrade: model.UpgradeGPUs},
	},
}

// AchievementReputation is granted alongside every achievement reward.
const AchievementReputation = 10

// ModelByKey resolves a base model or a model unlocked by any research item.
// It does not check whether that research has been completed.
func ModelByKey(key string) (ModelType, *Research, bool) {
	if m, ok := BaseModels[key]; ok {
		return m, nil, true
	}
	for _, r := range ResearchTree {
		if r.Unlocks.Kind == UnlockModel && r.Unlocks.Model != nil && r.Unlocks.Model.Key == key {
			rr := r
			return *r.Unlocks.Model, &rr, true
		}
	}
	return ModelType{}, nil, false
}

// ResearchIDs returns the research ids in stable order.
func ResearchIDs() []string {
	ids := make([]string, 0, len(ResearchTree))
	for id := range ResearchTree {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AchievementByID returns the achievement definition for id.
func AchievementByID(id string) (model.Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return model.Achievement{}, false
}
