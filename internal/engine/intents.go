package engine

import (
	"AITycoon/internal/calculator"
	"AITycoon/internal/catalog"
	"AITycoon/internal/model"
)

// TrainingCost returns the price of the next model of type key. ok is false
// when the type is unknown or still locked behind research.
func (e *Engine) TrainingCost(key string) (cost model.Cost, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	mt, ok := e.unlockedModel(key)
	if !ok {
		return model.Cost{}, false
	}
	return e.trainingCost(mt), true
}

func (e *Engine) trainingCost(mt catalog.ModelType) model.Cost {
	owned := e.state.Game.CountByType(mt.Key)
	return model.Cost{
		Money:   calculator.ScaledCost(mt.Cost, owned, catalog.DefaultScaling),
		Compute: calculator.ScaledComputeCost(mt.ComputeCost, owned, catalog.DefaultScaling, e.state.Research.Bonuses.ComputeCost),
		Data:    calculator.ScaledCost(mt.DataCost, owned, catalog.DefaultScaling),
	}
}

func (e *Engine) unlockedModel(key string) (catalog.ModelType, bool) {
	mt, research, ok := catalog.ModelByKey(key)
	if !ok {
		return catalog.ModelType{}, false
	}
	if research != nil && !e.state.Research.IsResearched(research.ID) {
		return catalog.ModelType{}, false
	}
	return mt, true
}

// StartTraining debits the scaled cost of model type key and starts a new
// training run. It returns false without touching state when the type is
// unavailable or any of the three costs cannot be covered.
func (e *Engine) StartTraining(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	mt, ok := e.unlockedModel(key)
	if !ok {
		return false
	}
	cost := e.trainingCost(mt)
	g := &e.state.Game
	if !g.Resources.CanAfford(cost) {
		return false
	}

	g.Resources.Money -= cost.Money
	g.Resources.ComputePower -= cost.Compute
	g.Resources.DataQuality -= cost.Data

	g.Models = append(g.Models, model.ModelInstance{
		ID:             e.newID(),
		Type:           mt.Key,
		Name:           mt.Name,
		Progress:       0,
		TrainingTime:   mt.BaseTime,
		RevenuePerTick: mt.RevenuePerTick,
		Status:         model.StatusTraining,
	})
	g.Stats.TotalModels++
	g.Stats.TotalSpent += cost.Money
	g.Stats.History.Models = append(g.Stats.History.Models, model.ModelRecord{
		Timestamp: e.now().UnixMilli(),
		Type:      mt.Key,
	})
	e.emit(EventModelStarted, mt.Key, cost.Money)
	return true
}

// UpgradeCost returns the current price of the next level of kind.
func (e *Engine) UpgradeCost(kind model.UpgradeKind) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.upgradeCost(kind)
}

func (e *Engine) upgradeCost(kind model.UpgradeKind) (float64, bool) {
	up, ok := catalog.Upgrades[kind]
	if !ok {
		return 0, false
	}
	level, _ := e.state.Game.Upgrades.Level(kind)
	return calculator.ScaledCost(up.BasePrice, level, up.PriceMultiplier), true
}

// PurchaseUpgrade buys one level of kind at cost. The caller computes cost
// with UpgradeCost immediately before calling; a price that no longer matches
// the current level is rejected.
func (e *Engine) PurchaseUpgrade(kind model.UpgradeKind, cost float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	price, ok := e.upgradeCost(kind)
	if !ok || cost != price {
		return false
	}
	g := &e.state.Game
	if g.Resources.Money < cost {
		return false
	}

	g.Resources.Money -= cost
	g.Upgrades.Add(kind, 1)
	g.Stats.UpgradesPurchased++
	g.Stats.TotalSpent += cost
	g.Stats.History.Upgrades = append(g.Stats.History.Upgrades, model.UpgradeRecord{
		Timestamp: e.now().UnixMilli(),
		Type:      kind,
		Cost:      cost,
	})
	e.emit(EventUpgradePurchased, string(kind), cost)
	return true
}

// PurchaseGPU buys fixed-price hardware, adding one GPU cluster level.
func (e *Engine) PurchaseGPU(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	gpu, ok := catalog.GPUs[id]
	if !ok {
		return false
	}
	g := &e.state.Game
	if g.Resources.Money < gpu.Price {
		return false
	}

	g.Resources.Money -= gpu.Price
	g.Upgrades.Add(model.UpgradeGPUs, 1)
	g.Stats.UpgradesPurchased++
	g.Stats.TotalSpent += gpu.Price
	g.Stats.History.Upgrades = append(g.Stats.History.Upgrades, model.UpgradeRecord{
		Timestamp: e.now().UnixMilli(),
		Type:      model.UpgradeGPUs,
		Cost:      gpu.Price,
	})
	e.emit(EventGPUPurchased, id, gpu.Price)
	return true
}

// StartResearch begins research id. It is a no-op when research is already
// running, the id is unknown or already researched, or its requirements are
// not met.
func (e *Engine) StartResearch(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := &e.state.Research
	if r.CurrentResearch != nil {
		return false
	}
	item, ok := catalog.ResearchTree[id]
	if !ok || r.IsResearched(id) || !e.requirementsMet(item) {
		return false
	}
	if e.opts.ChargeResearch {
		g := &e.state.Game
		if g.Resources.Money < item.Cost {
			return false
		}
		g.Resources.Money -= item.Cost
		g.Stats.TotalSpent += item.Cost
	}

	current := id
	r.CurrentResearch = &current
	r.ResearchProgress = 0
	e.emit(EventResearchStarted, id, item.Cost)
	return true
}

// CancelResearch drops the current research without refund. It reports
// whether anything was running.
func (e *Engine) CancelResearch() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := &e.state.Research
	active := r.Active()
	r.CurrentResearch = nil
	r.ResearchProgress = 0
	if active != "" {
		e.emit(EventResearchCancelled, active, 0)
	}
	return active != ""
}
