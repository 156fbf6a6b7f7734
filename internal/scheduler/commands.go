package scheduler

import (
	"fmt"
	"log"
	"strings"
	"time"

	"AITycoon/internal/catalog"
	"AITycoon/internal/model"
	"AITycoon/internal/notifier"
	"AITycoon/internal/offline"
	"AITycoon/internal/reward"
	"AITycoon/internal/save"
)

const historyLimit = 10

// HandleCommand processes a player command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "/status":
		var reply string
		s.Do(func() { reply = notifier.FormatStatus(s.Engine.Snapshot(), s.boostsRemaining()) })
		return reply
	case "/models":
		var reply string
		s.Do(func() {
			var priced []notifier.PricedModel
			for _, m := range s.Engine.AvailableModels() {
				cost, _ := s.Engine.TrainingCost(m.Key)
				priced = append(priced, notifier.PricedModel{Model: m, Cost: cost})
			}
			reply = notifier.FormatModels(s.Engine.Snapshot(), priced)
		})
		return reply
	case "/train":
		return s.train(arg)
	case "/shop":
		var reply string
		s.Do(func() {
			prices := map[model.UpgradeKind]float64{}
			for kind := range catalog.Upgrades {
				prices[kind], _ = s.Engine.UpgradeCost(kind)
			}
			reply = notifier.FormatShop(prices)
		})
		return reply
	case "/upgrade":
		return s.upgrade(model.UpgradeKind(arg))
	case "/gpu":
		return s.buyGPU(arg)
	case "/research":
		return s.research(arg)
	case "/cancel":
		var ok bool
		s.Do(func() { ok = s.Engine.CancelResearch() })
		if !ok {
			return "No research in progress."
		}
		return "Research cancelled. Progress is lost."
	case "/boost":
		return s.boost(model.BoostKind(arg))
	case "/history":
		events, err := s.Recorder.RecentEvents(historyLimit)
		if err != nil {
			log.Printf("[ERROR] load history: %v", err)
			return "History is unavailable right now."
		}
		return notifier.FormatHistory(events)
	case "/save":
		s.Do(func() { s.save(s.Engine.Snapshot()) })
		return "Game saved."
	case "/export":
		return s.export(arg)
	case "/import":
		return s.importSave(arg)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) train(key string) string {
	if key == "" {
		return "Usage: /train <type>. See /models."
	}
	var (
		ok   bool
		cost model.Cost
	)
	s.Do(func() {
		cost, ok = s.Engine.TrainingCost(key)
		if ok {
			ok = s.Engine.StartTraining(key)
		}
	})
	if !ok {
		return fmt.Sprintf("Cannot train %s: unknown, locked, or not enough resources.", key)
	}
	return fmt.Sprintf("Training %s started for $%.0f, %.0f compute, %.0f data.", key, cost.Money, cost.Compute, cost.Data)
}

func (s *Scheduler) upgrade(kind model.UpgradeKind) string {
	if _, known := catalog.Upgrades[kind]; !known {
		return "Usage: /upgrade <gpus|datasets|researchers>"
	}
	var (
		ok   bool
		cost float64
	)
	s.Do(func() {
		cost, _ = s.Engine.UpgradeCost(kind)
		ok = s.Engine.PurchaseUpgrade(kind, cost)
	})
	if !ok {
		return fmt.Sprintf("Not enough money for %s: costs $%.0f.", kind, cost)
	}
	return fmt.Sprintf("Bought %s for $%.0f.", kind, cost)
}

func (s *Scheduler) buyGPU(id string) string {
	gpu, known := catalog.GPUs[id]
	if !known {
		return "Usage: /gpu <id>. See /shop."
	}
	var ok bool
	s.Do(func() { ok = s.Engine.PurchaseGPU(id) })
	if !ok {
		return fmt.Sprintf("Not enough money for %s: costs $%.0f.", gpu.Name, gpu.Price)
	}
	return fmt.Sprintf("Installed %s.", gpu.Name)
}

func (s *Scheduler) research(id string) string {
	if id == "" {
		var reply string
		s.Do(func() { reply = notifier.FormatResearch(s.Engine.Snapshot(), s.Engine.AvailableResearch()) })
		return reply
	}
	var ok bool
	s.Do(func() { ok = s.Engine.StartResearch(id) })
	if !ok {
		return fmt.Sprintf("Cannot research %s: unknown, done, requirements missing, or research already running.", id)
	}
	return fmt.Sprintf("Research %s started.", id)
}

// boost waits for the reward trigger outside the job loop, so ticks keep
// running while the ad plays.
func (s *Scheduler) boost(kind model.BoostKind) string {
	def, known := catalog.Boosts[kind]
	if !known {
		return notifier.FormatBoosts()
	}
	if s.Reward == nil {
		return "Boosts are unavailable."
	}
	if err := reward.Claim(s.Ctx, s.Reward, s.RewardTimeout); err != nil {
		log.Printf("[WARN] boost %s not granted: %v", kind, err)
		return fmt.Sprintf("Boost not granted: %v", err)
	}
	var ok bool
	s.Do(func() { ok = s.Engine.ApplyBoost(kind, def.Multiplier, secondsToDuration(def.Duration)) })
	if !ok {
		return "Boost could not be applied."
	}
	return fmt.Sprintf("%s activated!", def.Name)
}

func (s *Scheduler) export(path string) string {
	if path == "" {
		return "Usage: /export <path>"
	}
	var snap *model.GameState
	s.Do(func() { snap = s.Engine.Snapshot() })
	if snap == nil {
		return "Export failed: scheduler stopped."
	}
	if err := save.Export(path, snap, s.now()); err != nil {
		log.Printf("[ERROR] export save: %v", err)
		return fmt.Sprintf("Export failed: %v", err)
	}
	return fmt.Sprintf("Exported to %s.", path)
}

// importSave loads an exported file, applies offline progress the same way
// startup does, and replaces the running game.
func (s *Scheduler) importSave(path string) string {
	if path == "" {
		return "Usage: /import <path>"
	}
	state, savedAt, err := save.Import(path)
	if err != nil {
		log.Printf("[ERROR] import save: %v", err)
		return fmt.Sprintf("Import failed: %v", err)
	}
	state, res := offline.Reconcile(state, savedAt, s.now(), s.Offline)
	s.Do(func() {
		s.Engine.Replace(state)
		s.save(s.Engine.Snapshot())
	})
	log.Printf("[INFO] imported save from %s (offline applied=%v, seconds=%d)", path, res.Applied, res.Seconds)
	return "Save imported.\n" + notifier.FormatOffline(res)
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
