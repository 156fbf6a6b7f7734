package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"AITycoon/internal/calculator"
	"AITycoon/internal/catalog"
	"AITycoon/internal/engine"
	"AITycoon/internal/model"
	"AITycoon/internal/offline"
	"AITycoon/internal/recorder"
)

// PricedModel is a trainable model type with its current price.
type PricedModel struct {
	Model catalog.ModelType
	Cost  model.Cost
}

func money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 0)
}

func amount(v float64) string {
	return humanize.CommafWithDigits(v, 1)
}

func clock(d time.Duration) string {
	s := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// FormatStatus renders resources, upgrades, running work and boosts.
func FormatStatus(s *model.GameState, boosts map[model.BoostKind]time.Duration) string {
	var b strings.Builder
	g := &s.Game

	b.WriteString(fmt.Sprintf("AI Tycoon | played %s\n\n", clock(time.Duration(g.Stats.TimeElapsed)*time.Second)))
	b.WriteString(fmt.Sprintf("Money: %s\n", money(g.Resources.Money)))
	b.WriteString(fmt.Sprintf("Compute: %s | Data: %s | Reputation: %s\n",
		amount(g.Resources.ComputePower), amount(g.Resources.DataQuality), humanize.Comma(int64(g.Resources.Reputation))))
	b.WriteString(fmt.Sprintf("GPUs %d | Datasets %d | Researchers %d\n",
		g.Upgrades.GPUs, g.Upgrades.Datasets, g.Upgrades.Researchers))

	if h := g.Stats.History.Earnings; len(h) > 0 {
		avg, _ := calculator.SMA(h, len(h))
		high, low, _ := calculator.WindowRange(h, len(h))
		b.WriteString(fmt.Sprintf("Income: %s/s avg over %ds (low %s, high %s)\n", money(avg), len(h), money(low), money(high)))
	}

	training := 0
	for _, m := range g.Models {
		if m.Status == model.StatusTraining {
			training++
		}
	}
	b.WriteString(fmt.Sprintf("Models: %d complete, %d training\n", g.CompletedModels(), training))

	if id := s.Research.Active(); id != "" {
		b.WriteString(fmt.Sprintf("Research: %s %.0f%%\n", id, s.Research.ResearchProgress))
	}

	kinds := make([]string, 0, len(boosts))
	for k, left := range boosts {
		if left > 0 {
			kinds = append(kinds, string(k))
		}
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		kind := model.BoostKind(k)
		b.WriteString(fmt.Sprintf("Boost %s x%g, %s remaining\n", k, g.ActiveBoosts.Multiplier(kind), clock(boosts[kind])))
	}
	return b.String()
}

// FormatModels renders owned models and the models available for training.
func FormatModels(s *model.GameState, available []PricedModel) string {
	var b strings.Builder

	b.WriteString("Your models\n")
	if len(s.Game.Models) == 0 {
		b.WriteString("  none yet\n")
	}
	for _, m := range s.Game.Models {
		if m.Status == model.StatusComplete {
			b.WriteString(fmt.Sprintf("  %s: %s/tick\n", m.Name, money(m.RevenuePerTick)))
		} else {
			b.WriteString(fmt.Sprintf("  %s: training %.0f%%\n", m.Name, m.Progress))
		}
	}

	b.WriteString("\nAvailable\n")
	for _, p := range available {
		b.WriteString(fmt.Sprintf("  %s (%s): %s, %s compute, %s data, %s, %s/tick\n",
			p.Model.Name, p.Model.Key, money(p.Cost.Money), amount(p.Cost.Compute), amount(p.Cost.Data),
			clock(time.Duration(p.Model.BaseTime)*time.Second), money(p.Model.RevenuePerTick)))
	}
	return b.String()
}

// FormatResearch renders the research state and what can be started next.
func FormatResearch(s *model.GameState, available []catalog.Research) string {
	var b strings.Builder
	if id := s.Research.Active(); id != "" {
		b.WriteString(fmt.Sprintf("Researching %s: %.0f%%\n", id, s.Research.ResearchProgress))
	}
	b.WriteString(fmt.Sprintf("Completed: %d of %d\n", len(s.Research.Researched), len(catalog.ResearchTree)))
	for _, r := range available {
		b.WriteString(fmt.Sprintf("  %s (%s): %s, %s\n", r.Name, r.ID, money(r.Cost), clock(time.Duration(r.ResearchTime)*time.Second)))
	}
	return b.String()
}

// FormatShop renders upgrade prices and GPU hardware.
func FormatShop(prices map[model.UpgradeKind]float64) string {
	var b strings.Builder
	b.WriteString("Upgrades\n")
	for _, kind := range []model.UpgradeKind{model.UpgradeGPUs, model.UpgradeDatasets, model.UpgradeResearchers} {
		u := catalog.Upgrades[kind]
		b.WriteString(fmt.Sprintf("  %s (%s): %s, %s\n", u.Name, kind, money(prices[kind]), u.Benefit))
	}

	gpus := make([]catalog.GPU, 0, len(catalog.GPUs))
	for _, g := range catalog.GPUs {
		gpus = append(gpus, g)
	}
	sort.Slice(gpus, func(i, j int) bool { return gpus[i].Price < gpus[j].Price })
	b.WriteString("\nHardware\n")
	for _, g := range gpus {
		b.WriteString(fmt.Sprintf("  %s (%s): %s, %s cores, %gW\n", g.Name, g.ID, money(g.Price), humanize.Comma(int64(g.Cores)), g.PowerUsage))
	}
	return b.String()
}

// FormatBoosts lists the boosts that can be earned.
func FormatBoosts() string {
	kinds := make([]string, 0, len(catalog.Boosts))
	for k := range catalog.Boosts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	var b strings.Builder
	b.WriteString("Boosts (watch an ad with /boost <type>)\n")
	for _, k := range kinds {
		bo := catalog.Boosts[model.BoostKind(k)]
		b.WriteString(fmt.Sprintf("  %s (%s): %s for %s\n", bo.Name, k, bo.Description, clock(time.Duration(bo.Duration)*time.Second)))
	}
	return b.String()
}

// FormatHistory renders recorded events, newest first.
func FormatHistory(events []recorder.EventRecord) string {
	if len(events) == 0 {
		return "No history recorded yet."
	}
	var b strings.Builder
	b.WriteString("Recent events\n")
	for _, e := range events {
		at := time.Unix(e.Timestamp, 0)
		b.WriteString(fmt.Sprintf("  %s  %s %s", humanize.Time(at), e.Kind, e.Subject))
		if e.Amount != 0 {
			b.WriteString(" " + amount(e.Amount))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatEvent renders a single engine event for broadcast. Events that are
// not worth interrupting the player for return "".
func FormatEvent(e engine.Event) string {
	switch e.Kind {
	case engine.EventModelCompleted:
		return fmt.Sprintf("Model %s finished training, earning %s/tick", e.Subject, money(e.Amount))
	case engine.EventResearchCompleted:
		return fmt.Sprintf("Research %s complete", e.Subject)
	case engine.EventAchievement:
		if a, ok := catalog.AchievementByID(e.Subject); ok {
			return fmt.Sprintf("Achievement unlocked: %s (+%s, +%d reputation)", a.Title, money(e.Amount), catalog.AchievementReputation)
		}
		return fmt.Sprintf("Achievement unlocked: %s (+%s)", e.Subject, money(e.Amount))
	case engine.EventBoostApplied:
		return fmt.Sprintf("Boost %s x%g active", e.Subject, e.Amount)
	case engine.EventBoostExpired:
		return fmt.Sprintf("Boost %s expired", e.Subject)
	}
	return ""
}

// FormatOffline summarizes offline catch-up.
func FormatOffline(r offline.Result) string {
	if !r.Applied {
		return fmt.Sprintf("Welcome back! You were away %s, too long for offline progress.", r.Elapsed.Round(time.Minute))
	}
	return fmt.Sprintf("Welcome back! Offline for %s: +%s, +%s compute, +%s data",
		clock(time.Duration(r.Seconds)*time.Second), money(r.Gained.Money), amount(r.Gained.ComputePower), amount(r.Gained.DataQuality))
}

// FormatHelp lists the console commands.
func FormatHelp() string {
	return strings.Join([]string{
		"Commands:",
		"  /status              resources and running work",
		"  /models              owned and trainable models",
		"  /train <type>        start training a model",
		"  /shop                upgrade and hardware prices",
		"  /upgrade <kind>      buy gpus, datasets or researchers",
		"  /gpu <id>            buy GPU hardware",
		"  /research [id]       list or start research",
		"  /cancel              cancel current research",
		"  /boost <type>        watch an ad for a boost",
		"  /history             recent events",
		"  /save                save now",
		"  /export <path>       export save (.json or .json.zst)",
		"  /import <path>       import an exported save",
	}, "\n")
}
