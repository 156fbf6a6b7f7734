package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AITycoon/internal/config"
	"AITycoon/internal/engine"
	"AITycoon/internal/model"
	"AITycoon/internal/notifier"
	"AITycoon/internal/offline"
	"AITycoon/internal/recorder"
	"AITycoon/internal/reward"
	"AITycoon/internal/save"
	"AITycoon/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] AI Tycoon starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	offlineCfg := offline.Config{
		Ceiling:          cfg.Offline.Ceiling,
		MaxSeconds:       cfg.Offline.MaxSeconds,
		MoneyPerCompute:  cfg.Offline.MoneyPerCompute,
		ComputePerSecond: cfg.Offline.ComputePerSecond,
		DataPerSecond:    cfg.Offline.DataPerSecond,
	}

	// Load save and catch up on offline time
	store := save.NewStore(cfg.Save.Path)
	var state *model.GameState
	welcome := ""
	loaded, savedAt, err := store.Load()
	switch {
	case err == nil:
		var res offline.Result
		state, res = offline.Reconcile(loaded, savedAt, time.Now(), offlineCfg)
		welcome = notifier.FormatOffline(res)
		log.Printf("[INFO] save loaded from %s (offline applied=%v, seconds=%d)", store.Path(), res.Applied, res.Seconds)
	case errors.Is(err, save.ErrNoSave):
		log.Println("[INFO] no save found, starting a new game")
	case errors.Is(err, save.ErrInvalidSave):
		log.Printf("[ERROR] load save: %v", err)
		backup, qerr := store.Quarantine()
		if qerr != nil {
			log.Fatalf("[FATAL] %v", qerr)
		}
		log.Printf("[WARN] corrupt save moved to %s, starting a new game", backup)
	default:
		log.Fatalf("[FATAL] load save: %v", err)
	}

	eng := engine.New(state, engine.WithOptions(engine.Options{ChargeResearch: cfg.Research.ChargeOnStart}))

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trigger := reward.NewMockTrigger(cfg.Reward.ReadyChance, cfg.Reward.SuccessChance, cfg.Reward.Delay, time.Now().UnixNano())

	// Init scheduler. The hub needs the command handler and the scheduler
	// needs the hub, so the handler is bound through a closure.
	var sched *scheduler.Scheduler
	hub := notifier.NewHub(func(cmd string) string { return sched.HandleCommand(cmd) },
		cfg.Server.CommandsPerSec, cfg.Server.CommandBurst)
	sched = scheduler.NewScheduler(ctx, eng, store, rec, hub, trigger)
	sched.RewardTimeout = cfg.Reward.Timeout
	sched.AutosaveEvery = cfg.Save.AutosaveTicks
	sched.BroadcastStatus = cfg.Server.BroadcastStatus
	sched.Offline = offlineCfg
	if err := sched.RegisterAll(cfg.Game.TickCron, cfg.Game.SweepCron, cfg.Game.StatsCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}

	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv := &http.Server{Addr: cfg.Server.ListenAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] console server: %v", err)
		}
	}()
	log.Printf("[INFO] console listening on %s/ws", cfg.Server.ListenAddr)

	sched.Start()
	if welcome != "" {
		log.Printf("[INFO] %s", welcome)
		hub.SetGreeting(welcome)
	}

	log.Println("[INFO] AI Tycoon is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	sched.Stop()

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] console shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] AI Tycoon stopped")
}
