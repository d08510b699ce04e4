package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"drytodo/internal/clock"
	"drytodo/internal/config"
	"drytodo/internal/engine"
	"drytodo/internal/notify"
	"drytodo/internal/reminder"
	"drytodo/internal/repository"
	"drytodo/internal/service"
	"drytodo/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	st := store.New(db)

	var notifier notify.Notifier = notify.NewLog()
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		notifier = tg
	}

	clk := clock.System{}
	triggers := reminder.NewTimerScheduler(notifier)
	defer triggers.Stop()
	reminders := reminder.NewAdapter(triggers, clk, cfg.PreAlarmLead)

	eng := engine.New(st, reminders, clk, engine.Config{
		Grace:         cfg.Grace(),
		ForceOnManual: cfg.ForceOnManualSweep,
	})
	// Sweep once on start, then on the configured interval, the same
	// way the app sweeps on every foreground start.
	runSweep := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		res, err := eng.Sweep(jobCtx, false)
		if err != nil {
			log.WithError(err).Error("overdue sweep")
			return
		}
		log.WithFields(log.Fields{
			"scanned":     res.Scanned,
			"rolled_over": res.RolledOver,
		}).Info("overdue sweep done")
	}
	runSweep()

	if err := eng.RestoreReminders(ctx); err != nil {
		log.WithError(err).Error("restore reminders")
	}

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.SweepInterval, runSweep); err != nil {
		log.Fatalf("schedule sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Info("drytodo started")
	<-ctx.Done()
	log.Info("shutdown complete")
}
