package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const namespace = "DRYTODO"

// Config keeps runtime settings, read from DRYTODO_* environment variables.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" default:"drytodo.db"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// GraceHours is how long past a task's window end the sweep waits
	// before classifying it overdue. Zero means immediate.
	GraceHours int `envconfig:"GRACE_HOURS" default:"8"`

	// SweepInterval is the cadence of the background overdue sweep.
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`

	// PreAlarmLead is how far ahead of a task's start the pre-alarm fires.
	PreAlarmLead time.Duration `envconfig:"PRE_ALARM_LEAD" default:"10m"`

	// ForceOnManualSweep makes user-triggered sweeps ignore the grace
	// threshold ("optimize now" means now).
	ForceOnManualSweep bool `envconfig:"FORCE_ON_MANUAL_SWEEP" default:"true"`

	DefaultCategory string `envconfig:"DEFAULT_CATEGORY" default:"Personal"`

	// Telegram settings select the telegram notification sink when both
	// are set; otherwise reminders go to the log.
	TelegramToken  string `envconfig:"TELEGRAM_TOKEN"`
	TelegramChatID int64  `envconfig:"TELEGRAM_CHAT_ID"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(namespace, &cfg); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}
	if cfg.GraceHours < 0 {
		return cfg, fmt.Errorf("DRYTODO_GRACE_HOURS must not be negative")
	}
	if cfg.SweepInterval <= 0 {
		return cfg, fmt.Errorf("DRYTODO_SWEEP_INTERVAL must be positive")
	}
	return cfg, nil
}

// Grace returns the overdue grace threshold as a duration.
func (c Config) Grace() time.Duration {
	return time.Duration(c.GraceHours) * time.Hour
}
