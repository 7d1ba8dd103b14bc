package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultDatabaseURL    = "tutorhub.db"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTTTL         = "24h"
	defaultSweepInterval  = "1m"
	defaultLookaheadFrom  = "12m"
	defaultLookaheadTo    = "2h"
	defaultReminderOn     = "true"
)

// Runtime is the process configuration, read from the environment with
// development defaults.
type Runtime struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	// Reminder sweep cadence and lookahead window. The window lower bound
	// keeps a just-confirmed booking from being reminded about immediately;
	// only bookings approaching their start are picked up.
	ReminderEnabled  bool
	SweepInterval    time.Duration
	LookaheadFrom    time.Duration
	LookaheadTo      time.Duration
}

func Load() (*Runtime, error) {
	cfg := &Runtime{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)

	cfg.JWTSecret = getEnv("JWT_SECRET", defaultJWTSecret)
	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	var err error
	if cfg.JWTTTL, err = getDuration("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getDuration("REMINDER_SWEEP_INTERVAL", defaultSweepInterval); err != nil {
		return nil, err
	}
	if cfg.LookaheadFrom, err = getDuration("REMINDER_LOOKAHEAD_FROM", defaultLookaheadFrom); err != nil {
		return nil, err
	}
	if cfg.LookaheadTo, err = getDuration("REMINDER_LOOKAHEAD_TO", defaultLookaheadTo); err != nil {
		return nil, err
	}
	if cfg.LookaheadFrom >= cfg.LookaheadTo {
		return nil, fmt.Errorf("REMINDER_LOOKAHEAD_FROM (%s) must be below REMINDER_LOOKAHEAD_TO (%s)",
			cfg.LookaheadFrom, cfg.LookaheadTo)
	}

	enabled, err := strconv.ParseBool(getEnv("REMINDER_ENABLED", defaultReminderOn))
	if err != nil {
		return nil, fmt.Errorf("REMINDER_ENABLED: %w", err)
	}
	cfg.ReminderEnabled = enabled

	return cfg, nil
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getDuration(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: duration must be positive, got %q", key, raw)
	}
	return d, nil
}
