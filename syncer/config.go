package syncer

import (
	"errors"
	"os"
	"strconv"
	"time"

	"cloyt/client/clockify"
)

type Config struct {
	// ToleranceDelay keeps just-stopped entries out of a cycle, protecting
	// against late edits.
	ToleranceDelay time.Duration
	// ThrottlingDelay is the minimum duration of one full cycle.
	ThrottlingDelay time.Duration
	// WindowSize bounds how many recent time entries are considered per
	// employee and cycle.
	WindowSize int
	// IgnoreEntriesBefore is the cutoff, entries started at or before it are
	// never synced.
	IgnoreEntriesBefore time.Time

	Timezone *time.Location

	ClockifyBaseURL string
	YoutrackBaseURL string
	HTTPTimeout     time.Duration

	DedupStrategy string
}

func ParseSyncConfigFromEnv() (*Config, error) {
	cfg := Config{
		ToleranceDelay:  60 * time.Second,
		ThrottlingDelay: 60 * time.Second,
		WindowSize:      50,
		Timezone:        time.UTC,
		ClockifyBaseURL: clockify.DefaultBaseURL,
		HTTPTimeout:     10 * time.Second,
		DedupStrategy:   DedupStrategyLedger,
	}

	if v := os.Getenv("SYNC_TOLERANCE_DELAY_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid SYNC_TOLERANCE_DELAY_SECONDS: " + v)
		}
		cfg.ToleranceDelay = time.Duration(seconds) * time.Second
	}
	if v := os.Getenv("SYNC_THROTTLING_DELAY_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid SYNC_THROTTLING_DELAY_SECONDS: " + v)
		}
		cfg.ThrottlingDelay = time.Duration(seconds) * time.Second
	}
	if v := os.Getenv("SYNC_WINDOW_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return nil, errors.New("invalid SYNC_WINDOW_SIZE: " + v)
		}
		cfg.WindowSize = size
	}

	v := os.Getenv("IGNORE_ENTRIES_BEFORE")
	if v == "" {
		return nil, errors.New("environment variable IGNORE_ENTRIES_BEFORE is not set")
	}
	ignoreBefore, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, errors.New("invalid IGNORE_ENTRIES_BEFORE: " + v)
	}
	cfg.IgnoreEntriesBefore = ignoreBefore

	if v := os.Getenv("SYNC_TIMEZONE"); v != "" {
		location, err := time.LoadLocation(v)
		if err != nil {
			return nil, errors.New("invalid SYNC_TIMEZONE: " + v)
		}
		cfg.Timezone = location
	}

	cfg.YoutrackBaseURL = os.Getenv("YOUTRACK_BASE_URL")
	if cfg.YoutrackBaseURL == "" {
		return nil, errors.New("environment variable YOUTRACK_BASE_URL is not set")
	}
	if v := os.Getenv("CLOCKIFY_BASE_URL"); v != "" {
		cfg.ClockifyBaseURL = v
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.New("invalid HTTP_TIMEOUT: " + v)
		}
		cfg.HTTPTimeout = timeout
	}
	if v := os.Getenv("DEDUP_STRATEGY"); v != "" {
		cfg.DedupStrategy = v
	}

	return &cfg, nil
}
