package scheduler

import (
	"time"
)

// Config controls the maintenance loop.
type Config struct {
	RunInterval        time.Duration
	JobTimeout         time.Duration
	UsageRetentionDays int
}

func DefaultConfig() Config {
	return Config{
		RunInterval:        24 * time.Hour,
		JobTimeout:         5 * time.Minute,
		UsageRetentionDays: 7,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	if c.UsageRetentionDays <= 0 {
		c.UsageRetentionDays = defaults.UsageRetentionDays
	}
	return c
}
