package scheduler

import (
	"github.com/amir-akbari361/khuchi/internal/config"
	"go.uber.org/fx"
)

func configFromApp(cfg config.Config) Config {
	return Config{
		RunInterval:        cfg.SchedulerInterval,
		JobTimeout:         cfg.JobTimeout,
		UsageRetentionDays: cfg.UsageRetentionDays,
	}
}

var Module = fx.Module("scheduler",
	fx.Provide(
		configFromApp,
		New,
	),
)
