package main

import (
	"context"

	"github.com/amir-akbari361/khuchi/internal/auth"
	"github.com/amir-akbari361/khuchi/internal/clock"
	"github.com/amir-akbari361/khuchi/internal/config"
	"github.com/amir-akbari361/khuchi/internal/conversation"
	"github.com/amir-akbari361/khuchi/internal/knowledge"
	"github.com/amir-akbari361/khuchi/internal/logger"
	"github.com/amir-akbari361/khuchi/internal/migration"
	obsmetrics "github.com/amir-akbari361/khuchi/internal/observability/metrics"
	"github.com/amir-akbari361/khuchi/internal/ratelimit"
	"github.com/amir-akbari361/khuchi/internal/scheduler"
	"github.com/amir-akbari361/khuchi/internal/usagelog"
	"github.com/amir-akbari361/khuchi/internal/user"
	"github.com/amir-akbari361/khuchi/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		obsmetrics.Module,
		db.Module,
		clock.Module,
		migration.Module,

		// Data layer domains
		user.Module,
		usagelog.Module,
		conversation.Module,
		knowledge.Module,
		ratelimit.Module,
		auth.Module,

		// Maintenance
		scheduler.Module,
		fx.Invoke(StartScheduler),
	)
	app.Run()
}

func StartScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.RunForever(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
