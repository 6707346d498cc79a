package usagelog

import (
	"github.com/amir-akbari361/khuchi/internal/usagelog/repository"
	"github.com/amir-akbari361/khuchi/internal/usagelog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("usagelog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
