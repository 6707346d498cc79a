package auth

import (
	"github.com/amir-akbari361/khuchi/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(service.NewService),
)
