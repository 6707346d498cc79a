package user

import (
	"github.com/amir-akbari361/khuchi/internal/user/repository"
	"github.com/amir-akbari361/khuchi/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
