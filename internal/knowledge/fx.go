package knowledge

import (
	"github.com/amir-akbari361/khuchi/internal/knowledge/repository"
	"github.com/amir-akbari361/khuchi/internal/knowledge/service"
	"go.uber.org/fx"
)

var Module = fx.Module("knowledge.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
