package conversation

import (
	"github.com/amir-akbari361/khuchi/internal/conversation/repository"
	"github.com/amir-akbari361/khuchi/internal/conversation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("conversation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
