package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/gobank/internal/config"
	"github.com/polkiloo/gobank/internal/domain/repository"
	pkgAuth "github.com/polkiloo/gobank/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newSessionUseCase,
	NewAuthUseCase,
	NewAccountUseCase,
)

type sessionParams struct {
	fx.In

	Sessions repository.SessionRepository
	Tokens   pkgAuth.TokenGenerator
	Config   *config.Config
}

func newSessionUseCase(p sessionParams) *SessionUseCase {
	return NewSessionUseCase(p.Sessions, p.Tokens, p.Config.SessionTTL)
}
