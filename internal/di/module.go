package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/gobank/internal/app"
	"github.com/polkiloo/gobank/internal/audit"
	"github.com/polkiloo/gobank/internal/config"
	"github.com/polkiloo/gobank/internal/logger"
	"github.com/polkiloo/gobank/internal/metrics"
	"github.com/polkiloo/gobank/internal/pkg/auth"
	"github.com/polkiloo/gobank/internal/pkg/ratelimit"
	"github.com/polkiloo/gobank/internal/server/http/handlers"
	"github.com/polkiloo/gobank/internal/server/http/router"
	"github.com/polkiloo/gobank/internal/storage/postgres"
	"github.com/polkiloo/gobank/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		audit.Module,
		auth.Module,
		ratelimit.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(func(l *audit.Logger) usecase.SecurityAuditor { return l }),
		fx.Provide(func(f *app.BankFacade) handlers.BankFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
