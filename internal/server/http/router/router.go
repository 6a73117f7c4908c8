package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/gobank/internal/config"
	"github.com/polkiloo/gobank/internal/metrics"
	"github.com/polkiloo/gobank/internal/pkg/ratelimit"
	"github.com/polkiloo/gobank/internal/server/http/handlers"
	"github.com/polkiloo/gobank/internal/server/http/middleware"
	"github.com/polkiloo/gobank/internal/usecase"
)

const metricsPath = "/metrics"

// Params collects router dependencies.
type Params struct {
	fx.In

	Facade  handlers.BankFacade
	Audit   usecase.SecurityAuditor
	Logger  *slog.Logger
	Config  *config.Config
	Limits  *ratelimit.RouteLimits
	Metrics *metrics.Metrics
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	if err := engine.SetTrustedProxies(p.Config.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(gin.Recovery())
	engine.Use(middleware.HTTPMetrics(p.Metrics))
	if len(p.Config.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = p.Config.CORSAllowedOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AllowMethods = []string{"GET"}
		engine.Use(cors.New(corsConfig))
	}
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{metricsPath})))
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.Timeout(p.Config.RequestTimeout))

	cookie := handlers.CookieOptions{Secure: p.Config.CookieSecure}
	systemHandler := handlers.NewSystemHandler(p.Facade)
	authHandler := handlers.NewAuthHandler(p.Facade, cookie)
	accountHandler := handlers.NewAccountHandler(p.Facade, cookie)

	engine.GET("/health", systemHandler.Health)
	engine.GET(metricsPath, gin.WrapH(p.Metrics.Handler()))

	bank := engine.Group("")
	bank.Use(middleware.RateLimit(p.Limits.Global, "global", p.Metrics))
	bank.GET("/", systemHandler.Index)
	bank.GET("/register", authHandler.Register)
	bank.GET("/login", middleware.RateLimit(p.Limits.Login, "login", p.Metrics), authHandler.Login)
	bank.GET("/logout", authHandler.Logout)
	bank.GET("/manage",
		middleware.RateLimit(p.Limits.Manage, "manage", p.Metrics),
		middleware.SessionRequired(p.Facade, p.Audit),
		accountHandler.Manage,
	)

	return engine, nil
}
