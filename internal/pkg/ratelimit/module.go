package ratelimit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/gobank/internal/config"
)

// Module provides request limiters and the login attempt counter.
var Module = fx.Provide(
	NewRouteLimits,
	newAttemptCounter,
)

type counterParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newAttemptCounter(p counterParams) (AttemptCounter, error) {
	if p.Config.RedisURL == "" {
		return NewAttemptTable(LoginWindow), nil
	}

	opt, err := redis.ParseURL(p.Config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("ping redis: %w", err)
			}
			p.Logger.Info("login attempts stored in redis", slog.String("addr", opt.Addr))
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return NewRedisAttemptCounter(client, LoginWindow), nil
}
