// Package viewcache invalidates cached rendered views after catalogue
// mutations. The cache itself lives at the edge; this side only deletes
// the keys that went stale.
package viewcache

import (
	"context"
	"log/slog"

	"atelier/config"
	"atelier/internal/domain/lifecycle"
	"atelier/internal/domain/service"
	"atelier/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// redisInvalidator is a concrete implementation of the ViewCache interface.
type redisInvalidator struct {
	client *redis.Client
}

// noopInvalidator satisfies the ViewCache interface when Redis is not
// configured, which is the common single-instance deployment.
type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, ...string) error { return nil }

// New creates the view cache invalidator. Without Redis configuration the
// no-op implementation is returned.
func New(params Params) (service.ViewCache, error) {
	if params.Config.Redis == nil {
		params.Logger.Info("View cache disabled, no redis configured")

		return noopInvalidator{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     params.Config.Redis.Addr,
		Password: params.Config.Redis.Password,
		DB:       params.Config.Redis.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return &redisInvalidator{client: client}, nil
}

// Invalidate deletes the stale view keys.
func (c *redisInvalidator) Invalidate(ctx context.Context, views ...string) error {
	if len(views) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, views...).Err(); err != nil {
		return errors.Wrap(err, "failed to invalidate views")
	}

	return nil
}
