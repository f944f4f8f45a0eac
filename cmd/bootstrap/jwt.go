package bootstrap

import (
	"gin-jobqueue/internal/pkg/cache"
	"gin-jobqueue/internal/pkg/clock"
	"gin-jobqueue/internal/pkg/config"
	"gin-jobqueue/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		NewTokenCache,
	),
)

func NewJWTService(cfg config.Config, clk clock.Clock) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration, jwt.WithClock(clk))
}

func NewTokenCache(cfg config.Config) *cache.TokenCache {
	return cache.NewTokenCache(cfg.AuthCache.Size, cfg.AuthCache.TTL)
}
