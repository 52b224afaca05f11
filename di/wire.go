//go:build wireinject
// +build wireinject

package di

import (
	"ruang/config"
	"ruang/infras/kafka"
	"ruang/infras/otel"
	"ruang/infras/postgres"
	"ruang/infras/redis"
	"ruang/infras/s3"
	"ruang/infras/session"
	"ruang/permissions"
	"ruang/shared/cache"
	"ruang/transport/http"
	"ruang/transport/http/middleware"
	"ruang/transport/http/router"

	"github.com/google/wire"

	availabilityService "ruang/internal/domains/availability/service"
	authService "ruang/internal/domains/auth/service"
	bookingRepository "ruang/internal/domains/booking/repository"
	bookingService "ruang/internal/domains/booking/service"
	roomRepository "ruang/internal/domains/room/repository"
	roomService "ruang/internal/domains/room/service"
	userRepository "ruang/internal/domains/user/repository"
	authHandler "ruang/internal/handlers/auth"
	availabilityHandler "ruang/internal/handlers/availability"
	bookingHandler "ruang/internal/handlers/booking"
	roomHandler "ruang/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	session.New,
	kafka.New,
	s3.New,
	permissions.Get,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	availabilityDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	availabilityHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
