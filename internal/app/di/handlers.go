package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "erp_backend/internal/feature/auth/adapters"
	authhandler "erp_backend/internal/feature/auth/transport/handler"
	authusecase "erp_backend/internal/feature/auth/usecase"
	onboardingadapters "erp_backend/internal/feature/onboarding/adapters"
	onboardinghandler "erp_backend/internal/feature/onboarding/transport/handler"
	onboardingusecase "erp_backend/internal/feature/onboarding/usecase"
	"erp_backend/internal/platform/db"
	platformhandler "erp_backend/internal/platform/http/handler"
	jwtmw "erp_backend/internal/platform/jwt"
	"erp_backend/internal/platform/password"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *authhandler.AuthHandler
	Onboarding *onboardinghandler.OnboardingHandler
	Health     *platformhandler.HealthHandler
	Verifier   jwtmw.Verifier
}

// NewHandlers wires repositories, usecases and handlers.
// One password hasher instance is shared by registration, login and onboarding.
func NewHandlers(gdb *gorm.DB, rdb *redis.Client, tokens jwtmw.Generator, stream string) *Handlers {
	// Repository
	userRepo := authadapters.NewUserRepository(gdb)
	companyRepo := onboardingadapters.NewCompanyRepository(gdb)

	hasher := password.NewHasher()

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, hasher)
	onboardingUC := onboardingusecase.NewOnboardingUsecase(db.NewTransactor(gdb), companyRepo, userRepo,
		hasher, NewEventPublisher(rdb, stream))

	return &Handlers{
		Auth:       authhandler.NewAuthHandler(authUC),
		Onboarding: onboardinghandler.NewOnboardingHandler(onboardingUC),
		Health:     platformhandler.NewHealthHandler(db.NewPinger(gdb)),
		Verifier:   tokens,
	}
}
