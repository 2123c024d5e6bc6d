// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	onboardingadapters "erp_backend/internal/feature/onboarding/adapters"
	"erp_backend/internal/feature/onboarding/usecase"
)

// NewEventPublisher creates an EventPublisher implementation.
// If Redis is available, it returns a Redis Stream-backed implementation.
// Otherwise, events are dropped.
func NewEventPublisher(rdb *redis.Client, stream string) usecase.EventPublisher {
	if rdb != nil {
		return onboardingadapters.NewRedisStreamPublisher(rdb, stream)
	}
	return onboardingadapters.NewNoopPublisher()
}
