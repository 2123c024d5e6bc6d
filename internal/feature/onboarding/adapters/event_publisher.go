package adapters

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"erp_backend/internal/feature/onboarding/usecase"
)

// DefaultStream はオンボーディングイベントのRedisストリーム名です。
const DefaultStream = "client-onboarding"

// redisStreamPublisher はイベントをRedis Streamに XADD します。
type redisStreamPublisher struct {
	rdb    *redis.Client
	stream string
}

var _ usecase.EventPublisher = (*redisStreamPublisher)(nil)

// NewRedisStreamPublisher はredisStreamPublisherを生成します。
func NewRedisStreamPublisher(rdb *redis.Client, stream string) *redisStreamPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &redisStreamPublisher{rdb: rdb, stream: stream}
}

// Publish はイベントをストリームへ追加します。
func (p *redisStreamPublisher) Publish(ctx context.Context, e usecase.ClientOnboarded) error {
	err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: eventValues(e),
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}

// eventValues はフィールド順を固定したXADDの値です。
func eventValues(e usecase.ClientOnboarded) []any {
	return []any{
		"type", "ClientOnboarded",
		"userId", e.UserID,
		"companyId", e.CompanyID,
		"companyCode", e.CompanyCode,
		"planId", e.PlanID,
		"planUsers", e.PlanUsers,
		"currency", e.Currency,
		"clientType", e.ClientType,
	}
}

// noopPublisher はRedisが無い環境で使うPublisherです。
type noopPublisher struct{}

// NewNoopPublisher は何もしないPublisherを返します。
func NewNoopPublisher() usecase.EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, usecase.ClientOnboarded) error {
	return nil
}
