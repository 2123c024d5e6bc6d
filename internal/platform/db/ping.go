package db

import (
	"context"

	"gorm.io/gorm"
)

// Pinger checks that the database answers.
type Pinger struct {
	db *gorm.DB
}

// NewPinger creates a Pinger for db.
func NewPinger(db *gorm.DB) *Pinger {
	return &Pinger{db: db}
}

// Ping verifies the connection is alive.
func (p *Pinger) Ping(ctx context.Context) error {
	if p == nil || p.db == nil {
		return errNilDB
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
