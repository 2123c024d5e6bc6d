// Package adapters はオンボーディングフィーチャーの永続化とイベント配信の実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"erp_backend/internal/domain/entity"
	"erp_backend/internal/feature/onboarding/usecase"
	"erp_backend/internal/platform/db"
)

var errNilCompany = errors.New("company is nil")

// companyRepository はCompanyRepositoryのGORM実装です。
type companyRepository struct {
	db *gorm.DB
}

var _ usecase.CompanyRepository = (*companyRepository)(nil)

// NewCompanyRepository はcompanyRepositoryを生成します。
func NewCompanyRepository(db *gorm.DB) *companyRepository {
	return &companyRepository{db: db}
}

// Create は会社を追加します。コンテキストのトランザクションに参加します。
func (r *companyRepository) Create(ctx context.Context, c *entity.Company) error {
	if c == nil {
		return errNilCompany
	}
	return db.Conn(ctx, r.db).Create(c).Error
}
