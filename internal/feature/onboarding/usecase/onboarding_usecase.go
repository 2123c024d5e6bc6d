// Package usecase はクライアントオンボーディング（会社と最初のユーザーの同時作成）を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"erp_backend/internal/domain"
	"erp_backend/internal/domain/entity"
	"erp_backend/internal/platform/password"
)

// Transactor は1つのトランザクション内で関数を実行します。
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CompanyRepository は会社の永続化を抽象化します。
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
}

// UserRepository はオンボーディングで使うユーザー永続化の操作です。
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// PasswordHasher はパスワードをハッシュ化します。認証と同じ実装を共有します。
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// EventPublisher はコミット後のオンボーディングイベントを配信します。
type EventPublisher interface {
	Publish(ctx context.Context, event ClientOnboarded) error
}

// PersonalDetails は最初のユーザーの情報です。
type PersonalDetails struct {
	FirstName string
	LastName  *string
	Mobile    *string
	Email     string
	Username  *string
	Password  string
}

// AddressDetails は会社の所在地と税務情報です。すべて任意です。
type AddressDetails struct {
	WebsiteAddress *string
	StreetAddress  *string
	City           *string
	TownVillage    *string
	Country        *string
	State          *string
	PostalCode     *string
	GSTNo          *string
	PANNo          *string
	AadharNo       *string
}

// PlanDetails は選択されたプランです。保存はせずイベントにのみ載せます。
type PlanDetails struct {
	PlanID string
	Users  int
}

// CustomizeDetails は組織の設定です。OrganizationName は必須です。
type CustomizeDetails struct {
	OrganizationName    string
	OrganizationDetails *string
	Currency            *string
	ClientType          *string
}

// RegisterClientInput はオンボーディングウィザード4ステップ分の入力です。
type RegisterClientInput struct {
	Personal  PersonalDetails
	Address   AddressDetails
	Plan      PlanDetails
	Customize CustomizeDetails
}

// RegisterClientResult は作成されたユーザーと会社のIDです。
type RegisterClientResult struct {
	UserID    string
	CompanyID string
}

// ClientOnboarded はオンボーディング完了イベントです。
type ClientOnboarded struct {
	UserID      string
	CompanyID   string
	CompanyCode string
	PlanID      string
	PlanUsers   int
	Currency    string
	ClientType  string
}

type onboardingUsecase struct {
	tx        Transactor
	companies CompanyRepository
	users     UserRepository
	hasher    PasswordHasher
	events    EventPublisher
}

// NewOnboardingUsecase はonboardingUsecaseを生成します。
func NewOnboardingUsecase(tx Transactor, companies CompanyRepository, users UserRepository,
	hasher PasswordHasher, events EventPublisher) *onboardingUsecase {
	return &onboardingUsecase{
		tx:        tx,
		companies: companies,
		users:     users,
		hasher:    hasher,
		events:    events,
	}
}

// RegisterClient は会社と最初のユーザーを1トランザクションで作成します。
// どちらかの作成に失敗した場合は両方ロールバックされます。
func (u *onboardingUsecase) RegisterClient(ctx context.Context, in RegisterClientInput) (*RegisterClientResult, error) {
	if in.Personal.Email == "" || in.Personal.Password == "" || in.Personal.FirstName == "" ||
		in.Customize.OrganizationName == "" {
		return nil, domain.ErrValidation
	}

	existing, err := u.users.FindByEmail(ctx, in.Personal.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := u.hasher.Hash(in.Personal.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, domain.ErrPasswordTooLong
		}
		return nil, err
	}

	company := newCompany(in)
	user := &entity.User{
		Email:     in.Personal.Email,
		Password:  hashed,
		FirstName: in.Personal.FirstName,
		LastName:  in.Personal.LastName,
		IsActive:  true,
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.companies.Create(ctx, company); err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}
		user.CompanyID = &company.ID
		if err := u.users.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				return err
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, ClientOnboarded{
		UserID:      user.ID,
		CompanyID:   company.ID,
		CompanyCode: company.Code,
		PlanID:      in.Plan.PlanID,
		PlanUsers:   in.Plan.Users,
		Currency:    deref(in.Customize.Currency),
		ClientType:  deref(in.Customize.ClientType),
	})

	return &RegisterClientResult{UserID: user.ID, CompanyID: company.ID}, nil
}

// publish は配信失敗をログに残すだけで呼び出し元には返しません。
func (u *onboardingUsecase) publish(ctx context.Context, event ClientOnboarded) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish onboarding event",
			"error", err, "user_id", event.UserID, "company_id", event.CompanyID)
	}
}

func newCompany(in RegisterClientInput) *entity.Company {
	country := entity.DefaultCountry
	if in.Address.Country != nil && *in.Address.Country != "" {
		country = *in.Address.Country
	}
	email := in.Personal.Email
	return &entity.Company{
		Name:    in.Customize.OrganizationName,
		Code:    entity.CompanyCode(in.Customize.OrganizationName),
		Address: in.Address.StreetAddress,
		City:    in.Address.City,
		State:   in.Address.State,
		Country: country,
		Pincode: in.Address.PostalCode,
		Email:   &email,
		Phone:   in.Personal.Mobile,
		GSTIN:   in.Address.GSTNo,
		PAN:     in.Address.PANNo,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
