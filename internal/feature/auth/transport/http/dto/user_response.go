package dto

import "erp_backend/internal/domain/entity"

// UserRes はクライアントに公開するユーザー情報です。パスワードハッシュは含みません。
type UserRes struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// ProfileRes は/api/auth/meで返すユーザー情報です。
type ProfileRes struct {
	UserRes
	CompanyID *string `json:"companyId"`
}

// AuthRes はログイン・登録成功時のdataです。
type AuthRes struct {
	Token string  `json:"token"`
	User  UserRes `json:"user"`
}

// NewUserRes はエンティティから公開ビューを組み立てます。
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// NewProfileRes はエンティティからプロフィールを組み立てます。
func NewProfileRes(u *entity.User) ProfileRes {
	return ProfileRes{UserRes: NewUserRes(u), CompanyID: u.CompanyID}
}
