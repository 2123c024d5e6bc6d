// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"erp_backend/internal/api"
	"erp_backend/internal/domain"
	"erp_backend/internal/domain/entity"
	"erp_backend/internal/feature/auth/transport/http/dto"
	"erp_backend/internal/feature/auth/usecase"
	jwtmw "erp_backend/internal/platform/jwt"
)

// クライアント向けメッセージ
const (
	MsgLoginSuccess        = "Login successful"
	MsgRegisterSuccess     = "Registration successful"
	MsgLoginRequired       = "Email and password are required"
	MsgRegisterRequired    = "Email, password, and first name are required"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgAccountInactive     = "Account is inactive"
	MsgEmailAlreadyExists  = "User with this email already exists"
	MsgUserNotFound        = "User not found"
	MsgPasswordTooLong     = "Password must be at most 72 bytes"
	MsgTokenRequired       = "Access token required"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時にJWTトークンとユーザーを返します。
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	// Register は新規ユーザーを登録し、JWTトークンとユーザーを返します。
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error)
	// Profile は指定IDのユーザーを返します。
	Profile(ctx context.Context, userID string) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 必須項目不足は400
// - 未登録・パスワード不一致はどちらも同じ本文の401
// - 無効化されたアカウントは403
// - 成功時はトークンとユーザーを200で返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := api.BindJSON(c, &req); err != nil {
		slog.Warn("login bind failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, http.StatusBadRequest, api.MsgInvalidBody)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			api.Fail(c, http.StatusBadRequest, MsgLoginRequired)
		case errors.Is(err, domain.ErrInvalidCredentials):
			// ユーザー列挙攻撃を防止するため、未登録とパスワード不一致を区別しない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			api.Fail(c, http.StatusUnauthorized, MsgInvalidCredentials)
		case errors.Is(err, domain.ErrAccountInactive):
			slog.Warn("login rejected for inactive account", "email", req.Email, "remote_addr", c.ClientIP())
			api.Fail(c, http.StatusForbidden, MsgAccountInactive)
		default:
			slog.Error("login error", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			api.Fail(c, http.StatusInternalServerError, api.MsgInternalError)
		}
		return
	}

	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	api.Success(c, http.StatusOK, dto.AuthRes{Token: res.Token, User: dto.NewUserRes(res.User)}, MsgLoginSuccess)
}

// Register はセルフ登録APIエンドポイントを処理します。
// - 必須項目不足は400
// - メール重複は409
// - 成功時はトークンとユーザーを201で返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := api.BindJSON(c, &req); err != nil {
		slog.Warn("register bind failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, http.StatusBadRequest, api.MsgInvalidBody)
		return
	}

	res, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordTooLong):
			api.Fail(c, http.StatusBadRequest, MsgPasswordTooLong)
		case errors.Is(err, domain.ErrValidation):
			api.Fail(c, http.StatusBadRequest, MsgRegisterRequired)
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			api.Fail(c, http.StatusConflict, MsgEmailAlreadyExists)
		default:
			slog.Error("registration error", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			api.Fail(c, http.StatusInternalServerError, api.MsgInternalError)
		}
		return
	}

	slog.Info("user registration successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	api.Success(c, http.StatusCreated, dto.AuthRes{Token: res.Token, User: dto.NewUserRes(res.User)}, MsgRegisterSuccess)
}

// Me は認証済みユーザーのプロフィールを返します。AuthRequired の後段で使用します。
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := jwtmw.IdentityFromContext(c.Request.Context())
	if !ok {
		api.Fail(c, http.StatusUnauthorized, MsgTokenRequired)
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			api.Fail(c, http.StatusNotFound, MsgUserNotFound)
			return
		}
		slog.Error("profile error", "error", err, "user_id", id.UserID, "remote_addr", c.ClientIP())
		api.Fail(c, http.StatusInternalServerError, api.MsgInternalError)
		return
	}

	api.Success(c, http.StatusOK, gin.H{"user": dto.NewProfileRes(user)}, "")
}
