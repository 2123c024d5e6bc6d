// Package handler はクライアントオンボーディングのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"erp_backend/internal/api"
	"erp_backend/internal/domain"
	"erp_backend/internal/feature/onboarding/transport/http/dto"
	"erp_backend/internal/feature/onboarding/usecase"
)

const (
	MsgClientRegistered    = "Client registered successfully"
	MsgOnboardingSucceeded = "Client onboarding successful"
	MsgMissingFields       = "Missing required fields"
	MsgEmailAlreadyExists  = "User with this email already exists"
	MsgPasswordTooLong     = "Password must be at most 72 bytes"
)

// OnboardingUsecase はオンボーディングのユースケースです。
type OnboardingUsecase interface {
	RegisterClient(ctx context.Context, in usecase.RegisterClientInput) (*usecase.RegisterClientResult, error)
}

// OnboardingHandler はオンボーディングのHTTPリクエストを処理します。
type OnboardingHandler struct {
	onboarding OnboardingUsecase
}

// NewOnboardingHandler はOnboardingHandlerを生成します。
func NewOnboardingHandler(onboarding OnboardingUsecase) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

// Register は会社と最初のユーザーを作成し、201を返します。
func (h *OnboardingHandler) Register(c *gin.Context) {
	var req dto.RegisterClientReq
	if err := api.BindJSON(c, &req); err != nil {
		slog.Warn("client onboarding bind failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, http.StatusBadRequest, api.MsgInvalidBody)
		return
	}

	in := req.ToInput()
	res, err := h.onboarding.RegisterClient(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordTooLong):
			api.Fail(c, http.StatusBadRequest, MsgPasswordTooLong)
		case errors.Is(err, domain.ErrValidation):
			api.Fail(c, http.StatusBadRequest, MsgMissingFields)
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			slog.Warn("client onboarding conflict", "email", in.Personal.Email, "remote_addr", c.ClientIP())
			api.Fail(c, http.StatusConflict, MsgEmailAlreadyExists)
		default:
			slog.Error("client onboarding error", "error", err,
				"email", in.Personal.Email, "organization", in.Customize.OrganizationName, "remote_addr", c.ClientIP())
			api.Fail(c, http.StatusInternalServerError, api.MsgInternalError)
		}
		return
	}

	slog.Info("client onboarded", "user_id", res.UserID, "company_id", res.CompanyID, "remote_addr", c.ClientIP())
	api.Success(c, http.StatusCreated, dto.RegisterClientRes{
		UserID:    res.UserID,
		CompanyID: res.CompanyID,
		Message:   MsgOnboardingSucceeded,
	}, MsgClientRegistered)
}
