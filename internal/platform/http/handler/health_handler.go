// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Open Sparkle ERP API"

const pingTimeout = 2 * time.Second

// Pinger はデータベース疎通確認の抽象です。
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler は /health と /healthz を処理します。
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler は HealthHandler を生成します。db が nil の場合は疎通確認を行いません。
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health はサービスヘルスチェックを処理します。
// データベースに到達できない場合は 503 を返し、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	status, body := http.StatusOK, gin.H{"status": "ok", "message": ServiceName}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err, "remote_addr", c.ClientIP())
			status, body = http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": ServiceName}
		}
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	c.JSON(status, body)
}
