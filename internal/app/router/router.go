package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"erp_backend/internal/app/di"
	jwtmw "erp_backend/internal/platform/jwt"
)

// Options configures cross-cutting router behavior.
type Options struct {
	// CORSOrigin is the single browser origin allowed to call the API with credentials.
	CORSOrigin string
}

func NewRouter(h *di.Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// フロントエンドからの資格情報付きリクエストを許可
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{opts.CORSOrigin},
		AllowMethods:     []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// 導通確認用
	for _, path := range []string{"/health", "/healthz"} {
		r.GET(path, h.Health.Health)
		r.HEAD(path, h.Health.Health)
	}

	api := r.Group("/api")

	// 認証不要
	auth := api.Group("/auth")
	{
		// ログイン（JWT 発行）
		auth.POST("/login", h.Auth.Login)
		// 新規ユーザー登録
		auth.POST("/register", h.Auth.Register)
	}
	api.POST("/client-onboarding/register", h.Onboarding.Register)

	// 認証必須のルート
	// → リクエストヘッダーに JWT が必要になる
	protected := api.Group("/")
	protected.Use(jwtmw.AuthRequired(h.Verifier))
	{
		protected.GET("/auth/me", h.Auth.Me)
	}

	return r
}
