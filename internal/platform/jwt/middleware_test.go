package jwtmw

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const middlewareSecret = "test-secret-key-for-middleware"

// runMiddleware は指定したAuthorizationヘッダーでミドルウェアを実行します。
func runMiddleware(t *testing.T, verifier Verifier, authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	AuthRequired(verifier)(c)
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// TestAuthRequired_MissingBearerToken はBearerトークンがない場合に401が返されることを検証します。
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	gen := newTestGenerator(t, middlewareSecret, time.Hour)

	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"scheme only", "Bearer"},
		{"scheme with blank token", "Bearer    "},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := runMiddleware(t, gen, tt.authHeader)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted(), "expected request to be aborted")
			body := decodeError(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Access token required", body["error"])
		})
	}
}

// TestAuthRequired_MissingVerifier はシークレット未設定（Verifierなし）の場合に500が返されることを検証します。
func TestAuthRequired_MissingVerifier(t *testing.T) {
	c, w := runMiddleware(t, nil, "Bearer sometoken")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, c.IsAborted())
	assert.Equal(t, "JWT secret not configured", decodeError(t, w)["error"])
}

// TestAuthRequired_InvalidToken は不正なトークン（改ざん・期限切れ等）で403が返されることを検証します。
func TestAuthRequired_InvalidToken(t *testing.T) {
	gen := newTestGenerator(t, middlewareSecret, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", createTokenWithSecret("wrong-secret", "user-1", time.Hour)},
		{"expired token", createTokenWithSecret(middlewareSecret, "user-1", -time.Hour)},
		{"none algorithm", createUnsignedToken("user-1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := runMiddleware(t, gen, "Bearer "+tt.token)

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.True(t, c.IsAborted())
			assert.Equal(t, "Invalid or expired token", decodeError(t, w)["error"])
		})
	}
}

// TestAuthRequired_ValidToken は有効なトークンでリクエストが通過し、コンテキストにユーザー情報が設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	gen := newTestGenerator(t, middlewareSecret, time.Hour)

	tests := []struct {
		name   string
		scheme string
		userID string
	}{
		{"canonical scheme", "Bearer", "user-1"},
		{"lowercase scheme", "bearer", "user-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := gen.GenerateToken(tt.userID, "test@example.com")
			require.NoError(t, err)

			c, w := runMiddleware(t, gen, tt.scheme+" "+token)

			require.False(t, c.IsAborted(), "response: %s", w.Body.String())

			userID, exists := c.Get(ContextUserID)
			require.True(t, exists, "expected userID to be set in gin context")
			assert.Equal(t, tt.userID, userID)
			assert.Equal(t, "test@example.com", c.GetString(ContextEmail))

			id, ok := IdentityFromContext(c.Request.Context())
			require.True(t, ok, "expected identity in request context")
			assert.Equal(t, Identity{UserID: tt.userID, Email: "test@example.com"}, id)
		})
	}
}

// TestAuthRequired_ReachesNextHandler はルーター経由で後続ハンドラーに到達することを検証します。
func TestAuthRequired_ReachesNextHandler(t *testing.T) {
	gen := newTestGenerator(t, middlewareSecret, time.Hour)
	token, err := gen.GenerateToken("user-7", "seven@example.com")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", AuthRequired(gen), func(c *gin.Context) {
		id, _ := IdentityFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"user-7"}`, w.Body.String())
}

func TestIdentityFromContext_Empty(t *testing.T) {
	t.Parallel()

	_, ok := IdentityFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
