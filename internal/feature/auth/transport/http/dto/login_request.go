// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/api/auth/loginエンドポイントのリクエストボディを表します。
// 必須チェックはユースケースで行い、ここでは形だけを受け取ります。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
