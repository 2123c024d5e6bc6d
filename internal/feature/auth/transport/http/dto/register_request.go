package dto

// RegisterReq は/api/auth/registerエンドポイントのリクエストボディを表します。
type RegisterReq struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
}
