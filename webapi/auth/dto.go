package auth

// RegisterInput is the body of POST /auth/register/.
type RegisterInput struct {
	Username string `json:"username" form:"username" validate:"required,max=50"`
	Password string `json:"password" form:"password" validate:"max=72"`
}

// TokenInput is the body of POST /auth/token/, sent as a form or as JSON.
type TokenInput struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterResponse confirms a new account.
type RegisterResponse struct {
	Msg string `json:"msg"`
}
