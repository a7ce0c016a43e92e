// Package middleware holds the Fiber middleware shared by protected routes.
package middleware

import (
	"errors"

	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenContextKey is where the verified token is stored in fiber locals.
const TokenContextKey = "user"

// JwtProtected rejects requests without a valid bearer token signed with cfg.Secret.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   TokenContextKey,
		ErrorHandler: jwtError,
	})
}

// Token returns the verified token stored by JwtProtected, or nil.
func Token(c *fiber.Ctx) *jwt.Token {
	token, _ := c.Locals(TokenContextKey).(*jwt.Token)
	return token
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return common.ProblemDetailsJSON(c, "Bad Request", err, fiber.StatusBadRequest, "Token ausente o mal formado")
	}
	return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized, "Token inválido o expirado")
}

// PrincipalResolver turns a verified token into the acting username.
type PrincipalResolver interface {
	PrincipalFromToken(token *jwt.Token) (string, error)
}

// Principal resolves the username behind the request's token.
func Principal(c *fiber.Ctx, resolver PrincipalResolver) (string, error) {
	return resolver.PrincipalFromToken(Token(c))
}
