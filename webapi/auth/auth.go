package auth

import (
	"errors"

	"github.com/bianca-ap01/coin-swap/pkg/domain"
	authsvc "github.com/bianca-ap01/coin-swap/pkg/service/auth"
	"github.com/bianca-ap01/coin-swap/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the public authentication endpoints.
func Routes(app *fiber.App, authSvc *authsvc.Service) {
	group := app.Group("/auth")
	group.Post("/register/", Register(authSvc))
	group.Post("/token/", Token(authSvc))
}

// Register creates an account funded with the starting balance.
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		if _, err := authSvc.Register(c.UserContext(), input.Username, input.Password); err != nil {
			return common.ProblemDetailsJSON(c, "Registration failed", err)
		}
		return c.Status(fiber.StatusCreated).JSON(RegisterResponse{Msg: "Usuario creado con éxito"})
	}
}

// Token exchanges credentials for a bearer token.
func Token(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TokenInput](c)
		if input == nil {
			return err
		}
		token, err := authSvc.Login(c.UserContext(), input.Username, input.Password)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return common.ProblemDetailsJSON(c, "Invalid credentials", err)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return c.JSON(TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}
