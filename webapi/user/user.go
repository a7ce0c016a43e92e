package user

import (
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/middleware"
	authsvc "github.com/bianca-ap01/coin-swap/pkg/service/auth"
	"github.com/bianca-ap01/coin-swap/pkg/service/wallet"
	"github.com/bianca-ap01/coin-swap/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the endpoints about the authenticated user.
func Routes(app *fiber.App, walletSvc *wallet.Service, authSvc *authsvc.Service, cfg *config.Jwt) {
	group := app.Group("/users", middleware.JwtProtected(cfg))
	group.Get("/me/balance/", Balance(walletSvc, authSvc))
}

// Balance returns the caller's PEN and USD balances.
func Balance(walletSvc *wallet.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := middleware.Principal(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		bal, err := walletSvc.Balance(c.UserContext(), username)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get balance", err)
		}
		return c.JSON(bal)
	}
}
