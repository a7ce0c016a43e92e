package transaction

import (
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/middleware"
	authsvc "github.com/bianca-ap01/coin-swap/pkg/service/auth"
	"github.com/bianca-ap01/coin-swap/pkg/service/wallet"
	"github.com/bianca-ap01/coin-swap/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the transaction history endpoint.
func Routes(app *fiber.App, walletSvc *wallet.Service, authSvc *authsvc.Service, cfg *config.Jwt) {
	app.Get("/transactions/", middleware.JwtProtected(cfg), List(walletSvc, authSvc))
}

// List returns the caller's history, newest first.
func List(walletSvc *wallet.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := middleware.Principal(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		records, err := walletSvc.History(c.UserContext(), username)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return c.JSON(records)
	}
}
