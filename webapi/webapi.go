// Package webapi provides the HTTP surface of the wallet.
// It is organized into sub-packages per route group:
// - auth: registration and token issuance
// - user: the caller's balances
// - transfer: transfers, conversions, deposits and withdrawals
// - transaction: the caller's history
// - currency: exchange-rate adapters
package webapi

import (
	"github.com/bianca-ap01/coin-swap/pkg/app"
	authweb "github.com/bianca-ap01/coin-swap/webapi/auth"
	"github.com/bianca-ap01/coin-swap/webapi/common"
	currencyweb "github.com/bianca-ap01/coin-swap/webapi/currency"
	transactionweb "github.com/bianca-ap01/coin-swap/webapi/transaction"
	transferweb "github.com/bianca-ap01/coin-swap/webapi/transfer"
	userweb "github.com/bianca-ap01/coin-swap/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "coin-swap",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Use(recover.New())
	if a.Config.IsDevelopment() {
		fiberApp.Use(logger.New())
	}

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtCfg := a.Config.Auth.Jwt
	authweb.Routes(fiberApp, a.AuthService)
	userweb.Routes(fiberApp, a.WalletService, a.AuthService, jwtCfg)
	transferweb.Routes(fiberApp, a.WalletService, a.AuthService, jwtCfg)
	transactionweb.Routes(fiberApp, a.WalletService, a.AuthService, jwtCfg)
	currencyweb.Routes(fiberApp, a.Deps.Rates)
	return fiberApp
}
