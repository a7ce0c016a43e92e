// Package transfer exposes the balance-changing operations: transfers,
// conversions, deposits and withdrawals.
package transfer

import (
	"errors"

	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/middleware"
	authsvc "github.com/bianca-ap01/coin-swap/pkg/service/auth"
	"github.com/bianca-ap01/coin-swap/pkg/service/wallet"
	"github.com/bianca-ap01/coin-swap/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the protected /transfer endpoints.
func Routes(app *fiber.App, walletSvc *wallet.Service, authSvc *authsvc.Service, cfg *config.Jwt) {
	group := app.Group("/transfer", middleware.JwtProtected(cfg))
	group.Post("/transfer/", Transfer(walletSvc, authSvc))
	group.Post("/convert/", Convert(walletSvc, authSvc))
	group.Post("/user/balance/change/", ChangeBalance(walletSvc, authSvc))
}

// Transfer sends funds to another user.
func Transfer(walletSvc *wallet.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := middleware.Principal(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[TransferInput](c)
		if input == nil {
			return err
		}
		msg, err := walletSvc.Transfer(c.UserContext(), username, wallet.TransferCommand{
			Receiver: input.Receiver,
			Amount:   input.Amount,
			Currency: input.Currency,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return common.ProblemDetailsJSON(c, "Transfer failed", err, common.InsufficientFundsDetail(input.Currency))
			}
			return common.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		return c.JSON(common.MessageResponse{Message: msg})
	}
}

// Convert exchanges funds between the caller's own currencies.
func Convert(walletSvc *wallet.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := middleware.Principal(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[ConvertInput](c)
		if input == nil {
			return err
		}
		msg, err := walletSvc.Convert(c.UserContext(), username, wallet.ConvertCommand{
			FromCurrency: input.FromCurrency,
			ToCurrency:   input.ToCurrency,
			Amount:       input.Amount,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return common.ProblemDetailsJSON(c, "Conversion failed", err, common.InsufficientFundsDetail(input.FromCurrency))
			}
			return common.ProblemDetailsJSON(c, "Conversion failed", err)
		}
		return c.JSON(common.MessageResponse{Message: msg})
	}
}

// ChangeBalance deposits into or withdraws from the caller's account.
func ChangeBalance(walletSvc *wallet.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := middleware.Principal(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[BalanceChangeInput](c)
		if input == nil {
			return err
		}
		msg, err := walletSvc.ChangeBalance(c.UserContext(), username, wallet.BalanceChangeCommand{
			Amount:    input.Amount,
			Currency:  input.Currency,
			Operation: input.Operation,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return common.ProblemDetailsJSON(c, "Balance change failed", err,
					common.InsufficientFundsDetail(input.Currency, "para retiro"))
			}
			return common.ProblemDetailsJSON(c, "Balance change failed", err)
		}
		return c.JSON(common.MessageResponse{Message: msg})
	}
}
