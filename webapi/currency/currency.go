// Package currency exposes the exchange-rate adapters: listing every
// adapter's current quote and switching the active one.
package currency

import (
	"errors"
	"fmt"

	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/provider"
	"github.com/bianca-ap01/coin-swap/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the public /currency endpoints.
func Routes(app *fiber.App, selector *provider.Selector) {
	group := app.Group("/currency")
	group.Get("/rates/", ListRates(selector))
	group.Post("/select/", Select(selector))
}

// ListRates returns every adapter's from→to rate keyed by adapter name.
// Defaults to USD→PEN.
func ListRates(selector *provider.Selector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := currency.Parse(c.Query("from_currency", currency.USD.String()))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency", domain.ErrInvalidCurrency)
		}
		to, err := currency.Parse(c.Query("to_currency", currency.PEN.String()))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency", domain.ErrInvalidCurrency)
		}
		return c.JSON(selector.ListAllRates(c.UserContext(), from, to))
	}
}

// Select switches the active adapter.
func Select(selector *provider.Selector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SelectInput](c)
		if input == nil {
			return err
		}
		if err := selector.Select(c.UserContext(), input.Key); err != nil {
			if errors.Is(err, domain.ErrUnknownAdapter) {
				return common.ProblemDetailsJSON(c, "Unknown adapter", err,
					fmt.Sprintf("Adaptador '%s' no disponible", input.Key))
			}
			return common.ProblemDetailsJSON(c, "Select adapter failed", err)
		}
		_, name := selector.Active(c.UserContext())
		return c.JSON(common.MessageResponse{Message: "Adaptador cambiado a " + name})
	}
}
