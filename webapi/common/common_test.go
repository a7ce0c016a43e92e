package common

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fiber.NewError(fiber.StatusTeapot, "tea"), fiber.StatusTeapot},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrReceiverNotFound, fiber.StatusNotFound},
		{fmt.Errorf("wrapped: %w", domain.ErrAccountNotFound), fiber.StatusNotFound},
		{domain.ErrRateUnavailable, fiber.StatusServiceUnavailable},
		{domain.ErrInvalidAmount, fiber.StatusBadRequest},
		{domain.ErrInsufficientFunds, fiber.StatusBadRequest},
		{domain.ErrSameCurrency, fiber.StatusBadRequest},
		{domain.ErrUnknownAdapter, fiber.StatusBadRequest},
		{domain.ErrAlreadyExists, fiber.StatusBadRequest},
		{domain.ErrConcurrentUpdate, fiber.StatusConflict},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorToStatusCode(tt.err))
		})
	}
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "Usuario receptor no encontrado", ErrorDetail(domain.ErrReceiverNotFound))
	assert.Equal(t, "Usuario no encontrado", ErrorDetail(domain.ErrAccountNotFound))
	assert.Equal(t, domain.ErrInvalidCurrency.Error(), ErrorDetail(domain.ErrInvalidCurrency))
	assert.Equal(t, "Error interno del servidor", ErrorDetail(errors.New("pq: connection refused")))
}

func TestInsufficientFundsDetail(t *testing.T) {
	assert.Equal(t, "Saldo insuficiente en USD", InsufficientFundsDetail("usd"))
	assert.Equal(t, "Saldo insuficiente en PEN para retiro", InsufficientFundsDetail("PEN", "para retiro"))
}

func TestProblemDetailsJSON_Overrides(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Conflict", domain.ErrInsufficientFunds,
			fiber.StatusConflict, "custom", map[string]string{"field": "bad"})
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/x", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "about:blank",
		"title": "Conflict",
		"status": 409,
		"detail": "custom",
		"instance": "/x",
		"errors": {"field": "bad"}
	}`, string(body))
}
