// Package common holds the response helpers shared by every route group.
package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MessageResponse is the body of every successful mutating call.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ProblemDetailsJSON writes an application/problem+json response.
//
// The status is taken from the first int in extras, else derived from err
// with ErrorToStatusCode. The detail is taken from the first string in
// extras, else from ErrorDetail(err). Any other extra value is rendered
// under "errors".
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extras ...any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   fiber.StatusInternalServerError,
		Instance: c.OriginalURL(),
	}
	statusSet, detailSet := false, false
	for _, extra := range extras {
		switch v := extra.(type) {
		case int:
			if !statusSet {
				pd.Status, statusSet = v, true
			}
		case string:
			if !detailSet {
				pd.Detail, detailSet = v, true
			}
		default:
			if v != nil {
				pd.Errors = v
			}
		}
	}
	if err != nil {
		if !statusSet {
			pd.Status = ErrorToStatusCode(err)
		}
		if !detailSet {
			pd.Detail = ErrorDetail(err)
		}
	}
	return c.Status(pd.Status).JSON(pd, "application/problem+json")
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrRateUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrSameCurrency),
		errors.Is(err, domain.ErrUnknownAdapter),
		errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorDetail renders a user-facing message for err. Unknown errors get a
// generic message so internals are not leaked.
func ErrorDetail(err error) string {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Message
	case errors.Is(err, domain.ErrReceiverNotFound):
		return "Usuario receptor no encontrado"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "Usuario no encontrado"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "Usuario ya existe"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Credenciales inválidas"
	case errors.Is(err, domain.ErrSameCurrency):
		return "Las monedas origen y destino deben ser diferentes"
	case errors.Is(err, domain.ErrSameAccount):
		return "No se puede transferir a la misma cuenta"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Saldo insuficiente"
	case errors.Is(err, domain.ErrRateUnavailable):
		return "Tipo de cambio no disponible"
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return "La cuenta fue modificada por otra operación, intente nuevamente"
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	default:
		return "Error interno del servidor"
	}
}

// InsufficientFundsDetail names the currency that ran short, optionally
// with a suffix such as "para retiro".
func InsufficientFundsDetail(code string, suffix ...string) string {
	parts := append([]string{"Saldo insuficiente en", strings.ToUpper(code)}, suffix...)
	return strings.Join(parts, " ")
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// On failure it writes the error response and returns a nil input together
// with the error the handler must return.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", nil, fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", nil,
			fiber.StatusUnprocessableEntity, "Datos de entrada inválidos", validationErrors(err))
	}
	return &input, nil
}

func validationErrors(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			out[fe.Field()] = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		} else {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}
