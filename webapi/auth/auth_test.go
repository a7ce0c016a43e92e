package auth_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bianca-ap01/coin-swap/webapi/common"
	"github.com/bianca-ap01/coin-swap/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := testutils.NewEnv(t)

	status, body := env.Request(t, http.MethodPost, "/auth/register/",
		map[string]string{"username": "ana", "password": "secreto"}, "")
	require.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"msg":"Usuario creado con éxito"}`, string(body))

	status, body = env.Request(t, http.MethodPost, "/auth/register/",
		map[string]string{"username": "ana", "password": "otro"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Usuario ya existe", testutils.Decode[common.ProblemDetails](t, body).Detail)
}

func TestRegister_Validation(t *testing.T) {
	env := testutils.NewEnv(t)

	status, body := env.Request(t, http.MethodPost, "/auth/register/", map[string]string{"password": "x"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	pd := testutils.Decode[common.ProblemDetails](t, body)
	assert.Equal(t, "Datos de entrada inválidos", pd.Detail)
	assert.Equal(t, map[string]any{"Username": "required"}, pd.Errors)

	status, _ = env.Request(t, http.MethodPost, "/auth/register/",
		map[string]string{"username": strings.Repeat("a", 51)}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestRegister_MultibytePasswordTooLong(t *testing.T) {
	env := testutils.NewEnv(t)

	status, body := env.Request(t, http.MethodPost, "/auth/register/",
		map[string]string{"username": "ana", "password": strings.Repeat("é", 72)}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, testutils.Decode[common.ProblemDetails](t, body).Detail, "72 bytes")
}

func TestToken(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.RegisterAndLogin(t, "ana", "secreto")
	assert.NotEmpty(t, token)

	status, body := env.Request(t, http.MethodPost, "/auth/token/",
		map[string]string{"username": "ana", "password": "mal"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Credenciales inválidas", testutils.Decode[common.ProblemDetails](t, body).Detail)

	status, _ = env.Request(t, http.MethodPost, "/auth/token/",
		map[string]string{"username": "nadie", "password": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestToken_FormEncoded(t *testing.T) {
	env := testutils.NewEnv(t)
	env.RegisterAndLogin(t, "ana", "secreto")

	form := url.Values{"username": {"ana"}, "password": {"secreto"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token/", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := env.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestToken_EmptyPassword(t *testing.T) {
	env := testutils.NewEnv(t)
	token := env.RegisterAndLogin(t, "testuser", "")
	assert.NotEmpty(t, token)
}
