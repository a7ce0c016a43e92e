package currency_test

import (
	"net/http"
	"testing"

	"github.com/bianca-ap01/coin-swap/webapi/common"
	"github.com/bianca-ap01/coin-swap/webapi/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRates(t *testing.T) {
	env := testutils.NewEnv(t)

	status, body := env.Request(t, http.MethodGet, "/currency/rates/", nil, "")
	require.Equal(t, http.StatusOK, status, string(body))
	rates := testutils.Decode[map[string]any](t, body)
	require.Len(t, rates, 2)
	assert.Equal(t, 3.75, rates["fixed"])
	failure, ok := rates["exchangerateapi"].(string)
	require.True(t, ok)
	assert.Contains(t, failure, "Error: ")
}

func TestListRates_Query(t *testing.T) {
	env := testutils.NewEnv(t)

	status, body := env.Request(t, http.MethodGet, "/currency/rates/?from_currency=PEN&to_currency=USD", nil, "")
	require.Equal(t, http.StatusOK, status)
	rates := testutils.Decode[map[string]any](t, body)
	assert.InDelta(t, 0.2667, rates["fixed"], 0.0001)

	status, body = env.Request(t, http.MethodGet, "/currency/rates/?from_currency=EUR", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, testutils.Decode[common.ProblemDetails](t, body).Detail)
}

func TestSelect(t *testing.T) {
	env := testutils.NewEnv(t)

	status, body := env.Request(t, http.MethodPost, "/currency/select/", map[string]string{"key": "exchangerateapi"}, "")
	require.Equal(t, http.StatusOK, status, string(body))
	assert.JSONEq(t, `{"message":"Adaptador cambiado a ExchangeRate-API.com (public)"}`, string(body))

	key, _ := env.Core.Deps.Rates.Active(t.Context())
	assert.Equal(t, "exchangerateapi", key)
}

func TestSelect_Unknown(t *testing.T) {
	env := testutils.NewEnv(t)

	status, body := env.Request(t, http.MethodPost, "/currency/select/", map[string]string{"key": "banco"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Adaptador 'banco' no disponible", testutils.Decode[common.ProblemDetails](t, body).Detail)

	key, _ := env.Core.Deps.Rates.Active(t.Context())
	assert.Equal(t, "fixed", key)
}
