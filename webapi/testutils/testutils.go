// Package testutils builds a fully wired HTTP app over SQLite for route tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infraeventbus "github.com/bianca-ap01/coin-swap/infra/eventbus"
	infraprovider "github.com/bianca-ap01/coin-swap/infra/provider"
	infrarepo "github.com/bianca-ap01/coin-swap/infra/repository"
	"github.com/bianca-ap01/coin-swap/pkg/app"
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/provider"
	authsvc "github.com/bianca-ap01/coin-swap/pkg/service/auth"
	pkgtestutils "github.com/bianca-ap01/coin-swap/pkg/testutils"
	"github.com/bianca-ap01/coin-swap/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Env is a running test application.
type Env struct {
	App  *fiber.App
	Core *app.App
	DB   *gorm.DB
	Bus  *infraeventbus.MemoryEventBus
}

// NewEnv wires the app over a fresh SQLite database. The "fixed" adapter
// (1 USD = 3.75 PEN) is active; the "exchangerateapi" adapter points at a
// server that always fails.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	logger := pkgtestutils.DiscardLogger()
	db := pkgtestutils.NewSQLiteDB(t)

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(broken.Close)

	selector := provider.NewSelector(infraprovider.FixedKey, logger)
	selector.Register(infraprovider.FixedKey, infraprovider.NewFixed(map[string]float64{"USD": 1, "PEN": 3.75}))
	selector.Register(infraprovider.ExchangeRateAPIKey, infraprovider.NewExchangeRateAPI(broken.URL, time.Second, logger))

	bus := infraeventbus.NewWithMemory(logger)
	cfg := &config.App{
		Env:     "test",
		Auth:    &config.Auth{Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour}},
		Account: &config.Account{StartingBalance: &config.StartingBalance{PEN: 100}},
	}
	core := app.New(&app.Deps{
		Uow:      infrarepo.NewUoW(db),
		Rates:    selector,
		EventBus: bus,
		Logger:   logger,
	}, cfg)
	core.AuthService = authsvc.New(core.Deps.Uow, cfg.Auth.Jwt, cfg.Account.StartingBalance, logger,
		authsvc.WithHashCost(bcrypt.MinCost))

	return &Env{App: webapi.SetupApp(core), Core: core, DB: db, Bus: bus}
}

// Request sends body as JSON (when non-nil) with an optional bearer token
// and returns the status and raw response body.
func (e *Env) Request(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// RegisterAndLogin creates username and returns a bearer token for it.
func (e *Env) RegisterAndLogin(t *testing.T, username, password string) string {
	t.Helper()
	status, body := e.Request(t, http.MethodPost, "/auth/register/",
		map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = e.Request(t, http.MethodPost, "/auth/token/",
		map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, status, string(body))
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(body, &tok))
	return tok.AccessToken
}

// Decode unmarshals a response body into T.
func Decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}
