package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	infrarepo "github.com/bianca-ap01/coin-swap/infra/repository"
	"github.com/bianca-ap01/coin-swap/internal/fixtures/mocks"
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/money"
	authsvc "github.com/bianca-ap01/coin-swap/pkg/service/auth"
	"github.com/bianca-ap01/coin-swap/pkg/testutils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var jwtCfg = &config.Jwt{Secret: "test-secret", Expiry: 30 * time.Minute}

func newService(t *testing.T) (*authsvc.Service, *gorm.DB) {
	t.Helper()
	db := testutils.NewSQLiteDB(t)
	svc := authsvc.New(
		infrarepo.NewUoW(db),
		jwtCfg,
		&config.StartingBalance{PEN: 100, USD: 0},
		testutils.DiscardLogger(),
		authsvc.WithHashCost(bcrypt.MinCost),
	)
	return svc, db
}

func TestRegister(t *testing.T) {
	svc, db := newService(t)

	acc, err := svc.Register(context.Background(), " ana ", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "ana", acc.Username)

	stored := testutils.LoadAccount(t, db, "ana")
	assert.Equal(t, money.Amount(10000), stored.BalancePEN.Amount())
	assert.Equal(t, money.Amount(0), stored.BalanceUSD.Amount())
	assert.NotEqual(t, "secreto", stored.HashedPassword)
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), "ana", "x")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "ana", "y")
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), "   ", "x")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegister_PasswordLimitCountsBytes(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Register(context.Background(), "ana", strings.Repeat("ñ", 72))
	require.ErrorIs(t, err, authsvc.ErrPasswordTooLong)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Register(context.Background(), "ana", strings.Repeat("a", 72))
	require.NoError(t, err)
}

func TestLoginAndPrincipal(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), "ana", "secreto")
	require.NoError(t, err)

	raw, err := svc.Login(context.Background(), "ana", "secreto")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	token, err := svc.ParseToken(raw)
	require.NoError(t, err)
	principal, err := svc.PrincipalFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana", principal)

	exp, err := token.Claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp.Time, 5*time.Second)
}

func TestLogin_EmptyPassword(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), "testuser", "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "testuser", "")
	require.NoError(t, err)
}

func TestLogin_Rejections(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), "ana", "secreto")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ana", "wrong")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Login(context.Background(), "nadie", "secreto")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_RepositoryError(t *testing.T) {
	uow := mocks.NewUnitOfWork(t)
	repo := mocks.NewAccountRepository(t)
	uow.On("AccountRepository").Return(repo, nil).Once()
	dbErr := errors.New("db down")
	repo.On("GetByUsername", mock.Anything, "ana").Return(nil, dbErr).Once()

	svc := authsvc.New(uow, jwtCfg, nil, testutils.DiscardLogger())
	_, err := svc.Login(context.Background(), "ana", "x")
	require.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseToken_Rejections(t *testing.T) {
	svc, _ := newService(t)

	other := authsvc.New(nil, &config.Jwt{Secret: "other", Expiry: time.Minute}, nil, testutils.DiscardLogger())
	foreign, err := other.GenerateToken("ana")
	require.NoError(t, err)
	_, err = svc.ParseToken(foreign)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	expired := authsvc.New(nil, &config.Jwt{Secret: jwtCfg.Secret, Expiry: -time.Minute}, nil, testutils.DiscardLogger())
	stale, err := expired.GenerateToken("ana")
	require.NoError(t, err)
	_, err = svc.ParseToken(stale)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.ParseToken("not-a-token")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPrincipalFromToken_MissingSubject(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.PrincipalFromToken(nil)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Minute).Unix()})
	_, err = svc.PrincipalFromToken(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	token = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": ""})
	_, err = svc.PrincipalFromToken(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
