// Package auth registers wallet users, issues bearer tokens and resolves
// the principal carried by a verified token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/domain/account"
	"github.com/bianca-ap01/coin-swap/pkg/money"
	"github.com/bianca-ap01/coin-swap/pkg/repository"
	"github.com/bianca-ap01/coin-swap/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned when a password exceeds maxPasswordBytes.
var ErrPasswordTooLong = fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordBytes)

// dummyHash is compared against when the user does not exist so that
// unknown and known usernames take the same time to reject.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Service handles registration and token issuance.
type Service struct {
	uow      repository.UnitOfWork
	jwt      *config.Jwt
	starting *config.StartingBalance
	hashCost int
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithHashCost sets the bcrypt cost used for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// New creates an auth Service.
func New(
	uow repository.UnitOfWork,
	jwtCfg *config.Jwt,
	starting *config.StartingBalance,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if starting == nil {
		starting = &config.StartingBalance{PEN: 100}
	}
	s := &Service{
		uow:      uow,
		jwt:      jwtCfg,
		starting: starting,
		hashCost: bcrypt.DefaultCost,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates username's account funded with the starting balance.
// It fails with domain.ErrAlreadyExists when the name is taken.
func (s *Service) Register(ctx context.Context, username, password string) (*account.Account, error) {
	username = utils.NormalizeUsername(username)
	log := s.logger.With("username", username)

	pen, err := money.FromFloat(s.starting.PEN, currency.PEN)
	if err != nil {
		return nil, fmt.Errorf("starting PEN balance: %w", err)
	}
	usd, err := money.FromFloat(s.starting.USD, currency.USD)
	if err != nil {
		return nil, fmt.Errorf("starting USD balance: %w", err)
	}
	if len(password) > maxPasswordBytes {
		log.Warn("Register rejected", "error", ErrPasswordTooLong)
		return nil, ErrPasswordTooLong
	}
	hash, err := utils.HashPassword(password, s.hashCost)
	if err != nil {
		return nil, err
	}
	acc, err := account.New().
		WithUsername(username).
		WithHashedPassword(hash).
		WithBalances(pen.Amount(), usd.Amount()).
		Build()
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, acc)
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	log.Info("Register successful", "accountID", acc.ID)
	return acc, nil
}

// Login checks the credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = utils.NormalizeUsername(username)
	log := s.logger.With("username", username)

	repo, err := s.uow.AccountRepository()
	if err != nil {
		return "", err
	}
	acc, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error("Login failed", "error", err)
			return "", err
		}
		_ = utils.CheckPasswordHash(password, dummyHash)
		log.Warn("Login failed", "error", domain.ErrUnauthorized)
		return "", domain.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, acc.HashedPassword) {
		log.Warn("Login failed", "error", domain.ErrUnauthorized)
		return "", domain.ErrUnauthorized
	}
	token, err := s.GenerateToken(acc.Username)
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Info("Login successful")
	return token, nil
}

// GenerateToken signs an HS256 token whose subject is username.
func (s *Service) GenerateToken(username string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(s.jwt.Expiry).Unix(),
	})
	return token.SignedString([]byte(s.jwt.Secret))
}

// ParseToken verifies a raw token's signature and expiry.
func (s *Service) ParseToken(raw string) (*jwt.Token, error) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return []byte(s.jwt.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return token, nil
}

// PrincipalFromToken returns the username carried in a verified token.
func (s *Service) PrincipalFromToken(token *jwt.Token) (string, error) {
	if token == nil {
		return "", domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthorized
	}
	return sub, nil
}
