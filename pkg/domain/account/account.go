package account

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/money"
	"github.com/google/uuid"
)

// ErrUsernameRequired is returned when building an account without a username.
var ErrUsernameRequired = fmt.Errorf("%w: username is required", domain.ErrValidation)

// Account represents a user's two-currency wallet.
// It acts as an aggregate root, ensuring all balance changes are consistent and valid.
//
// Invariants:
//   - Username is unique and never changes once created.
//   - BalancePEN is always in PEN, BalanceUSD always in USD.
//   - No balance is ever negative.
//   - Version grows by one on every persisted balance change.
type Account struct {
	ID             uuid.UUID
	Username       string
	HashedPassword string
	BalancePEN     money.Money
	BalanceUSD     money.Money
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id             uuid.UUID
	username       string
	hashedPassword string
	pen            money.Amount
	usd            money.Amount
	version        int64
	createdAt      time.Time
	updatedAt      time.Time
}

// New creates a new Builder with a fresh UUID and creation time.
func New() *Builder {
	now := time.Now().UTC()
	return &Builder{
		id:        uuid.New(),
		createdAt: now,
		updatedAt: now,
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUsername sets the username. This is a mandatory field.
func (b *Builder) WithUsername(username string) *Builder {
	b.username = strings.TrimSpace(username)
	return b
}

// WithHashedPassword sets the stored password hash.
func (b *Builder) WithHashedPassword(hash string) *Builder {
	b.hashedPassword = hash
	return b
}

// WithBalances sets both balances in minor units. Used for registration
// seeding, hydration from a data store and test setup.
func (b *Builder) WithBalances(pen, usd money.Amount) *Builder {
	b.pen = pen
	b.usd = usd
	return b
}

// WithVersion sets the concurrency token when hydrating from a data store.
func (b *Builder) WithVersion(v int64) *Builder {
	b.version = v
	return b
}

// WithTimestamps sets creation and update timestamps when hydrating.
func (b *Builder) WithTimestamps(created, updated time.Time) *Builder {
	b.createdAt = created
	b.updatedAt = updated
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.username == "" {
		return nil, ErrUsernameRequired
	}
	if b.pen < 0 || b.usd < 0 {
		return nil, domain.ErrInsufficientFunds
	}
	pen, err := money.New(b.pen, currency.PEN)
	if err != nil {
		return nil, err
	}
	usd, err := money.New(b.usd, currency.USD)
	if err != nil {
		return nil, err
	}
	return &Account{
		ID:             b.id,
		Username:       b.username,
		HashedPassword: b.hashedPassword,
		BalancePEN:     pen,
		BalanceUSD:     usd,
		Version:        b.version,
		CreatedAt:      b.createdAt,
		UpdatedAt:      b.updatedAt,
	}, nil
}

// Balance returns the balance held in the given currency.
func (a *Account) Balance(code currency.Code) (money.Money, error) {
	switch code {
	case currency.PEN:
		return a.BalancePEN, nil
	case currency.USD:
		return a.BalanceUSD, nil
	default:
		return money.Money{}, domain.ErrInvalidCurrency
	}
}

func (a *Account) setBalance(m money.Money) {
	if m.Currency() == currency.PEN {
		a.BalancePEN = m
	} else {
		a.BalanceUSD = m
	}
	a.UpdatedAt = time.Now().UTC()
}

// CanDebit checks that amount is positive and covered by the balance in its currency.
func (a *Account) CanDebit(amount money.Money) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	bal, err := a.Balance(amount.Currency())
	if err != nil {
		return err
	}
	short, err := bal.LessThan(amount)
	if err != nil {
		return err
	}
	if short {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// Credit adds a positive amount to the balance in its currency.
func (a *Account) Credit(amount money.Money) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	bal, err := a.Balance(amount.Currency())
	if err != nil {
		return err
	}
	next, err := bal.Add(amount)
	if err != nil {
		return overflowAsInvalid(err)
	}
	a.setBalance(next)
	return nil
}

// Debit removes a positive amount from the balance in its currency.
// It fails with ErrInsufficientFunds, leaving the account untouched, when
// the balance does not cover the amount.
func (a *Account) Debit(amount money.Money) error {
	if err := a.CanDebit(amount); err != nil {
		return err
	}
	bal, _ := a.Balance(amount.Currency())
	next, err := bal.Subtract(amount)
	if err != nil {
		return overflowAsInvalid(err)
	}
	a.setBalance(next)
	return nil
}

// overflowAsInvalid reports a balance that would leave the int64 range as
// an invalid amount.
func overflowAsInvalid(err error) error {
	if errors.Is(err, money.ErrAmountExceedsMaxSafeInt) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	return err
}

// TransferTo debits a and credits dest with the same amount.
func (a *Account) TransferTo(dest *Account, amount money.Money) error {
	if dest == nil {
		return domain.ErrReceiverNotFound
	}
	if a.ID == dest.ID || a.Username == dest.Username {
		return domain.ErrSameAccount
	}
	if err := a.CanDebit(amount); err != nil {
		return err
	}
	// a failed credit must leave both accounts unchanged
	if err := dest.Credit(amount); err != nil {
		return err
	}
	return a.Debit(amount)
}

// Exchange debits amount and credits converted on the same account.
func (a *Account) Exchange(amount, converted money.Money) error {
	if amount.Currency() == converted.Currency() {
		return domain.ErrSameCurrency
	}
	if err := a.CanDebit(amount); err != nil {
		return err
	}
	if err := a.Credit(converted); err != nil {
		return err
	}
	return a.Debit(amount)
}
