// Package ledger applies balance changes to accounts. Every operation runs
// in one transaction that locks the involved accounts, validates, writes the
// new balances and runs the caller's AfterApply hook before committing.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/domain/account"
	"github.com/bianca-ap01/coin-swap/pkg/domain/history"
	"github.com/bianca-ap01/coin-swap/pkg/money"
	"github.com/bianca-ap01/coin-swap/pkg/provider"
	"github.com/bianca-ap01/coin-swap/pkg/repository"
)

// DefaultMaxAttempts bounds how often an operation is re-run after losing
// a version race.
const DefaultMaxAttempts = 3

// Ledger applies deposits, withdrawals, transfers and conversions.
type Ledger struct {
	uow         repository.UnitOfWork
	rates       provider.RateSource
	logger      *slog.Logger
	maxAttempts int
}

// New creates a Ledger. rates is only consulted by Convert.
func New(uow repository.UnitOfWork, rates provider.RateSource, logger *slog.Logger) *Ledger {
	return &Ledger{
		uow:         uow,
		rates:       rates,
		logger:      logger,
		maxAttempts: DefaultMaxAttempts,
	}
}

// Deposit adds amount to username's balance in amount's currency.
func (l *Ledger) Deposit(ctx context.Context, username string, amount money.Money, after AfterApply) (*Outcome, error) {
	logger := l.logger.With("op", KindDeposit, "username", username, "amount", amount.String())
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	out, err := l.run(ctx, logger, after, func(accounts repository.AccountRepository) (*Outcome, error) {
		locked, err := accounts.LockByUsernames(ctx, username)
		if err != nil {
			return nil, err
		}
		acc, ok := locked[username]
		if !ok {
			return nil, domain.ErrAccountNotFound
		}
		if err := acc.Credit(amount); err != nil {
			return nil, err
		}
		if err := accounts.UpdateBalances(ctx, acc); err != nil {
			return nil, err
		}
		desc := depositDescription(username, amount)
		return &Outcome{
			Kind:        KindDeposit,
			Username:    username,
			Amount:      amount,
			Description: desc,
			Entries:     []history.Entry{{Username: username, Description: desc}},
		}, nil
	})
	if err != nil {
		logger.Error("Deposit failed", "error", err)
		return nil, err
	}
	logger.Info("Deposit successful")
	return out, nil
}

// Withdraw removes amount from username's balance in amount's currency.
// It fails with domain.ErrInsufficientFunds when the balance is short.
func (l *Ledger) Withdraw(ctx context.Context, username string, amount money.Money, after AfterApply) (*Outcome, error) {
	logger := l.logger.With("op", KindWithdraw, "username", username, "amount", amount.String())
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	out, err := l.run(ctx, logger, after, func(accounts repository.AccountRepository) (*Outcome, error) {
		locked, err := accounts.LockByUsernames(ctx, username)
		if err != nil {
			return nil, err
		}
		acc, ok := locked[username]
		if !ok {
			return nil, domain.ErrAccountNotFound
		}
		if err := acc.Debit(amount); err != nil {
			return nil, err
		}
		if err := accounts.UpdateBalances(ctx, acc); err != nil {
			return nil, err
		}
		desc := withdrawDescription(username, amount)
		return &Outcome{
			Kind:        KindWithdraw,
			Username:    username,
			Amount:      amount,
			Description: desc,
			Entries:     []history.Entry{{Username: username, Description: desc}},
		}, nil
	})
	if err != nil {
		logger.Error("Withdraw failed", "error", err)
		return nil, err
	}
	logger.Info("Withdraw successful")
	return out, nil
}

// Transfer moves amount from sender to receiver. Both rows are locked in
// ascending username order and both balances commit together.
func (l *Ledger) Transfer(
	ctx context.Context,
	sender, receiver string,
	amount money.Money,
	after AfterApply,
) (*Outcome, error) {
	logger := l.logger.With("op", KindTransfer, "sender", sender, "receiver", receiver, "amount", amount.String())
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if sender == receiver {
		return nil, domain.ErrSameAccount
	}

	out, err := l.run(ctx, logger, after, func(accounts repository.AccountRepository) (*Outcome, error) {
		locked, err := accounts.LockByUsernames(ctx, sender, receiver)
		if err != nil {
			return nil, err
		}
		from, ok := locked[sender]
		if !ok {
			return nil, domain.ErrAccountNotFound
		}
		to, ok := locked[receiver]
		if !ok {
			return nil, domain.ErrReceiverNotFound
		}
		if err := from.TransferTo(to, amount); err != nil {
			return nil, err
		}
		if err := updateInOrder(ctx, accounts, from, to); err != nil {
			return nil, err
		}
		sent := transferSentDescription(sender, receiver, amount)
		return &Outcome{
			Kind:         KindTransfer,
			Username:     sender,
			Counterparty: receiver,
			Amount:       amount,
			Description:  sent,
			Entries: []history.Entry{
				{Username: sender, Description: sent},
				{Username: receiver, Description: transferReceivedDescription(sender, receiver, amount)},
			},
		}, nil
	})
	if err != nil {
		logger.Error("Transfer failed", "error", err)
		return nil, err
	}
	logger.Info("Transfer successful")
	return out, nil
}

// Convert exchanges amount (in from) into to on username's own account at
// the active source's rate, rounded to two decimals.
//
// The rate is fetched before the transaction opens, so no row is locked
// during the network call and a failed lookup leaves balances untouched.
// Funds are checked again under lock.
func (l *Ledger) Convert(
	ctx context.Context,
	username string,
	from, to currency.Code,
	amount money.Money,
	after AfterApply,
) (*Outcome, error) {
	logger := l.logger.With("op", KindConvert, "username", username, "from", from, "to", to, "amount", amount.String())
	if from == to {
		return nil, domain.ErrSameCurrency
	}
	if amount.Currency() != from {
		return nil, domain.ErrInvalidCurrency
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	accounts, err := l.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	acc, err := accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	if err := acc.CanDebit(amount); err != nil {
		return nil, err
	}

	rate, err := l.rates.GetRate(ctx, from, to)
	if err != nil {
		logger.Error("Rate lookup failed", "error", err)
		return nil, err
	}
	converted, err := amount.Convert(rate, to)
	if err != nil {
		if errors.Is(err, money.ErrInvalidRate) {
			return nil, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
		}
		if errors.Is(err, money.ErrAmountExceedsMaxSafeInt) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
		}
		return nil, err
	}
	if !converted.IsPositive() {
		return nil, fmt.Errorf("%w: converted amount rounds to zero", domain.ErrInvalidAmount)
	}
	logger = logger.With("rate", rate.String(), "converted", converted.String())

	out, err := l.run(ctx, logger, after, func(accounts repository.AccountRepository) (*Outcome, error) {
		locked, err := accounts.LockByUsernames(ctx, username)
		if err != nil {
			return nil, err
		}
		acc, ok := locked[username]
		if !ok {
			return nil, domain.ErrAccountNotFound
		}
		if err := acc.Exchange(amount, converted); err != nil {
			return nil, err
		}
		if err := accounts.UpdateBalances(ctx, acc); err != nil {
			return nil, err
		}
		desc := convertDescription(username, amount, converted, rate)
		return &Outcome{
			Kind:        KindConvert,
			Username:    username,
			Amount:      amount,
			Converted:   converted,
			Rate:        rate,
			Description: desc,
			Entries:     []history.Entry{{Username: username, Description: desc}},
		}, nil
	})
	if err != nil {
		logger.Error("Convert failed", "error", err)
		return nil, err
	}
	logger.Info("Convert successful")
	return out, nil
}

// run executes apply and after in one transaction, re-running the whole
// transaction when a version race is lost.
func (l *Ledger) run(
	ctx context.Context,
	logger *slog.Logger,
	after AfterApply,
	apply func(accounts repository.AccountRepository) (*Outcome, error),
) (*Outcome, error) {
	for attempt := 1; ; attempt++ {
		var out *Outcome
		err := l.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			accounts, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			o, err := apply(accounts)
			if err != nil {
				return err
			}
			if after != nil {
				if err := after(ctx, uow, o); err != nil {
					return err
				}
			}
			out = o
			return nil
		})
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, domain.ErrConcurrentUpdate) || attempt >= l.maxAttempts {
			return nil, err
		}
		logger.Warn("Version conflict, retrying", "attempt", attempt)
	}
}

// updateInOrder writes the accounts in ascending username order.
func updateInOrder(ctx context.Context, accounts repository.AccountRepository, a, b *account.Account) error {
	if b.Username < a.Username {
		a, b = b, a
	}
	if err := accounts.UpdateBalances(ctx, a); err != nil {
		return err
	}
	return accounts.UpdateBalances(ctx, b)
}
