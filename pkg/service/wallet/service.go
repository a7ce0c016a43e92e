// Package wallet is the entry point for authenticated wallet operations.
// It validates requests, runs them through the ledger with history
// recording attached and announces committed operations on the event bus.
package wallet

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/domain/events"
	historydomain "github.com/bianca-ap01/coin-swap/pkg/domain/history"
	"github.com/bianca-ap01/coin-swap/pkg/eventbus"
	"github.com/bianca-ap01/coin-swap/pkg/history"
	"github.com/bianca-ap01/coin-swap/pkg/ledger"
	"github.com/bianca-ap01/coin-swap/pkg/provider"
	"github.com/bianca-ap01/coin-swap/pkg/repository"
	"github.com/bianca-ap01/coin-swap/pkg/utils"
	"github.com/google/uuid"
)

// Balance is a user's current holdings in major units.
type Balance struct {
	Username   string  `json:"username"`
	BalancePEN float64 `json:"balance_pen"`
	BalanceUSD float64 `json:"balance_usd"`
}

// Service runs wallet operations on behalf of an authenticated user.
type Service struct {
	uow      repository.UnitOfWork
	ledger   *ledger.Ledger
	recorder *history.Recorder
	bus      eventbus.Bus
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Service. bus may be nil, in which case no events are emitted.
func New(
	uow repository.UnitOfWork,
	rates provider.RateSource,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		ledger:   ledger.New(uow, rates, logger),
		recorder: history.NewRecorder(uow, logger),
		bus:      bus,
		logger:   logger,
		now:      time.Now,
	}
}

// Transfer sends funds from principal to cmd.Receiver and returns the
// sender-side description.
func (s *Service) Transfer(ctx context.Context, principal string, cmd TransferCommand) (string, error) {
	cmd.Receiver = utils.NormalizeUsername(cmd.Receiver)
	logger := s.logger.With("principal", principal, "receiver", cmd.Receiver)
	amount, err := cmd.validate()
	if err != nil {
		logger.Warn("Transfer rejected", "error", err)
		return "", err
	}
	out, err := s.ledger.Transfer(ctx, principal, cmd.Receiver, amount, s.recordHistory)
	if err != nil {
		return "", err
	}
	s.publish(ctx, out)
	return out.Description, nil
}

// Convert exchanges funds between principal's own currency balances.
func (s *Service) Convert(ctx context.Context, principal string, cmd ConvertCommand) (string, error) {
	logger := s.logger.With("principal", principal, "from", cmd.FromCurrency, "to", cmd.ToCurrency)
	from, to, amount, err := cmd.validate()
	if err != nil {
		logger.Warn("Convert rejected", "error", err)
		return "", err
	}
	out, err := s.ledger.Convert(ctx, principal, from, to, amount, s.recordHistory)
	if err != nil {
		return "", err
	}
	s.publish(ctx, out)
	return out.Description, nil
}

// ChangeBalance deposits or withdraws funds on principal's account.
func (s *Service) ChangeBalance(ctx context.Context, principal string, cmd BalanceChangeCommand) (string, error) {
	logger := s.logger.With("principal", principal, "operation", cmd.Operation)
	op, amount, err := cmd.validate()
	if err != nil {
		logger.Warn("Balance change rejected", "error", err)
		return "", err
	}
	var out *ledger.Outcome
	switch op {
	case OperationDeposit:
		out, err = s.ledger.Deposit(ctx, principal, amount, s.recordHistory)
	case OperationWithdraw:
		out, err = s.ledger.Withdraw(ctx, principal, amount, s.recordHistory)
	}
	if err != nil {
		return "", err
	}
	s.publish(ctx, out)
	return out.Description, nil
}

// Balance returns principal's current balances.
func (s *Service) Balance(ctx context.Context, principal string) (*Balance, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	acc, err := accounts.GetByUsername(ctx, principal)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &Balance{
		Username:   acc.Username,
		BalancePEN: acc.BalancePEN.Float64(),
		BalanceUSD: acc.BalanceUSD.Float64(),
	}, nil
}

// History returns principal's transaction records, newest first.
func (s *Service) History(ctx context.Context, principal string) ([]historydomain.Record, error) {
	return s.recorder.ListFor(ctx, principal)
}

func (s *Service) recordHistory(ctx context.Context, uow repository.UnitOfWork, out *ledger.Outcome) error {
	return s.recorder.Append(ctx, uow, out.Entries...)
}

// publish announces a committed operation. Bus failures are logged only.
func (s *Service) publish(ctx context.Context, out *ledger.Outcome) {
	if s.bus == nil {
		return
	}
	evt := events.OperationCompleted{
		ID:           uuid.New(),
		Kind:         string(out.Kind),
		Username:     out.Username,
		Counterparty: out.Counterparty,
		Currency:     out.Amount.Currency().String(),
		Amount:       out.Amount.StringFixed(),
		Description:  out.Description,
		OccurredAt:   s.now().UTC(),
	}
	if err := s.bus.Emit(ctx, evt); err != nil {
		s.logger.Warn("Emit OperationCompleted failed", "kind", out.Kind, "username", out.Username, "error", err)
	}
}
