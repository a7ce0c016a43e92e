package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/money"
)

// Operation is the direction of a balance change.
type Operation string

const (
	OperationDeposit  Operation = "deposit"
	OperationWithdraw Operation = "withdraw"
)

// TransferCommand moves Amount of Currency to Receiver.
type TransferCommand struct {
	Receiver string
	Amount   float64
	Currency string
}

// ConvertCommand exchanges Amount of FromCurrency into ToCurrency.
type ConvertCommand struct {
	FromCurrency string
	ToCurrency   string
	Amount       float64
}

// BalanceChangeCommand deposits or withdraws Amount of Currency.
type BalanceChangeCommand struct {
	Amount    float64
	Currency  string
	Operation string
}

func parseCurrency(raw string) (currency.Code, error) {
	code, err := currency.Parse(raw)
	if err != nil {
		return "", domain.ErrInvalidCurrency
	}
	return code, nil
}

// parseAmount turns a request amount into Money, rejecting non-positive
// values and values finer than the currency's minor unit.
func parseAmount(amount float64, code currency.Code) (money.Money, error) {
	if amount <= 0 {
		return money.Money{}, domain.ErrInvalidAmount
	}
	m, err := money.FromFloat(amount, code)
	if err != nil {
		if errors.Is(err, money.ErrInvalidCurrency) {
			return money.Money{}, domain.ErrInvalidCurrency
		}
		return money.Money{}, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	return m, nil
}

func parseOperation(raw string) (Operation, error) {
	switch op := Operation(strings.ToLower(strings.TrimSpace(raw))); op {
	case OperationDeposit, OperationWithdraw:
		return op, nil
	default:
		return "", domain.ErrInvalidOperation
	}
}

func (c TransferCommand) validate() (money.Money, error) {
	if strings.TrimSpace(c.Receiver) == "" {
		return money.Money{}, fmt.Errorf("%w: receiver is required", domain.ErrValidation)
	}
	code, err := parseCurrency(c.Currency)
	if err != nil {
		return money.Money{}, err
	}
	return parseAmount(c.Amount, code)
}

func (c ConvertCommand) validate() (from, to currency.Code, amount money.Money, err error) {
	if from, err = parseCurrency(c.FromCurrency); err != nil {
		return
	}
	if to, err = parseCurrency(c.ToCurrency); err != nil {
		return
	}
	amount, err = parseAmount(c.Amount, from)
	return
}

func (c BalanceChangeCommand) validate() (Operation, money.Money, error) {
	op, err := parseOperation(c.Operation)
	if err != nil {
		return "", money.Money{}, err
	}
	code, err := parseCurrency(c.Currency)
	if err != nil {
		return "", money.Money{}, err
	}
	amount, err := parseAmount(c.Amount, code)
	if err != nil {
		return "", money.Money{}, err
	}
	return op, amount, nil
}
