package ledger

import (
	"context"
	"fmt"

	"github.com/bianca-ap01/coin-swap/pkg/domain/history"
	"github.com/bianca-ap01/coin-swap/pkg/money"
	"github.com/bianca-ap01/coin-swap/pkg/repository"
	"github.com/shopspring/decimal"
)

// Kind names a ledger operation.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindTransfer Kind = "transfer"
	KindConvert  Kind = "convert"
)

// Outcome describes a balance change that has been applied inside the
// running transaction.
type Outcome struct {
	Kind         Kind
	Username     string
	Counterparty string
	Amount       money.Money
	// Converted and Rate are set for conversions only.
	Converted   money.Money
	Rate        decimal.Decimal
	Description string
	// Entries holds one history line per affected user.
	Entries []history.Entry
}

// AfterApply runs inside the operation's transaction once the new balances
// are written. Returning an error rolls the whole operation back.
type AfterApply func(ctx context.Context, uow repository.UnitOfWork, out *Outcome) error

func depositDescription(username string, amount money.Money) string {
	return fmt.Sprintf("%s depositó %s %s", username, amount.StringShort(), amount.Currency())
}

func withdrawDescription(username string, amount money.Money) string {
	return fmt.Sprintf("%s retiró %s %s", username, amount.StringShort(), amount.Currency())
}

func transferSentDescription(sender, receiver string, amount money.Money) string {
	return fmt.Sprintf("%s transfirió %s %s a %s", sender, amount.StringShort(), amount.Currency(), receiver)
}

func transferReceivedDescription(sender, receiver string, amount money.Money) string {
	return fmt.Sprintf("%s recibió %s %s de %s", receiver, amount.StringShort(), amount.Currency(), sender)
}

func convertDescription(username string, amount, converted money.Money, rate decimal.Decimal) string {
	return fmt.Sprintf("%s convirtió %s %s a %s %s (tasa %s)",
		username,
		amount.StringFixed(), amount.Currency(),
		converted.StringFixed(), converted.Currency(),
		rate.StringFixed(4),
	)
}
