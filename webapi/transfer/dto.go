package transfer

// TransferInput is the body of POST /transfer/transfer/.
type TransferInput struct {
	Receiver string  `json:"receiver" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,oneof=USD PEN"`
}

// ConvertInput is the body of POST /transfer/convert/.
type ConvertInput struct {
	FromCurrency string  `json:"from_currency" validate:"required,oneof=USD PEN"`
	ToCurrency   string  `json:"to_currency" validate:"required,oneof=USD PEN"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
}

// BalanceChangeInput is the body of POST /transfer/user/balance/change/.
type BalanceChangeInput struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Currency  string  `json:"currency" validate:"required,oneof=USD PEN"`
	Operation string  `json:"operation" validate:"required,oneof=deposit withdraw"`
}
