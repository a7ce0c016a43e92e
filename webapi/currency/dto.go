package currency

// SelectInput is the body of POST /currency/select/.
type SelectInput struct {
	Key string `json:"key" validate:"required"`
}
