package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Code
		wantErr bool
	}{
		{name: "usd", raw: "USD", want: USD},
		{name: "pen lowercase", raw: " pen ", want: PEN},
		{name: "eur unsupported", raw: "EUR", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.raw)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedCurrency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSupportedIsACopy(t *testing.T) {
	s := Supported()
	s[0] = "XXX"
	assert.Equal(t, []Code{PEN, USD}, Supported())
}
