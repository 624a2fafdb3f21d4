package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditSuissePayee(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"TWINT Payment , Alice, vom 12.3", "Alice"},
		{"TWINT Payment , Alice, Store X", "Alice, Store X"},
		{"TWINT Credit , Bob", "Bob"},
		{"Payment QR-bill , Swisscom AG, Bern", "Swisscom AG"},
		{"Internal Book Transfer , Savings", "Savings"},
		{"Cash withdrawal", "Cash withdrawal"},
		{"ATM withdrawal , Zurich HB", "ATM withdrawal"},
		{"Balance of closing entries , Q4", "Balance of closing entries"},
		{"Debit card point of sale payment CHF , 12.01.2024, Migros", "Migros"},
		{"SEPA payment outgoing , EUR, 100, DE00, Payee Ltd", "Payee Ltd"},
		{"Unknown booking , Someone", "Unknown booking"},
		{"Payment order ,", "Payment order"},
		{"SEPA payment outgoing , EUR", "SEPA payment outgoing"},
		// lead must match with its trailing space
		{"Payment order, Landlord", "Payment order"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, creditSuissePayee(tt.text))
		})
	}
}

func TestFirstPayee(t *testing.T) {
	got, err := firstPayee("", "  ", " Card fee ", "later")
	require.NoError(t, err)
	assert.Equal(t, "Card fee", got)

	_, err = firstPayee("", " ")
	assert.ErrorIs(t, err, errNoPayee)
}
