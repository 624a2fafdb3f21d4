package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reconcile/internal/config"
	"github.com/cleared-dev/reconcile/internal/model"
)

func on(date string) model.RawTransaction {
	return model.RawTransaction{Date: date, PayeeName: "x"}
}

func TestMonthFilter(t *testing.T) {
	tests := []struct {
		spec   string
		accept []string
		reject []string
	}{
		{
			spec:   "",
			accept: []string{"1999-01-01", "2021-01-31", "2100-12-31"},
		},
		{
			spec:   "2021-01",
			accept: []string{"2021-01-01", "2021-01-31"},
			reject: []string{"2021-02-01", "2020-12-31"},
		},
		{
			spec:   "2021-01-15",
			accept: []string{"2021-01-01", "2021-01-31"},
			reject: []string{"2021-02-01"},
		},
		{
			spec:   "2021-01,2021-03",
			accept: []string{"2021-01-01", "2021-02-14", "2021-03-31"},
			reject: []string{"2020-12-31", "2021-04-01"},
		},
		{
			spec:   "2021-06,",
			accept: []string{"2021-06-01", "2030-01-01"},
			reject: []string{"2021-05-31"},
		},
		{
			spec:   ",2021-06",
			accept: []string{"1990-01-01", "2021-06-30"},
			reject: []string{"2021-07-01"},
		},
		{
			spec:   "2021-12",
			accept: []string{"2021-12-31"},
			reject: []string{"2022-01-01"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			f, err := MonthFilter(tt.spec)
			require.NoError(t, err)
			for _, d := range tt.accept {
				assert.True(t, f(on(d)), "%s should be accepted", d)
			}
			for _, d := range tt.reject {
				assert.False(t, f(on(d)), "%s should be rejected", d)
			}
		})
	}
}

func TestMonthFilter_RejectsBadDates(t *testing.T) {
	f, err := MonthFilter("2021-01")
	require.NoError(t, err)
	assert.False(t, f(on("31.01.2021")))
}

func TestMonthFilter_Invalid(t *testing.T) {
	for _, spec := range []string{",", " , ", "January", "2021-13", "2021-01,soon"} {
		t.Run(spec, func(t *testing.T) {
			_, err := MonthFilter(spec)
			require.Error(t, err)
			var fe *InvalidFilterError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, spec, fe.Spec)
		})
	}
}

func TestAccountTransform(t *testing.T) {
	in := model.RawTransaction{Date: "2021-01-01", PayeeName: "Card", Amount: 500, Notes: "n"}

	assert.Equal(t, in, AccountTransform(nil)(in))

	out := AccountTransform(&config.Transform{Negate: true, Payee: "Mortgage Bank", Transfer: "House"})(in)
	assert.Equal(t, int64(-500), out.Amount)
	assert.Equal(t, "Mortgage Bank", out.PayeeName)
	assert.Equal(t, "n", out.Notes)
	assert.Equal(t, "House", out.Transfer)
	assert.Equal(t, int64(500), in.Amount)

	out = AccountTransform(&config.Transform{Notes: "imported"})(in)
	assert.Equal(t, "imported", out.Notes)
	assert.Equal(t, int64(500), out.Amount)
}
