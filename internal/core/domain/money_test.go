package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/srgjo27/parking_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"50", 5000},
		{"12.5", 1250},
		{"12.05", 1205},
		{".75", 75},
		{"-3.10", -310},
	}
	for _, tc := range tests {
		m, err := domain.ParseMoney(tc.in, "USD")
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, m.Amount, tc.in)
		assert.Equal(t, "usd", m.Currency)
	}

	_, err := domain.ParseMoney("1.234", "usd")
	assert.Error(t, err)
	_, err = domain.ParseMoney("abc", "usd")
	assert.Error(t, err)
	_, err = domain.ParseMoney("", "usd")
	assert.Error(t, err)
	_, err = domain.ParseMoney("1.-5", "usd")
	assert.Error(t, err)
}

func TestParseMoney_Range(t *testing.T) {
	for _, in := range []string{"200000000000000000", "92233720368547758.08", "-200000000000000000"} {
		_, err := domain.ParseMoney(in, "usd")
		assert.Error(t, err, in)
	}

	m, err := domain.ParseMoney("92233720368547758.07", "usd")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), m.Amount)
}

func TestMoneyFormat(t *testing.T) {
	assert.Equal(t, "49.00", domain.NewMoney(4900, "usd").FormatMajor())
	assert.Equal(t, "-0.05", domain.NewMoney(-5, "usd").FormatMajor())
	assert.Equal(t, "1.50 USD", domain.NewMoney(150, "usd").String())

	b, err := json.Marshal(domain.NewMoney(5000, "usd"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":5000,"currency":"usd","display":"50.00"}`, string(b))
}
