package checkout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethod_WireValues(t *testing.T) {
	cases := []struct {
		method PaymentMethod
		name   string
		wire   string
	}{
		{MethodWebQR, "web_qr", "4"},
		{MethodPanCard, "pan_card", "5"},
		{MethodErtguliPoints, "ertguli_points", "6"},
		{MethodInternetBank, "internet_bank", "7"},
		{MethodInstallment, "installment", "8"},
		{MethodApplePay, "apple_pay", "9"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.method)
			require.NoError(t, err)
			assert.Equal(t, tc.wire, string(b))
			assert.Equal(t, tc.name, tc.method.String())

			parsed, err := ParsePaymentMethod(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.method, parsed)
		})
	}

	t.Run("bad: unknown code", func(t *testing.T) {
		_, err := json.Marshal(PaymentMethod(3))
		assert.Error(t, err)
		assert.Equal(t, "payment_method(3)", PaymentMethod(3).String())
	})

	t.Run("bad: unknown name", func(t *testing.T) {
		_, err := ParsePaymentMethod("cash")
		assert.Error(t, err)
	})
}

func TestPageLanguage_WireValues(t *testing.T) {
	for _, lang := range []PageLanguage{LanguageKA, LanguageEN} {
		b, err := json.Marshal(lang)
		require.NoError(t, err)
		assert.Equal(t, `"`+string(lang)+`"`, string(b))
	}

	parsed, err := ParsePageLanguage("en")
	require.NoError(t, err)
	assert.Equal(t, LanguageEN, parsed)

	_, err = json.Marshal(PageLanguage("FR"))
	assert.Error(t, err)
}

func TestPaymentCurrency_WireValues(t *testing.T) {
	for _, c := range []PaymentCurrency{CurrencyEUR, CurrencyUSD, CurrencyGEL} {
		b, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Equal(t, `"`+string(c)+`"`, string(b))
	}

	parsed, err := ParsePaymentCurrency("gel")
	require.NoError(t, err)
	assert.Equal(t, CurrencyGEL, parsed)

	_, err = ParsePaymentCurrency("JPY")
	assert.Error(t, err)
}

func TestMoney_JSON(t *testing.T) {
	t.Run("happy: bare number", func(t *testing.T) {
		b, err := json.Marshal(amountBody{Amount: MustParseMoney("50.00")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount": 50.0}`, string(b))
	})

	t.Run("happy: number or string input", func(t *testing.T) {
		var fromNumber, fromString Money
		require.NoError(t, json.Unmarshal([]byte(`12.30`), &fromNumber))
		require.NoError(t, json.Unmarshal([]byte(`"12.3"`), &fromString))
		assert.True(t, fromNumber.Equal(fromString))
	})

	t.Run("edge: exact decimal arithmetic", func(t *testing.T) {
		sum := MustParseMoney("0.1").Add(MustParseMoney("0.2"))
		assert.True(t, sum.Equal(MustParseMoney("0.3")))
	})

	t.Run("bad: parse", func(t *testing.T) {
		_, err := ParseMoney("ten")
		assert.Error(t, err)
	})
}
