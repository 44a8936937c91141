package checkout

import (
	"encoding/json"
	"fmt"
	"strings"
)

type PaymentCurrency string

const (
	CurrencyEUR PaymentCurrency = "EUR"
	CurrencyUSD PaymentCurrency = "USD"
	CurrencyGEL PaymentCurrency = "GEL"
)

var currencies = map[PaymentCurrency]struct{}{
	CurrencyEUR: {},
	CurrencyUSD: {},
	CurrencyGEL: {},
}

func ParsePaymentCurrency(s string) (PaymentCurrency, error) {
	c := PaymentCurrency(strings.ToUpper(s))
	if !c.Valid() {
		return "", fmt.Errorf("unknown payment currency %q", s)
	}
	return c, nil
}

func (c PaymentCurrency) Valid() bool {
	_, ok := currencies[c]
	return ok
}

func (c PaymentCurrency) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown payment currency %q", string(c))
	}
	return json.Marshal(string(c))
}

// PaymentMethod is a checkout payment channel. The gateway identifies
// channels by integer code.
type PaymentMethod int

const (
	MethodWebQR         PaymentMethod = 4
	MethodPanCard       PaymentMethod = 5
	MethodErtguliPoints PaymentMethod = 6
	MethodInternetBank  PaymentMethod = 7
	MethodInstallment   PaymentMethod = 8
	MethodApplePay      PaymentMethod = 9
)

var paymentMethodNames = map[PaymentMethod]string{
	MethodWebQR:         "web_qr",
	MethodPanCard:       "pan_card",
	MethodErtguliPoints: "ertguli_points",
	MethodInternetBank:  "internet_bank",
	MethodInstallment:   "installment",
	MethodApplePay:      "apple_pay",
}

func ParsePaymentMethod(name string) (PaymentMethod, error) {
	for m, n := range paymentMethodNames {
		if n == strings.ToLower(name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown payment method %q", name)
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodNames[m]
	return ok
}

func (m PaymentMethod) String() string {
	if n, ok := paymentMethodNames[m]; ok {
		return n
	}
	return fmt.Sprintf("payment_method(%d)", int(m))
}

// MarshalJSON rejects codes outside the table. Decoding is left to the
// default integer handling so that payment details carrying a channel added
// on the gateway side still parse.
func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown payment method code %d", int(m))
	}
	return json.Marshal(int(m))
}

type PageLanguage string

const (
	LanguageKA PageLanguage = "KA"
	LanguageEN PageLanguage = "EN"
)

var pageLanguages = map[PageLanguage]struct{}{
	LanguageKA: {},
	LanguageEN: {},
}

func ParsePageLanguage(s string) (PageLanguage, error) {
	l := PageLanguage(strings.ToUpper(s))
	if !l.Valid() {
		return "", fmt.Errorf("unknown page language %q", s)
	}
	return l, nil
}

func (l PageLanguage) Valid() bool {
	_, ok := pageLanguages[l]
	return ok
}

func (l PageLanguage) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("unknown page language %q", string(l))
	}
	return json.Marshal(string(l))
}
