package checkout

import (
	"encoding/json"
	"time"
)

// Authentication is the result of the client credentials grant.
type Authentication struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`

	ObtainedAt time.Time `json:"-"`
}

func (a Authentication) ExpiresAt() time.Time {
	return a.ObtainedAt.Add(time.Duration(a.ExpiresIn) * time.Second)
}

// Expired reports whether the token lifetime has passed at now. A token
// without a known issue time is never considered expired.
func (a Authentication) Expired(now time.Time) bool {
	if a.ObtainedAt.IsZero() {
		return false
	}
	return !now.Before(a.ExpiresAt())
}

type PaymentAmount struct {
	Currency PaymentCurrency `json:"currency" validate:"required,known"`
	Total    Money           `json:"total" validate:"gt=0"`
	Subtotal Money           `json:"subtotal" validate:"gte=0"`
	Tax      Money           `json:"tax" validate:"gte=0"`
	Shipping Money           `json:"shipping" validate:"gte=0"`
}

func (a PaymentAmount) Validate() error {
	return validate.Struct(a)
}

// Balanced reports whether total equals subtotal+tax+shipping. An amount
// with an all-zero breakdown is treated as balanced.
func (a PaymentAmount) Balanced() bool {
	breakdown := a.Subtotal.Add(a.Tax).Add(a.Shipping)
	return breakdown.IsZero() || breakdown.Equal(a.Total)
}

type InstallmentProduct struct {
	Price    Money   `json:"Price" validate:"gt=0"`
	Quantity int     `json:"Quantity" validate:"min=1"`
	Name     *string `json:"Name,omitempty" validate:"omitempty,max=255"`
}

type PaymentLink struct {
	URI    string `json:"uri"`
	Method string `json:"method"`
	Rel    string `json:"rel"`
}

type PaymentResponse struct {
	PayID            string        `json:"payId"`
	Status           string        `json:"status"`
	Amount           Money         `json:"amount"`
	Links            []PaymentLink `json:"links"`
	TransactionID    *string       `json:"transactionId,omitempty"`
	PreAuth          bool          `json:"preAuth"`
	RecID            *string       `json:"recId,omitempty"`
	HTTPStatusCode   int           `json:"httpStatusCode"`
	DeveloperMessage *string       `json:"developerMessage,omitempty"`
	UserMessage      *string       `json:"userMessage,omitempty"`
}

// ApprovalURL returns the hosted checkout page the customer should be sent
// to, if the gateway supplied one.
func (r *PaymentResponse) ApprovalURL() (string, bool) {
	for _, l := range r.Links {
		if l.Rel == "approval_url" {
			return l.URI, true
		}
	}
	return "", false
}

type RecurringCard struct {
	RecID      string `json:"recId"`
	CardMask   string `json:"cardMask"`
	ExpiryDate string `json:"expiryDate"`
}

type PaymentDetails struct {
	PayID            string          `json:"payId"`
	Status           string          `json:"status"`
	Currency         string          `json:"currency"`
	Amount           Money           `json:"amount"`
	ConfirmedAmount  Money           `json:"confirmedAmount"`
	ReturnedAmount   Money           `json:"returnedAmount"`
	Links            json.RawMessage `json:"links,omitempty"`
	TransactionID    string          `json:"transactionId"`
	PaymentMethod    int             `json:"paymentMethod"`
	RecurringCard    *RecurringCard  `json:"recurringCard,omitempty"`
	PreAuth          bool            `json:"preAuth"`
	HTTPStatusCode   int             `json:"httpStatusCode"`
	DeveloperMessage *string         `json:"developerMessage,omitempty"`
	UserMessage      *string         `json:"userMessage,omitempty"`
	IsBnpl           bool            `json:"isBnpl"`
}

// Method returns the payment channel code as a PaymentMethod. Codes the
// client does not know about report false.
func (d *PaymentDetails) Method() (PaymentMethod, bool) {
	m := PaymentMethod(d.PaymentMethod)
	return m, m.Valid()
}

type CompletePreAuthResponse struct {
	Status           string  `json:"status"`
	Amount           Money   `json:"amount"`
	ConfirmedAmount  Money   `json:"confirmedAmount"`
	HTTPStatusCode   int     `json:"httpStatusCode"`
	DeveloperMessage *string `json:"developerMessage,omitempty"`
	UserMessage      *string `json:"userMessage,omitempty"`
}

type amountBody struct {
	Amount Money `json:"amount"`
}
