package checkout

import (
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://api.tbcbank.ge"

// Endpoints resolves gateway URLs against a base URL.
type Endpoints struct {
	Base string
}

func NewEndpoints(base string) Endpoints {
	base = strings.TrimRight(base, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return Endpoints{Base: base}
}

func (e Endpoints) AccessToken() string {
	return e.Base + "/tpay/access-token"
}

func (e Endpoints) CreatePayment() string {
	return e.Base + "/tpay/payments"
}

func (e Endpoints) Payment(payID string) string {
	return e.Base + "/tpay/payments/" + url.PathEscape(payID)
}

func (e Endpoints) CancelPayment(payID string) string {
	return e.Payment(payID) + "/cancel"
}

// CompletePreAuth lives outside the /tpay prefix on the gateway.
func (e Endpoints) CompletePreAuth(payID string) string {
	return e.Base + "/payments/" + url.PathEscape(payID) + "/completion"
}

func (e Endpoints) ExecuteRecurring() string {
	return e.Base + "/payments/execution"
}

func (e Endpoints) DeleteRecurring(recID string) string {
	return e.Base + "/tpay/payments/" + url.PathEscape(recID) + "/delete"
}
