package dto

import (
	"time"

	"github.com/anyulbade/tbc-checkout/checkout"
)

type CreatePaymentResponse struct {
	PayID       string                    `json:"pay_id"`
	Status      string                    `json:"status"`
	ApprovalURL string                    `json:"approval_url,omitempty"`
	Payment     *checkout.PaymentResponse `json:"payment"`
}

type CancelPaymentResponse struct {
	PayID     string `json:"pay_id"`
	Cancelled bool   `json:"cancelled"`
}

type PaymentListResponse struct {
	Data  []*checkout.PaymentDetails `json:"data"`
	Total int                        `json:"total"`
}

type TokenStatusResponse struct {
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorListResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}
