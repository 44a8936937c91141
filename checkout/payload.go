package checkout

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if m, ok := field.Interface().(Money); ok {
			return m.Float64()
		}
		return nil
	}, Money{})

	// known accepts enum values present in their wire tables.
	_ = v.RegisterValidation("known", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(interface{ Valid() bool })
		return ok && e.Valid()
	})

	return v
}

// WebPaymentPayload is the create-payment request body. Optional fields are
// serialized only when the caller supplied them.
type WebPaymentPayload struct {
	Amount              PaymentAmount        `json:"amount"`
	ReturnURL           string               `json:"returnurl" validate:"required,url"`
	Extra               *string              `json:"extra,omitempty" validate:"omitnil,max=25,printascii"`
	ExpirationMinutes   *int                 `json:"expiration_minutes,omitempty" validate:"omitnil,gt=0"`
	Methods             []PaymentMethod      `json:"methods,omitempty" validate:"omitempty,dive,known"`
	InstallmentProducts []InstallmentProduct `json:"installmentProducts,omitempty" validate:"omitempty,dive"`
	CallbackURL         *string              `json:"callbackUrl,omitempty" validate:"omitnil,url"`
	PreAuth             *bool                `json:"preAuth,omitempty"`
	Language            *PageLanguage        `json:"language,omitempty" validate:"omitnil,known"`
	MerchantPaymentID   *string              `json:"merchantPaymentId,omitempty" validate:"omitnil,min=1"`
	SkipInfoMessage     *bool                `json:"skipInfoMessage,omitempty"`
	SaveCard            *bool                `json:"saveCard,omitempty"`
	SaveCardToDate      *string              `json:"saveCardToDate,omitempty" validate:"omitnil,len=4,numeric"`
}

type PaymentOption func(*WebPaymentPayload)

// WithExtra sets merchant specific text shown on the account statement.
func WithExtra(extra string) PaymentOption {
	return func(p *WebPaymentPayload) { p.Extra = &extra }
}

func WithExpirationMinutes(minutes int) PaymentOption {
	return func(p *WebPaymentPayload) { p.ExpirationMinutes = &minutes }
}

func WithMethods(methods ...PaymentMethod) PaymentOption {
	return func(p *WebPaymentPayload) { p.Methods = append(p.Methods, methods...) }
}

func WithInstallmentProducts(products ...InstallmentProduct) PaymentOption {
	return func(p *WebPaymentPayload) {
		p.InstallmentProducts = append(p.InstallmentProducts, products...)
	}
}

// WithCallbackURL sets the URL the gateway notifies once the payment reaches
// a final status.
func WithCallbackURL(url string) PaymentOption {
	return func(p *WebPaymentPayload) { p.CallbackURL = &url }
}

func WithPreAuth(preAuth bool) PaymentOption {
	return func(p *WebPaymentPayload) { p.PreAuth = &preAuth }
}

func WithLanguage(lang PageLanguage) PaymentOption {
	return func(p *WebPaymentPayload) { p.Language = &lang }
}

func WithMerchantPaymentID(id string) PaymentOption {
	return func(p *WebPaymentPayload) { p.MerchantPaymentID = &id }
}

func WithSkipInfoMessage(skip bool) PaymentOption {
	return func(p *WebPaymentPayload) { p.SkipInfoMessage = &skip }
}

func WithSaveCard(save bool) PaymentOption {
	return func(p *WebPaymentPayload) { p.SaveCard = &save }
}

// WithSaveCardToDate sets how long a saved card is kept, as MMYY.
func WithSaveCardToDate(mmyy string) PaymentOption {
	return func(p *WebPaymentPayload) { p.SaveCardToDate = &mmyy }
}

func NewWebPaymentPayload(amount PaymentAmount, returnURL string, opts ...PaymentOption) (*WebPaymentPayload, error) {
	p := &WebPaymentPayload{
		Amount:    amount,
		ReturnURL: returnURL,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("invalid payment payload: %w", err)
	}
	return p, nil
}
