package dto

type PaymentAmountRequest struct {
	Currency string  `json:"currency" binding:"required,oneof=EUR USD GEL"`
	Total    float64 `json:"total" binding:"required,gt=0"`
	Subtotal float64 `json:"subtotal" binding:"gte=0"`
	Tax      float64 `json:"tax" binding:"gte=0"`
	Shipping float64 `json:"shipping" binding:"gte=0"`
}

type InstallmentProductRequest struct {
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Name     *string `json:"name"`
}

type CreatePaymentRequest struct {
	Amount              PaymentAmountRequest        `json:"amount"`
	ReturnURL           string                      `json:"return_url" binding:"required,url"`
	Extra               *string                     `json:"extra"`
	ExpirationMinutes   *int                        `json:"expiration_minutes"`
	Methods             []string                    `json:"methods" binding:"omitempty,dive,oneof=web_qr pan_card ertguli_points internet_bank installment apple_pay"`
	InstallmentProducts []InstallmentProductRequest `json:"installment_products" binding:"omitempty,dive"`
	CallbackURL         *string                     `json:"callback_url"`
	PreAuth             *bool                       `json:"pre_auth"`
	Language            *string                     `json:"language" binding:"omitnil,oneof=KA EN ka en"`
	MerchantPaymentID   *string                     `json:"merchant_payment_id"`
	SkipInfoMessage     *bool                       `json:"skip_info_message"`
	SaveCard            *bool                       `json:"save_card"`
	SaveCardToDate      *string                     `json:"save_card_to_date"`
}

// CancelPaymentRequest may be omitted entirely to cancel the full amount.
type CancelPaymentRequest struct {
	Amount *float64 `json:"amount" binding:"omitnil,gt=0"`
}

type CompletePreAuthRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
