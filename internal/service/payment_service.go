package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/tbc-checkout/checkout"
	"github.com/anyulbade/tbc-checkout/internal/dto"
)

const (
	MaxBatchLookup    = 20
	batchLookupWorker = 4
)

// Gateway is the subset of *checkout.Client the service depends on.
type Gateway interface {
	CreatePayment(ctx context.Context, amount checkout.PaymentAmount, returnURL string, opts ...checkout.PaymentOption) (*checkout.PaymentResponse, error)
	GetPayment(ctx context.Context, payID string) (*checkout.PaymentDetails, error)
	CancelPayment(ctx context.Context, payID string, amount *checkout.Money) (bool, error)
	CompletePreAuth(ctx context.Context, payID string, amount checkout.Money) (*checkout.CompletePreAuthResponse, error)
	ReAuthenticate(ctx context.Context) error
	Authentication() checkout.Authentication
}

type PaymentService struct {
	gw Gateway
}

func NewPaymentService(gw Gateway) *PaymentService {
	return &PaymentService{gw: gw}
}

// ValidationError reports a request field the gateway call could not be
// built from.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (s *PaymentService) CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*checkout.PaymentResponse, error) {
	amount, err := toPaymentAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	opts, err := paymentOptions(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.gw.CreatePayment(ctx, amount, req.ReturnURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	log.Info().
		Str("pay_id", resp.PayID).
		Str("status", resp.Status).
		Str("total", amount.Total.String()).
		Str("currency", string(amount.Currency)).
		Msg("payment created")

	return resp, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, payID string) (*checkout.PaymentDetails, error) {
	details, err := s.gw.GetPayment(ctx, payID)
	if err != nil {
		return nil, fmt.Errorf("get payment %s: %w", payID, err)
	}
	return details, nil
}

// GetPayments looks up several payments concurrently. The first failure
// cancels the remaining lookups.
func (s *PaymentService) GetPayments(ctx context.Context, payIDs []string) ([]*checkout.PaymentDetails, error) {
	if len(payIDs) == 0 {
		return nil, &ValidationError{Field: "ids", Message: "at least one pay id is required"}
	}
	if len(payIDs) > MaxBatchLookup {
		return nil, &ValidationError{Field: "ids", Message: fmt.Sprintf("at most %d pay ids per lookup", MaxBatchLookup)}
	}

	results := make([]*checkout.PaymentDetails, len(payIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchLookupWorker)
	for i, id := range payIDs {
		i, id := i, id
		g.Go(func() error {
			details, err := s.gw.GetPayment(gctx, id)
			if err != nil {
				return fmt.Errorf("get payment %s: %w", id, err)
			}
			results[i] = details
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *PaymentService) CancelPayment(ctx context.Context, payID string, req *dto.CancelPaymentRequest) (bool, error) {
	var amount *checkout.Money
	if req != nil && req.Amount != nil {
		m := checkout.NewMoney(*req.Amount)
		amount = &m
	}

	ok, err := s.gw.CancelPayment(ctx, payID, amount)
	if err != nil {
		return false, fmt.Errorf("cancel payment %s: %w", payID, err)
	}

	event := log.Info().Str("pay_id", payID)
	if amount != nil {
		event = event.Str("amount", amount.String())
	}
	event.Msg("payment cancelled")

	return ok, nil
}

func (s *PaymentService) CompletePreAuth(ctx context.Context, payID string, req *dto.CompletePreAuthRequest) (*checkout.CompletePreAuthResponse, error) {
	resp, err := s.gw.CompletePreAuth(ctx, payID, checkout.NewMoney(req.Amount))
	if err != nil {
		return nil, fmt.Errorf("complete pre-auth %s: %w", payID, err)
	}

	log.Info().
		Str("pay_id", payID).
		Str("status", resp.Status).
		Str("confirmed_amount", resp.ConfirmedAmount.String()).
		Msg("pre-authorized payment completed")

	return resp, nil
}

func (s *PaymentService) RefreshToken(ctx context.Context) (checkout.Authentication, error) {
	if err := s.gw.ReAuthenticate(ctx); err != nil {
		return checkout.Authentication{}, fmt.Errorf("refresh token: %w", err)
	}
	return s.gw.Authentication(), nil
}

func (s *PaymentService) TokenStatus() checkout.Authentication {
	return s.gw.Authentication()
}

func toPaymentAmount(req dto.PaymentAmountRequest) (checkout.PaymentAmount, error) {
	currency, err := checkout.ParsePaymentCurrency(req.Currency)
	if err != nil {
		return checkout.PaymentAmount{}, &ValidationError{Field: "amount.currency", Message: err.Error()}
	}

	return checkout.PaymentAmount{
		Currency: currency,
		Total:    checkout.NewMoney(req.Total),
		Subtotal: checkout.NewMoney(req.Subtotal),
		Tax:      checkout.NewMoney(req.Tax),
		Shipping: checkout.NewMoney(req.Shipping),
	}, nil
}

func paymentOptions(req *dto.CreatePaymentRequest) ([]checkout.PaymentOption, error) {
	var opts []checkout.PaymentOption

	if req.Extra != nil {
		opts = append(opts, checkout.WithExtra(*req.Extra))
	}
	if req.ExpirationMinutes != nil {
		opts = append(opts, checkout.WithExpirationMinutes(*req.ExpirationMinutes))
	}
	if len(req.Methods) > 0 {
		methods := make([]checkout.PaymentMethod, 0, len(req.Methods))
		for _, name := range req.Methods {
			m, err := checkout.ParsePaymentMethod(name)
			if err != nil {
				return nil, &ValidationError{Field: "methods", Message: err.Error()}
			}
			methods = append(methods, m)
		}
		opts = append(opts, checkout.WithMethods(methods...))
	}
	if len(req.InstallmentProducts) > 0 {
		products := make([]checkout.InstallmentProduct, len(req.InstallmentProducts))
		for i, p := range req.InstallmentProducts {
			products[i] = checkout.InstallmentProduct{
				Price:    checkout.NewMoney(p.Price),
				Quantity: p.Quantity,
				Name:     p.Name,
			}
		}
		opts = append(opts, checkout.WithInstallmentProducts(products...))
	}
	if req.CallbackURL != nil {
		opts = append(opts, checkout.WithCallbackURL(*req.CallbackURL))
	}
	if req.PreAuth != nil {
		opts = append(opts, checkout.WithPreAuth(*req.PreAuth))
	}
	if req.Language != nil {
		lang, err := checkout.ParsePageLanguage(strings.TrimSpace(*req.Language))
		if err != nil {
			return nil, &ValidationError{Field: "language", Message: err.Error()}
		}
		opts = append(opts, checkout.WithLanguage(lang))
	}
	if req.MerchantPaymentID != nil {
		opts = append(opts, checkout.WithMerchantPaymentID(*req.MerchantPaymentID))
	}
	if req.SkipInfoMessage != nil {
		opts = append(opts, checkout.WithSkipInfoMessage(*req.SkipInfoMessage))
	}
	if req.SaveCard != nil {
		opts = append(opts, checkout.WithSaveCard(*req.SaveCard))
	}
	if req.SaveCardToDate != nil {
		opts = append(opts, checkout.WithSaveCardToDate(*req.SaveCardToDate))
	}

	return opts, nil
}
