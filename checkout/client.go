// Package checkout is a client for the TBC Bank checkout (tpay) gateway.
//
// A Client authenticates with client credentials when it is created and
// sends the resulting bearer token with every call. Tokens are never
// refreshed automatically: when a call fails with ErrAuthorization the
// caller re-authenticates with ReAuthenticate and retries.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Credentials struct {
	ClientID     string
	ClientSecret string
	APIKey       string
}

type Client struct {
	creds     Credentials
	endpoints Endpoints
	tr        *transport
	now       func() time.Time

	baseHTTP *http.Client
	timeout  time.Duration

	mu   sync.RWMutex
	auth Authentication
}

// New creates a client and authenticates it against the gateway.
func New(ctx context.Context, creds Credentials, opts ...Option) (*Client, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" || creds.APIKey == "" {
		return nil, errors.New("client id, client secret and api key are required")
	}

	c := &Client{
		creds:     creds,
		endpoints: NewEndpoints(DefaultBaseURL),
		tr: &transport{
			apiKey: creds.APIKey,
			log:    log.Logger.With().Str("component", "tbc-checkout").Logger(),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tr.http = c.httpClient()

	if err := c.ReAuthenticate(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// Authenticate requests a new access token. The client's stored token is
// left untouched; use ReAuthenticate to replace it.
func (c *Client) Authenticate(ctx context.Context) (*Authentication, error) {
	form := url.Values{
		"client_id":     {c.creds.ClientID},
		"client_secret": {c.creds.ClientSecret},
	}

	var raw json.RawMessage
	err := c.tr.do(ctx, request{
		op:          "authenticate",
		method:      http.MethodPost,
		url:         c.endpoints.AccessToken(),
		contentType: contentTypeForm,
		body:        []byte(form.Encode()),
		classify:    classifyToken,
	}, &raw)
	if err != nil {
		return nil, err
	}

	var auth Authentication
	if err := json.Unmarshal(raw, &auth); err != nil {
		return nil, &Error{Kind: KindDecode, Op: "authenticate", StatusCode: http.StatusOK, Body: raw, Err: err}
	}
	if auth.AccessToken == "" {
		return nil, &Error{Kind: KindDecode, Op: "authenticate", StatusCode: http.StatusOK, Body: raw, Err: errors.New("empty access token")}
	}
	auth.ObtainedAt = c.now()
	return &auth, nil
}

// ReAuthenticate obtains a new token and replaces the stored one. On
// failure the previous token is kept.
func (c *Client) ReAuthenticate(ctx context.Context) error {
	auth, err := c.Authenticate(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.auth = *auth
	c.mu.Unlock()

	c.tr.log.Info().
		Int("expires_in", auth.ExpiresIn).
		Time("expires_at", auth.ExpiresAt()).
		Msg("gateway token obtained")
	return nil
}

// Authentication returns a copy of the current token state.
func (c *Client) Authentication() Authentication {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth.AccessToken
}

// CreatePayment starts a hosted checkout for amount. Only the optional
// fields set through opts are sent.
func (c *Client) CreatePayment(ctx context.Context, amount PaymentAmount, returnURL string, opts ...PaymentOption) (*PaymentResponse, error) {
	payload, err := NewWebPaymentPayload(amount, returnURL, opts...)
	if err != nil {
		return nil, err
	}

	if !amount.Balanced() {
		c.tr.log.Warn().
			Str("total", amount.Total.String()).
			Str("subtotal", amount.Subtotal.String()).
			Str("tax", amount.Tax.String()).
			Str("shipping", amount.Shipping.String()).
			Msg("payment total does not match its breakdown")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payment payload: %w", err)
	}

	var resp PaymentResponse
	err = c.tr.do(ctx, request{
		op:          "create_payment",
		method:      http.MethodPost,
		url:         c.endpoints.CreatePayment(),
		token:       c.token(),
		contentType: contentTypeJSON,
		body:        body,
		classify:    classifyAuthorized,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetPayment(ctx context.Context, payID string) (*PaymentDetails, error) {
	if payID == "" {
		return nil, errors.New("pay id is required")
	}

	var details PaymentDetails
	err := c.tr.do(ctx, request{
		op:       "get_payment",
		method:   http.MethodGet,
		url:      c.endpoints.Payment(payID),
		token:    c.token(),
		classify: classifyAuthorized,
	}, &details)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// CancelPayment cancels payID. A nil amount cancels the whole payment and
// sends no body; otherwise amount is cancelled partially.
func (c *Client) CancelPayment(ctx context.Context, payID string, amount *Money) (bool, error) {
	if payID == "" {
		return false, errors.New("pay id is required")
	}

	r := request{
		op:       "cancel_payment",
		method:   http.MethodPost,
		url:      c.endpoints.CancelPayment(payID),
		token:    c.token(),
		classify: classifyUnhandled400,
	}
	if amount != nil {
		if amount.IsNegative() || amount.IsZero() {
			return false, fmt.Errorf("cancel amount must be positive, got %s", amount)
		}
		body, err := json.Marshal(amountBody{Amount: *amount})
		if err != nil {
			return false, fmt.Errorf("encode cancel body: %w", err)
		}
		r.contentType = contentTypeJSON
		r.body = body
	}

	if err := c.tr.do(ctx, r, nil); err != nil {
		return false, err
	}
	return true, nil
}

// CompletePreAuth confirms amount of a pre-authorized payment. Confirming
// less than the held amount returns the difference to the customer.
func (c *Client) CompletePreAuth(ctx context.Context, payID string, amount Money) (*CompletePreAuthResponse, error) {
	if payID == "" {
		return nil, errors.New("pay id is required")
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, fmt.Errorf("completion amount must be positive, got %s", amount)
	}

	body, err := json.Marshal(amountBody{Amount: amount})
	if err != nil {
		return nil, fmt.Errorf("encode completion body: %w", err)
	}

	var resp CompletePreAuthResponse
	err = c.tr.do(ctx, request{
		op:          "complete_preauth",
		method:      http.MethodPost,
		url:         c.endpoints.CompletePreAuth(payID),
		token:       c.token(),
		contentType: contentTypeJSON,
		body:        body,
		classify:    classifyUnhandled400,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExecuteRecurring charges a saved card. Not supported yet.
func (c *Client) ExecuteRecurring(ctx context.Context, recID string, amount PaymentAmount) (*PaymentResponse, error) {
	return nil, &Error{Kind: KindUnimplemented, Op: "execute_recurring"}
}

// DeleteRecurring removes a saved card. Not supported yet.
func (c *Client) DeleteRecurring(ctx context.Context, recID string) error {
	return &Error{Kind: KindUnimplemented, Op: "delete_recurring"}
}
