package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

type transport struct {
	http    *http.Client
	apiKey  string
	log     zerolog.Logger
	metrics *Metrics
}

type request struct {
	op          string
	method      string
	url         string
	token       string
	contentType string
	body        []byte
	classify    func(op string, res *response) error
}

type response struct {
	status int
	body   []byte
}

func (t *transport) do(ctx context.Context, r request, out any) error {
	start := time.Now()
	err := t.roundTrip(ctx, r, out)
	elapsed := time.Since(start)
	t.metrics.observe(r.op, elapsed.Seconds(), err)

	if err != nil {
		t.log.Warn().
			Err(err).
			Str("operation", r.op).
			Str("method", r.method).
			Str("url", r.url).
			Dur("latency", elapsed).
			Msg("gateway call failed")
		return err
	}

	t.log.Debug().
		Str("operation", r.op).
		Str("method", r.method).
		Str("url", r.url).
		Dur("latency", elapsed).
		Msg("gateway call")
	return nil
}

func (t *transport) roundTrip(ctx context.Context, r request, out any) error {
	res, err := t.send(ctx, r)
	if err != nil {
		return err
	}

	if err := r.classify(r.op, res); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return &Error{Kind: KindDecode, Op: r.op, StatusCode: res.status, Body: res.body, Err: err}
	}
	return nil
}

func (t *transport) send(ctx context.Context, r request) (*response, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: r.op, Err: fmt.Errorf("build request: %w", err)}
	}

	req.Header.Set("apikey", t.apiKey)
	req.Header.Set("Accept", contentTypeJSON)
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", r.contentType)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: r.op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	return &response{status: resp.StatusCode, body: b}, nil
}

// classifyToken treats anything but 200 from the token endpoint as an
// authentication failure.
func classifyToken(op string, res *response) error {
	if res.status == http.StatusOK {
		return nil
	}
	return &Error{Kind: KindAuthentication, Op: op, StatusCode: res.status, Body: res.body}
}

func classifyAuthorized(op string, res *response) error {
	switch res.status {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return &Error{Kind: KindAuthorization, Op: op, StatusCode: res.status, Body: res.body}
	default:
		return &Error{Kind: KindRequest, Op: op, StatusCode: res.status, Body: res.body}
	}
}

// classifyUnhandled400 is used by cancel and pre-auth completion, where the
// gateway's 400 semantics are undocumented. The response is surfaced as
// unimplemented rather than guessed at.
func classifyUnhandled400(op string, res *response) error {
	if res.status == http.StatusBadRequest {
		return &Error{
			Kind:       KindUnimplemented,
			Op:         op,
			StatusCode: res.status,
			Body:       res.body,
			Err:        fmt.Errorf("handling of status %d is not implemented", res.status),
		}
	}
	return classifyAuthorized(op, res)
}
