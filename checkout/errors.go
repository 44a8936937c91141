package checkout

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindTransport Kind = iota + 1
	KindAuthentication
	KindAuthorization
	KindRequest
	KindUnimplemented
	KindDecode
)

var (
	ErrTransport      = errors.New("transport failure")
	ErrAuthentication = errors.New("authentication failure")
	ErrAuthorization  = errors.New("authorization failure")
	ErrRequest        = errors.New("request failure")
	ErrUnimplemented  = errors.New("operation not implemented")
	ErrDecode         = errors.New("response decode failure")
)

var kindSentinels = map[Kind]error{
	KindTransport:      ErrTransport,
	KindAuthentication: ErrAuthentication,
	KindAuthorization:  ErrAuthorization,
	KindRequest:        ErrRequest,
	KindUnimplemented:  ErrUnimplemented,
	KindDecode:         ErrDecode,
}

func (k Kind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by every gateway call. StatusCode and Body are set
// whenever the gateway produced a response.
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind, so callers can write
// errors.Is(err, checkout.ErrAuthorization).
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// IsKind reports whether err is a gateway error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
