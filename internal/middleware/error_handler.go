package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/tbc-checkout/checkout"
	"github.com/anyulbade/tbc-checkout/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MapError translates service and gateway errors into the response sent to
// API callers. Gateway bodies are not forwarded.
func MapError(err error) (int, ErrorResponse) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ve.Error()}
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: fieldErrs.Error()}
	}

	var gwErr *checkout.Error
	if errors.As(err, &gwErr) {
		switch gwErr.Kind {
		case checkout.KindUnimplemented:
			return http.StatusNotImplemented, ErrorResponse{Error: "gateway response not supported", Details: gwErr.Error()}
		case checkout.KindTransport:
			var netErr net.Error
			if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
				return http.StatusGatewayTimeout, ErrorResponse{Error: "gateway timeout"}
			}
			return http.StatusBadGateway, ErrorResponse{Error: "gateway unreachable"}
		case checkout.KindAuthentication, checkout.KindAuthorization:
			return http.StatusBadGateway, ErrorResponse{
				Error:   "gateway rejected credentials",
				Details: "token refresh required",
			}
		case checkout.KindRequest:
			switch {
			case gwErr.StatusCode == http.StatusNotFound:
				return http.StatusNotFound, ErrorResponse{Error: "payment not found"}
			case gwErr.StatusCode >= 400 && gwErr.StatusCode < 500:
				return http.StatusUnprocessableEntity, ErrorResponse{Error: "gateway rejected request", Details: gwErr.Error()}
			}
			return http.StatusBadGateway, ErrorResponse{Error: "gateway error", Details: gwErr.Error()}
		case checkout.KindDecode:
			return http.StatusBadGateway, ErrorResponse{Error: "unexpected gateway response"}
		}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
