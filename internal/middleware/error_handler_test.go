package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/tbc-checkout/checkout"
	"github.com/anyulbade/tbc-checkout/internal/service"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &service.ValidationError{Field: "ids", Message: "too many"}, http.StatusBadRequest},
		{"unimplemented", &checkout.Error{Kind: checkout.KindUnimplemented, StatusCode: 400}, http.StatusNotImplemented},
		{"transport", &checkout.Error{Kind: checkout.KindTransport, Err: errors.New("connection refused")}, http.StatusBadGateway},
		{"transport timeout", &checkout.Error{Kind: checkout.KindTransport, Err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"authentication", &checkout.Error{Kind: checkout.KindAuthentication, StatusCode: 500}, http.StatusBadGateway},
		{"authorization", &checkout.Error{Kind: checkout.KindAuthorization, StatusCode: 401}, http.StatusBadGateway},
		{"gateway 404", &checkout.Error{Kind: checkout.KindRequest, StatusCode: 404}, http.StatusNotFound},
		{"gateway 409", &checkout.Error{Kind: checkout.KindRequest, StatusCode: 409}, http.StatusUnprocessableEntity},
		{"gateway 500", &checkout.Error{Kind: checkout.KindRequest, StatusCode: 500}, http.StatusBadGateway},
		{"decode", &checkout.Error{Kind: checkout.KindDecode, StatusCode: 200}, http.StatusBadGateway},
		{"wrapped", fmt.Errorf("get payment x: %w", &checkout.Error{Kind: checkout.KindRequest, StatusCode: 404}), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := MapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), ErrorHandler())
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(&checkout.Error{Kind: checkout.KindAuthorization, StatusCode: 401})
	})
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	t.Run("bad: error is rendered", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/fail", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "token refresh required", resp.Details)
		assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	})

	t.Run("happy: request id is echoed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ok", nil)
		req.Header.Set(HeaderRequestID, "rid-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rid-1", w.Header().Get(HeaderRequestID))
	})
}
