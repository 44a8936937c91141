package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/tbc-checkout/checkout"
	"github.com/anyulbade/tbc-checkout/internal/middleware"
	"github.com/anyulbade/tbc-checkout/internal/service"
)

// newBankGateway serves a minimal stand-in for the TBC gateway. Pay ids
// starting with "missing" are unknown, "stale" ids answer 401 and "held"
// ids answer 400 on cancel.
func newBankGateway(t *testing.T) *httptest.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	bank := gin.New()
	bank.POST("/tpay/access-token", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"access_token": "tok", "expires_in": 3600, "token_type": "Bearer"})
	})
	bank.POST("/tpay/payments", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"payId":          "abc123",
			"status":         "Created",
			"amount":         10,
			"links":          []gin.H{{"uri": "https://ecom.example/checkout/abc123", "method": "REDIRECT", "rel": "approval_url"}},
			"preAuth":        false,
			"httpStatusCode": 200,
		})
	})
	bank.GET("/tpay/payments/:payId", func(c *gin.Context) {
		id := c.Param("payId")
		switch {
		case strings.HasPrefix(id, "missing"):
			c.JSON(http.StatusNotFound, gin.H{"title": "not found"})
		case strings.HasPrefix(id, "stale"):
			c.Status(http.StatusUnauthorized)
		default:
			c.JSON(http.StatusOK, gin.H{"payId": id, "status": "Succeeded", "currency": "GEL", "amount": 10, "paymentMethod": 5})
		}
	})
	bank.POST("/tpay/payments/:payId/cancel", func(c *gin.Context) {
		if strings.HasPrefix(c.Param("payId"), "held") {
			c.JSON(http.StatusBadRequest, gin.H{"title": "bad request"})
			return
		}
		c.Status(http.StatusOK)
	})
	bank.POST("/payments/:payId/completion", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Succeeded", "amount": 10, "confirmedAmount": 7.5, "httpStatusCode": 200})
	})

	srv := httptest.NewServer(bank)
	t.Cleanup(srv.Close)
	return srv
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	bank := newBankGateway(t)
	client, err := checkout.New(context.Background(),
		checkout.Credentials{ClientID: "merchant", ClientSecret: "secret", APIKey: "key"},
		checkout.WithBaseURL(bank.URL),
		checkout.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)

	svc := service.NewPaymentService(client)
	paymentHandler := NewPaymentHandler(svc)
	authHandler := NewAuthHandler(svc)
	healthHandler := NewHealthHandler(svc)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/health", healthHandler.Health)
	SetupSwagger(router)

	api := router.Group("/api/v1")
	api.POST("/payments", paymentHandler.Create)
	api.GET("/payments", paymentHandler.List)
	api.GET("/payments/:payId", paymentHandler.Get)
	api.POST("/payments/:payId/cancel", paymentHandler.Cancel)
	api.POST("/payments/:payId/completion", paymentHandler.Complete)
	api.POST("/auth/refresh", authHandler.Refresh)

	return router
}
