package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/tbc-checkout/internal/service"
)

type HealthHandler struct {
	svc *service.PaymentService
}

func NewHealthHandler(svc *service.PaymentService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Health reports whether the service holds a usable gateway token. It does
// not call the gateway.
func (h *HealthHandler) Health(c *gin.Context) {
	auth := h.svc.TokenStatus()

	tokenStatus := "valid"
	switch {
	case auth.AccessToken == "":
		tokenStatus = "missing"
	case auth.Expired(time.Now()):
		tokenStatus = "expired"
	}

	if tokenStatus != "valid" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"token":  tokenStatus,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"token":      tokenStatus,
		"expires_at": auth.ExpiresAt(),
	})
}
