package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/tbc-checkout/internal/dto"
	"github.com/anyulbade/tbc-checkout/internal/service"
)

type AuthHandler struct {
	svc *service.PaymentService
}

func NewAuthHandler(svc *service.PaymentService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Refresh replaces the gateway token. Callers use it after a request fails
// with a credentials error.
func (h *AuthHandler) Refresh(c *gin.Context) {
	auth, err := h.svc.RefreshToken(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenStatusResponse{
		TokenType: auth.TokenType,
		ExpiresAt: auth.ExpiresAt(),
		Expired:   auth.Expired(time.Now()),
	})
}
