package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/anyulbade/tbc-checkout/internal/dto"
	"github.com/anyulbade/tbc-checkout/internal/service"
)

type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrorResponse(err))
		return
	}

	resp, err := h.svc.CreatePayment(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	approval, _ := resp.ApprovalURL()
	c.JSON(http.StatusCreated, dto.CreatePaymentResponse{
		PayID:       resp.PayID,
		Status:      resp.Status,
		ApprovalURL: approval,
		Payment:     resp,
	})
}

func (h *PaymentHandler) Get(c *gin.Context) {
	details, err := h.svc.GetPayment(c.Request.Context(), c.Param("payId"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// List looks up the comma separated pay ids in the ids query parameter.
func (h *PaymentHandler) List(c *gin.Context) {
	var ids []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	results, err := h.svc.GetPayments(c.Request.Context(), ids)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentListResponse{
		Data:  results,
		Total: len(results),
	})
}

func (h *PaymentHandler) Cancel(c *gin.Context) {
	var req dto.CancelPaymentRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, bindErrorResponse(err))
			return
		}
	}

	payID := c.Param("payId")
	ok, err := h.svc.CancelPayment(c.Request.Context(), payID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.CancelPaymentResponse{
		PayID:     payID,
		Cancelled: ok,
	})
}

func (h *PaymentHandler) Complete(c *gin.Context) {
	var req dto.CompletePreAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrorResponse(err))
		return
	}

	resp, err := h.svc.CompletePreAuth(c.Request.Context(), c.Param("payId"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// bindErrorResponse lists one entry per failed field when err comes from
// binding validation. Malformed JSON has no field entries.
func bindErrorResponse(err error) dto.ErrorListResponse {
	resp := dto.ErrorListResponse{Error: "validation failed: " + err.Error()}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		resp.Error = "validation failed"
		for _, fe := range fieldErrs {
			msg := "failed on " + fe.Tag()
			if fe.Param() != "" {
				msg += "=" + fe.Param()
			}
			resp.Errors = append(resp.Errors, dto.ValidationError{
				Field:   fe.Namespace(),
				Message: msg,
			})
		}
	}
	return resp
}
