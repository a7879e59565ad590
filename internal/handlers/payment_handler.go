package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sgavril/condoflow-api/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type CreatePaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Date   string  `json:"date"`
	Method string  `json:"method"`
}

func (h *PaymentHandler) Create(c *gin.Context) {
	apartmentID, err := strconv.ParseUint(c.Param("apartment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid apartment id"})
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apply := services.ApplyPaymentRequest{
		Amount: req.Amount,
		Method: req.Method,
	}
	if req.Date != "" {
		apply.Date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
	}

	payment, err := h.paymentService.ApplyPayment(c.Request.Context(), uint(apartmentID), apply)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment.ToResponse())
}

func (h *PaymentHandler) Index(c *gin.Context) {
	apartmentID, err := strconv.ParseUint(c.Param("apartment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid apartment id"})
		return
	}

	payments, err := h.paymentService.History(c.Request.Context(), uint(apartmentID))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"payments": responses})
}
