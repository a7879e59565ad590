package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sgavril/condoflow-api/internal/services"
)

type BalanceHandler struct {
	balanceService *services.BalanceService
	ledgerService  *services.LedgerService
}

func NewBalanceHandler(balanceService *services.BalanceService, ledgerService *services.LedgerService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService, ledgerService: ledgerService}
}

// Ledger returns the apartment's full transaction history in replay order.
func (h *BalanceHandler) Ledger(c *gin.Context) {
	apartmentID, err := strconv.ParseUint(c.Param("apartment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid apartment id"})
		return
	}

	entries, err := h.ledgerService.Ledger(c.Request.Context(), uint(apartmentID))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, e.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"transactions": responses})
}

// Balance returns the ledger-derived balance, optionally as of a date.
func (h *BalanceHandler) Balance(c *gin.Context) {
	apartmentID, err := strconv.ParseUint(c.Param("apartment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid apartment id"})
		return
	}

	asOf := time.Now()
	if date := c.Query("date"); date != "" {
		asOf, err = time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		// Include the whole day
		asOf = asOf.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	balance, err := h.balanceService.BalanceAsOf(c.Request.Context(), uint(apartmentID), asOf)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"apartment_id": apartmentID, "balance": balance})
}

// Breakdown returns the apartment's opening balance, monthly charge and
// payment totals, and closing balance.
func (h *BalanceHandler) Breakdown(c *gin.Context) {
	apartmentID, err := strconv.ParseUint(c.Param("apartment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid apartment id"})
		return
	}

	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))
	if month < 1 || month > 12 || year < 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month or year"})
		return
	}

	breakdown, err := h.balanceService.MonthlyBreakdown(c.Request.Context(), uint(apartmentID), year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// Reconcile replays the ledger and compares against the cached balance.
func (h *BalanceHandler) Reconcile(c *gin.Context) {
	apartmentID, err := strconv.ParseUint(c.Param("apartment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid apartment id"})
		return
	}

	result, err := h.balanceService.Reconcile(c.Request.Context(), uint(apartmentID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type AdjustmentRequest struct {
	NewBalance float64 `json:"new_balance"`
	Memo       string  `json:"memo" binding:"required"`
}

// CreateAdjustment pins the apartment's balance via an adjustment entry.
func (h *BalanceHandler) CreateAdjustment(c *gin.Context) {
	apartmentID, err := strconv.ParseUint(c.Param("apartment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid apartment id"})
		return
	}

	var req AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.ledgerService.RecordAdjustment(c.Request.Context(), uint(apartmentID), req.NewBalance, req.Memo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry.ToResponse())
}
