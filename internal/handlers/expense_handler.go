package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/services"
)

type ExpenseHandler struct {
	distributionService *services.DistributionService
	heatingService      *services.HeatingService
}

func NewExpenseHandler(distributionService *services.DistributionService, heatingService *services.HeatingService) *ExpenseHandler {
	return &ExpenseHandler{distributionService: distributionService, heatingService: heatingService}
}

type CreateExpenseRequest struct {
	Amount             float64 `json:"amount" binding:"required"`
	Category           string  `json:"category" binding:"required"`
	DistributionType   string  `json:"distribution_type" binding:"required"`
	Description        string  `json:"description"`
	ExpenseDate        string  `json:"expense_date"`
	TargetApartmentIDs []uint  `json:"target_apartment_ids"`
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expenseDate := time.Now()
	if req.ExpenseDate != "" {
		expenseDate, err = time.Parse("2006-01-02", req.ExpenseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expense_date must be YYYY-MM-DD"})
			return
		}
	}

	expense := &models.Expense{
		BuildingID:         uint(buildingID),
		Amount:             req.Amount,
		Category:           models.ExpenseCategory(req.Category),
		DistributionType:   models.DistributionType(req.DistributionType),
		Description:        req.Description,
		ExpenseDate:        expenseDate,
		TargetApartmentIDs: req.TargetApartmentIDs,
	}
	if err := h.distributionService.CreateExpense(c.Request.Context(), expense); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense.ToResponse())
}

func (h *ExpenseHandler) Index(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	from := time.Time{}
	to := time.Now().AddDate(0, 1, 0)
	if date := c.Query("start_date"); date != "" {
		from, err = time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
	}
	if date := c.Query("end_date"); date != "" {
		to, err = time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
	}

	expenses, err := h.distributionService.ListExpenses(c.Request.Context(), uint(buildingID), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, e.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"expenses": responses})
}

// Distribute issues the expense: one charge per apartment, written
// atomically with the issued flag.
func (h *ExpenseHandler) Distribute(c *gin.Context) {
	expenseID, err := strconv.ParseUint(c.Param("expense_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	result, err := h.distributionService.Distribute(c.Request.Context(), uint(expenseID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Shares previews the per-apartment split without writing anything.
func (h *ExpenseHandler) Shares(c *gin.Context) {
	expenseID, err := strconv.ParseUint(c.Param("expense_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	shares, err := h.distributionService.Shares(c.Request.Context(), uint(expenseID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

type DistributeHeatingRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

// DistributeHeating splits a heating expense into its fixed and
// metered-consumption portions for the given period.
func (h *ExpenseHandler) DistributeHeating(c *gin.Context) {
	expenseID, err := strconv.ParseUint(c.Param("expense_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	var req DistributeHeatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	result, err := h.heatingService.DistributeHeating(c.Request.Context(), uint(expenseID), req.Year, req.Month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type MeterReadingRequest struct {
	ApartmentID uint    `json:"apartment_id" binding:"required"`
	Year        int     `json:"year" binding:"required"`
	Month       int     `json:"month" binding:"required"`
	Consumption float64 `json:"consumption"`
}

func (h *ExpenseHandler) RecordMeterReading(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	var req MeterReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reading := &models.MeterReading{
		BuildingID:  uint(buildingID),
		ApartmentID: req.ApartmentID,
		Year:        req.Year,
		Month:       req.Month,
		Consumption: req.Consumption,
	}
	if err := h.heatingService.RecordMeterReading(c.Request.Context(), reading); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reading)
}
