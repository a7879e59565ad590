package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/services"
)

type ReserveFundHandler struct {
	reserveFundService *services.ReserveFundService
}

func NewReserveFundHandler(reserveFundService *services.ReserveFundService) *ReserveFundHandler {
	return &ReserveFundHandler{reserveFundService: reserveFundService}
}

type ConfigureReserveFundRequest struct {
	Goal           float64 `json:"goal" binding:"required"`
	DurationMonths int     `json:"duration_months" binding:"required"`
	StartDate      string  `json:"start_date" binding:"required"`
}

func (h *ReserveFundHandler) Configure(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	var req ConfigureReserveFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}

	cfg := &models.ReserveFundConfig{
		BuildingID:     uint(buildingID),
		Goal:           req.Goal,
		DurationMonths: req.DurationMonths,
		StartDate:      startDate,
	}
	if err := h.reserveFundService.Configure(c.Request.Context(), cfg); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cfg)
}

type CollectReserveFundRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

// Collect charges one month's reserve contribution. Collection is
// blocked while apartments carry unpaid obligations from prior months.
func (h *ReserveFundHandler) Collect(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	var req CollectReserveFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	outstanding, err := h.reserveFundService.OutstandingAsOfPriorMonthEnd(
		c.Request.Context(), uint(buildingID), req.Year, req.Month)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.reserveFundService.CollectForMonth(c.Request.Context(), services.CollectRequest{
		BuildingID:             uint(buildingID),
		Year:                   req.Year,
		Month:                  req.Month,
		OutstandingObligations: outstanding,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReserveFundHandler) Progress(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	progress, err := h.reserveFundService.Progress(c.Request.Context(), uint(buildingID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
