package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sgavril/condoflow-api/internal/services"
)

type MonthlyBalanceHandler struct {
	closingService *services.ClosingService
}

func NewMonthlyBalanceHandler(closingService *services.ClosingService) *MonthlyBalanceHandler {
	return &MonthlyBalanceHandler{closingService: closingService}
}

func (h *MonthlyBalanceHandler) parsePeriod(c *gin.Context) (uint, int, int, bool) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return 0, 0, 0, false
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return 0, 0, 0, false
	}
	return uint(buildingID), year, month, true
}

func (h *MonthlyBalanceHandler) Show(c *gin.Context) {
	buildingID, year, month, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	mb, err := h.closingService.Get(c.Request.Context(), buildingID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mb.ToResponse())
}

// Close finalizes the month and seeds the next month's opening
// obligation. Closing twice is a conflict, not a no-op.
func (h *MonthlyBalanceHandler) Close(c *gin.Context) {
	buildingID, year, month, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	mb, err := h.closingService.Close(c.Request.Context(), buildingID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mb.ToResponse())
}

func (h *MonthlyBalanceHandler) Index(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	history, err := h.closingService.History(c.Request.Context(), uint(buildingID))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(history))
	for _, mb := range history {
		responses = append(responses, mb.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"monthly_balances": responses})
}
