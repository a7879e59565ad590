package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
	"github.com/sgavril/condoflow-api/internal/services"
)

type BuildingHandler struct {
	buildingService  *services.BuildingService
	dashboardService *services.DashboardService
}

func NewBuildingHandler(buildingService *services.BuildingService, dashboardService *services.DashboardService) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService, dashboardService: dashboardService}
}

type CreateBuildingRequest struct {
	Name              string  `json:"name" binding:"required"`
	Address           string  `json:"address"`
	HeatingFixedShare float64 `json:"heating_fixed_share"`
}

func (h *BuildingHandler) Create(c *gin.Context) {
	var req CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	building := &models.Building{
		Name:              req.Name,
		Address:           req.Address,
		HeatingFixedShare: req.HeatingFixedShare,
	}
	if err := h.buildingService.CreateBuilding(c.Request.Context(), building); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, building.ToResponse())
}

func (h *BuildingHandler) Index(c *gin.Context) {
	buildings, err := h.buildingService.ListBuildings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(buildings))
	for _, b := range buildings {
		responses = append(responses, b.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"buildings": responses})
}

func (h *BuildingHandler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	building, err := h.buildingService.GetBuilding(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, building.ToResponse())
}

type AddApartmentRequest struct {
	Number             string `json:"number" binding:"required"`
	OwnerName          string `json:"owner_name"`
	ParticipationMills int    `json:"participation_mills"`
	HeatingMills       int    `json:"heating_mills"`
	ElevatorMills      int    `json:"elevator_mills"`
}

func (h *BuildingHandler) AddApartment(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	var req AddApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apartment := &models.Apartment{
		BuildingID:         uint(buildingID),
		Number:             req.Number,
		OwnerName:          req.OwnerName,
		ParticipationMills: req.ParticipationMills,
		HeatingMills:       req.HeatingMills,
		ElevatorMills:      req.ElevatorMills,
	}
	if err := h.buildingService.AddApartment(c.Request.Context(), apartment); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, apartment.ToResponse())
}

type ReallocateMillsRequest struct {
	Updates []repository.MillsUpdate `json:"updates" binding:"required"`
}

func (h *BuildingHandler) ReallocateMills(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	var req ReallocateMillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.buildingService.ReallocateMills(c.Request.Context(), uint(buildingID), req.Updates); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "mills reallocated"})
}

func (h *BuildingHandler) Summary(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))
	if month < 1 || month > 12 || year < 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month or year"})
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), uint(buildingID), year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
