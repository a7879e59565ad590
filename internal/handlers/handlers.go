package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sgavril/condoflow-api/internal/jobs"
	"github.com/sgavril/condoflow-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health         *HealthHandler
	Building       *BuildingHandler
	Expense        *ExpenseHandler
	Payment        *PaymentHandler
	Balance        *BalanceHandler
	MonthlyBalance *MonthlyBalanceHandler
	ReserveFund    *ReserveFundHandler
	Job            *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, worker *jobs.Worker) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(),
		Building:       NewBuildingHandler(svcs.Building, svcs.Dashboard),
		Expense:        NewExpenseHandler(svcs.Distribution, svcs.Heating),
		Payment:        NewPaymentHandler(svcs.Payment),
		Balance:        NewBalanceHandler(svcs.Balance, svcs.Ledger),
		MonthlyBalance: NewMonthlyBalanceHandler(svcs.Closing),
		ReserveFund:    NewReserveFundHandler(svcs.ReserveFund),
		Job:            NewJobHandler(worker),
	}
}

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrZeroAmount),
		errors.Is(err, services.ErrUnknownDistributionType),
		errors.Is(err, services.ErrUnknownEntryType):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrAlreadyDistributed),
		errors.Is(err, services.ErrMonthAlreadyClosed),
		errors.Is(err, services.ErrCarryForwardConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrMillsInvariant),
		errors.Is(err, services.ErrOutsideCollectionWindow),
		errors.Is(err, services.ErrCollectionBlocked):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
