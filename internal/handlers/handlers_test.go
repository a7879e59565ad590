package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sgavril/condoflow-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_Index(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/health", NewHealthHandler().Index)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrInvalidAmount, http.StatusBadRequest},
		{services.ErrUnknownDistributionType, http.StatusBadRequest},
		{services.ErrAlreadyDistributed, http.StatusConflict},
		{services.ErrMonthAlreadyClosed, http.StatusConflict},
		{services.ErrCarryForwardConflict, http.StatusConflict},
		{services.ErrMillsInvariant, http.StatusUnprocessableEntity},
		{services.ErrCollectionBlocked, http.StatusUnprocessableEntity},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}

func TestRespondError_WrappedErrorKeepsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, fmt.Errorf("close month: %w", services.ErrMonthAlreadyClosed))
	assert.Equal(t, http.StatusConflict, w.Code)
}
