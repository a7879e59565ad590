package services

import (
	"os"
	"testing"

	"github.com/sgavril/condoflow-api/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup("test")
	os.Exit(m.Run())
}
