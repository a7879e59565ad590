package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sgavril/condoflow-api/internal/models"
)

// MonthlyBalanceFSM wraps a monthly balance with its lifecycle machine.
// The only transition is open -> closed; closed is terminal.
type MonthlyBalanceFSM struct {
	balance *models.MonthlyBalance
	fsm     *fsm.FSM
}

// NewMonthlyBalanceFSM creates the state machine for a monthly balance
func NewMonthlyBalanceFSM(balance *models.MonthlyBalance) *MonthlyBalanceFSM {
	m := &MonthlyBalanceFSM{
		balance: balance,
	}

	m.fsm = fsm.NewFSM(
		balance.State(),
		fsm.Events{
			// open → closed (terminal, never reopened)
			{Name: "close", Src: []string{models.MonthlyBalanceOpen}, Dst: models.MonthlyBalanceClosed},
		},
		fsm.Callbacks{},
	)

	return m
}

// Close transitions the monthly balance to closed
func (m *MonthlyBalanceFSM) Close(ctx context.Context) error {
	if m.balance.IsClosed {
		return fmt.Errorf("monthly balance %d/%02d is already closed", m.balance.Year, m.balance.Month)
	}

	if err := m.fsm.Event(ctx, "close"); err != nil {
		return fmt.Errorf("failed to close monthly balance: %w", err)
	}

	m.balance.IsClosed = true
	return nil
}

// Current returns the current state
func (m *MonthlyBalanceFSM) Current() string {
	return m.fsm.Current()
}

// Can checks if a transition is possible
func (m *MonthlyBalanceFSM) Can(event string) bool {
	return m.fsm.Can(event)
}
