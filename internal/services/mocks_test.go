package services

import (
	"context"
	"time"

	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
)

// Hand-rolled repository mocks: embed the interface for the methods a
// test does not care about, override the rest with func fields.

type mockBuildingRepo struct {
	repository.BuildingRepository
	mockCreate   func(ctx context.Context, building *models.Building) error
	mockFindByID func(ctx context.Context, id uint) (*models.Building, error)
}

func (m *mockBuildingRepo) Create(ctx context.Context, building *models.Building) error {
	return m.mockCreate(ctx, building)
}

func (m *mockBuildingRepo) FindByID(ctx context.Context, id uint) (*models.Building, error) {
	return m.mockFindByID(ctx, id)
}

type mockApartmentRepo struct {
	repository.ApartmentRepository
	mockFindByID       func(ctx context.Context, id uint) (*models.Apartment, error)
	mockFindByBuilding func(ctx context.Context, buildingID uint) ([]models.Apartment, error)
	mockFindAll        func(ctx context.Context) ([]models.Apartment, error)
	mockUpdateMills    func(ctx context.Context, buildingID uint, updates []repository.MillsUpdate) error
}

func (m *mockApartmentRepo) FindByID(ctx context.Context, id uint) (*models.Apartment, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockApartmentRepo) FindByBuilding(ctx context.Context, buildingID uint) ([]models.Apartment, error) {
	return m.mockFindByBuilding(ctx, buildingID)
}

func (m *mockApartmentRepo) FindAll(ctx context.Context) ([]models.Apartment, error) {
	return m.mockFindAll(ctx)
}

func (m *mockApartmentRepo) UpdateMills(ctx context.Context, buildingID uint, updates []repository.MillsUpdate) error {
	return m.mockUpdateMills(ctx, buildingID, updates)
}

type mockExpenseRepo struct {
	repository.ExpenseRepository
	mockCreate                 func(ctx context.Context, expense *models.Expense) error
	mockFindByID               func(ctx context.Context, id uint) (*models.Expense, error)
	mockSumIssuedByCategory    func(ctx context.Context, buildingID uint, from, to time.Time) (map[models.ExpenseCategory]float64, error)
	mockExistsIssuedInCategory func(ctx context.Context, buildingID uint, category models.ExpenseCategory, from, to time.Time) (bool, error)
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	return m.mockCreate(ctx, expense)
}

func (m *mockExpenseRepo) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockExpenseRepo) SumIssuedByCategory(ctx context.Context, buildingID uint, from, to time.Time) (map[models.ExpenseCategory]float64, error) {
	return m.mockSumIssuedByCategory(ctx, buildingID, from, to)
}

func (m *mockExpenseRepo) ExistsIssuedInCategory(ctx context.Context, buildingID uint, category models.ExpenseCategory, from, to time.Time) (bool, error) {
	return m.mockExistsIssuedInCategory(ctx, buildingID, category, from, to)
}

type mockLedgerRepo struct {
	repository.LedgerRepository
	mockAppend                 func(ctx context.Context, entry *models.Transaction) error
	mockAppendDistribution     func(ctx context.Context, expenseID uint, entries []models.Transaction) error
	mockAppendPayment          func(ctx context.Context, payment *models.Payment, entry *models.Transaction) error
	mockFindByApartment        func(ctx context.Context, apartmentID uint) ([]models.Transaction, error)
	mockFindByApartmentUpTo    func(ctx context.Context, apartmentID uint, upTo time.Time) ([]models.Transaction, error)
	mockFindByApartmentBetween func(ctx context.Context, apartmentID uint, from, to time.Time) ([]models.Transaction, error)
}

func (m *mockLedgerRepo) Append(ctx context.Context, entry *models.Transaction) error {
	return m.mockAppend(ctx, entry)
}

func (m *mockLedgerRepo) AppendDistribution(ctx context.Context, expenseID uint, entries []models.Transaction) error {
	return m.mockAppendDistribution(ctx, expenseID, entries)
}

func (m *mockLedgerRepo) AppendPayment(ctx context.Context, payment *models.Payment, entry *models.Transaction) error {
	return m.mockAppendPayment(ctx, payment, entry)
}

func (m *mockLedgerRepo) FindByApartment(ctx context.Context, apartmentID uint) ([]models.Transaction, error) {
	return m.mockFindByApartment(ctx, apartmentID)
}

func (m *mockLedgerRepo) FindByApartmentUpTo(ctx context.Context, apartmentID uint, upTo time.Time) ([]models.Transaction, error) {
	return m.mockFindByApartmentUpTo(ctx, apartmentID, upTo)
}

func (m *mockLedgerRepo) FindByApartmentBetween(ctx context.Context, apartmentID uint, from, to time.Time) ([]models.Transaction, error) {
	return m.mockFindByApartmentBetween(ctx, apartmentID, from, to)
}

type mockPaymentRepo struct {
	repository.PaymentRepository
	mockFindByApartment      func(ctx context.Context, apartmentID uint) ([]models.Payment, error)
	mockSumByBuildingBetween func(ctx context.Context, buildingID uint, from, to time.Time) (float64, error)
}

func (m *mockPaymentRepo) FindByApartment(ctx context.Context, apartmentID uint) ([]models.Payment, error) {
	return m.mockFindByApartment(ctx, apartmentID)
}

func (m *mockPaymentRepo) SumByBuildingBetween(ctx context.Context, buildingID uint, from, to time.Time) (float64, error) {
	return m.mockSumByBuildingBetween(ctx, buildingID, from, to)
}

type mockMonthlyBalanceRepo struct {
	repository.MonthlyBalanceRepository
	mockFind         func(ctx context.Context, buildingID uint, year, month int) (*models.MonthlyBalance, error)
	mockFindOrCreate func(ctx context.Context, buildingID uint, year, month int) (*models.MonthlyBalance, error)
	mockCloseAndSeed func(ctx context.Context, closing *models.MonthlyBalance, carry float64) error
	mockSumReserve   func(ctx context.Context, buildingID uint) (float64, error)
}

func (m *mockMonthlyBalanceRepo) Find(ctx context.Context, buildingID uint, year, month int) (*models.MonthlyBalance, error) {
	return m.mockFind(ctx, buildingID, year, month)
}

func (m *mockMonthlyBalanceRepo) FindOrCreate(ctx context.Context, buildingID uint, year, month int) (*models.MonthlyBalance, error) {
	return m.mockFindOrCreate(ctx, buildingID, year, month)
}

func (m *mockMonthlyBalanceRepo) CloseAndSeed(ctx context.Context, closing *models.MonthlyBalance, carry float64) error {
	return m.mockCloseAndSeed(ctx, closing, carry)
}

func (m *mockMonthlyBalanceRepo) SumReserve(ctx context.Context, buildingID uint) (float64, error) {
	return m.mockSumReserve(ctx, buildingID)
}

type mockReserveFundRepo struct {
	repository.ReserveFundRepository
	mockUpsert         func(ctx context.Context, cfg *models.ReserveFundConfig) error
	mockFindByBuilding func(ctx context.Context, buildingID uint) (*models.ReserveFundConfig, error)
}

func (m *mockReserveFundRepo) Upsert(ctx context.Context, cfg *models.ReserveFundConfig) error {
	return m.mockUpsert(ctx, cfg)
}

func (m *mockReserveFundRepo) FindByBuilding(ctx context.Context, buildingID uint) (*models.ReserveFundConfig, error) {
	return m.mockFindByBuilding(ctx, buildingID)
}

type mockMeterRepo struct {
	repository.MeterRepository
	mockUpsert               func(ctx context.Context, reading *models.MeterReading) error
	mockFindByBuildingPeriod func(ctx context.Context, buildingID uint, year, month int) ([]models.MeterReading, error)
}

func (m *mockMeterRepo) Upsert(ctx context.Context, reading *models.MeterReading) error {
	return m.mockUpsert(ctx, reading)
}

func (m *mockMeterRepo) FindByBuildingPeriod(ctx context.Context, buildingID uint, year, month int) ([]models.MeterReading, error) {
	return m.mockFindByBuildingPeriod(ctx, buildingID, year, month)
}
