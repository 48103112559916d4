package commands_test

import (
	"context"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCourierRepository struct {
	mock.Mock
}

func (m *MockCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllEligible(ctx context.Context, maxConcurrent int) ([]*courier.Courier, error) {
	args := m.Called(ctx, maxConcurrent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order, expected ports.OrderPrecondition) error {
	args := m.Called(ctx, aggregate, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllReadyUnassigned(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCapacityLedger struct {
	mock.Mock
}

func (m *MockCapacityLedger) Adjust(ctx context.Context, courierID kernel.UUID, delta int, limit ports.CapacityLimit) (int, error) {
	args := m.Called(ctx, courierID, delta, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockCapacityLedger) Complete(ctx context.Context, courierID kernel.UUID) (int, error) {
	args := m.Called(ctx, courierID)
	return args.Int(0), args.Error(1)
}

type MockEarningRepository struct {
	mock.Mock
}

func (m *MockEarningRepository) Add(ctx context.Context, earning *courier.Earning) error {
	args := m.Called(ctx, earning)
	return args.Error(0)
}

func (m *MockEarningRepository) GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*courier.Earning, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Earning), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyDispatch(ctx context.Context, event ports.DispatchEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockSellerLocationProvider struct {
	mock.Mock
}

func (m *MockSellerLocationProvider) GetSellerLocation(ctx context.Context, sellerID kernel.UUID) (*kernel.Location, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.Location), args.Error(1)
}

type MockDispatchRequester struct {
	mock.Mock
}

func (m *MockDispatchRequester) RequestDispatch(ctx context.Context, orderID kernel.UUID) {
	m.Called(ctx, orderID)
}

// MockUoW satisfies every unit of work shape the handlers ask for.
type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) CapacityLedger() ports.CapacityLedger {
	args := m.Called()
	return args.Get(0).(ports.CapacityLedger)
}

func (m *MockUoW) EarningRepository() ports.EarningRepository {
	args := m.Called()
	return args.Get(0).(ports.EarningRepository)
}

// mockUoWFactory hands out the same MockUoW for every Create call.
type mockUoWFactory struct {
	uow *MockUoW
}

func (f mockUoWFactory) Create() commands.UoW { return f.uow }

type mockDispatchUoWFactory struct {
	uow *MockUoW
}

func (f mockDispatchUoWFactory) Create() commands.DispatchUoW { return f.uow }

type mockOrderUoWFactory struct {
	uow *MockUoW
}

func (f mockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type mockCourierUoWFactory struct {
	uow *MockUoW
}

func (f mockCourierUoWFactory) Create() commands.CourierUoW { return f.uow }

// newMockUoW wires repositories into a MockUoW. Rollback is always allowed
// because handlers defer it unconditionally.
func newMockUoW() (*MockUoW, *MockOrderRepository, *MockCourierRepository, *MockCapacityLedger, *MockEarningRepository) {
	uow := new(MockUoW)
	orders := new(MockOrderRepository)
	couriers := new(MockCourierRepository)
	ledger := new(MockCapacityLedger)
	earnings := new(MockEarningRepository)

	uow.On("OrderRepository").Return(orders).Maybe()
	uow.On("CourierRepository").Return(couriers).Maybe()
	uow.On("CapacityLedger").Return(ledger).Maybe()
	uow.On("EarningRepository").Return(earnings).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()

	return uow, orders, couriers, ledger, earnings
}
