package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type orderFixture struct {
	store *memStore
	svc   usecase.OrderUsecase
}

func newOrderFixture() *orderFixture {
	store := newMemStore()

	return &orderFixture{
		store: store,
		svc: NewOrderService(
			&fakeTxManager{store: store},
			&fakeOrderRepo{store: store},
			discardLogger(),
		),
	}
}

// seedProduct inserts an approved, visible product ready for purchase.
func (f *orderFixture) seedProduct(price string, stock int) *entity.Product {
	product := &entity.Product{
		ID:        uuid.New(),
		VendorID:  uuid.New(),
		Title:     "Test Product",
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		Status:    entity.ApprovalApproved,
		IsVisible: true,
		CreatedAt: time.Now(),
	}
	f.store.products[product.ID] = product

	return product
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.ErrorCode())
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct("20.00", 5)
	customerID := uuid.New()

	order, err := f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: customerID,
		Items: []usecase.OrderItemInput{
			{ProductID: product.ID.String(), Qty: 3},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, customerID, order.CustomerID)
	assert.Equal(t, entity.OrderPlaced, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("60.00")))

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, product.VendorID, item.VendorID)
	assert.Equal(t, 3, item.Qty)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, item.LineTotal.Equal(decimal.RequireFromString("60.00")))

	// Stock is decremented and the order persisted.
	assert.Equal(t, 2, f.store.products[product.ID].Stock)
	require.Len(t, f.store.orders, 1)

	// Exactly one commission, split 10/90 against the line total.
	require.Len(t, f.store.commissions, 1)
	for _, commission := range f.store.commissions {
		assert.Equal(t, order.ID, commission.OrderID)
		assert.Equal(t, item.ID, commission.OrderItemID)
		assert.Equal(t, product.VendorID, commission.VendorID)
		assert.True(t, commission.CommissionAmount.Equal(decimal.RequireFromString("6.00")))
		assert.True(t, commission.VendorEarning.Equal(decimal.RequireFromString("54.00")))
		assert.True(t, commission.CommissionAmount.Add(commission.VendorEarning).Equal(item.LineTotal))
	}
}

func TestPlaceOrder_OddAmountSplit(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct("19.99", 10)

	order, err := f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		Items: []usecase.OrderItemInput{
			{ProductID: product.ID.String(), Qty: 3},
		},
	})
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("59.97")))

	require.Len(t, f.store.commissions, 1)
	for _, commission := range f.store.commissions {
		assert.True(t, commission.CommissionAmount.Equal(decimal.RequireFromString("6.00")))
		assert.True(t, commission.VendorEarning.Equal(decimal.RequireFromString("53.97")))
	}
}

func TestPlaceOrder_MultipleItems(t *testing.T) {
	f := newOrderFixture()
	first := f.seedProduct("10.00", 5)
	second := f.seedProduct("2.50", 8)

	order, err := f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		Items: []usecase.OrderItemInput{
			{ProductID: first.ID.String(), Qty: 2},
			{ProductID: second.ID.String(), Qty: 4},
		},
	})
	require.NoError(t, err)

	// 2×10.00 + 4×2.50 = 30.00
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, 3, f.store.products[first.ID].Stock)
	assert.Equal(t, 4, f.store.products[second.ID].Stock)
	assert.Len(t, f.store.commissions, 2)
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		Items:      []usecase.OrderItemInput{},
	})
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		Items: []usecase.OrderItemInput{
			{ProductID: uuid.NewString(), Qty: 1},
		},
	})
	assertCode(t, err, "PRODUCT_NOT_FOUND")
	assert.Empty(t, f.store.orders)
}

func TestPlaceOrder_ProductUnavailable(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct("10.00", 5)
	product.IsVisible = false

	_, err := f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		Items: []usecase.OrderItemInput{
			{ProductID: product.ID.String(), Qty: 1},
		},
	})
	assertCode(t, err, "PRODUCT_UNAVAILABLE")
	assert.Equal(t, 5, f.store.products[product.ID].Stock)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct("20.00", 5)

	_, err := f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		Items: []usecase.OrderItemInput{
			{ProductID: product.ID.String(), Qty: 6},
		},
	})
	assertCode(t, err, "INSUFFICIENT_STOCK")

	// Nothing was written.
	assert.Equal(t, 5, f.store.products[product.ID].Stock)
	assert.Empty(t, f.store.orders)
	assert.Empty(t, f.store.commissions)
}

func TestPlaceOrder_RollsBackEarlierItems(t *testing.T) {
	f := newOrderFixture()
	first := f.seedProduct("10.00", 5)
	second := f.seedProduct("10.00", 1)

	_, err := f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		Items: []usecase.OrderItemInput{
			{ProductID: first.ID.String(), Qty: 2},
			{ProductID: second.ID.String(), Qty: 3},
		},
	})
	assertCode(t, err, "INSUFFICIENT_STOCK")

	// The first item's decrement is rolled back with the rest.
	assert.Equal(t, 5, f.store.products[first.ID].Stock)
	assert.Equal(t, 1, f.store.products[second.ID].Stock)
	assert.Empty(t, f.store.orders)
	assert.Empty(t, f.store.commissions)
}

func TestPlaceOrder_InvalidInput(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct("10.00", 5)

	_, err := f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		Items: []usecase.OrderItemInput{
			{ProductID: "not-a-uuid", Qty: 1},
		},
	})
	assertCode(t, err, "VALIDATION_FAILED")

	_, err = f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		Items: []usecase.OrderItemInput{
			{ProductID: product.ID.String(), Qty: 0},
		},
	})
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestGetOrdersForCustomer_NewestFirst(t *testing.T) {
	f := newOrderFixture()
	product := f.seedProduct("5.00", 100)
	customerID := uuid.New()

	first, err := f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: customerID,
		Items:      []usecase.OrderItemInput{{ProductID: product.ID.String(), Qty: 1}},
	})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	second, err := f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: customerID,
		Items:      []usecase.OrderItemInput{{ProductID: product.ID.String(), Qty: 2}},
	})
	require.NoError(t, err)

	// Another customer's order must not leak in.
	_, err = f.svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		Items:      []usecase.OrderItemInput{{ProductID: product.ID.String(), Qty: 1}},
	})
	require.NoError(t, err)

	orders, err := f.svc.GetOrdersForCustomer(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

// lockingTxManager serializes transactions with a mutex, standing in for the
// row locks a real database takes, so concurrent orders can share one store.
type lockingTxManager struct {
	mu    sync.Mutex
	inner repository.TransactionManager
}

func (m *lockingTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.inner.Execute(ctx, fn)
}

func TestPlaceOrder_NoOversellUnderConcurrency(t *testing.T) {
	store := newMemStore()
	svc := NewOrderService(
		&lockingTxManager{inner: &fakeTxManager{store: store}},
		&fakeOrderRepo{store: store},
		discardLogger(),
	)

	const stock = 7
	product := &entity.Product{
		ID:        uuid.New(),
		VendorID:  uuid.New(),
		Title:     "Contended Product",
		Price:     decimal.RequireFromString("10.00"),
		Stock:     stock,
		Status:    entity.ApprovalApproved,
		IsVisible: true,
		CreatedAt: time.Now(),
	}
	store.products[product.ID] = product

	const callers = 20
	results := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
				CustomerID: uuid.New(),
				Items:      []usecase.OrderItemInput{{ProductID: product.ID.String(), Qty: 1}},
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		assertCode(t, err, "INSUFFICIENT_STOCK")
	}

	// Exactly enough orders succeed to exhaust stock, never more.
	assert.Equal(t, stock, successes)
	assert.Equal(t, 0, store.products[product.ID].Stock)
	assert.Len(t, store.orders, stock)
	assert.Len(t, store.commissions, stock)
}

// exhaustedStockProductRepo reads stock as available but fails the guarded
// decrement, as a lost update between the read and the write would.
type exhaustedStockProductRepo struct {
	repository.ProductRepository
}

func (r *exhaustedStockProductRepo) DecrementStock(context.Context, uuid.UUID, int) error {
	return repository.ErrStockExhausted
}

type exhaustedStockFactory struct {
	*fakeFactory
}

func (f *exhaustedStockFactory) NewProductRepository() repository.ProductRepository {
	return &exhaustedStockProductRepo{ProductRepository: f.fakeFactory.NewProductRepository()}
}

type exhaustedStockTxManager struct {
	store *memStore
}

func (m *exhaustedStockTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	snap := m.store.snapshot()
	if err := fn(&exhaustedStockFactory{fakeFactory: &fakeFactory{store: m.store}}); err != nil {
		m.store.restore(snap)

		return err
	}

	return nil
}

func TestPlaceOrder_GuardedDecrementFailure(t *testing.T) {
	store := newMemStore()
	svc := NewOrderService(
		&exhaustedStockTxManager{store: store},
		&fakeOrderRepo{store: store},
		discardLogger(),
	)

	product := &entity.Product{
		ID:        uuid.New(),
		VendorID:  uuid.New(),
		Title:     "Racy Product",
		Price:     decimal.RequireFromString("10.00"),
		Stock:     5,
		Status:    entity.ApprovalApproved,
		IsVisible: true,
		CreatedAt: time.Now(),
	}
	store.products[product.ID] = product

	_, err := svc.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		Items:      []usecase.OrderItemInput{{ProductID: product.ID.String(), Qty: 2}},
	})
	assertCode(t, err, "INSUFFICIENT_STOCK")

	assert.Equal(t, 5, store.products[product.ID].Stock)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.commissions)
}
