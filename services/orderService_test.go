package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/Kariqs/perfume-api/models"
	"github.com/Kariqs/perfume-api/repository"
	"github.com/Kariqs/perfume-api/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testProduct(id uint, name, price10, price35 string) *models.Product {
	return &models.Product{
		ID:        id,
		Name:      name,
		Price10ml: decimal.RequireFromString(price10),
		Price35ml: decimal.RequireFromString(price35),
		IsActive:  true,
	}
}

func validOrderInput(items ...OrderLineInput) PlaceOrderInput {
	return PlaceOrderInput{
		CustomerName: "  Jane Wanjiku ",
		Age:          21,
		School:       "Strathmore",
		Address:      "Hall 4, Room 12",
		Email:        "jane@example.com",
		PhoneNumber:  "0712345678",
		Items:        items,
	}
}

type orderFixture struct {
	products *mockProductRepository
	orders   *mockOrderRepository
	notifier *mockNotifier
	service  *OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		products: &mockProductRepository{},
		orders:   &mockOrderRepository{},
		notifier: &mockNotifier{},
	}
	notifiers := NewNotifiers()
	notifiers.Add("test", f.notifier)
	f.service = NewOrderService(f.products, f.orders, notifiers)
	f.service.newOrderNumber = func() string { return "ORD-TEST0001" }
	return f
}

func (f *orderFixture) assertExpectations(t *testing.T) {
	f.products.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestPlaceOrder_ValidationRejectsBeforeStoreAccess(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *PlaceOrderInput)
		field  string
	}{
		{"missing customer name", func(in *PlaceOrderInput) { in.CustomerName = "   " }, "customer_name"},
		{"zero age", func(in *PlaceOrderInput) { in.Age = 0 }, "age"},
		{"negative age", func(in *PlaceOrderInput) { in.Age = -3 }, "age"},
		{"missing address", func(in *PlaceOrderInput) { in.Address = "" }, "address"},
		{"missing phone", func(in *PlaceOrderInput) { in.PhoneNumber = "" }, "phone_number"},
		{"bad email", func(in *PlaceOrderInput) { in.Email = "not-an-email" }, "email"},
		{"no items", func(in *PlaceOrderInput) { in.Items = nil }, "items"},
		{"unknown size", func(in *PlaceOrderInput) { in.Items[1].Size = "50ml" }, "items[1].size"},
		{"zero quantity", func(in *PlaceOrderInput) { in.Items[0].Quantity = 0 }, "items[0].quantity"},
		{"missing product", func(in *PlaceOrderInput) { in.Items[0].ProductID = 0 }, "items[0].product_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			input := validOrderInput(
				OrderLineInput{ProductID: 1, Size: "10ml", Quantity: 1},
				OrderLineInput{ProductID: 2, Size: "35ml", Quantity: 2},
			)
			tt.mutate(&input)

			order, err := f.service.PlaceOrder(context.Background(), input)
			require.Error(t, err)
			assert.Nil(t, order)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)

			f.products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPlaceOrder_EmailIsOptional(t *testing.T) {
	f := newOrderFixture()
	f.products.On("GetByID", mock.Anything, uint(1)).Return(testProduct(1, "Velvet Oud", "12.50", "30.00"), nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	input := validOrderInput(OrderLineInput{ProductID: 1, Size: "10ml", Quantity: 1})
	input.Email = ""
	input.School = ""

	order, err := f.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, order.Email)
	assert.Nil(t, order.School)
	f.assertExpectations(t)
}

func TestPlaceOrder_PricesEveryLineFromCatalog(t *testing.T) {
	f := newOrderFixture()
	f.products.On("GetByID", mock.Anything, uint(1)).Return(testProduct(1, "Velvet Oud", "12.50", "30.00"), nil).Once()
	f.products.On("GetByID", mock.Anything, uint(2)).Return(testProduct(2, "Citrus Bloom", "9.00", "25.00"), nil).Once()

	var stored *models.Order
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.Order)
			stored.ID = 7
		}).
		Return(nil)
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e OrderEvent) bool {
		return e.Type == EventOrderPlaced && e.Order.ID == 7
	})).Return(nil)

	order, err := f.service.PlaceOrder(context.Background(), validOrderInput(
		OrderLineInput{ProductID: 1, Size: "35ml", Quantity: 2},
		OrderLineInput{ProductID: 2, Size: " 10ml ", Quantity: 3},
		OrderLineInput{ProductID: 1, Size: "10ml", Quantity: 1},
	))
	require.NoError(t, err)
	require.Same(t, stored, order)

	assert.Equal(t, uint(7), order.ID)
	assert.Equal(t, "ORD-TEST0001", order.OrderNumber)
	assert.Equal(t, "Jane Wanjiku", order.CustomerName)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 3)

	expected := []struct {
		size     models.Size
		unit     string
		subtotal string
	}{
		{models.Size35ml, "30.00", "60.00"},
		{models.Size10ml, "9.00", "27.00"},
		{models.Size10ml, "12.50", "12.50"},
	}
	sum := decimal.Zero
	for i, item := range order.Items {
		assert.Equal(t, expected[i].size, item.Size)
		assert.True(t, decimal.RequireFromString(expected[i].unit).Equal(item.UnitPrice), "item %d unit price", i)
		assert.True(t, decimal.RequireFromString(expected[i].subtotal).Equal(item.Subtotal), "item %d subtotal", i)
		assert.True(t, item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Equal(item.Subtotal))
		sum = sum.Add(item.Subtotal)
	}
	assert.True(t, decimal.RequireFromString("99.50").Equal(order.TotalAmount))
	assert.True(t, sum.Equal(order.TotalAmount))
	assert.Equal(t, "Velvet Oud", order.Items[0].ProductName)

	f.assertExpectations(t)
}

func TestPlaceOrder_UnknownProductWritesNothing(t *testing.T) {
	f := newOrderFixture()
	f.products.On("GetByID", mock.Anything, uint(1)).Return(testProduct(1, "Velvet Oud", "12.50", "30.00"), nil)
	f.products.On("GetByID", mock.Anything, uint(99)).Return(nil, repository.ErrNotFound)

	_, err := f.service.PlaceOrder(context.Background(), validOrderInput(
		OrderLineInput{ProductID: 1, Size: "10ml", Quantity: 1},
		OrderLineInput{ProductID: 99, Size: "10ml", Quantity: 1},
		OrderLineInput{ProductID: 1, Size: "35ml", Quantity: 1},
	))

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(99), notFound.ID)
	assert.Equal(t, "Product with ID 99 not found", err.Error())

	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestPlaceOrder_DeactivatedProductIsStillOrderable(t *testing.T) {
	f := newOrderFixture()
	retired := testProduct(3, "Retired Musk", "8.00", "20.00")
	retired.IsActive = false
	f.products.On("GetByID", mock.Anything, uint(3)).Return(retired, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	order, err := f.service.PlaceOrder(context.Background(), validOrderInput(
		OrderLineInput{ProductID: 3, Size: "35ml", Quantity: 1},
	))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("20.00").Equal(order.TotalAmount))
}

func TestPlaceOrder_StoreFailureIsPersistenceError(t *testing.T) {
	f := newOrderFixture()
	f.products.On("GetByID", mock.Anything, uint(1)).Return(testProduct(1, "Velvet Oud", "12.50", "30.00"), nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := f.service.PlaceOrder(context.Background(), validOrderInput(
		OrderLineInput{ProductID: 1, Size: "10ml", Quantity: 1},
	))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestPlaceOrder_NotifierFailureDoesNotFailOrder(t *testing.T) {
	f := newOrderFixture()
	f.products.On("GetByID", mock.Anything, uint(1)).Return(testProduct(1, "Velvet Oud", "12.50", "30.00"), nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	order, err := f.service.PlaceOrder(context.Background(), validOrderInput(
		OrderLineInput{ProductID: 1, Size: "10ml", Quantity: 2},
	))
	require.NoError(t, err)
	assert.Equal(t, "ORD-TEST0001", order.OrderNumber)
	f.assertExpectations(t)
}

func TestUpdateStatus_AnyRecognizedStatusIsAccepted(t *testing.T) {
	f := newOrderFixture()
	delivered := &models.Order{ID: 5, OrderNumber: "ORD-5", Status: models.OrderStatusDelivered}
	f.orders.On("UpdateStatus", mock.Anything, uint(5), models.OrderStatusDelivered).Return(delivered, nil)
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e OrderEvent) bool {
		return e.Type == EventOrderStatusChanged
	})).Return(nil)

	order, err := f.service.UpdateStatus(context.Background(), 5, "delivered")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, order.Status)
	f.assertExpectations(t)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	f := newOrderFixture()

	for _, status := range []string{"archived", "", "PENDING", "refunded"} {
		_, err := f.service.UpdateStatus(context.Background(), 5, status)
		assert.ErrorIs(t, err, ErrInvalidStatus, status)
	}
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_MissingOrder(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("UpdateStatus", mock.Anything, uint(404), models.OrderStatusApproved).Return(nil, repository.ErrNotFound)

	_, err := f.service.UpdateStatus(context.Background(), 404, "approved")
	assert.ErrorIs(t, err, ErrNotFound)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestGetOrder(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("FindByID", mock.Anything, uint(1)).Return(&models.Order{ID: 1, Items: []models.OrderItem{}}, nil)
	f.orders.On("FindByID", mock.Anything, uint(2)).Return(nil, repository.ErrNotFound)

	order, err := f.service.GetOrder(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, order.Items)

	_, err = f.service.GetOrder(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrders_PassesFilterAndBuildsPagination(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("List", mock.Anything, repository.OrderFilter{Status: "pending", Limit: 10, Offset: 20}).
		Return([]models.Order{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}, int64(25), nil)

	orders, pagination, err := f.service.ListOrders(context.Background(), utils.PageRequest{Page: 3, Limit: 10}, " pending ")
	require.NoError(t, err)
	assert.Len(t, orders, 5)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.False(t, pagination.HasNext)
	assert.True(t, pagination.HasPrev)
	f.assertExpectations(t)
}

func TestDashboardStats_IncludesActiveProducts(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("Stats", mock.Anything).Return(&models.OrderStats{
		TotalOrders:   4,
		PendingOrders: 2,
		TotalRevenue:  decimal.RequireFromString("120.50"),
	}, nil)
	f.products.On("CountActive", mock.Anything).Return(int64(12), nil)

	stats, err := f.service.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalOrders)
	assert.Equal(t, int64(12), stats.TotalProducts)
	assert.True(t, decimal.RequireFromString("120.50").Equal(stats.TotalRevenue))
}

func TestNewOrderNumber_UniqueUnderConcurrency(t *testing.T) {
	const n = 1000
	format := regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number := NewOrderNumber()
			mu.Lock()
			seen[number] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
	for number := range seen {
		assert.Regexp(t, format, number)
	}
}
