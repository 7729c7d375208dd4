package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kamaumbugua/soko-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStore is an in-memory Store. Transaction snapshots all state before
// running fn and restores it on error, mirroring a database rollback; txMu
// serializes transactions the way row locks would.
type fakeStore struct {
	mu          sync.Mutex
	txMu        sync.Mutex
	products    map[int]models.Product
	orders      map[int]models.Order
	carts       map[int][]models.CartItem
	nextOrderID int

	// beforeDecrement, when set, runs ahead of every stock decrement. Tests
	// use it to simulate a concurrent order racing the commit pass.
	beforeDecrement func(s *fakeStore, productId int)
	// onFindOrder, when set, runs at the start of every order read. Tests use
	// it to hold two goroutines at the read so both see the same status.
	onFindOrder func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:    make(map[int]models.Product),
		orders:      make(map[int]models.Order),
		carts:       make(map[int][]models.CartItem),
		nextOrderID: 1,
	}
}

func (s *fakeStore) addProduct(id int, name string, price float64, stock int, active bool) {
	product := models.Product{
		Name:   name,
		Price:  price,
		Stock:  stock,
		Active: active,
	}
	product.ID = uint(id)
	s.products[id] = product
}

func (s *fakeStore) Products() ProductStore { return s }
func (s *fakeStore) Orders() OrderStore     { return s }
func (s *fakeStore) Carts() CartStore       { return s }

func (s *fakeStore) Transaction(ctx context.Context, fn func(Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	productsCopy := make(map[int]models.Product, len(s.products))
	for k, v := range s.products {
		productsCopy[k] = v
	}
	ordersCopy := make(map[int]models.Order, len(s.orders))
	for k, v := range s.orders {
		v.OrderItems = append([]models.OrderItem(nil), v.OrderItems...)
		ordersCopy[k] = v
	}
	cartsCopy := make(map[int][]models.CartItem, len(s.carts))
	for k, v := range s.carts {
		cartsCopy[k] = append([]models.CartItem(nil), v...)
	}
	nextID := s.nextOrderID
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.products = productsCopy
		s.orders = ordersCopy
		s.carts = cartsCopy
		s.nextOrderID = nextID
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *fakeStore) FindProduct(ctx context.Context, id int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (s *fakeStore) DecrementStock(ctx context.Context, id, quantity int) (bool, error) {
	if s.beforeDecrement != nil {
		s.beforeDecrement(s, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok || product.Stock < quantity {
		return false, nil
	}
	product.Stock -= quantity
	s.products[id] = product
	return true, nil
}

func (s *fakeStore) IncrementStock(ctx context.Context, id, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	product.Stock += quantity
	s.products[id] = product
	return nil
}

func (s *fakeStore) InsertOrder(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = uint(s.nextOrderID)
	s.nextOrderID++
	stored := *order
	stored.OrderItems = append([]models.OrderItem(nil), order.OrderItems...)
	s.orders[int(order.ID)] = stored
	return nil
}

func (s *fakeStore) FindOrder(ctx context.Context, id int) (*models.Order, error) {
	if s.onFindOrder != nil {
		s.onFindOrder()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	order.OrderItems = append([]models.OrderItem(nil), order.OrderItems...)
	return &order, nil
}

func (s *fakeStore) SaveOrder(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *order
	stored.OrderItems = append([]models.OrderItem(nil), order.OrderItems...)
	s.orders[int(order.ID)] = stored
	return nil
}

func (s *fakeStore) TransitionStatus(ctx context.Context, id int, from, to string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	s.orders[id] = order
	return true, nil
}

func (s *fakeStore) FindOrdersByUser(ctx context.Context, userId int) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []models.Order
	for _, order := range s.orders {
		if order.UserID == userId {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (s *fakeStore) FindAllOrders(ctx context.Context, search, sortOrder string, limit, offset int) ([]models.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []models.Order
	for _, order := range s.orders {
		if search != "" && !strings.Contains(order.OrderNumber, search) {
			continue
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		if sortOrder == "asc" {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].ID > orders[j].ID
	})
	total := int64(len(orders))
	if offset >= len(orders) {
		return nil, total, nil
	}
	orders = orders[offset:]
	if limit > 0 && limit < len(orders) {
		orders = orders[:limit]
	}
	return orders, total, nil
}

func (s *fakeStore) ClearCart(ctx context.Context, userId int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userId)
	return nil
}

func validAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Street:  "123 Moi Avenue",
		City:    "Nairobi",
		State:   "Nairobi",
		ZipCode: "00100",
		Country: "KE",
	}
}

func createInput(items ...OrderItemInput) CreateOrderInput {
	return CreateOrderInput{
		Items:           items,
		ShippingAddress: validAddress(),
		PaymentMethod:   "card",
	}
}

var (
	owner    = Identity{UserID: 7}
	stranger = Identity{UserID: 8}
	admin    = Identity{UserID: 1, IsAdmin: true}
)

func TestCreateOrderComputesTotalAndDecrementsStock(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)

	svc := NewOrderService(store)
	order, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 2},
	))
	require.NoError(t, err)

	assert.Equal(t, 20.00, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, 3, store.products[1].Stock)

	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, "P1", order.OrderItems[0].Name)
	assert.Equal(t, 10.00, order.OrderItems[0].Price)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)
}

func TestCreateOrderMultipleItems(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)
	store.addProduct(2, "P2", 7.50, 4, true)

	svc := NewOrderService(store)
	order, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 2},
		OrderItemInput{ProductID: 2, Quantity: 3},
	))
	require.NoError(t, err)

	assert.Equal(t, 2*10.00+3*7.50, order.TotalAmount)
	assert.Equal(t, 3, store.products[1].Stock)
	assert.Equal(t, 1, store.products[2].Stock)
}

func TestCreateOrderUnknownProductHasNoPartialEffect(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)

	svc := NewOrderService(store)
	_, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 2},
		OrderItemInput{ProductID: 999, Quantity: 1},
	))

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 999, notFound.ProductID)
	assert.Equal(t, 5, store.products[1].Stock)
	assert.Empty(t, store.orders)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)

	svc := NewOrderService(store)
	_, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 10},
	))

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
	assert.Contains(t, stockErr.Error(), "Available: 5")
	assert.Equal(t, 5, store.products[1].Stock)
	assert.Empty(t, store.orders)
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, false)

	svc := NewOrderService(store)
	_, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 1},
	))

	var inactive *ProductInactiveError
	require.ErrorAs(t, err, &inactive)
	assert.Equal(t, 5, store.products[1].Stock)
}

func TestCreateOrderValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewOrderService(store)

	_, err := svc.CreateOrder(context.Background(), owner, CreateOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   "card",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "order must contain at least one item")

	_, err = svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 0},
	))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "item 0: quantity must be at least 1")

	input := createInput(OrderItemInput{ProductID: 1, Quantity: 1})
	input.ShippingAddress.City = ""
	input.PaymentMethod = ""
	_, err = svc.CreateOrder(context.Background(), owner, input)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "shipping address city is required")
	assert.Contains(t, verr.Messages, "payment method is required")
}

func TestCreateOrderUnauthenticated(t *testing.T) {
	store := newFakeStore()
	svc := NewOrderService(store)

	_, err := svc.CreateOrder(context.Background(), Identity{}, createInput(
		OrderItemInput{ProductID: 1, Quantity: 1},
	))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCreateOrderRollsBackWhenRacedOnStock(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)
	store.addProduct(2, "P2", 5.00, 3, true)

	// Simulate a concurrent order draining P2 between the validation pass
	// and its decrement.
	store.beforeDecrement = func(s *fakeStore, productId int) {
		if productId == 2 {
			product := s.products[2]
			product.Stock = 0
			s.products[2] = product
		}
	}

	svc := NewOrderService(store)
	_, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 2},
		OrderItemInput{ProductID: 2, Quantity: 1},
	))

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.ProductID)

	// The already-applied decrement of P1 must have been rolled back.
	assert.Equal(t, 5, store.products[1].Stock)
	assert.Empty(t, store.orders)
}

func TestCreateOrderClearsCart(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)
	store.carts[owner.UserID] = []models.CartItem{{ProductID: 1, Quantity: 2}}

	svc := NewOrderService(store)
	_, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 2},
	))
	require.NoError(t, err)
	assert.Empty(t, store.carts[owner.UserID])
}

func TestOrderNumbersAreUnique(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 100, true)

	svc := NewOrderService(store)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		order, err := svc.CreateOrder(context.Background(), owner, createInput(
			OrderItemInput{ProductID: 1, Quantity: 1},
		))
		require.NoError(t, err)
		assert.False(t, seen[order.OrderNumber], "duplicate order number %s", order.OrderNumber)
		seen[order.OrderNumber] = true
	}
}

func TestCancelOrderRestoresStock(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)
	store.addProduct(2, "P2", 5.00, 3, true)

	svc := NewOrderService(store)
	order, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 1},
		OrderItemInput{ProductID: 2, Quantity: 1},
	))
	require.NoError(t, err)
	require.Equal(t, 4, store.products[1].Stock)
	require.Equal(t, 2, store.products[2].Stock)

	cancelled, err := svc.CancelOrder(context.Background(), owner, int(order.ID))
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 5, store.products[1].Stock)
	assert.Equal(t, 3, store.products[2].Stock)

	// A second cancel hits the status guard and changes nothing.
	_, err = svc.CancelOrder(context.Background(), owner, int(order.ID))
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.OrderStatusCancelled, transitionErr.From)
	assert.Equal(t, 5, store.products[1].Stock)
	assert.Equal(t, 3, store.products[2].Stock)
}

func TestCancelOrderRejectsNonPending(t *testing.T) {
	for _, status := range []string{
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		store := newFakeStore()
		store.addProduct(1, "P1", 10.00, 5, true)

		svc := NewOrderService(store)
		order, err := svc.CreateOrder(context.Background(), owner, createInput(
			OrderItemInput{ProductID: 1, Quantity: 2},
		))
		require.NoError(t, err)

		stored := store.orders[int(order.ID)]
		stored.Status = status
		store.orders[int(order.ID)] = stored

		_, err = svc.CancelOrder(context.Background(), owner, int(order.ID))
		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, status, transitionErr.From)
		assert.Equal(t, 3, store.products[1].Stock, "stock must not change on rejected cancel")
	}
}

func TestCancelOrderAuthorization(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)

	svc := NewOrderService(store)
	order, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)

	_, err = svc.CancelOrder(context.Background(), stranger, int(order.ID))
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.CancelOrder(context.Background(), admin, int(order.ID))
	assert.NoError(t, err)
}

func TestGetOrderAuthorization(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)

	svc := NewOrderService(store)
	order, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), stranger, int(order.ID))
	assert.ErrorIs(t, err, ErrNotAuthorized)

	got, err := svc.GetOrder(context.Background(), owner, int(order.ID))
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.GetOrder(context.Background(), admin, int(order.ID))
	assert.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), owner, 404)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusFollowsTransitionTable(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)

	svc := NewOrderService(store)
	order, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)
	orderId := int(order.ID)

	_, err = svc.UpdateStatus(context.Background(), owner, orderId, models.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.UpdateStatus(context.Background(), admin, orderId, "misplaced")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UpdateStatus(context.Background(), admin, orderId, models.OrderStatusDelivered)
	var transitionErr *InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)

	updated, err := svc.UpdateStatus(context.Background(), admin, orderId, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), admin, orderId, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), admin, orderId, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	// delivered is terminal
	_, err = svc.UpdateStatus(context.Background(), admin, orderId, models.OrderStatusPending)
	assert.ErrorAs(t, err, &transitionErr)
}

func TestUpdateStatusCancelRestoresStock(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)

	svc := NewOrderService(store)
	order, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 2},
	))
	require.NoError(t, err)
	require.Equal(t, 3, store.products[1].Stock)

	updated, err := svc.UpdateStatus(context.Background(), admin, int(order.ID), models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	assert.Equal(t, 5, store.products[1].Stock)
}

func TestUpdatePaymentStatus(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)

	svc := NewOrderService(store)
	order, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)

	_, err = svc.UpdatePaymentStatus(context.Background(), owner, int(order.ID), models.PaymentStatusCompleted)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.UpdatePaymentStatus(context.Background(), admin, int(order.ID), "refunded")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	updated, err := svc.UpdatePaymentStatus(context.Background(), admin, int(order.ID), models.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, updated.PaymentStatus)

	// Payment status has no state machine; moving back is allowed.
	updated, err = svc.UpdatePaymentStatus(context.Background(), admin, int(order.ID), models.PaymentStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, updated.PaymentStatus)
}

func TestListOrders(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 50, true)

	svc := NewOrderService(store)
	for i := 0; i < 3; i++ {
		_, err := svc.CreateOrder(context.Background(), owner, createInput(
			OrderItemInput{ProductID: 1, Quantity: 1},
		))
		require.NoError(t, err)
	}
	_, err := svc.CreateOrder(context.Background(), stranger, createInput(
		OrderItemInput{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)

	mine, err := svc.ListOrdersForUser(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	_, _, err = svc.ListAllOrders(context.Background(), owner, "", "desc", 10, 0)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	all, count, err := svc.ListAllOrders(context.Background(), admin, "", "desc", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, int64(4), count)
}

func TestListAllOrdersSearchAndSort(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 50, true)

	svc := NewOrderService(store)
	var created []*models.Order
	for i := 0; i < 3; i++ {
		order, err := svc.CreateOrder(context.Background(), owner, createInput(
			OrderItemInput{ProductID: 1, Quantity: 1},
		))
		require.NoError(t, err)
		created = append(created, order)
	}

	asc, _, err := svc.ListAllOrders(context.Background(), admin, "", "asc", 10, 0)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, created[0].ID, asc[0].ID)
	assert.Equal(t, created[2].ID, asc[2].ID)

	desc, _, err := svc.ListAllOrders(context.Background(), admin, "", "desc", 10, 0)
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, created[2].ID, desc[0].ID)

	found, count, err := svc.ListAllOrders(context.Background(), admin, created[1].OrderNumber, "desc", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, found, 1)
	assert.Equal(t, created[1].ID, found[0].ID)

	none, count, err := svc.ListAllOrders(context.Background(), admin, "no-such-order", "desc", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.Empty(t, none)
}

func TestConcurrentCancelsRestoreStockOnce(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, "P1", 10.00, 5, true)

	svc := NewOrderService(store)
	order, err := svc.CreateOrder(context.Background(), owner, createInput(
		OrderItemInput{ProductID: 1, Quantity: 2},
	))
	require.NoError(t, err)
	require.Equal(t, 3, store.products[1].Stock)

	// Hold both cancels at the initial order read so each sees the order
	// still pending before either commits.
	release := make(chan struct{})
	var arrivals int32
	store.onFindOrder = func() {
		if atomic.AddInt32(&arrivals, 1) == 2 {
			close(release)
		}
		<-release
	}

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.CancelOrder(context.Background(), owner, int(order.ID))
			errs <- err
		}()
	}
	first, second := <-errs, <-errs

	var transitionErr *InvalidTransitionError
	if first == nil {
		require.ErrorAs(t, second, &transitionErr)
	} else {
		require.ErrorAs(t, first, &transitionErr)
		require.NoError(t, second)
	}
	assert.Equal(t, models.OrderStatusCancelled, transitionErr.From)
	assert.Equal(t, models.OrderStatusCancelled, store.orders[int(order.ID)].Status)
	assert.Equal(t, 5, store.products[1].Stock, "stock must be restored exactly once")
}
