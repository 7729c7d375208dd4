package services

import (
	"context"
	"fmt"

	"github.com/kamaumbugua/soko-api/models"
)

type OrderItemInput struct {
	ProductID int `json:"productId" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,gte=1"`
}

type CreateOrderInput struct {
	Items           []OrderItemInput       `json:"items" binding:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
}

// OrderService implements order creation, cancellation and status transitions
// over a Store. Stock is only ever mutated inside a transaction, with the
// decrement itself conditional, so a failed order leaves no partial effects.
type OrderService struct {
	store Store
}

func NewOrderService(store Store) *OrderService {
	return &OrderService{store: store}
}

func validateCreateInput(input CreateOrderInput) *ValidationError {
	var messages []string
	if len(input.Items) == 0 {
		messages = append(messages, "order must contain at least one item")
	}
	for i, item := range input.Items {
		if item.ProductID <= 0 {
			messages = append(messages, fmt.Sprintf("item %d: productId is required", i))
		}
		if item.Quantity < 1 {
			messages = append(messages, fmt.Sprintf("item %d: quantity must be at least 1", i))
		}
	}
	addr := input.ShippingAddress
	for _, field := range []struct{ name, value string }{
		{"street", addr.Street},
		{"city", addr.City},
		{"state", addr.State},
		{"zipCode", addr.ZipCode},
		{"country", addr.Country},
	} {
		if field.value == "" {
			messages = append(messages, "shipping address "+field.name+" is required")
		}
	}
	if input.PaymentMethod == "" {
		messages = append(messages, "payment method is required")
	}
	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

// CreateOrder runs two passes: a read-only validation pass that snapshots every
// item and computes the total, then a commit pass inside one transaction that
// decrements stock conditionally, inserts the order and clears the cart. If any
// decrement fails the whole transaction rolls back.
func (s *OrderService) CreateOrder(ctx context.Context, caller Identity, input CreateOrderInput) (*models.Order, error) {
	if caller.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	if verr := validateCreateInput(input); verr != nil {
		return nil, verr
	}

	var (
		items []models.OrderItem
		total float64
	)
	for _, item := range input.Items {
		product, err := s.store.Products().FindProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		if !product.Active {
			return nil, &ProductInactiveError{ProductID: item.ProductID, Name: product.Name}
		}
		if product.Stock < item.Quantity {
			return nil, &InsufficientStockError{
				ProductID: item.ProductID,
				Name:      product.Name,
				Available: product.Stock,
			}
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			ImageUrl:  product.ImageUrl,
		})
		total += product.Price * float64(item.Quantity)
	}

	order := &models.Order{
		UserID:          caller.UserID,
		OrderNumber:     nextOrderNumber(),
		OrderItems:      items,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
	}

	err := s.store.Transaction(ctx, func(tx Store) error {
		for _, item := range order.OrderItems {
			ok, err := tx.Products().DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// A concurrent order won the race since the validation pass.
				product, err := tx.Products().FindProduct(ctx, item.ProductID)
				if err != nil {
					return err
				}
				available := 0
				name := item.Name
				if product != nil {
					available = product.Stock
					name = product.Name
				}
				return &InsufficientStockError{ProductID: item.ProductID, Name: name, Available: available}
			}
		}
		if err := tx.Orders().InsertOrder(ctx, order); err != nil {
			return err
		}
		return tx.Carts().ClearCart(ctx, caller.UserID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder returns the order only to its owner or an administrator.
func (s *OrderService) GetOrder(ctx context.Context, caller Identity, orderId int) (*models.Order, error) {
	if caller.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	order, err := s.store.Orders().FindOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != caller.UserID && !caller.IsAdmin {
		return nil, ErrNotAuthorized
	}
	return order, nil
}

func (s *OrderService) ListOrdersForUser(ctx context.Context, caller Identity) ([]models.Order, error) {
	if caller.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	return s.store.Orders().FindOrdersByUser(ctx, caller.UserID)
}

func (s *OrderService) ListAllOrders(ctx context.Context, caller Identity, search, sortOrder string, limit, offset int) ([]models.Order, int64, error) {
	if caller.UserID == 0 {
		return nil, 0, ErrUnauthenticated
	}
	if !caller.IsAdmin {
		return nil, 0, ErrNotAuthorized
	}
	return s.store.Orders().FindAllOrders(ctx, search, sortOrder, limit, offset)
}

// CancelOrder restores stock for every item and marks the order cancelled.
// Only pending orders may be cancelled; the status guard also makes a second
// cancel a no-op failure rather than a double restore.
func (s *OrderService) CancelOrder(ctx context.Context, caller Identity, orderId int) (*models.Order, error) {
	if caller.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	order, err := s.store.Orders().FindOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != caller.UserID && !caller.IsAdmin {
		return nil, ErrNotAuthorized
	}
	if order.Status != models.OrderStatusPending {
		return nil, &InvalidTransitionError{From: order.Status, To: models.OrderStatusCancelled}
	}
	if err := s.cancel(ctx, order, models.OrderStatusPending); err != nil {
		return nil, err
	}
	return order, nil
}

// cancel flips the order to cancelled and restores stock inside one
// transaction. The flip is conditional on the expected current status, so of
// two concurrent cancels only one can commit; the loser sees the status it
// raced against.
func (s *OrderService) cancel(ctx context.Context, order *models.Order, from string) error {
	err := s.store.Transaction(ctx, func(tx Store) error {
		ok, err := tx.Orders().TransitionStatus(ctx, int(order.ID), from, models.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			current, err := tx.Orders().FindOrder(ctx, int(order.ID))
			if err != nil {
				return err
			}
			status := from
			if current != nil {
				status = current.Status
			}
			return &InvalidTransitionError{From: status, To: models.OrderStatusCancelled}
		}
		for _, item := range order.OrderItems {
			if err := tx.Products().IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	order.Status = models.OrderStatusCancelled
	return nil
}

// UpdateStatus moves an order along the lifecycle table. Cancelling through
// this path restores stock exactly like a user cancellation.
func (s *OrderService) UpdateStatus(ctx context.Context, caller Identity, orderId int, status string) (*models.Order, error) {
	if caller.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	if !caller.IsAdmin {
		return nil, ErrNotAuthorized
	}
	if !models.IsOrderStatus(status) {
		return nil, &ValidationError{Messages: []string{"unknown order status: " + status}}
	}
	order, err := s.store.Orders().FindOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !models.CanTransition(order.Status, status) {
		return nil, &InvalidTransitionError{From: order.Status, To: status}
	}
	if status == models.OrderStatusCancelled {
		if err := s.cancel(ctx, order, order.Status); err != nil {
			return nil, err
		}
		return order, nil
	}
	ok, err := s.store.Orders().TransitionStatus(ctx, orderId, order.Status, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, err := s.store.Orders().FindOrder(ctx, orderId)
		if err != nil {
			return nil, err
		}
		from := order.Status
		if current != nil {
			from = current.Status
		}
		return nil, &InvalidTransitionError{From: from, To: status}
	}
	order.Status = status
	return order, nil
}

// UpdatePaymentStatus overwrites the payment status. There is no payment state
// machine; any value from the enumerated set is accepted.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, caller Identity, orderId int, status string) (*models.Order, error) {
	if caller.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	if !caller.IsAdmin {
		return nil, ErrNotAuthorized
	}
	if !models.IsPaymentStatus(status) {
		return nil, &ValidationError{Messages: []string{"unknown payment status: " + status}}
	}
	order, err := s.store.Orders().FindOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	order.PaymentStatus = status
	if err := s.store.Orders().SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
