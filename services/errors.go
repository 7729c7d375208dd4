package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotAuthorized   = errors.New("you are not authorized to access this order")
	ErrOrderNotFound   = errors.New("order not found")
)

// ValidationError collects input problems detected before any write happens.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

type ProductNotFoundError struct {
	ProductID int
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

type ProductInactiveError struct {
	ProductID int
	Name      string
}

func (e *ProductInactiveError) Error() string {
	return fmt.Sprintf("product %s is no longer available", e.Name)
}

// InsufficientStockError reports how many units are still sellable.
type InsufficientStockError struct {
	ProductID int
	Name      string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d", e.Name, e.Available)
}

// InvalidTransitionError names the status the order is currently in.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}
