package models

import "gorm.io/gorm"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

type ShippingAddress struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zipCode" binding:"required"`
	Country string `json:"country" binding:"required"`
}

type OrderItem struct {
	gorm.Model
	OrderID   int     `json:"orderId" gorm:"index"`
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageUrl  string  `json:"imageUrl"`
}

type Order struct {
	gorm.Model
	UserID            int             `json:"userId" gorm:"index"`
	OrderNumber       string          `json:"orderNumber" gorm:"uniqueIndex;size:64"`
	OrderItems        []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount       float64         `json:"totalAmount"`
	Status            string          `json:"status"`
	ShippingAddress   ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod     string          `json:"paymentMethod"`
	PaymentStatus     string          `json:"paymentStatus"`
	PaymentTrackingID string          `json:"paymentTrackingId"`
}

// statusTransitions encodes the allowed order lifecycle. delivered and
// cancelled are terminal.
var statusTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func IsOrderStatus(status string) bool {
	_, ok := statusTransitions[status]
	return ok
}

func IsPaymentStatus(status string) bool {
	return status == PaymentStatusPending ||
		status == PaymentStatusCompleted ||
		status == PaymentStatusFailed
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
