package models

import "gorm.io/gorm"

type CartItem struct {
	gorm.Model
	CartID    int     `json:"-" gorm:"index"`
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageUrl  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	gorm.Model
	UserID int        `json:"userId" gorm:"uniqueIndex"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// AddItem merges quantity into an existing entry for the product, or appends a
// new entry snapshotting name, price and image at add time.
func (c *Cart) AddItem(product Product, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == int(product.ID) {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID: int(product.ID),
		Name:      product.Name,
		Price:     product.Price,
		ImageUrl:  product.ImageUrl,
		Quantity:  quantity,
	})
}

// SetQuantity updates the entry for productId and reports whether it was found.
func (c *Cart) SetQuantity(productId, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productId {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveItem deletes the entry for productId and reports whether it was found.
func (c *Cart) RemoveItem(productId int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productId {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
