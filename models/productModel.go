package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	ProductID int    `json:"productId"`
}

type Product struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Price       float64        `json:"price" binding:"required,gt=0"`
	ImageUrl    string         `json:"imageUrl"`
	CategoryID  int            `json:"categoryId" binding:"required" gorm:"index"`
	Stock       int            `json:"stock" binding:"gte=0"`
	Active      bool           `json:"active" gorm:"default:true"`
	Attributes  datatypes.JSON `json:"attributes"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
