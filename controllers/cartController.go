package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kamaumbugua/soko-api/initializers"
	"github.com/kamaumbugua/soko-api/middlewares"
	"github.com/kamaumbugua/soko-api/models"
	"gorm.io/gorm"
)

// loadOrCreateCart returns the caller's cart, creating an empty one on first
// use.
func loadOrCreateCart(userId int) (*models.Cart, error) {
	var cart models.Cart
	err := initializers.DB.Preload("Items").Where("user_id = ?", userId).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userId}
		if err := initializers.DB.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func GetCart(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	cart, err := loadOrCreateCart(caller.UserID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cart, "total": cart.Total()})
}

func AddCartItem(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	var body struct {
		ProductID int `json:"productId" binding:"required"`
		Quantity  int `json:"quantity" binding:"required,gte=1"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, body.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch product")
		}
		return
	}
	if !product.Active {
		sendErrorResponse(ctx, http.StatusBadRequest, "Product is no longer available")
		return
	}

	cart, err := loadOrCreateCart(caller.UserID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	cart.AddItem(product, body.Quantity)
	if err := initializers.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error; err != nil {
		log.Println("Cart save error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": product.Name + " added to cart",
		"cart":    cart,
	})
}

func UpdateCartItem(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	productId, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var body struct {
		Quantity int `json:"quantity" binding:"required,gte=1"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	cart, err := loadOrCreateCart(caller.UserID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	if !cart.SetQuantity(productId, body.Quantity) {
		sendErrorResponse(ctx, http.StatusNotFound, "Item not found in cart")
		return
	}

	if err := initializers.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error; err != nil {
		log.Println("Cart save error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item quantity updated", "cart": cart})
}

func RemoveCartItem(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	productId, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	cart, err := loadOrCreateCart(caller.UserID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	if !cart.RemoveItem(productId) {
		sendErrorResponse(ctx, http.StatusNotFound, "Item not found in cart")
		return
	}

	if err := initializers.DB.Where("cart_id = ? AND product_id = ?", cart.ID, productId).
		Delete(&models.CartItem{}).Error; err != nil {
		log.Println("Cart item delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart", "cart": cart})
}

func ClearCart(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	cart, err := loadOrCreateCart(caller.UserID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	if err := initializers.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		log.Println("Cart clear error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to clear cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}
