package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Soko API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/verify-email/:activationToken" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password

CATALOG
- GET "/products" - List products (search, category and pagination filters)
- GET "/products/:id" - Get product by ID
- GET "/categories" - List categories
- GET "/categories/:id" - Get category by ID

CART (authenticated)
- GET "/cart" - Get my cart
- POST "/cart/items" - Add product to cart
- PUT "/cart/items/:productId" - Change item quantity
- DELETE "/cart/items/:productId" - Remove item
- DELETE "/cart" - Clear cart

ORDERS (authenticated)
- POST "/orders" - Place an order
- GET "/orders" - My orders
- GET "/orders/:orderId" - Get order by ID
- PUT "/orders/:orderId/cancel" - Cancel a pending order
- POST "/orders/:orderId/pay" - Initiate payment

NEWSLETTER
- POST "/newsletter/subscribe" - Subscribe
- GET "/newsletter/unsubscribe/:token" - Unsubscribe

ADMIN (authenticated, admin role)
- GET "/admin/dashboard" - Store metrics
- GET "/admin/orders" - All orders
- PUT "/admin/orders/:orderId/status" - Update order status
- PUT "/admin/orders/:orderId/payment-status" - Update payment status
- POST "/products", PUT/DELETE "/products/:id" - Manage products
- POST "/products/:id/images" - Upload product images
- POST "/categories", PUT/DELETE "/categories/:id" - Manage categories
- GET "/admin/users", PUT "/admin/users/:userId/role", DELETE "/admin/users/:userId" - Manage users
- GET "/admin/newsletter/subscribers" - Newsletter audience`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
