package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kamaumbugua/soko-api/controllers"
	"github.com/kamaumbugua/soko-api/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/dashboard", controllers.GetDashboard)

		admin.GET("/orders", controllers.GetOrders)
		admin.PUT("/orders/:orderId/status", controllers.UpdateOrderStatus)
		admin.PUT("/orders/:orderId/payment-status", controllers.UpdateOrderPaymentStatus)

		admin.GET("/users", controllers.GetUsers)
		admin.PUT("/users/:userId/role", controllers.UpdateUserRole)
		admin.DELETE("/users/:userId", controllers.DeleteUser)

		admin.GET("/newsletter/subscribers", controllers.GetNewsletterSubscribers)
	}
}
