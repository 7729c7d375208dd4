package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kamaumbugua/soko-api/controllers"
	"github.com/kamaumbugua/soko-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.POST("", controllers.CreateOrder)
		orders.GET("", controllers.GetMyOrders)
		orders.GET("/:orderId", controllers.GetOrder)
		orders.PUT("/:orderId/cancel", controllers.CancelOrder)
		orders.POST("/:orderId/pay", controllers.InitiatePayment)
	}

	server.GET("/payment/ipn", controllers.HandlePaymentIPN)
	server.POST("/payment/ipn", controllers.HandlePaymentIPN)
}
