package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kamaumbugua/soko-api/controllers"
	"github.com/kamaumbugua/soko-api/middlewares"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("/items", controllers.AddCartItem)
		cart.PUT("/items/:productId", controllers.UpdateCartItem)
		cart.DELETE("/items/:productId", controllers.RemoveCartItem)
		cart.DELETE("", controllers.ClearCart)
	}
}
