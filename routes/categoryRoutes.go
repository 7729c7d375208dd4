package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kamaumbugua/soko-api/controllers"
	"github.com/kamaumbugua/soko-api/middlewares"
)

func CategoryRoutes(server *gin.Engine) {
	server.GET("/categories", controllers.GetCategories)
	server.GET("/categories/:id", controllers.GetCategory)

	admin := server.Group("/categories", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateCategory)
		admin.PUT("/:id", controllers.UpdateCategory)
		admin.DELETE("/:id", controllers.DeleteCategory)
	}
}
