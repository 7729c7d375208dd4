package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kamaumbugua/soko-api/controllers"
)

func NewsletterRoutes(server *gin.Engine) {
	server.POST("/newsletter/subscribe", controllers.SubscribeToNewsletter)
	server.GET("/newsletter/unsubscribe/:token", controllers.UnsubscribeFromNewsletter)
}
