package initializers

import (
	"log"

	"github.com/kamaumbugua/soko-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.NewsletterSubscriber{},
	)
	log.Println("Database synced successfully.")
}
