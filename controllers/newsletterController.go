package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kamaumbugua/soko-api/initializers"
	"github.com/kamaumbugua/soko-api/models"
	"github.com/kamaumbugua/soko-api/utils"
	"gorm.io/gorm"
)

// subscribeUserToNewsletter is best effort; failures are logged and never
// block the caller.
func subscribeUserToNewsletter(email, name string) {
	token, err := utils.GenerateCode(16)
	if err != nil {
		log.Println("Unsubscribe token generation error:", err)
		return
	}

	subscriber := models.NewsletterSubscriber{
		Email:            email,
		Name:             name,
		Active:           true,
		UnsubscribeToken: token,
	}
	if err := initializers.DB.Create(&subscriber).Error; err != nil {
		log.Println("Newsletter subscription error:", err)
	}
}

func SubscribeToNewsletter(ctx *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "A valid email is required")
		return
	}

	var existing models.NewsletterSubscriber
	err := initializers.DB.Where("email = ?", body.Email).First(&existing).Error
	if err == nil {
		if !existing.Active {
			initializers.DB.Model(&existing).Update("active", true)
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "You are subscribed to our newsletter."})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to subscribe right now")
		return
	}

	token, err := utils.GenerateCode(16)
	if err != nil {
		log.Println("Unsubscribe token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to subscribe right now")
		return
	}

	subscriber := models.NewsletterSubscriber{
		Email:            body.Email,
		Name:             body.Name,
		Active:           true,
		UnsubscribeToken: token,
	}
	if err := initializers.DB.Create(&subscriber).Error; err != nil {
		log.Println("Newsletter subscription error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to subscribe right now")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "You are subscribed to our newsletter."})
}

func UnsubscribeFromNewsletter(ctx *gin.Context) {
	token := ctx.Param("token")

	result := initializers.DB.Model(&models.NewsletterSubscriber{}).
		Where("unsubscribe_token = ? AND unsubscribe_token <> ''", token).
		Update("active", false)

	if result.Error != nil {
		log.Println("Unsubscribe error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to unsubscribe right now")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid unsubscribe link")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "You have been unsubscribed."})
}

func GetNewsletterSubscribers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset := (page - 1) * limit

	var subscribers []models.NewsletterSubscriber
	query := initializers.DB.Where("active = ?", true)
	if result := query.Limit(limit).Offset(offset).Find(&subscribers); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch subscribers")
		return
	}

	var count int64
	initializers.DB.Model(&models.NewsletterSubscriber{}).Where("active = ?", true).Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"subscribers": subscribers,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}
