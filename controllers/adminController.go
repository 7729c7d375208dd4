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

// GetDashboard aggregates the counters the admin landing page renders.
func GetDashboard(ctx *gin.Context) {
	var userCount, productCount, orderCount, undeliveredCount int64
	var revenue float64

	if err := initializers.DB.Model(&models.User{}).Count(&userCount).Error; err != nil {
		log.Println("Dashboard error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	initializers.DB.Model(&models.Product{}).Count(&productCount)
	initializers.DB.Model(&models.Order{}).Count(&orderCount)
	initializers.DB.Model(&models.Order{}).
		Where("status NOT IN ?", []string{models.OrderStatusDelivered, models.OrderStatusCancelled}).
		Count(&undeliveredCount)
	initializers.DB.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue)

	var recentOrders []models.Order
	initializers.DB.Preload("OrderItems").
		Order("created_at desc").
		Limit(5).
		Find(&recentOrders)

	ctx.JSON(http.StatusOK, gin.H{
		"users":             userCount,
		"products":          productCount,
		"orders":            orderCount,
		"undeliveredOrders": undeliveredCount,
		"revenue":           revenue,
		"recentOrders":      recentOrders,
	})
}

func GetUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "25"))
	offset := (page - 1) * limit

	query := initializers.DB.Model(&models.User{})
	if search := ctx.Query("search"); search != "" {
		query = query.Where("email LIKE ? OR username LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var users []models.User
	if result := query.Limit(limit).Offset(offset).Find(&users); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch users")
		return
	}

	for i := range users {
		users[i].Password = ""
	}

	var count int64
	initializers.DB.Model(&models.User{}).Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"users": users,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func UpdateUserRole(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var body struct {
		Role string `json:"role" binding:"required,oneof=user admin"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Role must be either 'user' or 'admin'")
		return
	}

	result := initializers.DB.Model(&models.User{}).
		Where("id = ?", userId).
		Update("role", body.Role)
	if result.Error != nil {
		log.Println("Role update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update user role")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User role updated successfully."})
}

func DeleteUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	caller := middlewares.CallerIdentity(ctx)
	if caller.UserID == userId {
		sendErrorResponse(ctx, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
			return
		}
		log.Println("User lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if user.IsAdmin() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Admin accounts cannot be deleted; change the role first")
		return
	}

	result := initializers.DB.Delete(&models.User{}, userId)
	if result.Error != nil {
		log.Println("User delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted successfully."})
}
