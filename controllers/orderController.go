package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kamaumbugua/soko-api/middlewares"
	"github.com/kamaumbugua/soko-api/services"
)

var orderService *services.OrderService

// InitOrderService wires the order workflow to its persistence; called once
// from main.
func InitOrderService(store services.Store) {
	orderService = services.NewOrderService(store)
}

func CreateOrder(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	var input services.CreateOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := orderService.CreateOrder(ctx.Request.Context(), caller, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"order": order})
}

func GetMyOrders(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	orders, err := orderService.ListOrdersForUser(ctx.Request.Context(), caller)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func GetOrder(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := orderService.GetOrder(ctx.Request.Context(), caller, orderId)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

func CancelOrder(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := orderService.CancelOrder(ctx.Request.Context(), caller, orderId)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order cancelled successfully.", "order": order})
}

func GetOrders(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}
	offset := (page - 1) * limit

	search := ctx.Query("search")
	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	orders, count, err := orderService.ListAllOrders(ctx.Request.Context(), caller, search, sortOrder, limit, offset)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	previousPage := page - 1
	totalPages := (count + int64(limit) - 1) / int64(limit)

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  totalPages > int64(page),
			"previousPage": previousPage,
			"nextPage":     page + 1,
		},
	})
}

func UpdateOrderStatus(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := orderService.UpdateStatus(ctx.Request.Context(), caller, orderId, body.Status)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully.", "order": order})
}

func UpdateOrderPaymentStatus(ctx *gin.Context) {
	caller := middlewares.CallerIdentity(ctx)

	var body struct {
		PaymentStatus string `json:"paymentStatus" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := orderService.UpdatePaymentStatus(ctx.Request.Context(), caller, orderId, body.PaymentStatus)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Payment status updated successfully.", "order": order})
}
