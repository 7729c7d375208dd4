package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/kamaumbugua/soko-api/initializers"
	"github.com/kamaumbugua/soko-api/middlewares"
	"github.com/kamaumbugua/soko-api/models"
)

func getPaymentAccessToken() (string, error) {
	consumerKey := os.Getenv("PAYMENT_CONSUMER_KEY")
	consumerSecret := os.Getenv("PAYMENT_CONSUMER_SECRET")

	if consumerKey == "" || consumerSecret == "" {
		return "", fmt.Errorf("payment gateway credentials are not set")
	}

	requestBody := map[string]string{
		"consumer_key":    consumerKey,
		"consumer_secret": consumerSecret,
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(requestBody).
		Post(os.Getenv("PAYMENT_BASE_URL") + "/api/Auth/RequestToken")

	if err != nil {
		return "", err
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("payment token request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response map[string]any
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	token, ok := response["token"].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in response")
	}

	return token, nil
}

// gatewayErrorDetail keeps the status code and response body when the gateway
// answered with an error status, since err is nil on that path.
func gatewayErrorDetail(err error, resp *resty.Response) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("status %d: %s", resp.StatusCode(), resp.Body())
}

// InitiatePayment submits the order to the payment gateway and returns the
// redirect URL the client should send the shopper to.
func InitiatePayment(ctx *gin.Context) {
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

	if order.PaymentStatus == models.PaymentStatusCompleted {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order has already been paid for")
		return
	}
	if order.Status == models.OrderStatusCancelled {
		sendErrorResponse(ctx, http.StatusBadRequest, "Cannot pay for a cancelled order")
		return
	}

	token, err := getPaymentAccessToken()
	if err != nil {
		log.Println("Payment auth error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Payment authentication failed")
		return
	}

	notificationID := os.Getenv("PAYMENT_NOTIFICATION_ID")
	if notificationID == "" {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Missing payment configuration")
		return
	}

	gatewayOrder := map[string]any{
		"id":              order.OrderNumber,
		"currency":        os.Getenv("PAYMENT_CURRENCY"),
		"amount":          order.TotalAmount,
		"description":     fmt.Sprintf("Payment for order %s", order.OrderNumber),
		"callback_url":    os.Getenv("FRONTEND_URL") + "/payment/callback",
		"notification_id": notificationID,
		"billing_address": map[string]any{
			"line_1":       order.ShippingAddress.Street,
			"city":         order.ShippingAddress.City,
			"state":        order.ShippingAddress.State,
			"postal_code":  order.ShippingAddress.ZipCode,
			"country_code": order.ShippingAddress.Country,
		},
	}

	resp, err := resty.New().SetTimeout(30 * time.Second).
		R().
		SetHeaders(map[string]string{
			"Authorization": "Bearer " + token,
			"Accept":        "application/json",
			"Content-Type":  "application/json",
		}).
		SetBody(gatewayOrder).
		Post(os.Getenv("PAYMENT_BASE_URL") + "/api/Transactions/SubmitOrderRequest")

	if err != nil || resp.StatusCode() != 200 {
		log.Println("Payment gateway error:", gatewayErrorDetail(err, resp))
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to initiate payment")
		return
	}

	var gatewayResp map[string]any
	if err := json.Unmarshal(resp.Body(), &gatewayResp); err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Invalid response from payment gateway")
		return
	}

	redirectURL, rOK := gatewayResp["redirect_url"].(string)
	trackingID, tOK := gatewayResp["order_tracking_id"].(string)
	if !rOK || !tOK || redirectURL == "" || trackingID == "" {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Incomplete response from payment gateway")
		return
	}

	if err := initializers.DB.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("payment_tracking_id", trackingID).Error; err != nil {
		log.Printf("Order %d: tracking ID not saved: %s", order.ID, trackingID)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":           "Payment initiated. Redirect user to the payment page.",
		"redirect_url":      redirectURL,
		"order_id":          order.ID,
		"order_tracking_id": trackingID,
	})
}

func mapGatewayStatus(statusDesc string) string {
	switch statusDesc {
	case "Completed", "COMPLETED":
		return models.PaymentStatusCompleted
	case "Failed", "FAILED", "Invalid", "INVALID", "Reversed", "REVERSED":
		return models.PaymentStatusFailed
	default:
		return models.PaymentStatusPending
	}
}

// HandlePaymentIPN is called by the gateway when a transaction changes state.
// The reported status is never trusted directly; we query the gateway back.
func HandlePaymentIPN(ctx *gin.Context) {
	var trackingId, merchantRef string

	if ctx.Request.Method == http.MethodPost {
		var payload struct {
			OrderTrackingId        string `json:"OrderTrackingId"`
			OrderMerchantReference string `json:"OrderMerchantReference"`
		}

		if err := ctx.BindJSON(&payload); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid JSON")
			return
		}

		trackingId = payload.OrderTrackingId
		merchantRef = payload.OrderMerchantReference
	} else {
		trackingId = ctx.Query("orderTrackingId")
		merchantRef = ctx.Query("orderMerchantReference")
	}

	if trackingId == "" || merchantRef == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing parameters")
		return
	}

	token, err := getPaymentAccessToken()
	if err != nil {
		log.Println("Payment auth error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Authentication with payment gateway failed")
		return
	}

	statusURL := os.Getenv("PAYMENT_BASE_URL") + "/api/Transactions/GetTransactionStatus?orderTrackingId=" + trackingId

	resp, err := resty.New().R().
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Accept", "application/json").
		Get(statusURL)

	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to check payment status")
		return
	}

	var statusResp map[string]any
	if err := json.Unmarshal(resp.Body(), &statusResp); err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Invalid response from payment gateway")
		return
	}

	statusDesc := fmt.Sprint(statusResp["payment_status_description"])
	paymentStatus := mapGatewayStatus(statusDesc)

	if err := initializers.DB.Model(&models.Order{}).
		Where("payment_tracking_id = ?", trackingId).
		Update("payment_status", paymentStatus).Error; err != nil {
		log.Println("Payment status update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order payment status")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"orderNotificationType":  "IPNCHANGE",
		"orderTrackingId":        trackingId,
		"orderMerchantReference": merchantRef,
		"status":                 200,
	})
}
