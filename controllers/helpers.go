package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kamaumbugua/soko-api/services"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"error": message})
}

func sendValidationErrors(ctx *gin.Context, messages []string) {
	payload := make([]gin.H, 0, len(messages))
	for _, msg := range messages {
		payload = append(payload, gin.H{"msg": msg})
	}
	ctx.JSON(http.StatusBadRequest, gin.H{"errors": payload})
}

// handleServiceError translates the order workflow's error taxonomy into HTTP
// responses. Storage errors are logged and surfaced as an opaque 500.
func handleServiceError(ctx *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.ProductNotFoundError
		inactiveErr   *services.ProductInactiveError
		stockErr      *services.InsufficientStockError
		transitionErr *services.InvalidTransitionError
	)
	switch {
	case errors.As(err, &validationErr):
		sendValidationErrors(ctx, validationErr.Messages)
	case errors.As(err, &notFoundErr):
		sendErrorResponse(ctx, http.StatusBadRequest, notFoundErr.Error())
	case errors.As(err, &inactiveErr):
		sendErrorResponse(ctx, http.StatusBadRequest, inactiveErr.Error())
	case errors.As(err, &stockErr):
		sendErrorResponse(ctx, http.StatusBadRequest, stockErr.Error())
	case errors.As(err, &transitionErr):
		sendErrorResponse(ctx, http.StatusBadRequest, transitionErr.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		sendErrorResponse(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotAuthorized):
		sendErrorResponse(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrOrderNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	default:
		log.Println("Internal error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Internal server error")
	}
}
