package api

import (
	"errors"
	"net/http"

	reqdto "venuehub-api/internal/handler/dto/request"
	resdto "venuehub-api/internal/handler/dto/response"
	"venuehub-api/internal/handler/httperr"
	"venuehub-api/internal/handler/middleware"
	"venuehub-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{paymentCommands: paymentCommands}
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingPrincipal,
			"INTERNAL_ERROR", "Internal server error")
		return
	}

	var req reqdto.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"INVALID_REQUEST", "Invalid request format")
		return
	}

	result, err := h.paymentCommands.CreateIntent(c.Request.Context(), req.BookingID, principal)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err,
				"BOOKING_NOT_FOUND", "Booking not found")
		case errors.Is(err, commands.ErrNotBookingOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err,
				"FORBIDDEN", "Only the booking's customer may pay for it")
		case errors.Is(err, commands.ErrBookingCancelled):
			httperr.AbortWithError(c, http.StatusConflict, err,
				"BOOKING_CANCELLED", "Cannot pay for a cancelled booking")
		case errors.Is(err, commands.ErrAlreadySettled):
			httperr.AbortWithError(c, http.StatusConflict, err,
				"ALREADY_SETTLED", "Booking is already paid")
		case errors.Is(err, commands.ErrTooManyAttempts):
			httperr.AbortWithError(c, http.StatusTooManyRequests, err,
				"TOO_MANY_ATTEMPTS", "Too many payment attempts, try again later")
		case errors.Is(err, commands.ErrGatewayUnavailable):
			httperr.AbortWithError(c, http.StatusBadGateway, err,
				"GATEWAY_UNAVAILABLE", "Payment gateway unavailable, try again later")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				"INTERNAL_ERROR", "Internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromIntentResult(result))
}

// VerifyPayment is the public gateway callback. Signature verification makes
// it safe without a session; a redelivered callback returns 200.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req reqdto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"INVALID_REQUEST", "Invalid request format")
		return
	}

	err := h.paymentCommands.VerifySettlement(c.Request.Context(), req.OrderRef, req.PaymentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrIntentNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err,
				"INTENT_NOT_FOUND", "No payment intent for the given order reference")
		case errors.Is(err, commands.ErrVerificationFailed):
			httperr.AbortWithError(c, http.StatusBadRequest, err,
				"VERIFICATION_FAILED", "Payment signature verification failed")
		case errors.Is(err, commands.ErrBookingCancelled):
			httperr.AbortWithError(c, http.StatusConflict, err,
				"BOOKING_CANCELLED", "Booking was cancelled before settlement")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				"INTERNAL_ERROR", "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.VerifyResponse{Status: "ok"})
}
