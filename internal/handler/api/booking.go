package api

import (
	"errors"
	"net/http"

	"venuehub-api/internal/domain/booking"
	reqdto "venuehub-api/internal/handler/dto/request"
	resdto "venuehub-api/internal/handler/dto/response"
	"venuehub-api/internal/handler/httperr"
	"venuehub-api/internal/handler/middleware"
	"venuehub-api/internal/usecase/commands"
	"venuehub-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingPrincipal,
			"INTERNAL_ERROR", "Internal server error")
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"INVALID_REQUEST", "Invalid request format")
		return
	}

	input, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"INVALID_DATE", "Date must be formatted as 2006-01-02")
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), input, principal)
	if err != nil {
		h.abortCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

func (h *BookingHandler) abortCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrOfferingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err,
			"OFFERING_NOT_FOUND", "Offering not found")
	case errors.Is(err, booking.ErrZeroDate):
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"INVALID_DATE", "Booking date is required")
	case errors.Is(err, booking.ErrNoteTooLong):
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"NOTE_TOO_LONG", "Note cannot exceed 500 characters")
	case errors.Is(err, commands.ErrUnknownSlot):
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"UNKNOWN_SLOT", "Requested slot does not belong to the offering")
	case errors.Is(err, booking.ErrNoLineItems):
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"NO_LINE_ITEMS", "At least one line item is required")
	case errors.Is(err, booking.ErrVariantNotFound):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err,
			"VARIANT_NOT_FOUND", "Requested variant not found or inactive")
	case errors.Is(err, booking.ErrInvalidQuantity):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err,
			"INVALID_QUANTITY", "Requested quantity is out of range")
	case errors.Is(err, booking.ErrPriceMismatch):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err,
			"PRICE_MISMATCH", "Expected total does not match catalog prices")
	case errors.Is(err, commands.ErrSlotUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err,
			"SLOT_UNAVAILABLE", err.Error())
	case errors.Is(err, commands.ErrCapacityExceeded):
		httperr.AbortWithError(c, http.StatusConflict, err,
			"CAPACITY_EXCEEDED", err.Error())
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err,
			"INTERNAL_ERROR", "Internal server error")
	}
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingPrincipal,
			"INTERNAL_ERROR", "Internal server error")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"INVALID_ID", "Invalid booking ID format")
		return
	}

	view, err := h.bookingQueries.GetBooking(c.Request.Context(), id, principal)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err,
				"BOOKING_NOT_FOUND", "Booking not found")
		case errors.Is(err, queries.ErrNotBookingParty):
			httperr.AbortWithError(c, http.StatusForbidden, err,
				"FORBIDDEN", "Not a party to this booking")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				"INTERNAL_ERROR", "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingPrincipal,
			"INTERNAL_ERROR", "Internal server error")
		return
	}

	items, err := h.bookingQueries.ListCustomerBookings(c.Request.Context(), principal)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err,
			"INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, toListResponse(items))
}

func (h *BookingHandler) GetVendorBookings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingPrincipal,
			"INTERNAL_ERROR", "Internal server error")
		return
	}

	items, err := h.bookingQueries.ListVendorBookings(c.Request.Context(), principal)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err,
			"INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, toListResponse(items))
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingPrincipal,
			"INTERNAL_ERROR", "Internal server error")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"INVALID_ID", "Invalid booking ID format")
		return
	}

	var req reqdto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"INVALID_REQUEST", "Invalid request format")
		return
	}

	view, err := h.bookingCommands.UpdateStatus(c.Request.Context(), id, req.Status, principal)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err,
				"BOOKING_NOT_FOUND", "Booking not found")
		case errors.Is(err, commands.ErrNotBookingVendor):
			httperr.AbortWithError(c, http.StatusForbidden, err,
				"FORBIDDEN", "Only the booking's vendor may change its status")
		case errors.Is(err, commands.ErrInvalidStatusChange):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err,
				"INVALID_STATUS_CHANGE", "Requested status change is not allowed")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				"INTERNAL_ERROR", "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func toListResponse(items []*queries.BookingListItem) []*resdto.BookingListResponse {
	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}
	return response
}
