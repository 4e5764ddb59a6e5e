//go:build e2e

package booking_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"venuehub-api/internal/domain/identity"
	"venuehub-api/internal/handler/dto/request"
	"venuehub-api/internal/handler/dto/response"
	"venuehub-api/tests/common/authtest"
	"venuehub-api/tests/common/dbtest"
	"venuehub-api/tests/common/httptest"
	"venuehub-api/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) jwt() *authtest.JWTHelper {
	return authtest.NewJWTHelper(s.Config.Auth)
}

func (s *BookingSuite) bookingDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

// =============================================================================
// TestCreateBooking - booking creation API tests
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: customer books a capacity offering", func() {
		t := s.T()

		vendorID := uuid.New()
		customerID := uuid.New()
		offeringID := dbtest.CreateTestOffering(t, s.DB, vendorID, "City Loft", "capacity", 3)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		token := s.jwt().GenerateToken(t, customerID, identity.RoleCustomer)

		note := "side entrance please"
		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			Note:          &note,
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 50000,
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, "Should create booking successfully: %s", w.Body.String())

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, offeringID, created.OfferingID)
		require.Equal(t, customerID, created.CustomerID)
		require.Equal(t, "pending", created.Status)
		require.Equal(t, "unpaid", created.PaymentStatus)
		require.Equal(t, int64(50000), created.SubTotal)
		require.Equal(t, int64(9000), created.Tax)
		require.Equal(t, int64(59000), created.GrandTotal)
		require.NotNil(t, created.Note)

		// Detail read-back through the query side
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, dw.Code)

		var detail response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &detail))

		expected := &response.BookingResponse{
			ID:            created.ID,
			OfferingID:    offeringID,
			OfferingTitle: "City Loft",
			CustomerID:    customerID,
			VendorID:      vendorID,
			Items:         []response.LineItemResponse{{Name: "Full Day", Unit: "day", Quantity: 1, UnitPrice: 50000}},
			SubTotal:      50000,
			Tax:           9000,
			GrandTotal:    59000,
			Status:        "pending",
			PaymentStatus: "unpaid",
			Note:          &note,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "Day", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &detail, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: tampered expected total is rejected", func() {
		t := s.T()

		offeringID := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "City Loft", "capacity", 3)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		token := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 1,
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "PRICE_MISMATCH")
	})

	s.Run("Error case: capacity exhausted on the day", func() {
		t := s.T()

		offeringID := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "Tiny Studio", "capacity", 1)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		token := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 50000,
		}

		first := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, first.Code)

		second := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		httptest.AssertErrorResponse(t, second, http.StatusConflict, "CAPACITY_EXCEEDED")
	})

	s.Run("Error case: slot already claimed", func() {
		t := s.T()

		offeringID := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "Conference Room", "slots", 0)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Morning Session", 20000, 1, 0)
		slotID := dbtest.CreateTestSlot(t, s.DB, offeringID, "09:00", "13:00")

		token := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			SlotID:        &slotID,
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 20000,
		}

		first := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, first.Code, "first claim should win: %s", first.Body.String())

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, first.Body, &created))
		require.NotNil(t, created.Slot)
		require.Equal(t, "09:00", created.Slot.StartTime)

		second := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		httptest.AssertErrorResponse(t, second, http.StatusConflict, "SLOT_UNAVAILABLE")
	})

	s.Run("Error case: slot id from another offering", func() {
		t := s.T()

		offeringID := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "Conference Room", "slots", 0)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Morning Session", 20000, 1, 0)
		dbtest.CreateTestSlot(t, s.DB, offeringID, "09:00", "13:00")

		otherOffering := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "Other Room", "slots", 0)
		foreignSlot := dbtest.CreateTestSlot(t, s.DB, otherOffering, "09:00", "13:00")

		token := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			SlotID:        &foreignSlot,
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 20000,
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "UNKNOWN_SLOT")
	})

	s.Run("Normal case: concurrent claims on one slot yield a single winner", func() {
		t := s.T()

		offeringID := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "Conference Room", "slots", 0)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Morning Session", 20000, 1, 0)
		slotID := dbtest.CreateTestSlot(t, s.DB, offeringID, "09:00", "13:00")

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			SlotID:        &slotID,
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 20000,
		}

		tokens := []string{
			s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer),
			s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer),
		}

		codes := make(chan int, len(tokens))
		var wg sync.WaitGroup
		for _, token := range tokens {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
				codes <- w.Code
			}()
		}
		wg.Wait()
		close(codes)

		var got []int
		for code := range codes {
			got = append(got, code)
		}
		require.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, got,
			"exactly one of the racing claims should win")
	})

	s.Run("Error case: unauthenticated request", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, map[string]any{}, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
	})
}

// =============================================================================
// TestUpdateStatus - booking lifecycle API tests
// =============================================================================

func (s *BookingSuite) TestUpdateStatus() {
	s.Run("Normal case: vendor confirms then completes a booking", func() {
		t := s.T()

		vendorID := uuid.New()
		offeringID := dbtest.CreateTestOffering(t, s.DB, vendorID, "City Loft", "capacity", 3)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		customerToken := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)
		vendorToken := s.jwt().GenerateToken(t, vendorID, identity.RoleVendor)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 50000,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, customerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		statusURL := bookingsURL + "/" + created.ID.String() + "/status"

		cw := httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL,
			request.UpdateBookingStatusRequest{Status: "confirmed"}, vendorToken)
		require.Equal(t, http.StatusOK, cw.Code, "vendor should confirm: %s", cw.Body.String())

		var confirmed response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, cw.Body, &confirmed))
		require.Equal(t, "confirmed", confirmed.Status)

		dw := httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL,
			request.UpdateBookingStatusRequest{Status: "completed"}, vendorToken)
		require.Equal(t, http.StatusOK, dw.Code)
	})

	s.Run("Error case: skipping confirmation is rejected", func() {
		t := s.T()

		vendorID := uuid.New()
		offeringID := dbtest.CreateTestOffering(t, s.DB, vendorID, "City Loft", "capacity", 3)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		customerToken := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)
		vendorToken := s.jwt().GenerateToken(t, vendorID, identity.RoleVendor)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 50000,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, customerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		uw := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+created.ID.String()+"/status",
			request.UpdateBookingStatusRequest{Status: "completed"}, vendorToken)
		httptest.AssertErrorResponse(t, uw, http.StatusUnprocessableEntity, "INVALID_STATUS_CHANGE")
	})

	s.Run("Error case: another vendor cannot touch the booking", func() {
		t := s.T()

		offeringID := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "City Loft", "capacity", 3)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		customerToken := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)
		strangerToken := s.jwt().GenerateToken(t, uuid.New(), identity.RoleVendor)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 50000,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, customerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		uw := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+created.ID.String()+"/status",
			request.UpdateBookingStatusRequest{Status: "confirmed"}, strangerToken)
		httptest.AssertErrorResponse(t, uw, http.StatusForbidden, "FORBIDDEN")
	})

	s.Run("Normal case: cancelling frees the day for a new booking", func() {
		t := s.T()

		vendorID := uuid.New()
		offeringID := dbtest.CreateTestOffering(t, s.DB, vendorID, "Tiny Studio", "capacity", 1)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		customerToken := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)
		vendorToken := s.jwt().GenerateToken(t, vendorID, identity.RoleVendor)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 50000,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, customerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		cw := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+created.ID.String()+"/status",
			request.UpdateBookingStatusRequest{Status: "cancelled"}, vendorToken)
		require.Equal(t, http.StatusOK, cw.Code)

		again := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, customerToken)
		require.Equal(t, http.StatusCreated, again.Code, "released capacity should be reusable: %s", again.Body.String())
	})
}

// =============================================================================
// TestSweepExpired - TTL sweep over stale pending bookings
// =============================================================================

func (s *BookingSuite) backdateBooking(t *testing.T, id uuid.UUID, age time.Duration) {
	_, err := s.DB.Exec(context.Background(),
		"UPDATE bookings SET created_at = $2 WHERE id = $1",
		id, time.Now().UTC().Add(-age))
	require.NoError(t, err, "failed to backdate booking")
}

func (s *BookingSuite) TestSweepExpired() {
	staleAge := func() time.Duration {
		return s.Config.Booking.PendingTTL + time.Minute
	}

	s.Run("Normal case: stale pending booking is cancelled and its slot freed", func() {
		t := s.T()

		offeringID := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "Conference Room", "slots", 0)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Morning Session", 20000, 1, 0)
		slotID := dbtest.CreateTestSlot(t, s.DB, offeringID, "09:00", "13:00")

		token := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			SlotID:        &slotID,
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 20000,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		s.backdateBooking(t, created.ID, staleAge())

		swept, err := s.Sweeper.CancelExpired(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, swept)

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, dw.Code)
		var detail response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &detail))
		require.Equal(t, "cancelled", detail.Status)
		require.Equal(t, "unpaid", detail.PaymentStatus)

		again := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, again.Code, "swept slot should be claimable again: %s", again.Body.String())
	})

	s.Run("Normal case: sweeping a capacity booking returns the day's seat", func() {
		t := s.T()

		offeringID := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "Tiny Studio", "capacity", 1)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		token := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 50000,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		s.backdateBooking(t, created.ID, staleAge())

		swept, err := s.Sweeper.CancelExpired(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, swept)

		again := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, again.Code, "released day capacity should be reusable: %s", again.Body.String())
	})

	s.Run("Normal case: fresh pending booking survives the sweep", func() {
		t := s.T()

		offeringID := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "City Loft", "capacity", 3)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		token := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 50000,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		swept, err := s.Sweeper.CancelExpired(context.Background())
		require.NoError(t, err)
		require.Zero(t, swept)

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, dw.Code)
		var detail response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &detail))
		require.Equal(t, "pending", detail.Status)
	})
}

// =============================================================================
// TestListBookings - customer and vendor listings
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	s.Run("Normal case: customer and vendor each see the booking", func() {
		t := s.T()

		vendorID := uuid.New()
		customerID := uuid.New()
		offeringID := dbtest.CreateTestOffering(t, s.DB, vendorID, "City Loft", "capacity", 3)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		customerToken := s.jwt().GenerateToken(t, customerID, identity.RoleCustomer)
		vendorToken := s.jwt().GenerateToken(t, vendorID, identity.RoleVendor)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 50000,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, customerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, customerToken)
		require.Equal(t, http.StatusOK, lw.Code)
		var mine []response.BookingListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &mine))
		require.Len(t, mine, 1)
		require.Equal(t, "City Loft", mine[0].OfferingTitle)

		vw := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/vendor/bookings", nil, vendorToken)
		require.Equal(t, http.StatusOK, vw.Code)
		var theirs []response.BookingListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, vw.Body, &theirs))
		require.Len(t, theirs, 1)
	})

	s.Run("Error case: third party cannot read booking detail", func() {
		t := s.T()

		offeringID := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "City Loft", "capacity", 3)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		customerToken := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)
		strangerToken := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          s.bookingDate(),
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 50000,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, customerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, strangerToken)
		httptest.AssertErrorResponse(t, dw, http.StatusForbidden, "FORBIDDEN")
	})
}
