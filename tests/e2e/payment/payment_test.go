//go:build e2e

package payment_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"
	"time"

	"venuehub-api/internal/domain/identity"
	"venuehub-api/internal/handler/dto/request"
	"venuehub-api/internal/handler/dto/response"
	"venuehub-api/tests/common/authtest"
	"venuehub-api/tests/common/dbtest"
	"venuehub-api/tests/common/httptest"
	"venuehub-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL = "/api/bookings"
	intentURL   = "/api/payments/intent"
	verifyURL   = "/api/payments/verify"
)

type PaymentSuite struct {
	e2e.SharedSuite
}

func TestPaymentSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(PaymentSuite))
}

func (s *PaymentSuite) jwt() *authtest.JWTHelper {
	return authtest.NewJWTHelper(s.Config.Auth)
}

func (s *PaymentSuite) sign(orderRef, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(s.Config.Payment.GatewaySecret))
	mac.Write([]byte(orderRef + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// creates a pending booking and returns it with the customer's token
func (s *PaymentSuite) createBooking(t *testing.T, customerID uuid.UUID) (response.BookingResponse, string) {
	t.Helper()

	offeringID := dbtest.CreateTestOffering(t, s.DB, uuid.New(), "City Loft", "capacity", 3)
	variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

	token := s.jwt().GenerateToken(t, customerID, identity.RoleCustomer)

	reqBody := request.CreateBookingRequest{
		OfferingID:    offeringID,
		Date:          time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"),
		Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
		ExpectedTotal: 50000,
	}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
	require.Equal(t, http.StatusCreated, w.Code, "booking setup failed: %s", w.Body.String())

	var created response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return created, token
}

func (s *PaymentSuite) createIntent(t *testing.T, bookingID uuid.UUID, token string) response.IntentResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, intentURL,
		request.CreateIntentRequest{BookingID: bookingID}, token)
	require.Equal(t, http.StatusCreated, w.Code, "intent creation failed: %s", w.Body.String())

	var intent response.IntentResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &intent))
	require.NotEmpty(t, intent.OrderRef)
	return intent
}

// =============================================================================
// TestCreateIntent - payment intent API tests
// =============================================================================

func (s *PaymentSuite) TestCreateIntent() {
	s.Run("Normal case: customer opens an intent for their booking", func() {
		t := s.T()

		booking, token := s.createBooking(t, uuid.New())
		intent := s.createIntent(t, booking.ID, token)

		require.Equal(t, booking.GrandTotal, intent.Amount)
		require.Equal(t, s.Config.Payment.Currency, intent.Currency)
		require.Equal(t, s.Config.Payment.GatewayKeyID, intent.KeyID)
	})

	s.Run("Normal case: a retry supersedes the previous intent", func() {
		t := s.T()

		booking, token := s.createBooking(t, uuid.New())
		first := s.createIntent(t, booking.ID, token)
		second := s.createIntent(t, booking.ID, token)
		require.NotEqual(t, first.OrderRef, second.OrderRef)

		// The superseded intent no longer settles
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, request.VerifyPaymentRequest{
			OrderRef:  first.OrderRef,
			PaymentID: "pay_stale",
			Signature: s.sign(first.OrderRef, "pay_stale"),
		}, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "VERIFICATION_FAILED")
	})

	s.Run("Error case: only the booking's customer may pay", func() {
		t := s.T()

		booking, _ := s.createBooking(t, uuid.New())
		strangerToken := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, intentURL,
			request.CreateIntentRequest{BookingID: booking.ID}, strangerToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "FORBIDDEN")
	})

	s.Run("Error case: unknown booking", func() {
		t := s.T()

		token := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, intentURL,
			request.CreateIntentRequest{BookingID: uuid.New()}, token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "BOOKING_NOT_FOUND")
	})
}

// =============================================================================
// TestVerifyPayment - settlement callback API tests
// =============================================================================

func (s *PaymentSuite) TestVerifyPayment() {
	s.Run("Normal case: valid callback settles the booking", func() {
		t := s.T()

		booking, token := s.createBooking(t, uuid.New())
		intent := s.createIntent(t, booking.ID, token)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, request.VerifyPaymentRequest{
			OrderRef:  intent.OrderRef,
			PaymentID: "pay_123",
			Signature: s.sign(intent.OrderRef, "pay_123"),
		}, "")
		require.Equal(t, http.StatusOK, w.Code, "settlement failed: %s", w.Body.String())

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+booking.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, dw.Code)

		var settled response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &settled))
		require.Equal(t, "confirmed", settled.Status)
		require.Equal(t, "paid", settled.PaymentStatus)

		// Both parties get their own confirmation job
		rows, err := s.DB.Query(context.Background(),
			"SELECT payload->>'recipient_id' FROM notification_jobs WHERE topic = 'payment_confirmed'")
		require.NoError(t, err)
		defer rows.Close()

		var recipients []string
		for rows.Next() {
			var recipient string
			require.NoError(t, rows.Scan(&recipient))
			recipients = append(recipients, recipient)
		}
		require.NoError(t, rows.Err())
		require.ElementsMatch(t,
			[]string{settled.CustomerID.String(), settled.VendorID.String()}, recipients)
	})

	s.Run("Normal case: redelivered callback is a no-op 200", func() {
		t := s.T()

		booking, token := s.createBooking(t, uuid.New())
		intent := s.createIntent(t, booking.ID, token)

		callback := request.VerifyPaymentRequest{
			OrderRef:  intent.OrderRef,
			PaymentID: "pay_123",
			Signature: s.sign(intent.OrderRef, "pay_123"),
		}

		first := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, callback, "")
		require.Equal(t, http.StatusOK, first.Code)

		second := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, callback, "")
		require.Equal(t, http.StatusOK, second.Code, "redelivery must stay 200: %s", second.Body.String())
	})

	s.Run("Error case: forged signature is rejected", func() {
		t := s.T()

		booking, token := s.createBooking(t, uuid.New())
		intent := s.createIntent(t, booking.ID, token)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, request.VerifyPaymentRequest{
			OrderRef:  intent.OrderRef,
			PaymentID: "pay_123",
			Signature: "deadbeef",
		}, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "VERIFICATION_FAILED")

		// The booking stays pending and unpaid
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+booking.ID.String(), nil, token)
		var unsettled response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &unsettled))
		require.Equal(t, "pending", unsettled.Status)
		require.Equal(t, "unpaid", unsettled.PaymentStatus)
	})

	s.Run("Error case: unknown order reference", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, request.VerifyPaymentRequest{
			OrderRef:  "order_missing",
			PaymentID: "pay_123",
			Signature: s.sign("order_missing", "pay_123"),
		}, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "INTENT_NOT_FOUND")
	})

	s.Run("Error case: callback after cancellation is rejected", func() {
		t := s.T()

		vendorID := uuid.New()
		offeringID := dbtest.CreateTestOffering(t, s.DB, vendorID, "City Loft", "capacity", 3)
		variantID := dbtest.CreateTestVariant(t, s.DB, offeringID, "Full Day", 50000, 1, 0)

		customerToken := s.jwt().GenerateToken(t, uuid.New(), identity.RoleCustomer)
		vendorToken := s.jwt().GenerateToken(t, vendorID, identity.RoleVendor)

		reqBody := request.CreateBookingRequest{
			OfferingID:    offeringID,
			Date:          time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"),
			Lines:         []request.BookingLineRequest{{VariantID: variantID, Quantity: 1}},
			ExpectedTotal: 50000,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, customerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		intent := s.createIntent(t, created.ID, customerToken)

		cw := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+created.ID.String()+"/status",
			request.UpdateBookingStatusRequest{Status: "cancelled"}, vendorToken)
		require.Equal(t, http.StatusOK, cw.Code)

		vw := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, request.VerifyPaymentRequest{
			OrderRef:  intent.OrderRef,
			PaymentID: "pay_123",
			Signature: s.sign(intent.OrderRef, "pay_123"),
		}, "")
		httptest.AssertErrorResponse(t, vw, http.StatusConflict, "BOOKING_CANCELLED")
	})
}
