package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/errs"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/paygate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGate struct {
	lastParams paygate.CheckoutSessionParams
	session    *paygate.CheckoutSession
	err        error
}

func (f *fakeGate) CreateCheckoutSession(ctx context.Context, params paygate.CheckoutSessionParams) (*paygate.CheckoutSession, error) {
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	if f.session != nil {
		return f.session, nil
	}
	return &paygate.CheckoutSession{ID: "cs_test_1", URL: "https://pay.example/cs_test_1"}, nil
}

func (f *fakeGate) RetrieveSession(ctx context.Context, sessionID string) (*paygate.CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &paygate.CheckoutSession{ID: sessionID, Status: "open", PaymentStatus: "unpaid"}, nil
}

func newPaymentService(repo *mockRepo, gate paygate.Client) *PaymentService {
	svc := NewPaymentService(repo, gate, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestConvertAmount(t *testing.T) {
	// 30000 SYP rounds to 7 USD, charged as 700 cents.
	amount, cents := ConvertAmount(30000, "usd")
	assert.Equal(t, 7.0, amount)
	assert.Equal(t, int64(700), cents)

	// Tiny USD amounts hit the 0.5 floor.
	amount, cents = ConvertAmount(900, "usd")
	assert.Equal(t, 0.5, amount)
	assert.Equal(t, int64(50), cents)

	// SYP passes through with its own floor.
	amount, cents = ConvertAmount(30000, "syp")
	assert.Equal(t, 30000.0, amount)
	assert.Equal(t, int64(3000000), cents)

	amount, _ = ConvertAmount(400, "syp")
	assert.Equal(t, 1000.0, amount)
}

func TestCreateSessionGuards(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, &fakeGate{})

	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	booking.TotalAmount = 30000
	repo.On("FindByID", uint(3)).Return(booking, nil)

	// Wrong owner.
	_, err := svc.CreateSession(context.Background(), 99, "x@example.com", model.CreateSessionInput{BookingId: 3})
	assert.True(t, errs.IsKind(err, errs.KindForbidden))

	// Non-pending booking.
	booking.Status = constants.BOOKING_CONFIRMED
	_, err = svc.CreateSession(context.Background(), 1, "x@example.com", model.CreateSessionInput{BookingId: 3})
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))
}

func TestCreateSessionComputesCharge(t *testing.T) {
	repo := new(mockRepo)
	gate := &fakeGate{}
	svc := newPaymentService(repo, gate)

	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	booking.TotalAmount = 30000
	booking.BookingNumber = "DAM-1-42"
	repo.On("FindByID", uint(3)).Return(booking, nil)

	info, err := svc.CreateSession(context.Background(), 1, "x@example.com", model.CreateSessionInput{
		BookingId: 3, Currency: "usd",
	})
	require.NoError(t, err)
	assert.Equal(t, 7.0, info.Amount)
	assert.Equal(t, int64(700), info.AmountInCents)
	assert.Equal(t, "usd", info.Currency)
	assert.Equal(t, "cs_test_1", info.SessionId)
	assert.Equal(t, "3", gate.lastParams.Metadata["bookingId"])
	assert.Equal(t, "1", gate.lastParams.Metadata["userId"])
}

func TestCreateSessionProviderFailure(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, &fakeGate{err: errors.New("gateway down")})

	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	repo.On("FindByID", uint(3)).Return(booking, nil)

	_, err := svc.CreateSession(context.Background(), 1, "x@example.com", model.CreateSessionInput{BookingId: 3})
	assert.True(t, errs.IsKind(err, errs.KindExternal))
}

func sessionEvent(t *testing.T, eventType, bookingID string) *paygate.Event {
	t.Helper()
	object, err := json.Marshal(map[string]interface{}{
		"id":             "cs_1",
		"payment_intent": "pi_1",
		"metadata":       map[string]string{"bookingId": bookingID, "userId": "1"},
	})
	require.NoError(t, err)
	event := &paygate.Event{ID: "evt_1", Type: eventType}
	event.Data.Object = object
	return event
}

func intentEvent(t *testing.T, eventType, bookingID, lastError string) *paygate.Event {
	t.Helper()
	object, err := json.Marshal(map[string]interface{}{
		"id":                 "pi_1",
		"last_error_message": lastError,
		"metadata":           map[string]string{"bookingId": bookingID, "userId": "1"},
	})
	require.NoError(t, err)
	event := &paygate.Event{ID: "evt_2", Type: eventType}
	event.Data.Object = object
	return event
}

func TestSessionCompletedIsAuthoritative(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)

	// Booking was independently cancelled; completed still confirms.
	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	booking.Status = constants.BOOKING_CANCELLED
	repo.On("FindByID", uint(3)).Return(booking, nil)
	repo.On("UpdateWhere", uint(3), map[string]interface{}(nil),
		mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["status"] == constants.BOOKING_CONFIRMED &&
				fields["payment_status"] == constants.PAYMENT_PAID &&
				fields["transaction_id"] == "pi_1"
		})).Return(int64(1), nil)

	err := svc.ApplyEvent(context.Background(), sessionEvent(t, paygate.EventCheckoutSessionCompleted, "3"))
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSessionExpiredOnlyCancelsPending(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)

	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	repo.On("FindByID", uint(3)).Return(booking, nil)
	repo.On("UpdateWhere", uint(3), map[string]interface{}{"status": constants.BOOKING_PENDING},
		mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["status"] == constants.BOOKING_CANCELLED &&
				fields["cancellation_reason"] == constants.MSG_SESSION_EXPIRED
		})).Return(int64(1), nil)

	err := svc.ApplyEvent(context.Background(), sessionEvent(t, paygate.EventCheckoutSessionExpired, "3"))
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSessionExpiredReplayIsIdempotent(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)

	// Already cancelled by the first delivery; the guarded update matches
	// zero rows and the replay is a clean no-op.
	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	booking.Status = constants.BOOKING_CANCELLED
	repo.On("FindByID", uint(3)).Return(booking, nil)
	repo.On("UpdateWhere", uint(3), map[string]interface{}{"status": constants.BOOKING_PENDING},
		mock.Anything).Return(int64(0), nil)

	event := sessionEvent(t, paygate.EventCheckoutSessionExpired, "3")
	assert.NoError(t, svc.ApplyEvent(context.Background(), event))
	assert.NoError(t, svc.ApplyEvent(context.Background(), event))
}

func TestIntentSucceededGuardsPaymentStatus(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)

	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	repo.On("FindByID", uint(3)).Return(booking, nil)
	repo.On("UpdateWhere", uint(3), map[string]interface{}{"payment_status": constants.PAYMENT_PENDING},
		mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["payment_status"] == constants.PAYMENT_PAID &&
				fields["transaction_id"] == "pi_1"
		})).Return(int64(1), nil)

	err := svc.ApplyEvent(context.Background(), intentEvent(t, paygate.EventPaymentIntentSucceeded, "3", ""))
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestIntentFailedKeepsStatus(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)

	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	repo.On("FindByID", uint(3)).Return(booking, nil)
	repo.On("UpdateWhere", uint(3), map[string]interface{}{"status": constants.BOOKING_PENDING},
		mock.MatchedBy(func(fields map[string]interface{}) bool {
			_, touchesStatus := fields["status"]
			return fields["payment_status"] == constants.PAYMENT_FAILED &&
				fields["cancellation_reason"] == "card declined" &&
				!touchesStatus
		})).Return(int64(1), nil)

	err := svc.ApplyEvent(context.Background(), intentEvent(t, paygate.EventPaymentIntentFailed, "3", "card declined"))
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestIntentCanceledCancelsBooking(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)

	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	repo.On("FindByID", uint(3)).Return(booking, nil)
	repo.On("UpdateWhere", uint(3), map[string]interface{}{"status": constants.BOOKING_PENDING},
		mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["status"] == constants.BOOKING_CANCELLED &&
				fields["payment_status"] == constants.PAYMENT_CANCELLED
		})).Return(int64(1), nil)

	err := svc.ApplyEvent(context.Background(), intentEvent(t, paygate.EventPaymentIntentCanceled, "3", ""))
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestEventWithMissingBookingIsDropped(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)
	repo.On("FindByID", uint(3)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.ApplyEvent(context.Background(), sessionEvent(t, paygate.EventCheckoutSessionCompleted, "3"))
	assert.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateWhere", mock.Anything, mock.Anything, mock.Anything)
}

func TestEventWithoutMetadataIsDropped(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)

	err := svc.ApplyEvent(context.Background(), sessionEvent(t, paygate.EventCheckoutSessionExpired, ""))
	assert.NoError(t, err)
	repo.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestPaymentHistoryFiltersPaidNonCancelled(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)

	repo.On("List", mock.MatchedBy(func(f model.BookingFilter) bool {
		return f.UserId == 1 &&
			f.PaymentStatus == constants.PAYMENT_PAID &&
			f.ExcludeStatus == constants.BOOKING_CANCELLED
	})).Return([]model.Booking{}, int64(0), nil)

	_, _, err := svc.History(1, 1, 10)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPaymentDetailsOwnership(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)
	repo.On("FindByID", uint(3)).Return(pendingBooking(3, 1, fixedNow.Add(72*time.Hour)), nil)

	_, err := svc.PaymentDetails(3, 99, constants.ROLE_USER)
	assert.True(t, errs.IsKind(err, errs.KindForbidden))

	// Admin can inspect any booking's payment.
	_, err = svc.PaymentDetails(3, 99, constants.ROLE_ADMIN)
	assert.NoError(t, err)
}

func TestInvoiceRequiresPaidBooking(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)
	repo.On("FindByID", uint(3)).Return(pendingBooking(3, 1, fixedNow.Add(72*time.Hour)), nil)

	_, err := svc.Invoice(3, 1, constants.ROLE_USER)
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))
	assert.Contains(t, err.Error(), constants.MSG_INVOICE_UNPAID)
}

func TestInvoiceAssembly(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)

	confirmedAt := fixedNow.Add(-time.Hour)
	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	booking.BookingNumber = "DAM-1-42"
	booking.Status = constants.BOOKING_CONFIRMED
	booking.PaymentStatus = constants.PAYMENT_PAID
	booking.PaymentMethod = strPtr("paygate")
	booking.TransactionId = strPtr("pi_1")
	booking.ConfirmedAt = &confirmedAt
	booking.Place = testPlace(5000)
	repo.On("FindByID", uint(3)).Return(booking, nil)
	repo.On("FindUser", uint(1)).Return(&model.User{
		Email:     "u@example.com",
		FirstName: strPtr("سامر"),
		LastName:  strPtr("الحلبي"),
	}, nil)

	invoice, err := svc.Invoice(3, 1, constants.ROLE_USER)
	require.NoError(t, err)
	assert.Equal(t, "INV-DAM-1-42", invoice.InvoiceNumber)
	assert.Equal(t, "DAM-1-42", invoice.BookingNumber)
	assert.Equal(t, fixedNow, invoice.IssuedAt)
	assert.Equal(t, "سامر الحلبي", invoice.CustomerName)
	assert.Equal(t, "u@example.com", invoice.CustomerEmail)
	assert.Equal(t, "الجامع الأموي", invoice.PlaceName)
	assert.Equal(t, 5000.0, invoice.Amount)
	assert.Equal(t, "paygate", invoice.PaymentMethod)
	assert.Equal(t, "pi_1", invoice.TransactionId)
	require.NotNil(t, invoice.PaidAt)
	assert.Equal(t, confirmedAt, *invoice.PaidAt)
}

func TestUnknownEventTypeIsIgnored(t *testing.T) {
	repo := new(mockRepo)
	svc := newPaymentService(repo, nil)

	err := svc.ApplyEvent(context.Background(), &paygate.Event{Type: "customer.created"})
	assert.NoError(t, err)
}
