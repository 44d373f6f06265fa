package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/config"
	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/errs"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/paygate"
	"github.com/yamamaalobaid/damascus-tour-guide/queue"
)

const paymentMethodGateway = "paygate"

// PaymentService bridges bookings to the external payment gateway: the
// session adapter (synchronous) and the webhook reconciler (asynchronous).
type PaymentService struct {
	repo  BookingRepo
	gate  paygate.Client
	retry *queue.RetryQueue
	now   func() time.Time
}

func NewPaymentService(repo BookingRepo, gate paygate.Client, retry *queue.RetryQueue) *PaymentService {
	return &PaymentService{repo: repo, gate: gate, retry: retry, now: time.Now}
}

// ConvertAmount applies the fixed SYP→USD rate and the provider's minimum
// charge floor. Amounts below floor are raised, never rejected.
func ConvertAmount(totalSYP float64, currency string) (amount float64, cents int64) {
	switch strings.ToLower(currency) {
	case "usd":
		amount = math.Round(totalSYP / constants.SYP_PER_USD)
		if amount < constants.MIN_CHARGE_USD {
			amount = constants.MIN_CHARGE_USD
		}
	default:
		amount = totalSYP
		if amount < constants.MIN_CHARGE_SYP {
			amount = constants.MIN_CHARGE_SYP
		}
	}
	return amount, int64(math.Round(amount * 100))
}

// CreateSession turns one pending booking into one provider checkout
// session. No local state is mutated; confirmation arrives via webhook.
func (s *PaymentService) CreateSession(ctx context.Context, userID uint, email string, input model.CreateSessionInput) (*model.CheckoutInfo, error) {
	if s.gate == nil {
		return nil, errs.External(constants.MSG_PAYMENT_UNAVAILABLE, nil)
	}

	booking, err := s.repo.FindByID(input.BookingId)
	if err != nil {
		return nil, errs.NotFound(constants.MSG_BOOKING_NOT_FOUND).Wrap(err)
	}
	if booking.UserId != userID {
		return nil, errs.Forbidden(constants.MSG_FORBIDDEN)
	}
	if booking.Status != constants.BOOKING_PENDING {
		return nil, errs.InvalidState(constants.MSG_BOOKING_NOT_PAYABLE)
	}

	currency := input.Currency
	if currency == "" {
		currency = "syp"
	}
	amount, cents := ConvertAmount(booking.TotalAmount, currency)

	productName := "حجز سياحي " + booking.BookingNumber
	if booking.Place != nil {
		productName = booking.Place.NameAr
	}
	clientURL := config.Config("CLIENT_URL")

	session, err := s.gate.CreateCheckoutSession(ctx, paygate.CheckoutSessionParams{
		AmountInCents: cents,
		Currency:      currency,
		ProductName:   productName,
		Description:   "رقم الحجز: " + booking.BookingNumber,
		CustomerEmail: email,
		SuccessURL:    clientURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     clientURL + "/payment/cancel",
		Metadata: map[string]string{
			"bookingId": strconv.FormatUint(uint64(booking.ID), 10),
			"userId":    strconv.FormatUint(uint64(userID), 10),
		},
	})
	if err != nil {
		return nil, errs.External(constants.MSG_PAYMENT_SESSION_ERROR, err)
	}

	return &model.CheckoutInfo{
		SessionId:     session.ID,
		URL:           session.URL,
		Amount:        amount,
		AmountInCents: cents,
		Currency:      currency,
		BookingNumber: booking.BookingNumber,
	}, nil
}

// PaymentDetails returns the booking whose payment fields the caller asked
// for. Admins can inspect any booking, users only their own.
func (s *PaymentService) PaymentDetails(bookingID, callerID uint, role string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(bookingID)
	if err != nil {
		return nil, errs.NotFound(constants.MSG_BOOKING_NOT_FOUND).Wrap(err)
	}
	if booking.UserId != callerID && role != constants.ROLE_ADMIN {
		return nil, errs.Forbidden(constants.MSG_FORBIDDEN)
	}
	return booking, nil
}

// History lists the caller's paid bookings, skipping cancelled ones.
func (s *PaymentService) History(userID uint, page, limit int) ([]model.Booking, int64, error) {
	return s.repo.List(model.BookingFilter{
		UserId:        userID,
		PaymentStatus: constants.PAYMENT_PAID,
		ExcludeStatus: constants.BOOKING_CANCELLED,
		Page:          page,
		Limit:         limit,
	})
}

// Invoice assembles an invoice for a paid booking. The number is derived
// from the booking number, so re-requesting yields the same invoice.
func (s *PaymentService) Invoice(bookingID, callerID uint, role string) (*model.Invoice, error) {
	booking, err := s.PaymentDetails(bookingID, callerID, role)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus != constants.PAYMENT_PAID {
		return nil, errs.InvalidState(constants.MSG_INVOICE_UNPAID)
	}

	invoice := &model.Invoice{
		InvoiceNumber:  "INV-" + booking.BookingNumber,
		BookingNumber:  booking.BookingNumber,
		IssuedAt:       s.now(),
		ServiceType:    booking.ServiceType,
		BookingDate:    booking.BookingDate,
		NumberOfGuests: booking.NumberOfGuests,
		Amount:         booking.TotalAmount,
		Currency:       booking.Currency,
		PaidAt:         booking.ConfirmedAt,
	}
	if booking.PaymentMethod != nil {
		invoice.PaymentMethod = *booking.PaymentMethod
	}
	if booking.TransactionId != nil {
		invoice.TransactionId = *booking.TransactionId
	}
	if booking.Place != nil {
		invoice.PlaceName = booking.Place.NameAr
	}
	if user, err := s.repo.FindUser(booking.UserId); err == nil {
		invoice.CustomerEmail = user.Email
		name := ""
		if user.FirstName != nil {
			name = *user.FirstName
		}
		if user.LastName != nil {
			name = strings.TrimSpace(name + " " + *user.LastName)
		}
		invoice.CustomerName = name
	}
	return invoice, nil
}

// CheckSession looks up a session's current status at the provider.
func (s *PaymentService) CheckSession(ctx context.Context, sessionID string) (*paygate.CheckoutSession, error) {
	if s.gate == nil {
		return nil, errs.External(constants.MSG_PAYMENT_UNAVAILABLE, nil)
	}
	session, err := s.gate.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, errs.External(constants.MSG_PAYMENT_SESSION_ERROR, err)
	}
	return session, nil
}

// ProcessWebhook verifies and applies one provider delivery. The provider
// only needs a 2xx to stop redelivering, so reconciliation failures are
// pushed onto the retry queue rather than failing the response.
func (s *PaymentService) ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := paygate.ConstructEvent(payload, sigHeader, config.Config("PAYGATE_WEBHOOK_SECRET"))
	if err != nil {
		return errs.Validation("invalid webhook signature").Wrap(err)
	}

	if err := s.ApplyEvent(ctx, event); err != nil {
		log.Printf("webhook %s (%s) reconciliation failed: %v", event.ID, event.Type, err)
		if s.retry != nil {
			if qErr := s.retry.Enqueue(ctx, payload); qErr != nil {
				log.Printf("failed to enqueue webhook %s for retry: %v", event.ID, qErr)
			}
		}
	}
	return nil
}

// RetryHandler re-applies a stored webhook payload. Signature was already
// verified on first delivery.
func (s *PaymentService) RetryHandler(ctx context.Context, payload []byte) error {
	event, err := paygate.ParseEvent(payload)
	if err != nil {
		return err
	}
	return s.ApplyEvent(ctx, event)
}

// ApplyEvent reconciles one provider event against booking state. Each
// kind carries its own guard; a guard that no longer holds is a no-op,
// not an error.
func (s *PaymentService) ApplyEvent(ctx context.Context, event *paygate.Event) error {
	switch event.Type {
	case paygate.EventCheckoutSessionCompleted:
		return s.onSessionCompleted(event)
	case paygate.EventCheckoutSessionExpired:
		return s.onSessionExpired(event)
	case paygate.EventPaymentIntentSucceeded:
		return s.onIntentSucceeded(event)
	case paygate.EventPaymentIntentFailed:
		return s.onIntentFailed(event)
	case paygate.EventPaymentIntentCanceled:
		return s.onIntentCanceled(event)
	default:
		log.Printf("ignoring unhandled webhook event type %s", event.Type)
		return nil
	}
}

func bookingIDFromMetadata(metadata map[string]string) (uint, bool) {
	raw, ok := metadata["bookingId"]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// lookupBooking resolves the event's booking. A missing booking is final:
// retrying the event cannot make it appear, so it is logged and dropped.
func (s *PaymentService) lookupBooking(metadata map[string]string) (*model.Booking, bool, error) {
	id, ok := bookingIDFromMetadata(metadata)
	if !ok {
		log.Printf("webhook event without usable bookingId metadata, dropping")
		return nil, false, nil
	}
	booking, err := s.repo.FindByID(id)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) || isRecordNotFound(err) {
			log.Printf("webhook references missing booking %d, dropping", id)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load booking %d: %w", id, err)
	}
	return booking, true, nil
}

// onSessionCompleted treats the provider's completed signal as
// authoritative: it confirms and marks paid regardless of the booking's
// current status.
func (s *PaymentService) onSessionCompleted(event *paygate.Event) error {
	session, err := event.Session()
	if err != nil {
		return err
	}
	booking, ok, err := s.lookupBooking(session.Metadata)
	if err != nil || !ok {
		return err
	}

	txID := session.PaymentIntentID
	if txID == "" {
		txID = session.ID
	}
	_, err = s.repo.UpdateWhere(booking.ID, nil, map[string]interface{}{
		"status":         constants.BOOKING_CONFIRMED,
		"payment_status": constants.PAYMENT_PAID,
		"payment_method": paymentMethodGateway,
		"transaction_id": txID,
		"confirmed_at":   s.now(),
	})
	return err
}

// onSessionExpired cancels only a still-pending booking; anything that
// progressed meanwhile is left alone.
func (s *PaymentService) onSessionExpired(event *paygate.Event) error {
	session, err := event.Session()
	if err != nil {
		return err
	}
	booking, ok, err := s.lookupBooking(session.Metadata)
	if err != nil || !ok {
		return err
	}

	_, err = s.repo.UpdateWhere(booking.ID,
		map[string]interface{}{"status": constants.BOOKING_PENDING},
		map[string]interface{}{
			"status":              constants.BOOKING_CANCELLED,
			"cancelled_at":        s.now(),
			"cancellation_reason": constants.MSG_SESSION_EXPIRED,
		})
	return err
}

func (s *PaymentService) onIntentSucceeded(event *paygate.Event) error {
	intent, err := event.Intent()
	if err != nil {
		return err
	}
	booking, ok, err := s.lookupBooking(intent.Metadata)
	if err != nil || !ok {
		return err
	}

	_, err = s.repo.UpdateWhere(booking.ID,
		map[string]interface{}{"payment_status": constants.PAYMENT_PENDING},
		map[string]interface{}{
			"payment_status": constants.PAYMENT_PAID,
			"transaction_id": intent.ID,
		})
	return err
}

// onIntentFailed records the failure but leaves status untouched so the
// user can retry payment.
func (s *PaymentService) onIntentFailed(event *paygate.Event) error {
	intent, err := event.Intent()
	if err != nil {
		return err
	}
	booking, ok, err := s.lookupBooking(intent.Metadata)
	if err != nil || !ok {
		return err
	}

	reason := constants.MSG_PAYMENT_FAILED
	if intent.LastErrorMessage != "" {
		reason = intent.LastErrorMessage
	}
	_, err = s.repo.UpdateWhere(booking.ID,
		map[string]interface{}{"status": constants.BOOKING_PENDING},
		map[string]interface{}{
			"payment_status":      constants.PAYMENT_FAILED,
			"cancellation_reason": reason,
		})
	return err
}

func (s *PaymentService) onIntentCanceled(event *paygate.Event) error {
	intent, err := event.Intent()
	if err != nil {
		return err
	}
	booking, ok, err := s.lookupBooking(intent.Metadata)
	if err != nil || !ok {
		return err
	}

	_, err = s.repo.UpdateWhere(booking.ID,
		map[string]interface{}{"status": constants.BOOKING_PENDING},
		map[string]interface{}{
			"status":              constants.BOOKING_CANCELLED,
			"payment_status":      constants.PAYMENT_CANCELLED,
			"cancelled_at":        s.now(),
			"cancellation_reason": constants.MSG_PAYMENT_CANCELLED,
		})
	return err
}
