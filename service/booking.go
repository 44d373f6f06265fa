// Package service holds the booking lifecycle and payment reconciliation
// logic behind the HTTP handlers.
package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/errs"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
)

// BookingRepo is the persistence surface the lifecycle service needs.
type BookingRepo interface {
	Create(b *model.Booking) error
	FindByID(id uint) (*model.Booking, error)
	List(f model.BookingFilter) ([]model.Booking, int64, error)
	Stats() (*model.BookingStats, error)
	// UpdateWhere applies fields to the booking row only while cond still
	// holds, returning the affected row count. Zero rows means the guard
	// no longer holds (a concurrent transition won).
	UpdateWhere(id uint, cond map[string]interface{}, fields map[string]interface{}) (int64, error)
	FindPlace(id uint) (*model.Place, error)
	FindUser(id uint) (*model.User, error)
}

// Notifier delivers best-effort user notifications. Failures never block
// or roll back a transition.
type Notifier interface {
	BookingEvent(userID uint, email, title, message string, booking *model.Booking)
}

// bookingTransitions is the full status machine. Anything not listed here
// is rejected, regardless of which endpoint asks.
var bookingTransitions = map[string][]string{
	constants.BOOKING_PENDING:   {constants.BOOKING_CONFIRMED, constants.BOOKING_CANCELLED},
	constants.BOOKING_CONFIRMED: {constants.BOOKING_COMPLETED, constants.BOOKING_CANCELLED},
}

func canTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type BookingService struct {
	repo     BookingRepo
	notifier Notifier
	now      func() time.Time
	randInt  func(n int) int
}

func NewBookingService(repo BookingRepo, notifier Notifier) *BookingService {
	return &BookingService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
		randInt:  rand.Intn,
	}
}

// ComputePrice prices a booking from the place's entry fee. Hotels scale
// by guest count and fall back to the default nightly rate when the place
// has no fee set; every other service type charges the flat entry fee.
func ComputePrice(place *model.Place, serviceType string, guests int) float64 {
	fee := place.EntryFee
	if serviceType != "hotel" {
		return fee
	}
	if fee == 0 {
		fee = constants.DEFAULT_HOTEL_NIGHT_RATE
	}
	return fee * float64(guests)
}

func (s *BookingService) generateBookingNumber() string {
	return fmt.Sprintf("DAM-%d-%d", s.now().UnixMilli(), s.randInt(1000))
}

func (s *BookingService) Create(userID uint, input model.CreateBookingInput) (*model.Booking, error) {
	bookingDate, err := time.Parse(time.RFC3339, input.BookingDate)
	if err != nil {
		return nil, errs.Validation(constants.MSG_BOOKING_FIELDS_REQUIRED).Wrap(err)
	}
	if bookingDate.Before(s.now()) {
		return nil, errs.Validation(constants.MSG_BOOKING_PAST_DATE)
	}

	place, err := s.repo.FindPlace(input.PlaceId)
	if err != nil {
		return nil, errs.NotFound(constants.MSG_PLACE_NOT_FOUND).Wrap(err)
	}

	guests := input.NumberOfGuests
	if guests < 1 {
		guests = 1
	}

	booking := &model.Booking{
		UserId:         userID,
		PlaceId:        place.ID,
		ServiceType:    input.ServiceType,
		BookingDate:    bookingDate,
		NumberOfGuests: guests,
		TotalAmount:    ComputePrice(place, input.ServiceType, guests),
		Currency:       "SYP",
		Status:         constants.BOOKING_PENDING,
		PaymentStatus:  constants.PAYMENT_PENDING,
	}
	if input.SpecialRequests != "" {
		booking.SpecialRequests = &input.SpecialRequests
	}

	// Booking numbers are only probabilistically unique; regenerate on a
	// constraint hit instead of failing the request.
	for attempt := 0; ; attempt++ {
		booking.BookingNumber = s.generateBookingNumber()
		err = s.repo.Create(booking)
		if err == nil {
			break
		}
		if err != errs.ErrDuplicateBookingNumber || attempt >= 2 {
			return nil, err
		}
	}

	s.notify(userID, "تم تسجيل حجزك",
		fmt.Sprintf("تم تسجيل حجزك رقم %s في %s", booking.BookingNumber, place.NameAr), booking)
	booking.Place = place
	return booking, nil
}

// GetByID returns the booking, restricted to its owner unless the caller
// is an admin.
func (s *BookingService) GetByID(id, callerID uint, callerRole string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(id)
	if err != nil {
		return nil, errs.NotFound(constants.MSG_BOOKING_NOT_FOUND).Wrap(err)
	}
	if booking.UserId != callerID && callerRole != constants.ROLE_ADMIN {
		return nil, errs.Forbidden(constants.MSG_FORBIDDEN)
	}
	return booking, nil
}

func (s *BookingService) ListForUser(userID uint, f model.BookingFilter) ([]model.Booking, int64, error) {
	f.UserId = userID
	if f.Limit <= 0 {
		f.Limit = 10
	}
	return s.repo.List(f)
}

func (s *BookingService) ListAll(f model.BookingFilter) ([]model.Booking, int64, *model.BookingStats, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	bookings, count, err := s.repo.List(f)
	if err != nil {
		return nil, 0, nil, err
	}
	stats, err := s.repo.Stats()
	if err != nil {
		return nil, 0, nil, err
	}
	return bookings, count, stats, nil
}

// hoursUntil is inclusive at the boundary: exactly 48.0 hours satisfies
// a 48-hour window.
func (s *BookingService) withinWindow(bookingDate time.Time, hours int) bool {
	return !bookingDate.Before(s.now().Add(time.Duration(hours) * time.Hour))
}

// Update edits guest count and special requests while the booking is still
// pending and at least 48 hours out.
func (s *BookingService) Update(id, userID uint, input model.UpdateBookingInput) (*model.Booking, error) {
	booking, err := s.repo.FindByID(id)
	if err != nil {
		return nil, errs.NotFound(constants.MSG_BOOKING_NOT_FOUND).Wrap(err)
	}
	if booking.UserId != userID {
		return nil, errs.Forbidden(constants.MSG_FORBIDDEN)
	}
	if booking.Status != constants.BOOKING_PENDING {
		return nil, errs.InvalidState(constants.MSG_BOOKING_NOT_EDITABLE)
	}
	if !s.withinWindow(booking.BookingDate, constants.UPDATE_WINDOW_HOURS) {
		return nil, errs.InvalidState(constants.MSG_BOOKING_UPDATE_WINDOW)
	}

	fields := map[string]interface{}{}
	if input.SpecialRequests != nil {
		fields["special_requests"] = *input.SpecialRequests
	}
	if input.NumberOfGuests != nil && *input.NumberOfGuests != booking.NumberOfGuests {
		fields["number_of_guests"] = *input.NumberOfGuests
		if booking.ServiceType == "hotel" {
			place, err := s.repo.FindPlace(booking.PlaceId)
			if err != nil {
				return nil, errs.NotFound(constants.MSG_PLACE_NOT_FOUND).Wrap(err)
			}
			fields["total_amount"] = ComputePrice(place, booking.ServiceType, *input.NumberOfGuests)
		}
	}
	if len(fields) == 0 {
		return booking, nil
	}

	rows, err := s.repo.UpdateWhere(id,
		map[string]interface{}{"status": constants.BOOKING_PENDING}, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.Conflict(constants.MSG_BOOKING_CONFLICT)
	}
	return s.repo.FindByID(id)
}

// Cancel moves a pending or confirmed booking to cancelled, at least 24
// hours before its date.
func (s *BookingService) Cancel(id, userID uint, reason string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(id)
	if err != nil {
		return nil, errs.NotFound(constants.MSG_BOOKING_NOT_FOUND).Wrap(err)
	}
	if booking.UserId != userID {
		return nil, errs.Forbidden(constants.MSG_FORBIDDEN)
	}
	if !canTransition(booking.Status, constants.BOOKING_CANCELLED) {
		return nil, errs.InvalidState(constants.MSG_BOOKING_NOT_CANCELLABLE)
	}
	if !s.withinWindow(booking.BookingDate, constants.CANCEL_WINDOW_HOURS) {
		return nil, errs.InvalidState(constants.MSG_BOOKING_CANCEL_WINDOW)
	}

	now := s.now()
	fields := map[string]interface{}{
		"status":       constants.BOOKING_CANCELLED,
		"cancelled_at": now,
	}
	if reason != "" {
		fields["cancellation_reason"] = reason
	}
	rows, err := s.repo.UpdateWhere(id, map[string]interface{}{
		"status": []string{constants.BOOKING_PENDING, constants.BOOKING_CONFIRMED},
	}, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.Conflict(constants.MSG_BOOKING_CONFLICT)
	}

	s.notify(userID, "تم إلغاء حجزك",
		fmt.Sprintf("تم إلغاء الحجز رقم %s بنجاح", booking.BookingNumber), booking)
	return s.repo.FindByID(id)
}

// Confirm marks a pending booking as confirmed and paid. Operator entry
// point; the webhook reconciler is the other path to the same state.
func (s *BookingService) Confirm(id uint, input model.ConfirmBookingInput) (*model.Booking, error) {
	booking, err := s.repo.FindByID(id)
	if err != nil {
		return nil, errs.NotFound(constants.MSG_BOOKING_NOT_FOUND).Wrap(err)
	}
	if !canTransition(booking.Status, constants.BOOKING_CONFIRMED) {
		return nil, errs.InvalidState(constants.MSG_BOOKING_NOT_CONFIRMABLE)
	}

	fields := map[string]interface{}{
		"status":         constants.BOOKING_CONFIRMED,
		"payment_status": constants.PAYMENT_PAID,
		"confirmed_at":   s.now(),
	}
	if input.PaymentMethod != "" {
		fields["payment_method"] = input.PaymentMethod
	}
	if input.TransactionId != "" {
		fields["transaction_id"] = input.TransactionId
	}
	rows, err := s.repo.UpdateWhere(id,
		map[string]interface{}{"status": constants.BOOKING_PENDING}, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.Conflict(constants.MSG_BOOKING_CONFLICT)
	}

	s.notify(booking.UserId, "تم تأكيد حجزك",
		fmt.Sprintf("تم تأكيد الحجز رقم %s", booking.BookingNumber), booking)
	return s.repo.FindByID(id)
}

// Complete closes a confirmed booking once its date has passed.
func (s *BookingService) Complete(id uint) (*model.Booking, error) {
	booking, err := s.repo.FindByID(id)
	if err != nil {
		return nil, errs.NotFound(constants.MSG_BOOKING_NOT_FOUND).Wrap(err)
	}
	if !canTransition(booking.Status, constants.BOOKING_COMPLETED) {
		return nil, errs.InvalidState(constants.MSG_BOOKING_NOT_COMPLETABLE)
	}
	if booking.BookingDate.After(s.now()) {
		return nil, errs.InvalidState(constants.MSG_BOOKING_BEFORE_DATE)
	}

	rows, err := s.repo.UpdateWhere(id,
		map[string]interface{}{"status": constants.BOOKING_CONFIRMED},
		map[string]interface{}{
			"status":       constants.BOOKING_COMPLETED,
			"completed_at": s.now(),
		})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.Conflict(constants.MSG_BOOKING_CONFLICT)
	}
	return s.repo.FindByID(id)
}

func (s *BookingService) notify(userID uint, title, message string, booking *model.Booking) {
	if s.notifier == nil {
		return
	}
	email := ""
	if user, err := s.repo.FindUser(userID); err == nil {
		email = user.Email
	}
	s.notifier.BookingEvent(userID, email, title, message, booking)
}
