package service

import (
	"testing"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/errs"
	"github.com/yamamaalobaid/damascus-tour-guide/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(b *model.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *mockRepo) FindByID(id uint) (*model.Booking, error) {
	args := m.Called(id)
	if b := args.Get(0); b != nil {
		return b.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) List(f model.BookingFilter) ([]model.Booking, int64, error) {
	args := m.Called(f)
	return args.Get(0).([]model.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) Stats() (*model.BookingStats, error) {
	args := m.Called()
	if s := args.Get(0); s != nil {
		return s.(*model.BookingStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) UpdateWhere(id uint, cond map[string]interface{}, fields map[string]interface{}) (int64, error) {
	args := m.Called(id, cond, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) FindPlace(id uint) (*model.Place, error) {
	args := m.Called(id)
	if p := args.Get(0); p != nil {
		return p.(*model.Place), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) FindUser(id uint) (*model.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type stubNotifier struct {
	titles []string
}

func (s *stubNotifier) BookingEvent(userID uint, email, title, message string, booking *model.Booking) {
	s.titles = append(s.titles, title)
}

func newTestService(repo *mockRepo) *BookingService {
	svc := NewBookingService(repo, &stubNotifier{})
	svc.now = func() time.Time { return fixedNow }
	svc.randInt = func(n int) int { return 42 }
	return svc
}

func testPlace(entryFee float64) *model.Place {
	p := &model.Place{NameAr: "الجامع الأموي", NameEn: "Umayyad Mosque", EntryFee: entryFee}
	p.ID = 7
	return p
}

func TestComputePrice(t *testing.T) {
	assert.Equal(t, 5000.0, ComputePrice(testPlace(5000), "tour", 4))
	assert.Equal(t, 0.0, ComputePrice(testPlace(0), "restaurant", 2))
	assert.Equal(t, 15000.0, ComputePrice(testPlace(5000), "hotel", 3))
	// Hotels with no fee fall back to the default nightly rate.
	assert.Equal(t, 30000.0, ComputePrice(testPlace(0), "hotel", 3))
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)

	_, err := svc.Create(1, model.CreateBookingInput{
		PlaceId:     7,
		ServiceType: "tour",
		BookingDate: fixedNow.Add(-time.Hour).Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateBookingHotelPricing(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)

	repo.On("FindPlace", uint(7)).Return(testPlace(0), nil)
	repo.On("Create", mock.Anything).Return(nil)
	repo.On("FindUser", uint(1)).Return(&model.User{Email: "u@example.com"}, nil)

	booking, err := svc.Create(1, model.CreateBookingInput{
		PlaceId:        7,
		ServiceType:    "hotel",
		BookingDate:    fixedNow.Add(72 * time.Hour).Format(time.RFC3339),
		NumberOfGuests: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 30000.0, booking.TotalAmount)
	assert.Equal(t, "SYP", booking.Currency)
	assert.Equal(t, constants.BOOKING_PENDING, booking.Status)
	assert.Equal(t, constants.PAYMENT_PENDING, booking.PaymentStatus)
	assert.Regexp(t, `^DAM-\d+-\d+$`, booking.BookingNumber)
}

func TestCreateBookingRetriesDuplicateNumber(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)

	repo.On("FindPlace", uint(7)).Return(testPlace(1000), nil)
	repo.On("Create", mock.Anything).Return(errs.ErrDuplicateBookingNumber).Twice()
	repo.On("Create", mock.Anything).Return(nil).Once()
	repo.On("FindUser", uint(1)).Return(&model.User{Email: "u@example.com"}, nil)

	_, err := svc.Create(1, model.CreateBookingInput{
		PlaceId:     7,
		ServiceType: "tour",
		BookingDate: fixedNow.Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Create", 3)
}

func TestCreateBookingGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)

	repo.On("FindPlace", uint(7)).Return(testPlace(1000), nil)
	repo.On("Create", mock.Anything).Return(errs.ErrDuplicateBookingNumber)

	_, err := svc.Create(1, model.CreateBookingInput{
		PlaceId:     7,
		ServiceType: "tour",
		BookingDate: fixedNow.Add(48 * time.Hour).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, errs.ErrDuplicateBookingNumber)
	repo.AssertNumberOfCalls(t, "Create", 3)
}

func pendingBooking(id, userID uint, date time.Time) *model.Booking {
	b := &model.Booking{
		UserId:         userID,
		PlaceId:        7,
		ServiceType:    "tour",
		BookingDate:    date,
		NumberOfGuests: 2,
		TotalAmount:    5000,
		Status:         constants.BOOKING_PENDING,
		PaymentStatus:  constants.PAYMENT_PENDING,
	}
	b.ID = id
	return b
}

func TestUpdateBookingWindowBoundary(t *testing.T) {
	// Exactly 48 hours out satisfies the window.
	repo := new(mockRepo)
	svc := newTestService(repo)
	booking := pendingBooking(3, 1, fixedNow.Add(48*time.Hour))
	repo.On("FindByID", uint(3)).Return(booking, nil)
	repo.On("UpdateWhere", uint(3), mock.Anything, mock.Anything).Return(int64(1), nil)

	_, err := svc.Update(3, 1, model.UpdateBookingInput{
		SpecialRequests: strPtr("نافذة مطلة"),
	})
	assert.NoError(t, err)

	// One minute inside the window is rejected.
	repo = new(mockRepo)
	svc = newTestService(repo)
	booking = pendingBooking(3, 1, fixedNow.Add(48*time.Hour-time.Minute))
	repo.On("FindByID", uint(3)).Return(booking, nil)

	_, err = svc.Update(3, 1, model.UpdateBookingInput{SpecialRequests: strPtr("x")})
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))
}

func TestUpdateBookingRecomputesHotelAmount(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	booking := pendingBooking(3, 1, fixedNow.Add(96*time.Hour))
	booking.ServiceType = "hotel"
	repo.On("FindByID", uint(3)).Return(booking, nil)
	repo.On("FindPlace", uint(7)).Return(testPlace(0), nil)
	repo.On("UpdateWhere", uint(3), mock.Anything, mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["total_amount"] == 50000.0 && fields["number_of_guests"] == 5
	})).Return(int64(1), nil)

	_, err := svc.Update(3, 1, model.UpdateBookingInput{NumberOfGuests: intPtr(5)})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateBookingRejectsNonPending(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	booking := pendingBooking(3, 1, fixedNow.Add(96*time.Hour))
	booking.Status = constants.BOOKING_CONFIRMED
	repo.On("FindByID", uint(3)).Return(booking, nil)

	_, err := svc.Update(3, 1, model.UpdateBookingInput{SpecialRequests: strPtr("x")})
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))
}

func TestUpdateBookingOwnership(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	repo.On("FindByID", uint(3)).Return(pendingBooking(3, 1, fixedNow.Add(96*time.Hour)), nil)

	_, err := svc.Update(3, 99, model.UpdateBookingInput{SpecialRequests: strPtr("x")})
	assert.True(t, errs.IsKind(err, errs.KindForbidden))
}

func TestCancelWindowBoundary(t *testing.T) {
	// Exactly 24 hours out is allowed.
	repo := new(mockRepo)
	svc := newTestService(repo)
	repo.On("FindByID", uint(3)).Return(pendingBooking(3, 1, fixedNow.Add(24*time.Hour)), nil)
	repo.On("UpdateWhere", uint(3), mock.Anything, mock.Anything).Return(int64(1), nil)
	repo.On("FindUser", uint(1)).Return(&model.User{Email: "u@example.com"}, nil)

	_, err := svc.Cancel(3, 1, "سفر طارئ")
	assert.NoError(t, err)

	// 23 hours out is rejected.
	repo = new(mockRepo)
	svc = newTestService(repo)
	repo.On("FindByID", uint(3)).Return(pendingBooking(3, 1, fixedNow.Add(23*time.Hour)), nil)

	_, err = svc.Cancel(3, 1, "")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))
	assert.Contains(t, err.Error(), constants.MSG_BOOKING_CANCEL_WINDOW)
}

func TestCancelConfirmedBookingAllowed(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	booking.Status = constants.BOOKING_CONFIRMED
	repo.On("FindByID", uint(3)).Return(booking, nil)
	repo.On("UpdateWhere", uint(3), map[string]interface{}{
		"status": []string{constants.BOOKING_PENDING, constants.BOOKING_CONFIRMED},
	}, mock.Anything).Return(int64(1), nil)
	repo.On("FindUser", uint(1)).Return(&model.User{Email: "u@example.com"}, nil)

	_, err := svc.Cancel(3, 1, "")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
	assert.Len(t, svc.notifier.(*stubNotifier).titles, 1)
}

func TestCancelTerminalStatesRejected(t *testing.T) {
	for _, status := range []string{constants.BOOKING_COMPLETED, constants.BOOKING_CANCELLED} {
		repo := new(mockRepo)
		svc := newTestService(repo)
		booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
		booking.Status = status
		repo.On("FindByID", uint(3)).Return(booking, nil)

		_, err := svc.Cancel(3, 1, "")
		assert.True(t, errs.IsKind(err, errs.KindInvalidState), "status %s", status)
	}
}

func TestCancelConflictWhenRaceLost(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	repo.On("FindByID", uint(3)).Return(pendingBooking(3, 1, fixedNow.Add(72*time.Hour)), nil)
	repo.On("UpdateWhere", uint(3), mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := svc.Cancel(3, 1, "")
	assert.True(t, errs.IsKind(err, errs.KindConflict))
}

func TestConfirmSetsPaymentFields(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	repo.On("FindByID", uint(3)).Return(pendingBooking(3, 1, fixedNow.Add(72*time.Hour)), nil)
	repo.On("UpdateWhere", uint(3), map[string]interface{}{"status": constants.BOOKING_PENDING},
		mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["status"] == constants.BOOKING_CONFIRMED &&
				fields["payment_status"] == constants.PAYMENT_PAID &&
				fields["payment_method"] == "cash" &&
				fields["transaction_id"] == "tx-991"
		})).Return(int64(1), nil)
	repo.On("FindUser", uint(1)).Return(&model.User{Email: "u@example.com"}, nil)

	_, err := svc.Confirm(3, model.ConfirmBookingInput{PaymentMethod: "cash", TransactionId: "tx-991"})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestConfirmRejectsNonPending(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	booking := pendingBooking(3, 1, fixedNow.Add(72*time.Hour))
	booking.Status = constants.BOOKING_CANCELLED
	repo.On("FindByID", uint(3)).Return(booking, nil)

	_, err := svc.Confirm(3, model.ConfirmBookingInput{})
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))
}

func TestCompleteGuards(t *testing.T) {
	// Confirmed with a past date completes.
	repo := new(mockRepo)
	svc := newTestService(repo)
	booking := pendingBooking(3, 1, fixedNow.Add(-time.Hour))
	booking.Status = constants.BOOKING_CONFIRMED
	repo.On("FindByID", uint(3)).Return(booking, nil)
	repo.On("UpdateWhere", uint(3), map[string]interface{}{"status": constants.BOOKING_CONFIRMED},
		mock.Anything).Return(int64(1), nil)

	_, err := svc.Complete(3)
	assert.NoError(t, err)

	// A future date cannot complete.
	repo = new(mockRepo)
	svc = newTestService(repo)
	future := pendingBooking(3, 1, fixedNow.Add(time.Hour))
	future.Status = constants.BOOKING_CONFIRMED
	repo.On("FindByID", uint(3)).Return(future, nil)

	_, err = svc.Complete(3)
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))

	// Pending cannot complete: confirmed is a prerequisite.
	repo = new(mockRepo)
	svc = newTestService(repo)
	repo.On("FindByID", uint(3)).Return(pendingBooking(3, 1, fixedNow.Add(-time.Hour)), nil)

	_, err = svc.Complete(3)
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))
}

func TestGetByIDOwnership(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	repo.On("FindByID", uint(3)).Return(pendingBooking(3, 1, fixedNow.Add(time.Hour)), nil)

	_, err := svc.GetByID(3, 99, constants.ROLE_USER)
	assert.True(t, errs.IsKind(err, errs.KindForbidden))

	// Admin can read any booking.
	_, err = svc.GetByID(3, 99, constants.ROLE_ADMIN)
	assert.NoError(t, err)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
