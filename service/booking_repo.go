package service

import (
	"errors"
	"strings"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/errs"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"gorm.io/gorm"
)

// GormBookingRepo is the production BookingRepo.
type GormBookingRepo struct {
	DB *gorm.DB
}

func NewGormBookingRepo(db *gorm.DB) *GormBookingRepo {
	return &GormBookingRepo{DB: db}
}

func (r *GormBookingRepo) Create(b *model.Booking) error {
	err := r.DB.Create(b).Error
	if err != nil && isBookingNumberCollision(err) {
		return errs.ErrDuplicateBookingNumber
	}
	return err
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isBookingNumberCollision(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "booking_number") &&
		(strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique"))
}

func (r *GormBookingRepo) FindByID(id uint) (*model.Booking, error) {
	var booking model.Booking
	err := r.DB.Preload("Place").First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *GormBookingRepo) List(f model.BookingFilter) ([]model.Booking, int64, error) {
	query := r.DB.Model(&model.Booking{})
	if f.UserId != 0 {
		query = query.Where("user_id = ?", f.UserId)
	}
	if f.PlaceId != 0 {
		query = query.Where("place_id = ?", f.PlaceId)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.ExcludeStatus != "" {
		query = query.Where("status <> ?", f.ExcludeStatus)
	}
	if f.PaymentStatus != "" {
		query = query.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.StartDate != nil {
		query = query.Where("booking_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("booking_date <= ?", *f.EndDate)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var bookings []model.Booking
	err := utils.ApplyPagination(query, f.Limit, f.Page).
		Preload("Place").Preload("User").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, count, err
}

func (r *GormBookingRepo) Stats() (*model.BookingStats, error) {
	var stats model.BookingStats
	base := func() *gorm.DB { return r.DB.Model(&model.Booking{}) }

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	counts := map[string]*int64{
		constants.BOOKING_PENDING:   &stats.Pending,
		constants.BOOKING_CONFIRMED: &stats.Confirmed,
		constants.BOOKING_COMPLETED: &stats.Completed,
		constants.BOOKING_CANCELLED: &stats.Cancelled,
	}
	for status, dst := range counts {
		if err := base().Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}

	err := base().
		Where("status IN ? AND payment_status = ?",
			[]string{constants.BOOKING_CONFIRMED, constants.BOOKING_COMPLETED},
			constants.PAYMENT_PAID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error
	return &stats, err
}

func (r *GormBookingRepo) UpdateWhere(id uint, cond map[string]interface{}, fields map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.Booking{}).
		Where("id = ?", id).
		Where(cond).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *GormBookingRepo) FindPlace(id uint) (*model.Place, error) {
	var place model.Place
	err := r.DB.First(&place, id).Error
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *GormBookingRepo) FindUser(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
