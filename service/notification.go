package service

import (
	"encoding/json"
	"log"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/errs"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationService persists in-app notifications and mirrors them to
// email. Both paths are best-effort: a failed send is logged only.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// BookingEvent implements Notifier for the booking lifecycle.
func (s *NotificationService) BookingEvent(userID uint, email, title, message string, booking *model.Booking) {
	var data datatypes.JSON
	if booking != nil {
		raw, err := json.Marshal(map[string]interface{}{
			"bookingId":     booking.ID,
			"bookingNumber": booking.BookingNumber,
			"status":        booking.Status,
		})
		if err == nil {
			data = raw
		}
	}

	notification := model.Notification{
		UserId:    userID,
		Type:      constants.NOTIFY_BOOKING,
		TitleAr:   title,
		TitleEn:   title,
		MessageAr: message,
		MessageEn: message,
		Data:      data,
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to persist booking notification for user %d: %v", userID, err)
	}

	if email != "" {
		utils.SendNotificationEmail(email, title, message, "")
	}
}

// Create stores an arbitrary notification (admin broadcast path).
func (s *NotificationService) Create(n *model.Notification) error {
	return s.DB.Create(n).Error
}

func (s *NotificationService) ListForUser(userID uint, unreadOnly bool, page, limit int) ([]model.Notification, int64, error) {
	query := s.DB.Model(&model.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var notifications []model.Notification
	err := utils.ApplyPagination(query, limit, page).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, count, err
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) MarkRead(id, userID uint) error {
	now := time.Now()
	res := s.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound(constants.MSG_NOTIFICATION_NOT_FOUND)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	now := time.Now()
	return s.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

func (s *NotificationService) Delete(id, userID uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound(constants.MSG_NOTIFICATION_NOT_FOUND)
	}
	return nil
}

// DeleteRead clears every read notification of one user on request.
func (s *NotificationService) DeleteRead(userID uint) (int64, error) {
	res := s.DB.Where("user_id = ? AND is_read = ?", userID, true).Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}

// PurgeReadOlderThan removes read notifications past the retention cutoff.
// Run nightly by the scheduler.
func (s *NotificationService) PurgeReadOlderThan(age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	res := s.DB.Where("is_read = ? AND read_at < ?", true, cutoff).Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}
