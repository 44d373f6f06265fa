package handler

import (
	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/gofiber/fiber/v2"
)

func GetAllUsers(c *fiber.Ctx) error {
	db := database.DB
	page, limit := utils.ParsePagination(c, 20)

	query := db.Model(&model.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?", like, like, like)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	var users []model.User
	err := utils.ApplyPagination(query, limit, page).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	profiles := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].PublicProfile())
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"users":      profiles,
		"pagination": model.NewPagination(page, limit, count),
	})
}

func UpdateUserRole(c *fiber.Ctx) error {
	db := database.DB
	id, _ := c.Locals("inputId").(uint)

	var body struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_INTERNAL_ERROR, err)
	}
	switch body.Role {
	case constants.ROLE_USER, constants.ROLE_ADMIN, constants.ROLE_AGENT:
	default:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_FORBIDDEN, nil)
	}

	res := db.Model(&model.User{}).Where("id = ?", id).Update("role", body.Role)
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_USER_NOT_FOUND, nil)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_PROFILE_UPDATED, nil)
}

// GetDashboardStats aggregates the admin overview. Computed fresh per
// request, no caching.
func GetDashboardStats(c *fiber.Ctx) error {
	db := database.DB

	var userCount, placeCount, reviewCount int64
	if err := db.Model(&model.User{}).Count(&userCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	if err := db.Model(&model.Place{}).Where("is_active = ?", true).Count(&placeCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	if err := db.Model(&model.Review{}).Count(&reviewCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	_, _, stats, err := bookingSvc.ListAll(model.BookingFilter{Page: 1, Limit: 1})
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"users":    userCount,
		"places":   placeCount,
		"reviews":  reviewCount,
		"bookings": stats,
	})
}

// BroadcastNotification sends an announcement to every user.
func BroadcastNotification(c *fiber.Ctx) error {
	db := database.DB
	var body struct {
		TitleAr   string `json:"titleAr"`
		TitleEn   string `json:"titleEn"`
		MessageAr string `json:"messageAr"`
		MessageEn string `json:"messageEn"`
	}
	if err := c.BodyParser(&body); err != nil || body.TitleAr == "" || body.MessageAr == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_INTERNAL_ERROR, err)
	}

	var userIDs []uint
	if err := db.Model(&model.User{}).Pluck("id", &userIDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	notifications := make([]model.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, model.Notification{
			UserId:    id,
			Type:      constants.NOTIFY_SYSTEM,
			TitleAr:   body.TitleAr,
			TitleEn:   body.TitleEn,
			MessageAr: body.MessageAr,
			MessageEn: body.MessageEn,
		})
	}
	if len(notifications) > 0 {
		if err := db.CreateInBatches(notifications, 200).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"sent": len(notifications)})
}

// GetWebhookDeadLetters exposes exhausted webhook retries for manual
// replay or inspection.
func GetWebhookDeadLetters(c *fiber.Ctx) error {
	if deadLetters == nil {
		return utils.SuccessResponse(c, fiber.StatusOK, []interface{}{})
	}
	tasks, err := deadLetters.DeadLetters(c.Context(), int64(c.QueryInt("limit", 50)))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	pending, err := deadLetters.PendingCount(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"deadLetters":  tasks,
		"pendingCount": pending,
	})
}
