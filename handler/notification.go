package handler

import (
	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/helper"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/gofiber/fiber/v2"
)

func GetMyNotifications(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	page, limit := utils.ParsePagination(c, 20)
	unreadOnly := c.QueryBool("unread", false)

	notifications, count, err := notifySvc.ListForUser(claim.UserId, unreadOnly, page, limit)
	if err != nil {
		return utils.HandleError(c, err)
	}
	unread, err := notifySvc.UnreadCount(claim.UserId)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"notifications": notifications,
		"unreadCount":   unread,
		"pagination":    model.NewPagination(page, limit, count),
	})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	if err := notifySvc.MarkRead(id, claim.UserId); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	if err := notifySvc.MarkAllRead(claim.UserId); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

// DeleteReadNotifications clears the caller's read notifications.
func DeleteReadNotifications(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}

	deleted, err := notifySvc.DeleteRead(claim.UserId)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": deleted})
}

func DeleteNotification(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	if err := notifySvc.Delete(id, claim.UserId); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}
