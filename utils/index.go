package utils

import (
	"errors"

	"github.com/yamamaalobaid/damascus-tour-guide/config"
	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/errs"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// All responses follow the { success, message?, data?, error? } envelope.
// Error detail is included only outside production.

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func SuccessMessage(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var errMsg interface{}
	if err != nil && !config.IsProduction() {
		errMsg = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   errMsg,
	})
}

// HandleError translates a service-layer error into the response envelope.
// Services never format HTTP responses themselves.
func HandleError(c *fiber.Ctx, err error) error {
	var de *errs.Error
	if errors.As(err, &de) {
		return ErrorResponse(c, errs.HTTPStatus(de), de.Message, de.Err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorResponse(c, fiber.StatusNotFound, constants.MSG_NOT_FOUND, err)
	}
	return ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
}

func ApplyPagination(query *gorm.DB, limit, page int) *gorm.DB {
	if limit > 0 && page >= 1 {
		query = query.Limit(limit).Offset(limit * (page - 1))
	}
	return query
}

// ParsePagination reads page/limit query parameters with per-surface defaults.
func ParsePagination(c *fiber.Ctx, defaultLimit int) (int, int) {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", defaultLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func Ptr[T any](v T) *T {
	return &v
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
