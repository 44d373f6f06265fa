package handler

import (
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/helper"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateBooking(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	input, ok := c.Locals("CreateBookingInput").(model.CreateBookingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	booking, err := bookingSvc.Create(claim.UserId, input)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, constants.MSG_BOOKING_CREATED, booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}

	page, limit := utils.ParsePagination(c, 10)
	filter := model.BookingFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}
	bookings, count, err := bookingSvc.ListForUser(claim.UserId, filter)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"bookings":   bookings,
		"pagination": model.NewPagination(page, limit, count),
	})
}

func GetBookingById(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	booking, err := bookingSvc.GetByID(id, claim.UserId, claim.Role)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}

// GetBookingQR renders the booking number as a PNG for on-site check-in.
func GetBookingQR(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	booking, err := bookingSvc.GetByID(id, claim.UserId, claim.Role)
	if err != nil {
		return utils.HandleError(c, err)
	}
	png, err := utils.GenerateQRCode(booking.BookingNumber, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

func UpdateBooking(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)
	input, ok := c.Locals("UpdateBookingInput").(model.UpdateBookingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	booking, err := bookingSvc.Update(id, claim.UserId, input)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_BOOKING_UPDATED, booking)
}

func CancelBooking(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)
	input, _ := c.Locals("CancelBookingInput").(model.CancelBookingInput)

	booking, err := bookingSvc.Cancel(id, claim.UserId, input.CancellationReason)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_BOOKING_CANCELLED, booking)
}

func ConfirmBooking(c *fiber.Ctx) error {
	id, _ := c.Locals("inputId").(uint)
	input, _ := c.Locals("ConfirmBookingInput").(model.ConfirmBookingInput)

	booking, err := bookingSvc.Confirm(id, input)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_BOOKING_CONFIRMED, booking)
}

func CompleteBooking(c *fiber.Ctx) error {
	id, _ := c.Locals("inputId").(uint)

	booking, err := bookingSvc.Complete(id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_BOOKING_COMPLETED, booking)
}

// GetAllBookings is the admin listing with fresh aggregate stats.
func GetAllBookings(c *fiber.Ctx) error {
	page, limit := utils.ParsePagination(c, 20)
	filter := model.BookingFilter{
		Status:  c.Query("status"),
		UserId:  uint(c.QueryInt("userId", 0)),
		PlaceId: uint(c.QueryInt("placeId", 0)),
		Page:    page,
		Limit:   limit,
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.StartDate = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.EndDate = &t
		}
	}

	bookings, count, stats, err := bookingSvc.ListAll(filter)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"bookings":   bookings,
		"stats":      stats,
		"pagination": model.NewPagination(page, limit, count),
	})
}
