package handler

import (
	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/errs"
	"github.com/yamamaalobaid/damascus-tour-guide/helper"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/gofiber/fiber/v2"
)

func CreatePaymentSession(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	input, ok := c.Locals("CreateSessionInput").(model.CreateSessionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	info, err := paymentSvc.CreateSession(c.Context(), claim.UserId, claim.Email, input)
	if err != nil {
		if errs.IsKind(err, errs.KindExternal) {
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.MSG_PAYMENT_UNAVAILABLE, err)
		}
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, info)
}

func CheckPaymentSession(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	if sessionID == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_SESSION_ID_REQUIRED, nil)
	}

	session, err := paymentSvc.CheckSession(c.Context(), sessionID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"sessionId":     session.ID,
		"status":        session.Status,
		"paymentStatus": session.PaymentStatus,
	})
}

// GetBookingPayment reports the payment fields of one booking.
func GetBookingPayment(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	booking, err := paymentSvc.PaymentDetails(id, claim.UserId, claim.Role)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"bookingNumber": booking.BookingNumber,
		"totalAmount":   booking.TotalAmount,
		"currency":      booking.Currency,
		"status":        booking.Status,
		"paymentStatus": booking.PaymentStatus,
		"paymentMethod": booking.PaymentMethod,
		"transactionId": booking.TransactionId,
		"confirmedAt":   booking.ConfirmedAt,
	})
}

// GetPaymentHistory lists the caller's paid, non-cancelled bookings.
func GetPaymentHistory(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	page, limit := utils.ParsePagination(c, 10)

	bookings, count, err := paymentSvc.History(claim.UserId, page, limit)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"payments":   bookings,
		"pagination": model.NewPagination(page, limit, count),
	})
}

// GetInvoice assembles the invoice for a paid booking.
func GetInvoice(c *fiber.Ctx) error {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	invoice, err := paymentSvc.Invoice(id, claim.UserId, claim.Role)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, invoice)
}

// PaymentWebhook handles provider deliveries. Signature verification runs
// over the raw body, so no body parsing may happen before this point. The
// provider keeps redelivering until it sees a 2xx, so everything past the
// signature check acknowledges.
func PaymentWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	sigHeader := c.Get("Paygate-Signature")

	if err := paymentSvc.ProcessWebhook(c.Context(), payload, sigHeader); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid signature", err)
	}
	return c.SendStatus(fiber.StatusOK)
}
