// Package validate provides per-route input middleware: parse the JSON
// body, run the validator tags, then stash the typed input in locals for
// the handler.
package validate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GetById parses a numeric path parameter into locals under "inputId".
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value, err := strconv.Atoi(c.Params(key))
		if err != nil || value <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_NOT_FOUND, errors.New("invalid id parameter"))
		}
		c.Locals("inputId", uint(value))
		return c.Next()
	}
}

func bodyOf[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest,
				fmt.Sprintf("صيغة الطلب غير صحيحة: %s", err.Error()), err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		c.Locals(key, input)
		return c.Next()
	}
}

func Register() fiber.Handler       { return bodyOf[model.RegisterInput]("RegisterInput") }
func Login() fiber.Handler          { return bodyOf[model.LoginInput]("LoginInput") }
func UpdateProfile() fiber.Handler  { return bodyOf[model.UpdateProfileInput]("UpdateProfileInput") }
func ChangePassword() fiber.Handler { return bodyOf[model.ChangePasswordInput]("ChangePasswordInput") }

func CreatePlace() fiber.Handler { return bodyOf[model.CreatePlaceInput]("CreatePlaceInput") }

func CreateReview() fiber.Handler { return bodyOf[model.CreateReviewInput]("CreateReviewInput") }
func Favorite() fiber.Handler     { return bodyOf[model.FavoriteInput]("FavoriteInput") }

func CreateBooking() fiber.Handler  { return bodyOf[model.CreateBookingInput]("CreateBookingInput") }
func UpdateBooking() fiber.Handler  { return bodyOf[model.UpdateBookingInput]("UpdateBookingInput") }
func CancelBooking() fiber.Handler  { return bodyOf[model.CancelBookingInput]("CancelBookingInput") }
func ConfirmBooking() fiber.Handler { return bodyOf[model.ConfirmBookingInput]("ConfirmBookingInput") }

func CreateSession() fiber.Handler { return bodyOf[model.CreateSessionInput]("CreateSessionInput") }

func CreateItinerary() fiber.Handler {
	return bodyOf[model.CreateItineraryInput]("CreateItineraryInput")
}
func UpdateItinerary() fiber.Handler {
	return bodyOf[model.UpdateItineraryInput]("UpdateItineraryInput")
}

func StartChat() fiber.Handler   { return bodyOf[model.StartChatInput]("StartChatInput") }
func SendMessage() fiber.Handler { return bodyOf[model.SendMessageInput]("SendMessageInput") }
