package handler

import (
	"fmt"
	"log"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/config"
	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/helper"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		SameSite: "Lax",
		Path:     "/",
	})
}

func Register(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("RegisterInput").(model.RegisterInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	var existing model.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.MSG_EMAIL_TAKEN, nil)
	}
	if input.Phone != "" {
		if err := db.Where("phone = ?", input.Phone).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.MSG_PHONE_TAKEN, nil)
		}
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	verificationToken := uuid.NewString()
	user := model.User{
		Email:             input.Email,
		Password:          hash,
		FirstName:         utils.StringPtr(input.FirstName),
		LastName:          utils.StringPtr(input.LastName),
		Phone:             utils.StringPtr(input.Phone),
		Role:              constants.ROLE_USER,
		VerificationToken: &verificationToken,
	}
	if err := db.Create(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", config.Config("CLIENT_URL"), verificationToken)
	utils.SendNotificationEmail(user.Email, "تفعيل حسابك",
		"مرحباً بك في دليل دمشق السياحي! يرجى تفعيل حسابك بالضغط على الزر أدناه.", verifyURL)

	return utils.SuccessMessage(c, fiber.StatusCreated, constants.MSG_REGISTERED, user.PublicProfile())
}

func VerifyEmail(c *fiber.Ctx) error {
	db := database.DB
	token := c.Query("token")
	if token == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_INVALID_TOKEN, nil)
	}

	var user model.User
	if err := db.Where("verification_token = ?", token).First(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_INVALID_TOKEN, err)
	}
	if user.IsVerified {
		return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_ALREADY_VERIFIED, nil)
	}

	err := db.Model(&user).Updates(map[string]interface{}{
		"is_verified":        true,
		"verification_token": nil,
	}).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_ACCOUNT_VERIFIED, nil)
}

func ResendVerification(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}

	var user model.User
	if err := db.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_USER_NOT_FOUND, err)
	}
	if user.IsVerified {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_ALREADY_VERIFIED, nil)
	}

	token := uuid.NewString()
	if err := db.Model(&user).Update("verification_token", token).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", config.Config("CLIENT_URL"), token)
	utils.SendNotificationEmail(user.Email, "تفعيل حسابك",
		"يرجى تفعيل حسابك بالضغط على الزر أدناه.", verifyURL)
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_VERIFICATION_RESENT, nil)
}

func Login(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("LoginInput").(model.LoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	var user model.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_INVALID_CREDENTIALS, nil)
	}
	if !helper.CheckPasswordHash(input.Password, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_INVALID_CREDENTIALS, nil)
	}
	if !user.IsVerified {
		// The client uses needsVerification to offer a resend action.
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success":           false,
			"message":           constants.MSG_NEEDS_VERIFICATION,
			"needsVerification": true,
		})
	}

	token, err := helper.GenerateAccessToken(&user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	db.Model(&user).Update("last_login", time.Now())
	setAuthCookie(c, token)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  user.PublicProfile(),
	})
}

func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_LOGGED_OUT, nil)
}

func Me(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	var user model.User
	if err := db.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_USER_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user.PublicProfile())
}

func UpdateProfile(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	input, ok := c.Locals("UpdateProfileInput").(model.UpdateProfileInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	var user model.User
	if err := db.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_USER_NOT_FOUND, err)
	}

	if input.Phone != nil && *input.Phone != "" {
		var other model.User
		err := db.Where("phone = ? AND id <> ?", *input.Phone, user.ID).First(&other).Error
		if err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.MSG_PHONE_TAKEN, nil)
		}
	}

	if err := copier.CopyWithOption(&user, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	if err := db.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_PROFILE_UPDATED, user.PublicProfile())
}

// UpdateAvatar takes either an uploaded image file or a ready-made URL.
func UpdateAvatar(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}

	var user model.User
	if err := db.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_USER_NOT_FOUND, err)
	}

	var url string
	if file, ferr := c.FormFile("avatar"); ferr == nil {
		uploaded, _, uerr := helper.UploadImage(c.Context(), file, "avatars")
		if uerr != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, uerr)
		}
		url = uploaded
	} else {
		var body struct {
			AvatarUrl string `json:"avatarUrl"`
		}
		if err := c.BodyParser(&body); err != nil || body.AvatarUrl == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_AVATAR_REQUIRED, err)
		}
		url = body.AvatarUrl
	}

	if err := db.Model(&user).Update("avatar_url", url).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_AVATAR_UPDATED, fiber.Map{"avatarUrl": url})
}

func ChangePassword(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	input, ok := c.Locals("ChangePasswordInput").(model.ChangePasswordInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	var user model.User
	if err := db.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_USER_NOT_FOUND, err)
	}
	if !helper.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_WRONG_PASSWORD, nil)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	if err := db.Model(&user).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_PASSWORD_UPDATED, nil)
}

// Reset tokens are short-lived; the email tells the user how long.
const resetTokenTTL = 10 * time.Minute

// ForgotPassword always answers the same way so account existence is not
// leaked.
func ForgotPassword(c *fiber.Ctx) error {
	db := database.DB
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_INVALID_EMAIL, err)
	}

	var user model.User
	if err := db.Where("email = ?", body.Email).First(&user).Error; err == nil {
		token := uuid.NewString()
		expire := time.Now().Add(resetTokenTTL)
		db.Model(&user).Updates(map[string]interface{}{
			"reset_password_token":  token,
			"reset_password_expire": expire,
		})
		resetURL := fmt.Sprintf("%s/reset-password?token=%s", config.Config("CLIENT_URL"), token)
		if err := utils.SendPlainEmail(user.Email, "إعادة تعيين كلمة المرور",
			"لإعادة تعيين كلمة المرور، افتح الرابط التالي خلال 10 دقائق:\n\n"+resetURL); err != nil {
			// The generic response still goes out; the token stays valid.
			log.Printf("reset email to %s failed: %v", user.Email, err)
		}
	}

	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_RESET_LINK_SENT, nil)
}

func ResetPassword(c *fiber.Ctx) error {
	db := database.DB
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil || body.Token == "" || len(body.Password) < 6 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_WEAK_PASSWORD, err)
	}

	var user model.User
	err := db.Where("reset_password_token = ? AND reset_password_expire > ?", body.Token, time.Now()).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_INVALID_TOKEN, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	hash, err := helper.HashPassword(body.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	err = db.Model(&user).Updates(map[string]interface{}{
		"password":              hash,
		"reset_password_token":  nil,
		"reset_password_expire": nil,
	}).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_PASSWORD_UPDATED, nil)
}
