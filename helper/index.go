package helper

import (
	"errors"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/config"
	"github.com/yamamaalobaid/damascus-tour-guide/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var JwtSecret = config.Config("JWT_SECRET")

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GenerateAccessToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(JwtSecret))
}

func ParseToken(tokenString string) (model.TokenClaim, error) {
	var claim model.TokenClaim
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(JwtSecret), nil
	})
	if err != nil || !token.Valid {
		return claim, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return claim, errors.New("invalid token claims")
	}
	if id, ok := claims["user_id"].(float64); ok {
		claim.UserId = uint(id)
	}
	if email, ok := claims["email"].(string); ok {
		claim.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		claim.Role = role
	}
	return claim, nil
}

// GetUserFromToken reads the claim stashed by the auth middleware.
func GetUserFromToken(c *fiber.Ctx) (model.TokenClaim, error) {
	claim, ok := c.Locals("user").(model.TokenClaim)
	if !ok {
		return model.TokenClaim{}, errors.New("missing authentication context")
	}
	return claim, nil
}
