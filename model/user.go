package model

import "time"

type User struct {
	DTO
	Email               string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"size:255;not null" json:"-"`
	FirstName           *string    `gorm:"size:50" json:"firstName,omitempty"`
	LastName            *string    `gorm:"size:50" json:"lastName,omitempty"`
	Phone               *string    `gorm:"size:20;uniqueIndex" json:"phone,omitempty"`
	Language            string     `gorm:"size:10;default:ar" json:"language"`
	AvatarUrl           *string    `gorm:"size:500" json:"avatarUrl,omitempty"`
	Role                string     `gorm:"size:20;default:user" json:"role"`
	IsVerified          bool       `gorm:"default:false" json:"isVerified"`
	VerificationToken   *string    `gorm:"size:255" json:"-"`
	ResetPasswordToken  *string    `gorm:"size:255" json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`
	LastLogin           *time.Time `json:"lastLogin,omitempty"`
}

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Language  *string `json:"language" validate:"omitempty,oneof=ar en"`
	AvatarUrl *string `json:"avatarUrl"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// PublicProfile strips credential fields for responses.
func (u *User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"email":      u.Email,
		"firstName":  u.FirstName,
		"lastName":   u.LastName,
		"phone":      u.Phone,
		"language":   u.Language,
		"avatarUrl":  u.AvatarUrl,
		"role":       u.Role,
		"isVerified": u.IsVerified,
	}
}
