package model

import "time"

type Review struct {
	DTO
	PlaceId         uint       `gorm:"not null;index:idx_review_user_place,unique;index" json:"placeId"`
	Place           *Place     `gorm:"foreignKey:PlaceId" json:"place,omitempty"`
	UserId          uint       `gorm:"not null;index:idx_review_user_place,unique" json:"userId"`
	User            *User      `gorm:"foreignKey:UserId" json:"user,omitempty"`
	Rating          float64    `gorm:"type:decimal(2,1);not null" json:"rating"`
	CommentAr       *string    `gorm:"type:text" json:"commentAr,omitempty"`
	CommentEn       *string    `gorm:"type:text" json:"commentEn,omitempty"`
	HelpfulCount    int        `gorm:"default:0" json:"helpfulCount"`
	IsVerifiedVisit bool       `gorm:"default:false" json:"isVerifiedVisit"`
	VisitDate       *time.Time `gorm:"type:date" json:"visitDate,omitempty"`
}

type CreateReviewInput struct {
	Rating    float64 `json:"rating" validate:"required,gte=1,lte=5"`
	CommentAr string  `json:"commentAr"`
	CommentEn string  `json:"commentEn"`
	VisitDate string  `json:"visitDate"`
}

type Favorite struct {
	DTO
	UserId   uint    `gorm:"not null;index:idx_favorite_user_place,unique" json:"userId"`
	PlaceId  uint    `gorm:"not null;index:idx_favorite_user_place,unique" json:"placeId"`
	Place    *Place  `gorm:"foreignKey:PlaceId" json:"place,omitempty"`
	Category string  `gorm:"size:50;default:favorite" json:"category"`
	Notes    *string `gorm:"size:500" json:"notes,omitempty"`
}

type FavoriteInput struct {
	Category string `json:"category" validate:"omitempty,oneof=want_to_visit visited favorite"`
	Notes    string `json:"notes" validate:"omitempty,max=500"`
}
