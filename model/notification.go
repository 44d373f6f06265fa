package model

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	DTO
	UserId    uint           `gorm:"not null;index" json:"userId"`
	Type      string         `gorm:"size:50;not null;index" json:"type"`
	TitleAr   string         `gorm:"size:255;not null" json:"titleAr"`
	TitleEn   string         `gorm:"size:255;not null" json:"titleEn"`
	MessageAr string         `gorm:"type:text;not null" json:"messageAr"`
	MessageEn string         `gorm:"type:text;not null" json:"messageEn"`
	Data      datatypes.JSON `json:"data,omitempty"`
	IsRead    bool           `gorm:"default:false;index" json:"isRead"`
	ReadAt    *time.Time     `json:"readAt,omitempty"`
}
