package model

type Itinerary struct {
	DTO
	UserId        uint           `gorm:"not null;index" json:"userId"`
	User          *User          `gorm:"foreignKey:UserId" json:"user,omitempty"`
	TitleAr       string         `gorm:"size:200;not null" json:"titleAr"`
	TitleEn       *string        `gorm:"size:200" json:"titleEn,omitempty"`
	DescriptionAr *string        `gorm:"type:text" json:"descriptionAr,omitempty"`
	DurationDays  int            `gorm:"default:1" json:"durationDays"`
	IsPublic      bool           `gorm:"default:false;index" json:"isPublic"`
	LikesCount    int            `gorm:"default:0" json:"likesCount"`
	Days          []ItineraryDay `gorm:"foreignKey:ItineraryId" json:"days,omitempty"`
}

type ItineraryDay struct {
	DTO
	ItineraryId uint            `gorm:"not null;index" json:"itineraryId"`
	DayNumber   int             `gorm:"not null" json:"dayNumber"`
	TitleAr     *string         `gorm:"size:200" json:"titleAr,omitempty"`
	Items       []ItineraryItem `gorm:"foreignKey:ItineraryDayId" json:"items,omitempty"`
}

type ItineraryItem struct {
	DTO
	ItineraryDayId uint    `gorm:"not null;index" json:"itineraryDayId"`
	PlaceId        uint    `gorm:"not null" json:"placeId"`
	Place          *Place  `gorm:"foreignKey:PlaceId" json:"place,omitempty"`
	StartTime      *string `gorm:"size:10" json:"startTime,omitempty"`
	DurationMin    int     `gorm:"default:60" json:"durationMinutes"`
	Notes          *string `gorm:"size:500" json:"notes,omitempty"`
	SortOrder      int     `gorm:"default:0" json:"sortOrder"`
}

type ItineraryItemInput struct {
	PlaceId     uint   `json:"placeId" validate:"required,gt=0"`
	StartTime   string `json:"startTime"`
	DurationMin int    `json:"durationMinutes" validate:"omitempty,gt=0"`
	Notes       string `json:"notes"`
	SortOrder   int    `json:"sortOrder"`
}

type ItineraryDayInput struct {
	DayNumber int                  `json:"dayNumber" validate:"required,gte=1"`
	TitleAr   string               `json:"titleAr"`
	Items     []ItineraryItemInput `json:"items" validate:"omitempty,dive"`
}

type CreateItineraryInput struct {
	TitleAr       string              `json:"titleAr" validate:"required"`
	TitleEn       string              `json:"titleEn"`
	DescriptionAr string              `json:"descriptionAr"`
	DurationDays  int                 `json:"durationDays" validate:"omitempty,gte=1"`
	IsPublic      bool                `json:"isPublic"`
	Days          []ItineraryDayInput `json:"days" validate:"omitempty,dive"`
}

type UpdateItineraryInput struct {
	TitleAr       *string `json:"titleAr"`
	TitleEn       *string `json:"titleEn"`
	DescriptionAr *string `json:"descriptionAr"`
	DurationDays  *int    `json:"durationDays" validate:"omitempty,gte=1"`
	IsPublic      *bool   `json:"isPublic"`
}
