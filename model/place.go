package model

type Place struct {
	DTO
	NameAr        string   `gorm:"size:200;not null" json:"nameAr"`
	NameEn        string   `gorm:"size:200;not null" json:"nameEn"`
	Slug          string   `gorm:"size:220;uniqueIndex" json:"slug"`
	DescriptionAr *string  `gorm:"type:text" json:"descriptionAr,omitempty"`
	DescriptionEn *string  `gorm:"type:text" json:"descriptionEn,omitempty"`
	Category      string   `gorm:"size:50;not null;index" json:"category"`
	AddressAr     *string  `gorm:"size:500" json:"addressAr,omitempty"`
	AddressEn     *string  `gorm:"size:500" json:"addressEn,omitempty"`
	Latitude      *float64 `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude     *float64 `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	OpeningHours  *string  `gorm:"size:500" json:"openingHours,omitempty"`
	EntryFee      float64  `gorm:"type:decimal(10,2);default:0" json:"entryFee"`
	ContactPhone  *string  `gorm:"size:20" json:"contactPhone,omitempty"`
	ContactEmail  *string  `gorm:"size:100" json:"contactEmail,omitempty"`
	Website       *string  `gorm:"size:500" json:"website,omitempty"`
	AverageRating float64  `gorm:"type:decimal(3,2);default:0;index" json:"averageRating"`
	TotalReviews  int      `gorm:"default:0" json:"totalReviews"`
	ViewsCount    int      `gorm:"default:0" json:"viewsCount"`
	FeaturedImage *string  `gorm:"size:500" json:"featuredImage,omitempty"`
	IsActive      bool     `gorm:"default:true" json:"isActive"`

	Images []PlaceImage `gorm:"foreignKey:PlaceId" json:"images,omitempty"`
}

type PlaceImage struct {
	DTO
	PlaceId      uint    `gorm:"not null;index" json:"placeId"`
	ImageUrl     string  `gorm:"size:500;not null" json:"imageUrl"`
	CaptionAr    *string `gorm:"size:255" json:"captionAr,omitempty"`
	CaptionEn    *string `gorm:"size:255" json:"captionEn,omitempty"`
	IsPrimary    bool    `gorm:"default:false;index" json:"isPrimary"`
	DisplayOrder int     `gorm:"default:0" json:"displayOrder"`
	UploadedBy   uint    `gorm:"not null" json:"uploadedBy"`
}

type PlaceImageInput struct {
	Url       string `json:"url" validate:"required,url"`
	CaptionAr string `json:"captionAr"`
	CaptionEn string `json:"captionEn"`
}

type CreatePlaceInput struct {
	NameAr        string            `json:"nameAr" validate:"required"`
	NameEn        string            `json:"nameEn" validate:"required"`
	DescriptionAr string            `json:"descriptionAr"`
	DescriptionEn string            `json:"descriptionEn"`
	Category      string            `json:"category" validate:"required,oneof=historic restaurant hotel mosque church market museum park cafe"`
	AddressAr     string            `json:"addressAr"`
	AddressEn     string            `json:"addressEn"`
	Latitude      *float64          `json:"latitude"`
	Longitude     *float64          `json:"longitude"`
	OpeningHours  string            `json:"openingHours"`
	EntryFee      float64           `json:"entryFee" validate:"gte=0"`
	ContactPhone  string            `json:"contactPhone"`
	ContactEmail  string            `json:"contactEmail" validate:"omitempty,email"`
	Website       string            `json:"website" validate:"omitempty,url"`
	Images        []PlaceImageInput `json:"images" validate:"omitempty,dive"`
}
