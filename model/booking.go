package model

import "time"

type Booking struct {
	DTO
	BookingNumber      string     `gorm:"size:50;uniqueIndex;not null" json:"bookingNumber"`
	UserId             uint       `gorm:"not null;index" json:"userId"`
	User               *User      `gorm:"foreignKey:UserId" json:"user,omitempty"`
	PlaceId            uint       `gorm:"not null;index" json:"placeId"`
	Place              *Place     `gorm:"foreignKey:PlaceId" json:"place,omitempty"`
	ServiceType        string     `gorm:"size:50;not null" json:"serviceType"`
	BookingDate        time.Time  `gorm:"not null;index" json:"bookingDate"`
	NumberOfGuests     int        `gorm:"not null;default:1" json:"numberOfGuests"`
	TotalAmount        float64    `gorm:"type:decimal(10,2);not null;default:0" json:"totalAmount"`
	Currency           string     `gorm:"size:10;not null;default:SYP" json:"currency"`
	Status             string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	PaymentStatus      string     `gorm:"size:20;not null;default:pending" json:"paymentStatus"`
	PaymentMethod      *string    `gorm:"size:50" json:"paymentMethod,omitempty"`
	TransactionId      *string    `gorm:"size:100" json:"transactionId,omitempty"`
	SpecialRequests    *string    `gorm:"type:text" json:"specialRequests,omitempty"`
	CancellationReason *string    `gorm:"type:text" json:"cancellationReason,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
}

type CreateBookingInput struct {
	PlaceId         uint   `json:"placeId" validate:"required,gt=0"`
	ServiceType     string `json:"serviceType" validate:"required,oneof=tour hotel restaurant activity transport"`
	BookingDate     string `json:"bookingDate" validate:"required"`
	NumberOfGuests  int    `json:"numberOfGuests" validate:"omitempty,gte=1"`
	SpecialRequests string `json:"specialRequests"`
}

type UpdateBookingInput struct {
	NumberOfGuests  *int    `json:"numberOfGuests" validate:"omitempty,gte=1"`
	SpecialRequests *string `json:"specialRequests"`
}

type CancelBookingInput struct {
	CancellationReason string `json:"cancellationReason"`
}

type ConfirmBookingInput struct {
	PaymentMethod string `json:"paymentMethod"`
	TransactionId string `json:"transactionId"`
}

// BookingStats is recomputed fresh on every admin list call.
type BookingStats struct {
	Total        int64   `json:"total"`
	Pending      int64   `json:"pending"`
	Confirmed    int64   `json:"confirmed"`
	Completed    int64   `json:"completed"`
	Cancelled    int64   `json:"cancelled"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	Status        string
	ExcludeStatus string
	PaymentStatus string
	UserId        uint
	PlaceId       uint
	StartDate     *time.Time
	EndDate       *time.Time
	Page          int
	Limit         int
}
