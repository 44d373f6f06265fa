package model

import "time"

type CreateSessionInput struct {
	BookingId uint   `json:"bookingId" validate:"required,gt=0"`
	Currency  string `json:"currency" validate:"omitempty,oneof=usd syp"`
}

// CheckoutInfo echoes the computed charge back to the client alongside the
// provider session.
type CheckoutInfo struct {
	SessionId     string  `json:"sessionId"`
	URL           string  `json:"url"`
	Amount        float64 `json:"amount"`
	AmountInCents int64   `json:"amountInCents"`
	Currency      string  `json:"currency"`
	BookingNumber string  `json:"bookingNumber"`
}

// Invoice is assembled on demand from a paid booking; nothing is stored.
type Invoice struct {
	InvoiceNumber  string     `json:"invoiceNumber"`
	BookingNumber  string     `json:"bookingNumber"`
	IssuedAt       time.Time  `json:"issuedAt"`
	CustomerName   string     `json:"customerName"`
	CustomerEmail  string     `json:"customerEmail"`
	PlaceName      string     `json:"placeName"`
	ServiceType    string     `json:"serviceType"`
	BookingDate    time.Time  `json:"bookingDate"`
	NumberOfGuests int        `json:"numberOfGuests"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency"`
	PaymentMethod  string     `json:"paymentMethod"`
	TransactionId  string     `json:"transactionId"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
}
