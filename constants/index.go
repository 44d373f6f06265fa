package constants

// User roles.
const (
	ROLE_USER  = "user"
	ROLE_ADMIN = "admin"
	ROLE_AGENT = "agent"
)

// Booking statuses.
const (
	BOOKING_PENDING   = "pending"
	BOOKING_CONFIRMED = "confirmed"
	BOOKING_COMPLETED = "completed"
	BOOKING_CANCELLED = "cancelled"
)

// Payment statuses.
const (
	PAYMENT_PENDING   = "pending"
	PAYMENT_PAID      = "paid"
	PAYMENT_FAILED    = "failed"
	PAYMENT_REFUNDED  = "refunded"
	PAYMENT_CANCELLED = "cancelled"
)

// Service types a place can be booked as.
var ServiceTypes = []string{"tour", "hotel", "restaurant", "activity", "transport"}

// Place categories.
var PlaceCategories = []string{"historic", "restaurant", "hotel", "mosque", "church", "market", "museum", "park", "cafe"}

// Favorite categories.
var FavoriteCategories = []string{"want_to_visit", "visited", "favorite"}

// Notification types.
const (
	NOTIFY_BOOKING   = "booking"
	NOTIFY_REVIEW    = "review"
	NOTIFY_MESSAGE   = "message"
	NOTIFY_ALERT     = "alert"
	NOTIFY_PROMOTION = "promotion"
	NOTIFY_SYSTEM    = "system"
)

// Chat statuses.
const (
	CHAT_OPEN    = "open"
	CHAT_ACTIVE  = "active"
	CHAT_CLOSED  = "closed"
	CHAT_WAITING = "waiting"
)

// Pricing.
const (
	// Fallback nightly rate (SYP) when a hotel place has no entry fee set.
	DEFAULT_HOTEL_NIGHT_RATE = 10000
	// Hard-coded SYP→USD rate; no live lookup.
	SYP_PER_USD = 4500
	// Minimum charge the payment provider accepts.
	MIN_CHARGE_USD = 0.5
	MIN_CHARGE_SYP = 1000
)

// Booking time windows (hours before bookingDate).
const (
	UPDATE_WINDOW_HOURS = 48
	CANCEL_WINDOW_HOURS = 24
)
