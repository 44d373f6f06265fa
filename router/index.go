package router

import (
	"github.com/yamamaalobaid/damascus-tour-guide/handler"
	"github.com/yamamaalobaid/damascus-tour-guide/middleware"
	"github.com/yamamaalobaid/damascus-tour-guide/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())

	auth := api.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/verify-email", handler.VerifyEmail)
	auth.Post("/resend-verification", middleware.Protected(), handler.ResendVerification)
	auth.Get("/me", middleware.Protected(), handler.Me)
	auth.Put("/profile", middleware.Protected(), validate.UpdateProfile(), handler.UpdateProfile)
	auth.Put("/avatar", middleware.Protected(), handler.UpdateAvatar)
	auth.Put("/change-password", middleware.Protected(), validate.ChangePassword(), handler.ChangePassword)
	auth.Post("/forgot-password", handler.ForgotPassword)
	auth.Post("/reset-password", handler.ResetPassword)

	places := api.Group("/places", logger.New())
	places.Get("/", handler.GetPlaces)
	places.Get("/categories", handler.GetCategories)
	places.Get("/nearby", handler.GetNearbyPlaces)
	places.Get("/slug/:slug", middleware.OptionalAuth(), handler.GetPlaceBySlug)
	places.Get("/:placeId", middleware.OptionalAuth(), validate.GetById("placeId"), handler.GetPlaceById)
	places.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreatePlace(), handler.CreatePlace)
	places.Put("/:placeId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("placeId"), handler.UpdatePlace)
	places.Delete("/:placeId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("placeId"), handler.DeletePlace)
	places.Post("/:placeId/images", middleware.Protected(), middleware.AdminOnly(), validate.GetById("placeId"), handler.UploadPlaceImage)

	places.Get("/:placeId/reviews", validate.GetById("placeId"), handler.GetPlaceReviews)
	places.Post("/:placeId/reviews", middleware.Protected(), validate.GetById("placeId"), validate.CreateReview(), handler.CreateReview)

	reviews := api.Group("/reviews", logger.New())
	reviews.Get("/my", middleware.Protected(), handler.GetMyReviews)
	reviews.Put("/:reviewId", middleware.Protected(), validate.GetById("reviewId"), validate.CreateReview(), handler.UpdateReview)
	reviews.Delete("/:reviewId", middleware.Protected(), validate.GetById("reviewId"), handler.DeleteReview)
	reviews.Post("/:reviewId/helpful", middleware.Protected(), validate.GetById("reviewId"), handler.MarkReviewHelpful)

	favorites := api.Group("/favorites", logger.New())
	favorites.Get("/", middleware.Protected(), handler.GetMyFavorites)
	favorites.Post("/:placeId", middleware.Protected(), validate.GetById("placeId"), validate.Favorite(), handler.AddFavorite)
	favorites.Delete("/:placeId", middleware.Protected(), validate.GetById("placeId"), handler.RemoveFavorite)

	bookings := api.Group("/bookings", logger.New())
	bookings.Post("/", middleware.Protected(), validate.CreateBooking(), handler.CreateBooking)
	bookings.Get("/", middleware.Protected(), handler.GetMyBookings)
	bookings.Get("/:bookingId", middleware.Protected(), validate.GetById("bookingId"), handler.GetBookingById)
	bookings.Get("/:bookingId/qr", middleware.Protected(), validate.GetById("bookingId"), handler.GetBookingQR)
	bookings.Put("/:bookingId", middleware.Protected(), validate.GetById("bookingId"), validate.UpdateBooking(), handler.UpdateBooking)
	bookings.Put("/:bookingId/cancel", middleware.Protected(), validate.GetById("bookingId"), validate.CancelBooking(), handler.CancelBooking)
	bookings.Put("/:bookingId/confirm", middleware.Protected(), middleware.AdminOnly(), validate.GetById("bookingId"), validate.ConfirmBooking(), handler.ConfirmBooking)
	bookings.Put("/:bookingId/complete", middleware.Protected(), middleware.AdminOnly(), validate.GetById("bookingId"), handler.CompleteBooking)

	payments := api.Group("/payments", logger.New())
	payments.Post("/create-session", middleware.Protected(), validate.CreateSession(), handler.CreatePaymentSession)
	payments.Get("/session/:sessionId", middleware.Protected(), handler.CheckPaymentSession)
	payments.Get("/history", middleware.Protected(), handler.GetPaymentHistory)
	payments.Get("/booking/:bookingId", middleware.Protected(), validate.GetById("bookingId"), handler.GetBookingPayment)
	payments.Get("/invoice/:bookingId", middleware.Protected(), validate.GetById("bookingId"), handler.GetInvoice)
	// Webhook is authenticated by signature over the raw body, never by session.
	payments.Post("/webhook", handler.PaymentWebhook)

	itineraries := api.Group("/itineraries", logger.New())
	itineraries.Get("/", middleware.Protected(), handler.GetMyItineraries)
	itineraries.Get("/public", handler.GetPublicItineraries)
	itineraries.Get("/:itineraryId", middleware.OptionalAuth(), validate.GetById("itineraryId"), handler.GetItineraryById)
	itineraries.Post("/", middleware.Protected(), validate.CreateItinerary(), handler.CreateItinerary)
	itineraries.Put("/:itineraryId", middleware.Protected(), validate.GetById("itineraryId"), validate.UpdateItinerary(), handler.UpdateItinerary)
	itineraries.Post("/:itineraryId/like", middleware.Protected(), validate.GetById("itineraryId"), handler.LikeItinerary)
	itineraries.Post("/:itineraryId/days", middleware.Protected(), validate.GetById("itineraryId"), handler.AddItineraryDay)
	itineraries.Post("/:itineraryId/days/:dayId/items", middleware.Protected(), validate.GetById("itineraryId"), handler.AddItineraryItem)
	itineraries.Delete("/:itineraryId", middleware.Protected(), validate.GetById("itineraryId"), handler.DeleteItinerary)

	chats := api.Group("/chats", logger.New())
	chats.Post("/", middleware.Protected(), validate.StartChat(), handler.StartChat)
	chats.Get("/", middleware.Protected(), handler.GetMyChats)
	chats.Get("/support", middleware.Protected(), middleware.AgentOrAdmin(), handler.GetSupportQueue)
	chats.Put("/support/:chatId/accept", middleware.Protected(), middleware.AgentOrAdmin(), validate.GetById("chatId"), handler.AcceptSupportChat)
	chats.Get("/:chatId/messages", middleware.Protected(), validate.GetById("chatId"), handler.GetChatMessages)
	chats.Post("/:chatId/messages", middleware.Protected(), validate.GetById("chatId"), validate.SendMessage(), handler.SendMessage)
	chats.Put("/:chatId/close", middleware.Protected(), validate.GetById("chatId"), handler.CloseChat)
	// The public code in the path is the capability; token auth does not
	// survive the websocket upgrade from all clients.
	chats.Get("/ws/:chatCode", websocket.New(handler.ChatSocket))

	notifications := api.Group("/notifications", logger.New())
	notifications.Get("/", middleware.Protected(), handler.GetMyNotifications)
	notifications.Put("/read-all", middleware.Protected(), handler.MarkAllNotificationsRead)
	notifications.Put("/:notificationId/read", middleware.Protected(), validate.GetById("notificationId"), handler.MarkNotificationRead)
	notifications.Delete("/read", middleware.Protected(), handler.DeleteReadNotifications)
	notifications.Delete("/:notificationId", middleware.Protected(), validate.GetById("notificationId"), handler.DeleteNotification)

	admin := api.Group("/admin", logger.New(), middleware.Protected(), middleware.AdminOnly())
	admin.Get("/users", handler.GetAllUsers)
	admin.Put("/users/:userId/role", validate.GetById("userId"), handler.UpdateUserRole)
	admin.Get("/bookings", handler.GetAllBookings)
	admin.Get("/stats", handler.GetDashboardStats)
	admin.Post("/notifications/broadcast", handler.BroadcastNotification)
	admin.Get("/webhooks/dead-letters", handler.GetWebhookDeadLetters)
}
