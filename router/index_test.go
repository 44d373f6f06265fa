package router

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func hasRoute(app *fiber.App, method, path string) bool {
	for _, r := range app.GetRoutes() {
		if r.Method == method && r.Path == path {
			return true
		}
	}
	return false
}

func TestRoutesRegistered(t *testing.T) {
	app := fiber.New()
	SetupRoutes(app)

	cases := []struct{ method, path string }{
		{fiber.MethodPut, "/api/auth/avatar"},
		{fiber.MethodGet, "/api/payments/history"},
		{fiber.MethodGet, "/api/payments/booking/:bookingId"},
		{fiber.MethodGet, "/api/payments/invoice/:bookingId"},
		{fiber.MethodPost, "/api/itineraries/:itineraryId/like"},
		{fiber.MethodPost, "/api/itineraries/:itineraryId/days"},
		{fiber.MethodPost, "/api/itineraries/:itineraryId/days/:dayId/items"},
		{fiber.MethodGet, "/api/chats/support"},
		{fiber.MethodPut, "/api/chats/support/:chatId/accept"},
		{fiber.MethodGet, "/api/chats/ws/:chatCode"},
		{fiber.MethodGet, "/api/reviews/my"},
		{fiber.MethodDelete, "/api/notifications/read"},
	}
	for _, tc := range cases {
		assert.True(t, hasRoute(app, tc.method, tc.path), "%s %s", tc.method, tc.path)
	}
}
