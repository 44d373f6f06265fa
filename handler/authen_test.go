package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/helper"
	"github.com/yamamaalobaid/damascus-tour-guide/validate"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newLoginApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = gdb

	app := fiber.New()
	app.Post("/api/auth/login", validate.Login(), Login)
	return app, mock
}

func loginRequest(body string) *http.Request {
	req := httptest.NewRequest(fiber.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func userRows(t *testing.T, password string, verified bool) *sqlmock.Rows {
	t.Helper()
	hash, err := helper.HashPassword(password)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "email", "password", "is_verified", "role"}).
		AddRow(1, "u@example.com", hash, verified, "user")
}

func TestLoginRejectsUnverifiedAccount(t *testing.T) {
	app, mock := newLoginApp(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(userRows(t, "secret123", false))

	resp, err := app.Test(loginRequest(`{"email":"u@example.com","password":"secret123"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body struct {
		NeedsVerification bool `json:"needsVerification"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.NeedsVerification)
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	app, mock := newLoginApp(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(userRows(t, "secret123", true))

	resp, err := app.Test(loginRequest(`{"email":"u@example.com","password":"nope00"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestResetTokenIsShortLived(t *testing.T) {
	assert.Equal(t, 10*time.Minute, resetTokenTTL)
}
