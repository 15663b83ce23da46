package controller_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-blog-auth/app/controller"
	"github.com/vibast-solutions/ms-go-blog-auth/app/repository"
	"github.com/vibast-solutions/ms-go-blog-auth/app/service"
	"github.com/vibast-solutions/ms-go-blog-auth/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	selectUserPrefix      = `(?s)SELECT id, firstname, lastname, email, password_hash, role, account_type, is_verified,\s+profile_image_url, reset_token, reset_token_expires_at, created_at, updated_at\s+FROM users`
	findByEmailQuery      = selectUserPrefix + ` WHERE email = \?`
	findByIDQuery         = selectUserPrefix + ` WHERE id = \?`
	findByResetTokenQuery = selectUserPrefix + ` WHERE reset_token = \?`
	listUsersQuery        = selectUserPrefix + ` ORDER BY id LIMIT \? OFFSET \?`
	insertUserQuery       = `(?s)INSERT INTO users \(firstname, lastname, email, password_hash, role, account_type, is_verified, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?, \?, \?, \?, \?, \?\)`
	searchUsersQuery      = selectUserPrefix + `\s+WHERE LOWER\(firstname\) LIKE \? OR LOWER\(lastname\) LIKE \?\s+ORDER BY id LIMIT \?`
	suggestTeachersQuery  = selectUserPrefix + `\s+WHERE account_type = \? AND is_verified = 1\s+ORDER BY RAND\(\) LIMIT \?`
	updateNamesQuery      = `(?s)UPDATE users SET\s+firstname = \?,\s+lastname = \?,\s+updated_at = \?\s+WHERE id = \?`
	toggleVerifiedQuery   = `(?s)UPDATE users SET\s+is_verified = NOT is_verified,\s+updated_at = \?\s+WHERE id = \?`
	setResetTokenQuery    = `(?s)UPDATE users SET\s+reset_token = \?,\s+reset_token_expires_at = \?,\s+updated_at = \?\s+WHERE id = \?`
)

var userColumns = []string{
	"id",
	"firstname",
	"lastname",
	"email",
	"password_hash",
	"role",
	"account_type",
	"is_verified",
	"profile_image_url",
	"reset_token",
	"reset_token_expires_at",
	"created_at",
	"updated_at",
}

type controllers struct {
	auth  *controller.AuthController
	user  *controller.UserController
	admin *controller.AdminController
	codec *service.TokenCodec
}

func newControllerWithMock(t *testing.T) (*controllers, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: base64.StdEncoding.EncodeToString([]byte(strings.Repeat("c", 32)))},
		Tokens: config.TokenConfig{
			AccessTTL: config.TokenTTL,
			ResetTTL:  config.ResetTokenTTL,
			ClockSkew: config.ClockSkew,
		},
		Password: config.PasswordConfig{
			Policy: config.PasswordPolicy{MinLength: 1},
		},
		Frontend: config.FrontendConfig{BaseURL: "http://localhost:5173"},
	}

	userRepo := repository.NewUserRepository(db)
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	codec := service.NewTokenCodec(cfg)
	authService := service.NewAuthService(userRepo, codec, &service.LogMailer{}, cfg, service.WithPasswordHasher(hasher))
	userService := service.NewUserService(userRepo, hasher, cfg)

	return &controllers{
		auth:  controller.NewAuthController(authService),
		user:  controller.NewUserController(userService),
		admin: controller.NewAdminController(userService),
		codec: codec,
	}, mock, func() { _ = db.Close() }
}

func newJSONRequest(t *testing.T, method, path string, body any) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	return body
}

func userRows(id uint64, email, passwordHash, role string, accountType any, verified bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userColumns).
		AddRow(id, "Ann", "Lee", email, passwordHash, role, accountType, verified, nil, nil, nil, now, now)
}
