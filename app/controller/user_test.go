package controller_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-blog-auth/app/middleware"
	"github.com/vibast-solutions/ms-go-blog-auth/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
)

func TestMe(t *testing.T) {
	c, mock, cleanup := newControllerWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(7)).
		WillReturnRows(userRows(7, "a@x.com", "hash", "USER", "STUDENT", true))

	req, rec := newJSONRequest(t, http.MethodGet, "/api/v1/user/me", nil)
	ctx := echo.New().NewContext(req, rec)
	middleware.SetIdentity(ctx, &service.Identity{UserID: 7, Email: "a@x.com", Role: "USER"})

	if err := c.user.Me(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["email"] != "a@x.com" || body["accountType"] != "STUDENT" || body["verified"] != true {
		t.Fatalf("unexpected profile: %v", body)
	}
	if _, leaked := body["passwordHash"]; leaked {
		t.Fatalf("profile must not expose the password hash")
	}
}

func TestMe_Anonymous(t *testing.T) {
	c, _, cleanup := newControllerWithMock(t)
	defer cleanup()

	req, rec := newJSONRequest(t, http.MethodGet, "/api/v1/user/me", nil)
	if err := c.user.Me(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestUpdateMe(t *testing.T) {
	c, mock, cleanup := newControllerWithMock(t)
	defer cleanup()

	mock.ExpectExec(updateNamesQuery).
		WithArgs("Grace", "Hopper", sqlmock.AnyArg(), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(uint64(7), "Grace", "Hopper", "a@x.com", "hash", "USER", "STUDENT", false, nil, nil, nil, time.Now(), time.Now()))

	req, rec := newJSONRequest(t, http.MethodPut, "/api/v1/user/me", map[string]string{
		"firstName": "Grace",
		"lastName":  "Hopper",
	})
	ctx := echo.New().NewContext(req, rec)
	middleware.SetIdentity(ctx, &service.Identity{UserID: 7})

	if err := c.user.UpdateMe(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["firstName"] != "Grace" || body["lastName"] != "Hopper" {
		t.Fatalf("unexpected profile: %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetUser(t *testing.T) {
	c, mock, cleanup := newControllerWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(5)).
		WillReturnRows(userRows(5, "t@x.com", "hash", "USER", "TEACHER", true))
	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(6)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	cases := []struct {
		id   string
		want int
	}{
		{"5", http.StatusOK},
		{"6", http.StatusNotFound},
		{"abc", http.StatusBadRequest},
	}

	e := echo.New()
	for _, tc := range cases {
		req, rec := newJSONRequest(t, http.MethodGet, "/api/v1/user/"+tc.id, nil)
		ctx := e.NewContext(req, rec)
		ctx.SetParamNames("id")
		ctx.SetParamValues(tc.id)

		if err := c.user.GetUser(ctx); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != tc.want {
			t.Fatalf("id %s: expected status %d, got %d", tc.id, tc.want, rec.Code)
		}
	}
}

func decodeProfiles(t *testing.T, body []byte) []map[string]any {
	t.Helper()

	var profiles []map[string]any
	if err := json.Unmarshal(body, &profiles); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	return profiles
}

func TestSearch(t *testing.T) {
	c, mock, cleanup := newControllerWithMock(t)
	defer cleanup()

	mock.ExpectQuery(searchUsersQuery).
		WithArgs("%ann%", "%ann%", 50).
		WillReturnRows(userRows(4, "ann@x.com", "hash", "USER", "STUDENT", false))

	req, rec := newJSONRequest(t, http.MethodGet, "/api/v1/user/search?query=ANN", nil)
	if err := c.user.Search(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	profiles := decodeProfiles(t, rec.Body.Bytes())
	if len(profiles) != 1 || profiles[0]["firstName"] != "Ann" {
		t.Fatalf("unexpected profiles: %v", profiles)
	}
	if _, leaked := profiles[0]["passwordHash"]; leaked {
		t.Fatalf("search must not expose the password hash")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	c, mock, cleanup := newControllerWithMock(t)
	defer cleanup()

	for _, path := range []string{"/api/v1/user/search", "/api/v1/user/search?query=%20%20"} {
		req, rec := newJSONRequest(t, http.MethodGet, path, nil)
		if err := c.user.Search(echo.New().NewContext(req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", path, rec.Code)
		}
		if profiles := decodeProfiles(t, rec.Body.Bytes()); profiles == nil || len(profiles) != 0 {
			t.Fatalf("%s: expected empty list, got %s", path, rec.Body.String())
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected no queries: %v", err)
	}
}

func TestSuggestions(t *testing.T) {
	c, mock, cleanup := newControllerWithMock(t)
	defer cleanup()

	mock.ExpectQuery(suggestTeachersQuery).
		WithArgs("TEACHER", 2).
		WillReturnRows(userRows(5, "t@x.com", "hash", "USER", "TEACHER", true))

	req, rec := newJSONRequest(t, http.MethodGet, "/api/v1/user/suggestions", nil)
	if err := c.user.Suggestions(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	profiles := decodeProfiles(t, rec.Body.Bytes())
	if len(profiles) != 1 || profiles[0]["accountType"] != "TEACHER" || profiles[0]["verified"] != true {
		t.Fatalf("unexpected profiles: %v", profiles)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
