package dto_test

import (
	"database/sql"
	"testing"

	"github.com/vibast-solutions/ms-go-blog-auth/app/dto"
	"github.com/vibast-solutions/ms-go-blog-auth/app/entity"
)

func TestNewUserProfile(t *testing.T) {
	user := &entity.User{
		ID:              3,
		Firstname:       "Ada",
		Lastname:        "Lovelace",
		Email:           "ada@blog.test",
		PasswordHash:    "hash",
		Role:            entity.RoleUser,
		AccountType:     sql.NullString{String: entity.AccountTypeTeacher, Valid: true},
		IsVerified:      true,
		ProfileImageURL: sql.NullString{String: "/profile-images/ada.png", Valid: true},
		ResetToken:      sql.NullString{String: "reset", Valid: true},
	}

	profile := dto.NewUserProfile(user)
	if profile.ID != 3 || profile.FirstName != "Ada" || profile.LastName != "Lovelace" || profile.Email != "ada@blog.test" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.AccountType == nil || *profile.AccountType != entity.AccountTypeTeacher {
		t.Fatalf("expected teacher account type, got %v", profile.AccountType)
	}
	if profile.ProfileImageURL == nil || *profile.ProfileImageURL != "/profile-images/ada.png" {
		t.Fatalf("expected profile image url, got %v", profile.ProfileImageURL)
	}
	if !profile.Verified || profile.Role != entity.RoleUser {
		t.Fatalf("unexpected role/verified: %+v", profile)
	}
}

func TestNewUserProfile_NullableFields(t *testing.T) {
	profile := dto.NewUserProfile(&entity.User{ID: 1, Email: "admin@blog.test", Role: entity.RoleAdmin})
	if profile.AccountType != nil || profile.ProfileImageURL != nil {
		t.Fatalf("expected nil nullable fields, got %+v", profile)
	}
}

func TestNewUserProfiles(t *testing.T) {
	profiles := dto.NewUserProfiles([]*entity.User{{ID: 1}, {ID: 2}})
	if len(profiles) != 2 || profiles[1].ID != 2 {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}
	if empty := dto.NewUserProfiles(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}
