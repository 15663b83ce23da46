package entity

import (
	"database/sql"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	AccountTypeStudent = "STUDENT"
	AccountTypeTeacher = "TEACHER"
)

type User struct {
	ID                  uint64
	Firstname           string
	Lastname            string
	Email               string
	PasswordHash        string
	Role                string
	AccountType         sql.NullString
	IsVerified          bool
	ProfileImageURL     sql.NullString
	ResetToken          sql.NullString
	ResetTokenExpiresAt sql.NullTime
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
