package http

import "github.com/vibast-solutions/ms-go-blog-auth/app/dto"

type AuthenticationResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type VerificationResponse struct {
	UserID   uint64 `json:"userId"`
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

type UserListResponse struct {
	Users  []dto.UserProfile `json:"users"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
