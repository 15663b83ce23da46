package dto

import "github.com/vibast-solutions/ms-go-blog-auth/app/entity"

// UserProfile is the public view of an identity. Credentials and reset token
// fields never leave the service.
type UserProfile struct {
	ID              uint64  `json:"id"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	AccountType     *string `json:"accountType"`
	Role            string  `json:"role"`
	Verified        bool    `json:"verified"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

func NewUserProfile(user *entity.User) UserProfile {
	profile := UserProfile{
		ID:        user.ID,
		FirstName: user.Firstname,
		LastName:  user.Lastname,
		Email:     user.Email,
		Role:      user.Role,
		Verified:  user.IsVerified,
	}
	if user.AccountType.Valid {
		accountType := user.AccountType.String
		profile.AccountType = &accountType
	}
	if user.ProfileImageURL.Valid {
		imageURL := user.ProfileImageURL.String
		profile.ProfileImageURL = &imageURL
	}
	return profile
}

func NewUserProfiles(users []*entity.User) []UserProfile {
	profiles := make([]UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, NewUserProfile(user))
	}
	return profiles
}
