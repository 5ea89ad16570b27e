package identity

import (
	"time"

	"github.com/datamark/backend/internal/domain/identity"
)

// LoginRequest carries the login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserInfo is the authenticated user view returned alongside tokens
type UserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	TokenType             string    `json:"token_type"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  UserInfo  `json:"user"`
}

// ToUserInfo maps a domain user and its store to the transport view
func ToUserInfo(user *identity.User, store *identity.Store) UserInfo {
	info := UserInfo{
		ID:       user.ID.String(),
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
		StoreID:  user.StoreID.String(),
	}
	if store != nil {
		info.StoreName = store.Name
	}
	return info
}
