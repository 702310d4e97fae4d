package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of the session token issued after the
// Telegram init data has been verified.
type SessionClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TelegramUser is the user object embedded in the WebApp init data.
type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
}

// DisplayName picks the best available handle for the user.
func (u *TelegramUser) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}

type TelegramAuthRequest struct {
	InitData string `json:"initData" binding:"required"`
}

type TelegramAuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}
