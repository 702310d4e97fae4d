package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringList is stored as jsonb so Postgres can hold the owned-items list
// without a join table.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, l)
}

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// DefaultBalance is the starting balance credited when a user is first seen.
const DefaultBalance = 1000

// FallbackUsername names users that arrive without a Telegram username.
func FallbackUsername(telegramID int64) string {
	return fmt.Sprintf("user_%d", telegramID)
}

type User struct {
	TelegramID int64      `gorm:"primaryKey;column:telegram_id" json:"telegramId"`
	Username   string     `gorm:"size:255" json:"username"`
	FirstName  string     `gorm:"size:255" json:"firstName"`
	Balance    int        `gorm:"not null;default:1000" json:"balance"`
	Stars      int        `gorm:"not null;default:0" json:"stars"`
	Level      int        `gorm:"not null;default:1" json:"level"`
	Experience int        `gorm:"not null;default:0" json:"experience"`
	Wins       int        `gorm:"not null;default:0" json:"wins"`
	Losses     int        `gorm:"not null;default:0" json:"losses"`
	GameID     string     `gorm:"size:255" json:"gameId"`
	ServerID   string     `gorm:"size:255" json:"serverId"`
	OwnedItems StringList `gorm:"type:jsonb;default:'[]'::jsonb" json:"ownedItems"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// DTOs

type UpsertUserRequest struct {
	TelegramID int64   `json:"telegramId" binding:"required"`
	Username   string  `json:"username"`
	FirstName  string  `json:"firstName"`
	Balance    *int    `json:"balance,omitempty"`
	Stars      *int    `json:"stars,omitempty"`
	Level      *int    `json:"level,omitempty"`
	Experience *int    `json:"experience,omitempty"`
	Wins       *int    `json:"wins,omitempty"`
	Losses     *int    `json:"losses,omitempty"`
	GameID     *string `json:"gameId,omitempty"`
	ServerID   *string `json:"serverId,omitempty"`
}

type BalanceChangeRequest struct {
	Amount int    `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

type BalanceChangeResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	NewBalance int    `json:"newBalance"`
}

type StarsResponse struct {
	TelegramID int64  `json:"telegramId"`
	Username   string `json:"username"`
	Stars      int    `json:"stars"`
}

type AddStarsRequest struct {
	Stars  int    `json:"stars" binding:"required,gt=0"`
	Reason string `json:"reason"`
}

type AddStarsResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	NewStars int    `json:"newStars"`
}

// StarsGrant is one row of a bulk star distribution, addressed by username.
type StarsGrant struct {
	Username string `json:"username"`
	Stars    int    `json:"stars"`
}

type DistributeStarsRequest struct {
	Users []StarsGrant `json:"users" binding:"required"`
}

type StarsGrantResult struct {
	Username string `json:"username"`
	Success  bool   `json:"success"`
	Stars    int    `json:"stars,omitempty"`
	Error    string `json:"error,omitempty"`
}

type DistributeStarsResponse struct {
	Message          string             `json:"message"`
	TotalDistributed int                `json:"totalDistributed"`
	Results          []StarsGrantResult `json:"results"`
}

type AddPointsRequest struct {
	UserID int64  `json:"userId" binding:"required"`
	Points int    `json:"points" binding:"required"`
	Reason string `json:"reason"`
}
