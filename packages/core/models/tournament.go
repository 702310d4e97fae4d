package models

import (
	"time"
)

// Tournament status lifecycle. Transitions are one-directional:
// pending -> active -> finished, and finished is terminal.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusFinished = "finished"
)

type Tournament struct {
	ID                  uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                string     `gorm:"size:255;not null" json:"name"`
	Description         string     `gorm:"type:text" json:"description"`
	StartDate           *time.Time `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	MaxParticipants     int        `gorm:"not null" json:"maxParticipants"`
	CurrentParticipants int        `gorm:"not null;default:0" json:"currentParticipants"`
	EntryFee            int        `gorm:"not null;default:0" json:"entryFee"`
	PrizePool           int        `gorm:"not null;default:0" json:"prizePool"`
	Status              string     `gorm:"size:50;not null;default:pending" json:"status"`
	CreatedBy           int64      `gorm:"not null" json:"createdBy"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`

	Participants []Participant `gorm:"foreignKey:TournamentID" json:"participants,omitempty"`
}

func (Tournament) TableName() string {
	return "tournaments"
}

func (t *Tournament) Finished() bool {
	return t.Status == StatusFinished
}

type Participant struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint      `gorm:"not null;uniqueIndex:idx_participants_tournament_user;constraint:OnDelete:CASCADE" json:"tournamentId"`
	UserID       int64     `gorm:"not null;uniqueIndex:idx_participants_tournament_user" json:"userId"`
	Username     string    `gorm:"size:255" json:"username"`
	Score        int       `gorm:"not null;default:0" json:"score"`
	Role         string    `gorm:"size:50" json:"role,omitempty"`
	JoinedAt     time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (Participant) TableName() string {
	return "tournament_participants"
}

// DTOs

type CreateTournamentRequest struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	MaxParticipants int        `json:"maxParticipants" binding:"required,gt=0"`
	EntryFee        int        `json:"entryFee" binding:"gte=0"`
	PrizePool       int        `json:"prizePool" binding:"gte=0"`
	CreatedBy       int64      `json:"createdBy" binding:"required"`
}

type UpdateTournamentRequest struct {
	Name            *string    `json:"name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	MaxParticipants *int       `json:"maxParticipants,omitempty" binding:"omitempty,gt=0"`
	EntryFee        *int       `json:"entryFee,omitempty" binding:"omitempty,gte=0"`
	PrizePool       *int       `json:"prizePool,omitempty" binding:"omitempty,gte=0"`
}

type JoinTournamentRequest struct {
	Role     string `json:"role"`
	GameID   string `json:"gameId"`
	ServerID string `json:"serverId"`
}

type JoinTournamentResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Tournament Tournament `json:"tournament"`
}

type LeaveTournamentResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	RefundedAmount int    `json:"refundedAmount"`
}

// PrizeAward records one credit made during finish.
type PrizeAward struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Position int    `json:"position"`
	Amount   int    `json:"amount"`
}

type FinishTournamentResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	Tournament Tournament   `json:"tournament"`
	Awards     []PrizeAward `json:"awards"`
}

// ResultEntry is a participant with its final position and computed prize.
type ResultEntry struct {
	Participant
	Position int `json:"position"`
	Prize    int `json:"prize"`
}
