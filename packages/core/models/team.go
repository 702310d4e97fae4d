package models

import "time"

type Team struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint      `gorm:"not null;constraint:OnDelete:CASCADE" json:"tournamentId"`
	Name         string    `gorm:"size:255" json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

func (Team) TableName() string {
	return "tournament_teams"
}

type TeamMember struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamID    uint      `gorm:"not null;constraint:OnDelete:CASCADE" json:"teamId"`
	UserID    int64     `gorm:"not null" json:"userId"`
	Username  string    `gorm:"size:255" json:"username"`
	Role      string    `gorm:"size:50;not null" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

// DTOs

type FormTeamsRequest struct {
	NumTeams int `json:"numTeams" binding:"required,gt=0"`
}

type FormTeamsResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	TeamsCount int    `json:"teamsCount"`
	TeamIDs    []uint `json:"teamIds"`
}

type TeamsResponse struct {
	Success    bool   `json:"success"`
	TeamsCount int    `json:"teamsCount"`
	Teams      []Team `json:"teams"`
}
