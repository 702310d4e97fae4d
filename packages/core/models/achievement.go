package models

import "time"

// Achievement is an entry of the static achievement catalog.
type Achievement struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

// UserAchievement records an unlocked achievement. A user can unlock each
// achievement at most once.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"not null;uniqueIndex:idx_user_achievements_user_achievement" json:"userId"`
	AchievementID int       `gorm:"not null;uniqueIndex:idx_user_achievements_user_achievement" json:"achievementId"`
	UnlockedAt    time.Time `gorm:"autoCreateTime" json:"unlockedAt"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

// DTOs

type UnlockAchievementRequest struct {
	AchievementID int `json:"achievementId" binding:"required"`
}

type UnlockAchievementResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Achievement Achievement `json:"achievement"`
}
