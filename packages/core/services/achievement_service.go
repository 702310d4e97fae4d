package services

import (
	"errors"

	"core/apperrors"
	"core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// achievementCatalog is static; unlock rows reference it by id.
var achievementCatalog = []models.Achievement{
	{ID: 1, Name: "First Win", Emoji: "🏆", Description: "Win your first match"},
	{ID: 2, Name: "Spender", Emoji: "💰", Description: "Spend 1000 coins"},
	{ID: 3, Name: "Pro Player", Emoji: "👑", Description: "Win 100 matches"},
}

// CatalogAchievement looks up a catalog entry by id.
func CatalogAchievement(id int) (models.Achievement, bool) {
	for _, a := range achievementCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return models.Achievement{}, false
}

type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

func (s *AchievementService) Catalog() []models.Achievement {
	return achievementCatalog
}

// UserAchievements lists a user's unlocks, newest first.
func (s *AchievementService) UserAchievements(userID int64) ([]models.UserAchievement, error) {
	var unlocked []models.UserAchievement
	err := s.DB.Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&unlocked).Error
	if err != nil {
		return nil, err
	}
	return unlocked, nil
}

// Unlock records an achievement for a user. Unlocking the same achievement
// again is a no-op, reported via the bool.
func (s *AchievementService) Unlock(userID int64, achievementID int) (models.Achievement, bool, error) {
	achievement, ok := CatalogAchievement(achievementID)
	if !ok {
		return models.Achievement{}, false, apperrors.NotFound("achievement %d not found", achievementID)
	}

	var user models.User
	if err := s.DB.First(&user, "telegram_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Achievement{}, false, apperrors.NotFound("user %d not found", userID)
		}
		return models.Achievement{}, false, err
	}

	row := models.UserAchievement{UserID: userID, AchievementID: achievementID}
	result := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		return models.Achievement{}, false, result.Error
	}
	return achievement, result.RowsAffected > 0, nil
}
