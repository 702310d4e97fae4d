package services

import (
	"errors"

	"core/apperrors"
	"core/models"

	"gorm.io/gorm"
)

// Leaderboard sizes are capped so a greedy client cannot dump the user table.
const maxLeaderboardLimit = 100

type RatingService struct {
	DB *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > maxLeaderboardLimit {
		return maxLeaderboardLimit
	}
	return limit
}

// WinsLeaderboard ranks users by wins, ties broken by fewer losses.
func (s *RatingService) WinsLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	return s.leaderboard("wins DESC, losses ASC, telegram_id ASC", limit)
}

// CoinsLeaderboard ranks users by balance.
func (s *RatingService) CoinsLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	return s.leaderboard("balance DESC, telegram_id ASC", limit)
}

// StarsLeaderboard ranks users by stars.
func (s *RatingService) StarsLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	return s.leaderboard("stars DESC, telegram_id ASC", limit)
}

func (s *RatingService) leaderboard(order string, limit int) ([]models.LeaderboardEntry, error) {
	var users []models.User
	err := s.DB.Order(order).Limit(clampLimit(limit)).Find(&users).Error
	if err != nil {
		return nil, err
	}
	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, models.LeaderboardEntry{User: u, Position: i + 1})
	}
	return entries, nil
}

// UserRating returns a user's position in the wins ranking and the total
// player count.
func (s *RatingService) UserRating(telegramID int64) (*models.UserRatingResponse, error) {
	var user models.User
	err := s.DB.First(&user, "telegram_id = ?", telegramID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %d not found", telegramID)
		}
		return nil, err
	}

	// Same ordering as the wins leaderboard, so position matches it.
	var ahead int64
	err = s.DB.Model(&models.User{}).
		Where("wins > ? OR (wins = ? AND losses < ?) OR (wins = ? AND losses = ? AND telegram_id < ?)",
			user.Wins, user.Wins, user.Losses, user.Wins, user.Losses, user.TelegramID).
		Count(&ahead).Error
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	return &models.UserRatingResponse{
		User:         user,
		Position:     int(ahead) + 1,
		TotalPlayers: int(total),
	}, nil
}
