package services

import (
	"errors"
	"fmt"
	"strings"

	"core/apperrors"
	"core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Stars returns the star balance for a user.
func (s *UserService) Stars(telegramID int64) (*models.StarsResponse, error) {
	user, err := s.GetUser(telegramID)
	if err != nil {
		return nil, err
	}
	return &models.StarsResponse{
		TelegramID: user.TelegramID,
		Username:   user.Username,
		Stars:      user.Stars,
	}, nil
}

// AddStars credits a positive amount of stars to the user.
func (s *UserService) AddStars(telegramID int64, stars int) (int, error) {
	if stars <= 0 {
		return 0, apperrors.InvalidAmount("stars must be a positive integer, got %d", stars)
	}
	newStars := 0
	err := inTx(s.DB, func(tx *gorm.DB) error {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "telegram_id = ?", telegramID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user %d not found", telegramID)
		}
		if err != nil {
			return err
		}
		user.Stars += stars
		newStars = user.Stars
		return tx.Model(&user).Update("stars", user.Stars).Error
	})
	if err != nil {
		return 0, err
	}
	return newStars, nil
}

// validateStarsGrants checks a distribution batch row by row and returns one
// message per defect, so the admin sees every bad row at once.
func validateStarsGrants(grants []models.StarsGrant) []string {
	var problems []string
	for i, grant := range grants {
		if strings.TrimSpace(grant.Username) == "" {
			problems = append(problems, fmt.Sprintf("row %d: username is required", i+1))
		}
		if grant.Stars <= 0 {
			problems = append(problems, fmt.Sprintf("row %d: stars must be a positive integer", i+1))
		}
	}
	return problems
}

// starsUsernameVariants returns the stored-username forms a grant row may
// match. Clients send usernames with or without the leading "@".
func starsUsernameVariants(username string) []string {
	if strings.HasPrefix(username, "@") {
		return []string{username}
	}
	return []string{username, "@" + username}
}

// DistributeStars credits stars to a batch of users addressed by username.
// Rows fail independently; an unknown username does not abort the batch.
func (s *UserService) DistributeStars(grants []models.StarsGrant) (*models.DistributeStarsResponse, error) {
	if len(grants) == 0 {
		return nil, apperrors.Validation("users must be a non-empty array")
	}
	if problems := validateStarsGrants(grants); len(problems) > 0 {
		return nil, apperrors.Validation("%s", strings.Join(problems, "; "))
	}

	results := make([]models.StarsGrantResult, 0, len(grants))
	totalDistributed := 0
	succeeded := 0

	for _, grant := range grants {
		newStars, err := s.distributeOne(grant)
		if err != nil {
			message := "failed to update user"
			if appErr, ok := apperrors.As(err); ok {
				message = appErr.Message
			}
			results = append(results, models.StarsGrantResult{
				Username: grant.Username,
				Success:  false,
				Error:    message,
			})
			continue
		}
		results = append(results, models.StarsGrantResult{
			Username: grant.Username,
			Success:  true,
			Stars:    newStars,
		})
		totalDistributed += grant.Stars
		succeeded++
	}

	return &models.DistributeStarsResponse{
		Message:          fmt.Sprintf("updated %d users, %d failed", succeeded, len(grants)-succeeded),
		TotalDistributed: totalDistributed,
		Results:          results,
	}, nil
}

func (s *UserService) distributeOne(grant models.StarsGrant) (int, error) {
	newStars := 0
	err := inTx(s.DB, func(tx *gorm.DB) error {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("username IN ?", starsUsernameVariants(grant.Username)).
			Order("telegram_id ASC").
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user not found")
		}
		if err != nil {
			return err
		}
		user.Stars += grant.Stars
		newStars = user.Stars
		return tx.Model(&user).Update("stars", user.Stars).Error
	})
	if err != nil {
		return 0, err
	}
	return newStars, nil
}
