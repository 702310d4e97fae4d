package services

import (
	"errors"

	"core/apperrors"
	"core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// GetOrCreate provisions the user on first sight with the default balance.
func (s *UserService) GetOrCreate(telegramID int64, username, firstName string) (*models.User, error) {
	if username == "" {
		username = models.FallbackUsername(telegramID)
	}
	user := models.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		Balance:    models.DefaultBalance,
		Level:      1,
		OwnedItems: models.StringList{},
	}
	if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
		return nil, err
	}
	return s.GetUser(telegramID)
}

func (s *UserService) GetUser(telegramID int64) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "telegram_id = ?", telegramID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %d not found", telegramID)
		}
		return nil, err
	}
	return &user, nil
}

// Upsert creates or patches a profile. Absent fields keep their stored
// values, so partial updates from the client are safe.
func (s *UserService) Upsert(req *models.UpsertUserRequest) (*models.User, error) {
	err := inTx(s.DB, func(tx *gorm.DB) error {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "telegram_id = ?", req.TelegramID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{
				TelegramID: req.TelegramID,
				Username:   req.Username,
				FirstName:  req.FirstName,
				Balance:    models.DefaultBalance,
				Level:      1,
				OwnedItems: models.StringList{},
			}
			if user.Username == "" {
				user.Username = models.FallbackUsername(req.TelegramID)
			}
			if err := applyUserPatch(&user, req); err != nil {
				return err
			}
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}

		if req.Username != "" {
			user.Username = req.Username
		}
		if req.FirstName != "" {
			user.FirstName = req.FirstName
		}
		if err := applyUserPatch(&user, req); err != nil {
			return err
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetUser(req.TelegramID)
}

func applyUserPatch(user *models.User, req *models.UpsertUserRequest) error {
	if req.Balance != nil {
		user.Balance = *req.Balance
	}
	if req.Stars != nil {
		user.Stars = *req.Stars
	}
	if req.Level != nil {
		user.Level = *req.Level
	}
	if req.Experience != nil {
		user.Experience = *req.Experience
	}
	if req.Wins != nil {
		user.Wins = *req.Wins
	}
	if req.Losses != nil {
		user.Losses = *req.Losses
	}
	if req.GameID != nil {
		user.GameID = *req.GameID
	}
	if req.ServerID != nil {
		user.ServerID = *req.ServerID
	}
	if user.Balance < 0 {
		return apperrors.InvalidAmount("balance cannot be negative")
	}
	return nil
}

// AddBalance credits a positive amount to the user.
func (s *UserService) AddBalance(telegramID int64, amount int) (int, error) {
	if amount <= 0 {
		return 0, apperrors.InvalidAmount("amount must be positive, got %d", amount)
	}
	newBalance := 0
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
		user.Balance += amount
		newBalance = user.Balance
		return tx.Model(&user).Update("balance", user.Balance).Error
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// DeductBalance debits a positive amount, failing if funds are short. The
// check and the write share a row lock so the balance can never go negative.
func (s *UserService) DeductBalance(telegramID int64, amount int) (int, error) {
	if amount <= 0 {
		return 0, apperrors.InvalidAmount("amount must be positive, got %d", amount)
	}
	newBalance := 0
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
		if user.Balance < amount {
			return apperrors.InsufficientFunds("balance %d is below %d", user.Balance, amount)
		}
		user.Balance -= amount
		newBalance = user.Balance
		return tx.Model(&user).Update("balance", user.Balance).Error
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}
