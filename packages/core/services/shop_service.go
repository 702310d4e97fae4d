package services

import (
	"errors"

	"core/apperrors"
	"core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShopService struct {
	DB *gorm.DB
}

func NewShopService(db *gorm.DB) *ShopService {
	return &ShopService{DB: db}
}

func (s *ShopService) ListItems() ([]models.ShopItem, error) {
	var items []models.ShopItem
	if err := s.DB.Order("price ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ShopService) UserItems(telegramID int64) (models.StringList, error) {
	var user models.User
	err := s.DB.First(&user, "telegram_id = ?", telegramID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %d not found", telegramID)
		}
		return nil, err
	}
	return user.OwnedItems, nil
}

// Purchase debits the item price, records the item as owned and writes an
// audit row, all atomically. Buying the same item twice is rejected.
func (s *ShopService) Purchase(telegramID int64, itemID uint) (*models.ShopItem, int, error) {
	var (
		item       models.ShopItem
		newBalance int
	)
	err := inTx(s.DB, func(tx *gorm.DB) error {
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("shop item %d not found", itemID)
			}
			return err
		}

		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "telegram_id = ?", telegramID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user %d not found", telegramID)
		}
		if err != nil {
			return err
		}

		if user.OwnedItems.Contains(item.Name) {
			return apperrors.DuplicatePurchase("item %q is already owned", item.Name)
		}
		if user.Balance < item.Price {
			return apperrors.InsufficientFunds("balance %d is below the price %d",
				user.Balance, item.Price)
		}

		user.Balance -= item.Price
		user.OwnedItems = append(user.OwnedItems, item.Name)
		newBalance = user.Balance
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"balance":     user.Balance,
			"owned_items": user.OwnedItems,
		}).Error; err != nil {
			return err
		}

		purchase := models.Purchase{
			ID:       uuid.NewString(),
			UserID:   telegramID,
			ItemID:   item.ID,
			ItemName: item.Name,
			Price:    item.Price,
		}
		return tx.Create(&purchase).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return &item, newBalance, nil
}

// PurchaseHistory lists a user's purchases, newest first.
func (s *ShopService) PurchaseHistory(telegramID int64) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := s.DB.Where("user_id = ?", telegramID).
		Order("created_at DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}
