package models

import "time"

type ShopItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Price     int       `gorm:"not null" json:"price"`
	Category  string    `gorm:"size:50" json:"category"`
	Emoji     string    `gorm:"size:10" json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ShopItem) TableName() string {
	return "shop_items"
}

// Purchase is the audit row written for every successful shop debit.
type Purchase struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"userId"`
	ItemID    uint      `gorm:"not null" json:"itemId"`
	ItemName  string    `gorm:"size:255" json:"itemName"`
	Price     int       `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// DTOs

type PurchaseRequest struct {
	ItemID uint `json:"itemId" binding:"required"`
}

type PurchaseResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	NewBalance int    `json:"newBalance"`
}
