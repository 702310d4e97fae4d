package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	shopService *services.ShopService
}

func NewShopHandler(shopService *services.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// GetItems lists the shop catalog
// @Summary List shop items
// @Tags shop
// @Produce json
// @Success 200 {array} models.ShopItem
// @Router /shop/items [get]
func (h *ShopHandler) GetItems(c *gin.Context) {
	items, err := h.shopService.ListItems()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// Purchase buys an item for the current user
// @Summary Purchase item
// @Description Debit the item price and add the item to the user's inventory. Each item can be bought once.
// @Tags shop
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.PurchaseRequest true "Item to buy"
// @Success 200 {object} models.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /shop/purchase [post]
func (h *ShopHandler) Purchase(c *gin.Context) {
	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := currentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, newBalance, err := h.shopService.Purchase(userID, req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PurchaseResponse{
		Success:    true,
		Message:    "Purchased " + item.Name,
		NewBalance: newBalance,
	})
}

// GetUserItems lists a user's owned items
// @Summary User inventory
// @Tags shop
// @Security BearerAuth
// @Produce json
// @Param userId path int true "Telegram user ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shop/user/{userId}/items [get]
func (h *ShopHandler) GetUserItems(c *gin.Context) {
	userID, ok := pathInt64(c, "userId")
	if !ok {
		return
	}

	items, err := h.shopService.UserItems(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetHistory lists the current user's purchases
// @Summary Purchase history
// @Tags shop
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Purchase
// @Failure 401 {object} map[string]string
// @Router /shop/history [get]
func (h *ShopHandler) GetHistory(c *gin.Context) {
	userID, exists := currentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	purchases, err := h.shopService.PurchaseHistory(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchases)
}
