package handlers

import (
	"log"
	"net/http"
	"os"
	"time"

	"auth/models"
	"auth/utils"

	coreServices "core/services"

	"github.com/gin-gonic/gin"
)

// Init data older than this is rejected to limit replay.
const initDataMaxAge = 24 * time.Hour

type AuthHandler struct {
	userService *coreServices.UserService
}

func NewAuthHandler(userService *coreServices.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// TelegramLogin exchanges Telegram WebApp init data for a session token
// @Summary Telegram login
// @Description Verify Telegram WebApp init data, provision the user and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.TelegramAuthRequest true "Init data from the WebApp"
// @Success 200 {object} models.TelegramAuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/telegram [post]
func (h *AuthHandler) TelegramLogin(c *gin.Context) {
	var req models.TelegramAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Println("TELEGRAM_BOT_TOKEN is not set, refusing login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication is not configured"})
		return
	}

	tgUser, err := utils.VerifyInitData(req.InitData, botToken, initDataMaxAge)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Telegram init data"})
		return
	}

	user, err := h.userService.GetOrCreate(tgUser.ID, tgUser.Username, tgUser.FirstName)
	if err != nil {
		log.Printf("Failed to provision user %d: %v", tgUser.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := utils.IssueSessionToken(user.TelegramID, user.Username)
	if err != nil {
		log.Printf("Failed to sign session token for user %d: %v", tgUser.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.TelegramAuthResponse{
		Token: token,
		User:  user,
	})
}
