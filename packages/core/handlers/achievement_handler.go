package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type AchievementHandler struct {
	achievementService *services.AchievementService
}

func NewAchievementHandler(achievementService *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// GetAchievements lists the achievement catalog
// @Summary Achievement catalog
// @Tags achievements
// @Produce json
// @Success 200 {array} models.Achievement
// @Router /achievements [get]
func (h *AchievementHandler) GetAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, h.achievementService.Catalog())
}

// GetUserAchievements lists a user's unlocked achievements
// @Summary User achievements
// @Tags achievements
// @Security BearerAuth
// @Produce json
// @Param userId path int true "Telegram user ID"
// @Success 200 {array} models.UserAchievement
// @Failure 400 {object} map[string]string
// @Router /achievements/user/{userId} [get]
func (h *AchievementHandler) GetUserAchievements(c *gin.Context) {
	userID, ok := pathInt64(c, "userId")
	if !ok {
		return
	}

	unlocked, err := h.achievementService.UserAchievements(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, unlocked)
}

// UnlockAchievement records an achievement unlock for a user
// @Summary Unlock achievement
// @Description Record an achievement for the user; repeated unlocks are no-ops (admin only)
// @Tags achievements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param userId path int true "Telegram user ID"
// @Param request body models.UnlockAchievementRequest true "Achievement to unlock"
// @Success 200 {object} models.UnlockAchievementResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /achievements/user/{userId}/unlock [post]
func (h *AchievementHandler) UnlockAchievement(c *gin.Context) {
	userID, ok := pathInt64(c, "userId")
	if !ok {
		return
	}

	var req models.UnlockAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	achievement, created, err := h.achievementService.Unlock(userID, req.AchievementID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Achievement unlocked"
	if !created {
		message = "Achievement already unlocked"
	}
	c.JSON(http.StatusOK, models.UnlockAchievementResponse{
		Success:     true,
		Message:     message,
		Achievement: achievement,
	})
}
