package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService *services.RatingService
	userService   *services.UserService
}

func NewRatingHandler(ratingService *services.RatingService, userService *services.UserService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		userService:   userService,
	}
}

func queryLimit(c *gin.Context) int {
	limit := 10
	if param := c.Query("limit"); param != "" {
		if l, err := strconv.Atoi(param); err == nil && l > 0 {
			limit = l
		}
	}
	return limit
}

// GetWinsLeaderboard ranks users by wins
// @Summary Wins leaderboard
// @Tags rating
// @Produce json
// @Param limit query int false "Entries to return (default: 10, max: 100)"
// @Success 200 {array} models.LeaderboardEntry
// @Router /rating/wins [get]
func (h *RatingHandler) GetWinsLeaderboard(c *gin.Context) {
	entries, err := h.ratingService.WinsLeaderboard(queryLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetCoinsLeaderboard ranks users by balance
// @Summary Coins leaderboard
// @Tags rating
// @Produce json
// @Param limit query int false "Entries to return (default: 10, max: 100)"
// @Success 200 {array} models.LeaderboardEntry
// @Router /rating/coins [get]
func (h *RatingHandler) GetCoinsLeaderboard(c *gin.Context) {
	entries, err := h.ratingService.CoinsLeaderboard(queryLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetStarsLeaderboard ranks users by stars
// @Summary Stars leaderboard
// @Tags rating
// @Produce json
// @Param limit query int false "Entries to return (default: 10, max: 100)"
// @Success 200 {array} models.LeaderboardEntry
// @Router /rating/stars-leaderboard [get]
func (h *RatingHandler) GetStarsLeaderboard(c *gin.Context) {
	entries, err := h.ratingService.StarsLeaderboard(queryLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// AddPoints credits points to a user's balance
// @Summary Add rating points
// @Description Credit points to the user's balance (admin only)
// @Tags rating
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddPointsRequest true "Points to add"
// @Success 200 {object} models.BalanceChangeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rating/add-points [post]
func (h *RatingHandler) AddPoints(c *gin.Context) {
	var req models.AddPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newBalance, err := h.userService.AddBalance(req.UserID, req.Points)
	if err != nil {
		respondError(c, err)
		return
	}

	message := fmt.Sprintf("Added %d points", req.Points)
	if req.Reason != "" {
		message = fmt.Sprintf("Added %d points (%s)", req.Points, req.Reason)
	}
	c.JSON(http.StatusOK, models.BalanceChangeResponse{
		Success:    true,
		Message:    message,
		NewBalance: newBalance,
	})
}

// GetUserRating returns a user's rank
// @Summary User rating
// @Tags rating
// @Produce json
// @Param id path int true "Telegram user ID"
// @Success 200 {object} models.UserRatingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rating/user/{id} [get]
func (h *RatingHandler) GetUserRating(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}

	rating, err := h.ratingService.UserRating(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}
