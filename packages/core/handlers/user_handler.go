package handlers

import (
	"fmt"
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService       *services.UserService
	tournamentService *services.TournamentService
}

func NewUserHandler(userService *services.UserService, tournamentService *services.TournamentService) *UserHandler {
	return &UserHandler{
		userService:       userService,
		tournamentService: tournamentService,
	}
}

// UpsertUser creates or updates a user profile
// @Summary Create or update user
// @Description Create the user on first sight (with the starting balance) or patch the stored profile
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user body models.UpsertUserRequest true "User data"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Router /users [post]
func (h *UserHandler) UpsertUser(c *gin.Context) {
	var req models.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Upsert(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser gets a user by Telegram ID
// @Summary Get user
// @Description Get a user profile, provisioning it with the starting balance if unseen
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "Telegram user ID"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetOrCreate(id, "", "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserTournaments lists tournaments the user participates in
// @Summary User tournaments
// @Description List tournaments the user has joined, newest first
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "Telegram user ID"
// @Success 200 {array} models.Tournament
// @Failure 400 {object} map[string]string
// @Router /users/{id}/tournaments [get]
func (h *UserHandler) GetUserTournaments(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}

	tournaments, err := h.tournamentService.ListUserTournaments(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournaments)
}

// AddBalance credits a user's balance
// @Summary Add balance
// @Description Credit a positive amount to the user's balance (admin only)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Telegram user ID"
// @Param request body models.BalanceChangeRequest true "Amount to add"
// @Success 200 {object} models.BalanceChangeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id}/balance/add [post]
func (h *UserHandler) AddBalance(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}

	var req models.BalanceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newBalance, err := h.userService.AddBalance(id, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BalanceChangeResponse{
		Success:    true,
		Message:    "Balance updated",
		NewBalance: newBalance,
	})
}

// DeductBalance debits a user's balance
// @Summary Deduct balance
// @Description Debit a positive amount from the user's balance (admin only)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Telegram user ID"
// @Param request body models.BalanceChangeRequest true "Amount to deduct"
// @Success 200 {object} models.BalanceChangeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id}/balance/deduct [post]
func (h *UserHandler) DeductBalance(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}

	var req models.BalanceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newBalance, err := h.userService.DeductBalance(id, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BalanceChangeResponse{
		Success:    true,
		Message:    "Balance updated",
		NewBalance: newBalance,
	})
}

// GetStars returns a user's star balance
// @Summary Get stars
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "Telegram user ID"
// @Success 200 {object} models.StarsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id}/stars [get]
func (h *UserHandler) GetStars(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}

	stars, err := h.userService.Stars(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stars)
}

// AddStars credits stars to a user
// @Summary Add stars
// @Description Credit a positive amount of stars to the user (admin only)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Telegram user ID"
// @Param request body models.AddStarsRequest true "Stars to add"
// @Success 200 {object} models.AddStarsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id}/add-stars [post]
func (h *UserHandler) AddStars(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}

	var req models.AddStarsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStars, err := h.userService.AddStars(id, req.Stars)
	if err != nil {
		respondError(c, err)
		return
	}

	message := fmt.Sprintf("Added %d stars", req.Stars)
	if req.Reason != "" {
		message = fmt.Sprintf("Added %d stars (%s)", req.Stars, req.Reason)
	}
	c.JSON(http.StatusOK, models.AddStarsResponse{
		Success:  true,
		Message:  message,
		NewStars: newStars,
	})
}

// DistributeStars credits stars to a batch of users by username
// @Summary Distribute stars
// @Description Credit stars to many users at once; rows fail independently (admin only)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.DistributeStarsRequest true "Grants to apply"
// @Success 200 {object} models.DistributeStarsResponse
// @Failure 400 {object} map[string]string
// @Router /admin/distribute-stars [post]
func (h *UserHandler) DistributeStars(c *gin.Context) {
	var req models.DistributeStarsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.userService.DistributeStars(req.Users)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
