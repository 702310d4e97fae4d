package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(tournamentService *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

// CreateTournament creates a new tournament
// @Summary Create a new tournament
// @Description Create a new tournament (admin only)
// @Tags tournaments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tournament body models.CreateTournamentRequest true "Tournament data"
// @Success 201 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tournaments [post]
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	var req models.CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.tournamentService.CreateTournament(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tournament)
}

// GetAllTournaments lists tournaments
// @Summary List tournaments
// @Description List tournaments, newest first, with optional status filter
// @Tags tournaments
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, active, finished)
// @Success 200 {array} models.Tournament
// @Failure 400 {object} map[string]string
// @Router /tournaments [get]
func (h *TournamentHandler) GetAllTournaments(c *gin.Context) {
	tournaments, err := h.tournamentService.ListTournaments(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournaments)
}

// GetTournament gets a tournament by ID
// @Summary Get tournament by ID
// @Description Get tournament information with its participants
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [get]
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	tournament, err := h.tournamentService.GetTournament(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// UpdateTournament updates a tournament
// @Summary Update tournament
// @Description Patch tournament fields (admin only). The status field is managed by the lifecycle and cannot be set here.
// @Tags tournaments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param tournament body models.UpdateTournamentRequest true "Tournament update data"
// @Success 200 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [put]
func (h *TournamentHandler) UpdateTournament(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.tournamentService.UpdateTournament(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// DeleteTournament deletes a tournament
// @Summary Delete tournament
// @Description Delete a tournament and its participants (admin only). Entry fees are not refunded.
// @Tags tournaments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [delete]
func (h *TournamentHandler) DeleteTournament(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	if err := h.tournamentService.DeleteTournament(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tournament deleted successfully"})
}

// JoinTournament enrolls the current user
// @Summary Join tournament
// @Description Join a tournament, paying the entry fee from the user's balance
// @Tags tournaments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param request body models.JoinTournamentRequest true "Join request"
// @Success 200 {object} models.JoinTournamentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tournaments/{id}/join [post]
func (h *TournamentHandler) JoinTournament(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	var req models.JoinTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := currentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tournament, err := h.tournamentService.JoinTournament(id, userID, currentUsername(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.JoinTournamentResponse{
		Success:    true,
		Message:    "Joined tournament successfully",
		Tournament: *tournament,
	})
}

// LeaveTournament removes the current user from a tournament
// @Summary Leave tournament
// @Description Leave a tournament and refund the entry fee
// @Tags tournaments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.LeaveTournamentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/leave [post]
func (h *TournamentHandler) LeaveTournament(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	userID, exists := currentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	refunded, err := h.tournamentService.LeaveTournament(id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LeaveTournamentResponse{
		Success:        true,
		Message:        "Left tournament successfully",
		RefundedAmount: refunded,
	})
}

// FinishTournament finishes a tournament and pays out prizes
// @Summary Finish tournament
// @Description Rank participants, credit prizes and mark the tournament finished (admin only)
// @Tags tournaments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.FinishTournamentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/finish [post]
func (h *TournamentHandler) FinishTournament(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	tournament, awards, err := h.tournamentService.FinishTournament(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.FinishTournamentResponse{
		Success:    true,
		Message:    "Tournament finished",
		Tournament: *tournament,
		Awards:     awards,
	})
}

// GetResults returns the standings with computed prizes
// @Summary Tournament results
// @Description Participants in final order with the prize for each position
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/results [get]
func (h *TournamentHandler) GetResults(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	tournament, results, err := h.tournamentService.Results(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tournament": tournament,
		"results":    results,
	})
}
