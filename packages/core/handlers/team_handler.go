package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// FormTeams draws teams from the tournament's participants
// @Summary Form teams
// @Description Randomly draw balanced teams, one player per role per team (admin only). Replaces any previous draw.
// @Tags tournaments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param request body models.FormTeamsRequest true "Number of teams"
// @Success 200 {object} models.FormTeamsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/form-teams [post]
func (h *TeamHandler) FormTeams(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	var req models.FormTeamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teams, err := h.teamService.FormTeams(id, req.NumTeams)
	if err != nil {
		respondError(c, err)
		return
	}

	ids := make([]uint, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}

	c.JSON(http.StatusOK, models.FormTeamsResponse{
		Success:    true,
		Message:    "Teams formed successfully",
		TeamsCount: len(teams),
		TeamIDs:    ids,
	})
}

// GetTeams lists the formed teams of a tournament
// @Summary Tournament teams
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.TeamsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/teams [get]
func (h *TeamHandler) GetTeams(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	teams, err := h.teamService.Teams(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TeamsResponse{
		Success:    true,
		TeamsCount: len(teams),
		Teams:      teams,
	})
}
