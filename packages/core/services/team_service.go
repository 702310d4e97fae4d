package services

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"core/apperrors"
	"core/models"
)

// TeamService draws balanced teams from a tournament's participants, one
// player per role per team. The random source is injected so draws can be
// reproduced in tests.
type TeamService struct {
	Repo  LedgerRepository
	roles []string

	mu  sync.Mutex
	rng *rand.Rand
}

func NewTeamService(repo LedgerRepository, roles []string, rng *rand.Rand) *TeamService {
	if len(roles) == 0 {
		roles = DefaultTournamentConfig().Roles
	}
	return &TeamService{Repo: repo, roles: roles, rng: rng}
}

// FormTeams replaces any previous draw for the tournament. Forming is an
// all-or-nothing check: if any role lacks enough players, no teams change.
func (s *TeamService) FormTeams(tournamentID uint, numTeams int) ([]models.Team, error) {
	if numTeams <= 0 {
		return nil, apperrors.Validation("numTeams must be positive, got %d", numTeams)
	}

	var formed []models.Team
	err := s.Repo.InTx(func(store LedgerStore) error {
		if _, err := store.TournamentForUpdate(tournamentID); err != nil {
			return err
		}
		participants, err := store.Participants(tournamentID, "")
		if err != nil {
			return err
		}

		s.mu.Lock()
		teams, err := buildTeams(participants, s.roles, numTeams, s.rng)
		s.mu.Unlock()
		if err != nil {
			return err
		}
		for i := range teams {
			teams[i].TournamentID = tournamentID
		}
		if err := store.ReplaceTeams(tournamentID, teams); err != nil {
			return err
		}
		formed = teams
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formed, nil
}

func (s *TeamService) Teams(tournamentID uint) ([]models.Team, error) {
	if _, err := s.Repo.GetTournament(tournamentID); err != nil {
		return nil, err
	}
	return s.Repo.Teams(tournamentID)
}

// buildTeams draws numTeams teams, each with exactly one player per role.
// Role matching is case-insensitive. Players left over stay unassigned.
func buildTeams(participants []models.Participant, roles []string, numTeams int, rng *rand.Rand) ([]models.Team, error) {
	byRole := make(map[string][]models.Participant, len(roles))
	for _, p := range participants {
		role := strings.ToLower(strings.TrimSpace(p.Role))
		byRole[role] = append(byRole[role], p)
	}

	for _, role := range roles {
		if have := len(byRole[role]); have < numTeams {
			return nil, apperrors.InsufficientRole("not enough players with role %q: need %d, have %d",
				role, numTeams, have)
		}
	}

	teams := make([]models.Team, 0, numTeams)
	for i := 0; i < numTeams; i++ {
		team := models.Team{Name: fmt.Sprintf("Team %d", i+1)}
		for _, role := range roles {
			pool := byRole[role]
			pick := rng.Intn(len(pool))
			p := pool[pick]
			byRole[role] = append(pool[:pick], pool[pick+1:]...)

			team.Members = append(team.Members, models.TeamMember{
				UserID:   p.UserID,
				Username: p.Username,
				Role:     role,
			})
		}
		teams = append(teams, team)
	}
	return teams, nil
}
