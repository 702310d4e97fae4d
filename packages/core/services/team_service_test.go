package services

import (
	"math/rand"
	"testing"

	"core/apperrors"
	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRoles = []string{"roamer", "holder", "expert", "lesnik", "mider"}

func rosterWithRoles(perRole int) []models.Participant {
	var participants []models.Participant
	id := int64(1)
	for _, role := range testRoles {
		for i := 0; i < perRole; i++ {
			participants = append(participants, models.Participant{
				UserID:   id,
				Username: models.FallbackUsername(id),
				Role:     role,
			})
			id++
		}
	}
	return participants
}

func TestBuildTeamsOnePlayerPerRole(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	teams, err := buildTeams(rosterWithRoles(2), testRoles, 2, rng)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	seen := make(map[int64]bool)
	for _, team := range teams {
		require.Len(t, team.Members, len(testRoles))
		roles := make(map[string]int)
		for _, member := range team.Members {
			roles[member.Role]++
			assert.False(t, seen[member.UserID], "user %d assigned twice", member.UserID)
			seen[member.UserID] = true
		}
		for _, role := range testRoles {
			assert.Equal(t, 1, roles[role])
		}
	}
}

func TestBuildTeamsInsufficientRole(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// Two of each role, but three teams requested.
	_, err := buildTeams(rosterWithRoles(2), testRoles, 3, rng)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInsufficientRole))
}

func TestBuildTeamsRoleMatchingIgnoresCase(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	participants := rosterWithRoles(1)
	for i := range participants {
		participants[i].Role = "  " + participants[i].Role + " "
	}
	participants[0].Role = "ROAMER"

	teams, err := buildTeams(participants, testRoles, 1, rng)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Len(t, teams[0].Members, len(testRoles))
}

func TestBuildTeamsDeterministicWithSeed(t *testing.T) {
	first, err := buildTeams(rosterWithRoles(3), testRoles, 3, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	second, err := buildTeams(rosterWithRoles(3), testRoles, 3, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, len(first[i].Members), len(second[i].Members))
		for j := range first[i].Members {
			assert.Equal(t, first[i].Members[j].UserID, second[i].Members[j].UserID)
		}
	}
}

func TestFormTeamsReplacesPreviousDraw(t *testing.T) {
	repo := newFakeLedger()
	tournamentSvc := newTestService(repo)
	tournament := createTournament(t, tournamentSvc, 20, 0, 0)

	for _, p := range rosterWithRoles(2) {
		_, err := tournamentSvc.JoinTournament(tournament.ID, p.UserID, p.Username, &models.JoinTournamentRequest{Role: p.Role})
		require.NoError(t, err)
	}

	svc := NewTeamService(repo, testRoles, rand.New(rand.NewSource(1)))

	teams, err := svc.FormTeams(tournament.ID, 2)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	again, err := svc.FormTeams(tournament.ID, 1)
	require.NoError(t, err)
	require.Len(t, again, 1)

	stored, err := svc.Teams(tournament.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestFormTeamsValidation(t *testing.T) {
	repo := newFakeLedger()
	svc := NewTeamService(repo, testRoles, rand.New(rand.NewSource(1)))

	_, err := svc.FormTeams(1, 0)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	_, err = svc.FormTeams(99, 1)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
