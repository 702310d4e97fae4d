package services

import (
	"sync"
	"testing"

	"core/apperrors"
	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(repo LedgerRepository) *TournamentService {
	return NewTournamentService(repo, DefaultTournamentConfig())
}

func createTournament(t *testing.T, svc *TournamentService, maxParticipants, entryFee, prizePool int) *models.Tournament {
	t.Helper()
	tournament, err := svc.CreateTournament(&models.CreateTournamentRequest{
		Name:            "Test Cup",
		MaxParticipants: maxParticipants,
		EntryFee:        entryFee,
		PrizePool:       prizePool,
		CreatedBy:       1,
	})
	require.NoError(t, err)
	return tournament
}

func TestCreateTournamentValidation(t *testing.T) {
	svc := newTestService(newFakeLedger())

	_, err := svc.CreateTournament(&models.CreateTournamentRequest{
		Name:            "   ",
		MaxParticipants: 8,
		CreatedBy:       1,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	_, err = svc.CreateTournament(&models.CreateTournamentRequest{
		Name:            "Cup",
		MaxParticipants: 0,
		CreatedBy:       1,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	tournament, err := svc.CreateTournament(&models.CreateTournamentRequest{
		Name:            "  Cup  ",
		MaxParticipants: 8,
		CreatedBy:       1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cup", tournament.Name)
	assert.Equal(t, models.StatusPending, tournament.Status)
}

func TestJoinDebitsEntryFee(t *testing.T) {
	repo := newFakeLedger()
	svc := newTestService(repo)
	tournament := createTournament(t, svc, 8, 100, 500)

	joined, err := svc.JoinTournament(tournament.ID, 42, "player42", &models.JoinTournamentRequest{Role: "roamer"})
	require.NoError(t, err)

	assert.Equal(t, 1, joined.CurrentParticipants)
	assert.Equal(t, models.DefaultBalance-100, repo.balance(42))
}

func TestJoinUnknownUserIsProvisioned(t *testing.T) {
	repo := newFakeLedger()
	svc := newTestService(repo)
	tournament := createTournament(t, svc, 8, 0, 0)

	_, err := svc.JoinTournament(tournament.ID, 7, "", &models.JoinTournamentRequest{})
	require.NoError(t, err)

	user, err := repo.UserForUpdate(7)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBalance, user.Balance)
}

func TestJoinRejectsDuplicate(t *testing.T) {
	repo := newFakeLedger()
	svc := newTestService(repo)
	tournament := createTournament(t, svc, 8, 50, 0)

	_, err := svc.JoinTournament(tournament.ID, 42, "player42", &models.JoinTournamentRequest{})
	require.NoError(t, err)

	_, err = svc.JoinTournament(tournament.ID, 42, "player42", &models.JoinTournamentRequest{})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeDuplicateJoin))

	// The failed join must not debit again.
	assert.Equal(t, models.DefaultBalance-50, repo.balance(42))
}

func TestJoinRejectsWhenFull(t *testing.T) {
	repo := newFakeLedger()
	svc := newTestService(repo)
	tournament := createTournament(t, svc, 2, 0, 0)

	for id := int64(1); id <= 2; id++ {
		_, err := svc.JoinTournament(tournament.ID, id, "", &models.JoinTournamentRequest{})
		require.NoError(t, err)
	}

	_, err := svc.JoinTournament(tournament.ID, 3, "", &models.JoinTournamentRequest{})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeCapacity))
}

func TestJoinRejectsInsufficientFunds(t *testing.T) {
	repo := newFakeLedger()
	repo.addUser(42, 10)
	svc := newTestService(repo)
	tournament := createTournament(t, svc, 8, 100, 0)

	_, err := svc.JoinTournament(tournament.ID, 42, "", &models.JoinTournamentRequest{})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInsufficientFunds))
	assert.Equal(t, 10, repo.balance(42))
}

func TestJoinRejectsUnknownRole(t *testing.T) {
	svc := newTestService(newFakeLedger())
	tournament := createTournament(t, svc, 8, 0, 0)

	_, err := svc.JoinTournament(tournament.ID, 42, "", &models.JoinTournamentRequest{Role: "goalkeeper"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestConcurrentJoinsNeverOversubscribe(t *testing.T) {
	repo := newFakeLedger()
	svc := newTestService(repo)
	tournament := createTournament(t, svc, 5, 25, 0)

	var wg sync.WaitGroup
	errs := make([]error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.JoinTournament(tournament.ID, int64(i+1), "", &models.JoinTournamentRequest{})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperrors.IsCode(err, apperrors.CodeCapacity))
		}
	}
	assert.Equal(t, 5, succeeded)

	final, err := svc.GetTournament(tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, final.CurrentParticipants)
	assert.Len(t, final.Participants, 5)
}

func TestLeaveRefundsEntryFee(t *testing.T) {
	repo := newFakeLedger()
	svc := newTestService(repo)
	tournament := createTournament(t, svc, 8, 100, 0)

	_, err := svc.JoinTournament(tournament.ID, 42, "", &models.JoinTournamentRequest{})
	require.NoError(t, err)

	refunded, err := svc.LeaveTournament(tournament.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, 100, refunded)

	// Join then leave must be balance-neutral.
	assert.Equal(t, models.DefaultBalance, repo.balance(42))

	final, err := svc.GetTournament(tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, final.CurrentParticipants)
	assert.Empty(t, final.Participants)
}

func TestLeaveRejectsNonParticipant(t *testing.T) {
	svc := newTestService(newFakeLedger())
	tournament := createTournament(t, svc, 8, 0, 0)

	_, err := svc.LeaveTournament(tournament.ID, 42)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotParticipant))
}

func TestFinishPaysPrizesOnce(t *testing.T) {
	repo := newFakeLedger()
	svc := newTestService(repo)
	tournament := createTournament(t, svc, 8, 0, 1000)

	scores := map[int64]int{1: 30, 2: 20, 3: 10, 4: 5}
	for id := range scores {
		_, err := svc.JoinTournament(tournament.ID, id, "", &models.JoinTournamentRequest{})
		require.NoError(t, err)
	}
	for i := range repo.participants {
		repo.participants[i].Score = scores[repo.participants[i].UserID]
	}

	finished, awards, err := svc.FinishTournament(tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, finished.Status)

	require.Len(t, awards, 3)
	assert.Equal(t, int64(1), awards[0].UserID)
	assert.Equal(t, 500, awards[0].Amount)
	assert.Equal(t, 300, awards[1].Amount)
	assert.Equal(t, 200, awards[2].Amount)

	assert.Equal(t, models.DefaultBalance+500, repo.balance(1))
	assert.Equal(t, models.DefaultBalance+300, repo.balance(2))
	assert.Equal(t, models.DefaultBalance+200, repo.balance(3))
	assert.Equal(t, models.DefaultBalance, repo.balance(4))

	_, _, err = svc.FinishTournament(tournament.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeAlreadyFinished))

	// Balances unchanged by the rejected second finish.
	assert.Equal(t, models.DefaultBalance+500, repo.balance(1))
}

func TestFinishWithoutParticipants(t *testing.T) {
	svc := newTestService(newFakeLedger())
	tournament := createTournament(t, svc, 8, 0, 1000)

	finished, awards, err := svc.FinishTournament(tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, finished.Status)
	assert.Empty(t, awards)
}

func TestFinishedTournamentIsImmutable(t *testing.T) {
	repo := newFakeLedger()
	svc := newTestService(repo)
	tournament := createTournament(t, svc, 8, 50, 0)

	_, err := svc.JoinTournament(tournament.ID, 42, "", &models.JoinTournamentRequest{})
	require.NoError(t, err)

	_, _, err = svc.FinishTournament(tournament.ID)
	require.NoError(t, err)

	_, err = svc.JoinTournament(tournament.ID, 7, "", &models.JoinTournamentRequest{})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeAlreadyFinished))

	_, err = svc.LeaveTournament(tournament.ID, 42)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeAlreadyFinished))

	name := "Renamed"
	_, err = svc.UpdateTournament(tournament.ID, &models.UpdateTournamentRequest{Name: &name})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeAlreadyFinished))
}

func TestUpdateRejectsShrinkBelowCount(t *testing.T) {
	repo := newFakeLedger()
	svc := newTestService(repo)
	tournament := createTournament(t, svc, 8, 0, 0)

	for id := int64(1); id <= 3; id++ {
		_, err := svc.JoinTournament(tournament.ID, id, "", &models.JoinTournamentRequest{})
		require.NoError(t, err)
	}

	two := 2
	_, err := svc.UpdateTournament(tournament.ID, &models.UpdateTournamentRequest{MaxParticipants: &two})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	four := 4
	updated, err := svc.UpdateTournament(tournament.ID, &models.UpdateTournamentRequest{MaxParticipants: &four})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.MaxParticipants)
}

func TestDeleteTournament(t *testing.T) {
	svc := newTestService(newFakeLedger())
	tournament := createTournament(t, svc, 8, 0, 0)

	require.NoError(t, svc.DeleteTournament(tournament.ID))

	err := svc.DeleteTournament(tournament.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestResultsComputePrizes(t *testing.T) {
	repo := newFakeLedger()
	svc := newTestService(repo)
	tournament := createTournament(t, svc, 8, 0, 10)

	for id := int64(1); id <= 4; id++ {
		_, err := svc.JoinTournament(tournament.ID, id, "", &models.JoinTournamentRequest{})
		require.NoError(t, err)
	}
	for i := range repo.participants {
		repo.participants[i].Score = 100 - int(repo.participants[i].UserID)
	}

	_, results, err := svc.Results(tournament.ID)
	require.NoError(t, err)
	require.Len(t, results, 4)

	// floor(10*0.5)=5, floor(10*0.3)=3, floor(10*0.2)=2, then nothing.
	assert.Equal(t, 5, results[0].Prize)
	assert.Equal(t, 3, results[1].Prize)
	assert.Equal(t, 2, results[2].Prize)
	assert.Equal(t, 0, results[3].Prize)
	assert.Equal(t, 1, results[0].Position)
	assert.Equal(t, 4, results[3].Position)
}

func TestListTournamentsStatusFilter(t *testing.T) {
	svc := newTestService(newFakeLedger())
	createTournament(t, svc, 8, 0, 0)

	_, err := svc.ListTournaments("bogus")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	pending, err := svc.ListTournaments(models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	finished, err := svc.ListTournaments(models.StatusFinished)
	require.NoError(t, err)
	assert.Empty(t, finished)
}
