package services

import (
	"strings"

	"core/apperrors"
	"core/models"
	"core/utils"
)

// TournamentConfig carries the tunables of the tournament lifecycle. Zero
// values fall back to the defaults at construction time.
type TournamentConfig struct {
	// Roles accepted for participants and required when forming teams.
	Roles []string
	// RankOrder decides final standings at finish time.
	RankOrder string
}

func DefaultTournamentConfig() TournamentConfig {
	return TournamentConfig{
		Roles:     []string{"roamer", "holder", "expert", "lesnik", "mider"},
		RankOrder: "score DESC, joined_at ASC, id ASC",
	}
}

type TournamentService struct {
	Repo LedgerRepository
	cfg  TournamentConfig
}

func NewTournamentService(repo LedgerRepository, cfg TournamentConfig) *TournamentService {
	if len(cfg.Roles) == 0 {
		cfg.Roles = DefaultTournamentConfig().Roles
	}
	if cfg.RankOrder == "" {
		cfg.RankOrder = DefaultTournamentConfig().RankOrder
	}
	return &TournamentService{Repo: repo, cfg: cfg}
}

func (s *TournamentService) Roles() []string {
	return s.cfg.Roles
}

func (s *TournamentService) CreateTournament(req *models.CreateTournamentRequest) (*models.Tournament, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("tournament name is required")
	}
	if req.MaxParticipants <= 0 {
		return nil, apperrors.Validation("maxParticipants must be positive")
	}
	if req.EntryFee < 0 || req.PrizePool < 0 {
		return nil, apperrors.Validation("entryFee and prizePool must not be negative")
	}

	tournament := &models.Tournament{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		EntryFee:        req.EntryFee,
		PrizePool:       req.PrizePool,
		Status:          models.StatusPending,
		CreatedBy:       req.CreatedBy,
	}
	if err := s.Repo.CreateTournament(tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

// GetTournament returns the tournament with its participants in join order.
func (s *TournamentService) GetTournament(id uint) (*models.Tournament, error) {
	tournament, err := s.Repo.GetTournament(id)
	if err != nil {
		return nil, err
	}
	participants, err := s.Repo.Participants(id, "")
	if err != nil {
		return nil, err
	}
	tournament.Participants = participants
	return tournament, nil
}

func (s *TournamentService) ListTournaments(status string) ([]models.Tournament, error) {
	switch status {
	case "", models.StatusPending, models.StatusActive, models.StatusFinished:
	default:
		return nil, apperrors.Validation("unknown status filter %q", status)
	}
	return s.Repo.ListTournaments(status)
}

func (s *TournamentService) ListUserTournaments(userID int64) ([]models.Tournament, error) {
	return s.Repo.ListUserTournaments(userID)
}

// JoinTournament enrolls a user, debiting the entry fee. The capacity,
// balance and duplicate checks all happen under the tournament row lock so
// concurrent joins cannot oversubscribe a tournament or overdraw a balance.
func (s *TournamentService) JoinTournament(tournamentID uint, userID int64, username string, req *models.JoinTournamentRequest) (*models.Tournament, error) {
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != "" && !s.validRole(role) {
		return nil, apperrors.Validation("unknown role %q", req.Role)
	}

	var joined *models.Tournament
	err := s.Repo.InTx(func(store LedgerStore) error {
		tournament, err := store.TournamentForUpdate(tournamentID)
		if err != nil {
			return err
		}
		if tournament.Finished() {
			return apperrors.AlreadyFinished("tournament %d is finished", tournamentID)
		}
		if tournament.CurrentParticipants >= tournament.MaxParticipants {
			return apperrors.Capacity("tournament %q is full (%d/%d)",
				tournament.Name, tournament.CurrentParticipants, tournament.MaxParticipants)
		}

		if err := store.EnsureUser(userID, username); err != nil {
			return err
		}
		user, err := store.UserForUpdate(userID)
		if err != nil {
			return err
		}
		if user.Balance < tournament.EntryFee {
			return apperrors.InsufficientFunds("balance %d is below the entry fee %d",
				user.Balance, tournament.EntryFee)
		}

		exists, err := store.ParticipantExists(tournamentID, userID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.DuplicateJoin("user %d already joined tournament %d", userID, tournamentID)
		}

		snapshot := username
		if snapshot == "" {
			snapshot = user.Username
		}
		participant := &models.Participant{
			TournamentID: tournamentID,
			UserID:       userID,
			Username:     snapshot,
			Role:         role,
		}
		if err := store.InsertParticipant(participant); err != nil {
			return err
		}
		if err := store.SetParticipantCount(tournamentID, tournament.CurrentParticipants+1); err != nil {
			return err
		}
		if tournament.EntryFee > 0 {
			if err := store.AdjustBalance(userID, -tournament.EntryFee); err != nil {
				return err
			}
		}
		if req.GameID != "" || req.ServerID != "" {
			updates := map[string]interface{}{}
			if req.GameID != "" {
				updates["game_id"] = req.GameID
			}
			if req.ServerID != "" {
				updates["server_id"] = req.ServerID
			}
			if err := store.UpdateUserFields(userID, updates); err != nil {
				return err
			}
		}

		tournament.CurrentParticipants++
		joined = tournament
		return nil
	})
	if err != nil {
		return nil, err
	}
	return joined, nil
}

// LeaveTournament removes a participant and refunds the full entry fee.
// Finished tournaments are immutable, so leaving them is rejected.
func (s *TournamentService) LeaveTournament(tournamentID uint, userID int64) (int, error) {
	refunded := 0
	err := s.Repo.InTx(func(store LedgerStore) error {
		tournament, err := store.TournamentForUpdate(tournamentID)
		if err != nil {
			return err
		}
		if tournament.Finished() {
			return apperrors.AlreadyFinished("cannot leave finished tournament %d", tournamentID)
		}

		removed, err := store.DeleteParticipant(tournamentID, userID)
		if err != nil {
			return err
		}
		if !removed {
			return apperrors.NotParticipant("user %d is not a participant of tournament %d",
				userID, tournamentID)
		}

		count := tournament.CurrentParticipants - 1
		if count < 0 {
			count = 0
		}
		if err := store.SetParticipantCount(tournamentID, count); err != nil {
			return err
		}
		if tournament.EntryFee > 0 {
			if err := store.AdjustBalance(userID, tournament.EntryFee); err != nil {
				return err
			}
			refunded = tournament.EntryFee
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return refunded, nil
}

// FinishTournament ranks participants, pays out prizes and flips the status
// to finished, all in one transaction. Finishing twice is rejected, so every
// prize is paid exactly once.
func (s *TournamentService) FinishTournament(tournamentID uint) (*models.Tournament, []models.PrizeAward, error) {
	var (
		finished *models.Tournament
		awards   []models.PrizeAward
	)
	err := s.Repo.InTx(func(store LedgerStore) error {
		tournament, err := store.TournamentForUpdate(tournamentID)
		if err != nil {
			return err
		}
		if tournament.Finished() {
			return apperrors.AlreadyFinished("tournament %d is already finished", tournamentID)
		}

		ranked, err := store.Participants(tournamentID, s.cfg.RankOrder)
		if err != nil {
			return err
		}
		awards = make([]models.PrizeAward, 0, len(utils.PrizeShares))
		for i, p := range ranked {
			amount := utils.CalculatePrize(tournament.PrizePool, i)
			if amount == 0 {
				break
			}
			if err := store.AdjustBalance(p.UserID, amount); err != nil {
				return err
			}
			awards = append(awards, models.PrizeAward{
				UserID:   p.UserID,
				Username: p.Username,
				Position: i + 1,
				Amount:   amount,
			})
		}

		if err := store.SetStatus(tournamentID, models.StatusFinished); err != nil {
			return err
		}
		tournament.Status = models.StatusFinished
		finished = tournament
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return finished, awards, nil
}

// UpdateTournament patches mutable fields. The status field is owned by the
// lifecycle (finish and the scheduler) and cannot be set here.
func (s *TournamentService) UpdateTournament(id uint, req *models.UpdateTournamentRequest) (*models.Tournament, error) {
	err := s.Repo.InTx(func(store LedgerStore) error {
		tournament, err := store.TournamentForUpdate(id)
		if err != nil {
			return err
		}
		if tournament.Finished() {
			return apperrors.AlreadyFinished("tournament %d is finished and immutable", id)
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return apperrors.Validation("tournament name cannot be empty")
			}
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.StartDate != nil {
			updates["start_date"] = *req.StartDate
		}
		if req.EndDate != nil {
			updates["end_date"] = *req.EndDate
		}
		if req.MaxParticipants != nil {
			if *req.MaxParticipants < tournament.CurrentParticipants {
				return apperrors.Validation("maxParticipants %d is below the current participant count %d",
					*req.MaxParticipants, tournament.CurrentParticipants)
			}
			updates["max_participants"] = *req.MaxParticipants
		}
		if req.EntryFee != nil {
			updates["entry_fee"] = *req.EntryFee
		}
		if req.PrizePool != nil {
			updates["prize_pool"] = *req.PrizePool
		}
		if len(updates) == 0 {
			return nil
		}
		return store.UpdateTournamentFields(id, updates)
	})
	if err != nil {
		return nil, err
	}
	return s.GetTournament(id)
}

// DeleteTournament removes a tournament; participant and team rows go with
// it via cascade. Entry fees are not refunded on delete.
func (s *TournamentService) DeleteTournament(id uint) error {
	removed, err := s.Repo.DeleteTournament(id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NotFound("tournament %d not found", id)
	}
	return nil
}

// Results returns the current standings with the prize each position would
// earn (or did earn, once finished).
func (s *TournamentService) Results(tournamentID uint) (*models.Tournament, []models.ResultEntry, error) {
	tournament, err := s.Repo.GetTournament(tournamentID)
	if err != nil {
		return nil, nil, err
	}
	ranked, err := s.Repo.Participants(tournamentID, s.cfg.RankOrder)
	if err != nil {
		return nil, nil, err
	}
	entries := make([]models.ResultEntry, 0, len(ranked))
	for i, p := range ranked {
		entries = append(entries, models.ResultEntry{
			Participant: p,
			Position:    i + 1,
			Prize:       utils.CalculatePrize(tournament.PrizePool, i),
		})
	}
	return tournament, entries, nil
}

// ActivateDue flips pending tournaments whose start date has passed to
// active. Called periodically by the scheduler.
func (s *TournamentService) ActivateDue() (int64, error) {
	return s.Repo.ActivateDueTournaments()
}

func (s *TournamentService) validRole(role string) bool {
	for _, r := range s.cfg.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
