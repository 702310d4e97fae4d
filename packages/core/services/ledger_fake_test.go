package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"core/apperrors"
	"core/models"
)

// fakeLedger is an in-memory LedgerRepository. InTx serializes callers with
// a mutex, which mirrors the row-lock serialization the real store gets from
// SELECT FOR UPDATE.
type fakeLedger struct {
	mu           sync.Mutex
	nextID       uint
	tournaments  map[uint]*models.Tournament
	users        map[int64]*models.User
	participants []models.Participant
	teams        map[uint][]models.Team
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		nextID:      1,
		tournaments: make(map[uint]*models.Tournament),
		users:       make(map[int64]*models.User),
		teams:       make(map[uint][]models.Team),
	}
}

func (f *fakeLedger) InTx(fn func(LedgerStore) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f)
}

func (f *fakeLedger) addUser(id int64, balance int) {
	f.users[id] = &models.User{
		TelegramID: id,
		Username:   models.FallbackUsername(id),
		Balance:    balance,
		Level:      1,
		OwnedItems: models.StringList{},
	}
}

func (f *fakeLedger) CreateTournament(t *models.Tournament) error {
	t.ID = f.nextID
	f.nextID++
	t.CreatedAt = time.Now()
	copied := *t
	f.tournaments[t.ID] = &copied
	return nil
}

func (f *fakeLedger) GetTournament(id uint) (*models.Tournament, error) {
	t, ok := f.tournaments[id]
	if !ok {
		return nil, apperrors.NotFound("tournament %d not found", id)
	}
	copied := *t
	return &copied, nil
}

func (f *fakeLedger) TournamentForUpdate(id uint) (*models.Tournament, error) {
	return f.GetTournament(id)
}

func (f *fakeLedger) ListTournaments(status string) ([]models.Tournament, error) {
	var out []models.Tournament
	for _, t := range f.tournaments {
		if status == "" || t.Status == status {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLedger) ListUserTournaments(userID int64) ([]models.Tournament, error) {
	var out []models.Tournament
	for _, p := range f.participants {
		if p.UserID == userID {
			if t, ok := f.tournaments[p.TournamentID]; ok {
				out = append(out, *t)
			}
		}
	}
	return out, nil
}

func (f *fakeLedger) UpdateTournamentFields(id uint, updates map[string]interface{}) error {
	t, ok := f.tournaments[id]
	if !ok {
		return apperrors.NotFound("tournament %d not found", id)
	}
	for key, value := range updates {
		switch key {
		case "name":
			t.Name = value.(string)
		case "description":
			t.Description = value.(string)
		case "start_date":
			v := value.(time.Time)
			t.StartDate = &v
		case "end_date":
			v := value.(time.Time)
			t.EndDate = &v
		case "max_participants":
			t.MaxParticipants = value.(int)
		case "entry_fee":
			t.EntryFee = value.(int)
		case "prize_pool":
			t.PrizePool = value.(int)
		}
	}
	return nil
}

func (f *fakeLedger) SetParticipantCount(id uint, count int) error {
	t, ok := f.tournaments[id]
	if !ok {
		return apperrors.NotFound("tournament %d not found", id)
	}
	t.CurrentParticipants = count
	return nil
}

func (f *fakeLedger) SetStatus(id uint, status string) error {
	t, ok := f.tournaments[id]
	if !ok {
		return apperrors.NotFound("tournament %d not found", id)
	}
	t.Status = status
	return nil
}

func (f *fakeLedger) DeleteTournament(id uint) (bool, error) {
	if _, ok := f.tournaments[id]; !ok {
		return false, nil
	}
	delete(f.tournaments, id)
	kept := f.participants[:0]
	for _, p := range f.participants {
		if p.TournamentID != id {
			kept = append(kept, p)
		}
	}
	f.participants = kept
	return true, nil
}

func (f *fakeLedger) ActivateDueTournaments() (int64, error) {
	now := time.Now()
	var activated int64
	for _, t := range f.tournaments {
		if t.Status == models.StatusPending && t.StartDate != nil && !t.StartDate.After(now) {
			t.Status = models.StatusActive
			activated++
		}
	}
	return activated, nil
}

func (f *fakeLedger) Participants(tournamentID uint, order string) ([]models.Participant, error) {
	var out []models.Participant
	for _, p := range f.participants {
		if p.TournamentID == tournamentID {
			out = append(out, p)
		}
	}
	if strings.HasPrefix(order, "score DESC") {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	}
	return out, nil
}

func (f *fakeLedger) ParticipantExists(tournamentID uint, userID int64) (bool, error) {
	for _, p := range f.participants {
		if p.TournamentID == tournamentID && p.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedger) InsertParticipant(p *models.Participant) error {
	p.ID = f.nextID
	f.nextID++
	p.JoinedAt = time.Now()
	f.participants = append(f.participants, *p)
	return nil
}

func (f *fakeLedger) DeleteParticipant(tournamentID uint, userID int64) (bool, error) {
	for i, p := range f.participants {
		if p.TournamentID == tournamentID && p.UserID == userID {
			f.participants = append(f.participants[:i], f.participants[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedger) EnsureUser(id int64, username string) error {
	if _, ok := f.users[id]; ok {
		return nil
	}
	if username == "" {
		username = models.FallbackUsername(id)
	}
	f.users[id] = &models.User{
		TelegramID: id,
		Username:   username,
		Balance:    models.DefaultBalance,
		Level:      1,
		OwnedItems: models.StringList{},
	}
	return nil
}

func (f *fakeLedger) UserForUpdate(id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("user %d not found", id)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeLedger) UpdateUserFields(id int64, updates map[string]interface{}) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.NotFound("user %d not found", id)
	}
	for key, value := range updates {
		switch key {
		case "game_id":
			user.GameID = value.(string)
		case "server_id":
			user.ServerID = value.(string)
		}
	}
	return nil
}

func (f *fakeLedger) AdjustBalance(userID int64, delta int) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.NotFound("user %d not found", userID)
	}
	user.Balance += delta
	return nil
}

func (f *fakeLedger) ReplaceTeams(tournamentID uint, teams []models.Team) error {
	for i := range teams {
		teams[i].ID = f.nextID
		f.nextID++
	}
	f.teams[tournamentID] = teams
	return nil
}

func (f *fakeLedger) Teams(tournamentID uint) ([]models.Team, error) {
	return f.teams[tournamentID], nil
}

func (f *fakeLedger) balance(userID int64) int {
	return f.users[userID].Balance
}
