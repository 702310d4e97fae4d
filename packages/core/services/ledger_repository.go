package services

import (
	"errors"

	"core/apperrors"
	"core/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerStore is the capability surface the tournament ledger needs from its
// backing store. Inside InTx every call operates on the same transaction, so
// a *ForUpdate read followed by writes is an atomic check-then-act unit.
type LedgerStore interface {
	CreateTournament(t *models.Tournament) error
	GetTournament(id uint) (*models.Tournament, error)
	TournamentForUpdate(id uint) (*models.Tournament, error)
	ListTournaments(status string) ([]models.Tournament, error)
	ListUserTournaments(userID int64) ([]models.Tournament, error)
	UpdateTournamentFields(id uint, updates map[string]interface{}) error
	SetParticipantCount(id uint, count int) error
	SetStatus(id uint, status string) error
	DeleteTournament(id uint) (bool, error)
	ActivateDueTournaments() (int64, error)

	Participants(tournamentID uint, order string) ([]models.Participant, error)
	ParticipantExists(tournamentID uint, userID int64) (bool, error)
	InsertParticipant(p *models.Participant) error
	DeleteParticipant(tournamentID uint, userID int64) (bool, error)

	EnsureUser(id int64, username string) error
	UserForUpdate(id int64) (*models.User, error)
	UpdateUserFields(id int64, updates map[string]interface{}) error
	AdjustBalance(userID int64, delta int) error

	ReplaceTeams(tournamentID uint, teams []models.Team) error
	Teams(tournamentID uint) ([]models.Team, error)
}

// LedgerRepository adds the transaction boundary. Lock waits inside InTx are
// bounded; exceeding the bound surfaces as a contention error instead of a
// hung request.
type LedgerRepository interface {
	LedgerStore
	InTx(fn func(LedgerStore) error) error
}

const lockTimeout = "3s"

// pgLockNotAvailable is the Postgres code raised when lock_timeout expires.
const pgLockNotAvailable = "55P03"

// inTx wraps a gorm transaction with a bounded lock timeout and maps the
// Postgres lock_not_available failure to the retryable domain error.
func inTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET LOCAL lock_timeout = '" + lockTimeout + "'").Error; err != nil {
			return err
		}
		return fn(tx)
	})
	return translateLockError(err)
}

// translateLockError maps a lock_timeout expiry anywhere in the chain to a
// contention error. Any other error passes through unchanged.
func translateLockError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
		return apperrors.Contention("operation is contended, please retry")
	}
	return err
}

type gormLedger struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &gormLedger{db: db}
}

func (r *gormLedger) InTx(fn func(LedgerStore) error) error {
	return inTx(r.db, func(tx *gorm.DB) error {
		return fn(&gormLedger{db: tx})
	})
}

func (r *gormLedger) CreateTournament(t *models.Tournament) error {
	return r.db.Create(t).Error
}

func (r *gormLedger) GetTournament(id uint) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := r.db.First(&tournament, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tournament %d not found", id)
		}
		return nil, err
	}
	return &tournament, nil
}

func (r *gormLedger) TournamentForUpdate(id uint) (*models.Tournament, error) {
	var tournament models.Tournament
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tournament, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tournament %d not found", id)
		}
		return nil, err
	}
	return &tournament, nil
}

func (r *gormLedger) ListTournaments(status string) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&tournaments).Error; err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *gormLedger) ListUserTournaments(userID int64) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := r.db.
		Joins("JOIN tournament_participants ON tournament_participants.tournament_id = tournaments.id").
		Where("tournament_participants.user_id = ?", userID).
		Order("tournaments.created_at DESC").
		Find(&tournaments).Error
	if err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *gormLedger) UpdateTournamentFields(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Tournament{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormLedger) SetParticipantCount(id uint, count int) error {
	return r.db.Model(&models.Tournament{}).Where("id = ?", id).
		Update("current_participants", count).Error
}

func (r *gormLedger) SetStatus(id uint, status string) error {
	return r.db.Model(&models.Tournament{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *gormLedger) DeleteTournament(id uint) (bool, error) {
	result := r.db.Delete(&models.Tournament{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormLedger) ActivateDueTournaments() (int64, error) {
	result := r.db.Model(&models.Tournament{}).
		Where("status = ? AND start_date IS NOT NULL AND start_date <= NOW()", models.StatusPending).
		Update("status", models.StatusActive)
	return result.RowsAffected, result.Error
}

func (r *gormLedger) Participants(tournamentID uint, order string) ([]models.Participant, error) {
	if order == "" {
		order = "joined_at ASC, id ASC"
	}
	var participants []models.Participant
	err := r.db.Where("tournament_id = ?", tournamentID).
		Order(order).
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *gormLedger) ParticipantExists(tournamentID uint, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Participant{}).
		Where("tournament_id = ? AND user_id = ?", tournamentID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormLedger) InsertParticipant(p *models.Participant) error {
	return r.db.Create(p).Error
}

func (r *gormLedger) DeleteParticipant(tournamentID uint, userID int64) (bool, error) {
	result := r.db.Where("tournament_id = ? AND user_id = ?", tournamentID, userID).
		Delete(&models.Participant{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormLedger) EnsureUser(id int64, username string) error {
	if username == "" {
		username = models.FallbackUsername(id)
	}
	user := models.User{
		TelegramID: id,
		Username:   username,
		Balance:    models.DefaultBalance,
		Level:      1,
		OwnedItems: models.StringList{},
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error
}

func (r *gormLedger) UserForUpdate(id int64) (*models.User, error) {
	var user models.User
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "telegram_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %d not found", id)
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormLedger) UpdateUserFields(id int64, updates map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("telegram_id = ?", id).Updates(updates).Error
}

func (r *gormLedger) AdjustBalance(userID int64, delta int) error {
	return r.db.Model(&models.User{}).Where("telegram_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", delta)).Error
}

func (r *gormLedger) ReplaceTeams(tournamentID uint, teams []models.Team) error {
	if err := r.db.Where("tournament_id = ?", tournamentID).
		Delete(&models.Team{}).Error; err != nil {
		return err
	}
	for i := range teams {
		if err := r.db.Create(&teams[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *gormLedger) Teams(tournamentID uint) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.Where("tournament_id = ?", tournamentID).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("role ASC")
		}).
		Order("id ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}
