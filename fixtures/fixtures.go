package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Fixtures struct {
	db  *gorm.DB
	rng *rand.Rand
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateTestData creates demo users, tournaments with participants and a
// few purchases. Meant for local development only.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	users, err := f.generateUsers()
	if err != nil {
		return fmt.Errorf("failed to generate users: %w", err)
	}

	tournaments, err := f.generateTournaments(users)
	if err != nil {
		return fmt.Errorf("failed to generate tournaments: %w", err)
	}

	if err := f.generateParticipants(tournaments, users); err != nil {
		return fmt.Errorf("failed to generate participants: %w", err)
	}

	purchases, err := f.generatePurchases(users)
	if err != nil {
		return fmt.Errorf("failed to generate purchases: %w", err)
	}

	log.Println("Fixtures generated successfully!")
	log.Printf("Created %d users, %d tournaments and %d purchases", len(users), len(tournaments), purchases)
	return nil
}

func (f *Fixtures) generateUsers() ([]models.User, error) {
	usernames := []string{
		"shadow_hunter", "frost_mage", "iron_wolf", "night_raven", "storm_rider",
		"crimson_fox", "silent_blade", "lucky_star", "wild_card", "neon_tiger",
	}

	users := make([]models.User, 0, len(usernames))
	for i, username := range usernames {
		user := models.User{
			TelegramID: int64(100000001 + i),
			Username:   username,
			FirstName:  username,
			Balance:    models.DefaultBalance + f.rng.Intn(500),
			Level:      1 + f.rng.Intn(10),
			Experience: f.rng.Intn(1000),
			Wins:       f.rng.Intn(20),
			Losses:     f.rng.Intn(20),
			OwnedItems: models.StringList{},
		}
		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (f *Fixtures) generateTournaments(users []models.User) ([]models.Tournament, error) {
	now := time.Now()
	soon := now.Add(24 * time.Hour)
	later := now.Add(72 * time.Hour)

	defs := []models.Tournament{
		{
			Name:            "Weekly Arena Cup",
			Description:     "Open bracket, winner takes half the pool",
			StartDate:       &soon,
			EndDate:         &later,
			MaxParticipants: 10,
			EntryFee:        50,
			PrizePool:       500,
			Status:          models.StatusPending,
			CreatedBy:       users[0].TelegramID,
		},
		{
			Name:            "Night Clash",
			Description:     "Free entry warm-up event",
			StartDate:       &now,
			MaxParticipants: 16,
			EntryFee:        0,
			PrizePool:       200,
			Status:          models.StatusActive,
			CreatedBy:       users[0].TelegramID,
		},
	}

	for i := range defs {
		if err := f.db.Create(&defs[i]).Error; err != nil {
			return nil, err
		}
	}
	return defs, nil
}

func (f *Fixtures) generateParticipants(tournaments []models.Tournament, users []models.User) error {
	roles := []string{"roamer", "holder", "expert", "lesnik", "mider"}

	for _, tournament := range tournaments {
		count := 0
		for i, user := range users {
			if count >= tournament.MaxParticipants || f.rng.Intn(2) == 0 {
				continue
			}
			participant := models.Participant{
				TournamentID: tournament.ID,
				UserID:       user.TelegramID,
				Username:     user.Username,
				Score:        f.rng.Intn(100),
				Role:         roles[i%len(roles)],
			}
			if err := f.db.Create(&participant).Error; err != nil {
				return err
			}
			count++
		}
		if err := f.db.Model(&models.Tournament{}).
			Where("id = ?", tournament.ID).
			Update("current_participants", count).Error; err != nil {
			return err
		}
	}
	return nil
}

type plannedPurchase struct {
	user models.User
	item models.ShopItem
}

// planPurchases pairs roughly every third user with a seeded item they can
// afford. Deterministic so repeated runs produce the same shop history.
func planPurchases(users []models.User, items []models.ShopItem) []plannedPurchase {
	if len(items) == 0 {
		return nil
	}
	var plan []plannedPurchase
	for i, user := range users {
		if i%3 != 0 {
			continue
		}
		item := items[i%len(items)]
		if user.Balance < item.Price {
			continue
		}
		plan = append(plan, plannedPurchase{user: user, item: item})
	}
	return plan
}

// generatePurchases mirrors what the purchase flow writes: a debit, the
// owned-items entry and the audit row.
func (f *Fixtures) generatePurchases(users []models.User) (int, error) {
	var items []models.ShopItem
	if err := f.db.Order("id ASC").Find(&items).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, p := range planPurchases(users, items) {
		err := f.db.Model(&models.User{}).
			Where("telegram_id = ?", p.user.TelegramID).
			Updates(map[string]interface{}{
				"balance":     gorm.Expr("balance - ?", p.item.Price),
				"owned_items": append(p.user.OwnedItems, p.item.Name),
			}).Error
		if err != nil {
			return created, err
		}

		purchase := models.Purchase{
			ID:       uuid.NewString(),
			UserID:   p.user.TelegramID,
			ItemID:   p.item.ID,
			ItemName: p.item.Name,
			Price:    p.item.Price,
		}
		if err := f.db.Create(&purchase).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// Clean removes all fixture-generated rows. Order matters for foreign keys.
func (f *Fixtures) Clean() error {
	log.Println("Cleaning fixture data...")
	for _, table := range []string{
		"purchases", "team_members", "tournament_teams",
		"tournament_participants", "tournaments", "users",
	} {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	log.Println("Fixture data removed")
	return nil
}
