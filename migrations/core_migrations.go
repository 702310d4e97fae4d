package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_06_10_000000_create_core_tables",
			Up: func(db *gorm.DB) error {
				// Users are keyed by their Telegram ID. The CHECK backs the
				// application-level balance guard.
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS users (
						telegram_id BIGINT PRIMARY KEY,
						username VARCHAR(255),
						first_name VARCHAR(255),
						balance INT NOT NULL DEFAULT 1000 CHECK (balance >= 0),
						stars INT NOT NULL DEFAULT 0,
						level INT NOT NULL DEFAULT 1,
						experience INT NOT NULL DEFAULT 0,
						wins INT NOT NULL DEFAULT 0,
						losses INT NOT NULL DEFAULT 0,
						game_id VARCHAR(255),
						server_id VARCHAR(255),
						owned_items JSONB NOT NULL DEFAULT '[]'::jsonb,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_users_wins ON users(wins);
					CREATE INDEX IF NOT EXISTS idx_users_balance ON users(balance);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS tournaments (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						description TEXT,
						start_date TIMESTAMP NULL,
						end_date TIMESTAMP NULL,
						max_participants INT NOT NULL,
						current_participants INT NOT NULL DEFAULT 0,
						entry_fee INT NOT NULL DEFAULT 0,
						prize_pool INT NOT NULL DEFAULT 0,
						status VARCHAR(50) NOT NULL DEFAULT 'pending',
						created_by BIGINT NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_tournaments_status ON tournaments(status);
					CREATE INDEX IF NOT EXISTS idx_tournaments_start_date ON tournaments(start_date);
				`).Error; err != nil {
					return err
				}

				// The unique pair is the hard guarantee behind the
				// duplicate-join check.
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS tournament_participants (
						id BIGSERIAL PRIMARY KEY,
						tournament_id BIGINT NOT NULL,
						user_id BIGINT NOT NULL,
						username VARCHAR(255),
						score INT NOT NULL DEFAULT 0,
						role VARCHAR(50),
						joined_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE,
						FOREIGN KEY (user_id) REFERENCES users(telegram_id) ON DELETE CASCADE,
						CONSTRAINT idx_participants_tournament_user UNIQUE (tournament_id, user_id)
					);
					CREATE INDEX IF NOT EXISTS idx_participants_user_id ON tournament_participants(user_id);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS shop_items (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL UNIQUE,
						price INT NOT NULL,
						category VARCHAR(50),
						emoji VARCHAR(10),
						created_at TIMESTAMP DEFAULT NOW()
					);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS tournament_teams (
						id BIGSERIAL PRIMARY KEY,
						tournament_id BIGINT NOT NULL,
						name VARCHAR(255),
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_teams_tournament_id ON tournament_teams(tournament_id);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS team_members (
						id BIGSERIAL PRIMARY KEY,
						team_id BIGINT NOT NULL,
						user_id BIGINT NOT NULL,
						username VARCHAR(255),
						role VARCHAR(50) NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (team_id) REFERENCES tournament_teams(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_team_members_team_id ON team_members(team_id);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS purchases (
						id VARCHAR(36) PRIMARY KEY,
						user_id BIGINT NOT NULL,
						item_id BIGINT NOT NULL,
						item_name VARCHAR(255),
						price INT NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (user_id) REFERENCES users(telegram_id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_purchases_user_id ON purchases(user_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				for _, table := range []string{
					"purchases",
					"team_members",
					"tournament_teams",
					"shop_items",
					"tournament_participants",
					"tournaments",
					"users",
				} {
					if err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE").Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Name: "2025_06_10_000001_seed_shop_items",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					INSERT INTO shop_items (name, price, category, emoji) VALUES
						('Golden Skin', 200, 'cosmetic', '✨'),
						('Double Points', 150, 'powerup', '2️⃣'),
						('VIP Badge', 300, 'badge', '👑')
					ON CONFLICT (name) DO NOTHING;
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DELETE FROM shop_items
					WHERE name IN ('Golden Skin', 'Double Points', 'VIP Badge');
				`).Error
			},
		},
		{
			Name: "2025_06_10_000002_create_user_achievements",
			Up: func(db *gorm.DB) error {
				// The unique pair makes repeated unlocks no-ops.
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS user_achievements (
						id BIGSERIAL PRIMARY KEY,
						user_id BIGINT NOT NULL,
						achievement_id INT NOT NULL,
						unlocked_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (user_id) REFERENCES users(telegram_id) ON DELETE CASCADE,
						CONSTRAINT idx_user_achievements_user_achievement UNIQUE (user_id, achievement_id)
					);
					CREATE INDEX IF NOT EXISTS idx_user_achievements_user_id ON user_achievements(user_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS user_achievements CASCADE").Error
			},
		},
	}
}
