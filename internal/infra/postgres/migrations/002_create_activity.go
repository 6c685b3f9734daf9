package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createActivityTables creates the five tables that hold learner
// activity: watch history, search history, likes, follows and the
// learner profile.
func createActivityTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_activity",
		Migrate: func(tx *gorm.DB) error {
			statements := []string{
				`
				CREATE TABLE IF NOT EXISTS watch_events (
					id BIGSERIAL PRIMARY KEY,
					user_id VARCHAR(100) NOT NULL,
					video_id VARCHAR(100) NOT NULL,
					watched_seconds INTEGER DEFAULT 0,
					topics TEXT[],
					watched_at TIMESTAMP NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
				`,
				"CREATE INDEX IF NOT EXISTS idx_watch_events_user_id ON watch_events(user_id);",
				"CREATE INDEX IF NOT EXISTS idx_watch_events_watched_at ON watch_events(watched_at);",
				`
				CREATE TABLE IF NOT EXISTS search_queries (
					id BIGSERIAL PRIMARY KEY,
					user_id VARCHAR(100) NOT NULL,
					text VARCHAR(200) NOT NULL,
					searched_at TIMESTAMP NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
				`,
				"CREATE INDEX IF NOT EXISTS idx_search_queries_user_id ON search_queries(user_id);",
				`
				CREATE TABLE IF NOT EXISTS likes (
					user_id VARCHAR(100) NOT NULL,
					video_id VARCHAR(100) NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (user_id, video_id)
				);
				`,
				`
				CREATE TABLE IF NOT EXISTS follows (
					user_id VARCHAR(100) NOT NULL,
					creator_id VARCHAR(100) NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (user_id, creator_id)
				);
				`,
				`
				CREATE TABLE IF NOT EXISTS learner_profiles (
					user_id VARCHAR(100) PRIMARY KEY,
					requested_topics TEXT[],
					syllabus_topics TEXT[],
					exam_date TIMESTAMP,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
				`,
			}

			for _, stmt := range statements {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			tables := []string{
				"learner_profiles", "follows", "likes",
				"search_queries", "watch_events",
			}
			for _, table := range tables {
				if err := tx.Exec("DROP TABLE IF EXISTS " + table + ";").Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
}
