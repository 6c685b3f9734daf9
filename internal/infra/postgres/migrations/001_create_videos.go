package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createVideosTable creates the videos table with all indexes.
func createVideosTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_videos",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS videos (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					source_id VARCHAR(50) NOT NULL,
					external_id VARCHAR(100) NOT NULL,

					title VARCHAR(500) NOT NULL,
					creator_id VARCHAR(100) NOT NULL,
					creator_name VARCHAR(200) NOT NULL,
					creator_avatar VARCHAR(500),

					duration_seconds INTEGER DEFAULT 0,
					topics TEXT[],
					short_form BOOLEAN NOT NULL DEFAULT FALSE,
					exam_relevant BOOLEAN NOT NULL DEFAULT FALSE,

					-- Engagement metrics
					views INTEGER DEFAULT 0,
					likes INTEGER DEFAULT 0,
					comments INTEGER DEFAULT 0,

					-- Timestamps
					uploaded_at TIMESTAMP NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					-- Unique constraint for upsert
					CONSTRAINT uq_source_external UNIQUE (source_id, external_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_videos_short_form ON videos(short_form);",
				"CREATE INDEX IF NOT EXISTS idx_videos_creator_id ON videos(creator_id);",
				"CREATE INDEX IF NOT EXISTS idx_videos_uploaded_at ON videos(uploaded_at DESC);",
				"CREATE INDEX IF NOT EXISTS idx_videos_source_id ON videos(source_id);",
			}

			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS videos;").Error
		},
	}
}
