package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateAdsTable, downCreateAdsTable)
}

func upCreateAdsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS ads (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL CHECK (title <> ''),
			content TEXT NOT NULL CHECK (content <> ''),
			category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
			author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_ads_author_id ON ads(author_id);
		CREATE INDEX IF NOT EXISTS idx_ads_category_id ON ads(category_id);
		CREATE INDEX IF NOT EXISTS idx_ads_created_at ON ads(created_at);
	`)
	return err
}

func downCreateAdsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS ads;`)
	return err
}
