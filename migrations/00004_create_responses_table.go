package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateResponsesTable, downCreateResponsesTable)
}

func upCreateResponsesTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS responses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			ad_id UUID NOT NULL REFERENCES ads(id) ON DELETE CASCADE,
			author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL CHECK (content <> ''),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			is_accepted BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE INDEX IF NOT EXISTS idx_responses_ad_id ON responses(ad_id);
		CREATE INDEX IF NOT EXISTS idx_responses_author_id ON responses(author_id);
	`)
	return err
}

func downCreateResponsesTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS responses;`)
	return err
}
