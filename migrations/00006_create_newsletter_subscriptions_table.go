package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateNewsletterSubscriptionsTable, downCreateNewsletterSubscriptionsTable)
}

func upCreateNewsletterSubscriptionsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			subscribed BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);
	`)
	return err
}

func downCreateNewsletterSubscriptionsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS newsletter_subscriptions;`)
	return err
}
