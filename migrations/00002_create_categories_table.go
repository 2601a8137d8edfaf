package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateCategoriesTable, downCreateCategoriesTable)
}

func upCreateCategoriesTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			slug TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL
		);

		-- The category set is a fixed enumeration; there is no write API for it.
		INSERT INTO categories (slug, name) VALUES
		('tank', 'Tanks'),
		('healer', 'Healers'),
		('dd', 'Damage dealers'),
		('merchant', 'Merchants'),
		('guildmaster', 'Guild masters'),
		('questgiver', 'Quest givers'),
		('blacksmith', 'Blacksmiths'),
		('leatherworker', 'Leatherworkers'),
		('alchemist', 'Alchemists'),
		('spellmaster', 'Spell masters');
	`)
	return err
}

func downCreateCategoriesTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS categories;`)
	return err
}
