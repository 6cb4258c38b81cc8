package models

import (
	"database/sql"

	"github.com/rohanthewiz/serr"
)

// migrateDB creates the schema on a single database
func migrateDB(db *sql.DB) error {
	recipesTableSQL := `
	CREATE TABLE IF NOT EXISTS recipes (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		headline TEXT,
		image TEXT,
		yields INTEGER NOT NULL DEFAULT 2,
		extra_charge INTEGER,  -- cents; NULL when the recipe has no surcharge
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := db.Exec(recipesTableSQL); err != nil {
		return serr.Wrap(err, "failed to create recipes table")
	}

	// One row per recipe in a session's box; rows at zero are deleted
	boxItemsTableSQL := `
	CREATE TABLE IF NOT EXISTS box_items (
		session_id VARCHAR(64) NOT NULL,
		recipe_id VARCHAR(64) NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (session_id, recipe_id)
	)`

	if _, err := db.Exec(boxItemsTableSQL); err != nil {
		return serr.Wrap(err, "failed to create box_items table")
	}

	// No index on recipes columns: DuckDB refuses ON CONFLICT DO UPDATE of an indexed column
	indexes := []string{
		"DROP INDEX IF EXISTS idx_recipes_position",
		"CREATE INDEX IF NOT EXISTS idx_box_items_session ON box_items(session_id)",
	}
	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return serr.Wrap(err, "failed to create index")
		}
	}

	return nil
}
