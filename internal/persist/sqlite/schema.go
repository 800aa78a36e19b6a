package sqlite

import "database/sql"

// EnsureSchema creates the Lists table if it does not exist. Each row holds
// one list; the items collection is serialized as a single JSON unit, so a
// list and its items are always written atomically.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS Lists (
            ListId TEXT PRIMARY KEY,
            OwnerId TEXT NOT NULL DEFAULT '',
            Title TEXT NOT NULL,
            Items TEXT NOT NULL DEFAULT '[]',
            CreationTime TEXT NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS ListsByOwner ON Lists(OwnerId);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
