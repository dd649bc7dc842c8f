package sqlite

import (
	"database/sql"
	"fmt"
)

// MigrateUp creates the books schema for the local SQLite database.
// Statements are idempotent so repeated startups are safe.
func MigrateUp(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			author     TEXT NOT NULL,
			price      INTEGER NOT NULL CHECK (price >= 0),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (title, author)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_books_created_at ON books(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_books_author ON books(author)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}

	// 初期データ投入（冪等: 既存の書籍はスキップ）
	const seed = `
INSERT INTO books (title, author, price) VALUES
	('The Go Programming Language', 'Alan A. A. Donovan', 4180),
	('Designing Data-Intensive Applications', 'Martin Kleppmann', 5280),
	('Kafka: The Definitive Guide', 'Gwen Shapira', 4950),
	('Site Reliability Engineering', 'Betsy Beyer', 5060),
	('Clean Architecture', 'Robert C. Martin', 3520)
ON CONFLICT (title, author) DO NOTHING`
	if _, err := db.Exec(seed); err != nil {
		return fmt.Errorf("MigrateUp: seed books: %w", err)
	}

	return nil
}

// MigrateDown removes the books schema.
func MigrateDown(db *sql.DB) error {
	statements := []string{
		`DROP INDEX IF EXISTS idx_books_author`,
		`DROP INDEX IF EXISTS idx_books_created_at`,
		`DROP TABLE IF EXISTS books`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("MigrateDown: %w", err)
		}
	}
	return nil
}
