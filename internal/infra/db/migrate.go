package db

import (
	"database/sql"
	_ "embed"
)

//go:embed seeds/books.sql
var seedBooksSQL string

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS books (
    id         SERIAL PRIMARY KEY,
    title      TEXT NOT NULL,
    author     TEXT NOT NULL,
    price      BIGINT NOT NULL DEFAULT 0 CHECK (price >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (title, author)
)`); err != nil {
		return err
	}

	// パフォーマンス最適化: インデックス追加
	indexes := []string{
		// ORDER BY created_at DESC で使用(一覧・ページネーションで使用)
		`CREATE INDEX IF NOT EXISTS idx_books_created_at ON books(created_at DESC)`,
		// 著者別絞り込み用
		`CREATE INDEX IF NOT EXISTS idx_books_author ON books(author)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm拡張を有効化(ILIKE検索高速化用)
	// エラーを無視(既に存在する場合やスーパーユーザー権限がない場合)
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)

	// ILIKE検索用GINインデックス追加(マルチキーワード検索高速化)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_books_title_gin ON books USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_books_author_gin ON books USING gin(author gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		// pg_trgm拡張がない場合はエラーになるため無視
		_, _ = db.Exec(idx)
	}

	// シードデータの投入(重複は自動的にスキップ)
	if _, err := db.Exec(seedBooksSQL); err != nil {
		return err
	}

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this will delete all data in the books table.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_books_title_gin`,
		`DROP INDEX IF EXISTS idx_books_author_gin`,
		`DROP INDEX IF EXISTS idx_books_author`,
		`DROP INDEX IF EXISTS idx_books_created_at`,
		`DROP TABLE IF EXISTS books CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
