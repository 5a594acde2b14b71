package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/filmoteca/filmoteca/internal/model"
)

// SQLiteStore keeps the collection in an embedded SQLite database while
// preserving the read-all/write-all document contract: ReadAll selects every
// row in stored order, WriteAll replaces the whole table in one transaction.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS movies (
	position    INTEGER PRIMARY KEY,
	id          INTEGER NOT NULL UNIQUE,
	title       TEXT    NOT NULL,
	director    TEXT    NOT NULL,
	year        INTEGER NOT NULL,
	genre       TEXT    NOT NULL,
	rating      REAL    NOT NULL,
	description TEXT    NOT NULL DEFAULT ''
);`

// NewSQLiteStore opens (or creates) a SQLite database at path and bootstraps
// the schema. WAL journal mode is enabled for better read concurrency.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, wrapStorage("create data directory", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, wrapStorage("open database", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, wrapStorage("ping database", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, wrapStorage("create schema", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ReadAll(ctx context.Context) (*model.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, director, year, genre, rating, description FROM movies ORDER BY position`)
	if err != nil {
		return nil, wrapStorage("query movies", err)
	}
	defer func() { _ = rows.Close() }()

	c := &model.Collection{Movies: []model.Movie{}}
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Year, &m.Genre, &m.Rating, &m.Description); err != nil {
			return nil, wrapStorage("scan movie", err)
		}
		c.Movies = append(c.Movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorage("iterate movies", err)
	}
	return c, nil
}

func (s *SQLiteStore) WriteAll(ctx context.Context, c *model.Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapStorage("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return wrapStorage("clear movies", err)
	}
	for i, m := range c.Movies {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO movies (position, id, title, director, year, genre, rating, description) VALUES (?,?,?,?,?,?,?,?)`,
			i, m.ID, m.Title, m.Director, m.Year, m.Genre, m.Rating, m.Description); err != nil {
			return wrapStorage("insert movie", err)
		}
	}
	return wrapStorage("commit", tx.Commit())
}

func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	return wrapStorage("ping database", s.db.PingContext(ctx))
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
