package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/relterm/matrix"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS vocabulary (
	word TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS cooccurrence (
	word      TEXT NOT NULL,
	candidate TEXT NOT NULL,
	count     INTEGER NOT NULL,
	PRIMARY KEY (word, candidate)
);
`

// SQLite is a matrix dump stored in a SQLite database.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path. Missing parent
// directories are created.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create dump directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// WriteMatrix replaces the stored dump with m in one transaction and
// returns the number of cells written.
func (s *SQLite) WriteMatrix(ctx context.Context, m *matrix.Matrix) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{"DELETE FROM cooccurrence", "DELETE FROM vocabulary"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("failed to clear dump: %w", err)
		}
	}

	vocab, err := tx.PrepareContext(ctx, `INSERT INTO vocabulary (word) VALUES (?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = vocab.Close() }()

	for _, w := range m.Words() {
		if _, err := vocab.ExecContext(ctx, w); err != nil {
			return 0, fmt.Errorf("failed to insert word %q: %w", w, err)
		}
	}

	cells, err := tx.PrepareContext(ctx, `INSERT INTO cooccurrence (word, candidate, count) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = cells.Close() }()

	n := 0
	err = m.Triples(func(word, cand string, count int64) error {
		if _, err := cells.ExecContext(ctx, word, cand, count); err != nil {
			return fmt.Errorf("failed to insert cell (%s, %s): %w", word, cand, err)
		}
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit dump: %w", err)
	}
	return n, nil
}

// Row returns the stored row of word.
func (s *SQLite) Row(ctx context.Context, word string) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT candidate, count FROM cooccurrence WHERE word = ?`, word)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	row := make(map[string]int64)
	for rows.Next() {
		var cand string
		var count int64
		if err := rows.Scan(&cand, &count); err != nil {
			return nil, err
		}
		row[cand] = count
	}
	return row, rows.Err()
}

// Words returns the stored vocabulary in ascending order.
func (s *SQLite) Words(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM vocabulary ORDER BY word`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}
