package sheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

const workbookSchema = `
CREATE TABLE IF NOT EXISTS cells (
	document TEXT NOT NULL,
	row      INTEGER NOT NULL,
	col      INTEGER NOT NULL,
	value    TEXT NOT NULL,
	PRIMARY KEY (document, row, col)
)`

// SQLiteOpener stores every document of a workbook in one SQLite file.
// Documents are created on first open.
type SQLiteOpener struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteOpener opens (or creates) the workbook at dbPath.
func NewSQLiteOpener(dbPath string) (*SQLiteOpener, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	// modernc's in-memory databases are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(workbookSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cells table: %w", err)
	}

	return &SQLiteOpener{db: db, dbPath: dbPath}, nil
}

// Open returns the named document.
func (o *SQLiteOpener) Open(_ context.Context, name string) (Sheet, error) {
	slog.Debug("Opening local workbook document", "workbook", o.dbPath, "document", name)
	return &sqliteSheet{db: o.db, document: name}, nil
}

// Close closes the workbook.
func (o *SQLiteOpener) Close() error {
	if o.db != nil {
		return o.db.Close()
	}
	return nil
}

type sqliteSheet struct {
	db       *sql.DB
	document string
}

func (s *sqliteSheet) Get(ctx context.Context, a1Range string) ([][]string, error) {
	r, err := ParseA1Range(a1Range)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT row, col, value FROM cells
		 WHERE document = ? AND row BETWEEN ? AND ? AND col BETWEEN ? AND ?`,
		s.document, r.From.Row, r.To.Row, r.From.Col, r.To.Col)
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", a1Range, err)
	}
	defer func() { _ = rows.Close() }()

	grid := make([][]string, r.To.Row-r.From.Row+1)
	for i := range grid {
		grid[i] = make([]string, r.To.Col-r.From.Col+1)
	}
	for rows.Next() {
		var row, col int
		var value string
		if err := rows.Scan(&row, &col, &value); err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		grid[row-r.From.Row][col-r.From.Col] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Match the Sheets API: trailing empty cells and rows are omitted.
	end := 0
	for i := range grid {
		grid[i] = trimTrailingEmpty(grid[i])
		if len(grid[i]) > 0 {
			end = i + 1
		}
	}
	return grid[:end], nil
}

func (s *sqliteSheet) Find(ctx context.Context, text string) (Cell, error) {
	var c Cell
	err := s.db.QueryRowContext(ctx,
		`SELECT row, col FROM cells WHERE document = ? AND value = ? ORDER BY row, col LIMIT 1`,
		s.document, text).Scan(&c.Row, &c.Col)
	if errors.Is(err, sql.ErrNoRows) {
		return Cell{}, ErrCellNotFound
	}
	if err != nil {
		return Cell{}, fmt.Errorf("failed to find %q: %w", text, err)
	}
	return c, nil
}

func (s *sqliteSheet) RowValues(ctx context.Context, row int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT col, value FROM cells WHERE document = ? AND row = ? ORDER BY col`,
		s.document, row)
	if err != nil {
		return nil, fmt.Errorf("failed to read row %d: %w", row, err)
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var col int
		var value string
		if err := rows.Scan(&col, &value); err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		for len(values) < col-1 {
			values = append(values, "")
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trimTrailingEmpty(values), nil
}

func (s *sqliteSheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell %d,%d", row, col)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cells (document, row, col, value) VALUES (?, ?, ?, ?)
		 ON CONFLICT (document, row, col) DO UPDATE SET value = excluded.value`,
		s.document, row, col, value)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", A1(row, col), err)
	}
	return nil
}

func (s *sqliteSheet) AppendRow(ctx context.Context, values []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback if we don't commit - ignore errors as they're expected if transaction was committed
		_ = tx.Rollback()
	}()

	var last int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row), 0) FROM cells WHERE document = ? AND value != ''`,
		s.document).Scan(&last); err != nil {
		return fmt.Errorf("failed to find last row: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO cells (document, row, col, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, value := range values {
		if _, err := stmt.ExecContext(ctx, s.document, last+1, i+1, value); err != nil {
			return fmt.Errorf("failed to insert cell: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
