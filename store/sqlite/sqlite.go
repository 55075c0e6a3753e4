// Package sqlite stores a finance ledger in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/finance"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

// Store is a finance.Storage backed by a SQLite database file.
//
// Every Write replaces the whole content, and records a snapshot row.
type Store struct {
	db   *sql.DB
	path string
}

var _ finance.Storage = (*Store)(nil)

// Open opens, or creates, the database at dbPath and migrates its schema.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, path: dbPath}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Write replaces the stored ledger with st in a single transaction.
func (s *Store) Write(ctx context.Context, st finance.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"records", "investments", "obligations"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, r := range st.Records {
		kind, err := recordKind(r)
		if err != nil {
			return err
		}
		on := r.When()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (position, kind, amount, description, day, month, year, category) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, kind, r.Value().String(), r.Memo(), on.Day(), int(on.Month()), on.Year(), r.Group().String()); err != nil {
			return fmt.Errorf("insert record #%d: %w", i+1, err)
		}
	}

	for i, inv := range st.Investments {
		var monthly sql.NullString
		switch v := inv.(type) {
		case finance.SIP:
			monthly = sql.NullString{String: v.Monthly.String(), Valid: true}
		case finance.FD:
		default:
			return fmt.Errorf("unsupported investment type %T", inv)
		}
		on := inv.When()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO investments (position, kind, principal, years, day, month, year, monthly) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, string(inv.What()), inv.Value().String(), inv.Years(), on.Day(), int(on.Month()), on.Year(), monthly); err != nil {
			return fmt.Errorf("insert investment #%d: %w", i+1, err)
		}
	}

	for i, o := range st.Obligations {
		kind := "PAY"
		if o.Investment {
			kind = "INV"
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO obligations (position, kind, amount, description, day, month, year) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, kind, o.Amount.String(), o.Description, o.Due.Day(), int(o.Due.Month()), o.Due.Year()); err != nil {
			return fmt.Errorf("insert obligation #%d: %w", i+1, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (saved_at, records, investments, obligations) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), len(st.Records), len(st.Investments), len(st.Obligations)); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	slog.DebugContext(ctx, "sqlite-write", "path", s.path, "records", len(st.Records), "investments", len(st.Investments), "obligations", len(st.Obligations))
	return nil
}

// Read returns the stored ledger. A database that was never written reports
// an error wrapping fs.ErrNotExist.
func (s *Store) Read(ctx context.Context) (finance.State, error) {
	var snapshots int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&snapshots); err != nil {
		return finance.State{}, fmt.Errorf("count snapshots: %w", err)
	}
	if snapshots == 0 {
		return finance.State{}, fmt.Errorf("no ledger in %q: %w", s.path, fs.ErrNotExist)
	}

	var st finance.State
	var err error
	if st.Records, err = s.readRecords(ctx); err != nil {
		return finance.State{}, err
	}
	if st.Investments, err = s.readInvestments(ctx); err != nil {
		return finance.State{}, err
	}
	if st.Obligations, err = s.readObligations(ctx); err != nil {
		return finance.State{}, err
	}
	return st, nil
}

// Snapshots returns the number of times the ledger was written.
func (s *Store) Snapshots(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

func (s *Store) readRecords(ctx context.Context) ([]finance.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, amount, description, day, month, year, category FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []finance.Record
	for rows.Next() {
		var kind, amount, description, category string
		var day, month, year int
		if err := rows.Scan(&kind, &amount, &description, &day, &month, &year, &category); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		value, err := parseAmount(amount)
		if err != nil {
			return nil, err
		}
		on := finance.NewDate(year, time.Month(month), day)
		cat := finance.CategoryFromString(category)
		switch kind {
		case "I":
			records = append(records, finance.NewIncome(on, value, description).WithCategory(cat))
		case "E":
			records = append(records, finance.NewExpenditure(on, value, description, cat))
		default:
			return nil, fmt.Errorf("%w: unknown record kind %q", finance.ErrMalformed, kind)
		}
	}
	return records, rows.Err()
}

func (s *Store) readInvestments(ctx context.Context) ([]finance.Investment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, principal, years, day, month, year, monthly FROM investments ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query investments: %w", err)
	}
	defer rows.Close()

	var investments []finance.Investment
	for rows.Next() {
		var kind, principal string
		var years, day, month, year int
		var monthly sql.NullString
		if err := rows.Scan(&kind, &principal, &years, &day, &month, &year, &monthly); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		value, err := parseAmount(principal)
		if err != nil {
			return nil, err
		}
		on := finance.NewDate(year, time.Month(month), day)
		switch finance.InvestmentKind(kind) {
		case finance.KindSIP:
			if !monthly.Valid {
				return nil, fmt.Errorf("%w: SIP without monthly contribution", finance.ErrMalformed)
			}
			m, err := parseAmount(monthly.String)
			if err != nil {
				return nil, err
			}
			investments = append(investments, finance.NewSIP(on, value, years, m))
		case finance.KindFD:
			investments = append(investments, finance.NewFD(on, value, years))
		default:
			return nil, fmt.Errorf("%w: unknown investment kind %q", finance.ErrMalformed, kind)
		}
	}
	return investments, rows.Err()
}

func (s *Store) readObligations(ctx context.Context) ([]finance.Obligation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, amount, description, day, month, year FROM obligations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query obligations: %w", err)
	}
	defer rows.Close()

	var obligations []finance.Obligation
	for rows.Next() {
		var kind, amount, description string
		var day, month, year int
		if err := rows.Scan(&kind, &amount, &description, &day, &month, &year); err != nil {
			return nil, fmt.Errorf("scan obligation: %w", err)
		}
		value, err := parseAmount(amount)
		if err != nil {
			return nil, err
		}
		obligations = append(obligations, finance.Obligation{
			Due:         finance.NewDate(year, time.Month(month), day),
			Description: description,
			Amount:      value,
			Investment:  kind == "INV",
		})
	}
	return obligations, rows.Err()
}

func recordKind(r finance.Record) (string, error) {
	switch r.(type) {
	case finance.Income:
		return "I", nil
	case finance.Expenditure:
		return "E", nil
	default:
		return "", fmt.Errorf("unsupported record type %T", r)
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return d, fmt.Errorf("%w: invalid amount %q", finance.ErrMalformed, s)
	}
	return d, nil
}
