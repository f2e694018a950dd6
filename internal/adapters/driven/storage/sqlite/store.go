package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/dentract/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ScanStore = (*Store)(nil)

// Store is a SQLite-backed scan store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.dentract/data/scans.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".dentract", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "scans.db")

	// WAL lets the watcher write while another process reads.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One writer at a time; busy_timeout covers other processes.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every NNN_*.up.sql newer than the recorded schema version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const scanColumns = `id, source, raw_text, name, age, complaint, procedure, phone, email,
	address, visit_date, insurance, medications, history, diagnosis, created_at`

// Append inserts a scan. Appending an existing ID replaces it.
func (s *Store) Append(ctx context.Context, scan *domain.Scan) error {
	if scan == nil || scan.ID == "" {
		return domain.ErrInvalidInput
	}

	r := scan.Record
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO scans (`+scanColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		scan.ID, scan.Source, scan.Text,
		r.Name, r.Age, r.Complaint, r.Procedure, r.Phone, r.Email,
		r.Address, r.VisitDate, r.Insurance, r.Medications, r.History, r.Diagnosis,
		scan.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting scan %s: %w", scan.ID, err)
	}
	return nil
}

// Get retrieves a scan by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Scan, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+scanColumns+` FROM scans WHERE id = ?`, id)

	scan, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting scan %s: %w", id, err)
	}
	return scan, nil
}

// List returns all scans, oldest first.
func (s *Store) List(ctx context.Context) ([]domain.Scan, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+scanColumns+` FROM scans ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing scans: %w", err)
	}
	defer rows.Close()

	var scans []domain.Scan
	for rows.Next() {
		scan, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("reading scan: %w", err)
		}
		scans = append(scans, *scan)
	}
	return scans, rows.Err()
}

// Delete removes a scan.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM scans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting scan %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (*domain.Scan, error) {
	var (
		scan      domain.Scan
		createdAt string
	)
	r := &scan.Record
	err := row.Scan(
		&scan.ID, &scan.Source, &scan.Text,
		&r.Name, &r.Age, &r.Complaint, &r.Procedure, &r.Phone, &r.Email,
		&r.Address, &r.VisitDate, &r.Insurance, &r.Medications, &r.History, &r.Diagnosis,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	scan.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	return &scan, nil
}
