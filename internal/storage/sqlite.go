// Package storage keeps the backup ledger: a SQLite database recording every
// completed copy.
package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DBFileName is the ledger file created in the backup root.
const DBFileName = "buildextra.db"

// Store wraps the ledger database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the ledger in dataDir and runs pending migrations.
// Pass ":memory:" as dataDir for an in-memory database (used by tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, DBFileName)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// One connection: an in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	// Another buildextra run may be writing; wait briefly instead of failing.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migration is one embedded schema step, stored as NNN_description.sql.
type migration struct {
	version int
	name    string
	sql     string
}

// loadMigrations returns the embedded migrations in version order.
func loadMigrations() ([]migration, error) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("listing migrations: %w", err)
	}

	ms := make([]migration, 0, len(files))
	for _, file := range files {
		name := path.Base(file)
		v, err := migrationVersion(name)
		if err != nil {
			return nil, err
		}
		body, err := migrationsFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", name, err)
		}
		ms = append(ms, migration{version: v, name: name, sql: string(body)})
	}

	sort.Slice(ms, func(i, j int) bool { return ms[i].version < ms[j].version })
	for i := 1; i < len(ms); i++ {
		if ms[i].version == ms[i-1].version {
			return nil, fmt.Errorf("migrations %s and %s share version %d", ms[i-1].name, ms[i].name, ms[i].version)
		}
	}
	return ms, nil
}

// migrationVersion reads the numeric prefix of a migration file name.
func migrationVersion(name string) (int, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, fmt.Errorf("migration %q: name must start with NNN_", name)
	}
	v, err := strconv.Atoi(prefix)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("migration %q: bad version %q", name, prefix)
	}
	return v, nil
}

// migrate applies every embedded migration not yet listed in
// schema_migrations, each in its own transaction.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	ms, err := loadMigrations()
	if err != nil {
		return err
	}
	done, err := s.AppliedMigrations()
	if err != nil {
		return fmt.Errorf("reading applied migrations: %w", err)
	}
	applied := make(map[int]bool, len(done))
	for _, v := range done {
		applied[v] = true
	}

	for _, m := range ms {
		if applied[m.version] {
			continue
		}
		if err := s.apply(m); err != nil {
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
	}
	return nil
}

func (s *Store) apply(m migration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.sql); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
		m.version, m.name, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// AppliedMigrations returns the recorded migration versions, lowest first.
func (s *Store) AppliedMigrations() ([]int, error) {
	rows, err := s.db.Query(`SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// --- Backups ---

// SaveBackup records b. An empty ID is filled with a new UUID and a zero
// CreatedAt with the current time; the stored record is returned.
func (s *Store) SaveBackup(b Backup) (Backup, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	b.CreatedAt = b.CreatedAt.UTC().Truncate(time.Second)

	_, err := s.db.Exec(`
		INSERT INTO backups (id, created_at, source, destination, classification, version, size_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.CreatedAt.Format(time.RFC3339), b.Source, b.Destination,
		b.Classification, b.Version, b.SizeBytes,
	)
	if err != nil {
		return Backup{}, fmt.Errorf("saving backup %s: %w", b.ID, err)
	}
	return b, nil
}

func (s *Store) GetBackup(id string) (Backup, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, source, destination, classification, version, size_bytes
		FROM backups WHERE id = ?`, id)
	b, err := scanBackup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Backup{}, ErrNotFound
	}
	return b, err
}

// ListBackups returns recorded backups, newest first.
func (s *Store) ListBackups(f BackupFilter) ([]Backup, error) {
	query := `SELECT id, created_at, source, destination, classification, version, size_bytes FROM backups`
	var args []any
	if f.Source != "" {
		query += ` WHERE source = ?`
		args = append(args, f.Source)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Backup
	for rows.Next() {
		b, err := scanBackup(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBackup(sc scanner) (Backup, error) {
	var b Backup
	var createdAt string
	if err := sc.Scan(&b.ID, &createdAt, &b.Source, &b.Destination, &b.Classification, &b.Version, &b.SizeBytes); err != nil {
		return Backup{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Backup{}, fmt.Errorf("parsing created_at: %w", err)
	}
	b.CreatedAt = t
	return b, nil
}
