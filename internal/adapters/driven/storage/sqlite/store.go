package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/csec-astu/astu-assist/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/csec-astu/astu-assist/internal/core/domain"
	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// the account and history store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.astu-assist/data/assist.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".astu-assist", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "assist.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// UserStore returns a UserStore interface backed by this store.
func (s *Store) UserStore() driven.UserStore {
	return &userStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Append stores one chat record.
func (s *historyStore) Append(ctx context.Context, record domain.ChatRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO chat_history (id, identity, question, answer, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, record.ID, record.Identity, record.Question, record.Answer, record.CreatedAt)

	if err != nil {
		return fmt.Errorf("appending chat record: %w", err)
	}
	return nil
}

// ListByIdentity returns all records for an identity, oldest first.
func (s *historyStore) ListByIdentity(ctx context.Context, identity string) ([]domain.ChatRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, identity, question, answer, created_at
		FROM chat_history WHERE identity = ?
		ORDER BY created_at ASC
	`, identity)
	if err != nil {
		return nil, fmt.Errorf("querying chat history: %w", err)
	}
	defer rows.Close()

	var records []domain.ChatRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var record domain.ChatRecord
		var createdAt sql.NullTime
		if err := rows.Scan(&record.ID, &record.Identity, &record.Question,
			&record.Answer, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chat record: %w", err)
		}
		if createdAt.Valid {
			record.CreatedAt = createdAt.Time
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat history: %w", err)
	}

	return records, nil
}

// DeleteByIdentity removes all records for an identity.
func (s *historyStore) DeleteByIdentity(ctx context.Context, identity string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM chat_history WHERE identity = ?", identity)
	if err != nil {
		return fmt.Errorf("deleting chat history: %w", err)
	}
	return nil
}

// ==================== User Store ====================

// userStore implements driven.UserStore.
type userStore struct {
	store *Store
}

var _ driven.UserStore = (*userStore)(nil)

// Save stores or updates a user.
func (s *userStore) Save(ctx context.Context, user domain.User) error {
	if user.ID == "" || user.Username == "" {
		return domain.ErrInvalidInput
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO users (id, username, is_admin, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			is_admin = excluded.is_admin
	`, user.ID, user.Username, user.IsAdmin, user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %s", domain.ErrAlreadyExists, user.Username)
		}
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by username.
func (s *userStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, username, is_admin, created_at
		FROM users WHERE username = ?
	`, username)

	var user domain.User
	var createdAt sql.NullTime
	if err := row.Scan(&user.ID, &user.Username, &user.IsAdmin, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	if createdAt.Valid {
		user.CreatedAt = createdAt.Time
	}

	return &user, nil
}

// List returns all users, oldest account first.
func (s *userStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, username, is_admin, created_at
		FROM users ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []domain.User //nolint:prealloc // size unknown from query
	for rows.Next() {
		var user domain.User
		var createdAt sql.NullTime
		if err := rows.Scan(&user.ID, &user.Username, &user.IsAdmin, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		if createdAt.Valid {
			user.CreatedAt = createdAt.Time
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

// Count returns the number of stored users.
func (s *userStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// isUniqueViolation reports whether an error is a UNIQUE constraint failure.
// modernc.org/sqlite does not export a typed error for this, so the check
// falls back to the message SQLite produces.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
