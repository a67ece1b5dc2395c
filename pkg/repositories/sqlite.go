package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/parlorgames/parlor/pkg/repositories/models"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens a sqlite database and applies every
// migration file found in the migrations directory, in name order.
func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	dir, err := os.ReadDir(migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}

	for _, entry := range dir {
		if entry.IsDir() {
			continue
		}

		migrationPath := filepath.Join(migrations, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}

		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return nil, fmt.Errorf("failed to execute migration %s: %v", migrationPath, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, externalUID string) (*models.User, error) {
	q := `
	INSERT INTO users (external_uid) VALUES (?)
	ON CONFLICT (external_uid) DO NOTHING;
	`
	if _, err := r.db.ExecContext(ctx, q, externalUID); err != nil {
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	var id uint64
	q = `
	SELECT id FROM users WHERE external_uid = ?;
	`
	if err := r.db.QueryRowContext(ctx, q, externalUID).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to scan user: %v", err)
	}

	return &models.User{
		ID:          id,
		ExternalUID: externalUID,
	}, nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	q := `
	SELECT external_uid FROM users WHERE id = ?;
	`
	var externalUID string
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&externalUID); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan user: %v", err)
	}

	return &models.User{
		ID:          id,
		ExternalUID: externalUID,
	}, nil
}
