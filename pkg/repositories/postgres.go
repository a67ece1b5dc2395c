package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/parlorgames/parlor/pkg/log"
	"github.com/parlorgames/parlor/pkg/repositories/models"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to a postgres database.
// It panics if it is unable to connect.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) Repository {
	return &PostgresRepository{
		conn: connectDb(ctx, connStr),
	}
}

func connectDb(ctx context.Context, connStr string) *pgx.Conn {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		panic(fmt.Sprintf("Unable to connect to database: %v\n", err))
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		panic(fmt.Sprintf("Unable to query database: %v\n", err))
	}

	log.Info("connected to %s as %s", database, username)

	return conn
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) CreateUser(ctx context.Context, externalUID string) (*models.User, error) {
	q := `
	INSERT INTO users (external_uid) VALUES ($1)
	ON CONFLICT (external_uid) DO UPDATE SET external_uid = EXCLUDED.external_uid
	RETURNING id;
	`
	var id uint64
	if err := r.conn.QueryRow(ctx, q, externalUID).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	return &models.User{
		ID:          id,
		ExternalUID: externalUID,
	}, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	q := `
	SELECT external_uid FROM users WHERE id = $1;
	`
	var externalUID string
	if err := r.conn.QueryRow(ctx, q, id).Scan(&externalUID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan user: %v", err)
	}

	return &models.User{
		ID:          id,
		ExternalUID: externalUID,
	}, nil
}
