package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const createUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		guid        uuid PRIMARY KEY,
		login       text NOT NULL UNIQUE,
		password    text NOT NULL,
		name        text NOT NULL,
		gender      int  NOT NULL,
		birthday    timestamptz,
		admin       boolean NOT NULL DEFAULT false,
		created_on  timestamptz NOT NULL,
		created_by  text,
		modified_on timestamptz,
		modified_by text,
		revoked_on  timestamptz,
		revoked_by  text
	)
`

const countAdmins = `SELECT count(*) FROM users WHERE admin = true`

const insertSeedAdmin = `
	INSERT INTO users (guid, login, password, name, gender, admin, created_on, created_by)
	VALUES ($1, $2, $3, $2, 2, true, $4, NULL)
	ON CONFLICT (login) DO NOTHING
`

// Bootstrap creates the schema and seeds a single admin account when none
// exists yet. The seed record is the only one allowed a NULL created_by.
func Bootstrap(ctx context.Context, logger *zap.Logger, db *pgxpool.Pool, adminLogin, adminPassword string) error {
	if _, err := db.Exec(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	var admins int
	if err := db.QueryRow(ctx, countAdmins).Scan(&admins); err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins > 0 {
		return nil
	}

	if _, err := db.Exec(ctx, insertSeedAdmin,
		uuid.New(), adminLogin, adminPassword, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.Info("seeded bootstrap admin", zap.String("login", adminLogin))

	return nil
}
