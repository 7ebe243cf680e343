package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"user-accounts-api/internal/domain/user"
	"user-accounts-api/internal/infrastructure/db/postgres"
)

var ErrLoginTaken = errors.New("login already taken")

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db DB
}

func NewRepository(db DB) user.Repository {
	return &Repository{db: db}
}

func scanUser(row pgx.Row) (*User, error) {
	u := new(User)
	err := row.Scan(
		&u.GUID,
		&u.Login,
		&u.Password,
		&u.Name,
		&u.Gender,
		&u.Birthday,
		&u.Admin,

		&u.CreatedOn,
		&u.CreatedBy,

		&u.ModifiedOn,
		&u.ModifiedBy,

		&u.RevokedOn,
		&u.RevokedBy,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Repository) queryUsers(ctx context.Context, sql string, args ...any) (user.Users, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var us Users
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&us), nil
}

func (r *Repository) queryUser(ctx context.Context, sql string, args ...any) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchAll(ctx context.Context) (user.Users, error) {
	return r.queryUsers(ctx, SelectUsers)
}

func (r *Repository) FetchActive(ctx context.Context) (user.Users, error) {
	return r.queryUsers(ctx, SelectActiveUsers)
}

func (r *Repository) FetchOlderThan(ctx context.Context, age int) (user.Users, error) {
	return r.queryUsers(ctx, SelectUsersOlderThan, age)
}

func (r *Repository) FetchByAuditRef(ctx context.Context, login string) (user.Users, error) {
	return r.queryUsers(ctx, SelectUsersByAuditRef, login)
}

func (r *Repository) FetchByLogin(ctx context.Context, login string) (*user.User, error) {
	return r.queryUser(ctx, SelectUserByLogin, login)
}

func (r *Repository) FetchByGUID(ctx context.Context, guid user.GUID) (*user.User, error) {
	return r.queryUser(ctx, SelectUserByGUID, guid)
}

func (r *Repository) FetchByCredentials(ctx context.Context, login, password string) (*user.User, error) {
	return r.queryUser(ctx, SelectUserByCredentials, login, password)
}

func (r *Repository) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, SelectExistsByLogin, login).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repository) ExistsByGUID(ctx context.Context, guid user.GUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, SelectExistsByGUID, guid).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repository) Create(ctx context.Context, req user.User) error {
	_, err := r.db.Exec(
		ctx,
		InsertUser,
		req.GUID, req.Login, req.Password, req.Name, req.Gender, req.Birthday, req.Admin,
		req.CreatedOn, req.CreatedBy,
		req.ModifiedOn, req.ModifiedBy,
		req.RevokedOn, req.RevokedBy,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return ErrLoginTaken
		}
		return err
	}

	return nil
}

func (r *Repository) Update(ctx context.Context, req user.User) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, UpdateUserByGUID,
		req.Login, req.Password, req.Name, req.Gender, req.Birthday, req.Admin,
		req.CreatedBy,
		req.ModifiedOn, req.ModifiedBy,
		req.RevokedOn, req.RevokedBy,
		req.GUID,
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrLoginTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) DeleteByLogin(ctx context.Context, login string) error {
	_, err := r.db.Exec(ctx, DeleteUserByLogin, login)
	return err
}
