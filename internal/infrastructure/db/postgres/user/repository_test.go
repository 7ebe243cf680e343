package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "user-accounts-api/internal/domain/user"
)

var userColumns = []string{
	"guid", "login", "password", "name", "gender", "birthday", "admin",
	"created_on", "created_by", "modified_on", "modified_by", "revoked_on", "revoked_by",
}

func strPtr(s string) *string { return &s }

func domainUser(guid uuid.UUID, createdOn time.Time) domain.User {
	return domain.User{
		GUID:      guid,
		Login:     "alice",
		Password:  "pass123",
		Name:      "Alice",
		Gender:    domain.GenderFemale,
		CreatedOn: createdOn,
		CreatedBy: strPtr("admin"),
	}
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepository_FetchByLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		guid := uuid.New()
		createdOn := time.Now().UTC()
		mock.ExpectQuery(`WHERE login = \$1`).
			WithArgs("alice").
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(
				guid, "alice", "pass123", "Alice", 0, nil, false,
				createdOn, strPtr("admin"), nil, nil, nil, nil,
			))

		u, err := repo.FetchByLogin(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, guid, u.GUID)
		assert.Equal(t, "alice", u.Login)
		require.NotNil(t, u.CreatedBy)
		assert.Equal(t, "admin", *u.CreatedBy)
		assert.Nil(t, u.RevokedOn)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows maps to nil, nil", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectQuery(`WHERE login = \$1`).
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		u, err := repo.FetchByLogin(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, u)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FetchByCredentials_NoMatch(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectQuery(`AND password = \$2`).
		WithArgs("alice", "wrong").
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.FetchByCredentials(context.Background(), "alice", "wrong")
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsByLogin(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	newUser := func() (uuid.UUID, time.Time) {
		return uuid.New(), time.Now().UTC()
	}

	t.Run("inserted", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		guid, createdOn := newUser()
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(
				guid, "alice", "pass123", "Alice", 0, (*time.Time)(nil), false,
				createdOn, strPtr("admin"),
				(*time.Time)(nil), (*string)(nil),
				(*time.Time)(nil), (*string)(nil),
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, domainUser(guid, createdOn))
		require.NoError(t, err)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrLoginTaken", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		guid, createdOn := newUser()
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.Create(ctx, domainUser(guid, createdOn))
		require.ErrorIs(t, err, ErrLoginTaken)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a rewritten created_by reference", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		guid := uuid.New()
		createdOn := time.Now().UTC()
		ref := domainUser(guid, createdOn)
		ref.Login = "bob"
		ref.Name = "Bob"
		ref.Gender = 1
		ref.CreatedBy = strPtr("alicia")

		mock.ExpectQuery(`SET login = \$1`).
			WithArgs(
				"bob", "pass123", "Bob", 1, (*time.Time)(nil), false,
				strPtr("alicia"),
				(*time.Time)(nil), (*string)(nil),
				(*time.Time)(nil), (*string)(nil),
				guid,
			).
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(
				guid, "bob", "pass123", "Bob", 1, nil, false,
				createdOn, strPtr("alicia"), nil, nil, nil, nil,
			))

		u, err := repo.Update(ctx, ref)
		require.NoError(t, err)
		require.NotNil(t, u)
		require.NotNil(t, u.CreatedBy)
		assert.Equal(t, "alicia", *u.CreatedBy)
		assert.Contains(t, UpdateUserByGUID, "created_by = $7")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrLoginTaken", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectQuery(`UPDATE users`).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		u, err := repo.Update(ctx, domainUser(uuid.New(), time.Now().UTC()))
		require.ErrorIs(t, err, ErrLoginTaken)
		assert.Nil(t, u)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("vanished row maps to nil, nil", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectQuery(`UPDATE users`).
			WillReturnError(pgx.ErrNoRows)

		u, err := repo.Update(ctx, domainUser(uuid.New(), time.Now().UTC()))
		require.NoError(t, err)
		assert.Nil(t, u)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FetchByAuditRef(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	createdOn := time.Now().UTC()
	mock.ExpectQuery(`created_by = \$1 OR modified_by = \$1 OR revoked_by = \$1`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(
				uuid.New(), "bob", "pass123", "Bob", 1, nil, false,
				createdOn, strPtr("alice"), nil, nil, nil, nil,
			).
			AddRow(
				uuid.New(), "carol", "pass123", "Carol", 0, nil, false,
				createdOn, strPtr("root"), nil, strPtr("alice"), nil, nil,
			))

	users, err := repo.FetchByAuditRef(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Login)
	assert.Equal(t, "carol", users[1].Login)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteByLogin(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs("bob").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.DeleteByLogin(context.Background(), "bob")
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
