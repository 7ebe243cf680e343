package user

import (
	"context"
)

// Repository is the record-store contract. Lookups return (nil, nil) when no
// row matches; existence checks do not filter by revocation, so a revoked
// login still counts as taken.
type Repository interface {
	Create(ctx context.Context, req User) error
	Update(ctx context.Context, req User) (*User, error)
	DeleteByLogin(ctx context.Context, login string) error
	ExistsByGUID(ctx context.Context, guid GUID) (bool, error)
	ExistsByLogin(ctx context.Context, login string) (bool, error)
	FetchByLogin(ctx context.Context, login string) (*User, error)
	FetchByGUID(ctx context.Context, guid GUID) (*User, error)
	FetchByCredentials(ctx context.Context, login, password string) (*User, error)
	FetchAll(ctx context.Context) (Users, error)
	FetchActive(ctx context.Context) (Users, error)
	FetchOlderThan(ctx context.Context, age int) (Users, error)
	FetchByAuditRef(ctx context.Context, login string) (Users, error)
}
