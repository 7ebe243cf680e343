package ports

import (
	"context"

	"user-accounts-api/internal/domain/user"
)

type UserService interface {
	CreateUser(ctx context.Context, u user.User) (*user.User, error)
	UpdateUser(ctx context.Context, u user.User) (*user.User, error)
	RenameLogin(ctx context.Context, u user.User, oldLogin string) (*user.User, error)
	RevokeUser(ctx context.Context, login, adminLogin string) (*user.User, error)
	RestoreUser(ctx context.Context, login, adminLogin string) (*user.User, error)
	DeleteUser(ctx context.Context, login string) (bool, error)
	FindByLogin(ctx context.Context, login string) (*user.User, error)
	FindByGUID(ctx context.Context, guid user.GUID) (*user.User, error)
	FindAll(ctx context.Context) (user.Users, error)
	FindActive(ctx context.Context) (user.Users, error)
	FindOlderThan(ctx context.Context, age int) (user.Users, error)
}
