package ports

import (
	"context"

	"user-accounts-api/internal/domain/auth"
)

type Auth interface {
	CreateToken(ctx context.Context, login, password string) (*auth.Data, error)
}
