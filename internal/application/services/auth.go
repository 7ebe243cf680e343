package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"user-accounts-api/internal/application/ports"
	"user-accounts-api/internal/domain/auth"
	domain "user-accounts-api/internal/domain/user"
	"user-accounts-api/internal/infrastructure/jwt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type AuthService struct {
	userRepository domain.Repository
	jwtService     *jwt.Service
	logger         *zap.Logger
	tokenTTL       time.Duration
}

func NewAuthService(
	userRepository domain.Repository,
	jwtService *jwt.Service,
	logger *zap.Logger,
	tokenTTL time.Duration,
) ports.Auth {
	return &AuthService{
		userRepository: userRepository,
		jwtService:     jwtService,
		logger:         logger,
		tokenTTL:       tokenTTL,
	}
}

// CreateToken matches login and password against the store verbatim.
// A miss is ErrInvalidCredentials; a store failure is anything else, so
// callers can keep 401 and 500 apart. Revocation is not checked here:
// a soft-deleted account can still obtain a token.
func (as *AuthService) CreateToken(ctx context.Context, login, password string) (*auth.Data, error) {
	u, err := as.userRepository.FetchByCredentials(ctx, login, password)
	if err != nil {
		as.logger.Error("store error",
			zap.String("service", "AuthService"),
			zap.String("method", "CreateToken"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch by credentials: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(u.Login, u.Admin, as.tokenTTL)
	if err != nil {
		as.logger.Error("token generation error",
			zap.String("service", "AuthService"),
			zap.String("method", "CreateToken"),
			zap.Error(err),
		)
		return nil, ErrFailedToGenerateToken
	}

	return &auth.Data{Login: u.Login, IsAdmin: u.Admin, Token: token}, nil
}
