package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-accounts-api/internal/application/ports"
	domain "user-accounts-api/internal/domain/user"
	"user-accounts-api/internal/infrastructure/mq"
	"user-accounts-api/internal/interface/api/rest/dto/user"
)

type UserService struct {
	userRepository domain.Repository
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
}

func NewUserService(
	userRepository domain.Repository,
	rbMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mq:             rbMQ,
		mCounter:       mCounter,
		logger:         logger,
	}
}

func (us *UserService) logStoreError(method string, err error) {
	us.logger.Error("store error",
		zap.String("service", "UserService"),
		zap.String("method", method),
		zap.Error(err),
	)
}

func (us *UserService) publish(action string, u domain.User) {
	us.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  action,
		Login:   u.Login,
		Payload: user.ToResponseUser(u),
	}
}

// CreateUser refuses logins that are already taken, revoked records
// included. Uniqueness is additionally backed by the store's unique index.
func (us *UserService) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	exists, err := us.userRepository.ExistsByLogin(ctx, u.Login)
	if err != nil {
		us.logStoreError("CreateUser", err)
		return nil, err
	}
	if exists {
		return nil, nil
	}

	if err = us.userRepository.Create(ctx, u); err != nil {
		us.logStoreError("CreateUser", err)
		return nil, err
	}

	us.publish(mq.ActionCreated, u)
	us.mCounter.WithLabelValues("user_created_total").Inc()

	return &u, nil
}

func (us *UserService) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	exists, err := us.userRepository.ExistsByGUID(ctx, u.GUID)
	if err != nil {
		us.logStoreError("UpdateUser", err)
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	uRet, err := us.userRepository.Update(ctx, u)
	if err != nil {
		us.logStoreError("UpdateUser", err)
		return nil, err
	}

	if uRet != nil {
		us.publish(mq.ActionUpdated, *uRet)
		us.mCounter.WithLabelValues("user_updated_total").Inc()
	}

	return uRet, nil
}

// RenameLogin updates the record and then rewrites every audit reference to
// the old login (created_by, modified_by, revoked_by) so the trail keeps
// pointing at the same person. The cascade is a sequence of independent
// read-then-write calls with no transaction around it.
func (us *UserService) RenameLogin(ctx context.Context, u domain.User, oldLogin string) (*domain.User, error) {
	uRet, err := us.UpdateUser(ctx, u)
	if err != nil || uRet == nil {
		return uRet, err
	}

	refs, err := us.userRepository.FetchByAuditRef(ctx, oldLogin)
	if err != nil {
		us.logStoreError("RenameLogin", err)
		return nil, err
	}

	for _, ref := range refs {
		if ref.CreatedBy != nil && *ref.CreatedBy == oldLogin {
			ref.CreatedBy = &u.Login
		}
		if ref.ModifiedBy != nil && *ref.ModifiedBy == oldLogin {
			ref.ModifiedBy = &u.Login
		}
		if ref.RevokedBy != nil && *ref.RevokedBy == oldLogin {
			ref.RevokedBy = &u.Login
		}
		if _, err = us.userRepository.Update(ctx, *ref); err != nil {
			us.logStoreError("RenameLogin", err)
			return nil, err
		}
	}

	us.mCounter.WithLabelValues("login_renamed_total").Inc()

	return uRet, nil
}

func (us *UserService) RevokeUser(ctx context.Context, login, adminLogin string) (*domain.User, error) {
	u, err := us.userRepository.FetchByLogin(ctx, login)
	if err != nil {
		us.logStoreError("RevokeUser", err)
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	now := time.Now().UTC()
	u.RevokedOn = &now
	u.RevokedBy = &adminLogin
	u.ModifiedOn = &now
	u.ModifiedBy = &adminLogin

	uRet, err := us.userRepository.Update(ctx, *u)
	if err != nil {
		us.logStoreError("RevokeUser", err)
		return nil, err
	}

	if uRet != nil {
		us.publish(mq.ActionRevoked, *uRet)
		us.mCounter.WithLabelValues("user_revoked_total").Inc()
	}

	return uRet, nil
}

func (us *UserService) RestoreUser(ctx context.Context, login, adminLogin string) (*domain.User, error) {
	u, err := us.userRepository.FetchByLogin(ctx, login)
	if err != nil {
		us.logStoreError("RestoreUser", err)
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	now := time.Now().UTC()
	u.RevokedOn = nil
	u.RevokedBy = nil
	u.ModifiedOn = &now
	u.ModifiedBy = &adminLogin

	uRet, err := us.userRepository.Update(ctx, *u)
	if err != nil {
		us.logStoreError("RestoreUser", err)
		return nil, err
	}

	if uRet != nil {
		us.publish(mq.ActionRestored, *uRet)
		us.mCounter.WithLabelValues("user_restored_total").Inc()
	}

	return uRet, nil
}

// DeleteUser removes the record physically. Soft delete is RevokeUser.
func (us *UserService) DeleteUser(ctx context.Context, login string) (bool, error) {
	u, err := us.userRepository.FetchByLogin(ctx, login)
	if err != nil {
		us.logStoreError("DeleteUser", err)
		return false, err
	}
	if u == nil {
		return false, nil
	}

	if err = us.userRepository.DeleteByLogin(ctx, login); err != nil {
		us.logStoreError("DeleteUser", err)
		return false, err
	}

	us.publish(mq.ActionDeleted, *u)
	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return true, nil
}

func (us *UserService) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	u, err := us.userRepository.FetchByLogin(ctx, login)
	if err != nil {
		us.logStoreError("FindByLogin", err)
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByGUID(ctx context.Context, guid domain.GUID) (*domain.User, error) {
	u, err := us.userRepository.FetchByGUID(ctx, guid)
	if err != nil {
		us.logStoreError("FindByGUID", err)
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindAll(ctx context.Context) (domain.Users, error) {
	users, err := us.userRepository.FetchAll(ctx)
	if err != nil {
		us.logStoreError("FindAll", err)
		return nil, err
	}

	return users, nil
}

func (us *UserService) FindActive(ctx context.Context) (domain.Users, error) {
	users, err := us.userRepository.FetchActive(ctx)
	if err != nil {
		us.logStoreError("FindActive", err)
		return nil, err
	}

	return users, nil
}

func (us *UserService) FindOlderThan(ctx context.Context, age int) (domain.Users, error) {
	users, err := us.userRepository.FetchOlderThan(ctx, age)
	if err != nil {
		us.logStoreError("FindOlderThan", err)
		return nil, err
	}

	return users, nil
}
