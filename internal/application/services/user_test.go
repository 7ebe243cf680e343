package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "user-accounts-api/internal/domain/user"
	"user-accounts-api/internal/infrastructure/mq"
)

// fakeRepo is an in-memory domain.Repository. Setting failWith makes every
// call return that error.
type fakeRepo struct {
	users    []*domain.User
	failWith error
}

func (f *fakeRepo) clone(u *domain.User) *domain.User {
	cp := *u
	return &cp
}

func (f *fakeRepo) findByLogin(login string) *domain.User {
	for _, u := range f.users {
		if u.Login == login {
			return u
		}
	}
	return nil
}

func (f *fakeRepo) Create(_ context.Context, req domain.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.users = append(f.users, &req)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, req domain.User) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i, u := range f.users {
		if u.GUID == req.GUID {
			f.users[i] = &req
			return f.clone(&req), nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) DeleteByLogin(_ context.Context, login string) error {
	if f.failWith != nil {
		return f.failWith
	}
	for i, u := range f.users {
		if u.Login == login {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRepo) ExistsByGUID(_ context.Context, guid domain.GUID) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, u := range f.users {
		if u.GUID == guid {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ExistsByLogin(_ context.Context, login string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	return f.findByLogin(login) != nil, nil
}

func (f *fakeRepo) FetchByLogin(_ context.Context, login string) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if u := f.findByLogin(login); u != nil {
		return f.clone(u), nil
	}
	return nil, nil
}

func (f *fakeRepo) FetchByGUID(_ context.Context, guid domain.GUID) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.GUID == guid {
			return f.clone(u), nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FetchByCredentials(_ context.Context, login, password string) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if u := f.findByLogin(login); u != nil && u.Password == password {
		return f.clone(u), nil
	}
	return nil, nil
}

func (f *fakeRepo) FetchAll(_ context.Context) (domain.Users, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make(domain.Users, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, f.clone(u))
	}
	return out, nil
}

func (f *fakeRepo) FetchActive(_ context.Context) (domain.Users, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out domain.Users
	for _, u := range f.users {
		if u.RevokedOn == nil {
			out = append(out, f.clone(u))
		}
	}
	return out, nil
}

func (f *fakeRepo) FetchOlderThan(_ context.Context, age int) (domain.Users, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out domain.Users
	for _, u := range f.users {
		if u.Birthday != nil && time.Now().Year()-u.Birthday.Year() > age {
			out = append(out, f.clone(u))
		}
	}
	return out, nil
}

func (f *fakeRepo) FetchByAuditRef(_ context.Context, login string) (domain.Users, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	ref := func(p *string) bool { return p != nil && *p == login }
	var out domain.Users
	for _, u := range f.users {
		if ref(u.CreatedBy) || ref(u.ModifiedBy) || ref(u.RevokedBy) {
			out = append(out, f.clone(u))
		}
	}
	return out, nil
}

// fakeMQ satisfies ports.RabbitMQ with a buffered channel nobody drains.
type fakeMQ struct {
	in chan mq.Event
}

func newFakeMQ() *fakeMQ { return &fakeMQ{in: make(chan mq.Event, 64)} }

func (f *fakeMQ) Connect(context.Context, string) error { return nil }
func (f *fakeMQ) Init() error                           { return nil }
func (f *fakeMQ) PublisherWorker(context.Context)       {}
func (f *fakeMQ) GetInputChan() chan mq.Event           { return f.in }
func (f *fakeMQ) GetConn() *amqp091.Connection          { return nil }

func testCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_counters"},
		[]string{"result"},
	)
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func newUser(login string, admin bool) *domain.User {
	return &domain.User{
		GUID:      uuid.New(),
		Login:     login,
		Password:  "pass123",
		Name:      "Someone",
		Gender:    domain.GenderUnknown,
		Admin:     admin,
		CreatedOn: time.Now().UTC(),
	}
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success publishes created event", func(t *testing.T) {
		repo := &fakeRepo{}
		rbmq := newFakeMQ()
		svc := NewUserService(repo, rbmq, testCounter(), zap.NewNop())

		u := newUser("alice", false)
		got, err := svc.CreateUser(ctx, *u)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alice", got.Login)
		require.NotNil(t, repo.findByLogin("alice"))

		ev := <-rbmq.in
		assert.Equal(t, mq.ActionCreated, ev.Action)
		assert.Equal(t, "alice", ev.Login)
	})

	t.Run("taken login returns nil, even when revoked", func(t *testing.T) {
		existing := newUser("alice", false)
		existing.RevokedOn = timePtr(time.Now().UTC())
		repo := &fakeRepo{users: []*domain.User{existing}}
		svc := NewUserService(repo, newFakeMQ(), testCounter(), zap.NewNop())

		got, err := svc.CreateUser(ctx, *newUser("alice", false))
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Len(t, repo.users, 1)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		repo := &fakeRepo{failWith: errors.New("boom")}
		svc := NewUserService(repo, newFakeMQ(), testCounter(), zap.NewNop())

		got, err := svc.CreateUser(ctx, *newUser("alice", false))
		require.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown guid returns nil", func(t *testing.T) {
		svc := NewUserService(&fakeRepo{}, newFakeMQ(), testCounter(), zap.NewNop())

		got, err := svc.UpdateUser(ctx, *newUser("ghost", false))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("existing user updated and published", func(t *testing.T) {
		u := newUser("alice", false)
		repo := &fakeRepo{users: []*domain.User{u}}
		rbmq := newFakeMQ()
		svc := NewUserService(repo, rbmq, testCounter(), zap.NewNop())

		changed := *u
		changed.Name = "Renamed"
		got, err := svc.UpdateUser(ctx, changed)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, "Renamed", repo.findByLogin("alice").Name)

		ev := <-rbmq.in
		assert.Equal(t, mq.ActionUpdated, ev.Action)
	})
}

func TestUserService_RenameLogin_CascadesAuditRefs(t *testing.T) {
	ctx := context.Background()

	alice := newUser("alice", true)

	bob := newUser("bob", false)
	bob.CreatedBy = strPtr("alice")

	carol := newUser("carol", false)
	carol.CreatedBy = strPtr("root")
	carol.ModifiedBy = strPtr("alice")
	carol.RevokedOn = timePtr(time.Now().UTC())
	carol.RevokedBy = strPtr("alice")

	dave := newUser("dave", false)
	dave.CreatedBy = strPtr("root")

	repo := &fakeRepo{users: []*domain.User{alice, bob, carol, dave}}
	svc := NewUserService(repo, newFakeMQ(), testCounter(), zap.NewNop())

	renamed := *alice
	renamed.Login = "alicia"
	renamed.ModifiedOn = timePtr(time.Now().UTC())
	renamed.ModifiedBy = strPtr("alicia")

	got, err := svc.RenameLogin(ctx, renamed, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alicia", got.Login)

	assert.Nil(t, repo.findByLogin("alice"), "old login must be gone")
	require.NotNil(t, repo.findByLogin("alicia"))

	gotBob := repo.findByLogin("bob")
	require.NotNil(t, gotBob.CreatedBy)
	assert.Equal(t, "alicia", *gotBob.CreatedBy)

	gotCarol := repo.findByLogin("carol")
	assert.Equal(t, "root", *gotCarol.CreatedBy, "references to others stay untouched")
	assert.Equal(t, "alicia", *gotCarol.ModifiedBy)
	assert.Equal(t, "alicia", *gotCarol.RevokedBy)
	require.NotNil(t, gotCarol.RevokedOn, "revocation state survives the cascade")

	gotDave := repo.findByLogin("dave")
	assert.Equal(t, "root", *gotDave.CreatedBy)
	assert.Nil(t, gotDave.ModifiedBy)

	assert.Len(t, repo.users, 4)
}

func TestUserService_RevokeRestore(t *testing.T) {
	ctx := context.Background()

	u := newUser("bob", false)
	repo := &fakeRepo{users: []*domain.User{u}}
	rbmq := newFakeMQ()
	svc := NewUserService(repo, rbmq, testCounter(), zap.NewNop())

	revoked, err := svc.RevokeUser(ctx, "bob", "admin")
	require.NoError(t, err)
	require.NotNil(t, revoked)
	require.NotNil(t, revoked.RevokedOn)
	assert.Equal(t, "admin", *revoked.RevokedBy)
	assert.Equal(t, "admin", *revoked.ModifiedBy)
	assert.False(t, revoked.Active())
	assert.Equal(t, mq.ActionRevoked, (<-rbmq.in).Action)

	restored, err := svc.RestoreUser(ctx, "bob", "admin")
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Nil(t, restored.RevokedOn)
	assert.Nil(t, restored.RevokedBy)
	assert.True(t, restored.Active())
	assert.Equal(t, mq.ActionRestored, (<-rbmq.in).Action)

	missing, err := svc.RevokeUser(ctx, "nobody", "admin")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	u := newUser("bob", false)
	repo := &fakeRepo{users: []*domain.User{u}}
	rbmq := newFakeMQ()
	svc := NewUserService(repo, rbmq, testCounter(), zap.NewNop())

	ok, err := svc.DeleteUser(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, repo.findByLogin("bob"))
	assert.Equal(t, mq.ActionDeleted, (<-rbmq.in).Action)

	ok, err = svc.DeleteUser(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, ok, "second delete finds nothing")
}

func TestUserService_FindActive(t *testing.T) {
	ctx := context.Background()

	active := newUser("alice", false)
	gone := newUser("bob", false)
	gone.RevokedOn = timePtr(time.Now().UTC())

	repo := &fakeRepo{users: []*domain.User{active, gone}}
	svc := NewUserService(repo, newFakeMQ(), testCounter(), zap.NewNop())

	users, err := svc.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Login)
}
