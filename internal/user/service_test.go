package user

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gabrielmlima/quizhub/internal/auth"
	"github.com/gabrielmlima/quizhub/internal/policy"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*User{}}
}

func (r *fakeUserRepo) Create(u *User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "user-service-test-secret")
	auth.Init()
	os.Exit(m.Run())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToUserRole", func(t *testing.T) {
		service := NewService(newFakeUserRepo())

		resp, err := service.Register(ctx, RegisterDTO{
			Username:  "alice",
			Password:  "s3cret-pass",
			Password2: "s3cret-pass",
		})
		require.NoError(t, err)
		assert.Equal(t, policy.RoleUser, resp.Role)
		assert.NotEqual(t, uuid.Nil, resp.ID)
	})

	t.Run("PasswordMismatch", func(t *testing.T) {
		service := NewService(newFakeUserRepo())

		_, err := service.Register(ctx, RegisterDTO{
			Username:  "alice",
			Password:  "s3cret-pass",
			Password2: "other",
		})
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		service := NewService(newFakeUserRepo())

		_, err := service.Register(ctx, RegisterDTO{Username: "alice"})
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		service := NewService(newFakeUserRepo())

		_, err := service.Register(ctx, RegisterDTO{
			Username:  "alice",
			Password:  "s3cret-pass",
			Password2: "s3cret-pass",
			Role:      "SUPERUSER",
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		service := NewService(newFakeUserRepo())

		dto := RegisterDTO{Username: "alice", Password: "s3cret-pass", Password2: "s3cret-pass"}
		_, err := service.Register(ctx, dto)
		require.NoError(t, err)

		_, err = service.Register(ctx, dto)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := NewService(repo)

	_, err := service.Register(ctx, RegisterDTO{
		Username:  "bob",
		Password:  "correct-horse",
		Password2: "correct-horse",
		Role:      policy.RoleAdmin,
	})
	require.NoError(t, err)

	t.Run("ValidCredentials", func(t *testing.T) {
		tokens, err := service.Login(ctx, LoginDTO{Username: "bob", Password: "correct-horse"})
		require.NoError(t, err)

		claims, err := auth.ValidateJWT(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, string(policy.RoleAdmin), claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := service.Login(ctx, LoginDTO{Username: "bob", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := service.Login(ctx, LoginDTO{Username: "nobody", Password: "whatever"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := NewService(repo)

	_, err := service.Register(ctx, RegisterDTO{
		Username:  "carol",
		Password:  "pass-phrase",
		Password2: "pass-phrase",
	})
	require.NoError(t, err)

	tokens, err := service.Login(ctx, LoginDTO{Username: "carol", Password: "pass-phrase"})
	require.NoError(t, err)

	t.Run("ValidRefreshToken", func(t *testing.T) {
		refreshed, err := service.Refresh(ctx, tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		_, err := service.Refresh(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
