package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoprates/ratings-review-api/internal/domain/entity"
	"github.com/shoprates/ratings-review-api/internal/domain/repository"
	"github.com/shoprates/ratings-review-api/pkg/helpers"
)

type fakeUserRepo struct {
	repository.UserRepository
	byEmail    map[string]*entity.User
	byUsername map[string]*entity.User
	byID       map[string]*entity.User
	createErr  error
	created    []*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	u.ID = "user-1"
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func newUserService(repo *fakeUserRepo) *UserService {
	jwt := helpers.NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)
	return NewUserService(repo, jwt, nil)
}

func TestRegisterIssuesTokens(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newUserService(repo)

	u, pair, err := svc.Register(context.Background(), RegisterInput{
		Username: "johndoe",
		Email:    "john@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	// The stored password is a hash, not the input.
	require.Len(t, repo.created, 1)
	assert.NotEqual(t, "secret123", repo.created[0].Password)
	assert.True(t, helpers.CheckPassword(repo.created[0].Password, "secret123"))
}

func TestRegisterDuplicateEmailVsUsername(t *testing.T) {
	existing := &entity.User{ID: "prior", Username: "johndoe", Email: "john@example.com"}
	repo := &fakeUserRepo{
		byEmail:    map[string]*entity.User{"john@example.com": existing},
		byUsername: map[string]*entity.User{"johndoe": existing},
	}
	svc := newUserService(repo)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "other", Email: "john@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = svc.Register(context.Background(), RegisterInput{
		Username: "johndoe", Email: "new@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterDuplicateRace(t *testing.T) {
	repo := &fakeUserRepo{createErr: repository.ErrDuplicate}
	svc := newUserService(repo)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "johndoe", Email: "john@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)
	repo := &fakeUserRepo{byEmail: map[string]*entity.User{
		"john@example.com": {ID: "user-1", Username: "johndoe", Email: "john@example.com", Password: hash},
	}}
	svc := newUserService(repo)

	u, pair, err := svc.Login(context.Background(), "john@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "johndoe", u.Username)
	assert.NotEmpty(t, pair.AccessToken)

	// Wrong password and unknown email are indistinguishable.
	_, _, err = svc.Login(context.Background(), "john@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesPair(t *testing.T) {
	user := &entity.User{ID: "user-1", Username: "johndoe", Email: "john@example.com"}
	repo := &fakeUserRepo{byID: map[string]*entity.User{"user-1": user}}
	svc := newUserService(repo)

	pair, err := svc.IssueTokens(user)
	require.NoError(t, err)

	_, next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)

	_, _, err = svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfile(t *testing.T) {
	repo := &fakeUserRepo{byID: map[string]*entity.User{
		"user-1": {ID: "user-1", Username: "johndoe"},
	}}
	svc := newUserService(repo)

	u, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "johndoe", u.Username)

	_, err = svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
