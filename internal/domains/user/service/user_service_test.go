package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/user"
	"library-backend/pkg/token"
)

// fakeUserRepo is an in-memory user.Repository enforcing username
// uniqueness under its own lock.
type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uuid.UUID]*user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Username == u.Username {
			return nil, user.ErrUsernameTaken
		}
	}
	stored := *u
	stored.ID = uuid.New()
	f.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, err := f.FindByUsername(context.Background(), username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func newTestService(t *testing.T) (user.Service, *token.Manager) {
	t.Helper()
	tokens := token.NewManager("test-secret")
	return NewUserService(newFakeUserRepo(), tokens), tokens
}

func registerReq() user.RegisterRequest {
	return user.RegisterRequest{
		Username:      "mluukkai",
		FullName:      "Matti Luukkainen",
		Password:      "secret-password",
		FavoriteGenre: "refactoring",
	}
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	svc, tokens := newTestService(t)

	auth, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	require.NotNil(t, auth.User)

	assert.Equal(t, "mluukkai", auth.User.Username)
	assert.NotEmpty(t, auth.User.PasswordHash)
	require.NotEmpty(t, auth.Token)

	got, err := tokens.Verify(auth.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, got)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newTestService(t)

	req := registerReq()
	req.Password = "abc"
	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.FullName = "Someone Else"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, user.ErrUsernameTaken)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, tokens := newTestService(t)

	registered, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	auth, err := svc.Login(context.Background(), user.LoginRequest{
		Username: "mluukkai",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, auth.User.ID)

	got, err := tokens.Verify(auth.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, got)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), user.LoginRequest{
		Username: "mluukkai",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownUserSameFailure(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	// Indistinguishable from a wrong password.
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestPasswordIsStoredHashed(t *testing.T) {
	svc, _ := newTestService(t)

	auth, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.NotEqual(t, "secret-password", auth.User.PasswordHash)
	assert.NotContains(t, auth.User.PasswordHash, "secret-password")
}
