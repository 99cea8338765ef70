package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nouressalam/storefront/internal/auth/domain"
	"github.com/nouressalam/storefront/pkg/idgen"
	"github.com/nouressalam/storefront/pkg/token"
)

type mockUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) Save(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepository, *token.Manager) {
	t.Helper()
	repo := newMockUserRepository()
	tm := token.NewManager("test-secret", time.Hour, 7*24*time.Hour)
	ids, err := idgen.New(3)
	require.NoError(t, err)
	return NewAuthService(repo, tm, ids), repo, tm
}

var registerInput = RegisterInput{
	Email:     "nadia@example.com",
	Password:  "s3cure-pass",
	FirstName: "Nadia",
	LastName:  "El Fassi",
	Phone:     "+212600000001",
}

func TestAuthService_Register(t *testing.T) {
	svc, repo, tm := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), registerInput)

	require.NoError(t, err)
	assert.Equal(t, "nadia@example.com", resp.User.Email)
	assert.Equal(t, domain.RoleCustomer, resp.User.Role)
	assert.NotEqual(t, "s3cure-pass", resp.User.PasswordHash, "password is stored hashed")
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	claims, err := tm.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.Subject)
	assert.Equal(t, "nadia@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)

	_, err = repo.GetByEmail(context.Background(), "nadia@example.com")
	assert.NoError(t, err)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), registerInput)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	registered, err := svc.Register(context.Background(), registerInput)
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), "nadia@example.com", "s3cure-pass")

	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), registerInput)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "nadia@example.com", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "unknown user and bad password are indistinguishable")
}
