package identity

import (
	"context"
	"testing"

	"github.com/mergington/activities-api/internal/domain"
	"github.com/mergington/activities-api/internal/identity/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	users         map[string]*domain.User
	createUserErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockRepository) CreateUser(_ context.Context, user *domain.User) error {
	if m.createUserErr != nil {
		return m.createUserErr
	}
	email := domain.NormalizeEmail(user.Email)
	if _, exists := m.users[email]; exists {
		return ErrEmailExists
	}
	stored := *user
	stored.Email = email
	m.users[email] = &stored
	return nil
}

func (m *mockRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := m.users[domain.NormalizeEmail(email)]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	return NewService(repo, session.NewManager()), repo
}

func TestRegister_CreatesMemberWithHashedPassword(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Register(context.Background(), RegisterInput{
		Email:    "Alice@Mergington.edu",
		Password: "secret123",
		Role:     "member",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice@mergington.edu", user.Email, "email should be lowercased")
	assert.Equal(t, domain.RoleMember, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestRegister_DefaultsRoleToMember(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Register(context.Background(), RegisterInput{
		Email:    "bob@mergington.edu",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, user.Role)
}

func TestRegister_InvalidRole(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Register(context.Background(), RegisterInput{
		Email:    "bob@mergington.edu",
		Password: "secret123",
		Role:     "principal",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRegister_NonMemberRoleForbidden(t *testing.T) {
	service, _ := newTestService()

	for _, role := range []string{"admin", "supervisor"} {
		user, err := service.Register(context.Background(), RegisterInput{
			Email:    "bob@mergington.edu",
			Password: "secret123",
			Role:     role,
		})

		assert.Nil(t, user, "role %s", role)
		assert.ErrorIs(t, err, ErrRoleNotAllowed, "role %s", role)
	}
}

func TestRegister_EmailAlreadyExists(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "bob@mergington.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Same email in different case, different password and role spelling.
	user, err := service.Register(context.Background(), RegisterInput{
		Email:    "BOB@mergington.edu",
		Password: "other456",
		Role:     "member",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin_SucceedsAfterRegister(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "carol@mergington.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	user, token, err := service.Login(context.Background(), LoginInput{
		Email:    "carol@mergington.edu",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "carol@mergington.edu", user.Email)
	assert.NotEmpty(t, token)

	resolved, err := service.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resolved.Email)
}

func TestLogin_CaseInsensitiveEmail(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "carol@mergington.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	user, _, err := service.Login(context.Background(), LoginInput{
		Email:    "CAROL@Mergington.EDU",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "carol@mergington.edu", user.Email)
}

func TestLogin_FailsUniformly(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "carol@mergington.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Unknown user and wrong password are indistinguishable to the caller.
	_, _, unknownErr := service.Login(context.Background(), LoginInput{
		Email:    "nobody@mergington.edu",
		Password: "secret123",
	})
	_, _, wrongPassErr := service.Login(context.Background(), LoginInput{
		Email:    "carol@mergington.edu",
		Password: "wrong",
	})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
}

func TestResolveToken_UnknownToken(t *testing.T) {
	service, _ := newTestService()

	user, err := service.ResolveToken(context.Background(), "never-issued")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveToken_UserRemoved(t *testing.T) {
	service, repo := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "carol@mergington.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, token, err := service.Login(context.Background(), LoginInput{
		Email:    "carol@mergington.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	// A session whose user vanished counts as invalidated, not a crash.
	delete(repo.users, "carol@mergington.edu")

	user, err := service.ResolveToken(context.Background(), token)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesToken(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "carol@mergington.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, token, err := service.Login(context.Background(), LoginInput{
		Email:    "carol@mergington.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	service.Logout(context.Background(), token)

	_, err = service.ResolveToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Revoking again is a no-op, not an error.
	service.Logout(context.Background(), token)
}
