package auth

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealdesk/dealdesk/internal/config"
	"github.com/dealdesk/dealdesk/internal/database"
	"github.com/dealdesk/dealdesk/internal/entities"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	return NewService(db.DB, config.Auth{
		TokenExpiry: time.Hour,
		BcryptCost:  bcrypt.MinCost,
	})
}

func TestCreateUser(t *testing.T) {
	service := setupTestService(t)

	user, err := service.CreateUser("jane", "jane@example.com", "a-long-password", entities.UserRoleCoordinator)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, entities.UserRoleCoordinator, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "a-long-password", user.PasswordHash)
}

func TestCreateUserValidation(t *testing.T) {
	service := setupTestService(t)

	_, err := service.CreateUser("", "a@b.com", "pw-long-enough", entities.UserRoleAgent)
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = service.CreateUser("jane", "", "pw-long-enough", entities.UserRoleAgent)
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = service.CreateUser("jane", "a@b.com", "", entities.UserRoleAgent)
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = service.CreateUser("x", "a@b.com", "pw-long-enough", entities.UserRoleAgent)
	assert.ErrorIs(t, err, ErrUsernameInvalid)

	_, err = service.CreateUser("jane", "not-an-email", "pw-long-enough", entities.UserRoleAgent)
	assert.ErrorIs(t, err, ErrEmailInvalid)

	_, err = service.CreateUser("jane", "a@b.com", "pw-long-enough", entities.UserRole("broker"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreateUserDuplicate(t *testing.T) {
	service := setupTestService(t)

	_, err := service.CreateUser("jane", "jane@example.com", "pw-long-enough", entities.UserRoleAgent)
	require.NoError(t, err)

	_, err = service.CreateUser("jane", "other@example.com", "pw-long-enough", entities.UserRoleAgent)
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = service.CreateUser("other", "jane@example.com", "pw-long-enough", entities.UserRoleAgent)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthenticate(t *testing.T) {
	service := setupTestService(t)

	created, err := service.CreateUser("jane", "jane@example.com", "pw-long-enough", entities.UserRoleCoordinator)
	require.NoError(t, err)

	user, err := service.Authenticate("jane", "pw-long-enough")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	// Email works as the login identifier too.
	user, err = service.Authenticate("jane@example.com", "pw-long-enough")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = service.Authenticate("jane", "wrong-password")
	assert.Error(t, err)

	_, err = service.Authenticate("nobody", "pw-long-enough")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTokenLifecycle(t *testing.T) {
	service := setupTestService(t)

	user, err := service.CreateUser("jane", "jane@example.com", "pw-long-enough", entities.UserRoleCoordinator)
	require.NoError(t, err)

	token, err := service.GenerateToken(user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	validated, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.ID)

	_, err = service.ValidateToken("not-a-real-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, service.RevokeToken(user.ID))
	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateTokenUnknownUser(t *testing.T) {
	service := setupTestService(t)

	_, err := service.GenerateToken(12345)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestHasUsers(t *testing.T) {
	service := setupTestService(t)

	has, err := service.HasUsers()
	require.NoError(t, err)
	assert.False(t, has)

	_, err = service.CreateUser("jane", "jane@example.com", "pw-long-enough", entities.UserRoleAgent)
	require.NoError(t, err)

	has, err = service.HasUsers()
	require.NoError(t, err)
	assert.True(t, has)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("some-password-here", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, CheckPassword("some-password-here", hash))
	assert.Error(t, CheckPassword("different-password", hash))
}

func TestAPITokenGeneration(t *testing.T) {
	plaintext, hash, err := GenerateAPIToken()
	require.NoError(t, err)
	assert.NotEmpty(t, plaintext)
	assert.Equal(t, hash, HashToken(plaintext))

	// Two tokens are never equal.
	other, _, err := GenerateAPIToken()
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, other)
}
