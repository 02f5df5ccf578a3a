package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/inovotek/book-directory-api/internal/domain"
	"github.com/inovotek/book-directory-api/internal/repository/postgres"
	"github.com/inovotek/book-directory-api/internal/service"
	"github.com/inovotek/book-directory-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.RegisterInput
		setup   func()
		wantErr error
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				FullName: "New User",
				Email:    "new@example.com",
				Password: "password123",
			},
		},
		{
			name: "duplicate email",
			input: service.RegisterInput{
				FullName: "Someone Else",
				Email:    "taken@example.com",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			user, err := services.Auth.Register(ctx, tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.FullName, user.FullName)
			assert.Equal(t, tt.input.Email, user.Email)
			assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			assert.JSONEq(t, "[]", string(user.Books))

			stored, err := repos.User.GetByEmail(ctx, tt.input.Email)
			require.NoError(t, err)
			assert.Equal(t, user.ID, stored.ID)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().
		WithEmail("reader@example.com").
		Build(t, testDB.DB)

	t.Run("successful login opens a session", func(t *testing.T) {
		result, err := services.Auth.Login(ctx, service.LoginInput{
			Email:    user.Email,
			Password: password,
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.Token)

		subject, err := services.Auth.RequireSession(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, subject.ID)
	})

	t.Run("wrong password and unknown email look identical", func(t *testing.T) {
		_, errWrongPassword := services.Auth.Login(ctx, service.LoginInput{
			Email:    user.Email,
			Password: "not-the-password",
		})
		_, errUnknownEmail := services.Auth.Login(ctx, service.LoginInput{
			Email:    "nobody@example.com",
			Password: password,
		})

		require.ErrorIs(t, errWrongPassword, domain.ErrInvalidCredentials)
		require.ErrorIs(t, errUnknownEmail, domain.ErrInvalidCredentials)
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	})
}

func TestAuthService_RequireSession(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("never-created session", func(t *testing.T) {
		_, err := services.Auth.RequireSession(ctx, "no-such-token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := services.Auth.RequireSession(ctx, "")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("destroyed session", func(t *testing.T) {
		result, err := services.Auth.Login(ctx, service.LoginInput{Email: user.Email, Password: password})
		require.NoError(t, err)

		require.NoError(t, services.Auth.Logout(ctx, result.Token))

		_, err = services.Auth.RequireSession(ctx, result.Token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("expired session", func(t *testing.T) {
		expired := &domain.Session{
			Token:     "expired-token",
			AuthUser:  datatypes.JSON([]byte(`{"id":"` + user.ID.String() + `"}`)),
			ExpiresAt: time.Now().Add(-time.Hour),
			CreatedAt: time.Now().Add(-25 * time.Hour),
		}
		require.NoError(t, repos.Session.Create(ctx, expired))

		_, err := services.Auth.RequireSession(ctx, expired.Token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("snapshot is stale after user update", func(t *testing.T) {
		result, err := services.Auth.Login(ctx, service.LoginInput{Email: user.Email, Password: password})
		require.NoError(t, err)

		fresh, err := repos.User.GetByID(ctx, user.ID)
		require.NoError(t, err)
		fresh.FullName = "Renamed After Login"
		require.NoError(t, repos.User.Update(ctx, fresh))

		subject, err := services.Auth.RequireSession(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.FullName, subject.FullName)
	})
}

func TestAuthService_LogoutIsIdempotent(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().Build(t, testDB.DB)
	result, err := services.Auth.Login(ctx, service.LoginInput{Email: user.Email, Password: password})
	require.NoError(t, err)

	assert.NoError(t, services.Auth.Logout(ctx, result.Token))
	assert.NoError(t, services.Auth.Logout(ctx, result.Token))
	assert.NoError(t, services.Auth.Logout(ctx, "never-existed"))
}
