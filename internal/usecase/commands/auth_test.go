//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"lodgekeeper/internal/domain/user"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/pkg/clock"
	"lodgekeeper/internal/pkg/jwt"
	"lodgekeeper/internal/pkg/password"
	"lodgekeeper/internal/usecase/commands"
	commandsmock "lodgekeeper/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authMocks struct {
	userReads *commandsmock.MockUserReads
	userRepo  *commandsmock.MockUserRepository
	jwtSvc    *jwt.Service
	clock     *clock.MockClock
}

func newAuthCommands(t *testing.T) (commands.AuthCommands, authMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := authMocks{
		userReads: commandsmock.NewMockUserReads(ctrl),
		userRepo:  commandsmock.NewMockUserRepository(ctrl),
		jwtSvc:    jwt.NewService("test-secret", time.Hour),
		clock:     clock.NewMockClock(time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)),
	}
	cmd := commands.NewAuthCommands(m.userReads, m.userRepo, nil, m.jwtSvc, m.clock)
	return cmd, m
}

func staffUser(t *testing.T, email, plain string, active bool) *user.User {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	return user.Reconstruct(uuid.New(), email, hash, user.RoleStaff, active, nil, time.Now())
}

func TestAuthCommands_Login(t *testing.T) {
	t.Parallel()

	const plain = "correct horse battery staple"

	t.Run("valid credentials produce a verifiable token", func(t *testing.T) {
		t.Parallel()
		cmd, m := newAuthCommands(t)

		u := staffUser(t, "staff@example.com", plain, true)
		m.userReads.EXPECT().FindByEmail(gomock.Any(), "staff@example.com").Return(u, nil)
		m.userRepo.EXPECT().
			UpdateLastLogin(gomock.Any(), gomock.Any(), u.ID(), m.clock.Now()).
			Return(nil)

		result, err := cmd.Login(context.Background(), "staff@example.com", plain)
		require.NoError(t, err)
		assert.Equal(t, u.ID(), result.User.ID)
		assert.Equal(t, "staff", result.User.Role)

		claims, err := m.jwtSvc.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID(), claims.UserID)
		assert.Equal(t, "staff", claims.Role)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()
		cmd, m := newAuthCommands(t)

		u := staffUser(t, "staff@example.com", plain, true)
		m.userReads.EXPECT().FindByEmail(gomock.Any(), "staff@example.com").Return(u, nil)
		m.userRepo.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), u.ID(), gomock.Any()).Return(nil)

		_, err := cmd.Login(context.Background(), "  Staff@Example.COM ", plain)
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		cmd, m := newAuthCommands(t)

		u := staffUser(t, "staff@example.com", plain, true)
		m.userReads.EXPECT().FindByEmail(gomock.Any(), "staff@example.com").Return(u, nil)

		_, err := cmd.Login(context.Background(), "staff@example.com", "wrong")
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error as a wrong password", func(t *testing.T) {
		t.Parallel()
		cmd, m := newAuthCommands(t)

		m.userReads.EXPECT().
			FindByEmail(gomock.Any(), "ghost@example.com").
			Return(nil, infra.NewRepoErr("user not found", infra.KindNotFound))

		_, err := cmd.Login(context.Background(), "ghost@example.com", plain)
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		t.Parallel()
		cmd, m := newAuthCommands(t)

		u := staffUser(t, "former@example.com", plain, false)
		m.userReads.EXPECT().FindByEmail(gomock.Any(), "former@example.com").Return(u, nil)

		_, err := cmd.Login(context.Background(), "former@example.com", plain)
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("a failed last-login update does not block the login", func(t *testing.T) {
		t.Parallel()
		cmd, m := newAuthCommands(t)

		u := staffUser(t, "staff@example.com", plain, true)
		m.userReads.EXPECT().FindByEmail(gomock.Any(), "staff@example.com").Return(u, nil)
		m.userRepo.EXPECT().
			UpdateLastLogin(gomock.Any(), gomock.Any(), u.ID(), gomock.Any()).
			Return(infra.NewRepoErr("write failed", infra.KindDBFailure))

		result, err := cmd.Login(context.Background(), "staff@example.com", plain)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})
}
