package commands

import (
	"context"
	"errors"
	"log/slog"

	"lodgekeeper/internal/domain/user"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/pkg/clock"
	"lodgekeeper/internal/pkg/errs"
	"lodgekeeper/internal/pkg/jwt"
	"lodgekeeper/internal/pkg/password"
	"lodgekeeper/internal/usecase/queries"
)

var ErrInvalidCredentials = errs.New("invalid email or password")

type LoginResult struct {
	Token string
	User  queries.AuthorizedUserView
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	userReads UserReads
	userRepo  UserRepository
	pool      db.Querier
	jwtSvc    *jwt.Service
	clock     clock.Clock
}

func NewAuthCommands(userReads UserReads, userRepo UserRepository, pool db.Querier, jwtSvc *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		userReads: userReads,
		userRepo:  userRepo,
		pool:      pool,
		jwtSvc:    jwtSvc,
		clock:     clk,
	}
}

func (c *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	u, err := c.userReads.FindByEmail(ctx, normalized)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !u.IsActive() {
		return nil, ErrInvalidCredentials
	}

	if err := password.Compare(u.PasswordHash(), plainPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, err
	}

	token, err := c.jwtSvc.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	// Best effort; a failed timestamp update must not block the login.
	if err := c.userRepo.UpdateLastLogin(ctx, c.pool, u.ID(), c.clock.Now()); err != nil {
		slog.Warn("failed to record last login", "user_id", u.ID().String(), "error", err.Error())
	}

	return &LoginResult{
		Token: token,
		User: queries.AuthorizedUserView{
			ID:       u.ID(),
			Email:    u.Email(),
			Role:     u.Role().String(),
			IsActive: u.IsActive(),
		},
	}, nil
}
