package readstore

import (
	"context"
	"errors"
	"time"

	"lodgekeeper/internal/domain/user"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserReadStore struct {
	q db.Querier
}

func NewUserReadStore(q db.Querier) *UserReadStore {
	return &UserReadStore{q: q}
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := s.q.QueryRow(ctx, `
		SELECT u.id, u.email, u.password_hash, u.role, u.is_active, u.last_login_at, u.created_at
		FROM users u
		WHERE u.email = $1`, email)

	return scanUserEntity(row)
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row := s.q.QueryRow(ctx, `
		SELECT u.id, u.email, u.role, u.is_active
		FROM users u
		WHERE u.id = $1`, id)

	var v queries.AuthorizedUserView
	if err := row.Scan(&v.ID, &v.Email, &v.Role, &v.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &v, nil
}

func scanUserEntity(row rowScanner) (*user.User, error) {
	var (
		id                        uuid.UUID
		email, passwordHash, role string
		active                    bool
		lastLoginAt               *time.Time
		createdAt                 time.Time
	)
	if err := row.Scan(&id, &email, &passwordHash, &role, &active, &lastLoginAt, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load user", err)
	}

	parsedRole, err := user.ParseRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has unknown role", err)
	}
	return user.Reconstruct(id, email, passwordHash, parsedRole, active, lastLoginAt, createdAt), nil
}
