package repository

import (
	"context"
	"time"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, q db.Querier, userID uuid.UUID, at time.Time) error {
	tag, err := q.Exec(ctx, `
		UPDATE users
		SET last_login_at = $2, updated_at = now()
		WHERE id = $1`,
		userID, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("user not found", infra.KindNotFound)
	}
	return nil
}
