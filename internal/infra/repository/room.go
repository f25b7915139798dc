package repository

import (
	"context"

	"lodgekeeper/internal/domain/room"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/infra/tx"
)

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

func (r *RoomRepository) Create(ctx context.Context, q db.Querier, rm *room.Room) error {
	_, err := q.Exec(ctx, `
		INSERT INTO rooms (id, room_number, room_type, is_active)
		VALUES ($1, $2, $3, $4)`,
		rm.ID(), rm.Number(), rm.Type(), rm.IsActive(),
	)
	if err != nil {
		if kind, ok := tx.ClassifyPgError(err); ok {
			return infra.WrapRepoErr("failed to create room", err, kind)
		}
		return infra.WrapRepoErr("failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, q db.Querier, rm *room.Room) error {
	tag, err := q.Exec(ctx, `
		UPDATE rooms
		SET room_number = $2, room_type = $3, is_active = $4, updated_at = now()
		WHERE id = $1`,
		rm.ID(), rm.Number(), rm.Type(), rm.IsActive(),
	)
	if err != nil {
		if kind, ok := tx.ClassifyPgError(err); ok {
			return infra.WrapRepoErr("failed to update room", err, kind)
		}
		return infra.WrapRepoErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("room not found", infra.KindNotFound)
	}
	return nil
}
