package commands

import (
	"context"

	"lodgekeeper/internal/domain/room"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/pkg/errs"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrRoomNumberTaken = errs.New("room number already exists")

type RoomCommands interface {
	CreateRoom(ctx context.Context, number, roomType string) (*queries.RoomView, error)
	// DeactivateRoom removes a room from future allocation. Existing
	// reservations are untouched.
	DeactivateRoom(ctx context.Context, id uuid.UUID) error
}

type roomCommandsImpl struct {
	roomRepo  RoomRepository
	roomReads RoomReads
	runner    TxRunner
}

func NewRoomCommands(roomRepo RoomRepository, roomReads RoomReads, runner TxRunner) RoomCommands {
	return &roomCommandsImpl{roomRepo: roomRepo, roomReads: roomReads, runner: runner}
}

func (c *roomCommandsImpl) CreateRoom(ctx context.Context, number, roomType string) (*queries.RoomView, error) {
	rm, err := room.NewRoom(number, roomType)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.runner.Within(ctx, func(ctx context.Context, q db.Querier) error {
		return c.roomRepo.Create(ctx, q, rm)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrRoomNumberTaken)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := c.roomReads.FindByID(ctx, rm.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *roomCommandsImpl) DeactivateRoom(ctx context.Context, id uuid.UUID) error {
	rm, err := c.roomReads.FindEntityByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrRoomNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !rm.IsActive() {
		return nil
	}

	rm.Deactivate()
	err = c.runner.Within(ctx, func(ctx context.Context, q db.Querier) error {
		return c.roomRepo.Update(ctx, q, rm)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
