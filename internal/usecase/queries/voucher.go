package queries

import (
	"context"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrVoucherNotFound = errs.New("voucher not found")

type VoucherQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VoucherView, error)
	List(ctx context.Context, pendingOnly bool, limit, offset int) ([]*VoucherView, error)
}

type voucherQueriesImpl struct {
	readStore VoucherReadStore
}

func NewVoucherQueries(readStore VoucherReadStore) VoucherQueries {
	return &voucherQueriesImpl{readStore: readStore}
}

func (q *voucherQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VoucherView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrVoucherNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *voucherQueriesImpl) List(ctx context.Context, pendingOnly bool, limit, offset int) ([]*VoucherView, error) {
	return q.readStore.List(ctx, pendingOnly, limit, offset)
}
