//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"lodgekeeper/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	t.Parallel()

	stay := mustStay(t, date(2025, 7, 1), date(2025, 7, 3))

	tests := []struct {
		name         string
		customerName string
		voucher      string
		notes        string
		wantErr      error
	}{
		{
			name:         "valid",
			customerName: "Jane Banda",
			voucher:      "VCH-001",
			notes:        "late arrival",
		},
		{
			name:         "trims whitespace",
			customerName: "  Jane Banda  ",
			voucher:      " VCH-001 ",
			notes:        "  late arrival ",
		},
		{
			name:         "empty customer name",
			customerName: "",
			wantErr:      reservation.ErrEmptyCustomerName,
		},
		{
			name:         "whitespace-only customer name",
			customerName: "   ",
			wantErr:      reservation.ErrEmptyCustomerName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rsv, err := reservation.NewReservation(uuid.New(), tt.customerName, tt.voucher, stay, tt.notes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Jane Banda", rsv.CustomerName())
			assert.Equal(t, "VCH-001", rsv.VoucherNumber())
			assert.Equal(t, "late arrival", rsv.Notes())
			assert.True(t, rsv.IsConfirmed())
			assert.NotEqual(t, uuid.Nil, rsv.ID())
		})
	}
}

func TestReservation_Cancel(t *testing.T) {
	t.Parallel()

	stay := mustStay(t, date(2025, 7, 1), date(2025, 7, 3))
	rsv, err := reservation.NewReservation(uuid.New(), "Jane Banda", "", stay, "")
	require.NoError(t, err)

	rsv.Cancel()
	assert.True(t, rsv.IsCancelled())
	assert.False(t, rsv.IsConfirmed())

	// no-op on second cancel
	rsv.Cancel()
	assert.True(t, rsv.IsCancelled())
}

func TestReservation_Reschedule(t *testing.T) {
	t.Parallel()

	stay := mustStay(t, date(2025, 7, 1), date(2025, 7, 3))
	rsv, err := reservation.NewReservation(uuid.New(), "Jane Banda", "", stay, "")
	require.NoError(t, err)

	newRoom := uuid.New()
	newStay := mustStay(t, date(2025, 8, 10), date(2025, 8, 12))
	rsv.Reschedule(newRoom, newStay)

	assert.Equal(t, newRoom, rsv.RoomID())
	assert.Equal(t, newStay, rsv.Stay())
	assert.True(t, rsv.IsConfirmed(), "rescheduling must not change status")
}

func TestReservation_Revise(t *testing.T) {
	t.Parallel()

	stay := mustStay(t, date(2025, 7, 1), date(2025, 7, 3))
	rsv, err := reservation.NewReservation(uuid.New(), "Jane Banda", "VCH-001", stay, "old note")
	require.NoError(t, err)

	require.NoError(t, rsv.Revise("  John Phiri ", "VCH-002", "new note"))
	assert.Equal(t, "John Phiri", rsv.CustomerName())
	assert.Equal(t, "VCH-002", rsv.VoucherNumber())
	assert.Equal(t, "new note", rsv.Notes())

	err = rsv.Revise("  ", "VCH-003", "")
	assert.ErrorIs(t, err, reservation.ErrEmptyCustomerName)
	assert.Equal(t, "John Phiri", rsv.CustomerName(), "failed revise must leave fields untouched")
}

func TestReconstruct(t *testing.T) {
	t.Parallel()

	id, roomID := uuid.New(), uuid.New()
	stay := mustStay(t, date(2025, 7, 1), date(2025, 7, 3))
	created := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	rsv := reservation.Reconstruct(id, roomID, "Jane Banda", "VCH-001", stay, reservation.StatusCancelled, "note", created, updated)

	assert.Equal(t, id, rsv.ID())
	assert.Equal(t, roomID, rsv.RoomID())
	assert.True(t, rsv.IsCancelled())
	assert.Equal(t, created, rsv.CreatedAt())
	assert.Equal(t, updated, rsv.UpdatedAt())
}
