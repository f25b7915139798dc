//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Seed helpers insert rows directly, bypassing the usecase layer, so tests
// can arrange arbitrary database states.

func InsertUser(t *testing.T, db DBLike, email, password, role string) uuid.UUID {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err, "failed to hash test password")

	var id uuid.UUID
	err = db.QueryRow(context.Background(),
		`INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3) RETURNING id`,
		email, string(hash), role,
	).Scan(&id)
	require.NoError(t, err, "failed to insert test user")
	return id
}

func InsertRoom(t *testing.T, db DBLike, number, roomType string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		`INSERT INTO rooms (room_number, room_type) VALUES ($1, $2) RETURNING id`,
		number, roomType,
	).Scan(&id)
	require.NoError(t, err, "failed to insert test room")
	return id
}

func DeactivateRoom(t *testing.T, db DBLike, roomID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`UPDATE rooms SET is_active = FALSE WHERE id = $1`, roomID)
	require.NoError(t, err, "failed to deactivate test room")
}

func InsertReservation(t *testing.T, db DBLike, roomID uuid.UUID, customerName string, checkIn, checkOut time.Time, status string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		`INSERT INTO reservations (room_id, customer_name, check_in, check_out, status)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		roomID, customerName, checkIn, checkOut, status,
	).Scan(&id)
	require.NoError(t, err, "failed to insert test reservation")
	return id
}

func InsertVoucher(t *testing.T, db DBLike, customerName, voucherNumber string, checkIn, checkOut *time.Time) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		`INSERT INTO vouchers (customer_name, voucher_number, check_in, check_out, raw_text)
		 VALUES ($1, $2, $3, $4, '') RETURNING id`,
		customerName, voucherNumber, checkIn, checkOut,
	).Scan(&id)
	require.NoError(t, err, "failed to insert test voucher")
	return id
}

func CountReservations(t *testing.T, db DBLike, roomID uuid.UUID, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM reservations WHERE room_id = $1 AND status = $2`,
		roomID, status,
	).Scan(&n)
	require.NoError(t, err, "failed to count reservations")
	return n
}
