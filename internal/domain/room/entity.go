package room

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyNumber = errors.New("room number cannot be empty")
)

// Room is a bookable unit. Rooms are never deleted; deactivation removes a
// room from future allocation while its reservation history stays intact.
type Room struct {
	id        uuid.UUID
	number    string
	roomType  string
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewRoom(number, roomType string) (*Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrEmptyNumber
	}
	return &Room{
		id:       uuid.New(),
		number:   number,
		roomType: strings.TrimSpace(roomType),
		active:   true,
	}, nil
}

func Reconstruct(id uuid.UUID, number, roomType string, active bool, createdAt, updatedAt time.Time) *Room {
	return &Room{
		id:        id,
		number:    number,
		roomType:  roomType,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Number() string       { return r.number }
func (r *Room) Type() string         { return r.roomType }
func (r *Room) IsActive() bool       { return r.active }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }

func (r *Room) Deactivate() {
	r.active = false
}

// NumericLabel parses the room number as an integer for display ordering.
// Non-numeric labels sort after numeric ones, lexicographically among themselves.
func NumericLabel(number string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil {
		return 0, false
	}
	return n, true
}

// LessByNumber orders labels ascending by numeric value, so "2" comes
// before "10". Non-numeric labels sort after all numeric ones.
func LessByNumber(a, b string) bool {
	an, aok := NumericLabel(a)
	bn, bok := NumericLabel(b)
	switch {
	case aok && bok:
		return an < bn
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}
