package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	b := NewBooking("user-1", "event-1", 2, StatusBooked)

	assert.Equal(t, "user-1", b.UserID)
	assert.Equal(t, "event-1", b.EventID)
	assert.Equal(t, 2, b.Seats)
	assert.Equal(t, StatusBooked, b.Status)
	assert.True(t, b.HoldsSeats())
	assert.NotZero(t, b.CreatedAt)
}

func TestBooking_HoldsSeats(t *testing.T) {
	assert.True(t, NewBooking("u", "e", 1, StatusBooked).HoldsSeats())
	assert.False(t, NewBooking("u", "e", 1, StatusCanceled).HoldsSeats())
}

func TestBooking_Validate(t *testing.T) {
	tests := []struct {
		name        string
		booking     *Booking
		expectedErr error
	}{
		{"有効な予約", NewBooking("u", "e", 1, StatusBooked), nil},
		{"キャンセル状態でも作成可能", NewBooking("u", "e", 3, StatusCanceled), nil},
		{"ユーザーIDが空", NewBooking("", "e", 1, StatusBooked), ErrUserIDRequired},
		{"イベントIDが空", NewBooking("u", "", 1, StatusBooked), ErrEventIDRequired},
		{"座席数が0", NewBooking("u", "e", 0, StatusBooked), ErrInvalidSeats},
		{"座席数が負", NewBooking("u", "e", -2, StatusBooked), ErrInvalidSeats},
		{"未知の状態", NewBooking("u", "e", 1, "pending"), ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.booking.Validate()
			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
