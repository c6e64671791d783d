package booking

import "time"

// Status は予約の状態を表す
type Status string

const (
	StatusBooked   Status = "booked"
	StatusCanceled Status = "canceled"
)

// IsValid は既知の状態かを返す
func (s Status) IsValid() bool {
	return s == StatusBooked || s == StatusCanceled
}

// Booking は予約エンティティを表す
type Booking struct {
	ID        string
	UserID    string
	EventID   string
	Seats     int
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking は新しい予約を作成する
func NewBooking(userID, eventID string, seats int, status Status) *Booking {
	now := time.Now()
	return &Booking{
		UserID:    userID,
		EventID:   eventID,
		Seats:     seats,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HoldsSeats は定員を消費する予約かを返す
func (b *Booking) HoldsSeats() bool {
	return b.Status == StatusBooked
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.UserID == "" {
		return ErrUserIDRequired
	}
	if b.EventID == "" {
		return ErrEventIDRequired
	}
	if b.Seats < 1 {
		return ErrInvalidSeats
	}
	if !b.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}
