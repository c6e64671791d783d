package redis

import (
	"context"
	"time"

	"github.com/sanosuguru/go-event-management-api/internal/domain/booking"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/metrics"
)

const (
	bookingLockTTL        = 5 * time.Second
	bookingLockRetries    = 20
	bookingLockRetryDelay = 50 * time.Millisecond
)

// BookingLocker はイベント単位の予約ロックを Redis で提供する
type BookingLocker struct {
	manager *LockManager
	metrics *metrics.Metrics
}

// NewBookingLocker は BookingLocker を作成する。m が nil の場合は計測しない
func NewBookingLocker(manager *LockManager, m *metrics.Metrics) *BookingLocker {
	return &BookingLocker{manager: manager, metrics: m}
}

// Lock はイベントの予約ロックを取得する
func (l *BookingLocker) Lock(ctx context.Context, eventID string) (booking.Lock, error) {
	started := time.Now()
	lock, err := l.manager.AcquireLockWithRetry(ctx, "booking:event:"+eventID,
		bookingLockTTL, bookingLockRetries, bookingLockRetryDelay)
	l.metrics.ObserveLock("acquire", err == nil, started)
	if err != nil {
		return nil, err
	}
	return &measuredLock{lock: lock, metrics: l.metrics}, nil
}

type measuredLock struct {
	lock    *DistributedLock
	metrics *metrics.Metrics
}

func (m *measuredLock) Release(ctx context.Context) error {
	started := time.Now()
	err := m.lock.Release(ctx)
	m.metrics.ObserveLock("release", err == nil, started)
	return err
}

var _ booking.Locker = (*BookingLocker)(nil)
