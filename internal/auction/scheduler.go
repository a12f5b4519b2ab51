package auction

import (
	"sync"
	"time"

	"gitlab.com/distributed_lab/logan/v3"
)

// CloseFunc is what the scheduler fires at auction end.
type CloseFunc func(orderID int64, start time.Time, duration int64, curve Curve) (*CloseResult, error)

// Scheduler arms exactly one deferred close per order. Close failures are
// logged and dropped, there is no automatic retry.
type Scheduler struct {
	log   *logan.Entry
	close CloseFunc

	mu     sync.Mutex
	timers map[int64]*time.Timer
}

func NewScheduler(log *logan.Entry, close CloseFunc) *Scheduler {
	return &Scheduler{
		log:    log.WithField("component", "scheduler"),
		close:  close,
		timers: make(map[int64]*time.Timer),
	}
}

// Schedule arms a one-shot close at start+duration, replacing any timer
// already armed for the order. A schedule whose end has already passed
// closes synchronously.
func (s *Scheduler) Schedule(orderID int64, start time.Time, duration int64, curve Curve) {
	delay := time.Until(start.Add(time.Duration(duration) * time.Second))
	if delay <= 0 {
		if _, err := s.close(orderID, start, duration, curve); err != nil {
			s.log.WithError(err).WithField("order_id", orderID).Error("failed to close overdue auction")
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[orderID]; ok {
		t.Stop()
	}

	s.timers[orderID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, orderID)
		s.mu.Unlock()

		if _, err := s.close(orderID, start, duration, curve); err != nil {
			s.log.WithError(err).WithField("order_id", orderID).Error("failed to close auction")
		}
	})
}

// Cancel drops the pending timer for the order if one exists.
func (s *Scheduler) Cancel(orderID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[orderID]; ok {
		t.Stop()
		delete(s.timers, orderID)
	}
}
