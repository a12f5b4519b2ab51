package auction

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/distributed_lab/logan/v3"
)

type closeRecorder struct {
	mu    sync.Mutex
	calls []int64
	done  chan int64
}

func newCloseRecorder() *closeRecorder {
	return &closeRecorder{done: make(chan int64, 8)}
}

func (c *closeRecorder) close(orderID int64, _ time.Time, _ int64, _ Curve) (*CloseResult, error) {
	c.mu.Lock()
	c.calls = append(c.calls, orderID)
	c.mu.Unlock()
	c.done <- orderID
	return &CloseResult{}, nil
}

func (c *closeRecorder) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func TestSchedulerClosesOverdueSynchronously(t *testing.T) {
	rec := newCloseRecorder()
	s := NewScheduler(logan.New(), rec.close)

	s.Schedule(7, time.Now().Add(-time.Hour), 60, nil)

	// no timer involved, the close already ran on this goroutine
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, int64(7), <-rec.done)
}

func TestSchedulerFiresAtDeadline(t *testing.T) {
	rec := newCloseRecorder()
	s := NewScheduler(logan.New(), rec.close)

	s.Schedule(7, time.Now().Add(-59*time.Second), 60, nil)

	select {
	case id := <-rec.done:
		assert.Equal(t, int64(7), id)
	case <-time.After(5 * time.Second):
		t.Fatal("timer never fired")
	}

	s.mu.Lock()
	_, armed := s.timers[7]
	s.mu.Unlock()
	assert.False(t, armed, "fired timer must remove itself")
}

func TestSchedulerReplacesTimer(t *testing.T) {
	rec := newCloseRecorder()
	s := NewScheduler(logan.New(), rec.close)

	start := time.Now()
	s.Schedule(7, start, 3600, nil)
	first := s.timers[7]
	s.Schedule(7, start, 7200, nil)

	require.NotNil(t, first)
	assert.NotSame(t, first, s.timers[7], "rescheduling must arm a fresh timer")
	assert.Len(t, s.timers, 1)
	assert.Equal(t, 0, rec.count())
}

func TestSchedulerCancel(t *testing.T) {
	rec := newCloseRecorder()
	s := NewScheduler(logan.New(), rec.close)

	s.Schedule(7, time.Now(), 3600, nil)
	s.Cancel(7)

	assert.Empty(t, s.timers)
	assert.Equal(t, 0, rec.count())

	// cancelling an unknown order is a no-op
	s.Cancel(8)
}
