package session

import (
	"sync"
	"time"
)

// Scheduler is a one-shot timer that the controller re-arms after every
// tick with the current level interval.
type Scheduler interface {
	Arm(d time.Duration)
	Stop()
	C() <-chan time.Time
}

// TimerScheduler backs Scheduler with a time.Timer.
type TimerScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
	c     chan time.Time
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{c: make(chan time.Time, 1)}
}

// Arm replaces any pending fire with one after d.
func (s *TimerScheduler) Arm(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	gen := s.gen
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// stale fire from before a Stop or re-Arm
		if gen != s.gen {
			return
		}
		select {
		case s.c <- time.Now():
		default:
		}
	})
}

// Stop cancels the pending fire and drops one that was already delivered
// but not yet received.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *TimerScheduler) stopLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	select {
	case <-s.c:
	default:
	}
}

func (s *TimerScheduler) C() <-chan time.Time {
	return s.c
}
