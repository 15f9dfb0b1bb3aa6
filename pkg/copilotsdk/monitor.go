package copilotsdk

import (
	"sync"
	"time"
)

// Monitor periodically checks a Session for idle expiry. When it finds one it
// shows SessionExpiredNotice, logs the session out and stops itself.
type Monitor struct {
	session  *Session
	interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once
}

// StartMonitor begins checking the session every interval (DefaultCheckInterval
// when zero or negative). A monitor already running on the session is stopped
// first; Logout stops the current one.
func (s *Session) StartMonitor(interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}

	m := &Monitor{
		session:  s,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	s.mu.Lock()
	prev := s.monitor
	s.monitor = m
	s.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}

	go m.run()
	s.logger.Debug("session monitor started", "interval", interval)
	return m
}

// Stop shuts the worker down and waits for it. Safe to call more than once.
func (m *Monitor) Stop() {
	m.signal()
	<-m.doneCh
}

// Done is closed once the worker has exited.
func (m *Monitor) Done() <-chan struct{} {
	return m.doneCh
}

func (m *Monitor) signal() {
	m.once.Do(func() { close(m.stopCh) })
}

func (m *Monitor) run() {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if m.check() {
				return
			}
		case <-m.stopCh:
			return
		}
	}
}

// check reports whether the session was expired and torn down.
func (m *Monitor) check() bool {
	return m.session.expireIdle(m)
}
