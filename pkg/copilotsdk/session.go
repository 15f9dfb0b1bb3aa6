package copilotsdk

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// State is where a Session sits in its lifecycle.
type State int

const (
	LoggedOut State = iota
	Active
	Expired
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Expired:
		return "expired"
	default:
		return "logged_out"
	}
}

const (
	// DefaultIdleTimeout is how long a session survives without activity.
	DefaultIdleTimeout = time.Hour

	// DefaultCheckInterval is how often a Monitor looks for expiry.
	DefaultCheckInterval = time.Minute

	// SignInPath is where a cleared session sends the caller.
	SignInPath = "/sign-in"

	// LandingPath is where a logged in caller is sent from public-only pages.
	LandingPath = "/clients"

	// SessionExpiredNotice is shown when the monitor finds an idle session.
	SessionExpiredNotice = "Your session has expired due to inactivity. Please log in again."
)

// Navigator receives redirects.
type Navigator interface {
	Redirect(to string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(to string)

func (f NavigatorFunc) Redirect(to string) { f(to) }

// Notifier shows a message to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// SessionOptions configures NewSession. Every field is optional.
type SessionOptions struct {
	Storage     Storage       // defaults to a MemoryStorage
	IdleTimeout time.Duration // defaults to DefaultIdleTimeout
	Now         func() time.Time
	Navigator   Navigator
	Notifier    Notifier
	Logger      *slog.Logger
}

// Session tracks whether the caller is logged in and for how long it has
// been idle. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	storage Storage
	idle    time.Duration
	now     func() time.Time
	nav     Navigator
	notify  Notifier
	logger  *slog.Logger

	monitor *Monitor
}

// NewSession returns a Session over opts.Storage. An existing snapshot in the
// storage is picked up as is; an idle one reads as Expired.
func NewSession(opts SessionOptions) *Session {
	s := &Session{
		storage: opts.Storage,
		idle:    opts.IdleTimeout,
		now:     opts.Now,
		nav:     opts.Navigator,
		notify:  opts.Notifier,
		logger:  opts.Logger,
	}
	if s.storage == nil {
		s.storage = NewMemoryStorage()
	}
	if s.idle <= 0 {
		s.idle = DefaultIdleTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.nav == nil {
		s.nav = NavigatorFunc(func(string) {})
	}
	if s.notify == nil {
		s.notify = NotifierFunc(func(string) {})
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// State reports the current lifecycle state without changing it.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateOf(s.load())
}

// Token returns the stored access token, empty when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Token
}

// User returns the logged in account, nil when logged out.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().User
}

// LastActivity returns the last recorded activity, zero when logged out.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().LastActivity
}

// Begin stores a freshly issued token and starts the idle clock.
func (s *Session) Begin(token string, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storage.Save(Snapshot{
		Token:        token,
		LastActivity: s.now(),
		User:         user,
	})
}

// Touch records user activity. It has no effect unless the session is
// Active, so an idle session cannot be revived by activity alone.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.load()
	if s.stateOf(snap) != Active {
		return
	}
	snap.LastActivity = s.now()
	s.save(snap)
}

// RequireAuth guards a protected context. An inactive session is cleared and
// redirected to sign-in, and false is returned. An active one has its
// activity refreshed.
func (s *Session) RequireAuth() bool {
	s.mu.Lock()
	snap := s.load()
	if s.stateOf(snap) == Active {
		snap.LastActivity = s.now()
		s.save(snap)
		s.mu.Unlock()
		return true
	}
	m := s.clearLocked()
	s.mu.Unlock()

	s.finish(m, nil)
	return false
}

// RedirectIfLoggedIn guards a public-only context such as the sign-in page.
// It reports whether the caller was sent to LandingPath.
func (s *Session) RedirectIfLoggedIn() bool {
	if s.State() != Active {
		return false
	}
	s.nav.Redirect(LandingPath)
	return true
}

// Logout clears the session, stops its monitor and redirects to sign-in.
func (s *Session) Logout() {
	s.end(nil)
}

// HandleStatus feeds the status of an authenticated response back into the
// session: 401 ends it at once, any 2xx counts as activity.
func (s *Session) HandleStatus(code int) {
	switch {
	case code == http.StatusUnauthorized:
		s.logger.Info("session rejected by server, logging out")
		s.Logout()
	case code >= 200 && code < 300:
		s.Touch()
	}
}

func (s *Session) end(caller *Monitor) {
	s.mu.Lock()
	m := s.clearLocked()
	s.mu.Unlock()

	s.finish(m, caller)
}

// expireIdle ends the session if it holds a token that has gone idle, the
// only condition the monitor acts on. The check and the clear happen under
// one hold of s.mu, so a Begin racing with it is never wiped.
func (s *Session) expireIdle(caller *Monitor) bool {
	s.mu.Lock()
	if s.stateOf(s.load()) != Expired {
		s.mu.Unlock()
		return false
	}
	m := s.clearLocked()
	s.mu.Unlock()

	s.logger.Info("session expired due to inactivity")
	s.notify.Notify(SessionExpiredNotice)
	s.finish(m, caller)
	return true
}

// clearLocked must be called with s.mu held. It wipes storage and detaches
// the monitor, which the caller hands to finish once s.mu is released.
func (s *Session) clearLocked() *Monitor {
	m := s.monitor
	s.monitor = nil
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("failed to clear session", "error", err)
	}
	return m
}

// finish stops m and redirects to sign-in. caller is the monitor ending the
// session from its own goroutine, which must not wait for itself.
func (s *Session) finish(m, caller *Monitor) {
	if m != nil {
		if m == caller {
			m.signal()
		} else {
			m.Stop()
		}
	}
	s.nav.Redirect(SignInPath)
}

func (s *Session) stateOf(snap Snapshot) State {
	if snap.Token == "" {
		return LoggedOut
	}
	if snap.LastActivity.IsZero() || s.now().Sub(snap.LastActivity) > s.idle {
		return Expired
	}
	return Active
}

// load must be called with s.mu held. Unreadable storage reads as logged out.
func (s *Session) load() Snapshot {
	snap, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("failed to load session", "error", err)
		return Snapshot{}
	}
	return snap
}

// save must be called with s.mu held.
func (s *Session) save(snap Snapshot) {
	if err := s.storage.Save(snap); err != nil {
		s.logger.Warn("failed to save session", "error", err)
	}
}
