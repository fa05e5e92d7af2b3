package availability

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Defaults bounding how long and for how many sessions the displayed key is remembered.
const (
	DefaultDisplayTTL  = 30 * time.Minute
	DefaultMaxSessions = 10000
)

// ErrSuperseded is returned when a newer availability request for the same session has started.
var ErrSuperseded = errors.New("availability request superseded")

// Key identifies an availability request. Only a response for the session's newest key may be
// shown.
type Key struct {
	Session string
	Date    string
	Court   string
}

// Ticket is held by an in-flight request until it commits.
type Ticket struct {
	Key Key
	gen uint64
}

type inflight struct {
	gen    uint64
	key    Key
	cancel context.CancelFunc
}

type shown struct {
	key Key
	at  time.Time
}

// Tracker discards stale availability responses. Starting a request cancels the session's
// previous one; committing fails for any ticket that is no longer the newest.
//
// A displayed key is forgotten once it is older than TTL. At most MaxSessions sessions are
// remembered; committing for a new session past that evicts the oldest one.
type Tracker struct {
	TTL         time.Duration
	MaxSessions int
	Now         func() time.Time

	mu        sync.Mutex
	gen       uint64
	inflight  map[string]inflight
	displayed map[string]shown
	lastSweep time.Time
}

// NewTracker returns an empty Tracker with the default bounds.
func NewTracker() *Tracker {
	return &Tracker{
		TTL:         DefaultDisplayTTL,
		MaxSessions: DefaultMaxSessions,
		Now:         time.Now,
		inflight:    make(map[string]inflight),
		displayed:   make(map[string]shown),
	}
}

// Begin registers a request for key and returns a context cancelled when a newer request for
// the same session begins.
func (t *Tracker) Begin(parent context.Context, key Key) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.inflight[key.Session]; ok {
		prev.cancel()
	}
	t.gen++
	t.inflight[key.Session] = inflight{gen: t.gen, key: key, cancel: cancel}
	return ctx, Ticket{Key: key, gen: t.gen}
}

// Commit marks the ticket's response as displayed. It returns ErrSuperseded when a newer
// request for the session has begun since.
func (t *Tracker) Commit(tk Ticket) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.inflight[tk.Key.Session]
	if !ok || cur.gen != tk.gen {
		return ErrSuperseded
	}
	cur.cancel()
	delete(t.inflight, tk.Key.Session)

	now := t.now()
	t.sweep(now)
	if _, ok := t.displayed[tk.Key.Session]; !ok && t.MaxSessions > 0 && len(t.displayed) >= t.MaxSessions {
		t.evictOldest()
	}
	t.displayed[tk.Key.Session] = shown{key: tk.Key, at: now}
	return nil
}

// Abandon releases a ticket whose request failed, without displaying anything.
func (t *Tracker) Abandon(tk Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur, ok := t.inflight[tk.Key.Session]; ok && cur.gen == tk.gen {
		cur.cancel()
		delete(t.inflight, tk.Key.Session)
	}
}

// Displayed returns the key whose response the session is currently showing.
func (t *Tracker) Displayed(session string) (Key, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, ok := t.displayed[session]
	if !ok || t.expired(d, t.now()) {
		return Key{}, false
	}
	return d.key, true
}

// Sessions returns how many sessions have a displayed key remembered.
func (t *Tracker) Sessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.displayed)
}

func (t *Tracker) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

func (t *Tracker) expired(d shown, now time.Time) bool {
	return t.TTL > 0 && now.Sub(d.at) >= t.TTL
}

// sweep drops expired entries, at most once per quarter TTL.
func (t *Tracker) sweep(now time.Time) {
	if t.TTL <= 0 || now.Sub(t.lastSweep) < t.TTL/4 {
		return
	}
	t.lastSweep = now
	for session, d := range t.displayed {
		if t.expired(d, now) {
			delete(t.displayed, session)
		}
	}
}

func (t *Tracker) evictOldest() {
	var oldest string
	var at time.Time
	found := false
	for session, d := range t.displayed {
		if !found || d.at.Before(at) {
			oldest, at, found = session, d.at, true
		}
	}
	if found {
		delete(t.displayed, oldest)
	}
}
