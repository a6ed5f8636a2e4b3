// Package engine implements the synchronization engine: it owns the
// authoritative in-memory copies of users and reports, applies
// optimistic local mutations, mirrors them to the external store, and
// reconciles realtime change events.
//
// Local mutation requests and remote change events are messages into a
// single ordered inbox processed one at a time, so the collections
// have exactly one writer. Remote writes are fire-and-forget: a failed
// write surfaces as an ERROR notification to the acting user and the
// optimistic local state is kept as-is. This accepted inconsistency,
// and the last-writer-wins resolution of races between realtime events
// and local writes, are known limitations of the design.
package engine

import (
	"context"
	"log"
	"sync"

	"lapor/internal/model"
	"lapor/internal/notify"
	"lapor/internal/store"
)

// Mode is the load state of a collection. Once a collection goes
// offline it stays offline: every later mutation is local-only.
type Mode string

const (
	ModeOnline  Mode = "ONLINE"
	ModeOffline Mode = "OFFLINE"
)

const inboxSize = 64

// Engine is the application-state service. Construct once with New,
// call Start before use, and inject where needed.
type Engine struct {
	store store.Client
	notif *notify.Queue

	inbox chan func()
	stop  chan struct{}
	done  chan struct{}

	mu         sync.RWMutex
	users      []model.User
	reports    []model.Report
	userMode   Mode
	reportMode Mode
}

// New creates an engine over the given store client and notification queue.
func New(st store.Client, q *notify.Queue) *Engine {
	return &Engine{
		store:      st,
		notif:      q,
		inbox:      make(chan func(), inboxSize),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		userMode:   ModeOnline,
		reportMode: ModeOnline,
	}
}

// Start performs the initial bulk reads, subscribes to realtime
// changes, and starts the inbox loop. A failed or empty read switches
// the collection to offline mode seeded from the built-in fallback
// dataset; this is a silent degradation, not an error.
func (e *Engine) Start(ctx context.Context) error {
	users, err := e.store.SelectProfiles(ctx)
	if err != nil || len(users) == 0 {
		log.Printf("engine: profiles unavailable (err=%v, rows=%d), using fallback dataset", err, len(users))
		e.users = model.FallbackUsers()
		e.userMode = ModeOffline
	} else {
		e.users = users
	}

	reports, err := e.store.SelectReports(ctx)
	if err != nil || len(reports) == 0 {
		log.Printf("engine: reports unavailable (err=%v, rows=%d), using fallback dataset", err, len(reports))
		e.reports = model.FallbackReports()
		e.reportMode = ModeOffline
	} else {
		e.reports = reports
	}

	if e.userMode == ModeOnline {
		if err := e.store.SubscribeProfileChanges(ctx, e.enqueueProfileEvent); err != nil {
			log.Printf("engine: profile subscription unavailable: %v", err)
		}
	}
	if e.reportMode == ModeOnline {
		if err := e.store.SubscribeReportChanges(ctx, e.enqueueReportEvent); err != nil {
			log.Printf("engine: report subscription unavailable: %v", err)
		}
	}

	go e.loop()
	return nil
}

// Close stops the inbox loop. In-flight remote writes are not
// cancelled; there is no cancellation mechanism for them.
func (e *Engine) Close() {
	close(e.stop)
	<-e.done
}

func (e *Engine) loop() {
	defer close(e.done)
	for {
		select {
		case <-e.stop:
			return
		case msg := <-e.inbox:
			msg()
		}
	}
}

// do runs fn on the inbox loop and waits for it, so local mutations
// are applied synchronously in call order before any remote round trip.
func (e *Engine) do(fn func()) {
	applied := make(chan struct{})
	e.inbox <- func() {
		fn()
		close(applied)
	}
	<-applied
}

// post runs fn on the inbox loop without waiting. Realtime events use
// this path.
func (e *Engine) post(fn func()) {
	select {
	case e.inbox <- fn:
	case <-e.stop:
	}
}

// Users returns a copy of the current users snapshot.
func (e *Engine) Users() []model.User {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.User, len(e.users))
	copy(out, e.users)
	return out
}

// Reports returns a copy of the current reports snapshot, newest first.
func (e *Engine) Reports() []model.Report {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.Report, len(e.reports))
	copy(out, e.reports)
	return out
}

// UserByID returns the user with the given id, if present.
func (e *Engine) UserByID(id string) (model.User, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, u := range e.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// ReportByID returns the report with the given id, if present.
func (e *Engine) ReportByID(id string) (model.Report, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, r := range e.reports {
		if r.ID == id {
			return r, true
		}
	}
	return model.Report{}, false
}

// Modes returns the load state of the users and reports collections.
func (e *Engine) Modes() (users, reports Mode) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.userMode, e.reportMode
}

func (e *Engine) admins() []model.User {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []model.User
	for _, u := range e.users {
		if u.Role == model.RoleAdmin {
			out = append(out, u)
		}
	}
	return out
}
