package notify

import (
	"sync"
	"time"

	"lapor/internal/model"
)

// DefaultDisplayWindow is how long a delivered notification stays
// visible before it is auto-marked read.
const DefaultDisplayWindow = 5 * time.Second

// Presenter owns the display lifecycle of unread notifications: each
// one is delivered at most once, then auto-marked read after the
// display window elapses or earlier via explicit dismissal.
type Presenter struct {
	queue  *Queue
	window time.Duration

	mu        sync.Mutex
	delivered map[string]bool
	timers    map[string]*time.Timer
}

// NewPresenter creates a presenter over q. A non-positive window falls
// back to DefaultDisplayWindow.
func NewPresenter(q *Queue, window time.Duration) *Presenter {
	if window <= 0 {
		window = DefaultDisplayWindow
	}
	return &Presenter{
		queue:     q,
		window:    window,
		delivered: make(map[string]bool),
		timers:    make(map[string]*time.Timer),
	}
}

// Deliver returns the unread notifications for userID that have not
// been shown yet, arming the auto-read timer for each.
func (p *Presenter) Deliver(userID string) []model.Notification {
	unread := p.queue.UnreadFor(userID)

	p.mu.Lock()
	defer p.mu.Unlock()
	var fresh []model.Notification
	for _, n := range unread {
		if p.delivered[n.ID] {
			continue
		}
		p.delivered[n.ID] = true
		id := n.ID
		p.timers[id] = time.AfterFunc(p.window, func() {
			p.expire(id)
		})
		fresh = append(fresh, n)
	}
	return fresh
}

// Dismiss marks id read immediately and cancels its auto-read timer.
func (p *Presenter) Dismiss(id string) {
	p.mu.Lock()
	if t, ok := p.timers[id]; ok {
		t.Stop()
		delete(p.timers, id)
	}
	p.mu.Unlock()
	p.queue.MarkRead(id)
}

// Stop cancels every pending auto-read timer.
func (p *Presenter) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
}

func (p *Presenter) expire(id string) {
	p.mu.Lock()
	delete(p.timers, id)
	p.mu.Unlock()
	p.queue.MarkRead(id)
}
