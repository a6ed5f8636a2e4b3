// Package notify holds per-user transient messages produced as side
// effects of synchronization operations. The queue lives in memory
// only; notifications do not survive a restart.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"lapor/internal/model"
)

// Queue is an in-memory, newest-first notification list with read state.
type Queue struct {
	mu    sync.Mutex
	items []model.Notification
}

// NewQueue creates an empty notification queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a new unread notification for targetUserID and returns it.
func (q *Queue) Push(targetUserID, message string, kind model.NotificationKind) model.Notification {
	n := model.Notification{
		ID:        "n" + uuid.NewString(),
		UserID:    targetUserID,
		Message:   message,
		Kind:      kind,
		Read:      false,
		CreatedAt: time.Now(),
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append([]model.Notification{n}, q.items...)
	return n
}

// MarkRead sets the read flag for id. Idempotent; unknown ids are ignored.
func (q *Queue) MarkRead(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		if q.items[i].ID == id {
			q.items[i].Read = true
			return
		}
	}
}

// UnreadFor returns the unread notifications targeted at userID,
// newest first.
func (q *Queue) UnreadFor(userID string) []model.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []model.Notification
	for _, n := range q.items {
		if n.UserID == userID && !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// For returns every notification targeted at userID, newest first.
func (q *Queue) For(userID string) []model.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []model.Notification
	for _, n := range q.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
