package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lapor/internal/model"
)

func TestPresenter_DeliverOnce(t *testing.T) {
	q := NewQueue()
	p := NewPresenter(q, time.Minute)
	defer p.Stop()

	n := q.Push("u1", "pesan baru", model.NotifInfo)

	first := p.Deliver("u1")
	require.Len(t, first, 1)
	assert.Equal(t, n.ID, first[0].ID)

	// A second poll before the window elapses returns nothing new.
	assert.Empty(t, p.Deliver("u1"))
}

func TestPresenter_AutoReadAfterWindow(t *testing.T) {
	q := NewQueue()
	p := NewPresenter(q, 20*time.Millisecond)
	defer p.Stop()

	q.Push("u1", "pesan sementara", model.NotifSuccess)
	require.Len(t, p.Deliver("u1"), 1)

	assert.Eventually(t, func() bool {
		return len(q.UnreadFor("u1")) == 0
	}, time.Second, 5*time.Millisecond, "delivered notification auto-marks read")

	all := q.For("u1")
	require.Len(t, all, 1)
	assert.True(t, all[0].Read)
}

func TestPresenter_DismissCancelsTimer(t *testing.T) {
	q := NewQueue()
	p := NewPresenter(q, time.Minute)
	defer p.Stop()

	n := q.Push("u1", "pesan", model.NotifWarning)
	require.Len(t, p.Deliver("u1"), 1)

	p.Dismiss(n.ID)
	assert.Empty(t, q.UnreadFor("u1"))

	p.mu.Lock()
	_, armed := p.timers[n.ID]
	p.mu.Unlock()
	assert.False(t, armed)
}

func TestPresenter_UsersDoNotShareDeliveries(t *testing.T) {
	q := NewQueue()
	p := NewPresenter(q, time.Minute)
	defer p.Stop()

	q.Push("u1", "hanya untuk u1", model.NotifInfo)
	q.Push("u2", "hanya untuk u2", model.NotifInfo)

	forU1 := p.Deliver("u1")
	require.Len(t, forU1, 1)
	assert.Equal(t, "hanya untuk u1", forU1[0].Message)

	forU2 := p.Deliver("u2")
	require.Len(t, forU2, 1)
	assert.Equal(t, "hanya untuk u2", forU2[0].Message)
}

func TestPresenter_DefaultWindow(t *testing.T) {
	p := NewPresenter(NewQueue(), 0)
	defer p.Stop()
	assert.Equal(t, DefaultDisplayWindow, p.window)
}
