package availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_ToggleKeepsStartOrder(t *testing.T) {
	sel := NewSelection(Synthesize(dayNightCourt(60)))

	for _, l := range []string{"18:00 - 19:00", "09:00 - 10:00", "06:00 - 07:00"} {
		on, err := sel.Toggle(l)
		require.NoError(t, err)
		assert.True(t, on)
	}
	assert.Equal(t, []string{"06:00 - 07:00", "09:00 - 10:00", "18:00 - 19:00"}, sel.Labels())
	assert.Equal(t, 1800.0, sel.Total())

	assert.True(t, sel.Has("09:00 - 10:00"))
	on, err := sel.Toggle("09:00 - 10:00")
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, sel.Has("09:00 - 10:00"))
	assert.Equal(t, []string{"06:00 - 07:00", "18:00 - 19:00"}, sel.Labels())
	assert.Equal(t, 2, sel.Len())

	sel.Clear()
	assert.Equal(t, 0, sel.Len())
	assert.Zero(t, sel.Total())
}

func TestSelection_UnknownLabel(t *testing.T) {
	sel := NewSelection(Synthesize(dayNightCourt(60)))

	_, err := sel.Toggle("03:00 - 04:00")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestTracker_NewerRequestSupersedesOlder(t *testing.T) {
	tr := NewTracker()
	first := Key{Session: "s1", Date: "2025-03-10", Court: "c1"}
	second := Key{Session: "s1", Date: "2025-03-11", Court: "c1"}

	ctx1, t1 := tr.Begin(context.Background(), first)
	_, t2 := tr.Begin(context.Background(), second)

	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, tr.Commit(t2))
	assert.ErrorIs(t, tr.Commit(t1), ErrSuperseded)

	shown, ok := tr.Displayed("s1")
	require.True(t, ok)
	assert.Equal(t, second, shown)
}

func TestTracker_SessionsAreIndependent(t *testing.T) {
	tr := NewTracker()

	ctxA, a := tr.Begin(context.Background(), Key{Session: "a", Date: "2025-03-10", Court: "c1"})
	_, b := tr.Begin(context.Background(), Key{Session: "b", Date: "2025-03-10", Court: "c1"})

	assert.NoError(t, ctxA.Err())
	assert.NoError(t, tr.Commit(a))
	assert.NoError(t, tr.Commit(b))
}

func TestTracker_AbandonDoesNotDisplay(t *testing.T) {
	tr := NewTracker()
	key := Key{Session: "s1", Date: "2025-03-10", Court: "c1"}

	ctx, tk := tr.Begin(context.Background(), key)
	tr.Abandon(tk)

	assert.Error(t, ctx.Err())
	_, ok := tr.Displayed("s1")
	assert.False(t, ok)
	assert.ErrorIs(t, tr.Commit(tk), ErrSuperseded)
}

func TestTracker_RemembersBoundedSessions(t *testing.T) {
	tr := NewTracker()
	tr.MaxSessions = 100
	now := time.Date(2030, 3, 10, 9, 30, 0, 0, time.UTC)
	tr.Now = func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}

	for i := 0; i < 5000; i++ {
		_, tk := tr.Begin(context.Background(), Key{Session: fmt.Sprintf("10.0.0.1:%d", 30000+i), Date: "2030-03-10", Court: "c1"})
		require.NoError(t, tr.Commit(tk))
	}

	assert.Equal(t, 100, tr.Sessions())
	_, ok := tr.Displayed("10.0.0.1:30000")
	assert.False(t, ok)
	_, ok = tr.Displayed("10.0.0.1:34999")
	assert.True(t, ok)
}

func TestTracker_DisplayedExpires(t *testing.T) {
	tr := NewTracker()
	tr.TTL = time.Minute
	now := time.Date(2030, 3, 10, 9, 30, 0, 0, time.UTC)
	tr.Now = func() time.Time { return now }

	_, tk := tr.Begin(context.Background(), Key{Session: "old", Date: "2030-03-10", Court: "c1"})
	require.NoError(t, tr.Commit(tk))
	_, ok := tr.Displayed("old")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = tr.Displayed("old")
	assert.False(t, ok)

	_, tk = tr.Begin(context.Background(), Key{Session: "new", Date: "2030-03-10", Court: "c1"})
	require.NoError(t, tr.Commit(tk))
	assert.Equal(t, 1, tr.Sessions())
}
