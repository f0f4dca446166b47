package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidroman0O/firm-catalog/catalog"
	"github.com/davidroman0O/firm-catalog/firm/firmtest"
)

func newTestSessions(t *testing.T) (*sessions, *time.Time, *firmtest.Clock) {
	t.Helper()

	clock := firmtest.NewClock()
	now := time.Unix(0, 0)
	s := newSessions(time.Minute, func() *catalog.Controller {
		return catalog.NewController(catalog.WithClock(clock))
	})
	s.now = func() time.Time { return now }
	t.Cleanup(s.closeAll)
	return s, &now, clock
}

func TestSessionReuse(t *testing.T) {
	s, now, _ := newTestSessions(t)

	id, first := s.get("")
	require.NotEmpty(t, id)

	*now = now.Add(30 * time.Second)
	same, again := s.get(id)
	assert.Equal(t, id, same)
	assert.Same(t, first, again)

	// Access refreshes the idle window.
	*now = now.Add(45 * time.Second)
	same, again = s.get(id)
	assert.Equal(t, id, same)
	assert.Same(t, first, again)
	assert.Equal(t, 1, s.len())
}

func TestSessionExpiresOnAccess(t *testing.T) {
	s, now, clock := newTestSessions(t)

	id, stale := s.get("")
	*now = now.Add(time.Minute)

	fresh, ctrl := s.get(id)
	assert.NotEqual(t, id, fresh)
	assert.NotSame(t, stale, ctrl)
	assert.True(t, stale.Closed())
	assert.False(t, ctrl.Closed())
	assert.Equal(t, 1, s.len())
	assert.Equal(t, 1, clock.Pending())
}

func TestSessionSweep(t *testing.T) {
	s, now, clock := newTestSessions(t)

	_, old := s.get("")
	*now = now.Add(40 * time.Second)
	recentID, recent := s.get("")
	assert.Equal(t, 2, clock.Pending())

	*now = now.Add(30 * time.Second)
	assert.Equal(t, 1, s.sweep())
	assert.True(t, old.Closed())
	assert.False(t, recent.Closed())
	assert.Equal(t, 1, clock.Pending())

	id, ctrl := s.get(recentID)
	assert.Equal(t, recentID, id)
	assert.Same(t, recent, ctrl)

	assert.Equal(t, 0, s.sweep())
}

func TestSessionCloseAll(t *testing.T) {
	s, _, clock := newTestSessions(t)

	_, a := s.get("")
	_, b := s.get("")
	s.closeAll()

	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
	assert.Equal(t, 0, s.len())
	assert.Equal(t, 0, clock.Pending())
}

func TestSessionReplacesClosedController(t *testing.T) {
	s, _, _ := newTestSessions(t)

	id, closed := s.get("")
	closed.Close()

	fresh, ctrl := s.get(id)
	assert.NotEqual(t, id, fresh)
	assert.NotSame(t, closed, ctrl)
	assert.False(t, ctrl.Closed())
	assert.Equal(t, 1, s.len())
}
