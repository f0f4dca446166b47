package web

import (
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"github.com/davidroman0O/firm-catalog/catalog"
)

// sessions gives every browser its own controller, so each visitor mounts
// the catalog, waits for the load and adds products independently.
type sessions struct {
	mu     deadlock.Mutex
	ttl    time.Duration
	now    func() time.Time
	create func() *catalog.Controller
	byID   map[string]*session
}

type session struct {
	controller *catalog.Controller
	seen       time.Time
}

func newSessions(ttl time.Duration, create func() *catalog.Controller) *sessions {
	return &sessions{
		ttl:    ttl,
		now:    time.Now,
		create: create,
		byID:   make(map[string]*session),
	}
}

// get returns the controller for id, mounting a new one under a fresh id
// when id is unknown, expired or its controller was closed.
func (s *sessions) get(id string) (string, *catalog.Controller) {
	s.mu.Lock()

	now := s.now()
	var stale *catalog.Controller
	if sess, ok := s.byID[id]; ok {
		if now.Sub(sess.seen) < s.ttl && !sess.controller.Closed() {
			sess.seen = now
			s.mu.Unlock()
			return id, sess.controller
		}
		stale = sess.controller
		delete(s.byID, id)
	}

	id = uuid.NewString()
	sess := &session{controller: s.create(), seen: now}
	s.byID[id] = sess
	s.mu.Unlock()

	if stale != nil {
		stale.Close()
	}
	return id, sess.controller
}

// sweep closes and forgets sessions idle for longer than the ttl.
func (s *sessions) sweep() int {
	s.mu.Lock()
	now := s.now()
	var expired []*catalog.Controller
	for id, sess := range s.byID {
		if now.Sub(sess.seen) >= s.ttl {
			expired = append(expired, sess.controller)
			delete(s.byID, id)
		}
	}
	s.mu.Unlock()

	for _, c := range expired {
		c.Close()
	}
	return len(expired)
}

func (s *sessions) closeAll() {
	s.mu.Lock()
	all := s.byID
	s.byID = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.controller.Close()
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
