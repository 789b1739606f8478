package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Subscriber is a connected observer of the play queue (a guest's browser or
// the host screen). Updates are pushed through a buffered channel; a slow
// consumer loses intermediate snapshots, never blocks a publisher. Mutex
// serializes EnqueueUpdate against Close so a publisher holding a stale
// reference can never send on a closed channel.
type Subscriber struct {
	ID       string
	JoinedAt time.Time
	Mutex    sync.Mutex
	Socket   *websocket.Conn
	Events   chan QueueUpdate
	closed   bool
}

func NewSubscriber() *Subscriber {
	return &Subscriber{
		ID:       uuid.New().String(),
		JoinedAt: time.Now().UTC(),
		Events:   make(chan QueueUpdate, 16),
	}
}

// EnqueueUpdate offers an update without blocking. Reports false when the
// buffer is full or the subscriber has been closed.
func (s *Subscriber) EnqueueUpdate(update QueueUpdate) bool {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()

	if s.closed {
		return false
	}
	select {
	case s.Events <- update:
		return true
	default:
		return false
	}
}

// Close shuts the event channel exactly once. Idempotent.
func (s *Subscriber) Close() {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.Events)
}
