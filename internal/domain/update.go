package domain

import "time"

// QueueUpdate is the event fanned out to websocket subscribers whenever the
// play queue is republished.
type QueueUpdate struct {
	Type        string       `json:"type"` // "queue"
	Entries     []QueueEntry `json:"entries"`
	PublishedAt time.Time    `json:"published_at"`
}

func NewQueueUpdate(entries []QueueEntry) QueueUpdate {
	return QueueUpdate{
		Type:        "queue",
		Entries:     entries,
		PublishedAt: time.Now().UTC(),
	}
}
