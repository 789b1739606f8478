package domain

import (
	"sort"
	"time"
)

// Customer is one submitting party, identified by a stable opaque device id.
// FirstOrderTime is set on the party's first submission and never changes; it
// fixes the party's position inside a fairness round. StartRound is the round
// the party's next unplayed normal-lane request belongs to.
type Customer struct {
	ID             string
	Name           string
	FirstOrderTime time.Time
	StartRound     int
	Songs          []*SongRequest
}

func NewCustomer(id, name string, startRound int) *Customer {
	if startRound < 1 {
		startRound = 1
	}
	return &Customer{
		ID:             id,
		Name:           name,
		FirstOrderTime: time.Now().UTC(),
		StartRound:     startRound,
	}
}

// NormalLane returns the customer's non-priority requests in submission order.
func (c *Customer) NormalLane() []*SongRequest {
	lane := make([]*SongRequest, 0, len(c.Songs))
	for _, s := range c.Songs {
		if s == nil || s.IsPriority {
			continue
		}
		lane = append(lane, s)
	}
	sort.SliceStable(lane, func(i, j int) bool {
		if !lane[i].AddedAt.Equal(lane[j].AddedAt) {
			return lane[i].AddedAt.Before(lane[j].AddedAt)
		}
		return lane[i].ID < lane[j].ID
	})
	return lane
}

// PriorityLane returns the customer's priority requests, unordered.
func (c *Customer) PriorityLane() []*SongRequest {
	lane := make([]*SongRequest, 0, len(c.Songs))
	for _, s := range c.Songs {
		if s == nil || !s.IsPriority {
			continue
		}
		lane = append(lane, s)
	}
	return lane
}

// HasOutstandingNormal reports whether any non-priority request is still in
// the store. Played requests are removed by the player, which is what drains
// a lane; skipped requests still count as outstanding.
func (c *Customer) HasOutstandingNormal() bool {
	for _, s := range c.Songs {
		if s != nil && !s.IsPriority {
			return true
		}
	}
	return false
}

func (c *Customer) FindSong(songID string) *SongRequest {
	for _, s := range c.Songs {
		if s != nil && s.ID == songID {
			return s
		}
	}
	return nil
}

// RemoveSong deletes a request by id, reporting whether it was present.
func (c *Customer) RemoveSong(songID string) bool {
	for i, s := range c.Songs {
		if s != nil && s.ID == songID {
			c.Songs = append(c.Songs[:i], c.Songs[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	dup := *c
	dup.Songs = make([]*SongRequest, 0, len(c.Songs))
	for _, s := range c.Songs {
		dup.Songs = append(dup.Songs, s.Clone())
	}
	return &dup
}
