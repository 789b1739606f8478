package queue

import (
	"sort"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
)

// Snapshot is the raw state the projector works from: every customer record
// read in one pass. The projector never mutates it.
type Snapshot struct {
	Customers []*domain.Customer
}

// Project derives the single global play order from a snapshot. Priority
// requests form a global FIFO that always precedes the normal lanes; normal
// requests are interleaved round-robin, one request per party per round, with
// parties visited in ascending FirstOrderTime inside each round. The output
// depends only on FirstOrderTime, AddedAt, StartRound and ids, so reprojecting
// the same snapshot always yields the same sequence.
func Project(snap Snapshot) []domain.QueueEntry {
	entries := projectPriority(snap.Customers)
	return append(entries, projectRounds(snap.Customers)...)
}

func projectPriority(customers []*domain.Customer) []domain.QueueEntry {
	entries := make([]domain.QueueEntry, 0)
	for _, c := range customers {
		if c == nil {
			continue
		}
		for _, s := range c.PriorityLane() {
			entries = append(entries, domain.QueueEntry{
				SongRequest:  *s.Clone(),
				CustomerID:   c.ID,
				CustomerName: c.Name,
				SongIndex:    -1,
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return entries[i].AddedAt.Before(entries[j].AddedAt)
		}
		return entries[i].SongRequest.ID < entries[j].SongRequest.ID
	})
	return entries
}

func projectRounds(customers []*domain.Customer) []domain.QueueEntry {
	type lane struct {
		customer *domain.Customer
		songs    []*domain.SongRequest
	}

	lanes := make([]lane, 0, len(customers))
	minRound, maxRound := 0, 0
	for _, c := range customers {
		if c == nil {
			continue
		}
		songs := c.NormalLane()
		if len(songs) == 0 {
			// present in the store but with nothing queued: reserves no round
			continue
		}
		lanes = append(lanes, lane{customer: c, songs: songs})

		if minRound == 0 || c.StartRound < minRound {
			minRound = c.StartRound
		}
		if last := c.StartRound + len(songs) - 1; last > maxRound {
			maxRound = last
		}
	}
	if len(lanes) == 0 {
		return nil
	}

	sort.SliceStable(lanes, func(i, j int) bool {
		a, b := lanes[i].customer, lanes[j].customer
		if !a.FirstOrderTime.Equal(b.FirstOrderTime) {
			return a.FirstOrderTime.Before(b.FirstOrderTime)
		}
		return a.ID < b.ID
	})

	entries := make([]domain.QueueEntry, 0)
	for round := minRound; round <= maxRound; round++ {
		for _, l := range lanes {
			idx := round - l.customer.StartRound
			if idx < 0 || idx >= len(l.songs) {
				continue
			}
			entries = append(entries, domain.QueueEntry{
				SongRequest:  *l.songs[idx].Clone(),
				CustomerID:   l.customer.ID,
				CustomerName: l.customer.Name,
				Round:        round,
				SongIndex:    idx,
			})
		}
	}
	return entries
}
