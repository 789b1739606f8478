// Package queue holds the pure scheduling engine: fairness round assignment,
// the play-order projector and the now-playing progress estimator. Nothing in
// this package touches storage; every function is a deterministic transform
// over a snapshot of customer records.
package queue

import "github.com/immxrtalbeast/karaoke_queue/internal/domain"

// NextGlobalRound returns the round a newly joining or rejoining party should
// start at: the minimum StartRound among customers that still have at least
// one outstanding normal-lane request, or 1 when nobody does. Joining at the
// currently active round keeps rotation fair for parties that arrive after
// others have already queued several songs.
func NextGlobalRound(customers []*domain.Customer) int {
	next := 0
	for _, c := range customers {
		if c == nil || !c.HasOutstandingNormal() {
			continue
		}
		if next == 0 || c.StartRound < next {
			next = c.StartRound
		}
	}
	if next < 1 {
		return 1
	}
	return next
}

// JoinRound decides the StartRound for a normal-lane submission by customer
// with the given id. A brand-new party and a party whose previous batch has
// been fully consumed both join at the current global round; a rejoining
// party never moves to an earlier round than it already holds, and a party
// with requests still outstanding keeps its round untouched.
func JoinRound(customers []*domain.Customer, existing *domain.Customer) int {
	if existing == nil {
		return NextGlobalRound(customers)
	}
	if existing.HasOutstandingNormal() {
		return existing.StartRound
	}
	next := NextGlobalRound(customers)
	if existing.StartRound > next {
		return existing.StartRound
	}
	return next
}
