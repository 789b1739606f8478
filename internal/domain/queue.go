package domain

import "time"

// QueueEntry is one position in the derived global play order: a SongRequest
// enriched with its owner and, for normal-lane entries, the fairness round it
// was scheduled into. Entries are never persisted; the whole sequence is
// recomputed from the raw customer records on every mutation.
type QueueEntry struct {
	SongRequest
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"added_by"`
	// Round is the fairness round of a normal-lane entry; 0 for priority.
	Round int `json:"round,omitempty"`
	// SongIndex is the entry's index within its owner's normal lane; -1 for
	// priority entries.
	SongIndex int `json:"song_index"`
}

// NowPlaying is the live playback snapshot owned by the host player. The
// queue core only reads it; CurrentTime is the elapsed seconds the player
// last reported, as of UpdatedAt.
type NowPlaying struct {
	VideoID     string       `json:"video_id"`
	Title       string       `json:"title,omitempty"`
	CleanTitle  string       `json:"clean_title,omitempty"`
	Artist      string       `json:"artist,omitempty"`
	AddedBy     string       `json:"added_by,omitempty"`
	Duration    float64      `json:"duration"`
	CurrentTime float64      `json:"current_time"`
	UpdatedAt   time.Time    `json:"updated_at"`
	BeatOptions []BeatOption `json:"beat_options,omitempty"`
}

func (n *NowPlaying) Clone() *NowPlaying {
	if n == nil {
		return nil
	}
	dup := *n
	if n.BeatOptions != nil {
		dup.BeatOptions = make([]BeatOption, len(n.BeatOptions))
		copy(dup.BeatOptions, n.BeatOptions)
	}
	return &dup
}
