package domain

import (
	"time"

	"github.com/google/uuid"
)

type SongStatus string

const (
	// SongStatusWaiting marks a reserved slot whose song has not been chosen yet.
	SongStatusWaiting SongStatus = "waiting"
	// SongStatusReady marks a request with a song attached, pending playback.
	SongStatusReady SongStatus = "ready"
	// SongStatusSkipped marks a request the host passed over without playing.
	SongStatusSkipped SongStatus = "skipped"
)

// BeatOption is an alternative backing track the host can switch to mid-song.
// The service stores these verbatim; ranking them is the search layer's job.
type BeatOption struct {
	VideoID   string `json:"video_id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
	BeatLabel string `json:"beat_label,omitempty"`
	ViewCount int64  `json:"view_count,omitempty"`
}

// SongRequest is a single submitted request: either a concrete song or a
// placeholder reservation to be filled later. VideoID is empty exactly while
// Status is waiting.
type SongRequest struct {
	ID          string       `json:"id"`
	IsPriority  bool         `json:"is_priority"`
	Status      SongStatus   `json:"status"`
	AddedAt     time.Time    `json:"added_at"`
	VideoID     string       `json:"video_id,omitempty"`
	Title       string       `json:"title,omitempty"`
	CleanTitle  string       `json:"clean_title,omitempty"`
	Artist      string       `json:"artist,omitempty"`
	Thumbnail   string       `json:"thumbnail,omitempty"`
	Source      string       `json:"source,omitempty"`
	BeatOptions []BeatOption `json:"beat_options,omitempty"`
}

func NewSongRequest(videoID, title, cleanTitle, artist, thumbnail, source string, priority bool) *SongRequest {
	if cleanTitle == "" {
		cleanTitle = title
	}
	return &SongRequest{
		ID:         uuid.New().String(),
		IsPriority: priority,
		Status:     SongStatusReady,
		AddedAt:    time.Now().UTC(),
		VideoID:    videoID,
		Title:      title,
		CleanTitle: cleanTitle,
		Artist:     artist,
		Thumbnail:  thumbnail,
		Source:     source,
	}
}

// NewReservation creates an empty waiting slot with all song fields unset.
func NewReservation() *SongRequest {
	return &SongRequest{
		ID:      uuid.New().String(),
		Status:  SongStatusWaiting,
		AddedAt: time.Now().UTC(),
	}
}

// Fill attaches a song to a waiting slot, moving it to ready. The slot keeps
// its id and AddedAt so the projection leaves it at its reserved position.
func (s *SongRequest) Fill(videoID, title, cleanTitle, artist, thumbnail, source string) {
	if cleanTitle == "" {
		cleanTitle = title
	}
	s.VideoID = videoID
	s.Title = title
	s.CleanTitle = cleanTitle
	s.Artist = artist
	s.Thumbnail = thumbnail
	s.Source = source
	s.Status = SongStatusReady
}

func (s *SongRequest) Clone() *SongRequest {
	if s == nil {
		return nil
	}
	dup := *s
	if s.BeatOptions != nil {
		dup.BeatOptions = make([]BeatOption, len(s.BeatOptions))
		copy(dup.BeatOptions, s.BeatOptions)
	}
	return &dup
}
