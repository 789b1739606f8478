package converter

import (
	"time"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
	"github.com/immxrtalbeast/karaoke_queue/internal/queue"
)

type QueueEntryResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	AddedBy     string              `json:"added_by"`
	Status      domain.SongStatus   `json:"status"`
	IsPriority  bool                `json:"is_priority"`
	Round       int                 `json:"round,omitempty"`
	AddedAt     time.Time           `json:"added_at"`
	VideoID     string              `json:"video_id,omitempty"`
	Title       string              `json:"title,omitempty"`
	CleanTitle  string              `json:"clean_title,omitempty"`
	Artist      string              `json:"artist,omitempty"`
	Thumbnail   string              `json:"thumbnail,omitempty"`
	BeatOptions []domain.BeatOption `json:"beat_options,omitempty"`
}

type NowPlayingResponse struct {
	State      string             `json:"state"` // "running" or "idle"
	NowPlaying *domain.NowPlaying `json:"now_playing,omitempty"`
	Progress   *queue.Progress    `json:"progress,omitempty"`
}

type RequestResponse struct {
	ID         string            `json:"id"`
	Status     domain.SongStatus `json:"status"`
	IsPriority bool              `json:"is_priority"`
	AddedAt    time.Time         `json:"added_at"`
	VideoID    string            `json:"video_id,omitempty"`
	Title      string            `json:"title,omitempty"`
	CleanTitle string            `json:"clean_title,omitempty"`
	Artist     string            `json:"artist,omitempty"`
}

func QueueToApi(entries []domain.QueueEntry) []QueueEntryResponse {
	out := make([]QueueEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, QueueEntryResponse{
			ID:          e.SongRequest.ID,
			CustomerID:  e.CustomerID,
			AddedBy:     e.CustomerName,
			Status:      e.Status,
			IsPriority:  e.IsPriority,
			Round:       e.Round,
			AddedAt:     e.AddedAt,
			VideoID:     e.VideoID,
			Title:       e.Title,
			CleanTitle:  e.CleanTitle,
			Artist:      e.Artist,
			Thumbnail:   e.Thumbnail,
			BeatOptions: e.BeatOptions,
		})
	}
	return out
}

func NowPlayingToApi(np *domain.NowPlaying, progress *queue.Progress) NowPlayingResponse {
	if np == nil {
		return NowPlayingResponse{State: "idle"}
	}
	return NowPlayingResponse{
		State:      "running",
		NowPlaying: np,
		Progress:   progress,
	}
}

func RequestsToApi(customer *domain.Customer) []RequestResponse {
	out := make([]RequestResponse, 0, len(customer.Songs))
	for _, s := range customer.Songs {
		if s == nil {
			continue
		}
		out = append(out, RequestResponse{
			ID:         s.ID,
			Status:     s.Status,
			IsPriority: s.IsPriority,
			AddedAt:    s.AddedAt,
			VideoID:    s.VideoID,
			Title:      s.Title,
			CleanTitle: s.CleanTitle,
			Artist:     s.Artist,
		})
	}
	return out
}
