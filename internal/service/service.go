package service

import (
	"context"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
	"github.com/immxrtalbeast/karaoke_queue/internal/queue"
)

// SongSubmission carries the caller-supplied song fields of a submission or
// a slot fill. Video selection happens upstream; the queue stores the result.
type SongSubmission struct {
	VideoID     string
	Title       string
	CleanTitle  string
	Artist      string
	Thumbnail   string
	Source      string
	IsPriority  bool
	BeatOptions []domain.BeatOption
}

type QueueInteractor interface {
	SubmitSong(ctx context.Context, customerID, name string, song SongSubmission) (*domain.SongRequest, error)
	SubmitReservation(ctx context.Context, customerID, name string) (*domain.SongRequest, error)
	FillReservation(ctx context.Context, customerID, slotID string, song SongSubmission) (*domain.SongRequest, error)
	Queue(ctx context.Context) ([]domain.QueueEntry, error)
	CustomerRequests(ctx context.Context, customerID string) (*domain.Customer, error)
	Subscribe(sub *domain.Subscriber)
	Unsubscribe(id string)
}

type PlayerInteractor interface {
	NowPlaying(ctx context.Context) (*domain.NowPlaying, *queue.Progress, error)
	SetNowPlaying(ctx context.Context, np *domain.NowPlaying) error
	ReportPosition(ctx context.Context, currentTime float64) error
	ClearNowPlaying(ctx context.Context) error
	SkipSong(ctx context.Context, customerID, songID string) error
	CompleteSong(ctx context.Context, customerID, songID string) error
}
