package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
	"github.com/immxrtalbeast/karaoke_queue/internal/queue"
	"github.com/immxrtalbeast/karaoke_queue/internal/repository"
	"github.com/immxrtalbeast/karaoke_queue/lib/logger/sl"
)

var ErrEmptyVideoID = errors.New("video id is required")

// QueuePublisher is the slice of QueueService the player surface needs: after
// a skip or completion mutates the store, the projection has to go back out.
type QueuePublisher interface {
	Republish(ctx context.Context) ([]domain.QueueEntry, error)
}

// PlayerService is the host player's write surface: the now-playing snapshot,
// skips and completions. Guests never call these; the queue core itself only
// ever reads NowPlaying.
type PlayerService struct {
	customers  repository.CustomerRepository
	nowPlaying repository.NowPlayingRepository
	publisher  QueuePublisher
	log        *slog.Logger
}

func NewPlayerService(customers repository.CustomerRepository, nowPlaying repository.NowPlayingRepository, publisher QueuePublisher, log *slog.Logger) *PlayerService {
	if log == nil {
		log = slog.Default()
	}
	return &PlayerService{
		customers:  customers,
		nowPlaying: nowPlaying,
		publisher:  publisher,
		log:        log,
	}
}

// NowPlaying returns the current snapshot with its interpolated progress.
// A nil snapshot with a nil error means the player is idle.
func (s *PlayerService) NowPlaying(ctx context.Context) (*domain.NowPlaying, *queue.Progress, error) {
	np, err := s.nowPlaying.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNowPlayingNotSet) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	progress, ok := queue.EstimateProgress(np, time.Now().UTC())
	if !ok {
		// duration not known yet; the track is playing but progress is hidden
		return np, nil, nil
	}
	return np, &progress, nil
}

func (s *PlayerService) SetNowPlaying(ctx context.Context, np *domain.NowPlaying) error {
	const op = "service.player.setNowPlaying"

	if np == nil || strings.TrimSpace(np.VideoID) == "" {
		return ErrEmptyVideoID
	}
	if np.UpdatedAt.IsZero() {
		np.UpdatedAt = time.Now().UTC()
	}

	if err := s.nowPlaying.Set(ctx, np); err != nil {
		s.log.Error("set now playing failed", slog.String("op", op), sl.Err(err))
		return err
	}

	s.log.Info("now playing changed",
		slog.String("op", op),
		"video_id", np.VideoID,
		"title", np.CleanTitle,
		"added_by", np.AddedBy,
	)
	return nil
}

// ReportPosition records a periodic coarse position sync; readers interpolate
// between these snapshots.
func (s *PlayerService) ReportPosition(ctx context.Context, currentTime float64) error {
	np, err := s.nowPlaying.Get(ctx)
	if err != nil {
		return err
	}

	np.CurrentTime = currentTime
	np.UpdatedAt = time.Now().UTC()
	return s.nowPlaying.Set(ctx, np)
}

func (s *PlayerService) ClearNowPlaying(ctx context.Context) error {
	return s.nowPlaying.Clear(ctx)
}

// SkipSong passes a request over without playing it. The request stays in the
// store with status skipped and keeps its position in the projection.
func (s *PlayerService) SkipSong(ctx context.Context, customerID, songID string) error {
	const op = "service.player.skip"
	log := s.log.With(
		slog.String("op", op),
		slog.String("customer_id", customerID),
		slog.String("song_id", songID),
	)

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return repository.ErrSongNotFound
		}
		return err
	}

	song := customer.FindSong(songID)
	if song == nil {
		return repository.ErrSongNotFound
	}
	song.Status = domain.SongStatusSkipped

	if err := s.customers.Save(ctx, customer); err != nil {
		log.Error("save failed", sl.Err(err))
		return err
	}

	log.Info("song skipped")
	s.republish(ctx)
	return nil
}

// CompleteSong removes a played request from the store. This is the only
// deletion path; it is what eventually drains a party's lane and lets their
// next batch rejoin at the then-current round.
func (s *PlayerService) CompleteSong(ctx context.Context, customerID, songID string) error {
	const op = "service.player.complete"
	log := s.log.With(
		slog.String("op", op),
		slog.String("customer_id", customerID),
		slog.String("song_id", songID),
	)

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return repository.ErrSongNotFound
		}
		return err
	}

	if !customer.RemoveSong(songID) {
		return repository.ErrSongNotFound
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		log.Error("save failed", sl.Err(err))
		return err
	}

	log.Info("song completed")
	s.republish(ctx)
	return nil
}

func (s *PlayerService) republish(ctx context.Context) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.Republish(ctx); err != nil {
		s.log.Error("republish failed", sl.Err(err))
	}
}
