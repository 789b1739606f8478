package repository

import (
	"context"
	"errors"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSongNotFound     = errors.New("song request not found")
	ErrNowPlayingNotSet = errors.New("nothing is playing")
)

// CustomerRepository is the request store: one record per submitting party,
// keyed by the party's opaque id. Save replaces the whole record including
// its song requests; per-record writes are atomic, which is the only ordering
// guarantee the scheduling logic relies on.
type CustomerRepository interface {
	Save(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

// NowPlayingRepository holds the single live playback snapshot, written by
// the host player and read by everything else.
type NowPlayingRepository interface {
	Get(ctx context.Context) (*domain.NowPlaying, error)
	Set(ctx context.Context, np *domain.NowPlaying) error
	Clear(ctx context.Context) error
}
