package repository

import (
	"context"
	"testing"
	"time"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCustomerRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryCustomerRepository()

	customer := domain.NewCustomer("device-1", "Anh Tuấn", 1)
	customer.Songs = append(customer.Songs, domain.NewSongRequest("v1", "Duyên Phận", "", "Như Quỳnh", "", "web", false))

	require.NoError(t, repo.Save(ctx, customer))

	got, err := repo.GetByID(ctx, "device-1")
	require.NoError(t, err)
	assert.Equal(t, "Anh Tuấn", got.Name)
	require.Len(t, got.Songs, 1)
	assert.Equal(t, "Duyên Phận", got.Songs[0].Title)
	assert.Equal(t, domain.SongStatusReady, got.Songs[0].Status)
}

func TestInMemoryCustomerRepository_GetUnknown(t *testing.T) {
	repo := NewInMemoryCustomerRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestInMemoryCustomerRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryCustomerRepository()

	customer := domain.NewCustomer("device-1", "Chị Hoa", 1)
	customer.Songs = append(customer.Songs, domain.NewSongRequest("v1", "See Tình", "", "", "", "web", false))
	require.NoError(t, repo.Save(ctx, customer))

	// mutating what Save was handed must not leak into the store
	customer.Name = "someone else"
	customer.Songs[0].Status = domain.SongStatusSkipped

	got, err := repo.GetByID(ctx, "device-1")
	require.NoError(t, err)
	assert.Equal(t, "Chị Hoa", got.Name)
	assert.Equal(t, domain.SongStatusReady, got.Songs[0].Status)

	// and mutating a read result must not either
	got.StartRound = 99
	again, err := repo.GetByID(ctx, "device-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.StartRound)
}

func TestInMemoryCustomerRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryCustomerRepository()

	require.NoError(t, repo.Save(ctx, domain.NewCustomer("a", "A", 1)))
	require.NoError(t, repo.Save(ctx, domain.NewCustomer("b", "B", 2)))

	customers, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	require.NoError(t, repo.Delete(ctx, "a"))
	require.ErrorIs(t, repo.Delete(ctx, "a"), ErrCustomerNotFound)

	customers, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestInMemoryNowPlayingRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryNowPlayingRepository()

	_, err := repo.Get(ctx)
	require.ErrorIs(t, err, ErrNowPlayingNotSet)

	np := &domain.NowPlaying{
		VideoID:     "v1",
		Title:       "Sóng Gió",
		AddedBy:     "Anh Tuấn",
		Duration:    240,
		CurrentTime: 12,
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.Set(ctx, np))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sóng Gió", got.Title)

	// stored snapshot is isolated from later caller mutations
	np.CurrentTime = 99
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.CurrentTime)

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Get(ctx)
	require.ErrorIs(t, err, ErrNowPlayingNotSet)
}

func TestInMemoryCustomerRepository_CancelledContext(t *testing.T) {
	repo := NewInMemoryCustomerRepository()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, repo.Save(ctx, domain.NewCustomer("a", "A", 1)))
	_, err := repo.List(ctx)
	require.Error(t, err)
}
