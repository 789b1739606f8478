package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
	"github.com/immxrtalbeast/karaoke_queue/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayerService() (*PlayerService, *QueueService) {
	customers := repository.NewInMemoryCustomerRepository()
	nowPlaying := repository.NewInMemoryNowPlayingRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	queueSvc := NewQueueService(customers, log)
	return NewPlayerService(customers, nowPlaying, queueSvc, log), queueSvc
}

func TestNowPlaying_Idle(t *testing.T) {
	player, _ := newTestPlayerService()

	np, progress, err := player.NowPlaying(context.Background())
	require.NoError(t, err)
	assert.Nil(t, np)
	assert.Nil(t, progress)
}

func TestSetNowPlaying_AndProgress(t *testing.T) {
	ctx := context.Background()
	player, _ := newTestPlayerService()

	err := player.SetNowPlaying(ctx, &domain.NowPlaying{
		VideoID:     "v1",
		Title:       "Sóng Gió (Karaoke)",
		CleanTitle:  "Sóng Gió",
		AddedBy:     "Anh Tuấn",
		Duration:    240,
		CurrentTime: 30,
	})
	require.NoError(t, err)

	np, progress, err := player.NowPlaying(ctx)
	require.NoError(t, err)
	require.NotNil(t, np)
	assert.Equal(t, "Sóng Gió", np.CleanTitle)
	require.NotNil(t, progress)
	assert.GreaterOrEqual(t, progress.Elapsed, 30.0)
	assert.Less(t, progress.Elapsed, 35.0)
}

func TestSetNowPlaying_UnknownDurationHidesProgress(t *testing.T) {
	ctx := context.Background()
	player, _ := newTestPlayerService()

	require.NoError(t, player.SetNowPlaying(ctx, &domain.NowPlaying{VideoID: "v1"}))

	np, progress, err := player.NowPlaying(ctx)
	require.NoError(t, err)
	require.NotNil(t, np)
	assert.Nil(t, progress, "no duration yet, no progress estimate")
}

func TestSetNowPlaying_RequiresVideoID(t *testing.T) {
	player, _ := newTestPlayerService()

	require.ErrorIs(t, player.SetNowPlaying(context.Background(), nil), ErrEmptyVideoID)
	require.ErrorIs(t, player.SetNowPlaying(context.Background(), &domain.NowPlaying{VideoID: "  "}), ErrEmptyVideoID)
}

func TestReportPosition_MovesTheSnapshot(t *testing.T) {
	ctx := context.Background()
	player, _ := newTestPlayerService()

	stale := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, player.SetNowPlaying(ctx, &domain.NowPlaying{
		VideoID:   "v1",
		Duration:  240,
		UpdatedAt: stale,
	}))

	require.NoError(t, player.ReportPosition(ctx, 42))

	np, _, err := player.NowPlaying(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42.0, np.CurrentTime)
	assert.True(t, np.UpdatedAt.After(stale), "position report refreshes the sync timestamp")
}

func TestReportPosition_WithoutTrack(t *testing.T) {
	player, _ := newTestPlayerService()

	err := player.ReportPosition(context.Background(), 10)
	require.ErrorIs(t, err, repository.ErrNowPlayingNotSet)
}

func TestClearNowPlaying(t *testing.T) {
	ctx := context.Background()
	player, _ := newTestPlayerService()

	require.NoError(t, player.SetNowPlaying(ctx, &domain.NowPlaying{VideoID: "v1"}))
	require.NoError(t, player.ClearNowPlaying(ctx))

	np, _, err := player.NowPlaying(ctx)
	require.NoError(t, err)
	assert.Nil(t, np)
}

func TestSkipSong_KeepsEntryInQueue(t *testing.T) {
	ctx := context.Background()
	player, queueSvc := newTestPlayerService()

	request, err := queueSvc.SubmitSong(ctx, "a", "A", submission("v1", "first"))
	require.NoError(t, err)
	_, err = queueSvc.SubmitSong(ctx, "a", "A", submission("v2", "second"))
	require.NoError(t, err)

	require.NoError(t, player.SkipSong(ctx, "a", request.ID))

	entries, err := queueSvc.Queue(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2, "a skip is not a deletion")
	assert.Equal(t, request.ID, entries[0].SongRequest.ID)
	assert.Equal(t, domain.SongStatusSkipped, entries[0].Status)
}

func TestCompleteSong_RemovesEntry(t *testing.T) {
	ctx := context.Background()
	player, queueSvc := newTestPlayerService()

	request, err := queueSvc.SubmitSong(ctx, "a", "A", submission("v1", "played"))
	require.NoError(t, err)
	_, err = queueSvc.SubmitSong(ctx, "a", "A", submission("v2", "next"))
	require.NoError(t, err)

	require.NoError(t, player.CompleteSong(ctx, "a", request.ID))

	entries, err := queueSvc.Queue(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "next", entries[0].Title)
}

func TestCompleteSong_DrainedLaneAllowsRejoinBump(t *testing.T) {
	ctx := context.Background()
	player, queueSvc := newTestPlayerService()

	a1, err := queueSvc.SubmitSong(ctx, "a", "A", submission("v1", "a first"))
	require.NoError(t, err)

	// B accumulates, dragging the head round forward once A drains
	for _, title := range []string{"b one", "b two", "b three"} {
		_, err = queueSvc.SubmitSong(ctx, "b", "B", submission("v", title))
		require.NoError(t, err)
	}

	require.NoError(t, player.CompleteSong(ctx, "a", a1.ID))

	// A rejoins: B alone holds round 1, so A lands back on round 1 and gets
	// one slot there, not a pass on B's whole backlog
	a2, err := queueSvc.SubmitSong(ctx, "a", "A", submission("v9", "a comeback"))
	require.NoError(t, err)

	entries, err := queueSvc.Queue(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, a2.ID, entries[0].SongRequest.ID, "rejoiner keeps its seniority within the round")
	assert.Equal(t, 1, entries[0].Round)
	assert.Equal(t, 2, entries[2].Round)
	assert.Equal(t, 3, entries[3].Round)
}

func TestSkipAndComplete_UnknownTargets(t *testing.T) {
	ctx := context.Background()
	player, queueSvc := newTestPlayerService()

	require.ErrorIs(t, player.SkipSong(ctx, "ghost", "s1"), repository.ErrSongNotFound)
	require.ErrorIs(t, player.CompleteSong(ctx, "ghost", "s1"), repository.ErrSongNotFound)

	_, err := queueSvc.SubmitSong(ctx, "a", "A", submission("v1", "x"))
	require.NoError(t, err)
	require.ErrorIs(t, player.SkipSong(ctx, "a", "wrong"), repository.ErrSongNotFound)
	require.ErrorIs(t, player.CompleteSong(ctx, "a", "wrong"), repository.ErrSongNotFound)
}

func TestCompleteSong_PushesUpdateToSubscribers(t *testing.T) {
	ctx := context.Background()
	player, queueSvc := newTestPlayerService()

	request, err := queueSvc.SubmitSong(ctx, "a", "A", submission("v1", "x"))
	require.NoError(t, err)

	sub := domain.NewSubscriber()
	queueSvc.Subscribe(sub)

	require.NoError(t, player.CompleteSong(ctx, "a", request.ID))

	select {
	case update := <-sub.Events:
		assert.Empty(t, update.Entries, "completion empties the queue snapshot")
	default:
		t.Fatal("expected a queue update after a completion")
	}
}
