package queue

import (
	"testing"
	"time"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateProgress_Interpolation(t *testing.T) {
	updatedAt := time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)
	np := &domain.NowPlaying{
		VideoID:     "v1",
		Duration:    180,
		CurrentTime: 30,
		UpdatedAt:   updatedAt,
	}

	progress, ok := EstimateProgress(np, updatedAt.Add(5*time.Second))

	require.True(t, ok)
	assert.InDelta(t, 35, progress.Elapsed, 0.01)
	assert.InDelta(t, 0.194, progress.Fraction, 0.001)
	assert.InDelta(t, 145, progress.TimeLeft, 0.01)
	assert.False(t, progress.AlmostDone)
}

func TestEstimateProgress_ClampsToDuration(t *testing.T) {
	updatedAt := time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)
	np := &domain.NowPlaying{
		VideoID:     "v1",
		Duration:    180,
		CurrentTime: 170,
		UpdatedAt:   updatedAt,
	}

	progress, ok := EstimateProgress(np, updatedAt.Add(time.Minute))

	require.True(t, ok)
	assert.Equal(t, 180.0, progress.Elapsed)
	assert.Equal(t, 1.0, progress.Fraction)
	assert.Equal(t, 0.0, progress.TimeLeft)
	assert.False(t, progress.AlmostDone, "finished track is not almost done")
}

func TestEstimateProgress_UnknownDuration(t *testing.T) {
	now := time.Now().UTC()

	_, ok := EstimateProgress(nil, now)
	require.False(t, ok)

	_, ok = EstimateProgress(&domain.NowPlaying{VideoID: "v1"}, now)
	require.False(t, ok, "zero duration means metadata has not loaded yet")

	_, ok = EstimateProgress(&domain.NowPlaying{VideoID: "v1", Duration: -5}, now)
	require.False(t, ok)
}

func TestEstimateProgress_AlmostDoneWindow(t *testing.T) {
	updatedAt := time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		currentTime float64
		want        bool
	}{
		{"well before the window", 60, false},
		{"exactly sixty seconds left", 120, true},
		{"inside the window", 150, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			np := &domain.NowPlaying{
				VideoID:     "v1",
				Duration:    180,
				CurrentTime: tt.currentTime,
				UpdatedAt:   updatedAt,
			}
			progress, ok := EstimateProgress(np, updatedAt)
			require.True(t, ok)
			assert.Equal(t, tt.want, progress.AlmostDone)
		})
	}
}

func TestEstimateProgress_StaleClockNeverGoesNegative(t *testing.T) {
	updatedAt := time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)
	np := &domain.NowPlaying{
		VideoID:     "v1",
		Duration:    180,
		CurrentTime: -3,
		UpdatedAt:   updatedAt,
	}

	// querying before the snapshot timestamp uses the reported position as-is
	progress, ok := EstimateProgress(np, updatedAt.Add(-10*time.Second))
	require.True(t, ok)
	assert.Equal(t, 0.0, progress.Elapsed)
	assert.Equal(t, 0.0, progress.Fraction)
}
