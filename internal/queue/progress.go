package queue

import (
	"time"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
)

// AlmostDoneWindow is how close to the end of a track the queue flags the
// next party to get ready.
const AlmostDoneWindow = 60 * time.Second

// Progress is the interpolated playback position derived from the latest
// coarse NowPlaying snapshot. Display-only; nothing is written back.
type Progress struct {
	Elapsed    float64 `json:"elapsed"`
	Fraction   float64 `json:"fraction"`
	TimeLeft   float64 `json:"time_left"`
	AlmostDone bool    `json:"almost_done"`
}

// EstimateProgress extends the last reported position by the wall-clock time
// since the snapshot, clamped to the track duration. Reports ok=false when
// there is no track or its duration is unknown, which is the normal state
// before metadata loads.
func EstimateProgress(np *domain.NowPlaying, now time.Time) (Progress, bool) {
	if np == nil || np.Duration <= 0 {
		return Progress{}, false
	}

	elapsed := np.CurrentTime
	if !np.UpdatedAt.IsZero() && now.After(np.UpdatedAt) {
		elapsed += now.Sub(np.UpdatedAt).Seconds()
	}
	if elapsed > np.Duration {
		elapsed = np.Duration
	}
	if elapsed < 0 {
		elapsed = 0
	}

	timeLeft := np.Duration - elapsed
	if timeLeft < 0 {
		timeLeft = 0
	}

	return Progress{
		Elapsed:    elapsed,
		Fraction:   elapsed / np.Duration,
		TimeLeft:   timeLeft,
		AlmostDone: timeLeft > 0 && timeLeft <= AlmostDoneWindow.Seconds(),
	}, true
}
