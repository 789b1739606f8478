package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/karaoke_queue/internal/api/http/converter"
	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
	"github.com/immxrtalbeast/karaoke_queue/internal/repository"
	"github.com/immxrtalbeast/karaoke_queue/internal/service"
)

// PlayerController is the host player's API. It is the only writer of the
// now-playing snapshot and the only caller of skip/complete.
type PlayerController struct {
	player service.PlayerInteractor
}

func NewPlayerController(player service.PlayerInteractor) *PlayerController {
	return &PlayerController{player: player}
}

func (c *PlayerController) GetNowPlaying(ctx *gin.Context) {
	np, progress, err := c.player.NowPlaying(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, converter.NowPlayingToApi(np, progress))
}

func (c *PlayerController) SetNowPlaying(ctx *gin.Context) {
	type request struct {
		VideoID     string              `json:"video_id" binding:"required"`
		Title       string              `json:"title"`
		CleanTitle  string              `json:"clean_title"`
		Artist      string              `json:"artist"`
		AddedBy     string              `json:"added_by"`
		Duration    float64             `json:"duration"`
		CurrentTime float64             `json:"current_time"`
		BeatOptions []domain.BeatOption `json:"beat_options"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	np := &domain.NowPlaying{
		VideoID:     req.VideoID,
		Title:       req.Title,
		CleanTitle:  req.CleanTitle,
		Artist:      req.Artist,
		AddedBy:     req.AddedBy,
		Duration:    req.Duration,
		CurrentTime: req.CurrentTime,
		UpdatedAt:   time.Now().UTC(),
		BeatOptions: req.BeatOptions,
	}

	if err := c.player.SetNowPlaying(ctx.Request.Context(), np); err != nil {
		if errors.Is(err, service.ErrEmptyVideoID) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"now_playing": np})
}

func (c *PlayerController) ReportPosition(ctx *gin.Context) {
	type request struct {
		CurrentTime float64 `json:"current_time"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := c.player.ReportPosition(ctx.Request.Context(), req.CurrentTime); err != nil {
		if errors.Is(err, repository.ErrNowPlayingNotSet) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (c *PlayerController) ClearNowPlaying(ctx *gin.Context) {
	if err := c.player.ClearNowPlaying(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (c *PlayerController) SkipSong(ctx *gin.Context) {
	c.mutateSong(ctx, c.player.SkipSong)
}

func (c *PlayerController) CompleteSong(ctx *gin.Context) {
	c.mutateSong(ctx, c.player.CompleteSong)
}

func (c *PlayerController) mutateSong(ctx *gin.Context, op func(ctx context.Context, customerID, songID string) error) {
	type request struct {
		CustomerID string `json:"customer_id" binding:"required"`
		SongID     string `json:"song_id" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := op(ctx.Request.Context(), req.CustomerID, req.SongID); err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
}
