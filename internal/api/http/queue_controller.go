package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/karaoke_queue/internal/api/http/converter"
	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
	"github.com/immxrtalbeast/karaoke_queue/internal/repository"
	"github.com/immxrtalbeast/karaoke_queue/internal/service"
)

type QueueController struct {
	queue    service.QueueInteractor
	player   service.PlayerInteractor
	upgrader websocket.Upgrader
}

func NewQueueController(queue service.QueueInteractor, player service.PlayerInteractor) *QueueController {
	return &QueueController{
		queue:  queue,
		player: player,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

type songPayload struct {
	VideoID     string              `json:"video_id"`
	Title       string              `json:"title" binding:"required"`
	CleanTitle  string              `json:"clean_title"`
	Artist      string              `json:"artist"`
	Thumbnail   string              `json:"thumbnail"`
	Source      string              `json:"source"`
	BeatOptions []domain.BeatOption `json:"beat_options"`
}

func (p songPayload) toSubmission(priority bool) service.SongSubmission {
	return service.SongSubmission{
		VideoID:     p.VideoID,
		Title:       p.Title,
		CleanTitle:  p.CleanTitle,
		Artist:      p.Artist,
		Thumbnail:   p.Thumbnail,
		Source:      p.Source,
		IsPriority:  priority,
		BeatOptions: p.BeatOptions,
	}
}

func (c *QueueController) SubmitSong(ctx *gin.Context) {
	type request struct {
		CustomerID string `json:"customer_id" binding:"required"`
		Name       string `json:"name" binding:"required"`
		IsPriority bool   `json:"is_priority"`
		songPayload
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	song, err := c.queue.SubmitSong(ctx.Request.Context(), req.CustomerID, req.Name, req.songPayload.toSubmission(req.IsPriority))
	if err != nil {
		writeQueueError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"request": song})
}

func (c *QueueController) SubmitReservation(ctx *gin.Context) {
	type request struct {
		CustomerID string `json:"customer_id" binding:"required"`
		Name       string `json:"name" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	slot, err := c.queue.SubmitReservation(ctx.Request.Context(), req.CustomerID, req.Name)
	if err != nil {
		writeQueueError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"request": slot})
}

func (c *QueueController) FillReservation(ctx *gin.Context) {
	type request struct {
		CustomerID string `json:"customer_id" binding:"required"`
		songPayload
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	slot, err := c.queue.FillReservation(ctx.Request.Context(), req.CustomerID, ctx.Param("slotID"), req.songPayload.toSubmission(false))
	if err != nil {
		writeQueueError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"request": slot})
}

func (c *QueueController) GetQueue(ctx *gin.Context) {
	entries, err := c.queue.Queue(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	np, progress, err := c.player.NowPlaying(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"queue":       converter.QueueToApi(entries),
		"now_playing": converter.NowPlayingToApi(np, progress),
	})
}

func (c *QueueController) GetCustomerRequests(ctx *gin.Context) {
	customer, err := c.queue.CustomerRequests(ctx.Request.Context(), ctx.Param("customerID"))
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"name":     customer.Name,
		"requests": converter.RequestsToApi(customer),
	})
}

// WatchQueue upgrades to a websocket and streams every republished
// projection, starting with the current one.
func (c *QueueController) WatchQueue(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to upgrade connection")
		return
	}

	sub := domain.NewSubscriber()
	sub.Socket = conn
	c.queue.Subscribe(sub)

	go forwardQueueUpdates(sub)

	entries, err := c.queue.Queue(ctx.Request.Context())
	if err == nil {
		sub.EnqueueUpdate(domain.NewQueueUpdate(entries))
	}

	// drain the connection until the client goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			c.queue.Unsubscribe(sub.ID)
			conn.Close()
			return
		}
	}
}

func forwardQueueUpdates(sub *domain.Subscriber) {
	for update := range sub.Events {
		if sub.Socket == nil {
			return
		}
		if err := sub.Socket.WriteJSON(update); err != nil {
			return
		}
	}
}

func writeQueueError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCustomerID),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrEmptyTitle):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSlotNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		// store unreachable; the caller should retry with backoff
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	}
}
