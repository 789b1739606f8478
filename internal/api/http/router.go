package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(queueController *QueueController, playerController *PlayerController, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		config.AllowOrigins = allowedOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	router.Use(cors.New(config))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	if queueController != nil {
		queue := api.Group("/queue")
		queue.GET("", queueController.GetQueue)
		queue.GET("/ws", queueController.WatchQueue)
		queue.POST("/songs", queueController.SubmitSong)
		queue.POST("/reservations", queueController.SubmitReservation)
		queue.POST("/reservations/:slotID/fill", queueController.FillReservation)

		api.GET("/customers/:customerID/requests", queueController.GetCustomerRequests)
	}

	if playerController != nil {
		player := api.Group("/player")
		player.GET("/now-playing", playerController.GetNowPlaying)
		player.PUT("/now-playing", playerController.SetNowPlaying)
		player.DELETE("/now-playing", playerController.ClearNowPlaying)
		player.PATCH("/position", playerController.ReportPosition)
		player.POST("/skip", playerController.SkipSong)
		player.POST("/complete", playerController.CompleteSong)
	}

	return router
}
