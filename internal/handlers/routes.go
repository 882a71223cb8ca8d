package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with the full action surface.
func SetupRouter(gameHandler *GameHandler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	api := r.Group("/api/v1")
	{
		games := api.Group("/games")
		{
			games.POST("", gameHandler.Create)
			games.POST("/join", gameHandler.Join)
			games.POST("/submit", gameHandler.Submit)
			games.POST("/reveal", gameHandler.Reveal)
			games.POST("/reveal-step", gameHandler.RevealStep)
			games.POST("/clear", gameHandler.Clear)
			games.POST("/new-round", gameHandler.NewRound)
			games.GET("/state", gameHandler.State)
		}
	}

	return r
}
