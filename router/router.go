package router

import (
	"net/http"

	"go-sortgame/controller"
	"go-sortgame/middleware"
	"go-sortgame/ws"

	"github.com/gin-gonic/gin"
)

func InitRouter(r *gin.Engine, gc *controller.GameController, hub *ws.Hub, auth middleware.Authorizer) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": http.StatusOK, "msg": "ok"})
	})

	api := r.Group("/game")
	{
		api.POST("/create", gc.CreateGame)
		api.GET("/difficulties", gc.ListDifficulties)
	}

	// session routes need a token issued for :sessionID
	session := api.Group("/:sessionID", middleware.AuthMiddleware(auth))
	{
		session.GET("", gc.GetGame)
		session.DELETE("", gc.DeleteGame)
		session.POST("/draw", gc.Draw)
		session.POST("/drop", gc.Drop)
		session.POST("/difficulty", gc.SetDifficulty)
		session.POST("/restart", gc.Restart)
		session.GET("/collected/:categoryID", gc.CollectedCount)
	}

	// websocket play channel, authorized by query token
	r.GET("/ws", hub.HandleWebSocket)
}
