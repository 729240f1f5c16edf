package controller

import (
	"errors"
	"net/http"

	"go-sortgame/dto"
	"go-sortgame/game"
	"go-sortgame/repository"
	"go-sortgame/service"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	svc *service.GameService
}

func NewGameController(svc *service.GameService) *GameController {
	return &GameController{svc: svc}
}

func (gc *GameController) CreateGame(c *gin.Context) {
	var req dto.CreateGameRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status_code": http.StatusBadRequest, "error": "invalid request body"})
			return
		}
	}

	resp, err := gc.svc.CreateGame(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "game created",
		"data":        resp,
	})
}

func (gc *GameController) ListDifficulties(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "ok",
		"data":        dto.NewDifficultyInfos(),
	})
}

func (gc *GameController) GetGame(c *gin.Context) {
	view, err := gc.svc.GetGame(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "ok",
		"data":        gin.H{"state": view},
	})
}

func (gc *GameController) Draw(c *gin.Context) {
	res, err := gc.svc.Draw(c.Request.Context(), c.Param("sessionID"))
	respondResult(c, res, err)
}

func (gc *GameController) Drop(c *gin.Context) {
	var req dto.DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status_code": http.StatusBadRequest, "error": "cardId and zone are required"})
		return
	}
	res, err := gc.svc.Drop(c.Request.Context(), c.Param("sessionID"), req)
	respondResult(c, res, err)
}

func (gc *GameController) SetDifficulty(c *gin.Context) {
	var req dto.DifficultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status_code": http.StatusBadRequest, "error": "difficulty is required"})
		return
	}
	res, err := gc.svc.SetDifficulty(c.Request.Context(), c.Param("sessionID"), req.Difficulty)
	respondResult(c, res, err)
}

func (gc *GameController) Restart(c *gin.Context) {
	var req dto.RestartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status_code": http.StatusBadRequest, "error": "invalid request body"})
			return
		}
	}
	res, err := gc.svc.Restart(c.Request.Context(), c.Param("sessionID"), req.Confirm)
	respondResult(c, res, err)
}

func (gc *GameController) CollectedCount(c *gin.Context) {
	categoryID := c.Param("categoryID")
	n, err := gc.svc.CollectedCount(c.Request.Context(), c.Param("sessionID"), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "ok",
		"data":        dto.CollectedResponse{CategoryID: categoryID, Collected: n},
	})
}

func (gc *GameController) DeleteGame(c *gin.Context) {
	if err := gc.svc.DeleteGame(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "game deleted",
	})
}

func respondResult(c *gin.Context, res dto.ActionResult, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "ok",
		"data":        res,
	})
}

func respondError(c *gin.Context, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		c.Error(err)
	}
	c.JSON(code, gin.H{"status_code": code, "error": err.Error()})
}

// StatusFor maps service errors onto HTTP codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrUnknownDifficulty):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTokenMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNoTurnsRemaining), errors.Is(err, repository.ErrSessionLocked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
