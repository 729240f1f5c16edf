package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go-sortgame/dto"
	"go-sortgame/game"
	"go-sortgame/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client is one websocket connection bound to a session.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cl *client) send(message []byte) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conn.WriteMessage(websocket.TextMessage, message)
}

// Hub fans session updates out to every connection of that session.
type Hub struct {
	svc *service.GameService
	log *zap.Logger

	mu       sync.Mutex
	sessions map[string][]*client
}

func NewHub(svc *service.GameService, log *zap.Logger) *Hub {
	return &Hub{
		svc:      svc,
		log:      log,
		sessions: make(map[string][]*client),
	}
}

type messageHandler func(ctx context.Context, h *Hub, sessionID string, msg map[string]interface{}) (dto.ActionResult, error)

var messageHandlers = map[string]messageHandler{
	"sync":           handleSyncMessage,
	"draw":           handleDrawMessage,
	"drop":           handleDropMessage,
	"set_difficulty": handleSetDifficultyMessage,
	"restart":        handleRestartMessage,
}

// HandleWebSocket authorizes ?sessionId=&token= and then serves the
// connection until it closes.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	sessionID := c.Query("sessionId")
	token := c.Query("token")
	if sessionID == "" || token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status_code": http.StatusBadRequest, "error": "sessionId and token are required"})
		return
	}
	if err := h.svc.Authorize(token, sessionID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status_code": http.StatusUnauthorized, "error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	cl := &client{id: uuid.NewString(), conn: conn}
	h.join(sessionID, cl)
	defer h.leave(sessionID, cl)
	h.log.Info("websocket connected", zap.String("session_id", sessionID), zap.String("conn_id", cl.id))

	ctx := c.Request.Context()
	if res, err := handleSyncMessage(ctx, h, sessionID, nil); err != nil {
		h.sendError(cl, err)
	} else {
		cl.send(buildMessage("sync", res))
	}

	h.listen(ctx, sessionID, cl)
}

func (h *Hub) listen(ctx context.Context, sessionID string, cl *client) {
	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			h.log.Info("websocket closed", zap.String("session_id", sessionID), zap.String("conn_id", cl.id), zap.Error(err))
			return
		}

		msgMap := make(map[string]interface{})
		if err := json.Unmarshal(raw, &msgMap); err != nil {
			h.log.Warn("bad websocket message", zap.String("session_id", sessionID), zap.Error(err))
			h.sendError(cl, errors.New("message is not a JSON object"))
			continue
		}
		msgType, _ := msgMap["type"].(string)
		handler, found := messageHandlers[msgType]
		if !found {
			h.log.Warn("unknown message type", zap.String("session_id", sessionID), zap.String("type", msgType))
			h.sendError(cl, fmt.Errorf("unknown message type %q", msgType))
			continue
		}

		res, err := handler(ctx, h, sessionID, msgMap)
		if err != nil {
			h.sendError(cl, err)
			continue
		}
		h.broadcastToSession(sessionID, buildMessage("sync", res))
	}
}

func handleSyncMessage(ctx context.Context, h *Hub, sessionID string, _ map[string]interface{}) (dto.ActionResult, error) {
	view, err := h.svc.GetGame(ctx, sessionID)
	if err != nil {
		return dto.ActionResult{}, err
	}
	return dto.ActionResult{Events: []game.Event{}, State: view}, nil
}

func handleDrawMessage(ctx context.Context, h *Hub, sessionID string, _ map[string]interface{}) (dto.ActionResult, error) {
	return h.svc.Draw(ctx, sessionID)
}

func handleDropMessage(ctx context.Context, h *Hub, sessionID string, msg map[string]interface{}) (dto.ActionResult, error) {
	var req dto.DropRequest
	if err := mapstructure.Decode(msg, &req); err != nil {
		return dto.ActionResult{}, fmt.Errorf("invalid drop message: %w", err)
	}
	if req.CardID == "" || req.Zone == "" {
		return dto.ActionResult{}, errors.New("cardId and zone are required")
	}
	return h.svc.Drop(ctx, sessionID, req)
}

func handleSetDifficultyMessage(ctx context.Context, h *Hub, sessionID string, msg map[string]interface{}) (dto.ActionResult, error) {
	var req dto.DifficultyRequest
	if err := mapstructure.Decode(msg, &req); err != nil {
		return dto.ActionResult{}, fmt.Errorf("invalid difficulty message: %w", err)
	}
	return h.svc.SetDifficulty(ctx, sessionID, req.Difficulty)
}

func handleRestartMessage(ctx context.Context, h *Hub, sessionID string, msg map[string]interface{}) (dto.ActionResult, error) {
	var req dto.RestartRequest
	if err := mapstructure.Decode(msg, &req); err != nil {
		return dto.ActionResult{}, fmt.Errorf("invalid restart message: %w", err)
	}
	return h.svc.Restart(ctx, sessionID, req.Confirm)
}

func (h *Hub) join(sessionID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[sessionID] = append(h.sessions[sessionID], cl)
}

func (h *Hub) leave(sessionID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.sessions[sessionID][:0]
	for _, other := range h.sessions[sessionID] {
		if other != cl {
			kept = append(kept, other)
		}
	}
	if len(kept) == 0 {
		delete(h.sessions, sessionID)
		return
	}
	h.sessions[sessionID] = kept
}

// broadcastToSession drops connections that fail to take the message.
func (h *Hub) broadcastToSession(sessionID string, message []byte) {
	h.mu.Lock()
	clients := append([]*client(nil), h.sessions[sessionID]...)
	h.mu.Unlock()

	for _, cl := range clients {
		if err := cl.send(message); err != nil {
			h.log.Warn("broadcast failed, dropping connection", zap.String("session_id", sessionID), zap.String("conn_id", cl.id))
			cl.conn.Close()
			h.leave(sessionID, cl)
		}
	}
}

// ConnectionCount returns the live connections of a session.
func (h *Hub) ConnectionCount(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) sendError(cl *client, err error) {
	cl.send(buildMessage("error", err.Error()))
}

// buildMessage wraps data in the {type, data} envelope; errors use message.
func buildMessage(msgType string, data interface{}) []byte {
	msg := map[string]interface{}{"type": msgType}
	if msgType == "error" {
		msg["message"] = data
	} else {
		msg["data"] = data
	}
	out, _ := json.Marshal(msg)
	return out
}
