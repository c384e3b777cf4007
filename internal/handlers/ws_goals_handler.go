package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/services"
	jwtutil "github.com/elduverx/gruposmCRM-sub002/pkg/jwt"
	"github.com/elduverx/gruposmCRM-sub002/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// goalsMessage is pushed to subscribers whenever their goal progress may have changed.
type goalsMessage struct {
	Type  string      `json:"type"`
	Goals interface{} `json:"goals"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan struct{}
}

// GoalsHub keeps one websocket per connected session and pushes the owner's
// goal list after each logged activity.
type GoalsHub struct {
	Goals     *services.GoalService
	JWTSecret string

	mu      sync.Mutex
	clients map[string]map[*wsClient]struct{}
}

func NewGoalsHub(goals *services.GoalService, jwtSecret string) *GoalsHub {
	return &GoalsHub{
		Goals:     goals,
		JWTSecret: jwtSecret,
		clients:   make(map[string]map[*wsClient]struct{}),
	}
}

// Notify schedules a goal refresh for every session of userID. It never blocks.
func (h *GoalsHub) Notify(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- struct{}{}:
		default:
			// a refresh is already pending
		}
	}
}

// GET /ws/goals?token=
func (h *GoalsHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		logger.Log.WithError(err).Warn("WebSocket auth failed")
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := &wsClient{conn: conn, send: make(chan struct{}, 1)}
	h.register(claims.UserID, client)
	logger.Log.WithField("user_id", claims.UserID).Info("WebSocket connected")

	// initial snapshot
	select {
	case client.send <- struct{}{}:
	default:
	}

	done := make(chan struct{})
	go h.writeLoop(claims.UserID, client, done)
	h.readLoop(client)

	close(done)
	h.unregister(claims.UserID, client)
	conn.Close()
	logger.Log.WithField("user_id", claims.UserID).Info("WebSocket disconnected")
}

func (h *GoalsHub) register(userID string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*wsClient]struct{})
	}
	h.clients[userID][c] = struct{}{}
}

func (h *GoalsHub) unregister(userID string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[userID], c)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// readLoop drains client frames so pongs and close frames are processed.
func (h *GoalsHub) readLoop(c *wsClient) {
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *GoalsHub) writeLoop(userID string, c *wsClient, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.send:
			ctx, cancel := context.WithTimeout(context.Background(), wsWriteWait)
			goals, err := h.Goals.ListUserGoals(ctx, userID)
			cancel()
			if err != nil {
				logger.Log.WithError(err).WithField("user_id", userID).Warn("Failed to load goals for push")
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteJSON(goalsMessage{Type: "goals", Goals: goals}); err != nil {
				c.conn.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.conn.Close()
				return
			}
		}
	}
}
