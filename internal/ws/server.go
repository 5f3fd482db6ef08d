package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"chatrelay/internal/chat"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must be < pongWait
	maxMessageSize = 4096
)

// ConnContext carries per-connection identity through the router.
type ConnContext struct {
	ConnID string
	Server *Server
}

type Server struct {
	hub         *Hub
	router      *Router
	coordinator chat.ICoordinator
	upgrader    websocket.Upgrader
}

func NewServer(h *Hub, coordinator chat.ICoordinator) *Server {
	srv := &Server{
		hub:         h,
		router:      NewRouter(),
		coordinator: coordinator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from anywhere, mirroring the
			// wide-open CORS policy on the HTTP side.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	srv.registerHandlers() // ← all WS endpoints configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry‑point
// ---------------------------------------------------------------------------

func (s *Server) Handle(ginCtx *gin.Context) {
	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}

	// ─────────────────── Client connected ─────────────────────
	conn := &clientConn{id: uuid.NewString(), rawConn: rawConn}
	s.hub.attach(conn)
	zap.L().Info("user connected", zap.String("conn", conn.id))

	go s.reader(conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *Server) registerHandlers() {
	// 🔹 join room ------------------------------------------------------------
	Register(
		s.router,
		"join room",
		func(ctx context.Context, cc *ConnContext, req JoinRequest) error {
			s.coordinator.Join(cc.ConnID, req.Username, req.RoomID)
			return nil
		},
	)

	// 🔹 chat message ---------------------------------------------------------
	Register(
		s.router,
		"chat message",
		func(ctx context.Context, cc *ConnContext, req ChatRequest) error {
			s.coordinator.SendMessage(cc.ConnID, req.Content)
			return nil
		},
	)
}

func (s *Server) reader(conn *clientConn) {
	defer func() {
		s.coordinator.Disconnect(conn.id)
		s.hub.detach(conn.id)
		_ = conn.rawConn.Close()
		zap.L().Info("user disconnected", zap.String("conn", conn.id))
	}()

	conn.rawConn.SetReadLimit(maxMessageSize)
	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{ConnID: conn.id, Server: s}

	for {
		_, data, err := conn.rawConn.ReadMessage()
		if err != nil {
			return // client closed or errored
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue // malformed frame, drop
		}

		// Handler failures are not reported back on this protocol; the
		// coordinator emits its own error events where the operation has
		// a user-visible failure.
		if err := s.router.dispatch(context.Background(), cc, env); err != nil {
			zap.L().Debug("ws.dispatch", zap.String("event", env.Event), zap.Error(err))
		}
	}
}

func (s *Server) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.write(websocket.PingMessage, nil); err != nil {
			_ = conn.rawConn.Close()
			return
		}
	}
}
