package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	idlePingInterval = 30 * time.Second
	sendBufferSize   = 16
)

type gameManager interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	Play(ctx context.Context, id string, cell int) (*entity.Game, error)
	JumpTo(ctx context.Context, id string, move int) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, conn *connection, req *RequestPayload) error

type Server struct {
	logger   *slog.Logger
	games    gameManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc

	watchersMutex sync.RWMutex
	watchers      map[string]map[*connection]struct{}
}

// connection - one client socket; everything written to it goes through send.
type connection struct {
	conn   *websocket.Conn
	send   chan []byte
	gameID string
}

func New(logger *slog.Logger, games gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
		watchers: make(map[string]map[*connection]struct{}),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionGetState] = server.handleGetState
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionJump] = server.handleJump

	return server
}

// Routes - router exposing the socket endpoint at /ws.
func (that *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Get("/ws", that.ServeWS)

	return router
}

// ServeWS - upgrades the request and serves the client until it disconnects.
func (that *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeWS")

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{
		conn: ws,
		send: make(chan []byte, sendBufferSize),
	}

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := writeWithHeartbeat(ws, conn.send); err != nil {
			log.Debug("writer stopped", "error", err)
		}
	}()

	that.handleMessages(r.Context(), conn)

	that.unwatch(conn)
	close(conn.send)
	<-done
	_ = ws.Close()

	log.Info("WebSocket connection closed", "remote", r.RemoteAddr)
}

// handleMessages - processes messages from the client until the socket fails.
func (that *Server) handleMessages(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.reply(conn, actionError, ResponsePayload{Error: "malformed message"})
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.reply(conn, message.Action, ResponsePayload{Error: "unknown action"})
			continue
		}

		var req RequestPayload
		if len(message.Payload) > 0 {
			if err = json.Unmarshal(message.Payload, &req); err != nil {
				that.reply(conn, message.Action, ResponsePayload{Error: "malformed payload"})
				continue
			}
		}

		if err = handler(ctx, conn, &req); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// writeWithHeartbeat - drains send into the socket and pings when the line has been quiet.
func writeWithHeartbeat(ws *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(idlePingInterval)
	defer ticker.Stop()

	lastWrite := time.Now()
	ping := encodeMessage(actionPing, ResponsePayload{})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < idlePingInterval {
				continue
			}
			if err := ws.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
