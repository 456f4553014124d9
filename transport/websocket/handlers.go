package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

func (that *Server) handleNewGame(ctx context.Context, conn *connection, _ *RequestPayload) error {
	game, err := that.games.CreateGame(ctx)
	if err != nil {
		return that.replyError(conn, actionNewGame, err)
	}

	that.watch(conn, game.ID)

	view := game.View()
	that.reply(conn, actionNewGame, ResponsePayload{Game: &view})

	return nil
}

func (that *Server) handleGetState(ctx context.Context, conn *connection, req *RequestPayload) error {
	if req.GameID == "" {
		that.reply(conn, actionGetState, ResponsePayload{Error: "game_id is required"})
		return nil
	}

	game, err := that.games.GetGame(ctx, req.GameID)
	if err != nil {
		return that.replyError(conn, actionGetState, err)
	}

	that.watch(conn, game.ID)

	view := game.View()
	that.reply(conn, actionGetState, ResponsePayload{Game: &view})

	return nil
}

func (that *Server) handleTurn(ctx context.Context, conn *connection, req *RequestPayload) error {
	if req.GameID == "" || req.Cell == nil {
		that.reply(conn, actionTurn, ResponsePayload{Error: "game_id and cell are required"})
		return nil
	}

	game, err := that.games.Play(ctx, req.GameID, *req.Cell)
	if err != nil {
		return that.replyError(conn, actionTurn, err)
	}

	that.watch(conn, game.ID)

	view := game.View()
	that.broadcast(game.ID, actionTurn, ResponsePayload{Game: &view})

	return nil
}

func (that *Server) handleJump(ctx context.Context, conn *connection, req *RequestPayload) error {
	if req.GameID == "" || req.Move == nil {
		that.reply(conn, actionJump, ResponsePayload{Error: "game_id and move are required"})
		return nil
	}

	game, err := that.games.JumpTo(ctx, req.GameID, *req.Move)
	if err != nil {
		return that.replyError(conn, actionJump, err)
	}

	that.watch(conn, game.ID)

	view := game.View()
	that.broadcast(game.ID, actionJump, ResponsePayload{Game: &view})

	return nil
}

// replyError - tells the client what went wrong; only unexpected failures are returned for logging.
func (that *Server) replyError(conn *connection, action string, err error) error {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		that.reply(conn, action, ResponsePayload{Error: "game not found"})
		return nil
	case errors.Is(err, apperror.ErrMoveOutOfRange):
		that.reply(conn, action, ResponsePayload{Error: err.Error()})
		return nil
	default:
		that.reply(conn, action, ResponsePayload{Error: "internal server error"})
		return fmt.Errorf("%s failed: %w", action, err)
	}
}

// reply - queues a message for one client, dropping it if the client is not keeping up.
func (that *Server) reply(conn *connection, action string, payload ResponsePayload) {
	select {
	case conn.send <- encodeMessage(action, payload):
	default:
		that.logger.Warn("send buffer full, message dropped", "action", action)
	}
}

// broadcast - sends the message to every connection watching the game.
func (that *Server) broadcast(gameID, action string, payload ResponsePayload) {
	data := encodeMessage(action, payload)

	that.watchersMutex.RLock()
	defer that.watchersMutex.RUnlock()

	for conn := range that.watchers[gameID] {
		select {
		case conn.send <- data:
		default:
			that.logger.Warn("send buffer full, update dropped", "gameID", gameID, "action", action)
		}
	}
}

// watch - subscribes the connection to updates of one game, leaving any game it watched before.
func (that *Server) watch(conn *connection, gameID string) {
	that.watchersMutex.Lock()
	defer that.watchersMutex.Unlock()

	if conn.gameID == gameID {
		return
	}

	that.removeWatcher(conn)

	if that.watchers[gameID] == nil {
		that.watchers[gameID] = make(map[*connection]struct{})
	}
	that.watchers[gameID][conn] = struct{}{}
	conn.gameID = gameID
}

func (that *Server) unwatch(conn *connection) {
	that.watchersMutex.Lock()
	defer that.watchersMutex.Unlock()

	that.removeWatcher(conn)
}

// removeWatcher - caller holds watchersMutex.
func (that *Server) removeWatcher(conn *connection) {
	if conn.gameID == "" {
		return
	}

	delete(that.watchers[conn.gameID], conn)
	if len(that.watchers[conn.gameID]) == 0 {
		delete(that.watchers, conn.gameID)
	}
	conn.gameID = ""
}

func (that *Server) watcherCount(gameID string) int {
	that.watchersMutex.RLock()
	defer that.watchersMutex.RUnlock()

	return len(that.watchers[gameID])
}
