package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	boardSize int
	locks     *gameLocks
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, boardSize int) *GameManager {
	if boardSize <= 0 {
		boardSize = entity.DefaultBoardSize
	}

	return &GameManager{
		logger:   logger.With("component", "gameManager"),
		gameRepo: gameRepo,

		boardSize: boardSize,
		locks:     newGameLocks(),
	}
}

// CreateGame - starts a new session with an empty board.
func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(pkg.GenerateGameID(), that.boardSize)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "size", game.Size)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// Play - places the next mark on the game's current board.
//
// Rejected moves (occupied cell, finished game, cell off the board) are not errors:
// the unchanged game is returned and nothing is saved.
func (that *GameManager) Play(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "Play", "gameID", id, "cell", cell)

	unlock := that.locks.lock(id)
	defer unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.Play(cell); err != nil {
		if isRejectedMove(err) {
			log.Debug("move ignored", "reason", err)
			return game, nil
		}

		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if winner := game.Winner(); !winner.IsEmpty() {
		log.Info("game won", "winner", winner, "move", game.Cursor)
	} else {
		log.Debug("move played", "move", game.Cursor)
	}

	return game, nil
}

// JumpTo - moves the game's cursor to an existing snapshot.
func (that *GameManager) JumpTo(ctx context.Context, id string, move int) (*entity.Game, error) {
	unlock := that.locks.lock(id)
	defer unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.JumpTo(move); err != nil {
		return nil, fmt.Errorf("failed to jump: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Debug("jumped", "gameID", id, "move", move)

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func isRejectedMove(err error) bool {
	return errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, entity.ErrInvalidCell)
}
