package entity

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

var ErrInvalidCell = errors.New("invalid cell index")

// Game - one session: every board snapshot played so far and the snapshot currently shown.
//
// History[0] is always the empty board and each later snapshot differs from the
// previous one by a single cell. Cursor selects the active snapshot and decides
// whose turn it is: even cursor means X moves next.
type Game struct {
	ID      string  `json:"id"`
	Size    int     `json:"size"`
	History []Board `json:"history"`
	Cursor  int     `json:"cursor"`
}

func NewGame(id string, size int) *Game {
	return &Game{
		ID:      id,
		Size:    size,
		History: []Board{NewBoard(size)},
		Cursor:  0,
	}
}

func (that *Game) CurrentBoard() Board {
	return that.History[that.Cursor]
}

func (that *Game) IsXNext() bool {
	return that.Cursor%2 == 0
}

func (that *Game) NextMark() Mark {
	if that.IsXNext() {
		return PlayerX
	}
	return PlayerO
}

func (that *Game) Winner() Mark {
	return NewEvaluator(that.Size).Evaluate(that.CurrentBoard())
}

func (that *Game) WinningLine() (Line, bool) {
	return NewEvaluator(that.Size).WinningLine(that.CurrentBoard())
}

func (that *Game) IsFinished() bool {
	return !that.Winner().IsEmpty()
}

func (that *Game) Status() Status {
	if winner := that.Winner(); !winner.IsEmpty() {
		return Status{Winner: winner}
	}

	return Status{Next: that.NextMark()}
}

// Play - places the next mark on the current board.
//
// A finished position, an occupied cell or an out of range index leaves the game
// untouched and returns the reason. Otherwise every snapshot after the cursor is
// dropped, the new board is appended and the cursor moves to it.
func (that *Game) Play(cell int) error {
	current := that.CurrentBoard()

	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !current.InBounds(cell) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if !current[cell].IsEmpty() {
		return apperror.ErrCellOccupied
	}

	next := current.Clone()
	next[cell] = that.NextMark()

	// three-index slice so a truncated branch never shares storage with the new one
	that.History = append(that.History[:that.Cursor+1:that.Cursor+1], next)
	that.Cursor = len(that.History) - 1

	return nil
}

// JumpTo - moves the cursor to an earlier (or later) snapshot without touching history.
func (that *Game) JumpTo(move int) error {
	if move < 0 || move >= len(that.History) {
		return fmt.Errorf("%w: move %d, history has %d", apperror.ErrMoveOutOfRange, move, len(that.History))
	}

	that.Cursor = move

	return nil
}

// Moves - number of snapshots in history, the empty board included.
func (that *Game) Moves() int {
	return len(that.History)
}

// MoveDescriptions - labels for every snapshot a player can jump to.
func (that *Game) MoveDescriptions() []string {
	descriptions := make([]string, len(that.History))
	for move := range that.History {
		descriptions[move] = MoveDescription(move)
	}

	return descriptions
}

func MoveDescription(move int) string {
	if move > 0 {
		return "Go to move #" + strconv.Itoa(move)
	}
	return "Go to game start"
}

// Status - what the status line shows: the winner if there is one, whose turn it is otherwise.
type Status struct {
	Winner Mark `json:"winner"`
	Next   Mark `json:"next"`
}

func (that Status) IsFinished() bool {
	return !that.Winner.IsEmpty()
}

func (that Status) String() string {
	if that.IsFinished() {
		return "Winner: " + string(that.Winner)
	}
	return "Next player: " + string(that.Next)
}
