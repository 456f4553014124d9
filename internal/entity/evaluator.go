package entity

import (
	"slices"
	"sync"
)

// WinLength - number of identical marks in a row that wins the game.
const WinLength = 5

// Line - cell indices of one run of WinLength cells.
type Line [WinLength]int

var (
	linesMu    sync.Mutex
	linesCache = make(map[int][]Line)
)

// GenerateLines - enumerates every horizontal, vertical, diagonal and anti-diagonal
// window of WinLength cells on a size x size board.
//
// Order: for each row i and window j the horizontal line of row i and the vertical
// line of column i, then for each top-left origin (i, j) the diagonal and the
// anti-diagonal. Boards smaller than WinLength have no lines.
func GenerateLines(size int) []Line {
	if size < WinLength {
		return nil
	}

	windows := size - WinLength + 1
	lines := make([]Line, 0, 2*size*windows+2*windows*windows)

	for i := 0; i < size; i++ {
		for j := 0; j < windows; j++ {
			var horizontal, vertical Line
			for k := 0; k < WinLength; k++ {
				horizontal[k] = i*size + j + k
				vertical[k] = (j+k)*size + i
			}
			lines = append(lines, horizontal, vertical)
		}
	}

	for i := 0; i < windows; i++ {
		for j := 0; j < windows; j++ {
			var diagonal, antiDiagonal Line
			for k := 0; k < WinLength; k++ {
				diagonal[k] = (i+k)*size + j + k
				antiDiagonal[k] = (i+k)*size + j + WinLength - 1 - k
			}
			lines = append(lines, diagonal, antiDiagonal)
		}
	}

	return lines
}

// linesFor - returns the memoised line set for the given board size.
func linesFor(size int) []Line {
	linesMu.Lock()
	defer linesMu.Unlock()

	if lines, ok := linesCache[size]; ok {
		return lines
	}

	lines := GenerateLines(size)
	linesCache[size] = lines

	return lines
}

// Evaluator checks boards of one fixed size for a winning line.
type Evaluator struct {
	size  int
	lines []Line
}

func NewEvaluator(size int) *Evaluator {
	return &Evaluator{
		size:  size,
		lines: linesFor(size),
	}
}

func (that *Evaluator) Size() int {
	return that.size
}

func (that *Evaluator) Lines() []Line {
	return slices.Clone(that.lines)
}

// Evaluate - returns the winning mark, or EmptyCell when nobody has won.
func (that *Evaluator) Evaluate(board Board) Mark {
	line, ok := that.WinningLine(board)
	if !ok {
		return EmptyCell
	}

	return board[line[0]]
}

// WinningLine - returns the first line, in enumeration order, filled with one non-empty mark.
func (that *Evaluator) WinningLine(board Board) (Line, bool) {
	if len(board) != that.size*that.size {
		return Line{}, false
	}

	for _, line := range that.lines {
		first := board[line[0]]
		if first.IsEmpty() {
			continue
		}

		if board[line[1]] == first && board[line[2]] == first && board[line[3]] == first && board[line[4]] == first {
			return line, true
		}
	}

	return Line{}, false
}
