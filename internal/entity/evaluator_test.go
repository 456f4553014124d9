package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardWith(size int, mark Mark, cells ...int) Board {
	board := NewBoard(size)
	for _, cell := range cells {
		board[cell] = mark
	}
	return board
}

func TestGenerateLines(t *testing.T) {
	t.Run("Line count covers every window", func(t *testing.T) {
		for _, size := range []int{5, 6, 7, 10, 15, 19} {
			// When: generating lines for the board size
			lines := GenerateLines(size)

			// Then: there are N*(N-4) rows and columns each plus (N-4)^2 diagonals each
			assert.Len(t, lines, 4*(size-2)*(size-4), "size %d", size)
		}
	})

	t.Run("Boards smaller than five have no lines", func(t *testing.T) {
		for size := 0; size < WinLength; size++ {
			assert.Empty(t, GenerateLines(size), "size %d", size)
		}
	})

	t.Run("Enumeration order starts with row and column of index 0", func(t *testing.T) {
		// When: generating lines for a 15x15 board
		lines := GenerateLines(15)

		// Then: horizontal and vertical come first, diagonals after the straight lines
		assert.Equal(t, Line{0, 1, 2, 3, 4}, lines[0])
		assert.Equal(t, Line{0, 15, 30, 45, 60}, lines[1])
		assert.Equal(t, Line{1, 2, 3, 4, 5}, lines[2])

		straight := 2 * 15 * 11
		assert.Equal(t, Line{0, 16, 32, 48, 64}, lines[straight])
		assert.Equal(t, Line{4, 18, 32, 46, 60}, lines[straight+1])
	})

	t.Run("Every line stays on the board", func(t *testing.T) {
		for _, line := range GenerateLines(7) {
			for _, cell := range line {
				assert.GreaterOrEqual(t, cell, 0)
				assert.Less(t, cell, 49)
			}
		}
	})
}

func TestEvaluator_Evaluate(t *testing.T) {
	evaluator := NewEvaluator(15)

	t.Run("Empty board has no winner", func(t *testing.T) {
		for _, size := range []int{3, 5, 15} {
			assert.Equal(t, EmptyCell, NewEvaluator(size).Evaluate(NewBoard(size)))
		}
	})

	t.Run("Horizontal run wins", func(t *testing.T) {
		// Given: five X marks in row 3 starting at column 6
		board := boardWith(15, PlayerX, 51, 52, 53, 54, 55)

		// Then: X is the winner
		assert.Equal(t, PlayerX, evaluator.Evaluate(board))
	})

	t.Run("Vertical run wins", func(t *testing.T) {
		// Given: five O marks down column 14
		board := boardWith(15, PlayerO, 14, 29, 44, 59, 74)

		assert.Equal(t, PlayerO, evaluator.Evaluate(board))
	})

	t.Run("Diagonal run wins", func(t *testing.T) {
		// Given: five X marks from (10,10) to (14,14)
		board := boardWith(15, PlayerX, 160, 176, 192, 208, 224)

		assert.Equal(t, PlayerX, evaluator.Evaluate(board))
	})

	t.Run("Anti-diagonal run wins", func(t *testing.T) {
		// Given: five O marks from (0,14) to (4,10)
		board := boardWith(15, PlayerO, 14, 28, 42, 56, 70)

		assert.Equal(t, PlayerO, evaluator.Evaluate(board))
	})

	t.Run("Four in a row is not a win", func(t *testing.T) {
		board := boardWith(15, PlayerX, 0, 1, 2, 3)

		assert.Equal(t, EmptyCell, evaluator.Evaluate(board))
	})

	t.Run("Run does not wrap across rows", func(t *testing.T) {
		// Given: cells 12, 13, 14 end row 0 and 15, 16 start row 1
		board := boardWith(15, PlayerX, 12, 13, 14, 15, 16)

		assert.Equal(t, EmptyCell, evaluator.Evaluate(board))
	})

	t.Run("Marks elsewhere do not matter", func(t *testing.T) {
		// Given: a winning X row with O marks scattered around it
		board := boardWith(15, PlayerX, 100, 101, 102, 103, 104)
		for _, cell := range []int{0, 16, 99, 105, 200} {
			board[cell] = PlayerO
		}

		assert.Equal(t, PlayerX, evaluator.Evaluate(board))
	})

	t.Run("Mixed marks do not win", func(t *testing.T) {
		board := boardWith(15, PlayerX, 0, 1, 3, 4)
		board[2] = PlayerO

		assert.Equal(t, EmptyCell, evaluator.Evaluate(board))
	})

	t.Run("Board of wrong length has no winner", func(t *testing.T) {
		board := boardWith(5, PlayerX, 0, 1, 2, 3, 4)

		assert.Equal(t, EmptyCell, evaluator.Evaluate(board))
	})
}

func TestEvaluator_WinningLine(t *testing.T) {
	t.Run("Returns the first complete line", func(t *testing.T) {
		// Given: six X marks in row 0, containing two windows
		board := boardWith(15, PlayerX, 0, 1, 2, 3, 4, 5)

		// When: looking up the winning line
		line, ok := NewEvaluator(15).WinningLine(board)

		// Then: the window starting at column 0 is reported
		require.True(t, ok)
		assert.Equal(t, Line{0, 1, 2, 3, 4}, line)
	})

	t.Run("No line on an open board", func(t *testing.T) {
		_, ok := NewEvaluator(15).WinningLine(NewBoard(15))

		assert.False(t, ok)
	})
}

func TestNewEvaluator_SharesLines(t *testing.T) {
	first := NewEvaluator(9)
	second := NewEvaluator(9)

	// Then: the line set is computed once per size
	require.NotEmpty(t, first.lines)
	assert.Same(t, &first.lines[0], &second.lines[0])
	assert.Equal(t, 9, first.Size())

	// And: callers get a copy they cannot corrupt
	lines := first.Lines()
	lines[0] = Line{}
	assert.Equal(t, Line{0, 1, 2, 3, 4}, first.lines[0])
}
