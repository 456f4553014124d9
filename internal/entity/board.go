package entity

import "slices"

// Mark - occupant of a board cell.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// DefaultBoardSize - board side used when nothing else is configured.
const DefaultBoardSize = 15

func (that Mark) IsEmpty() bool {
	return that == EmptyCell
}

// Board is a size*size grid flattened row-major: index = row*size + col.
type Board []Mark

func NewBoard(size int) Board {
	if size < 0 {
		size = 0
	}

	return make(Board, size*size)
}

func (that Board) Clone() Board {
	return slices.Clone(that)
}

func (that Board) InBounds(cell int) bool {
	return cell >= 0 && cell < len(that)
}
