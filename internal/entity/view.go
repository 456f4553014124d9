package entity

// GameView - what a client needs to draw a game: current board, status line and move list.
type GameView struct {
	ID          string   `json:"id"`
	Size        int      `json:"size"`
	Board       Board    `json:"board"`
	Cursor      int      `json:"cursor"`
	XIsNext     bool     `json:"x_is_next"`
	Winner      Mark     `json:"winner"`
	WinningLine []int    `json:"winning_line,omitempty"`
	Status      string   `json:"status"`
	Moves       []string `json:"moves"`
}

func (that *Game) View() GameView {
	status := that.Status()

	view := GameView{
		ID:      that.ID,
		Size:    that.Size,
		Board:   that.CurrentBoard(),
		Cursor:  that.Cursor,
		XIsNext: that.IsXNext(),
		Winner:  status.Winner,
		Status:  status.String(),
		Moves:   that.MoveDescriptions(),
	}

	if line, ok := that.WinningLine(); ok {
		view.WinningLine = line[:]
	}

	return view
}
