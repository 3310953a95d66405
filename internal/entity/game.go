package entity

const (
	PlayerX = "x"
	PlayerO = "o"

	// MarkDrawn marks a board that filled up without a winner.
	MarkDrawn = "-"

	EmptyCell = ""

	// NoActiveBoard means the next move may target any unresolved board.
	NoActiveBoard = -1

	BoardCount = 9
	CellCount  = 9
)

// SmallBoard is one of the nine sub-grids of the big board.
type SmallBoard struct {
	Cells  [CellCount]string `json:"cells"`
	Winner string            `json:"winner,omitempty"`
}

// GameState holds the full board position. The big board keeps one
// resolution marker per small board: "x", "o", "-" for a draw, or
// EmptyCell while the small board is still in play.
type GameState struct {
	BigBoard [BoardCount]string     `json:"bigBoard"`
	Boards   [BoardCount]SmallBoard `json:"boards"`
}

func NewGameState() *GameState {
	return &GameState{}
}

func (that *GameState) Cell(board, cell int) string {
	return that.Boards[board].Cells[cell]
}

func (that *GameState) SetCell(board, cell int, symbol string) {
	that.Boards[board].Cells[cell] = symbol
}

// BoardResolved reports whether a small board is already won or drawn.
func (that *GameState) BoardResolved(board int) bool {
	return that.BigBoard[board] != EmptyCell
}

// MarkBoard records a small board's outcome on the board itself and in
// the big board. A board that is already resolved is never overwritten.
func (that *GameState) MarkBoard(board int, marker string) {
	if marker == EmptyCell || that.BoardResolved(board) {
		return
	}

	that.Boards[board].Winner = marker
	that.BigBoard[board] = marker
}

// NextActiveBoard derives the forced board for the move after a play in
// the given cell: the small board at that cell's index, unless it is
// already resolved, in which case any board may be played.
func (that *GameState) NextActiveBoard(cell int) int {
	if cell < 0 || cell >= BoardCount {
		return NoActiveBoard
	}

	if that.BoardResolved(cell) {
		return NoActiveBoard
	}

	return cell
}

func OpponentSymbol(symbol string) string {
	if symbol == PlayerX {
		return PlayerO
	}

	return PlayerX
}
