package superxo

import (
	"github.com/Sodium-2000/super-xo-backend/internal/entity"
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Resolver decides the outcome of a nine-cell grid. The same rule covers
// small boards and the big board of resolution markers, where drawn
// boards occupy cells without ever completing a line.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the winning symbol when a line is complete, MarkDrawn
// when the grid filled up without one, and EmptyCell while the grid is
// still in play.
func (that *Resolver) Resolve(cells [entity.CellCount]string) string {
	for _, combo := range WinCombos {
		a, b, c := cells[combo[0]], cells[combo[1]], cells[combo[2]]
		if (a == entity.PlayerX || a == entity.PlayerO) && a == b && b == c {
			return a
		}
	}

	for _, cell := range cells {
		if cell == entity.EmptyCell {
			return entity.EmptyCell
		}
	}

	return entity.MarkDrawn
}

// GameWinner resolves the big board, for summaries of finished games.
func (that *Resolver) GameWinner(state *entity.GameState) string {
	return that.Resolve(state.BigBoard)
}
