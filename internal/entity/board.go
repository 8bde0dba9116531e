package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const BoardSize = 9

// Line - three cell indexes that win the game when owned by one mark.
type Line [3]int

// winLines is built once and never mutated: rows, then columns, then diagonals.
var winLines = buildWinLines()

// WinningLines returns a copy of the eight winning lines.
func WinningLines() [8]Line {
	return winLines
}

func buildWinLines() [8]Line {
	var lines [8]Line

	n := 0
	for row := 0; row < 3; row++ {
		lines[n] = Line{row * 3, row*3 + 1, row*3 + 2}
		n++
	}

	for col := 0; col < 3; col++ {
		lines[n] = Line{col, col + 3, col + 6}
		n++
	}

	lines[n] = Line{0, 4, 8}
	lines[n+1] = Line{2, 4, 6}

	return lines
}

func (that Mark) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

type Result string

const (
	ResultOngoing Result = "ongoing"
	ResultWon     Result = "won"
	ResultDraw    Result = "draw"
)

// Outcome is always derived from a Board, never stored as the source of truth.
type Outcome struct {
	Result Result
	Winner Mark
}

func Ongoing() Outcome { return Outcome{Result: ResultOngoing} }

func Draw() Outcome { return Outcome{Result: ResultDraw} }

func Won(mark Mark) Outcome { return Outcome{Result: ResultWon, Winner: mark} }

func (that Outcome) IsOver() bool { return that.Result != ResultOngoing }

// Board - 3x3 grid in row-major order. It is an array, so assigning or passing
// a Board copies it and ApplyMove never touches the receiver.
type Board [BoardSize]Mark

func NewBoard() Board {
	return Board{}
}

func validateCell(cell int) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrOutOfBounds, cell)
	}

	return nil
}

func (that Board) IsOccupied(cell int) (bool, error) {
	if err := validateCell(cell); err != nil {
		return false, err
	}

	return that[cell] != EmptyCell, nil
}

// ApplyMove returns a copy of the board with mark placed at cell.
func (that Board) ApplyMove(cell int, mark Mark) (Board, error) {
	occupied, err := that.IsOccupied(cell)
	if err != nil {
		return that, err
	}

	if !mark.IsValid() {
		return that, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if occupied {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrInvalidMove, cell)
	}

	next := that
	next[cell] = mark

	return next, nil
}

// EmptyCells returns the free cell indexes in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) MoveCount() int {
	return BoardSize - len(that.EmptyCells())
}

// NextMark derives whose turn it is from move parity, X always opens.
func (that Board) NextMark() Mark {
	if that.MoveCount()%2 == 0 {
		return PlayerX
	}

	return PlayerO
}

func (that Board) Evaluate() Outcome {
	for _, line := range winLines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if a != EmptyCell && a == b && b == c {
			return Won(a)
		}
	}

	// the game will continue until all the squares are full
	for _, cell := range that {
		if cell == EmptyCell {
			return Ongoing()
		}
	}

	return Draw()
}

// WinningLineFor returns the first line fully owned by mark, for highlighting.
func (that Board) WinningLineFor(mark Mark) (Line, bool) {
	if !mark.IsValid() {
		return Line{}, false
	}

	for _, line := range winLines {
		if that[line[0]] == mark && that[line[1]] == mark && that[line[2]] == mark {
			return line, true
		}
	}

	return Line{}, false
}

func (that Board) String() string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}

		for col := 0; col < 3; col++ {
			cell := that[row*3+col]
			if cell == EmptyCell {
				sb.WriteByte('.')
			} else {
				sb.WriteString(string(cell))
			}
		}
	}

	return sb.String()
}
