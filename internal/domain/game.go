package domain

import "errors"

// Cell represents a board cell state.
type Cell uint8

const (
    Empty Cell = iota
    X
    O
)

func (c Cell) String() string {
    switch c {
    case X:
        return "X"
    case O:
        return "O"
    default:
        return ""
    }
}

// Opponent returns the other mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
    switch c {
    case X:
        return O
    case O:
        return X
    default:
        return Empty
    }
}

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// Full reports whether every cell holds a mark.
func (b Board) Full() bool {
    for _, c := range b {
        if c == Empty {
            return false
        }
    }
    return true
}

// Empty returns the indices of free cells in ascending order.
func (b Board) Empty() []int {
    out := make([]int, 0, 9)
    for i, c := range b {
        if c == Empty {
            out = append(out, i)
        }
    }
    return out
}

// Game holds the current state of a Tic-Tac-Toe round.
type Game struct {
    Board  Board
    Turn   Cell
    Result Result
    Moves  int
}

// Errors returned by domain operations.
var (
    ErrOutOfBounds = errors.New("out of bounds")
    ErrOccupied    = errors.New("cell occupied")
    ErrGameOver    = errors.New("game over")
)

// New returns a new game with X to move.
func New() Game {
    return Game{Turn: X}
}

// Over reports whether the round has ended.
func (g Game) Over() bool { return g.Result.Finished() }

// Winner returns the winning mark, or Empty for a draw or an ongoing round.
func (g Game) Winner() Cell { return g.Result.Winner }

// Play attempts to play the current turn at row r, column c (0..2).
func (g *Game) Play(r, c int) error {
    if g.Over() {
        return ErrGameOver
    }
    if r < 0 || r > 2 || c < 0 || c > 2 {
        return ErrOutOfBounds
    }
    return g.PlayAt(r*3 + c)
}

// PlayAt plays the current turn at board index idx (0..8).
func (g *Game) PlayAt(idx int) error {
    if g.Over() {
        return ErrGameOver
    }
    if idx < 0 || idx >= len(g.Board) {
        return ErrOutOfBounds
    }
    if g.Board[idx] != Empty {
        return ErrOccupied
    }

    g.Board[idx] = g.Turn
    g.Moves++

    g.Result = Evaluate(g.Board)
    if g.Result.Finished() {
        return nil
    }

    g.Turn = g.Turn.Opponent()
    return nil
}
