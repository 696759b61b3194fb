package domain

// Status is the coarse state of a board.
type Status uint8

const (
    Ongoing Status = iota
    Win
    Draw
)

func (s Status) String() string {
    switch s {
    case Win:
        return "win"
    case Draw:
        return "draw"
    default:
        return "ongoing"
    }
}

// WinLines lists every winning triple: rows, then columns, then diagonals.
// Evaluate relies on this order to pick the reported line.
var WinLines = [8][3]int{
    // rows
    {0, 1, 2}, {3, 4, 5}, {6, 7, 8},
    // cols
    {0, 3, 6}, {1, 4, 7}, {2, 5, 8},
    // diags
    {0, 4, 8}, {2, 4, 6},
}

// Result is the outcome of evaluating a board. Winner and Line are only
// meaningful when Status is Win.
type Result struct {
    Status Status
    Winner Cell
    Line   [3]int
}

// Finished reports whether the result is a win or a draw.
func (r Result) Finished() bool { return r.Status != Ongoing }

// Evaluate reports whether the board is won, drawn or still in play.
func Evaluate(b Board) Result {
    if mark, line, ok := CompletedLine(&b); ok {
        return Result{Status: Win, Winner: mark, Line: line}
    }
    if b.Full() {
        return Result{Status: Draw}
    }
    return Result{Status: Ongoing}
}

// CompletedLine returns the first line in WinLines held entirely by one mark.
func CompletedLine(b *Board) (Cell, [3]int, bool) {
    for _, ln := range WinLines {
        m := b[ln[0]]
        if m != Empty && b[ln[1]] == m && b[ln[2]] == m {
            return m, ln, true
        }
    }
    return Empty, [3]int{}, false
}
