// Package engine picks moves for the computer player with a full-depth
// minimax search over the remaining game tree.
package engine

import (
    "math"

    "github.com/jaminalder/tictactoe-minimax/internal/domain"
)

// Terminal scores from the point of view of the searching player. Scores are
// not adjusted by depth, so a win is worth the same at every ply.
const (
    WinScore  = 10
    LossScore = -10
    DrawScore = 0
)

// BestMove returns the index of the cell self should play next.
//
// Every free cell is tried in ascending order and the first one with the
// highest minimax score is returned. The board is used as scratch space and
// is restored before BestMove returns, so the caller must not share it with
// another goroutine for the duration of the call.
//
// The board must be neither full nor already decided. On a full board the
// result is -1; a decided board is not checked.
func BestMove(b *domain.Board, self domain.Cell) int {
    best := math.MinInt
    move := -1
    for i := range b {
        if b[i] != domain.Empty {
            continue
        }
        s := try(b, i, self, func() int { return Score(b, self, false) })
        if s > best {
            best = s
            move = i
        }
    }
    return move
}

// Score returns the minimax value of b for self. maximizing is true when self
// is the next to move.
func Score(b *domain.Board, self domain.Cell, maximizing bool) int {
    if s, ok := terminal(b, self); ok {
        return s
    }

    if maximizing {
        best := math.MinInt
        for i := range b {
            if b[i] == domain.Empty {
                best = max(best, try(b, i, self, func() int { return Score(b, self, false) }))
            }
        }
        return best
    }

    best := math.MaxInt
    opp := self.Opponent()
    for i := range b {
        if b[i] == domain.Empty {
            best = min(best, try(b, i, opp, func() int { return Score(b, self, true) }))
        }
    }
    return best
}

// terminal scores a finished board. It applies the same line and fullness
// checks as domain.Evaluate.
func terminal(b *domain.Board, self domain.Cell) (int, bool) {
    if mark, _, ok := domain.CompletedLine(b); ok {
        if mark == self {
            return WinScore, true
        }
        return LossScore, true
    }
    if b.Full() {
        return DrawScore, true
    }
    return 0, false
}

// try places mark at idx, runs fn and clears the cell again on every exit path.
func try(b *domain.Board, idx int, mark domain.Cell, fn func() int) int {
    b[idx] = mark
    defer func() { b[idx] = domain.Empty }()
    return fn()
}
