// Package ui renders a game against the computer in the terminal.
package ui

import (
    "fmt"
    "time"

    "github.com/gdamore/tcell/v2"
    "github.com/rivo/tview"

    "github.com/jaminalder/tictactoe-minimax/internal/app"
    "github.com/jaminalder/tictactoe-minimax/internal/config"
    "github.com/jaminalder/tictactoe-minimax/internal/domain"
    "github.com/jaminalder/tictactoe-minimax/internal/engine"
)

// BoardUI is a 3x3 table bound to a single game session. All fields are
// owned by the tview event goroutine.
type BoardUI struct {
    table    *tview.Table
    status   *tview.TextView
    cfg      *config.Config
    game     domain.Game
    human    domain.Cell
    computer domain.Cell
    score    app.Score
    thinking bool

    // schedule runs fn on the UI goroutine after d.
    schedule func(d time.Duration, fn func())
}

// NewBoard creates a board widget. status receives the turn and score text.
func NewBoard(a *tview.Application, cfg *config.Config, status *tview.TextView) *BoardUI {
    b := &BoardUI{
        table:  tview.NewTable(),
        status: status,
        cfg:    cfg,
        human:  domain.X,
    }
    if cfg.HumanMark == "O" {
        b.human = domain.O
    }
    b.computer = b.human.Opponent()
    b.schedule = func(d time.Duration, fn func()) {
        time.AfterFunc(d, func() { a.QueueUpdateDraw(fn) })
    }

    b.table.SetBorder(true).SetTitle(" Tic-Tac-Toe ")
    b.table.SetSelectable(true, true)
    b.table.SetBackgroundColor(tcell.PaletteColor(cfg.Colors.Board))
    b.table.SetSelectedStyle(tcell.StyleDefault.Background(tcell.PaletteColor(cfg.Colors.Cursor)))
    b.table.SetSelectedFunc(func(row, col int) {
        b.Play(row*3 + col)
    })
    b.NewRound()
    return b
}

// Table returns the underlying tview component.
func (b *BoardUI) Table() *tview.Table { return b.table }

// Game returns a copy of the current round.
func (b *BoardUI) Game() domain.Game { return b.game }

// Score returns the tally of finished rounds.
func (b *BoardUI) Score() app.Score { return b.score }

// Play places the human mark at idx and schedules the computer reply.
// Input is ignored while the computer is thinking or the round is over.
func (b *BoardUI) Play(idx int) {
    if b.thinking || b.game.Turn != b.human {
        return
    }
    if err := b.game.PlayAt(idx); err != nil {
        b.refresh()
        return
    }
    if !b.finish() {
        b.think()
    }
    b.refresh()
}

// NewRound clears the board and keeps the score. If the computer plays X it
// moves first.
func (b *BoardUI) NewRound() {
    b.game = domain.New()
    b.thinking = false
    if b.game.Turn == b.computer {
        b.think()
    }
    b.refresh()
}

// ResetAll clears the score and starts a new round.
func (b *BoardUI) ResetAll() {
    b.score = app.Score{}
    b.NewRound()
}

func (b *BoardUI) think() {
    b.thinking = true
    round := b.game
    b.schedule(b.cfg.ThinkDelay(), func() {
        // a reset while waiting makes this reply stale
        if !b.thinking || b.game != round {
            return
        }
        b.thinking = false
        mv := engine.BestMove(&b.game.Board, b.computer)
        if err := b.game.PlayAt(mv); err == nil {
            b.finish()
        }
        b.refresh()
    })
}

// finish tallies the round if it just ended.
func (b *BoardUI) finish() bool {
    if !b.game.Over() {
        return false
    }
    switch r := b.game.Result; {
    case r.Status == domain.Draw:
        b.score.Draws++
    case r.Winner == b.human:
        b.score.Human++
    default:
        b.score.Computer++
    }
    return true
}

func (b *BoardUI) symbol(c domain.Cell) string {
    switch c {
    case domain.X:
        return string(b.cfg.Symbols.X)
    case domain.O:
        return string(b.cfg.Symbols.O)
    default:
        return string(b.cfg.Symbols.Empty)
    }
}

func (b *BoardUI) onLine(idx int) bool {
    if b.game.Result.Status != domain.Win {
        return false
    }
    for _, i := range b.game.Result.Line {
        if i == idx {
            return true
        }
    }
    return false
}

func (b *BoardUI) refresh() {
    for i, c := range b.game.Board {
        color := tcell.PaletteColor(b.cfg.Colors.Board)
        switch c {
        case b.human:
            color = tcell.PaletteColor(b.cfg.Colors.Human)
        case b.computer:
            color = tcell.PaletteColor(b.cfg.Colors.Comp)
        }
        cell := tview.NewTableCell(" " + b.symbol(c) + " ").
            SetAlign(tview.AlignCenter).
            SetExpansion(1).
            SetTextColor(color)
        if b.onLine(i) {
            cell.SetBackgroundColor(tcell.PaletteColor(b.cfg.Colors.Win))
        }
        b.table.SetCell(i/3, i%3, cell)
    }
    if b.status != nil {
        b.status.SetText(b.statusText())
    }
}

func (b *BoardUI) statusText() string {
    var line string
    r := b.game.Result
    switch {
    case r.Status == domain.Draw:
        line = "Draw!"
    case r.Status == domain.Win && r.Winner == b.human:
        line = "You win!"
    case r.Status == domain.Win:
        line = "Computer wins!"
    case b.thinking:
        line = fmt.Sprintf("Computer (%s) is thinking...", b.symbol(b.computer))
    default:
        line = fmt.Sprintf("Your turn (%s)", b.symbol(b.human))
    }
    return fmt.Sprintf("%s\n\nYou %d  Computer %d  Draws %d\n\nenter: play  n: new round  r: reset all  q: quit",
        line, b.score.Human, b.score.Computer, b.score.Draws)
}
