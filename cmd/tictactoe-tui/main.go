// tictactoe-tui plays tic-tac-toe against the computer in the terminal.
package main

import (
    "flag"
    "fmt"
    "os"

    "github.com/gdamore/tcell/v2"
    "github.com/rivo/tview"

    "github.com/jaminalder/tictactoe-minimax/internal/config"
    "github.com/jaminalder/tictactoe-minimax/internal/ui"
)

// Command-line flags
var (
    flagMark  = flag.String("mark", "", "Your mark (X or O); X moves first")
    flagDelay = flag.Int("delay", -1, "Computer thinking delay in milliseconds")
    flagSave  = flag.Bool("save", false, "Save the effective settings to the config file")
)

func main() {
    flag.Parse()

    cfg, err := config.InitConfig()
    if err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
    if *flagMark != "" {
        cfg.HumanMark = *flagMark
    }
    if *flagDelay >= 0 {
        cfg.ThinkDelayMS = *flagDelay
    }
    if err := cfg.Validate(); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
    if *flagSave {
        if err := cfg.Save(); err != nil {
            fmt.Fprintf(os.Stderr, "save config: %s\n", err)
            os.Exit(1)
        }
    }

    app := tview.NewApplication()
    status := tview.NewTextView()
    status.SetBorder(true)
    status.SetBorderPadding(0, 0, 1, 1)
    status.SetTitle(" Status ")
    status.SetTitleAlign(tview.AlignLeft)

    board := ui.NewBoard(app, cfg, status)
    board.Table().SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
        if event.Key() != tcell.KeyRune {
            return event
        }
        switch event.Rune() {
        case 'q':
            app.Stop()
            return nil
        case 'n':
            board.NewRound()
            return nil
        case 'r':
            board.ResetAll()
            return nil
        }
        return event
    })

    layout := tview.NewFlex().
        AddItem(board.Table(), 0, 1, true).
        AddItem(status, 0, 1, false)

    if err := app.SetRoot(layout, true).SetFocus(board.Table()).Run(); err != nil {
        panic(err)
    }
}
