package web

import (
    "context"
    "log"
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/jaminalder/tictactoe-minimax/internal/app"
    "github.com/jaminalder/tictactoe-minimax/internal/domain"
    "nhooyr.io/websocket"
    "nhooyr.io/websocket/wsjson"
)

// snapshot is the JSON view of a session pushed over the websocket.
type snapshot struct {
    ID     string    `json:"id"`
    Board  [9]string `json:"board"`
    Turn   string    `json:"turn"`
    Status string    `json:"status"`
    Winner string    `json:"winner,omitempty"`
    Line   []int     `json:"line,omitempty"`
    Score  struct {
        Human    int `json:"human"`
        Computer int `json:"computer"`
        Draws    int `json:"draws"`
    } `json:"score"`
}

func newSnapshot(gs app.GameState) snapshot {
    s := snapshot{
        ID:     gs.ID,
        Turn:   gs.Game.Turn.String(),
        Status: gs.Game.Result.Status.String(),
    }
    for i, c := range gs.Game.Board {
        s.Board[i] = c.String()
    }
    if gs.Game.Result.Status == domain.Win {
        s.Winner = gs.Game.Result.Winner.String()
        s.Line = gs.Game.Result.Line[:]
    }
    s.Score.Human = gs.Score.Human
    s.Score.Computer = gs.Score.Computer
    s.Score.Draws = gs.Score.Draws
    return s
}

var wsWriteTimeout = 5 * time.Second

// ws streams a JSON snapshot on connect and after every change to the session.
func (h *handlers) ws(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if _, ok := h.svc.Get(id); !ok {
        http.NotFound(w, r)
        return
    }
    c, err := websocket.Accept(w, r, nil)
    if err != nil {
        log.Printf("ws accept %s: %v", id, err)
        return
    }
    defer c.Close(websocket.StatusInternalError, "unexpected exit")

    // The feed is one-way; CloseRead handles control frames and cancels on close.
    ctx := c.CloseRead(r.Context())
    ch, unsub := h.svc.Subscribe(ctx, id)
    defer unsub()

    if err := h.pushSnapshot(ctx, c, id); err != nil {
        return
    }
    ping := time.NewTicker(heartbeatInterval)
    defer ping.Stop()
    for {
        select {
        case <-ctx.Done():
            c.Close(websocket.StatusNormalClosure, "")
            return
        case <-ping.C:
            if err := c.Ping(ctx); err != nil {
                return
            }
        case _, ok := <-ch:
            if !ok {
                c.Close(websocket.StatusTryAgainLater, "subscriber dropped")
                return
            }
            if err := h.pushSnapshot(ctx, c, id); err != nil {
                return
            }
        }
    }
}

func (h *handlers) pushSnapshot(ctx context.Context, c *websocket.Conn, id string) error {
    gs, ok := h.svc.Get(id)
    if !ok {
        return app.ErrNotFound
    }
    ctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
    defer cancel()
    return wsjson.Write(ctx, c, newSnapshot(*gs))
}
