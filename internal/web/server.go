package web

import (
    "bytes"
    "net/http"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/jaminalder/tictactoe-minimax/internal/app"
)

// NewServer wires routes and returns an http.Handler. It also installs the
// board renderer used for SSE broadcasts on s.
func NewServer(s *app.Service) http.Handler {
    h := &handlers{svc: s, tpl: loadTemplates()}
    s.SetRenderer(func(gs app.GameState) []byte {
        // SSE data lines cannot carry raw newlines
        return bytes.ReplaceAll(h.renderBoard(gs, ""), []byte("\n"), []byte(" "))
    })

    r := chi.NewRouter()
    r.Use(middleware.Recoverer)
    r.Get("/", h.index)
    r.Get("/healthz", h.health)
    r.Post("/game", h.create)
    r.Route("/game/{id}", func(r chi.Router) {
        r.Get("/", h.view)
        r.Post("/join", h.join)
        r.Post("/play", h.play)
        r.Post("/reset", h.reset)
        r.Post("/reset-all", h.resetAll)
        r.Get("/events", h.events)
        r.Get("/ws", h.ws)
    })
    return r
}

// WithRequestLog wraps next with chi's request logger.
func WithRequestLog(next http.Handler) http.Handler {
    return middleware.Logger(next)
}
