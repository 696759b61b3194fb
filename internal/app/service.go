package app

import (
    "context"
    "errors"
    "log"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/jaminalder/tictactoe-minimax/internal/domain"
    "github.com/jaminalder/tictactoe-minimax/internal/engine"
)

// Errors exposed by the service layer.
var (
    ErrNotFound    = errors.New("game not found")
    ErrNotYourTurn = errors.New("not your turn")
    ErrNotAPlayer  = errors.New("not a player")
)

// Score tallies finished rounds of one session.
type Score struct {
    Human    int
    Computer int
    Draws    int
}

// GameState is the in-memory state tracked per session.
type GameState struct {
    ID       string
    Game     domain.Game
    Player   string
    Human    domain.Cell
    Computer domain.Cell
    Score    Score
    Created  time.Time
    Updated  time.Time
}

// Status returns a short human readable description of the round.
func (gs GameState) Status() string {
    r := gs.Game.Result
    switch {
    case r.Status == domain.Draw:
        return "Draw!"
    case r.Status == domain.Win && r.Winner == gs.Human:
        return "You win!"
    case r.Status == domain.Win:
        return "Computer wins!"
    case gs.Game.Turn == gs.Human:
        return "Your turn (" + gs.Human.String() + ")"
    default:
        return "Computer (" + gs.Computer.String() + ") is thinking..."
    }
}

// OnLine reports whether board index idx is part of the winning line.
func (gs GameState) OnLine(idx int) bool {
    if gs.Game.Result.Status != domain.Win {
        return false
    }
    for _, i := range gs.Game.Result.Line {
        if i == idx {
            return true
        }
    }
    return false
}

type subscriber struct {
    ch        chan []byte
    closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages sessions and subscribers. All moves, including the
// computer's search, run under mu so a board is never searched concurrently.
type Service struct {
    mu     sync.Mutex
    games  map[string]*GameState
    subs   map[string]map[*subscriber]struct{}
    render func(GameState) []byte
}

// NewService creates a service with a default renderer (encodes nothing useful).
func NewService() *Service { return NewServiceWithRenderer(func(gs GameState) []byte { return nil }) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte) *Service {
    if renderer == nil {
        renderer = func(gs GameState) []byte { return nil }
    }
    return &Service{
        games:  make(map[string]*GameState),
        subs:   make(map[string]map[*subscriber]struct{}),
        render: renderer,
    }
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = func(gs GameState) []byte { return nil }
        return
    }
    s.render = renderer
}

func newState(id string) *GameState {
    now := time.Now()
    return &GameState{
        ID:       id,
        Game:     domain.New(),
        Human:    domain.X,
        Computer: domain.O,
        Created:  now,
        Updated:  now,
    }
}

// CreateGame creates and registers a new session. The human plays X and moves first.
func (s *Service) CreateGame() (*GameState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs := newState(uuid.NewString())
    s.games[gs.ID] = gs
    cp := *gs
    return &cp, nil
}

// Get returns a copy of the session state if present.
func (s *Service) Get(id string) (*GameState, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return nil, false
    }
    cp := *gs
    return &cp, true
}

// Join gives the human seat to the first player; later players spectate.
// It returns the seat taken, or Empty for spectators.
func (s *Service) Join(id, playerID string) (domain.Cell, *GameState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return domain.Empty, nil, ErrNotFound
    }
    side := domain.Empty
    if gs.Player == "" || gs.Player == playerID {
        gs.Player = playerID
        side = gs.Human
    }
    gs.Updated = time.Now()
    cp := *gs
    return side, &cp, nil
}

// Play applies the human move at row r, column c, lets the computer reply
// while the round is still open, and broadcasts the result.
func (s *Service) Play(id, playerID string, r, c int) (*GameState, error) {
    return s.mutate(id, playerID, func(gs *GameState) error {
        if gs.Game.Turn != gs.Human && !gs.Game.Over() {
            return ErrNotYourTurn
        }
        if err := gs.Game.Play(r, c); err != nil {
            return err
        }
        if !gs.Game.Over() {
            mv := engine.BestMove(&gs.Game.Board, gs.Computer)
            if err := gs.Game.PlayAt(mv); err != nil {
                return err
            }
            log.Printf("game %s: computer played %d", gs.ID, mv)
        }
        if gs.Game.Over() {
            tally(gs)
        }
        return nil
    })
}

// Reset starts a new round and keeps the score.
func (s *Service) Reset(id, playerID string) (*GameState, error) {
    return s.mutate(id, playerID, func(gs *GameState) error {
        gs.Game = domain.New()
        return nil
    })
}

// ResetAll starts a new round and clears the score.
func (s *Service) ResetAll(id, playerID string) (*GameState, error) {
    return s.mutate(id, playerID, func(gs *GameState) error {
        gs.Game = domain.New()
        gs.Score = Score{}
        return nil
    })
}

func tally(gs *GameState) {
    r := gs.Game.Result
    switch {
    case r.Status == domain.Draw:
        gs.Score.Draws++
    case r.Winner == gs.Human:
        gs.Score.Human++
    default:
        gs.Score.Computer++
    }
    log.Printf("game %s: round over (%v %v), score %d-%d-%d",
        gs.ID, r.Status, r.Winner, gs.Score.Human, gs.Score.Computer, gs.Score.Draws)
}

// mutate validates the seat, applies fn, updates timestamps, and broadcasts.
func (s *Service) mutate(id, playerID string, fn func(gs *GameState) error) (*GameState, error) {
    var payload []byte
    var cp GameState
    var toDrop []*subscriber

    s.mu.Lock()
    gs, ok := s.games[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    // Validate player is seated
    if gs.Player == "" || gs.Player != playerID {
        s.mu.Unlock()
        return nil, ErrNotAPlayer
    }
    if err := fn(gs); err != nil {
        s.mu.Unlock()
        return nil, err
    }
    gs.Updated = time.Now()

    // Snapshot state and subscribers
    cp = *gs
    subs := s.copySubsLocked(id)
    payload = s.render(cp)
    s.mu.Unlock()

    // Fan-out; drop slow subscribers by closing and marking for deletion
    for sub := range subs {
        select {
        case sub.ch <- payload:
        default:
            sub.close()
            toDrop = append(toDrop, sub)
        }
    }
    if len(toDrop) > 0 {
        s.mu.Lock()
        for _, sub := range toDrop {
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
            }
        }
        s.mu.Unlock()
    }
    return &cp, nil
}

// Subscribe registers a subscriber for a session. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.games[id]; !ok {
        // create lazily to allow subscriptions before CreateGame in some flows
        s.games[id] = newState(id)
    }
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    sub := &subscriber{ch: make(chan []byte, 1)}
    set[sub] = struct{}{}

    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
            }
            s.mu.Unlock()
            sub.close()
        })
    }
    go func() {
        <-ctx.Done()
        unsub()
    }()
    return sub.ch, unsub
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
    out := make(map[*subscriber]struct{})
    if set, ok := s.subs[id]; ok {
        for k := range set {
            out[k] = struct{}{}
        }
    }
    return out
}
