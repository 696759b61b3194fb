package web

import (
    "bytes"
    "html/template"
    "net/http"

    "github.com/google/uuid"
    "github.com/jaminalder/tictactoe-minimax/internal/app"
    "github.com/jaminalder/tictactoe-minimax/internal/domain"
)

type templates struct {
    base  *template.Template
    game  *template.Template
    board *template.Template
    index *template.Template
}

func funcs() template.FuncMap {
    return template.FuncMap{
        "iter": func(n int) []int { a := make([]int, n); for i := range a { a[i] = i }; return a },
        "cellSymbol": func(c domain.Cell) string { return c.String() },
        "add": func(a, b int) int { return a + b },
        "mul": func(a, b int) int { return a * b },
    }
}

func loadTemplates() *templates {
    base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
.row{display:flex}.row form{margin:0}
.cell{width:4em;height:4em;font-size:1.5em}
.cell.x{color:#c0392b}.cell.o{color:#2980b9}.cell.win{background:#f9e79f}
</style>
</head><body>{{template "content" .}}</body></html>`))
    index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic-Tac-Toe</h1><p>You play X against the computer.</p><form action="/game" method="post"><button>New game</button></form>`))
    game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div hx-sse="swap:board">{{.BoardHTML}}</div>
</div>`))
    // Standalone board template used for fragment rendering
    board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
    return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
    var buf bytes.Buffer
    if name == "" {
        _ = t.Execute(&buf, data)
    } else {
        _ = t.ExecuteTemplate(&buf, name, data)
    }
    return buf.Bytes()
}

const boardTemplate = `
<div id="board">
  <p class="status">{{.State.Status}}</p>
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{$st := .State}}
  {{range $r := iter 3}}
  <div class="row">
    {{range $c := iter 3}}
      {{$i := add (mul $r 3) $c}}
      {{$cell := index $st.Game.Board $i}}
      <form hx-post="/game/{{$st.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="r" value="{{$r}}">
        <input type="hidden" name="c" value="{{$c}}">
        <button type="submit" class="cell{{if $cell}} {{if eq $cell.String "X"}}x{{else}}o{{end}}{{end}}{{if $st.OnLine $i}} win{{end}}"{{if or $cell $st.Game.Over}} disabled{{end}}>{{cellSymbol $cell}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
  <table class="score">
    <tr><th>You ({{$st.Human}})</th><th>Computer ({{$st.Computer}})</th><th>Draws</th></tr>
    <tr><td id="score-human">{{$st.Score.Human}}</td><td id="score-computer">{{$st.Score.Computer}}</td><td id="score-draw">{{$st.Score.Draws}}</td></tr>
  </table>
  <form hx-post="/game/{{$st.ID}}/reset" hx-target="#board" hx-swap="outerHTML" method="post"><button id="reset">New round</button></form>
  <form hx-post="/game/{{$st.ID}}/reset-all" hx-target="#board" hx-swap="outerHTML" method="post"><button id="reset-all">Reset scores</button></form>
</div>
`

type boardData struct {
    State app.GameState
    Error string
}

// Helper to set cookie
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
    if c, err := r.Cookie("player_id"); err == nil && c.Value != "" {
        return c.Value
    }
    // Generate UUIDv4 for player ID
    v := uuid.NewString()
    http.SetCookie(w, &http.Cookie{Name: "player_id", Value: v, Path: "/"})
    return v
}
