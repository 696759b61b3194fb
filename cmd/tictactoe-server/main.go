// tictactoe-server serves games against the computer over HTTP.
package main

import (
    "context"
    "errors"
    "flag"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/jaminalder/tictactoe-minimax/internal/app"
    "github.com/jaminalder/tictactoe-minimax/internal/web"
)

var (
    flagAddr  = flag.String("addr", getenv("ADDR", ":8080"), "listen address")
    flagQuiet = flag.Bool("quiet", false, "disable request logging")
)

func main() {
    flag.Parse()

    var handler http.Handler = web.NewServer(app.NewService())
    if !*flagQuiet {
        handler = web.WithRequestLog(handler)
    }
    srv := &http.Server{
        Addr:              *flagAddr,
        Handler:           handler,
        ReadHeaderTimeout: 5 * time.Second,
    }

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    go func() {
        log.Printf("server listening on %s", *flagAddr)
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            log.Fatal(err)
        }
    }()

    <-ctx.Done()
    log.Printf("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        log.Printf("shutdown: %v", err)
    }
}

func getenv(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}
