package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcjdh/eternal-click-slayer/internal/config"
	"github.com/mcjdh/eternal-click-slayer/internal/game"
	"github.com/mcjdh/eternal-click-slayer/internal/httpmw"
	"github.com/mcjdh/eternal-click-slayer/internal/save"
	"github.com/mcjdh/eternal-click-slayer/internal/server"
	"github.com/mcjdh/eternal-click-slayer/internal/state"
	"github.com/mcjdh/eternal-click-slayer/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to config yaml (optional)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	logger := log.New(os.Stdout, "", 0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	bal := cfg.ResolveBalance()

	repo, err := save.NewFileRepo(cfg.Data.Dir, cfg.Data.Compress)
	if err != nil {
		logger.Fatalf("save repo: %v", err)
	}

	clock := game.RealClock{}
	stream := server.NewStream(logger)
	sess := game.NewSession(game.Options{
		Balance: bal,
		Clock:   clock,
		Logger:  logger,
		Notify: func(ev game.Event) {
			stream.Broadcast(map[string]any{"type": "event", "event": ev})
		},
	})

	// Resume a previous run when a save exists.
	switch snap, err := repo.Load(); {
	case err == nil:
		st, achieved := snap.Apply(bal)
		sess.Restore(st, achieved)
		logger.Printf("resumed save %s (level %d)", snap.ID, st.Enemy.Level)
	case errors.Is(err, save.ErrNotFound):
		logger.Print("starting fresh session")
	default:
		logger.Fatalf("load save: %v", err)
	}

	app := &server.App{
		Session:   sess,
		Repo:      repo,
		Balance:   bal,
		Clock:     clock,
		Logger:    logger,
		Stream:    stream,
		Telemetry: telemetry.NewMemoryRepository(),
		BootNow:   clock.Now(),
	}

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}
	server.RegisterAPIRoutes(mux, rr, app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runTicker(ctx, sess, stream, bal.TickInterval)
	go save.Autosave(ctx, app, bal.AutosaveInterval, logger)

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: httpmw.Chain(
			mux,
			httpmw.WithAccessLog(logger),
			httpmw.WithRequestID,
			httpmw.WithRecover(logger),
		),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("clickslayer listening on %s", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal(err)
	}

	// One last save on the way out.
	if err := app.SaveNow(); err != nil {
		logger.Printf("final save: %v", err)
	}
}

// runTicker drives the passive loop and pushes a state frame to stream
// clients after each tick.
func runTicker(ctx context.Context, sess *game.Session, stream *server.Stream, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			res := sess.Tick()
			if stream.ClientCount() == 0 {
				continue
			}
			// Snapshot to raw JSON under the lock so the broadcast never
			// aliases live session maps.
			var frame struct {
				Type         string          `json:"type"`
				Tick         game.TickResult `json:"tick"`
				State        json.RawMessage `json:"state"`
				Achievements map[string]bool `json:"achievements"`
			}
			frame.Type = "tick"
			frame.Tick = res
			sess.View(func(st *state.State, achieved map[string]bool) {
				frame.State, _ = json.Marshal(st)
				frame.Achievements = achieved
			})
			stream.Broadcast(frame)
		}
	}
}
