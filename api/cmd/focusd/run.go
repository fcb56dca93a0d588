package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"
	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus/actor"
	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus/engine"
	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus/intent"
	"github.com/sagarpandeyprofessional/focus-app/api/pkg/hostsim"
	"github.com/sagarpandeyprofessional/focus-app/api/pkg/signaling"
)

func newRunCmd() *cobra.Command {
	var httpAddr string
	var natsURL string
	var sessionID string
	var demoWalk bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the focus engine demo host",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHost(cmd.Context(), httpAddr, natsURL, sessionID, demoWalk)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http-addr", envOr("FOCUSD_HTTP_ADDR", ":8090"), "address to serve the viewer WebSocket on")
	cmd.Flags().StringVar(&natsURL, "nats-url", os.Getenv("FOCUSD_NATS_URL"), "NATS server URL for cross-process fan-out (optional)")
	cmd.Flags().StringVar(&sessionID, "session-id", envOr("FOCUSD_SESSION_ID", ""), "session identifier; a random UUID is generated if empty")
	cmd.Flags().BoolVar(&demoWalk, "demo-walk", true, "drive the synthetic cursor with a random walk")

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runHost(ctx context.Context, httpAddr, natsURL, sessionID string, demoWalk bool) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	cfg, err := focus.LoadConfig()
	if err != nil {
		return err
	}

	bounds := focus.NewDisplayBounds(
		focus.Display{ID: "D1", Bounds: focus.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, DPIScale: 1},
		focus.Display{ID: "D2", Bounds: focus.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}, DPIScale: 1},
		focus.Display{ID: "D3", Bounds: focus.Rect{X: 3840, Y: 0, Width: 1920, Height: 1080}, DPIScale: 1},
	)

	registry := signaling.NewRegistry()

	var publisher signaling.Publisher
	if natsURL != "" {
		np, err := signaling.NewNatsPublisher(ctx, natsURL, os.Getenv("FOCUSD_NATS_TOKEN"))
		if err != nil {
			logger.Warn("nats publisher disabled", "err", err)
		} else {
			publisher = np
			defer np.Close()
		}
	}

	bridge := signaling.NewBridge(sessionID, registry, publisher, nil)

	eng, err := engine.New(sessionID, cfg, bounds, engine.WithChangeSink(bridge), engine.WithStateSink(bridge))
	if err != nil {
		return err
	}

	act := actor.New(eng, logger)
	bridge.SetSnapshotSource(act.Snapshot)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		act.Run(ctx)
	}()

	provider := hostsim.NewProvider(960, 540, 1)
	detector := intent.New(intent.DefaultConfig(), provider.Sample, logger)

	wg.Add(1)
	go func() {
		defer wg.Done()
		detector.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for s := range detector.Signals() {
			act.Submit(s)
		}
	}()

	if demoWalk {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runDemoWalk(ctx, provider)
		}()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		bridge.ServeWS(w, r, func(viewerID string, x, y float64) {
			registry.BroadcastCursorPresence(sessionID, viewerID, x, y)
		})
	})

	httpServer := &http.Server{Addr: httpAddr, Handler: mux}
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("serving focus viewer websocket", "addr", httpAddr, "session_id", sessionID)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)

	wg.Wait()
	return nil
}

func runDemoWalk(ctx context.Context, provider *hostsim.Provider) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			provider.RandomWalk(10)
		}
	}
}
