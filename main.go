package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"chatrelay/internal/chat"
	"chatrelay/internal/config"
	"chatrelay/internal/http/http_server"
	"chatrelay/internal/ws"

	"go.uber.org/zap"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Room registry — owns every live room for the process lifetime
	registry := chat.NewRegistry()

	// 4. WebSockets hub (delivery) + session coordinator (membership)
	hub := ws.NewHub()
	coordinator := chat.NewCoordinator(registry, hub)

	// 5. Initialize the WS server
	wsSrv := ws.NewServer(hub, coordinator)

	// 6. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, wsSrv, registry)
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
