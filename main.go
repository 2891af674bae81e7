package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"meet-url/rooms"
)

func main() {
	config := MustLoadConfig(os.Args[1:])
	zerolog.SetGlobalLevel(config.LogLevel)

	registry := rooms.New(config.CodeTTL, rooms.WithShards(config.Shards))
	server := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           NewHTTPServer(registry, config),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			LogServerError(err)
		}
	}()

	LogStartedServer(config.Port, registry.TTL())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		LogServerError(err)
		os.Exit(1)
	}
	<-stopped
	LogStoppedServer(registry.Len())
}
