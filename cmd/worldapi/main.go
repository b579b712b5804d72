// Command worldapi serves a read-only HTTP introspection API over a
// pocket-edition world directory: root metadata, chunk enumeration, and
// single-chunk summaries, plus a swagger document at /swagger/.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"pocketworld/config"
	"pocketworld/docs" // required for swagger
	"pocketworld/httpapi"
	"pocketworld/logger"
	"pocketworld/world"
)

// @title Pocket World API
// @version 1.0
// @description Read-only introspection over a pocket-edition world directory.

// @host localhost:8099
// @BasePath /api/v1

func main() {
	logger.Configure()

	path := flag.String("path", "", "world directory (overrides POCKETWORLD_DATA_PATH)")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("POCKETWORLD_CONFIG"))
	if err != nil {
		logger.Fatal("worldapi: loading config: %v", err)
	}
	if *path != "" {
		cfg.DataPath = *path
	}
	docs.SwaggerInfo.Host = cfg.API.SwaggerHost

	w, err := world.Open(cfg.DataPath, cfg.HoldOpen)
	if err != nil {
		logger.Fatal("worldapi: opening %s: %v", cfg.DataPath, err)
	}
	defer w.Close()

	router := mux.NewRouter()
	httpapi.NewHandler(w).Register(router, "/api/v1")
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	srv := &http.Server{
		Addr:         cfg.API.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     logger.HTTPServerErrorLog(),
	}

	go func() {
		logger.Info("worldapi: serving %s on %s", cfg.DataPath, cfg.API.Addr)
		logger.Info("worldapi: api documentation at http://%s/swagger/", cfg.API.SwaggerHost)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("worldapi: server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("worldapi: received %v, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("worldapi: shutdown: %v", err)
	}
	fmt.Fprintln(os.Stderr, "worldapi: stopped")
}
