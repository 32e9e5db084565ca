package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/keons0101/retail-dashboard-app/internal/config"
	"github.com/keons0101/retail-dashboard-app/internal/db"
	orderrepo "github.com/keons0101/retail-dashboard-app/internal/repository/order"
	productrepo "github.com/keons0101/retail-dashboard-app/internal/repository/product"
	"github.com/keons0101/retail-dashboard-app/internal/server"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[devserver] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	srv := server.New(cfg.HTTPAddr, logger, dbpool, server.Deps{
		ProductRepo: productrepo.NewPostgres(dbpool, logger),
		OrderRepo:   orderrepo.NewPostgres(dbpool, logger),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
