package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"perfumeshop/internal/config"
	"perfumeshop/internal/db"
	"perfumeshop/internal/httpserver"
	"perfumeshop/internal/realtime"
	cartrepo "perfumeshop/internal/repository/cart"
	productrepo "perfumeshop/internal/repository/product"
	cartsvc "perfumeshop/internal/service/cart"
	catalogsvc "perfumeshop/internal/service/catalog"
	productsvc "perfumeshop/internal/service/product"

	"github.com/alexedwards/scs/v2"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	hub := realtime.NewHub(logger)

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(productRepo)
	productService := productsvc.New(productRepo, hub, logger)
	cartService := cartsvc.New(cartRepo, productRepo)

	sessions := scs.New()
	sessions.Lifetime = cfg.SessionLifetime

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, sessions, httpserver.Deps{
		CatalogSvc:  catalogService,
		ProductSvc:  productService,
		CartSvc:     cartService,
		Hub:         hub,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

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
