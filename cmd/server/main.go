package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"htxagri/internal/config"
	"htxagri/internal/db"
	"htxagri/internal/handlers"
	"htxagri/internal/store"
	"htxagri/internal/websocket"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	users := store.NewUserStore(database)
	members := store.NewMemberStore(database)
	products := store.NewProductStore(database)
	harvests := store.NewHarvestStore(database)
	contracts := store.NewContractStore(database)
	finance := store.NewFinanceStore(database)
	dashboard := store.NewDashboardStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	handler := handlers.New(database, txRunner, cfg, users, members, products, harvests, contracts, finance, dashboard, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("htxagri API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
