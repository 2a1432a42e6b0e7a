package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"ordertrack/config"
	"ordertrack/messaging"
	"ordertrack/notify"
	"ordertrack/store"
	"ordertrack/www"
)

func main() {
	configPath := flag.String("config", "ordertrack.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *port > 0 {
		cfg.Notify.Web.Port = *port
	}

	var audit *store.DB
	if cfg.Notify.AuditDatabasePath != "" {
		audit, err = store.Open(cfg.Notify.AuditDatabasePath)
		if err != nil {
			log.Fatalf("open audit database: %v", err)
		}
		defer audit.Close()
	}

	msgClient := messaging.NewClient(&cfg.Messaging)
	defer msgClient.Close()
	if err := msgClient.Connect(); err != nil {
		log.Fatalf("messaging connect: %v", err)
	}

	hub := www.NewHub(cfg.Notify.StreamIdleTimeout)
	defer hub.Stop()

	consumer := notify.NewConsumer(msgClient, cfg.Messaging.EventsTopic, hub, audit)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		log.Fatalf("start consumer: %v", err)
	}
	log.Printf("consuming order events from %s", cfg.Messaging.EventsTopic)

	router := www.NewNotifyRouter(hub, audit)
	addr := fmt.Sprintf("%s:%d", cfg.Notify.Web.Host, cfg.Notify.Web.Port)
	server := &http.Server{Addr: addr, Handler: router}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("notification service listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down...")

		// Stop the hub first so long-lived stream connections close.
		hub.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("notification service: %v", err)
	}
}
