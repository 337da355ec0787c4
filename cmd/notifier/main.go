package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agroshop/admin-api/internal/clients"
	"github.com/agroshop/admin-api/internal/config"
	kafkax "github.com/agroshop/admin-api/internal/kafka"
	"github.com/agroshop/admin-api/internal/mongodb"
	"github.com/agroshop/admin-api/internal/notifications"
	"github.com/agroshop/admin-api/internal/orders"
	"github.com/agroshop/admin-api/internal/redisx"
	"github.com/agroshop/admin-api/internal/watch"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mc, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mc.Disconnect(context.Background())
	db := mc.Database(cfg.MongoDatabase)

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	hub := watch.NewHub(rdb)

	svc := &notifications.Service{
		Clients:     clients.NewRepo(db, hub),
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-notifier",
	}

	group := getenv("NOTIFIER_GROUP", "notifier-svc")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderEvents, workers)

	go func() {
		log.Printf("notifier consumer started: group=%s topic=%s workers=%d", group, orders.TopicOrderEvents, workers)
		if err := cons.Start(ctx, svc.HandleOrderEvent); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
