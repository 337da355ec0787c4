package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agroshop/admin-api/internal/blobstore"
	"github.com/agroshop/admin-api/internal/catalog"
	"github.com/agroshop/admin-api/internal/clients"
	"github.com/agroshop/admin-api/internal/config"
	"github.com/agroshop/admin-api/internal/drivers"
	"github.com/agroshop/admin-api/internal/httpx"
	"github.com/agroshop/admin-api/internal/identity"
	kafkax "github.com/agroshop/admin-api/internal/kafka"
	"github.com/agroshop/admin-api/internal/mongodb"
	"github.com/agroshop/admin-api/internal/notifications"
	"github.com/agroshop/admin-api/internal/orders"
	"github.com/agroshop/admin-api/internal/postgres"
	"github.com/agroshop/admin-api/internal/promos"
	"github.com/agroshop/admin-api/internal/redisx"
	"github.com/agroshop/admin-api/internal/watch"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Document DB
	mc, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mc.Disconnect(context.Background())
	db := mc.Database(cfg.MongoDatabase)

	// Blob store (Postgres)
	pg, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pg.Close()
	blobs := blobstore.New(pg, cfg.PublicBaseURL)
	if err := blobs.EnsureSchema(ctx); err != nil {
		log.Fatalf("blobstore schema: %v", err)
	}

	// Redis + watch hub
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	hub := watch.NewHub(rdb)

	// Kafka producer for order events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024)
	prod.Start(ctx)

	// Repos & services
	catalogRepo := catalog.NewRepo(db, hub)
	orderRepo := orders.NewRepo(db, hub)
	clientRepo := clients.NewRepo(db, hub)
	notifRepo := notifications.NewRepo(db, hub)
	promoRepo := promos.NewRepo(db, hub)
	ids := identity.NewService(db, cfg.JWTSecret)
	driverSvc := drivers.NewService(db, ids, blobs, hub)

	router := httpx.NewRouter()
	(&httpx.CatalogHandler{Repo: catalogRepo, Blobs: blobs}).Register(router)
	(&httpx.OrdersHandler{Repo: orderRepo, Producer: prod, Redis: rdb, Service: cfg.ServiceName}).Register(router)
	(&httpx.ClientsHandler{Repo: clientRepo, Orders: orderRepo}).Register(router)
	(&httpx.DriversHandler{Service: driverSvc}).Register(router)
	(&httpx.PromosHandler{Repo: promoRepo}).Register(router)
	(&httpx.NotificationsHandler{Repo: notifRepo}).Register(router)
	(&httpx.FilesHandler{Blobs: blobs}).Register(router)
	(&httpx.AuthHandler{Identity: ids}).Register(router)
	(&httpx.WatchHandler{
		Hub: hub,
		Initial: map[string]httpx.InitialFetch{
			catalog.CollProducts:   func(ctx context.Context) (any, error) { return catalogRepo.ListProducts(ctx, "") },
			catalog.CollCategories: func(ctx context.Context) (any, error) { return catalogRepo.ListCategories(ctx) },
			orders.CollOrders:      func(ctx context.Context) (any, error) { return orderRepo.List(ctx, "") },
			clients.CollClients:    func(ctx context.Context) (any, error) { return clientRepo.List(ctx) },
			drivers.CollDrivers:    func(ctx context.Context) (any, error) { return driverSvc.List(ctx) },
			promos.CollPromotions:  func(ctx context.Context) (any, error) { return promoRepo.List(ctx) },
			notifications.CollNotifications: func(ctx context.Context) (any, error) {
				return notifRepo.List(ctx)
			},
		},
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // close inbox -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
