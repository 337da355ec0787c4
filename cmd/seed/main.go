package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agroshop/admin-api/internal/catalog"
	"github.com/agroshop/admin-api/internal/clients"
	"github.com/agroshop/admin-api/internal/config"
	"github.com/agroshop/admin-api/internal/mongodb"
	"github.com/agroshop/admin-api/internal/notifications"
	"github.com/agroshop/admin-api/internal/redisx"
	"github.com/agroshop/admin-api/internal/watch"
)

func main() {
	log.Println("Starting database seeder...")
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
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

	cleanCollections(ctx, db)
	seedCatalog(ctx, db, hub)
	seedClients(ctx, db, hub)
	seedNotifications(ctx, db, hub)

	log.Println("Database seeding completed")
}

func cleanCollections(ctx context.Context, db *mongo.Database) {
	names := []string{
		catalog.CollCategories, catalog.CollProducts,
		clients.CollClients, notifications.CollNotifications,
	}
	for _, name := range names {
		log.Printf("Cleaning collection: %s", name)
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Printf("Failed to clean %s: %v", name, err)
		}
	}
}

func seedCatalog(ctx context.Context, db *mongo.Database, hub *watch.Hub) {
	repo := catalog.NewRepo(db, hub)

	cats := map[string]string{}
	for _, name := range []string{"Vegetables", "Fruits", "Grains", "Dairy"} {
		c, err := repo.CreateCategory(ctx, name)
		if err != nil {
			log.Printf("Failed to insert category %s: %v", name, err)
			continue
		}
		cats[name] = c.ID
	}

	products := []catalog.ProductInput{
		{Name: "Tomato", Description: "Fresh field tomatoes", PriceCents: 450, CategoryID: cats["Vegetables"], Unit: "kg", Stock: 40, MaxStock: 60, Published: true},
		{Name: "Lettuce", Description: "Hydroponic lettuce heads", PriceCents: 300, CategoryID: cats["Vegetables"], Unit: "unit", Stock: 8, MaxStock: 60, Published: true},
		{Name: "Carrot", Description: "Organic carrots", PriceCents: 250, CategoryID: cats["Vegetables"], Unit: "kg", Stock: 0, MaxStock: 80, Published: false},
		{Name: "Banana", Description: "Prata bananas by the bunch", PriceCents: 600, CategoryID: cats["Fruits"], Unit: "bunch", Stock: 25, MaxStock: 50, Published: true},
		{Name: "Orange", Description: "Juice oranges", PriceCents: 380, CategoryID: cats["Fruits"], Unit: "kg", Stock: 90, MaxStock: 120, Published: true},
		{Name: "Rice 5kg", Description: "Long grain white rice", PriceCents: 2490, CategoryID: cats["Grains"], Unit: "bag", Stock: 30, MaxStock: 40, Published: true},
		{Name: "Whole Milk", Description: "Pasteurized whole milk", PriceCents: 520, CategoryID: cats["Dairy"], Unit: "l", Stock: 5, MaxStock: 48, Published: true},
	}
	for _, in := range products {
		if _, err := repo.CreateProduct(ctx, in); err != nil {
			log.Printf("Failed to insert product %s: %v", in.Name, err)
		}
	}
	log.Printf("Inserted %d products in %d categories", len(products), len(cats))
}

func seedClients(ctx context.Context, db *mongo.Database, hub *watch.Hub) {
	repo := clients.NewRepo(db, hub)
	seed := []clients.ClientInput{
		{Name: "Maria Souza", Email: "maria.souza@example.com", Phone: "+55 11 98888-0001", Address: "Rua das Flores 12, São Paulo"},
		{Name: "João Lima", Email: "joao.lima@example.com", Phone: "+55 11 98888-0002", Address: "Av. Paulista 1500, São Paulo"},
		{Name: "Ana Castro", Email: "ana.castro@example.com", Phone: "+55 21 97777-0003", Address: "Rua do Catete 80, Rio de Janeiro"},
	}
	for _, in := range seed {
		if _, err := repo.Create(ctx, in); err != nil {
			log.Printf("Failed to insert client %s: %v", in.Name, err)
		}
	}
	log.Printf("Inserted %d clients", len(seed))
}

func seedNotifications(ctx context.Context, db *mongo.Database, hub *watch.Hub) {
	repo := notifications.NewRepo(db, hub)
	for _, n := range notifications.SeedFeed {
		if _, err := repo.Insert(ctx, n.Title, n.Body, n.Kind); err != nil {
			log.Printf("Failed to insert notification %q: %v", n.Title, err)
		}
	}
	log.Printf("Inserted %d notifications", len(notifications.SeedFeed))
}
