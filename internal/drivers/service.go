package drivers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agroshop/admin-api/internal/blobstore"
	"github.com/agroshop/admin-api/internal/identity"
	"github.com/agroshop/admin-api/internal/watch"
)

const (
	CollDrivers          = "drivers"
	CollDriverHistory    = "driver_history"
	CollDriverInProgress = "driver_inprogress"
)

var (
	ErrNotFound     = errors.New("driver not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	Drivers    *mongo.Collection
	History    *mongo.Collection
	InProgress *mongo.Collection
	Identity   *identity.Service
	Blobs      *blobstore.Store
	Watch      *watch.Hub
}

func NewService(db *mongo.Database, ids *identity.Service, blobs *blobstore.Store, hub *watch.Hub) *Service {
	return &Service{
		Drivers:    db.Collection(CollDrivers),
		History:    db.Collection(CollDriverHistory),
		InProgress: db.Collection(CollDriverInProgress),
		Identity:   ids,
		Blobs:      blobs,
		Watch:      hub,
	}
}

// Provision creates the identity account, then inserts the driver document
// referencing it. The two writes are independent: a failed insert leaves an
// orphaned account behind, which is accepted rather than rolled back.
func (s *Service) Provision(ctx context.Context, in DriverInput) (Driver, error) {
	if in.Name == "" || in.Email == "" {
		return Driver{}, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	acc, err := s.Identity.Provision(ctx, in.Email, in.Password, identity.RoleDriver, "")
	if err != nil {
		return Driver{}, fmt.Errorf("provision account: %w", err)
	}

	d := Driver{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		VehicleType: in.VehicleType,
		AccountID:   acc.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.Drivers.InsertOne(ctx, d); err != nil {
		return Driver{}, fmt.Errorf("account %s created but driver insert failed: %w", acc.ID, err)
	}
	if err := s.Identity.LinkDriver(ctx, acc.ID, d.ID); err != nil {
		// best-effort back link; the driver doc already holds account_id
		return d, fmt.Errorf("driver created, account link not updated: %w", err)
	}

	s.Watch.Publish(ctx, CollDrivers, watch.KindUpsert, d.ID, d)
	return d, nil
}

func (s *Service) Get(ctx context.Context, id string) (Driver, error) {
	var d Driver
	err := s.Drivers.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Driver{}, ErrNotFound
	}
	return d, err
}

func (s *Service) List(ctx context.Context) ([]Driver, error) {
	cur, err := s.Drivers.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Driver
	for cur.Next(ctx) {
		var d Driver
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, cur.Err()
}

// UploadDocument stores the binary in the blob store and writes the download
// URL back onto the driver document.
func (s *Service) UploadDocument(ctx context.Context, driverID, kind, filename, contentType string, data []byte) (string, error) {
	var field string
	switch kind {
	case DocLicense:
		field = "license_url"
	case DocIDCard:
		field = "id_card_url"
	default:
		return "", fmt.Errorf("%w: unknown document kind %q", ErrInvalidInput, kind)
	}

	if _, err := s.Get(ctx, driverID); err != nil {
		return "", err
	}

	_, url, err := s.Blobs.Put(ctx, filename, contentType, data)
	if err != nil {
		return "", fmt.Errorf("store document: %w", err)
	}

	if _, err := s.Drivers.UpdateOne(ctx, bson.M{"_id": driverID},
		bson.M{"$set": bson.M{field: url}}); err != nil {
		return "", fmt.Errorf("document stored at %s but driver not updated: %w", url, err)
	}

	if d, err := s.Get(ctx, driverID); err == nil {
		s.Watch.Publish(ctx, CollDrivers, watch.KindUpsert, driverID, d)
	}
	return url, nil
}

// Stats counts the two delivery sub-collections live; nothing is cached.
func (s *Service) Stats(ctx context.Context, driverID string) (Stats, error) {
	completed, err := s.History.CountDocuments(ctx, bson.M{"driver_id": driverID})
	if err != nil {
		return Stats{}, err
	}
	inProgress, err := s.InProgress.CountDocuments(ctx, bson.M{"driver_id": driverID})
	if err != nil {
		return Stats{}, err
	}
	return Stats{Completed: completed, InProgress: inProgress}, nil
}

// StartDelivery adds an in-progress entry for the driver.
func (s *Service) StartDelivery(ctx context.Context, driverID, orderID, address string) (Delivery, error) {
	if orderID == "" {
		return Delivery{}, fmt.Errorf("%w: order_id is required", ErrInvalidInput)
	}
	if _, err := s.Get(ctx, driverID); err != nil {
		return Delivery{}, err
	}
	d := Delivery{
		ID:        uuid.NewString(),
		DriverID:  driverID,
		OrderID:   orderID,
		Address:   address,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.InProgress.InsertOne(ctx, d)
	return d, err
}

// FinishDelivery moves an in-progress entry into history. Two independent
// writes again: remove then insert, no transaction.
func (s *Service) FinishDelivery(ctx context.Context, driverID, deliveryID string) (Delivery, error) {
	var d Delivery
	err := s.InProgress.FindOne(ctx, bson.M{"_id": deliveryID, "driver_id": driverID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Delivery{}, ErrNotFound
	}
	if err != nil {
		return Delivery{}, err
	}

	if _, err := s.InProgress.DeleteOne(ctx, bson.M{"_id": deliveryID}); err != nil {
		return Delivery{}, err
	}
	d.EndedAt = time.Now().UTC()
	if _, err := s.History.InsertOne(ctx, d); err != nil {
		return Delivery{}, fmt.Errorf("delivery removed from in-progress but history insert failed: %w", err)
	}
	return d, nil
}
