package drivers

import "time"

type Driver struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone" json:"phone"`
	VehicleType string    `bson:"vehicle_type" json:"vehicle_type"` // motorcycle, van, truck
	LicenseURL  string    `bson:"license_url,omitempty" json:"license_url,omitempty"`
	IDCardURL   string    `bson:"id_card_url,omitempty" json:"id_card_url,omitempty"`
	AccountID   string    `bson:"account_id" json:"account_id"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type DriverInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicle_type"`
	Password    string `json:"password"`
}

// Document kinds uploadable for a driver.
const (
	DocLicense = "license"
	DocIDCard  = "id-card"
)

// Stats are the only driver statistics: live sizes of the two delivery
// sub-collections.
type Stats struct {
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"in_progress"`
}

// Delivery is an entry in the driver_history or driver_inprogress
// sub-collection.
type Delivery struct {
	ID        string    `bson:"_id" json:"id"`
	DriverID  string    `bson:"driver_id" json:"driver_id"`
	OrderID   string    `bson:"order_id" json:"order_id"`
	Address   string    `bson:"address" json:"address"`
	StartedAt time.Time `bson:"started_at" json:"started_at"`
	EndedAt   time.Time `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
}
