// Package identity provisions email/password accounts and issues session
// tokens. Driver accounts are linked 1:1 to a driver document through the
// stored driver id.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const CollAccounts = "accounts"

const (
	RoleAdmin  = "admin"
	RoleDriver = "driver"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

type Account struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash []byte    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	DriverID     string    `bson:"driver_id,omitempty" json:"driver_id,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

type Service struct {
	Accounts *mongo.Collection
	Secret   []byte
	TokenTTL time.Duration
}

func NewService(db *mongo.Database, secret string) *Service {
	return &Service{
		Accounts: db.Collection(CollAccounts),
		Secret:   []byte(secret),
		TokenTTL: 24 * time.Hour,
	}
}

// Provision creates an account with a bcrypt-hashed password.
func (s *Service) Provision(ctx context.Context, email, password, role, driverID string) (Account, error) {
	if email == "" || password == "" {
		return Account{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	a := Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		DriverID:     driverID,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.Accounts.InsertOne(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	var a Account
	err := s.Accounts.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Account{}, ErrNotFound
	}
	return a, err
}

// LinkDriver stores the driver id on an already provisioned account.
func (s *Service) LinkDriver(ctx context.Context, accountID, driverID string) error {
	res, err := s.Accounts.UpdateOne(ctx, bson.M{"_id": accountID},
		bson.M{"$set": bson.M{"driver_id": driverID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Authenticate checks the password and returns a signed session token.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, Account, error) {
	var a Account
	err := s.Accounts.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", Account{}, err
	}
	if err := verifyPassword(a.PasswordHash, password); err != nil {
		return "", Account{}, err
	}
	tok, err := IssueToken(s.Secret, a, s.TokenTTL)
	if err != nil {
		return "", Account{}, err
	}
	return tok, a, nil
}

func verifyPassword(hash []byte, password string) error {
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
