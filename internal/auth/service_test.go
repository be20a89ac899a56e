package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/whatscart/whatscart-backend/pkg/auth"
	"github.com/whatscart/whatscart-backend/pkg/config"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/security"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "whatscart",
	ExpirationMinutes: 30,
}

func TestLoginSuccessMintsToken(t *testing.T) {
	t.Parallel()

	hash, err := security.HashPassword("correct horse", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	seller := &models.Seller{ID: uuid.New(), Email: "owner@example.com", PasswordHash: hash, IsActive: true}
	store := &models.Store{ID: uuid.New(), SellerID: seller.ID, Slug: "shop", IsActive: true}

	svc := mustNewService(t, seller, store)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Owner@Example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.SellerID != seller.ID {
		t.Fatalf("expected seller id in claims")
	}
	if claims.StoreID == nil || *claims.StoreID != store.ID {
		t.Fatalf("expected store id in claims")
	}
	if resp.Store == nil || resp.Store.Slug != "shop" {
		t.Fatalf("expected store in response")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := security.HashPassword("correct horse", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	seller := &models.Seller{ID: uuid.New(), Email: "owner@example.com", PasswordHash: hash, IsActive: true}
	svc := mustNewService(t, seller, nil)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "owner@example.com", Password: "battery staple"})
	assertUnauthorized(t, err)
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	t.Parallel()

	svc := mustNewService(t, nil, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "anything"})
	assertUnauthorized(t, err)
}

func TestLoginInactiveSellerRejected(t *testing.T) {
	t.Parallel()

	hash, err := security.HashPassword("correct horse", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	seller := &models.Seller{ID: uuid.New(), Email: "owner@example.com", PasswordHash: hash, IsActive: false}
	svc := mustNewService(t, seller, nil)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "owner@example.com", Password: "correct horse"})
	assertUnauthorized(t, err)
}

func TestLoginWithoutStoreStillSucceeds(t *testing.T) {
	t.Parallel()

	hash, err := security.HashPassword("correct horse", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	seller := &models.Seller{ID: uuid.New(), Email: "owner@example.com", PasswordHash: hash, IsActive: true}
	svc := mustNewService(t, seller, nil)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "owner@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Store != nil {
		t.Fatal("expected no store in response")
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.StoreID != nil {
		t.Fatal("expected no store id in claims")
	}
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("expected uniform credentials message, got %q", typed.Message())
	}
}

func mustNewService(t *testing.T, seller *models.Seller, store *models.Store) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		SellerRepo: stubSellerRepo{seller: seller},
		StoreRepo:  stubStoreRepo{store: store},
		JWTConfig:  testJWTConfig,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubSellerRepo struct {
	seller *models.Seller
}

func (s stubSellerRepo) FindByEmail(ctx context.Context, email string) (*models.Seller, error) {
	if s.seller == nil || s.seller.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.seller, nil
}

type stubStoreRepo struct {
	store *models.Store
}

func (s stubStoreRepo) FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*models.Store, error) {
	if s.store == nil || s.store.SellerID != sellerID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.store, nil
}
