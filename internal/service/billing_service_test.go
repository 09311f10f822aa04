package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupBillingTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Profile{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestCreatePortalSession(t *testing.T) {
	cleanup := setupBillingTestDB(t)
	defer cleanup()

	if err := db.DB.Create(&db.Profile{UserID: 1, DisplayName: "Ash", StripeCustomerID: "cus_123"}).Error; err != nil {
		t.Fatalf("seed profile failed: %v", err)
	}

	var gotAuth, gotCustomer, gotReturn string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/billing_portal/sessions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form failed: %v", err)
		}
		gotAuth = r.Header.Get("Authorization")
		gotCustomer = r.PostFormValue("customer")
		gotReturn = r.PostFormValue("return_url")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://billing.stripe.com/session/xyz"}`))
	}))
	defer server.Close()

	svc := NewBillingService(db.DB, "sk_test_abc")
	svc.SetBaseURL(server.URL)
	svc.SetHTTPClient(server.Client())

	url, err := svc.CreatePortalSession(context.Background(), 1, "https://app.example.com/settings")
	if err != nil {
		t.Fatalf("CreatePortalSession returned error: %v", err)
	}
	if url != "https://billing.stripe.com/session/xyz" {
		t.Fatalf("unexpected session url: %s", url)
	}
	if gotAuth != "Bearer sk_test_abc" {
		t.Fatalf("unexpected authorization header: %s", gotAuth)
	}
	if gotCustomer != "cus_123" || gotReturn != "https://app.example.com/settings" {
		t.Fatalf("unexpected form values: customer=%s return_url=%s", gotCustomer, gotReturn)
	}
}

func TestCreatePortalSessionNoSubscription(t *testing.T) {
	cleanup := setupBillingTestDB(t)
	defer cleanup()

	svc := NewBillingService(db.DB, "sk_test_abc")

	// no profile at all
	if _, err := svc.CreatePortalSession(context.Background(), 1, "https://app.example.com"); err != ErrNoSubscription {
		t.Fatalf("expected ErrNoSubscription for missing profile, got %v", err)
	}

	// profile without a billing customer
	if err := db.DB.Create(&db.Profile{UserID: 2, DisplayName: "Misty"}).Error; err != nil {
		t.Fatalf("seed profile failed: %v", err)
	}
	if _, err := svc.CreatePortalSession(context.Background(), 2, "https://app.example.com"); err != ErrNoSubscription {
		t.Fatalf("expected ErrNoSubscription for blank customer, got %v", err)
	}
}

func TestCreatePortalSessionMissingReturnURL(t *testing.T) {
	cleanup := setupBillingTestDB(t)
	defer cleanup()

	svc := NewBillingService(db.DB, "sk_test_abc")
	if _, err := svc.CreatePortalSession(context.Background(), 1, "  "); err != ErrReturnURLMissing {
		t.Fatalf("expected ErrReturnURLMissing, got %v", err)
	}
}

func TestCreatePortalSessionUpstreamError(t *testing.T) {
	cleanup := setupBillingTestDB(t)
	defer cleanup()

	if err := db.DB.Create(&db.Profile{UserID: 1, StripeCustomerID: "cus_123"}).Error; err != nil {
		t.Fatalf("seed profile failed: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"No such customer: cus_123"}}`))
	}))
	defer server.Close()

	svc := NewBillingService(db.DB, "sk_test_abc")
	svc.SetBaseURL(server.URL)
	svc.SetHTTPClient(server.Client())

	_, err := svc.CreatePortalSession(context.Background(), 1, "https://app.example.com")
	if !errors.Is(err, ErrBillingUnavailable) {
		t.Fatalf("expected ErrBillingUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "No such customer") {
		t.Fatalf("expected upstream message in error, got %v", err)
	}
}
