package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrNoSubscription means the caller has no stored billing customer, so
	// there is no portal to open.
	ErrNoSubscription = errors.New("no active subscription found")
	// ErrReturnURLMissing rejects portal requests without a return url.
	ErrReturnURLMissing = errors.New("return url is required")
	// ErrBillingUnavailable wraps upstream billing API failures.
	ErrBillingUnavailable = errors.New("billing provider unavailable")
)

// httpDoer is the subset of http.Client the billing client needs; tests
// inject fakes through SetHTTPClient.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BillingService creates billing-portal sessions against the Stripe HTTP
// API. One linear call per request: look up the customer id, ask Stripe for
// a session, hand back its URL. No retries.
type BillingService struct {
	db        *gorm.DB
	http      httpDoer
	baseURL   string
	secretKey string
}

type portalSessionResponse struct {
	URL   string `json:"url"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewBillingService constructs a BillingService with the given API secret.
func NewBillingService(gdb *gorm.DB, secretKey string) *BillingService {
	return &BillingService{
		db:        gdb,
		http:      &http.Client{Timeout: 20 * time.Second},
		baseURL:   "https://api.stripe.com",
		secretKey: strings.TrimSpace(secretKey),
	}
}

// SetHTTPClient overrides the HTTP client, mainly for tests.
func (s *BillingService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: 20 * time.Second}
		return
	}
	s.http = client
}

// SetBaseURL overrides the billing API endpoint, mainly for tests.
func (s *BillingService) SetBaseURL(base string) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base != "" {
		s.baseURL = base
	}
}

// CreatePortalSession opens a billing-portal session for the user and
// returns its URL.
func (s *BillingService) CreatePortalSession(ctx context.Context, userID uint, returnURL string) (string, error) {
	returnURL = strings.TrimSpace(returnURL)
	if returnURL == "" {
		return "", ErrReturnURLMissing
	}

	var profile db.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoSubscription
		}
		return "", fmt.Errorf("load profile: %w", err)
	}
	if strings.TrimSpace(profile.StripeCustomerID) == "" {
		return "", ErrNoSubscription
	}

	form := url.Values{}
	form.Set("customer", profile.StripeCustomerID)
	form.Set("return_url", returnURL)

	endpoint := s.baseURL + "/v1/billing_portal/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build portal request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBillingUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrBillingUnavailable, err)
	}

	var parsed portalSessionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrBillingUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		message := strings.TrimSpace(parsed.Error.Message)
		if message == "" {
			message = resp.Status
		}
		return "", fmt.Errorf("%w: %s", ErrBillingUnavailable, message)
	}
	if strings.TrimSpace(parsed.URL) == "" {
		return "", fmt.Errorf("%w: empty session url", ErrBillingUnavailable)
	}

	return parsed.URL, nil
}
