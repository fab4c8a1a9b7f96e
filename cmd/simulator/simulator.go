package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulatorConfig holds the simulator configuration
type SimulatorConfig struct {
	ServerURL    string
	BusinessName string
	Customers    int
	SkipComplete bool
}

// Simulator drives the full scan flow against a running server: a venue
// provisions its code, customers scan it to open sessions, the venue scans
// each session code to validate, and customers complete on exit.
type Simulator struct {
	config *SimulatorConfig
	client *http.Client
	log    *zap.Logger
}

type account struct {
	Email string
	Token string
}

type sessionInfo struct {
	ID     string `json:"id"`
	QRCode string `json:"qr_code"`
	Status string `json:"status"`
}

// NewSimulator creates a new flow simulator
func NewSimulator(config *SimulatorConfig, log *zap.Logger) *Simulator {
	return &Simulator{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// Run executes the full flow once per customer.
func (s *Simulator) Run() error {
	venue, err := s.registerAccount("business", s.config.BusinessName)
	if err != nil {
		return fmt.Errorf("failed to register venue: %w", err)
	}
	s.log.Info("Venue registered", zap.String("email", venue.Email))

	venueCode, err := s.provisionVenueCode(venue)
	if err != nil {
		return fmt.Errorf("failed to provision venue code: %w", err)
	}
	s.log.Info("Venue QR code ready", zap.String("qr_code", venueCode))

	for i := 0; i < s.config.Customers; i++ {
		if err := s.runCustomerFlow(venue, venueCode, i); err != nil {
			return fmt.Errorf("customer %d flow failed: %w", i, err)
		}
	}
	return nil
}

func (s *Simulator) runCustomerFlow(venue *account, venueCode string, n int) error {
	customer, err := s.registerAccount("customer", "")
	if err != nil {
		return fmt.Errorf("failed to register customer: %w", err)
	}
	s.log.Info("Customer registered", zap.Int("n", n), zap.String("email", customer.Email))

	// Customer scans the venue code: session opens.
	session, err := s.scan(customer, venueCode)
	if err != nil {
		return fmt.Errorf("customer scan failed: %w", err)
	}
	s.log.Info("Session opened",
		zap.String("session_id", session.ID),
		zap.String("status", session.Status),
	)

	// A second scan must be rejected: one open session per customer.
	if _, err := s.scan(customer, venueCode); err == nil {
		return fmt.Errorf("expected second scan to be rejected")
	}

	// Venue scans the session code: session validates.
	validated, err := s.scan(venue, session.QRCode)
	if err != nil {
		return fmt.Errorf("venue scan failed: %w", err)
	}
	s.log.Info("Session validated", zap.String("status", validated.Status))

	if s.config.SkipComplete {
		return nil
	}

	// Customer confirms exit: session completes.
	var completed sessionInfo
	path := fmt.Sprintf("/api/v1/sessions/%s/complete", session.ID)
	if err := s.do("POST", path, customer.Token, nil, &completed); err != nil {
		return fmt.Errorf("complete failed: %w", err)
	}
	s.log.Info("Session completed", zap.String("status", completed.Status))
	return nil
}

func (s *Simulator) registerAccount(role, businessName string) (*account, error) {
	email := fmt.Sprintf("sim-%s-%s@example.com", role, uuid.New().String()[:8])
	body := map[string]string{
		"email":         email,
		"password":      "simulator-password",
		"role":          role,
		"business_name": businessName,
	}

	var resp struct {
		Tokens struct {
			AccessToken string `json:"accessToken"`
		} `json:"tokens"`
	}
	if err := s.do("POST", "/api/v1/auth/register", "", body, &resp); err != nil {
		return nil, err
	}
	if resp.Tokens.AccessToken == "" {
		return nil, fmt.Errorf("no access token in register response")
	}
	return &account{Email: email, Token: resp.Tokens.AccessToken}, nil
}

func (s *Simulator) provisionVenueCode(venue *account) (string, error) {
	var bt struct {
		QRCode string `json:"qr_code"`
	}
	// Fetch first; provision only when nothing is issued yet.
	err := s.do("GET", "/api/v1/business/qr-code", venue.Token, nil, &bt)
	if err == nil && bt.QRCode != "" {
		return bt.QRCode, nil
	}
	if err := s.do("POST", "/api/v1/business/qr-code", venue.Token, nil, &bt); err != nil {
		return "", err
	}
	return bt.QRCode, nil
}

func (s *Simulator) scan(acct *account, token string) (*sessionInfo, error) {
	var resp struct {
		Kind    string      `json:"kind"`
		Session sessionInfo `json:"session"`
	}
	body := map[string]string{"token": token}
	if err := s.do("POST", "/api/v1/scans", acct.Token, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Session, nil
}

func (s *Simulator) do(method, path, authToken string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.config.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(data))
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}
