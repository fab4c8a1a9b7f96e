package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestCreate_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	customerID := "user-123"
	businessName := "Garage Central"
	qrCode := "user-123-abc"

	var inserted *domain.ParkingSession

	mockRepo := &mocks.MockSessionRepository{
		FindOpenByCustomerIDFunc: func(ctx context.Context, id string) (*domain.ParkingSession, error) {
			return nil, nil // No open session
		},
		InsertFunc: func(ctx context.Context, s *domain.ParkingSession) error {
			inserted = s
			return nil
		},
	}
	mockQueue := mocks.NewMockMessageQueue()

	service := NewService(mockRepo, mockQueue, newTestLogger())

	// Act
	session, err := service.Create(ctx, customerID, businessName, qrCode)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session == nil {
		t.Fatal("expected session, got nil")
	}
	if session.Status != domain.SessionStatusActive {
		t.Errorf("expected status 'active', got '%s'", session.Status)
	}
	if session.CustomerID != customerID {
		t.Errorf("expected customer ID '%s', got '%s'", customerID, session.CustomerID)
	}
	if session.BusinessName != businessName {
		t.Errorf("expected business name '%s', got '%s'", businessName, session.BusinessName)
	}
	if session.ID == "" {
		t.Error("expected a generated session ID")
	}
	if inserted == nil {
		t.Error("expected session to be inserted")
	}

	// Check event was published on the customer's subject
	messages := mockQueue.GetPublishedMessages(domain.SessionUpdateSubject(customerID))
	if len(messages) != 1 {
		t.Fatalf("expected 1 message published, got %d", len(messages))
	}
	var event domain.SessionEvent
	if err := json.Unmarshal(messages[0], &event); err != nil {
		t.Fatalf("failed to unmarshal event: %v", err)
	}
	if event.Type != domain.SessionEventCreated {
		t.Errorf("expected event type '%s', got '%s'", domain.SessionEventCreated, event.Type)
	}
}

func TestCreate_DuplicateOpenSession(t *testing.T) {
	ctx := context.Background()

	mockRepo := &mocks.MockSessionRepository{
		FindOpenByCustomerIDFunc: func(ctx context.Context, id string) (*domain.ParkingSession, error) {
			return &domain.ParkingSession{ID: "existing", Status: domain.SessionStatusActive}, nil
		},
		InsertFunc: func(ctx context.Context, s *domain.ParkingSession) error {
			t.Error("insert should not be called when an open session exists")
			return nil
		},
	}
	mockQueue := mocks.NewMockMessageQueue()

	service := NewService(mockRepo, mockQueue, newTestLogger())

	_, err := service.Create(ctx, "user-123", "Garage Central", "user-123-abc")

	if !errors.Is(err, domain.ErrDuplicateSession) {
		t.Fatalf("expected duplicate session error, got %v", err)
	}
	if len(mockQueue.GetPublishedMessages(domain.SessionUpdateSubject("user-123"))) != 0 {
		t.Error("expected no event published on rejected create")
	}
}

func TestCreate_ValidatedSessionStillBlocks(t *testing.T) {
	ctx := context.Background()

	// A validated session is still open; only complete frees the customer.
	mockRepo := &mocks.MockSessionRepository{
		FindOpenByCustomerIDFunc: func(ctx context.Context, id string) (*domain.ParkingSession, error) {
			return &domain.ParkingSession{ID: "existing", Status: domain.SessionStatusValidated}, nil
		},
	}
	service := NewService(mockRepo, mocks.NewMockMessageQueue(), newTestLogger())

	_, err := service.Create(ctx, "user-123", "Garage Central", "user-123-abc")

	if !errors.Is(err, domain.ErrDuplicateSession) {
		t.Fatalf("expected duplicate session error, got %v", err)
	}
}

func TestCreate_TokenCollision(t *testing.T) {
	ctx := context.Background()

	mockRepo := &mocks.MockSessionRepository{
		InsertFunc: func(ctx context.Context, s *domain.ParkingSession) error {
			return domain.ErrUniqueViolation
		},
	}
	service := NewService(mockRepo, mocks.NewMockMessageQueue(), newTestLogger())

	_, err := service.Create(ctx, "user-123", "Garage Central", "user-123-abc")

	if !errors.Is(err, domain.ErrUniqueViolation) {
		t.Fatalf("expected unique violation error, got %v", err)
	}
}

func TestValidate_Success(t *testing.T) {
	ctx := context.Background()
	qrCode := "user-123-abc"
	businessName := "Garage Central"

	mockRepo := &mocks.MockSessionRepository{
		TransitionByTokenFunc: func(ctx context.Context, code, business string, from, to domain.SessionStatus) (*domain.ParkingSession, error) {
			if code != qrCode || business != businessName {
				t.Errorf("unexpected transition args: %s %s", code, business)
			}
			if from != domain.SessionStatusActive || to != domain.SessionStatusValidated {
				t.Errorf("unexpected transition: %s -> %s", from, to)
			}
			return &domain.ParkingSession{
				ID:           "session-1",
				CustomerID:   "user-123",
				BusinessName: business,
				QRCode:       code,
				Status:       to,
			}, nil
		},
	}
	mockQueue := mocks.NewMockMessageQueue()

	service := NewService(mockRepo, mockQueue, newTestLogger())

	session, err := service.Validate(ctx, qrCode, businessName)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.Status != domain.SessionStatusValidated {
		t.Errorf("expected status 'validated', got '%s'", session.Status)
	}

	messages := mockQueue.GetPublishedMessages(domain.SessionUpdateSubject("user-123"))
	if len(messages) != 1 {
		t.Fatalf("expected 1 message published, got %d", len(messages))
	}
	var event domain.SessionEvent
	if err := json.Unmarshal(messages[0], &event); err != nil {
		t.Fatalf("failed to unmarshal event: %v", err)
	}
	if event.Type != domain.SessionEventValidated {
		t.Errorf("expected event type '%s', got '%s'", domain.SessionEventValidated, event.Type)
	}
}

func TestValidate_NoMatchingSession(t *testing.T) {
	ctx := context.Background()

	// Wrong venue, already-validated, and unknown token all look the same:
	// the conditional update matches no row.
	mockRepo := &mocks.MockSessionRepository{
		TransitionByTokenFunc: func(ctx context.Context, code, business string, from, to domain.SessionStatus) (*domain.ParkingSession, error) {
			return nil, nil
		},
	}
	mockQueue := mocks.NewMockMessageQueue()

	service := NewService(mockRepo, mockQueue, newTestLogger())

	_, err := service.Validate(ctx, "user-123-abc", "Other Garage")

	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session not found error, got %v", err)
	}
	if len(mockQueue.PublishedMessages) != 0 {
		t.Error("expected no event published on failed validation")
	}
}

func TestComplete_Success(t *testing.T) {
	ctx := context.Background()

	mockRepo := &mocks.MockSessionRepository{
		TransitionByIDFunc: func(ctx context.Context, id string, from, to domain.SessionStatus) (*domain.ParkingSession, error) {
			if from != domain.SessionStatusValidated || to != domain.SessionStatusComplete {
				t.Errorf("unexpected transition: %s -> %s", from, to)
			}
			return &domain.ParkingSession{
				ID:         id,
				CustomerID: "user-123",
				Status:     to,
			}, nil
		},
	}
	mockQueue := mocks.NewMockMessageQueue()

	service := NewService(mockRepo, mockQueue, newTestLogger())

	session, err := service.Complete(ctx, "session-1")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.Status != domain.SessionStatusComplete {
		t.Errorf("expected status 'complete', got '%s'", session.Status)
	}
	if len(mockQueue.GetPublishedMessages(domain.SessionUpdateSubject("user-123"))) != 1 {
		t.Error("expected completion event published")
	}
}

func TestComplete_ActiveSessionRejected(t *testing.T) {
	ctx := context.Background()

	// Session exists but is still active; active -> complete is illegal.
	mockRepo := &mocks.MockSessionRepository{
		TransitionByIDFunc: func(ctx context.Context, id string, from, to domain.SessionStatus) (*domain.ParkingSession, error) {
			return nil, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ParkingSession, error) {
			return &domain.ParkingSession{ID: id, Status: domain.SessionStatusActive}, nil
		},
	}
	service := NewService(mockRepo, mocks.NewMockMessageQueue(), newTestLogger())

	_, err := service.Complete(ctx, "session-1")

	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition error, got %v", err)
	}
}

func TestComplete_AlreadyComplete(t *testing.T) {
	ctx := context.Background()

	mockRepo := &mocks.MockSessionRepository{
		TransitionByIDFunc: func(ctx context.Context, id string, from, to domain.SessionStatus) (*domain.ParkingSession, error) {
			return nil, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ParkingSession, error) {
			return &domain.ParkingSession{ID: id, Status: domain.SessionStatusComplete}, nil
		},
	}
	service := NewService(mockRepo, mocks.NewMockMessageQueue(), newTestLogger())

	_, err := service.Complete(ctx, "session-1")

	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition error, got %v", err)
	}
}

func TestComplete_SessionNotFound(t *testing.T) {
	ctx := context.Background()

	mockRepo := &mocks.MockSessionRepository{
		TransitionByIDFunc: func(ctx context.Context, id string, from, to domain.SessionStatus) (*domain.ParkingSession, error) {
			return nil, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ParkingSession, error) {
			return nil, nil
		},
	}
	service := NewService(mockRepo, mocks.NewMockMessageQueue(), newTestLogger())

	_, err := service.Complete(ctx, "missing")

	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session not found error, got %v", err)
	}
}

func TestGetOpenSession_None(t *testing.T) {
	ctx := context.Background()

	mockRepo := &mocks.MockSessionRepository{}
	service := NewService(mockRepo, mocks.NewMockMessageQueue(), newTestLogger())

	_, err := service.GetOpenSession(ctx, "user-123")

	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreate_RepoFailureIsTransient(t *testing.T) {
	ctx := context.Background()

	mockRepo := &mocks.MockSessionRepository{
		FindOpenByCustomerIDFunc: func(ctx context.Context, id string) (*domain.ParkingSession, error) {
			return nil, errors.New("connection refused")
		},
	}
	service := NewService(mockRepo, mocks.NewMockMessageQueue(), newTestLogger())

	_, err := service.Create(ctx, "user-123", "Garage Central", "user-123-abc")

	if domain.KindOf(err) != domain.KindTransient {
		t.Fatalf("expected transient error kind, got %v", err)
	}
}
