package notifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func openSessionService(session *domain.ParkingSession) *mocks.MockSessionService {
	return &mocks.MockSessionService{
		GetOpenSessionFunc: func(ctx context.Context, customerID string) (*domain.ParkingSession, error) {
			if session == nil {
				return nil, domain.ErrNotFound
			}
			return session, nil
		},
	}
}

func marshalEvent(t *testing.T, eventType domain.SessionEventType, session domain.ParkingSession) []byte {
	t.Helper()
	data, err := json.Marshal(domain.SessionEvent{Type: eventType, Session: session})
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return data
}

func TestWatch_DeliversValidationOnce(t *testing.T) {
	// Arrange
	ctx := context.Background()
	customerID := "user-123"
	subject := domain.SessionUpdateSubject(customerID)

	active := &domain.ParkingSession{ID: "session-1", CustomerID: customerID, Status: domain.SessionStatusActive}
	mockQueue := mocks.NewMockMessageQueue()
	watcher := NewWatcher(mockQueue, openSessionService(active), newTestLogger())

	calls := 0
	var got domain.ParkingSession

	handle, err := watcher.Watch(ctx, customerID, func(s domain.ParkingSession) {
		calls++
		got = s
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if handle == nil {
		t.Fatal("expected a handle for an open session")
	}

	validated := *active
	validated.Status = domain.SessionStatusValidated

	// Act: a created echo first, then the validation, then a replay.
	mockQueue.Deliver(subject, marshalEvent(t, domain.SessionEventCreated, *active))
	mockQueue.Deliver(subject, marshalEvent(t, domain.SessionEventValidated, validated))
	mockQueue.Deliver(subject, marshalEvent(t, domain.SessionEventValidated, validated))

	// Assert
	if calls != 1 {
		t.Fatalf("expected exactly 1 delivery, got %d", calls)
	}
	if got.Status != domain.SessionStatusValidated {
		t.Errorf("expected delivered status 'validated', got '%s'", got.Status)
	}
	if len(mockQueue.Subscriptions) != 1 || !mockQueue.Subscriptions[0].Unsubscribed() {
		t.Error("expected subscription released after delivery")
	}
}

func TestWatch_IgnoresCompletion(t *testing.T) {
	ctx := context.Background()
	customerID := "user-123"
	subject := domain.SessionUpdateSubject(customerID)

	// A validated session is still open; the customer may already be watching
	// when their own completion comes through. It must not fire the callback.
	validated := &domain.ParkingSession{ID: "session-1", CustomerID: customerID, Status: domain.SessionStatusValidated}
	mockQueue := mocks.NewMockMessageQueue()
	watcher := NewWatcher(mockQueue, openSessionService(validated), newTestLogger())

	calls := 0
	handle, err := watcher.Watch(ctx, customerID, func(s domain.ParkingSession) {
		calls++
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer handle.Stop()

	complete := *validated
	complete.Status = domain.SessionStatusComplete
	mockQueue.Deliver(subject, marshalEvent(t, domain.SessionEventCompleted, complete))

	if calls != 0 {
		t.Fatalf("expected no delivery for completion, got %d", calls)
	}
}

func TestWatch_NoOpenSession(t *testing.T) {
	ctx := context.Background()

	mockQueue := mocks.NewMockMessageQueue()
	watcher := NewWatcher(mockQueue, openSessionService(nil), newTestLogger())

	handle, err := watcher.Watch(ctx, "user-123", func(s domain.ParkingSession) {
		t.Error("callback should never fire without an open session")
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if handle != nil {
		t.Fatal("expected nil handle when there is no open session")
	}
	if len(mockQueue.Subscriptions) != 0 {
		t.Error("expected no subscription without an open session")
	}

	// Stop on a nil handle is a no-op, not a panic.
	handle.Stop()
}

func TestWatch_StopReleasesSubscription(t *testing.T) {
	ctx := context.Background()
	customerID := "user-123"

	active := &domain.ParkingSession{ID: "session-1", CustomerID: customerID, Status: domain.SessionStatusActive}
	mockQueue := mocks.NewMockMessageQueue()
	watcher := NewWatcher(mockQueue, openSessionService(active), newTestLogger())

	handle, err := watcher.Watch(ctx, customerID, func(s domain.ParkingSession) {})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	handle.Stop()
	handle.Stop() // idempotent

	if !mockQueue.Subscriptions[0].Unsubscribed() {
		t.Error("expected subscription released after Stop")
	}
}

func TestWatch_ContextCancelReleasesSubscription(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	customerID := "user-123"

	active := &domain.ParkingSession{ID: "session-1", CustomerID: customerID, Status: domain.SessionStatusActive}
	mockQueue := mocks.NewMockMessageQueue()
	watcher := NewWatcher(mockQueue, openSessionService(active), newTestLogger())

	if _, err := watcher.Watch(ctx, customerID, func(s domain.ParkingSession) {}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cancel()

	deadline := time.After(2 * time.Second)
	for !mockQueue.Subscriptions[0].Unsubscribed() {
		select {
		case <-deadline:
			t.Fatal("expected subscription released after context cancellation")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
