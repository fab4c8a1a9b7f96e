// Package session implements the parking-session lifecycle engine. It owns
// the legality of every status transition; callers never touch storage
// directly.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/adapter/queue"
	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/observability/telemetry"
	"github.com/seu-repo/parkpass/internal/ports"
)

type Service struct {
	repo ports.SessionRepository
	mq   queue.MessageQueue
	log  *zap.Logger
}

func NewService(repo ports.SessionRepository, mq queue.MessageQueue, log *zap.Logger) ports.SessionService {
	return &Service{
		repo: repo,
		mq:   mq,
		log:  log,
	}
}

// Create opens a session for a customer at a venue. A customer can hold at
// most one open (active or validated) session at a time; a second create is
// rejected with a duplicate-session error instead of inserting a second claim.
func (s *Service) Create(ctx context.Context, customerID, businessName, qrCode string) (*domain.ParkingSession, error) {
	open, err := s.repo.FindOpenByCustomerID(ctx, customerID)
	if err != nil {
		return nil, domain.TransientError(err)
	}
	if open != nil {
		return nil, domain.ErrDuplicateSession
	}

	now := time.Now()
	session := &domain.ParkingSession{
		ID:           uuid.New().String(),
		CustomerID:   customerID,
		BusinessName: businessName,
		QRCode:       qrCode,
		Status:       domain.SessionStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, session); err != nil {
		if errors.Is(err, domain.ErrUniqueViolation) {
			// Token collision. Retryable by the caller with a fresh token.
			return nil, err
		}
		return nil, domain.TransientError(err)
	}

	telemetry.SessionsCreatedTotal.Inc()
	s.publishEvent(domain.SessionEventCreated, session)

	s.log.Info("Parking session created",
		zap.String("session_id", session.ID),
		zap.String("business_name", businessName),
	)
	return session, nil
}

// Validate moves an active session at the scanning business's own venue to
// validated. The venue scoping and the status filter live in one conditional
// update, so a lost race, a wrong venue, and an already-validated session all
// surface as the same session-not-found failure.
func (s *Service) Validate(ctx context.Context, qrCode, businessName string) (*domain.ParkingSession, error) {
	session, err := s.repo.TransitionByToken(ctx, qrCode, businessName,
		domain.SessionStatusActive, domain.SessionStatusValidated)
	if err != nil {
		return nil, domain.TransientError(err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}

	telemetry.SessionsValidatedTotal.Inc()
	s.publishEvent(domain.SessionEventValidated, session)

	s.log.Info("Parking session validated",
		zap.String("session_id", session.ID),
		zap.String("business_name", businessName),
	)
	return session, nil
}

// Complete closes a validated session. Completing from active or from
// complete is an invalid transition; complete is terminal.
func (s *Service) Complete(ctx context.Context, sessionID string) (*domain.ParkingSession, error) {
	session, err := s.repo.TransitionByID(ctx, sessionID,
		domain.SessionStatusValidated, domain.SessionStatusComplete)
	if err != nil {
		return nil, domain.TransientError(err)
	}
	if session == nil {
		existing, err := s.repo.FindByID(ctx, sessionID)
		if err != nil {
			return nil, domain.TransientError(err)
		}
		if existing == nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.ErrInvalidTransition
	}

	telemetry.SessionsCompletedTotal.Inc()
	s.publishEvent(domain.SessionEventCompleted, session)

	s.log.Info("Parking session completed", zap.String("session_id", session.ID))
	return session, nil
}

func (s *Service) GetSession(ctx context.Context, id string) (*domain.ParkingSession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.TransientError(err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *Service) GetOpenSession(ctx context.Context, customerID string) (*domain.ParkingSession, error) {
	session, err := s.repo.FindOpenByCustomerID(ctx, customerID)
	if err != nil {
		return nil, domain.TransientError(err)
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (s *Service) History(ctx context.Context, customerID string) ([]domain.ParkingSession, error) {
	sessions, err := s.repo.FindHistoryByCustomerID(ctx, customerID)
	if err != nil {
		return nil, domain.TransientError(err)
	}
	return sessions, nil
}

func (s *Service) OpenForBusiness(ctx context.Context, businessName string) ([]domain.ParkingSession, error) {
	sessions, err := s.repo.FindOpenByBusinessName(ctx, businessName)
	if err != nil {
		return nil, domain.TransientError(err)
	}
	return sessions, nil
}

// publishEvent pushes the transition onto the customer's update subject.
// Publish failures are logged, not returned: the store mutation already
// happened and the watcher reconciles with a fresh read on reconnect.
func (s *Service) publishEvent(eventType domain.SessionEventType, session *domain.ParkingSession) {
	event := domain.SessionEvent{
		Type:    eventType,
		Session: *session,
	}
	data, err := json.Marshal(event)
	if err != nil {
		s.log.Error("Failed to marshal session event", zap.Error(err))
		return
	}
	subject := domain.SessionUpdateSubject(session.CustomerID)
	if err := s.mq.Publish(subject, data); err != nil {
		s.log.Error("Failed to publish session event",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
