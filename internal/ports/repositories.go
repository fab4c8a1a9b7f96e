package ports

import (
	"context"
	"time"

	"github.com/seu-repo/parkpass/internal/domain"
)

// BusinessTokenRepository persists venue QR codes.
type BusinessTokenRepository interface {
	Insert(ctx context.Context, bt *domain.BusinessToken) error
	FindByBusinessName(ctx context.Context, businessName string) (*domain.BusinessToken, error)
	FindByToken(ctx context.Context, qrCode string) (*domain.BusinessToken, error)
}

// SessionRepository persists parking sessions. Lookups return (nil, nil) when
// no row matches; services map that to the appropriate error kind.
type SessionRepository interface {
	Insert(ctx context.Context, session *domain.ParkingSession) error
	FindByID(ctx context.Context, id string) (*domain.ParkingSession, error)
	FindByToken(ctx context.Context, qrCode string, statuses ...domain.SessionStatus) (*domain.ParkingSession, error)
	FindOpenByCustomerID(ctx context.Context, customerID string) (*domain.ParkingSession, error)
	FindHistoryByCustomerID(ctx context.Context, customerID string) ([]domain.ParkingSession, error)
	FindOpenByBusinessName(ctx context.Context, businessName string) ([]domain.ParkingSession, error)

	// TransitionByToken atomically moves the session identified by qrCode and
	// businessName from one status to the next in a single conditional update.
	// Returns (nil, nil) when no row matched, which covers wrong venue, wrong
	// status, and unknown token alike.
	TransitionByToken(ctx context.Context, qrCode, businessName string, from, to domain.SessionStatus) (*domain.ParkingSession, error)

	// TransitionByID is the same conditional update keyed by session ID.
	TransitionByID(ctx context.Context, id string, from, to domain.SessionStatus) (*domain.ParkingSession, error)
}

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
