package ports

import (
	"context"

	"github.com/seu-repo/parkpass/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, error)
	Register(ctx context.Context, user *domain.User) error
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

// SessionService is the parking-session lifecycle engine. It exclusively owns
// the rules for which store mutations are permitted.
type SessionService interface {
	Create(ctx context.Context, customerID, businessName, qrCode string) (*domain.ParkingSession, error)
	Validate(ctx context.Context, qrCode, businessName string) (*domain.ParkingSession, error)
	Complete(ctx context.Context, sessionID string) (*domain.ParkingSession, error)
	GetSession(ctx context.Context, id string) (*domain.ParkingSession, error)
	GetOpenSession(ctx context.Context, customerID string) (*domain.ParkingSession, error)
	History(ctx context.Context, customerID string) ([]domain.ParkingSession, error)
	OpenForBusiness(ctx context.Context, businessName string) ([]domain.ParkingSession, error)
}

// ScanKind says which branch a scan resolved to.
type ScanKind string

const (
	ScanKindSessionCreated   ScanKind = "session_created"
	ScanKindSessionValidated ScanKind = "session_validated"
)

// ScanResult is returned to the UI layer after a successful resolution.
type ScanResult struct {
	Kind         ScanKind               `json:"kind"`
	BusinessName string                 `json:"business_name"`
	Session      *domain.ParkingSession `json:"session"`
}

// ScanService resolves a decoded QR string against the scanning actor's role.
type ScanService interface {
	Resolve(ctx context.Context, scannedToken string, actor domain.Actor) (*ScanResult, error)
}

// BusinessTokenService provisions and serves venue QR codes.
type BusinessTokenService interface {
	Provision(ctx context.Context, businessName string) (*domain.BusinessToken, error)
	Get(ctx context.Context, businessName string) (*domain.BusinessToken, error)
	GetByToken(ctx context.Context, qrCode string) (*domain.BusinessToken, error)
}
