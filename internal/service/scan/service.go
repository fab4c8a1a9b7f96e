// Package scan resolves a decoded QR string against the scanning actor's
// role: customers scanning a venue code open a session, businesses scanning a
// session code validate it.
package scan

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/observability/telemetry"
	"github.com/seu-repo/parkpass/internal/ports"
	"github.com/seu-repo/parkpass/internal/token"
)

type Service struct {
	businessTokens ports.BusinessTokenService
	sessions       ports.SessionService
	log            *zap.Logger
}

func NewService(businessTokens ports.BusinessTokenService, sessions ports.SessionService, log *zap.Logger) ports.ScanService {
	return &Service{
		businessTokens: businessTokens,
		sessions:       sessions,
		log:            log,
	}
}

// Resolve performs exactly one store mutation on success and none on failure.
// The actor's role comes from the server-verified user record; duplicate
// physical scans are ultimately rejected by the engine's guards even if the
// client's in-flight latch fails.
func (s *Service) Resolve(ctx context.Context, scannedToken string, actor domain.Actor) (*ports.ScanResult, error) {
	switch actor.Role {
	case domain.UserRoleCustomer:
		return s.resolveCustomerScan(ctx, scannedToken, actor)
	case domain.UserRoleBusiness:
		return s.resolveBusinessScan(ctx, scannedToken, actor)
	default:
		return nil, &domain.Error{Kind: domain.KindNotFound, Message: "unknown scanning role"}
	}
}

func (s *Service) resolveCustomerScan(ctx context.Context, scannedToken string, actor domain.Actor) (*ports.ScanResult, error) {
	bt, err := s.businessTokens.GetByToken(ctx, scannedToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			telemetry.ScansResolvedTotal.WithLabelValues("customer", "rejected").Inc()
		} else {
			telemetry.ScansResolvedTotal.WithLabelValues("customer", "error").Inc()
		}
		return nil, err
	}

	session, err := s.sessions.Create(ctx, actor.ID, bt.BusinessName, token.Generate(actor.ID))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSession) {
			telemetry.ScansResolvedTotal.WithLabelValues("customer", "rejected").Inc()
		} else {
			telemetry.ScansResolvedTotal.WithLabelValues("customer", "error").Inc()
		}
		return nil, err
	}

	telemetry.ScansResolvedTotal.WithLabelValues("customer", "ok").Inc()
	return &ports.ScanResult{
		Kind:         ports.ScanKindSessionCreated,
		BusinessName: bt.BusinessName,
		Session:      session,
	}, nil
}

func (s *Service) resolveBusinessScan(ctx context.Context, scannedToken string, actor domain.Actor) (*ports.ScanResult, error) {
	session, err := s.sessions.Validate(ctx, scannedToken, actor.BusinessName)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			telemetry.ScansResolvedTotal.WithLabelValues("business", "rejected").Inc()
		} else {
			telemetry.ScansResolvedTotal.WithLabelValues("business", "error").Inc()
		}
		return nil, err
	}

	telemetry.ScansResolvedTotal.WithLabelValues("business", "ok").Inc()
	return &ports.ScanResult{
		Kind:         ports.ScanKindSessionValidated,
		BusinessName: actor.BusinessName,
		Session:      session,
	}, nil
}
