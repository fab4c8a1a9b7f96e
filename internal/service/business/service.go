// Package business provisions venue QR codes: one durable, printable token
// per business.
package business

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/ports"
	"github.com/seu-repo/parkpass/internal/token"
)

type Service struct {
	repo ports.BusinessTokenRepository
	log  *zap.Logger
}

func NewService(repo ports.BusinessTokenRepository, log *zap.Logger) ports.BusinessTokenService {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Provision creates the venue's token on first request. A second attempt for
// the same venue fails with a unique-violation error; the token is never
// regenerated once issued.
func (s *Service) Provision(ctx context.Context, businessName string) (*domain.BusinessToken, error) {
	bt := &domain.BusinessToken{
		BusinessName: businessName,
		QRCode:       token.Generate(businessName),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Insert(ctx, bt); err != nil {
		if domain.KindOf(err) == domain.KindUniqueViolation {
			return nil, err
		}
		return nil, domain.TransientError(err)
	}

	s.log.Info("Business token provisioned", zap.String("business_name", businessName))
	return bt, nil
}

func (s *Service) Get(ctx context.Context, businessName string) (*domain.BusinessToken, error) {
	bt, err := s.repo.FindByBusinessName(ctx, businessName)
	if err != nil {
		return nil, domain.TransientError(err)
	}
	if bt == nil {
		return nil, domain.ErrTokenNotFound
	}
	return bt, nil
}

// GetByToken resolves a scanned venue code back to its business.
func (s *Service) GetByToken(ctx context.Context, qrCode string) (*domain.BusinessToken, error) {
	bt, err := s.repo.FindByToken(ctx, qrCode)
	if err != nil {
		return nil, domain.TransientError(err)
	}
	if bt == nil {
		return nil, domain.ErrTokenNotFound
	}
	return bt, nil
}
