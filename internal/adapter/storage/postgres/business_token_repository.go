package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/ports"
)

type BusinessTokenRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewBusinessTokenRepository(db *gorm.DB, log *zap.Logger) ports.BusinessTokenRepository {
	return &BusinessTokenRepository{
		db:  db,
		log: log,
	}
}

func (r *BusinessTokenRepository) Insert(ctx context.Context, bt *domain.BusinessToken) error {
	err := r.db.WithContext(ctx).Create(bt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.Error{Kind: domain.KindUniqueViolation, Message: "business token already provisioned", Cause: err}
	}
	return err
}

func (r *BusinessTokenRepository) FindByBusinessName(ctx context.Context, businessName string) (*domain.BusinessToken, error) {
	var bt domain.BusinessToken
	err := r.db.WithContext(ctx).First(&bt, "business_name = ?", businessName).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bt, nil
}

func (r *BusinessTokenRepository) FindByToken(ctx context.Context, qrCode string) (*domain.BusinessToken, error) {
	var bt domain.BusinessToken
	err := r.db.WithContext(ctx).First(&bt, "qr_code = ?", qrCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bt, nil
}
