package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/ports"
)

type SessionRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSessionRepository(db *gorm.DB, log *zap.Logger) ports.SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log,
	}
}

func (r *SessionRepository) Insert(ctx context.Context, session *domain.ParkingSession) error {
	err := r.db.WithContext(ctx).Create(session).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.Error{Kind: domain.KindUniqueViolation, Message: "parking session token already exists", Cause: err}
	}
	return err
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.ParkingSession, error) {
	var session domain.ParkingSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, qrCode string, statuses ...domain.SessionStatus) (*domain.ParkingSession, error) {
	var session domain.ParkingSession
	q := r.db.WithContext(ctx).Where("qr_code = ?", qrCode)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) FindOpenByCustomerID(ctx context.Context, customerID string) (*domain.ParkingSession, error) {
	var session domain.ParkingSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", customerID, domain.OpenStatuses).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) FindHistoryByCustomerID(ctx context.Context, customerID string) ([]domain.ParkingSession, error) {
	var sessions []domain.ParkingSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", customerID).
		Order("created_at desc").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) FindOpenByBusinessName(ctx context.Context, businessName string) ([]domain.ParkingSession, error) {
	var sessions []domain.ParkingSession
	err := r.db.WithContext(ctx).
		Where("business_name = ? AND status IN ?", businessName, domain.OpenStatuses).
		Order("created_at desc").
		Find(&sessions).Error
	return sessions, err
}

// TransitionByToken runs a single conditional UPDATE so racing validations
// cannot both succeed: only the request that still observes the `from` status
// matches a row, the loser matches nothing.
func (r *SessionRepository) TransitionByToken(ctx context.Context, qrCode, businessName string, from, to domain.SessionStatus) (*domain.ParkingSession, error) {
	var sessions []domain.ParkingSession
	res := r.db.WithContext(ctx).
		Model(&sessions).
		Clauses(clause.Returning{}).
		Where("qr_code = ? AND business_name = ? AND status = ?", qrCode, businessName, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 || len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

func (r *SessionRepository) TransitionByID(ctx context.Context, id string, from, to domain.SessionStatus) (*domain.ParkingSession, error) {
	var sessions []domain.ParkingSession
	res := r.db.WithContext(ctx).
		Model(&sessions).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 || len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}
