package mocks

import (
	"context"

	"github.com/seu-repo/parkpass/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	SaveFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

// MockBusinessTokenRepository is a mock implementation of BusinessTokenRepository
type MockBusinessTokenRepository struct {
	InsertFunc             func(ctx context.Context, bt *domain.BusinessToken) error
	FindByBusinessNameFunc func(ctx context.Context, businessName string) (*domain.BusinessToken, error)
	FindByTokenFunc        func(ctx context.Context, qrCode string) (*domain.BusinessToken, error)
}

func (m *MockBusinessTokenRepository) Insert(ctx context.Context, bt *domain.BusinessToken) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, bt)
	}
	return nil
}

func (m *MockBusinessTokenRepository) FindByBusinessName(ctx context.Context, businessName string) (*domain.BusinessToken, error) {
	if m.FindByBusinessNameFunc != nil {
		return m.FindByBusinessNameFunc(ctx, businessName)
	}
	return nil, nil
}

func (m *MockBusinessTokenRepository) FindByToken(ctx context.Context, qrCode string) (*domain.BusinessToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, qrCode)
	}
	return nil, nil
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	InsertFunc                  func(ctx context.Context, session *domain.ParkingSession) error
	FindByIDFunc                func(ctx context.Context, id string) (*domain.ParkingSession, error)
	FindByTokenFunc             func(ctx context.Context, qrCode string, statuses ...domain.SessionStatus) (*domain.ParkingSession, error)
	FindOpenByCustomerIDFunc    func(ctx context.Context, customerID string) (*domain.ParkingSession, error)
	FindHistoryByCustomerIDFunc func(ctx context.Context, customerID string) ([]domain.ParkingSession, error)
	FindOpenByBusinessNameFunc  func(ctx context.Context, businessName string) ([]domain.ParkingSession, error)
	TransitionByTokenFunc       func(ctx context.Context, qrCode, businessName string, from, to domain.SessionStatus) (*domain.ParkingSession, error)
	TransitionByIDFunc          func(ctx context.Context, id string, from, to domain.SessionStatus) (*domain.ParkingSession, error)
}

func (m *MockSessionRepository) Insert(ctx context.Context, session *domain.ParkingSession) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id string) (*domain.ParkingSession, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, qrCode string, statuses ...domain.SessionStatus) (*domain.ParkingSession, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, qrCode, statuses...)
	}
	return nil, nil
}

func (m *MockSessionRepository) FindOpenByCustomerID(ctx context.Context, customerID string) (*domain.ParkingSession, error) {
	if m.FindOpenByCustomerIDFunc != nil {
		return m.FindOpenByCustomerIDFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *MockSessionRepository) FindHistoryByCustomerID(ctx context.Context, customerID string) ([]domain.ParkingSession, error) {
	if m.FindHistoryByCustomerIDFunc != nil {
		return m.FindHistoryByCustomerIDFunc(ctx, customerID)
	}
	return []domain.ParkingSession{}, nil
}

func (m *MockSessionRepository) FindOpenByBusinessName(ctx context.Context, businessName string) ([]domain.ParkingSession, error) {
	if m.FindOpenByBusinessNameFunc != nil {
		return m.FindOpenByBusinessNameFunc(ctx, businessName)
	}
	return []domain.ParkingSession{}, nil
}

func (m *MockSessionRepository) TransitionByToken(ctx context.Context, qrCode, businessName string, from, to domain.SessionStatus) (*domain.ParkingSession, error) {
	if m.TransitionByTokenFunc != nil {
		return m.TransitionByTokenFunc(ctx, qrCode, businessName, from, to)
	}
	return nil, nil
}

func (m *MockSessionRepository) TransitionByID(ctx context.Context, id string, from, to domain.SessionStatus) (*domain.ParkingSession, error) {
	if m.TransitionByIDFunc != nil {
		return m.TransitionByIDFunc(ctx, id, from, to)
	}
	return nil, nil
}
