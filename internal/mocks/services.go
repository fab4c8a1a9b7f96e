package mocks

import (
	"context"

	"github.com/seu-repo/parkpass/internal/domain"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	LoginFunc         func(ctx context.Context, email, password string) (string, string, error)
	RegisterFunc      func(ctx context.Context, user *domain.User) error
	RefreshTokenFunc  func(ctx context.Context, refreshToken string) (string, error)
	ValidateTokenFunc func(ctx context.Context, token string) (*domain.User, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", "", nil
}

func (m *MockAuthService) Register(ctx context.Context, user *domain.User) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, user)
	}
	return nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return "", nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return nil, nil
}

// MockSessionService is a mock implementation of SessionService
type MockSessionService struct {
	CreateFunc          func(ctx context.Context, customerID, businessName, qrCode string) (*domain.ParkingSession, error)
	ValidateFunc        func(ctx context.Context, qrCode, businessName string) (*domain.ParkingSession, error)
	CompleteFunc        func(ctx context.Context, sessionID string) (*domain.ParkingSession, error)
	GetSessionFunc      func(ctx context.Context, id string) (*domain.ParkingSession, error)
	GetOpenSessionFunc  func(ctx context.Context, customerID string) (*domain.ParkingSession, error)
	HistoryFunc         func(ctx context.Context, customerID string) ([]domain.ParkingSession, error)
	OpenForBusinessFunc func(ctx context.Context, businessName string) ([]domain.ParkingSession, error)
}

func (m *MockSessionService) Create(ctx context.Context, customerID, businessName, qrCode string) (*domain.ParkingSession, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, customerID, businessName, qrCode)
	}
	return nil, nil
}

func (m *MockSessionService) Validate(ctx context.Context, qrCode, businessName string) (*domain.ParkingSession, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, qrCode, businessName)
	}
	return nil, nil
}

func (m *MockSessionService) Complete(ctx context.Context, sessionID string) (*domain.ParkingSession, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *MockSessionService) GetSession(ctx context.Context, id string) (*domain.ParkingSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockSessionService) GetOpenSession(ctx context.Context, customerID string) (*domain.ParkingSession, error) {
	if m.GetOpenSessionFunc != nil {
		return m.GetOpenSessionFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *MockSessionService) History(ctx context.Context, customerID string) ([]domain.ParkingSession, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, customerID)
	}
	return []domain.ParkingSession{}, nil
}

func (m *MockSessionService) OpenForBusiness(ctx context.Context, businessName string) ([]domain.ParkingSession, error) {
	if m.OpenForBusinessFunc != nil {
		return m.OpenForBusinessFunc(ctx, businessName)
	}
	return []domain.ParkingSession{}, nil
}

// MockBusinessTokenService is a mock implementation of BusinessTokenService
type MockBusinessTokenService struct {
	ProvisionFunc  func(ctx context.Context, businessName string) (*domain.BusinessToken, error)
	GetFunc        func(ctx context.Context, businessName string) (*domain.BusinessToken, error)
	GetByTokenFunc func(ctx context.Context, qrCode string) (*domain.BusinessToken, error)
}

func (m *MockBusinessTokenService) Provision(ctx context.Context, businessName string) (*domain.BusinessToken, error) {
	if m.ProvisionFunc != nil {
		return m.ProvisionFunc(ctx, businessName)
	}
	return nil, nil
}

func (m *MockBusinessTokenService) Get(ctx context.Context, businessName string) (*domain.BusinessToken, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, businessName)
	}
	return nil, nil
}

func (m *MockBusinessTokenService) GetByToken(ctx context.Context, qrCode string) (*domain.BusinessToken, error) {
	if m.GetByTokenFunc != nil {
		return m.GetByTokenFunc(ctx, qrCode)
	}
	return nil, nil
}
