package domain

import (
	"time"
)

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusValidated SessionStatus = "validated"
	SessionStatusComplete  SessionStatus = "complete"
)

// OpenStatuses are the statuses that count against the one-open-session-per-customer limit.
var OpenStatuses = []SessionStatus{SessionStatusActive, SessionStatusValidated}

// CanTransitionTo reports whether a session may move from s to next.
// Status only moves forward: active -> validated -> complete. Complete is terminal.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	switch s {
	case SessionStatusActive:
		return next == SessionStatusValidated
	case SessionStatusValidated:
		return next == SessionStatusComplete
	default:
		return false
	}
}

// IsOpen reports whether the status counts as an open parking claim.
func (s SessionStatus) IsOpen() bool {
	return s == SessionStatusActive || s == SessionStatusValidated
}

// ParkingSession is one customer's parking claim at a venue. The record is kept
// after completion as historical ticket data and is never hard-deleted.
type ParkingSession struct {
	ID           string        `json:"id" gorm:"primaryKey"`
	CustomerID   string        `json:"customer_id" gorm:"column:user_id;index"`
	BusinessName string        `json:"business_name" gorm:"index"`
	QRCode       string        `json:"qr_code" gorm:"uniqueIndex"`
	Status       SessionStatus `json:"status" gorm:"index"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (ParkingSession) TableName() string {
	return "parking_qr_codes"
}

// SessionEventType identifies which lifecycle transition produced an event.
type SessionEventType string

const (
	SessionEventCreated   SessionEventType = "session.created"
	SessionEventValidated SessionEventType = "session.validated"
	SessionEventCompleted SessionEventType = "session.completed"
)

// SessionEvent is the payload published on the message queue after every
// successful lifecycle transition, scoped to the owning customer's subject.
type SessionEvent struct {
	Type    SessionEventType `json:"type"`
	Session ParkingSession   `json:"session"`
}

// SessionUpdateSubject returns the queue subject carrying status changes for
// one customer's sessions.
func SessionUpdateSubject(customerID string) string {
	return "sessions.updates." + customerID
}
