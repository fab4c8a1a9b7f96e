package mocks

import (
	"sync"

	"github.com/seu-repo/parkpass/internal/adapter/queue"
)

// MockSubscription records whether Unsubscribe was called.
type MockSubscription struct {
	mu              sync.Mutex
	unsubscribed    bool
	UnsubscribeFunc func() error
}

func (s *MockSubscription) Unsubscribe() error {
	s.mu.Lock()
	s.unsubscribed = true
	s.mu.Unlock()
	if s.UnsubscribeFunc != nil {
		return s.UnsubscribeFunc()
	}
	return nil
}

func (s *MockSubscription) Unsubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribed
}

// MockMessageQueue is a mock implementation of MessageQueue interface
type MockMessageQueue struct {
	mu                sync.Mutex
	PublishedMessages map[string][][]byte
	Subscribers       map[string][]func([]byte) error
	Subscriptions     []*MockSubscription
	PublishFunc       func(subject string, data []byte) error
	SubscribeFunc     func(subject string, handler func([]byte) error) (queue.Subscription, error)
	CloseFunc         func() error
}

func NewMockMessageQueue() *MockMessageQueue {
	return &MockMessageQueue{
		PublishedMessages: make(map[string][][]byte),
		Subscribers:       make(map[string][]func([]byte) error),
	}
}

func (m *MockMessageQueue) Publish(subject string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(subject, data)
	}
	m.mu.Lock()
	m.PublishedMessages[subject] = append(m.PublishedMessages[subject], data)
	m.mu.Unlock()
	return nil
}

func (m *MockMessageQueue) Subscribe(subject string, handler func([]byte) error) (queue.Subscription, error) {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(subject, handler)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Subscribers[subject] = append(m.Subscribers[subject], handler)
	sub := &MockSubscription{}
	m.Subscriptions = append(m.Subscriptions, sub)
	return sub, nil
}

func (m *MockMessageQueue) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Deliver invokes every handler subscribed to a subject, simulating a
// published message arriving.
func (m *MockMessageQueue) Deliver(subject string, data []byte) {
	m.mu.Lock()
	handlers := append([]func([]byte) error(nil), m.Subscribers[subject]...)
	m.mu.Unlock()
	for _, h := range handlers {
		h(data)
	}
}

// GetPublishedMessages returns all messages published to a subject
func (m *MockMessageQueue) GetPublishedMessages(subject string) [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PublishedMessages[subject]
}

// ClearMessages clears all published messages
func (m *MockMessageQueue) ClearMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishedMessages = make(map[string][][]byte)
}
