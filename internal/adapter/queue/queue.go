package queue

// Subscription is a live interest in a subject. Unsubscribe releases it and
// must be safe to call more than once; a subscription nobody releases is a
// resource leak.
type Subscription interface {
	Unsubscribe() error
}

// MessageQueue defines the interface for a message queue adapter.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) (Subscription, error)
	Close() error
}
