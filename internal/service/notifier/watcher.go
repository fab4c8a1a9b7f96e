// Package notifier pushes a session's validation to the owning customer
// without polling. A watch is a one-shot resource: it fires at most once and
// is released on delivery, cancellation, or Stop, whichever comes first.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/adapter/queue"
	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/observability/telemetry"
	"github.com/seu-repo/parkpass/internal/ports"
)

type Watcher struct {
	mq       queue.MessageQueue
	sessions ports.SessionService
	log      *zap.Logger
}

func NewWatcher(mq queue.MessageQueue, sessions ports.SessionService, log *zap.Logger) *Watcher {
	return &Watcher{
		mq:       mq,
		sessions: sessions,
		log:      log,
	}
}

// Handle is a live watch. Stop is idempotent and must be called by the
// consumer unless the watch already fired or the context ended.
type Handle struct {
	stop func()
}

func (h *Handle) Stop() {
	if h != nil {
		h.stop()
	}
}

// Watch subscribes to the customer's session updates and delivers the first
// validated transition to onUpdate, exactly once, then releases the
// subscription. The completion transition is driven by the customer's own
// action and is not watched. If the customer has no open session, nothing is
// subscribed and a nil handle is returned.
//
// onUpdate is invoked on the queue transport's goroutine, asynchronously
// relative to any in-flight user-initiated call.
func (w *Watcher) Watch(ctx context.Context, customerID string, onUpdate func(domain.ParkingSession)) (*Handle, error) {
	_, err := w.sessions.GetOpenSession(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	subject := domain.SessionUpdateSubject(customerID)

	var (
		once sync.Once
		sub  queue.Subscription
		mu   sync.Mutex
	)

	release := func() {
		once.Do(func() {
			mu.Lock()
			s := sub
			mu.Unlock()
			if s != nil {
				if err := s.Unsubscribe(); err != nil {
					w.log.Error("Failed to release session watch",
						zap.String("subject", subject),
						zap.Error(err),
					)
				}
			}
			telemetry.ActiveSessionWatches.Dec()
		})
	}

	var delivered sync.Once
	handler := func(data []byte) error {
		var event domain.SessionEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return err
		}
		if event.Session.Status != domain.SessionStatusValidated {
			return nil
		}
		delivered.Do(func() {
			onUpdate(event.Session)
			release()
		})
		return nil
	}

	mu.Lock()
	s, err := w.mq.Subscribe(subject, handler)
	if err != nil {
		mu.Unlock()
		return nil, domain.TransientError(err)
	}
	sub = s
	mu.Unlock()

	telemetry.ActiveSessionWatches.Inc()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			release()
		}()
	}

	w.log.Debug("Watching session updates", zap.String("subject", subject))
	return &Handle{stop: release}, nil
}
