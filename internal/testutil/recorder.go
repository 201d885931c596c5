package testutil

import (
	"context"
	"sync"

	"github.com/dom/hero-forge/internal/domain"
)

// NotificationRecorder keeps every notification it is handed
type NotificationRecorder struct {
	mu    sync.Mutex
	notes []domain.Notification
}

func NewNotificationRecorder() *NotificationRecorder {
	return &NotificationRecorder{}
}

func (r *NotificationRecorder) Notify(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
	return nil
}

// All returns a copy of the recorded notifications in delivery order
func (r *NotificationRecorder) All() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Notification, len(r.notes))
	copy(out, r.notes)
	return out
}

// Types returns the recorded notification types in delivery order
func (r *NotificationRecorder) Types() []domain.NotificationType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.NotificationType, len(r.notes))
	for i, n := range r.notes {
		out[i] = n.Type
	}
	return out
}

// Last returns the most recent notification of the given type
func (r *NotificationRecorder) Last(t domain.NotificationType) (domain.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.notes) - 1; i >= 0; i-- {
		if r.notes[i].Type == t {
			return r.notes[i], true
		}
	}
	return domain.Notification{}, false
}

func (r *NotificationRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = nil
}
