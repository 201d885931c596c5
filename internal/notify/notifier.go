// Package notify delivers state-transition notifications after a unit of
// work commits.
package notify

import (
	"context"

	"github.com/dom/hero-forge/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// Multi fans a notification out to every notifier, collecting failures
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n domain.Notification) error {
	var err error
	for _, notifier := range m {
		err = multierr.Append(err, notifier.Notify(ctx, n))
	}
	return err
}

// Log writes notifications to a zap logger
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Notify(ctx context.Context, n domain.Notification) error {
	l.log.Info("notification",
		zap.String("type", string(n.Type)),
		zap.Stringer("id", n.ID),
		zap.Uint64s("heroIds", n.HeroIDs),
		zap.Any("data", n.Data),
	)
	return nil
}

// Discard drops every notification
type Discard struct{}

func (Discard) Notify(context.Context, domain.Notification) error {
	return nil
}
