package service

import (
	"context"

	"github.com/iliyamo/lecture-hall-booking/internal/queue"
)

// Notifier publishes booking notifications.  queue.Publisher and
// queue.Discard both satisfy it.
type Notifier interface {
	Publish(ctx context.Context, n queue.EventNotification) error
}
