package service

import (
	"context"

	"lapor/internal/model"
	"lapor/internal/notify"
)

// NotificationService exposes the per-user notification queue and its
// display lifecycle.
type NotificationService interface {
	Unread(ctx context.Context, userID string) []model.Notification
	// Deliver returns not-yet-shown unread notifications and starts
	// their auto-read window.
	Deliver(ctx context.Context, userID string) []model.Notification
	// Dismiss marks a notification read immediately. Notifications
	// targeted at other users are left untouched.
	Dismiss(ctx context.Context, userID, id string)
}

type notificationService struct {
	queue     *notify.Queue
	presenter *notify.Presenter
}

// NewNotificationService creates a notification service.
func NewNotificationService(queue *notify.Queue, presenter *notify.Presenter) NotificationService {
	return &notificationService{queue: queue, presenter: presenter}
}

func (s *notificationService) Unread(ctx context.Context, userID string) []model.Notification {
	return s.queue.UnreadFor(userID)
}

func (s *notificationService) Deliver(ctx context.Context, userID string) []model.Notification {
	return s.presenter.Deliver(userID)
}

func (s *notificationService) Dismiss(ctx context.Context, userID, id string) {
	for _, n := range s.queue.For(userID) {
		if n.ID == id {
			s.presenter.Dismiss(id)
			return
		}
	}
}
