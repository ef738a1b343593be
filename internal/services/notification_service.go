package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/constants"
	"github.com/yukikurage/brand-studio-api/internal/dto"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/policy"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"github.com/yukikurage/brand-studio-api/internal/utils"
	"gorm.io/gorm"
)

// NotificationService creates notifications as a side effect of other
// actions and lets recipients read and dismiss them.
type NotificationService struct {
	repos *repository.Repositories
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repos *repository.Repositories) *NotificationService {
	return &NotificationService{repos: repos}
}

// NotifyInput describes one notification.
type NotifyInput struct {
	RecipientID   string
	Type          models.NotificationType
	Title         string
	Message       string
	Link          string
	TriggeredByID string
}

// Notify creates a notification through tx. Nothing is created when there
// is no recipient, when recipients would notify themselves, or when the
// recipient is inactive or opted out of that kind of notification.
func (s *NotificationService) Notify(tx *repository.Repositories, input NotifyInput) (*models.Notification, error) {
	if input.RecipientID == "" || input.RecipientID == input.TriggeredByID {
		return nil, nil
	}

	recipient, err := tx.Users.FindByID(input.RecipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}
	if !recipient.IsActive || !wants(recipient.NotificationPreferences, input.Type) {
		return nil, nil
	}

	notification := &models.Notification{
		UserID:  input.RecipientID,
		Type:    input.Type,
		Title:   preview(input.Title, constants.MaxNotificationTitle-1),
		Message: input.Message,
		Link:    input.Link,
	}
	if input.TriggeredByID != "" {
		triggeredBy := input.TriggeredByID
		notification.TriggeredByID = &triggeredBy
	}

	if err := tx.Notifications.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

func wants(prefs models.NotificationPreferences, t models.NotificationType) bool {
	switch t {
	case models.NotificationNewMessage:
		return prefs.NotifyNewMessages
	case models.NotificationProjectUpdate, models.NotificationTaskCompleted, models.NotificationAssetApproved:
		return prefs.NotifyProjectActivity
	default:
		return true
	}
}

// List returns the caller's newest notifications and the unread count.
func (s *NotificationService) List(ctx context.Context, sess auth.Session, unreadOnly bool, limit int) (*dto.NotificationListResponse, error) {
	repos := s.repos.WithContext(ctx)

	notifications, err := repos.Notifications.List(sess.UserID, unreadOnly, utils.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := repos.Notifications.CountUnread(sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	return &dto.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkRead marks one of the caller's notifications read.
func (s *NotificationService) MarkRead(ctx context.Context, sess auth.Session, id string) (*models.Notification, error) {
	repos := s.repos.WithContext(ctx)

	notification, err := s.owned(repos, sess, id)
	if err != nil {
		return nil, err
	}
	if err := repos.Notifications.MarkRead(notification.ID); err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}

	notification.IsRead = true
	return notification, nil
}

// MarkAllRead marks every unread notification of the caller read and
// returns how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, sess auth.Session) (int64, error) {
	count, err := s.repos.WithContext(ctx).Notifications.MarkAllRead(sess.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to update notifications: %w", err)
	}
	return count, nil
}

// Delete removes one of the caller's notifications.
func (s *NotificationService) Delete(ctx context.Context, sess auth.Session, id string) error {
	repos := s.repos.WithContext(ctx)

	notification, err := s.owned(repos, sess, id)
	if err != nil {
		return err
	}
	if err := repos.Notifications.Delete(notification.ID); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// owned answers ErrNotificationMissing for both absent notifications and
// those belonging to someone else.
func (s *NotificationService) owned(repos *repository.Repositories, sess auth.Session, id string) (*models.Notification, error) {
	notification, err := repos.Notifications.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrNotificationMissing, "find notification")
	}
	if err := policy.OwnsNotification(sess, notification); err != nil {
		return nil, ErrNotificationMissing
	}
	return notification, nil
}
