package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/policy"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"github.com/yukikurage/brand-studio-api/internal/utils"
)

// MessageService handles project messages. Messages are stored as
// MESSAGE_SENT activity rows rather than in a table of their own.
type MessageService struct {
	repos    *repository.Repositories
	activity *ActivityService
	notifier *NotificationService
}

// NewMessageService creates a new MessageService
func NewMessageService(repos *repository.Repositories, activitySvc *ActivityService, notifier *NotificationService) *MessageService {
	return &MessageService{repos: repos, activity: activitySvc, notifier: notifier}
}

// Send posts a message on a project and notifies the lead strategist when
// someone else sent it.
func (s *MessageService) Send(ctx context.Context, sess auth.Session, projectID, message string) (*models.ActivityLog, error) {
	var entry *models.ActivityLog
	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		project, err := accessibleProject(tx, sess, projectID)
		if err != nil {
			return err
		}

		lead := deref(project.LeadStrategistID)
		payload := activity.MessageSent{MessageID: uuid.NewString(), Length: len([]rune(message))}
		if lead != sess.UserID {
			payload.RecipientID = lead
		}

		entry, err = s.activity.Record(tx, &project.ID, sess.UserID, payload, message)
		if err != nil {
			return err
		}

		_, err = s.notifier.Notify(tx, NotifyInput{
			RecipientID:   lead,
			Type:          models.NotificationNewMessage,
			Title:         fmt.Sprintf("New message on %s", project.ProjectName),
			Message:       fmt.Sprintf("%s: %s", sess.FullName, preview(message, 140)),
			Link:          fmt.Sprintf("/projects/%s/messages", project.ID),
			TriggeredByID: sess.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns a project's newest messages.
func (s *MessageService) List(ctx context.Context, sess auth.Session, projectID string, limit int) ([]models.ActivityLog, error) {
	repos := s.repos.WithContext(ctx)

	project, err := accessibleProject(repos, sess, projectID)
	if err != nil {
		return nil, err
	}

	action := string(activity.ActionMessageSent)
	messages, err := repos.Activities.List(repository.ActivityFilter{
		ProjectID:  &project.ID,
		ActionType: &action,
		Limit:      utils.ClampLimit(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func accessibleProject(repos *repository.Repositories, sess auth.Session, projectID string) (*models.Project, error) {
	project, err := repos.Projects.FindByID(projectID)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "find project")
	}
	if err := policy.CanAccessProject(sess, project); err != nil {
		return nil, err
	}
	return project, nil
}

// preview keeps the first n runes of s and marks the cut with an ellipsis.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
