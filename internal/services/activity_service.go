package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"github.com/yukikurage/brand-studio-api/internal/utils"
)

// ActivityService appends to and reads the audit trail.
type ActivityService struct {
	repos *repository.Repositories
}

// NewActivityService creates a new ActivityService
func NewActivityService(repos *repository.Repositories) *ActivityService {
	return &ActivityService{repos: repos}
}

// Record appends one activity row through tx, which is normally the
// transaction that performed the mutation being recorded.
func (s *ActivityService) Record(tx *repository.Repositories, projectID *string, userID string, payload activity.Payload, description string) (*models.ActivityLog, error) {
	entry, err := newEntry(projectID, userID, payload, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Activities.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}
	return entry, nil
}

// RecordOnce appends a row under the fixed id unless one is already there.
// The bool reports whether this call wrote it.
func (s *ActivityService) RecordOnce(tx *repository.Repositories, id string, projectID *string, userID string, payload activity.Payload, description string) (*models.ActivityLog, bool, error) {
	entry, err := newEntry(projectID, userID, payload, description)
	if err != nil {
		return nil, false, err
	}
	entry.ID = id

	created, err := tx.Activities.CreateOnce(entry)
	if err != nil {
		return nil, false, fmt.Errorf("failed to record activity: %w", err)
	}
	return entry, created, nil
}

func newEntry(projectID *string, userID string, payload activity.Payload, description string) (*models.ActivityLog, error) {
	metadata, err := activity.Encode(payload)
	if err != nil {
		return nil, err
	}

	entityType, entityID := payload.Subject()
	entry := &models.ActivityLog{
		ProjectID:   projectID,
		UserID:      userID,
		ActionType:  string(payload.Action()),
		EntityType:  string(entityType),
		EntityID:    entityID,
		Description: description,
		Metadata:    metadata,
	}
	// A message is its own activity row.
	if entityType == activity.EntityMessage {
		entry.ID = entityID
	}
	return entry, nil
}

// ActivityQuery filters the activity feed.
type ActivityQuery struct {
	Limit      int
	ProjectID  *string
	EntityType *string
	ActionType *string
}

// List returns the newest activity visible to the caller. Clients only
// see activity on projects created under their email.
func (s *ActivityService) List(ctx context.Context, sess auth.Session, query ActivityQuery) ([]models.ActivityLog, error) {
	if query.ActionType != nil && !activity.ValidAction(activity.ActionType(*query.ActionType)) {
		return nil, fmt.Errorf("%w: unknown actionType %q", ErrInvalidFilter, *query.ActionType)
	}

	repos := s.repos.WithContext(ctx)
	filter := repository.ActivityFilter{
		ProjectID:  query.ProjectID,
		EntityType: query.EntityType,
		ActionType: query.ActionType,
		Limit:      utils.ClampLimit(query.Limit),
	}

	if sess.IsClient() {
		ids, err := clientProjectIDs(repos, sess)
		if err != nil {
			return nil, err
		}
		filter.ProjectIDs = ids
	}

	entries, err := repos.Activities.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}

func clientProjectIDs(repos *repository.Repositories, sess auth.Session) ([]string, error) {
	email := sess.Email
	projects, err := repos.Projects.List(repository.ProjectFilter{CreatorEmail: &email})
	if err != nil {
		return nil, fmt.Errorf("failed to list client projects: %w", err)
	}

	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return ids, nil
}
