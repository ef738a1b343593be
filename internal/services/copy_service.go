package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/constants"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/repository"
)

// CopyService handles copy snippets, including AI drafts.
type CopyService struct {
	repos     *repository.Repositories
	activity  *ActivityService
	notifier  *NotificationService
	generator CopyGenerator
}

// NewCopyService creates a new CopyService. generator may be nil.
func NewCopyService(repos *repository.Repositories, activitySvc *ActivityService, notifier *NotificationService, generator CopyGenerator) *CopyService {
	return &CopyService{
		repos:     repos,
		activity:  activitySvc,
		notifier:  notifier,
		generator: generator,
	}
}

// List lists a project's snippets
func (s *CopyService) List(ctx context.Context, project *models.Project, filter repository.CopyFilter) ([]models.CopySnippet, error) {
	snippets, err := s.repos.WithContext(ctx).Copy.ListByProject(project.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list copy: %w", err)
	}
	return snippets, nil
}

// CopyInput represents input for writing a snippet by hand
type CopyInput struct {
	Purpose models.CopyPurpose
	Content string
}

// Create adds a snippet
func (s *CopyService) Create(ctx context.Context, sess auth.Session, project *models.Project, input CopyInput) (*models.CopySnippet, error) {
	snippet := &models.CopySnippet{
		ProjectID: project.ID,
		Purpose:   input.Purpose,
		Content:   input.Content,
	}

	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		if err := tx.Copy.Create(snippet); err != nil {
			return fmt.Errorf("failed to create copy: %w", err)
		}
		_, err := s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetGenerated{EntityType: activity.EntityCopySnippet, EntityID: snippet.ID, Name: string(snippet.Purpose)},
			fmt.Sprintf("Wrote %s copy", snippet.Purpose))
		return err
	})
	if err != nil {
		return nil, err
	}
	return snippet, nil
}

// GenerateCopyInput represents a request for AI drafts
type GenerateCopyInput struct {
	Purpose models.CopyPurpose
	Brief   string
	Tone    string
	Count   int
}

// Generate drafts snippets with the copy generator and stores them all.
func (s *CopyService) Generate(ctx context.Context, sess auth.Session, project *models.Project, input GenerateCopyInput) ([]models.CopySnippet, error) {
	if s.generator == nil {
		return nil, ErrAINotConfigured
	}

	count := input.Count
	if count < 1 {
		count = 3
	}
	if count > constants.MaxAIGeneratedCopy {
		count = constants.MaxAIGeneratedCopy
	}

	options, err := s.generator.GenerateCopy(ctx, CopyBrief{
		ProjectName: project.ProjectName,
		Description: project.Description,
		Purpose:     input.Purpose,
		Brief:       input.Brief,
		Tone:        input.Tone,
		Count:       count,
	})
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, ErrAINoCopyGenerated
	}
	if len(options) > count {
		options = options[:count]
	}

	snippets := make([]*models.CopySnippet, len(options))
	for i, content := range options {
		snippets[i] = &models.CopySnippet{
			ProjectID: project.ID,
			Purpose:   input.Purpose,
			Content:   content,
		}
	}

	err = s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		if err := tx.Copy.Create(snippets...); err != nil {
			return fmt.Errorf("failed to store generated copy: %w", err)
		}
		_, err := s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetGenerated{
				EntityType: activity.EntityCopySnippet,
				EntityID:   snippets[0].ID,
				Name:       string(input.Purpose),
				Count:      len(snippets),
				AIAssisted: true,
			},
			fmt.Sprintf("Generated %d %s options", len(snippets), input.Purpose))
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.CopySnippet, len(snippets))
	for i, sn := range snippets {
		out[i] = *sn
	}
	return out, nil
}

// CopyPatch holds the snippet fields to change
type CopyPatch struct {
	Purpose *models.CopyPurpose
	Content *string
}

// Update changes the fields present in patch
func (s *CopyService) Update(ctx context.Context, sess auth.Session, project *models.Project, id string, patch CopyPatch) (*models.CopySnippet, error) {
	var snippet *models.CopySnippet
	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		var err error
		snippet, err = tx.Copy.FindInProject(project.ID, id)
		if err != nil {
			return notFound(err, ErrSnippetNotFound, "find copy")
		}

		var fields []string
		apply(&snippet.Purpose, patch.Purpose, "purpose", &fields)
		apply(&snippet.Content, patch.Content, "content", &fields)
		if len(fields) == 0 {
			return nil
		}

		if err := tx.Copy.Update(snippet); err != nil {
			return fmt.Errorf("failed to update copy: %w", err)
		}
		_, err = s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetUpdated{EntityType: activity.EntityCopySnippet, EntityID: snippet.ID, Fields: fields},
			fmt.Sprintf("Edited %s copy", snippet.Purpose))
		return err
	})
	if err != nil {
		return nil, err
	}
	return snippet, nil
}

// Approve approves a snippet once
func (s *CopyService) Approve(ctx context.Context, sess auth.Session, project *models.Project, id string) (*models.CopySnippet, error) {
	var snippet *models.CopySnippet
	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		var err error
		snippet, err = tx.Copy.FindInProject(project.ID, id)
		if err != nil {
			return notFound(err, ErrSnippetNotFound, "find copy")
		}

		changed, err := tx.Copy.Approve(snippet.ID)
		if err != nil {
			return fmt.Errorf("failed to approve copy: %w", err)
		}
		snippet.IsApproved = true
		if !changed {
			return nil
		}
		return recordApproval(tx, s.activity, s.notifier, sess, project, activity.EntityCopySnippet, snippet.ID, string(snippet.Purpose))
	})
	if err != nil {
		return nil, err
	}
	return snippet, nil
}

// SetFavorite marks or unmarks a snippet as a favorite. Unlike approval
// this flag goes both ways and is not recorded.
func (s *CopyService) SetFavorite(ctx context.Context, project *models.Project, id string, favorite bool) (*models.CopySnippet, error) {
	repos := s.repos.WithContext(ctx)

	snippet, err := repos.Copy.FindInProject(project.ID, id)
	if err != nil {
		return nil, notFound(err, ErrSnippetNotFound, "find copy")
	}
	if err := repos.Copy.SetFavorite(snippet.ID, favorite); err != nil {
		return nil, fmt.Errorf("failed to update copy: %w", err)
	}

	snippet.IsFavorite = favorite
	return snippet, nil
}

// Delete removes a snippet
func (s *CopyService) Delete(ctx context.Context, sess auth.Session, project *models.Project, id string) error {
	return s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		snippet, err := tx.Copy.FindInProject(project.ID, id)
		if err != nil {
			return notFound(err, ErrSnippetNotFound, "find copy")
		}

		if err := tx.Copy.Delete(snippet.ID); err != nil {
			return fmt.Errorf("failed to delete copy: %w", err)
		}
		_, err = s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetDeleted{EntityType: activity.EntityCopySnippet, EntityID: snippet.ID, Name: string(snippet.Purpose)},
			fmt.Sprintf("Deleted %s copy", snippet.Purpose))
		return err
	})
}
