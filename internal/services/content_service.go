package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/repository"
)

// ContentService handles content posts.
type ContentService struct {
	repos    *repository.Repositories
	activity *ActivityService
}

// NewContentService creates a new ContentService
func NewContentService(repos *repository.Repositories, activitySvc *ActivityService) *ContentService {
	return &ContentService{repos: repos, activity: activitySvc}
}

// PostInput represents input for drafting a post
type PostInput struct {
	PostTitle     string
	Platform      string
	Content       string
	Status        models.PostStatus
	ScheduledDate *time.Time
}

// List lists a project's posts
func (s *ContentService) List(ctx context.Context, project *models.Project, status *models.PostStatus) ([]models.ContentPost, error) {
	posts, err := s.repos.WithContext(ctx).Posts.ListByProject(project.ID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Create drafts a post. Posts only reach PUBLISHED through Publish.
func (s *ContentService) Create(ctx context.Context, sess auth.Session, project *models.Project, input PostInput) (*models.ContentPost, error) {
	status := input.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	post := &models.ContentPost{
		ProjectID:     project.ID,
		PostTitle:     input.PostTitle,
		Platform:      input.Platform,
		Content:       input.Content,
		Status:        status,
		ScheduledDate: input.ScheduledDate,
	}

	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		if err := tx.Posts.Create(post); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		_, err := s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetGenerated{EntityType: activity.EntityContentPost, EntityID: post.ID, Name: post.PostTitle},
			fmt.Sprintf("Drafted %s post %s", post.Platform, post.PostTitle))
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Publish moves a post to PUBLISHED and stamps publishedDate. Publishing
// an already published post returns it unchanged.
func (s *ContentService) Publish(ctx context.Context, sess auth.Session, project *models.Project, postID string) (*models.ContentPost, error) {
	var post *models.ContentPost
	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		var err error
		post, err = tx.Posts.FindInProject(project.ID, postID)
		if err != nil {
			return notFound(err, ErrPostNotFound, "find post")
		}

		now := time.Now().UTC()
		changed, err := tx.Posts.Publish(post.ID, now)
		if err != nil {
			return fmt.Errorf("failed to publish post: %w", err)
		}
		if !changed {
			return nil
		}

		post.Status = models.PostStatusPublished
		post.PublishedDate = &now
		_, err = s.activity.Record(tx, &project.ID, sess.UserID,
			activity.ContentPublished{PostID: post.ID, Platform: post.Platform, PublishedAt: now},
			fmt.Sprintf("Published %s post %s", post.Platform, post.PostTitle))
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}
