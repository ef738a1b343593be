package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/repository"
)

// PageService handles website pages and their sections.
type PageService struct {
	repos    *repository.Repositories
	activity *ActivityService
}

// NewPageService creates a new PageService
func NewPageService(repos *repository.Repositories, activitySvc *ActivityService) *PageService {
	return &PageService{repos: repos, activity: activitySvc}
}

// ListPages lists a project's pages with their sections
func (s *PageService) ListPages(ctx context.Context, project *models.Project) ([]models.WebsitePage, error) {
	pages, err := s.repos.WithContext(ctx).Pages.ListPages(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// PageInput represents input for creating a page
type PageInput struct {
	PageName string
	Slug     string
}

// CreatePage adds a page to project
func (s *PageService) CreatePage(ctx context.Context, sess auth.Session, project *models.Project, input PageInput) (*models.WebsitePage, error) {
	page := &models.WebsitePage{
		ProjectID: project.ID,
		PageName:  input.PageName,
		Slug:      input.Slug,
	}

	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		if err := tx.Pages.CreatePage(page); err != nil {
			return fmt.Errorf("failed to create page: %w", err)
		}
		_, err := s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetGenerated{EntityType: activity.EntityPage, EntityID: page.ID, Name: page.PageName},
			fmt.Sprintf("Added page %s", page.PageName))
		return err
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// ListSections lists a page's sections in order
func (s *PageService) ListSections(ctx context.Context, project *models.Project, pageID string) ([]models.PageSection, error) {
	repos := s.repos.WithContext(ctx)

	page, err := repos.Pages.FindPageInProject(project.ID, pageID)
	if err != nil {
		return nil, notFound(err, ErrPageNotFound, "find page")
	}

	sections, err := repos.Pages.ListSections(page.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

// SectionInput represents input for creating a section
type SectionInput struct {
	SectionName string
	SectionType models.SectionType
	OrderIndex  int
	Content     string
	IsVisible   *bool
}

// CreateSection adds a section at an explicit position on a page
func (s *PageService) CreateSection(ctx context.Context, sess auth.Session, project *models.Project, pageID string, input SectionInput) (*models.PageSection, error) {
	section := &models.PageSection{
		ProjectID:   project.ID,
		SectionName: input.SectionName,
		SectionType: input.SectionType,
		OrderIndex:  input.OrderIndex,
		Content:     input.Content,
		IsVisible:   true,
	}
	if input.IsVisible != nil {
		section.IsVisible = *input.IsVisible
	}

	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		page, err := tx.Pages.FindPageInProject(project.ID, pageID)
		if err != nil {
			return notFound(err, ErrPageNotFound, "find page")
		}
		section.PageID = page.ID

		if err := tx.Pages.CreateSection(section); err != nil {
			return fmt.Errorf("failed to create section: %w", err)
		}
		_, err = s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetGenerated{EntityType: activity.EntityPageSection, EntityID: section.ID, Name: section.SectionName},
			fmt.Sprintf("Added %s section %s to %s", section.SectionType, section.SectionName, page.PageName))
		return err
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}
