package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/policy"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectService handles project business logic
type ProjectService struct {
	repos    *repository.Repositories
	activity *ActivityService
}

// NewProjectService creates a new ProjectService
func NewProjectService(repos *repository.Repositories, activitySvc *ActivityService) *ProjectService {
	return &ProjectService{repos: repos, activity: activitySvc}
}

// List returns the projects visible to the caller.
func (s *ProjectService) List(ctx context.Context, sess auth.Session) ([]models.Project, error) {
	filter := repository.ProjectFilter{}
	if sess.IsClient() {
		email := sess.Email
		filter.CreatorEmail = &email
	}

	projects, err := s.repos.WithContext(ctx).Projects.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a project the caller may access.
func (s *ProjectService) Get(ctx context.Context, sess auth.Session, id string) (*models.Project, error) {
	project, err := s.repos.WithContext(ctx).Projects.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "find project")
	}
	if err := policy.CanAccessProject(sess, project); err != nil {
		return nil, err
	}
	return project, nil
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	ProjectName      string
	Description      string
	CreatorEmail     string
	LeadStrategistID *string
}

// Create opens a project for a client. Only team members create projects.
func (s *ProjectService) Create(ctx context.Context, sess auth.Session, input CreateProjectInput) (*models.Project, error) {
	if err := policy.RequireTeam(sess); err != nil {
		return nil, err
	}

	project := &models.Project{
		ProjectName:      input.ProjectName,
		Description:      input.Description,
		CreatorEmail:     input.CreatorEmail,
		LeadStrategistID: input.LeadStrategistID,
	}

	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		if input.LeadStrategistID != nil {
			lead, err := tx.Users.FindByID(*input.LeadStrategistID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidStrategist
			} else if err != nil {
				return fmt.Errorf("failed to find strategist: %w", err)
			}
			if !lead.IsActive || lead.Role == models.RoleClient {
				return ErrInvalidStrategist
			}
		}

		if err := tx.Projects.Create(project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		_, err := s.activity.Record(tx, &project.ID, sess.UserID,
			activity.ProjectCreated{ProjectID: project.ID, ProjectName: project.ProjectName},
			fmt.Sprintf("%s created project %s", sess.FullName, project.ProjectName))
		return err
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}
