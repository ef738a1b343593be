package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/policy"
	"github.com/yukikurage/brand-studio-api/internal/repository"
)

// AssetService handles color palettes and typography.
type AssetService struct {
	repos    *repository.Repositories
	activity *ActivityService
	notifier *NotificationService
}

// NewAssetService creates a new AssetService
func NewAssetService(repos *repository.Repositories, activitySvc *ActivityService, notifier *NotificationService) *AssetService {
	return &AssetService{repos: repos, activity: activitySvc, notifier: notifier}
}

// PaletteInput represents input for creating a palette
type PaletteInput struct {
	Name            string
	PrimaryColor    *string
	SecondaryColor  *string
	AccentColor     *string
	NeutralColor    *string
	BackgroundColor *string
	TextColor       *string
}

// ListPalettes lists a project's palettes
func (s *AssetService) ListPalettes(ctx context.Context, project *models.Project) ([]models.ColorPalette, error) {
	palettes, err := s.repos.WithContext(ctx).Palettes.ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list palettes: %w", err)
	}
	return palettes, nil
}

// CreatePalette adds a palette to project
func (s *AssetService) CreatePalette(ctx context.Context, sess auth.Session, project *models.Project, input PaletteInput) (*models.ColorPalette, error) {
	palette := &models.ColorPalette{
		ProjectID:       project.ID,
		Name:            input.Name,
		PrimaryColor:    input.PrimaryColor,
		SecondaryColor:  input.SecondaryColor,
		AccentColor:     input.AccentColor,
		NeutralColor:    input.NeutralColor,
		BackgroundColor: input.BackgroundColor,
		TextColor:       input.TextColor,
	}

	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		if err := tx.Palettes.Create(palette); err != nil {
			return fmt.Errorf("failed to create palette: %w", err)
		}
		_, err := s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetGenerated{EntityType: activity.EntityPalette, EntityID: palette.ID, Name: palette.Name},
			fmt.Sprintf("Created color palette %s", palette.Name))
		return err
	})
	if err != nil {
		return nil, err
	}
	return palette, nil
}

// ApprovePalette approves a palette by ID. Palettes on projects the caller
// cannot access are reported missing. Approving twice records nothing new.
func (s *AssetService) ApprovePalette(ctx context.Context, sess auth.Session, paletteID string) (*models.ColorPalette, error) {
	var palette *models.ColorPalette
	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		var err error
		palette, err = tx.Palettes.FindByID(paletteID)
		if err != nil {
			return notFound(err, ErrPaletteNotFound, "find palette")
		}

		project, err := tx.Projects.FindByID(palette.ProjectID)
		if err != nil {
			return notFound(err, ErrPaletteNotFound, "find project")
		}
		if policy.CanAccessProject(sess, project) != nil {
			return ErrPaletteNotFound
		}

		changed, err := tx.Palettes.Approve(palette.ID)
		if err != nil {
			return fmt.Errorf("failed to approve palette: %w", err)
		}
		palette.IsApproved = true
		if !changed {
			return nil
		}

		return s.recordApproval(tx, sess, project, activity.EntityPalette, palette.ID, palette.Name)
	})
	if err != nil {
		return nil, err
	}
	return palette, nil
}

// recordApproval writes the ASSET_APPROVED row and tells the project's
// lead strategist.
func (s *AssetService) recordApproval(tx *repository.Repositories, sess auth.Session, project *models.Project, entity activity.EntityType, id, name string) error {
	return recordApproval(tx, s.activity, s.notifier, sess, project, entity, id, name)
}

func recordApproval(tx *repository.Repositories, activitySvc *ActivityService, notifier *NotificationService, sess auth.Session, project *models.Project, entity activity.EntityType, id, name string) error {
	if _, err := activitySvc.Record(tx, &project.ID, sess.UserID,
		activity.AssetApproved{EntityType: entity, EntityID: id, Name: name},
		approvalDescription(entity, name)); err != nil {
		return err
	}
	return notifyApproval(tx, notifier, sess, project, entity, name)
}

func approvalDescription(entity activity.EntityType, name string) string {
	return fmt.Sprintf("Approved %s %s", strings.ToLower(entityLabel(entity)), name)
}

func notifyApproval(tx *repository.Repositories, notifier *NotificationService, sess auth.Session, project *models.Project, entity activity.EntityType, name string) error {
	_, err := notifier.Notify(tx, NotifyInput{
		RecipientID:   deref(project.LeadStrategistID),
		Type:          models.NotificationAssetApproved,
		Title:         fmt.Sprintf("%s approved", entityLabel(entity)),
		Message:       fmt.Sprintf("%s approved %s on %s", sess.FullName, name, project.ProjectName),
		Link:          fmt.Sprintf("/projects/%s", project.ID),
		TriggeredByID: sess.UserID,
	})
	return err
}

// TypographyInput represents input for creating typography
type TypographyInput struct {
	Name        string
	HeadingFont string
	BodyFont    string
	AccentFont  string
}

// TypographyPatch holds the typography fields to change
type TypographyPatch struct {
	Name        *string
	HeadingFont *string
	BodyFont    *string
	AccentFont  *string
}

// ListTypography lists a project's typography sets
func (s *AssetService) ListTypography(ctx context.Context, project *models.Project) ([]models.Typography, error) {
	sets, err := s.repos.WithContext(ctx).Typography.ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list typography: %w", err)
	}
	return sets, nil
}

// CreateTypography adds a typography set to project
func (s *AssetService) CreateTypography(ctx context.Context, sess auth.Session, project *models.Project, input TypographyInput) (*models.Typography, error) {
	typography := &models.Typography{
		ProjectID:   project.ID,
		Name:        input.Name,
		HeadingFont: input.HeadingFont,
		BodyFont:    input.BodyFont,
		AccentFont:  input.AccentFont,
	}

	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		if err := tx.Typography.Create(typography); err != nil {
			return fmt.Errorf("failed to create typography: %w", err)
		}
		_, err := s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetGenerated{EntityType: activity.EntityTypography, EntityID: typography.ID, Name: typography.Name},
			fmt.Sprintf("Created typography %s", typography.Name))
		return err
	})
	if err != nil {
		return nil, err
	}
	return typography, nil
}

// findTypography loads a typography set and checks it belongs to project.
// A set from another project is a mismatch, not a missing row.
func findTypography(tx *repository.Repositories, project *models.Project, id string) (*models.Typography, error) {
	typography, err := tx.Typography.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrTypographyNotFound, "find typography")
	}
	if typography.ProjectID != project.ID {
		return nil, ErrTypographyMismatch
	}
	return typography, nil
}

// UpdateTypography changes the fields present in patch
func (s *AssetService) UpdateTypography(ctx context.Context, sess auth.Session, project *models.Project, id string, patch TypographyPatch) (*models.Typography, error) {
	var typography *models.Typography
	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		var err error
		typography, err = findTypography(tx, project, id)
		if err != nil {
			return err
		}

		var fields []string
		apply(&typography.Name, patch.Name, "name", &fields)
		apply(&typography.HeadingFont, patch.HeadingFont, "headingFont", &fields)
		apply(&typography.BodyFont, patch.BodyFont, "bodyFont", &fields)
		apply(&typography.AccentFont, patch.AccentFont, "accentFont", &fields)
		if len(fields) == 0 {
			return nil
		}

		if err := tx.Typography.Update(typography); err != nil {
			return fmt.Errorf("failed to update typography: %w", err)
		}
		_, err = s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetUpdated{EntityType: activity.EntityTypography, EntityID: typography.ID, Fields: fields},
			fmt.Sprintf("Updated typography %s", typography.Name))
		return err
	})
	if err != nil {
		return nil, err
	}
	return typography, nil
}

// ApproveTypography approves a typography set once
func (s *AssetService) ApproveTypography(ctx context.Context, sess auth.Session, project *models.Project, id string) (*models.Typography, error) {
	var typography *models.Typography
	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		var err error
		typography, err = findTypography(tx, project, id)
		if err != nil {
			return err
		}

		changed, err := tx.Typography.Approve(typography.ID)
		if err != nil {
			return fmt.Errorf("failed to approve typography: %w", err)
		}
		typography.IsApproved = true
		if !changed {
			return nil
		}
		return s.recordApproval(tx, sess, project, activity.EntityTypography, typography.ID, typography.Name)
	})
	if err != nil {
		return nil, err
	}
	return typography, nil
}

// DeleteTypography removes a typography set
func (s *AssetService) DeleteTypography(ctx context.Context, sess auth.Session, project *models.Project, id string) error {
	return s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		typography, err := findTypography(tx, project, id)
		if err != nil {
			return err
		}

		if err := tx.Typography.Delete(typography.ID); err != nil {
			return fmt.Errorf("failed to delete typography: %w", err)
		}
		_, err = s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetDeleted{EntityType: activity.EntityTypography, EntityID: typography.ID, Name: typography.Name},
			fmt.Sprintf("Deleted typography %s", typography.Name))
		return err
	})
}

// apply copies a patched value over dst and notes the field name.
func apply[T comparable](dst *T, v *T, name string, fields *[]string) {
	if v == nil || *v == *dst {
		return
	}
	*dst = *v
	*fields = append(*fields, name)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func entityLabel(e activity.EntityType) string {
	switch e {
	case activity.EntityPalette:
		return "Color palette"
	case activity.EntityTypography:
		return "Typography"
	case activity.EntityCopySnippet:
		return "Copy snippet"
	case activity.EntityLogo:
		return "Logo"
	case activity.EntityFile:
		return "File"
	case activity.EntityContentPost:
		return "Content post"
	case activity.EntityLaunchTask:
		return "Launch task"
	case activity.EntityPage:
		return "Page"
	case activity.EntityPageSection:
		return "Page section"
	default:
		return string(e)
	}
}
