package repository

import (
	"github.com/yukikurage/brand-studio-api/internal/models"
	"gorm.io/gorm"
)

// GormPaletteRepository is a GORM implementation of PaletteRepository
type GormPaletteRepository struct {
	db *gorm.DB
}

// NewPaletteRepository creates a new PaletteRepository
func NewPaletteRepository(db *gorm.DB) PaletteRepository {
	return &GormPaletteRepository{db: db}
}

// Create creates a new palette
func (r *GormPaletteRepository) Create(palette *models.ColorPalette) error {
	return r.db.Create(palette).Error
}

// FindByID finds a palette by ID
func (r *GormPaletteRepository) FindByID(id string) (*models.ColorPalette, error) {
	var palette models.ColorPalette
	if err := r.db.Where("id = ?", id).First(&palette).Error; err != nil {
		return nil, err
	}
	return &palette, nil
}

// ListByProject lists a project's palettes, newest first
func (r *GormPaletteRepository) ListByProject(projectID string) ([]models.ColorPalette, error) {
	palettes := []models.ColorPalette{}
	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&palettes).Error
	return palettes, err
}

// Approve sets isApproved once
func (r *GormPaletteRepository) Approve(id string) (bool, error) {
	return approve(r.db, &models.ColorPalette{}, id)
}

// GormTypographyRepository is a GORM implementation of TypographyRepository
type GormTypographyRepository struct {
	db *gorm.DB
}

// NewTypographyRepository creates a new TypographyRepository
func NewTypographyRepository(db *gorm.DB) TypographyRepository {
	return &GormTypographyRepository{db: db}
}

// Create creates a new typography set
func (r *GormTypographyRepository) Create(typography *models.Typography) error {
	return r.db.Create(typography).Error
}

// FindByID finds a typography set by ID
func (r *GormTypographyRepository) FindByID(id string) (*models.Typography, error) {
	var typography models.Typography
	if err := r.db.Where("id = ?", id).First(&typography).Error; err != nil {
		return nil, err
	}
	return &typography, nil
}

// ListByProject lists a project's typography sets, newest first
func (r *GormTypographyRepository) ListByProject(projectID string) ([]models.Typography, error) {
	sets := []models.Typography{}
	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&sets).Error
	return sets, err
}

// Update saves a typography set
func (r *GormTypographyRepository) Update(typography *models.Typography) error {
	return r.db.Save(typography).Error
}

// Approve sets isApproved once
func (r *GormTypographyRepository) Approve(id string) (bool, error) {
	return approve(r.db, &models.Typography{}, id)
}

// Delete removes a typography set
func (r *GormTypographyRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Typography{}).Error
}

// GormCopySnippetRepository is a GORM implementation of CopySnippetRepository
type GormCopySnippetRepository struct {
	db *gorm.DB
}

// NewCopySnippetRepository creates a new CopySnippetRepository
func NewCopySnippetRepository(db *gorm.DB) CopySnippetRepository {
	return &GormCopySnippetRepository{db: db}
}

// Create inserts one or more snippets
func (r *GormCopySnippetRepository) Create(snippets ...*models.CopySnippet) error {
	if len(snippets) == 0 {
		return nil
	}
	return r.db.Create(snippets).Error
}

// FindInProject finds a snippet that belongs to projectID
func (r *GormCopySnippetRepository) FindInProject(projectID, id string) (*models.CopySnippet, error) {
	var snippet models.CopySnippet
	if err := r.db.Where("id = ? AND project_id = ?", id, projectID).First(&snippet).Error; err != nil {
		return nil, err
	}
	return &snippet, nil
}

// ListByProject lists a project's snippets, newest first
func (r *GormCopySnippetRepository) ListByProject(projectID string, filter CopyFilter) ([]models.CopySnippet, error) {
	query := r.db.Where("project_id = ?", projectID)
	if filter.Purpose != nil {
		query = query.Where("purpose = ?", *filter.Purpose)
	}
	if filter.FavoritesOnly {
		query = query.Where("is_favorite = ?", true)
	}

	snippets := []models.CopySnippet{}
	err := query.Order("created_at DESC").Find(&snippets).Error
	return snippets, err
}

// Update saves a snippet
func (r *GormCopySnippetRepository) Update(snippet *models.CopySnippet) error {
	return r.db.Save(snippet).Error
}

// Approve sets isApproved once
func (r *GormCopySnippetRepository) Approve(id string) (bool, error) {
	return approve(r.db, &models.CopySnippet{}, id)
}

// SetFavorite sets or clears the favorite flag
func (r *GormCopySnippetRepository) SetFavorite(id string, favorite bool) error {
	return r.db.Model(&models.CopySnippet{}).Where("id = ?", id).Update("is_favorite", favorite).Error
}

// Delete removes a snippet
func (r *GormCopySnippetRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.CopySnippet{}).Error
}

// approve flips is_approved only while it is still false, so concurrent
// callers agree on which of them performed the transition.
func approve(db *gorm.DB, model interface{}, id string) (bool, error) {
	result := db.Model(model).
		Where("id = ? AND is_approved = ?", id, false).
		Update("is_approved", true)
	return result.RowsAffected > 0, result.Error
}
