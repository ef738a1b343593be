package repository

import (
	"time"

	"github.com/yukikurage/brand-studio-api/internal/models"
	"gorm.io/gorm"
)

// GormFileRepository is a GORM implementation of FileRepository
type GormFileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *gorm.DB) FileRepository {
	return &GormFileRepository{db: db}
}

// Create records an uploaded file
func (r *GormFileRepository) Create(file *models.File) error {
	return r.db.Create(file).Error
}

// FindInProject finds a live file that belongs to projectID
func (r *GormFileRepository) FindInProject(projectID, id string) (*models.File, error) {
	var file models.File
	if err := r.db.
		Where("id = ? AND project_id = ? AND is_deleted = ?", id, projectID, false).
		First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByProject lists a project's live files, optionally in one folder
func (r *GormFileRepository) ListByProject(projectID string, folder string) ([]models.File, error) {
	query := r.db.Where("project_id = ? AND is_deleted = ?", projectID, false)
	if folder != "" {
		query = query.Where("folder = ?", folder)
	}

	files := []models.File{}
	err := query.Order("created_at DESC").Find(&files).Error
	return files, err
}

// SoftDelete flags the file deleted
func (r *GormFileRepository) SoftDelete(id string, at time.Time) (bool, error) {
	result := r.db.Model(&models.File{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": at,
		})
	return result.RowsAffected > 0, result.Error
}
