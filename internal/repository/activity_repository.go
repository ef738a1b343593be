package repository

import (
	"github.com/yukikurage/brand-studio-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends an activity row
func (r *GormActivityRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// CreateOnce inserts entry unless a row with its ID already exists and
// reports whether it was inserted.
func (r *GormActivityRepository) CreateOnce(entry *models.ActivityLog) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// List lists activity matching filter, newest first
func (r *GormActivityRepository) List(filter ActivityFilter) ([]models.ActivityLog, error) {
	entries := []models.ActivityLog{}
	query := r.scope(filter).Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}

// Count counts activity matching filter, ignoring Limit
func (r *GormActivityRepository) Count(filter ActivityFilter) (int64, error) {
	var count int64
	err := r.scope(filter).Count(&count).Error
	return count, err
}

func (r *GormActivityRepository) scope(filter ActivityFilter) *gorm.DB {
	query := r.db.Model(&models.ActivityLog{})
	if filter.ProjectIDs != nil {
		if len(filter.ProjectIDs) == 0 {
			return query.Where("1 = 0")
		}
		query = query.Where("project_id IN ?", filter.ProjectIDs)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.ActionType != nil {
		query = query.Where("action_type = ?", *filter.ActionType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	return query
}
