package repository

import (
	"time"

	"github.com/yukikurage/brand-studio-api/internal/models"
	"gorm.io/gorm"
)

// GormContentPostRepository is a GORM implementation of ContentPostRepository
type GormContentPostRepository struct {
	db *gorm.DB
}

// NewContentPostRepository creates a new ContentPostRepository
func NewContentPostRepository(db *gorm.DB) ContentPostRepository {
	return &GormContentPostRepository{db: db}
}

// Create creates a new post
func (r *GormContentPostRepository) Create(post *models.ContentPost) error {
	return r.db.Create(post).Error
}

// FindInProject finds a post that belongs to projectID
func (r *GormContentPostRepository) FindInProject(projectID, id string) (*models.ContentPost, error) {
	var post models.ContentPost
	if err := r.db.Where("id = ? AND project_id = ?", id, projectID).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByProject lists a project's posts, newest first
func (r *GormContentPostRepository) ListByProject(projectID string, status *models.PostStatus) ([]models.ContentPost, error) {
	query := r.db.Where("project_id = ?", projectID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	posts := []models.ContentPost{}
	err := query.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// Publish moves the post to PUBLISHED
func (r *GormContentPostRepository) Publish(id string, at time.Time) (bool, error) {
	result := r.db.Model(&models.ContentPost{}).
		Where("id = ? AND status <> ?", id, models.PostStatusPublished).
		Updates(map[string]interface{}{
			"status":         models.PostStatusPublished,
			"published_date": at,
		})
	return result.RowsAffected > 0, result.Error
}

// GormLaunchTaskRepository is a GORM implementation of LaunchTaskRepository
type GormLaunchTaskRepository struct {
	db *gorm.DB
}

// NewLaunchTaskRepository creates a new LaunchTaskRepository
func NewLaunchTaskRepository(db *gorm.DB) LaunchTaskRepository {
	return &GormLaunchTaskRepository{db: db}
}

// Create creates a new launch task
func (r *GormLaunchTaskRepository) Create(task *models.LaunchTask) error {
	return r.db.Create(task).Error
}

// FindInProject finds a task that belongs to projectID
func (r *GormLaunchTaskRepository) FindInProject(projectID, id string) (*models.LaunchTask, error) {
	var task models.LaunchTask
	if err := r.db.Where("id = ? AND project_id = ?", id, projectID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject lists a project's tasks ordered by due date, undated last
func (r *GormLaunchTaskRepository) ListByProject(projectID string, status *models.LaunchTaskStatus) ([]models.LaunchTask, error) {
	query := r.db.Where("project_id = ?", projectID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	tasks := []models.LaunchTask{}
	err := query.
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
		Order("due_date ASC").
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// Update saves a launch task
func (r *GormLaunchTaskRepository) Update(task *models.LaunchTask) error {
	return r.db.Save(task).Error
}

// GormPageRepository is a GORM implementation of PageRepository
type GormPageRepository struct {
	db *gorm.DB
}

// NewPageRepository creates a new PageRepository
func NewPageRepository(db *gorm.DB) PageRepository {
	return &GormPageRepository{db: db}
}

// CreatePage creates a new website page
func (r *GormPageRepository) CreatePage(page *models.WebsitePage) error {
	return r.db.Create(page).Error
}

// FindPageInProject finds a page that belongs to projectID
func (r *GormPageRepository) FindPageInProject(projectID, pageID string) (*models.WebsitePage, error) {
	var page models.WebsitePage
	if err := r.db.Where("id = ? AND project_id = ?", pageID, projectID).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPages lists a project's pages with their sections in order
func (r *GormPageRepository) ListPages(projectID string) ([]models.WebsitePage, error) {
	pages := []models.WebsitePage{}
	err := r.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&pages).Error
	return pages, err
}

// CreateSection creates a new page section
func (r *GormPageRepository) CreateSection(section *models.PageSection) error {
	return r.db.Create(section).Error
}

// ListSections lists a page's sections in order
func (r *GormPageRepository) ListSections(pageID string) ([]models.PageSection, error) {
	sections := []models.PageSection{}
	err := r.db.Where("page_id = ?", pageID).Order("order_index ASC").Find(&sections).Error
	return sections, err
}
