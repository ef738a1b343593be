package repository

import (
	"context"
	"time"

	"github.com/yukikurage/brand-studio-api/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email, case-insensitively
	FindByEmail(email string) (*models.User, error)

	// FindByResetTokenHash finds the user holding an unexpired reset token
	FindByResetTokenHash(hash string, now time.Time) (*models.User, error)

	// UpdateColumns writes only the given columns
	UpdateColumns(id string, columns map[string]interface{}) error

	// CountActiveAdmins counts active ADMIN accounts
	CountActiveAdmins() (int64, error)

	// Deactivate flips isActive off; it reports false when the user was already inactive
	Deactivate(id string, at time.Time) (bool, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id string) (*models.Project, error)
	List(filter ProjectFilter) ([]models.Project, error)
}

// ProjectFilter narrows project listings
type ProjectFilter struct {
	CreatorEmail *string
}

// PaletteRepository defines the interface for color palette data access
type PaletteRepository interface {
	Create(palette *models.ColorPalette) error
	FindByID(id string) (*models.ColorPalette, error)
	ListByProject(projectID string) ([]models.ColorPalette, error)

	// Approve sets isApproved; it reports false when the palette was already approved
	Approve(id string) (bool, error)
}

// TypographyRepository defines the interface for typography data access
type TypographyRepository interface {
	Create(typography *models.Typography) error
	FindByID(id string) (*models.Typography, error)
	ListByProject(projectID string) ([]models.Typography, error)
	Update(typography *models.Typography) error
	Approve(id string) (bool, error)
	Delete(id string) error
}

// CopySnippetRepository defines the interface for copy snippet data access
type CopySnippetRepository interface {
	Create(snippets ...*models.CopySnippet) error
	FindInProject(projectID, id string) (*models.CopySnippet, error)
	ListByProject(projectID string, filter CopyFilter) ([]models.CopySnippet, error)
	Update(snippet *models.CopySnippet) error
	Approve(id string) (bool, error)
	SetFavorite(id string, favorite bool) error
	Delete(id string) error
}

// CopyFilter narrows copy snippet listings
type CopyFilter struct {
	Purpose       *models.CopyPurpose
	FavoritesOnly bool
}

// ContentPostRepository defines the interface for content post data access
type ContentPostRepository interface {
	Create(post *models.ContentPost) error
	FindInProject(projectID, id string) (*models.ContentPost, error)
	ListByProject(projectID string, status *models.PostStatus) ([]models.ContentPost, error)

	// Publish moves the post to PUBLISHED; it reports false when it already was
	Publish(id string, at time.Time) (bool, error)
}

// LaunchTaskRepository defines the interface for launch task data access
type LaunchTaskRepository interface {
	Create(task *models.LaunchTask) error
	FindInProject(projectID, id string) (*models.LaunchTask, error)
	ListByProject(projectID string, status *models.LaunchTaskStatus) ([]models.LaunchTask, error)
	Update(task *models.LaunchTask) error
}

// PageRepository defines the interface for website page and section data access
type PageRepository interface {
	CreatePage(page *models.WebsitePage) error
	FindPageInProject(projectID, pageID string) (*models.WebsitePage, error)
	ListPages(projectID string) ([]models.WebsitePage, error)
	CreateSection(section *models.PageSection) error
	ListSections(pageID string) ([]models.PageSection, error)
}

// FileRepository defines the interface for uploaded file data access
type FileRepository interface {
	Create(file *models.File) error
	FindInProject(projectID, id string) (*models.File, error)
	ListByProject(projectID string, folder string) ([]models.File, error)

	// SoftDelete flags the file deleted; it reports false when it already was
	SoftDelete(id string, at time.Time) (bool, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id string) (*models.Notification, error)
	List(userID string, unreadOnly bool, limit int) ([]models.Notification, error)
	CountUnread(userID string) (int64, error)
	MarkRead(id string) error
	MarkAllRead(userID string) (int64, error)
	Delete(id string) error
}

// ActivityRepository defines the interface for the append-only activity log
type ActivityRepository interface {
	Create(entry *models.ActivityLog) error
	CreateOnce(entry *models.ActivityLog) (bool, error)
	List(filter ActivityFilter) ([]models.ActivityLog, error)
	Count(filter ActivityFilter) (int64, error)
}

// ActivityFilter narrows activity listings. A non-nil empty ProjectIDs
// matches nothing; nil means no project restriction.
type ActivityFilter struct {
	ProjectIDs []string
	ProjectID  *string
	EntityType *string
	ActionType *string
	EntityID   *string
	Limit      int
}

// Repositories bundles every repository over one database handle so a
// service can run several writes in one transaction.
type Repositories struct {
	db *gorm.DB

	Users         UserRepository
	Projects      ProjectRepository
	Palettes      PaletteRepository
	Typography    TypographyRepository
	Copy          CopySnippetRepository
	Posts         ContentPostRepository
	LaunchTasks   LaunchTaskRepository
	Pages         PageRepository
	Files         FileRepository
	Notifications NotificationRepository
	Activities    ActivityRepository
}

// New creates the repository bundle over db
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:            db,
		Users:         NewUserRepository(db),
		Projects:      NewProjectRepository(db),
		Palettes:      NewPaletteRepository(db),
		Typography:    NewTypographyRepository(db),
		Copy:          NewCopySnippetRepository(db),
		Posts:         NewContentPostRepository(db),
		LaunchTasks:   NewLaunchTaskRepository(db),
		Pages:         NewPageRepository(db),
		Files:         NewFileRepository(db),
		Notifications: NewNotificationRepository(db),
		Activities:    NewActivityRepository(db),
	}
}

// WithContext scopes every repository to ctx
func (r *Repositories) WithContext(ctx context.Context) *Repositories {
	return New(r.db.WithContext(ctx))
}

// Transaction runs fn against repositories bound to one transaction
func (r *Repositories) Transaction(fn func(tx *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
