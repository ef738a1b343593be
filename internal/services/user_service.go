package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/constants"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/policy"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"github.com/yukikurage/brand-studio-api/internal/storage"
	"go.uber.org/zap"
)

var profileImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UserService handles account settings and deactivation.
type UserService struct {
	repos    *repository.Repositories
	activity *ActivityService
	store    storage.Store
	log      *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(repos *repository.Repositories, activitySvc *ActivityService, store storage.Store, log *zap.Logger) *UserService {
	return &UserService{
		repos:    repos,
		activity: activitySvc,
		store:    store,
		log:      log,
	}
}

// Deactivate deactivates the caller's own account.
func (s *UserService) Deactivate(ctx context.Context, sess auth.Session) error {
	return s.deactivate(ctx, sess, sess.UserID)
}

// DeactivateUser lets an admin deactivate any account.
func (s *UserService) DeactivateUser(ctx context.Context, sess auth.Session, userID string) error {
	if err := policy.RequireRole(sess, models.RoleAdmin); err != nil {
		return err
	}
	return s.deactivate(ctx, sess, userID)
}

// deactivate counts admins and flips the flag in one transaction so two
// admins deactivating each other cannot both succeed.
func (s *UserService) deactivate(ctx context.Context, sess auth.Session, userID string) error {
	return s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		target, err := tx.Users.FindByID(userID)
		if err != nil {
			return notFound(err, ErrUserNotFound, "find user")
		}

		admins, err := tx.Users.CountActiveAdmins()
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if err := policy.CanDeactivate(target, admins); err != nil {
			return err
		}

		changed, err := tx.Users.Deactivate(target.ID, time.Now())
		if err != nil {
			return fmt.Errorf("failed to deactivate user: %w", err)
		}
		if !changed {
			return nil
		}

		_, err = s.activity.Record(tx, nil, sess.UserID,
			activity.UserDeactivated{UserID: target.ID, ByID: sess.UserID},
			fmt.Sprintf("%s was deactivated by %s", target.FullName, sess.FullName))
		return err
	})
}

// GetPreferences returns the caller's notification preferences.
func (s *UserService) GetPreferences(ctx context.Context, sess auth.Session) (models.NotificationPreferences, error) {
	user, err := s.repos.WithContext(ctx).Users.FindByID(sess.UserID)
	if err != nil {
		return models.NotificationPreferences{}, notFound(err, ErrUserNotFound, "find user")
	}
	return user.NotificationPreferences, nil
}

// PreferencesPatch holds the preference switches to change; nil leaves a
// switch as it is.
type PreferencesPatch struct {
	NotifyEmailUpdates    *bool
	NotifyProjectActivity *bool
	NotifyNewMessages     *bool
	NotifyWeeklyDigest    *bool
}

// UpdatePreferences writes only the switches present in patch.
func (s *UserService) UpdatePreferences(ctx context.Context, sess auth.Session, patch PreferencesPatch) (models.NotificationPreferences, error) {
	columns := map[string]interface{}{}
	set := func(column string, v *bool) {
		if v != nil {
			columns[column] = *v
		}
	}
	set("notify_email_updates", patch.NotifyEmailUpdates)
	set("notify_project_activity", patch.NotifyProjectActivity)
	set("notify_new_messages", patch.NotifyNewMessages)
	set("notify_weekly_digest", patch.NotifyWeeklyDigest)

	repos := s.repos.WithContext(ctx)
	if err := repos.Users.UpdateColumns(sess.UserID, columns); err != nil {
		return models.NotificationPreferences{}, fmt.Errorf("failed to update preferences: %w", err)
	}
	return s.GetPreferences(ctx, sess)
}

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadProfileImage stores a new profile image and points the caller's
// profile at it.
func (s *UserService) UploadProfileImage(ctx context.Context, sess auth.Session, upload Upload) (*models.File, error) {
	if !profileImageTypes[upload.ContentType] {
		return nil, ErrInvalidFileType
	}
	if upload.Size > constants.MaxProfileImageSize {
		return nil, ErrFileTooLarge
	}

	key := storage.NewKey(models.FolderProfile, upload.Filename)
	if err := s.store.Put(ctx, key, upload.ContentType, upload.Body, upload.Size); err != nil {
		return nil, fmt.Errorf("failed to store profile image: %w", err)
	}

	file := &models.File{
		UploadedByID:     sess.UserID,
		Filename:         key,
		OriginalFilename: upload.Filename,
		FileType:         upload.ContentType,
		Size:             upload.Size,
		Folder:           models.FolderProfile,
		URL:              s.store.URL(key),
	}

	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		if err := tx.Files.Create(file); err != nil {
			return fmt.Errorf("failed to record file: %w", err)
		}
		if err := tx.Users.UpdateColumns(sess.UserID, map[string]interface{}{"profile_image_url": file.URL}); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		_, err := s.activity.Record(tx, nil, sess.UserID,
			activity.FileUploaded{FileID: file.ID, Folder: file.Folder, Filename: file.OriginalFilename, Size: file.Size},
			fmt.Sprintf("%s updated their profile image", sess.FullName))
		return err
	})
	if err != nil {
		removeObject(ctx, s.store, s.log, key)
		return nil, err
	}
	return file, nil
}

// removeObject deletes a stored object, logging failures.
func removeObject(ctx context.Context, store storage.Store, log *zap.Logger, key string) {
	if err := store.Delete(ctx, key); err != nil {
		log.Warn("failed to remove stored object", zap.String("key", key), zap.Error(err))
	}
}
