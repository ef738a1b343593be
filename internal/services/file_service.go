package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/constants"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"github.com/yukikurage/brand-studio-api/internal/storage"
	"go.uber.org/zap"
)

var projectFolders = map[string]bool{
	models.FolderLogos:  true,
	models.FolderAssets: true,
}

// FileService handles project uploads and logo approval.
type FileService struct {
	repos    *repository.Repositories
	activity *ActivityService
	notifier *NotificationService
	store    storage.Store
	log      *zap.Logger
}

// NewFileService creates a new FileService
func NewFileService(repos *repository.Repositories, activitySvc *ActivityService, notifier *NotificationService, store storage.Store, log *zap.Logger) *FileService {
	return &FileService{
		repos:    repos,
		activity: activitySvc,
		notifier: notifier,
		store:    store,
		log:      log,
	}
}

// List lists a project's live files, optionally in one folder
func (s *FileService) List(ctx context.Context, project *models.Project, folder string) ([]models.File, error) {
	if folder != "" && !projectFolders[folder] {
		return nil, ErrInvalidFolder
	}

	files, err := s.repos.WithContext(ctx).Files.ListByProject(project.ID, folder)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}

// Upload stores a file in one of the project's folders.
func (s *FileService) Upload(ctx context.Context, sess auth.Session, project *models.Project, folder string, upload Upload) (*models.File, error) {
	if folder == "" {
		folder = models.FolderAssets
	}
	if !projectFolders[folder] {
		return nil, ErrInvalidFolder
	}
	if upload.Size > constants.MaxProjectFileSize {
		return nil, ErrFileTooLarge
	}
	if folder == models.FolderLogos && !profileImageTypes[upload.ContentType] && upload.ContentType != "image/svg+xml" {
		return nil, ErrInvalidFileType
	}

	key := storage.NewKey(project.ID+"/"+folder, upload.Filename)
	if err := s.store.Put(ctx, key, upload.ContentType, upload.Body, upload.Size); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	file := &models.File{
		ProjectID:        &project.ID,
		UploadedByID:     sess.UserID,
		Filename:         key,
		OriginalFilename: upload.Filename,
		FileType:         upload.ContentType,
		Size:             upload.Size,
		Folder:           folder,
		URL:              s.store.URL(key),
	}

	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		if err := tx.Files.Create(file); err != nil {
			return fmt.Errorf("failed to record file: %w", err)
		}
		_, err := s.activity.Record(tx, &project.ID, sess.UserID,
			activity.FileUploaded{FileID: file.ID, Folder: folder, Filename: file.OriginalFilename, Size: file.Size},
			fmt.Sprintf("Uploaded %s to %s", file.OriginalFilename, folder))
		return err
	})
	if err != nil {
		removeObject(ctx, s.store, s.log, key)
		return nil, err
	}
	return file, nil
}

// Delete soft-deletes a file and then removes the stored object on a
// best-effort basis.
func (s *FileService) Delete(ctx context.Context, sess auth.Session, project *models.Project, fileID string) error {
	var file *models.File
	var deleted bool
	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		var err error
		file, err = tx.Files.FindInProject(project.ID, fileID)
		if err != nil {
			return notFound(err, ErrFileNotFound, "find file")
		}

		deleted, err = tx.Files.SoftDelete(file.ID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		if !deleted {
			return ErrFileNotFound
		}

		entity := activity.EntityFile
		if file.Folder == models.FolderLogos {
			entity = activity.EntityLogo
		}
		_, err = s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetDeleted{EntityType: entity, EntityID: file.ID, Name: file.OriginalFilename},
			fmt.Sprintf("Deleted %s", file.OriginalFilename))
		return err
	})
	if err != nil {
		return err
	}

	removeObject(ctx, s.store, s.log, file.Filename)
	return nil
}

// ApproveLogo records a logo approval. Files carry no approval flag, so
// the activity log is the only record. The row's id is derived from the
// file id, which keeps a second approval from being recorded even when two
// requests race.
func (s *FileService) ApproveLogo(ctx context.Context, sess auth.Session, project *models.Project, fileID string) (*models.File, error) {
	var file *models.File
	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		var err error
		file, err = tx.Files.FindInProject(project.ID, fileID)
		if err != nil {
			return notFound(err, ErrFileNotFound, "find file")
		}
		if file.Folder != models.FolderLogos {
			return ErrFileNotFound
		}

		_, recorded, err := s.activity.RecordOnce(tx, logoApprovalID(file.ID), &project.ID, sess.UserID,
			activity.AssetApproved{EntityType: activity.EntityLogo, EntityID: file.ID, Name: file.OriginalFilename},
			approvalDescription(activity.EntityLogo, file.OriginalFilename))
		if err != nil || !recorded {
			return err
		}
		return notifyApproval(tx, s.notifier, sess, project, activity.EntityLogo, file.OriginalFilename)
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

// logoApprovalID is the activity id of a logo's approval row.
func logoApprovalID(fileID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("logo-approval:"+fileID)).String()
}
