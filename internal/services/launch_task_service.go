package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/repository"
)

// LaunchTaskService handles the launch checklist of a project.
type LaunchTaskService struct {
	repos    *repository.Repositories
	activity *ActivityService
	notifier *NotificationService
}

// NewLaunchTaskService creates a new LaunchTaskService
func NewLaunchTaskService(repos *repository.Repositories, activitySvc *ActivityService, notifier *NotificationService) *LaunchTaskService {
	return &LaunchTaskService{repos: repos, activity: activitySvc, notifier: notifier}
}

// CreateTaskInput represents input for creating a launch task
type CreateTaskInput struct {
	TaskName    string
	Description string
	Status      models.LaunchTaskStatus
	Priority    models.LaunchTaskPriority
	DueDate     *time.Time
	Notes       string
}

// UpdateTaskInput holds the task fields to change. DueDate is applied only
// when SetDueDate is true, so a nil DueDate clears it.
type UpdateTaskInput struct {
	TaskName    *string
	Description *string
	Status      *models.LaunchTaskStatus
	Priority    *models.LaunchTaskPriority
	Notes       *string
	SetDueDate  bool
	DueDate     *time.Time
}

// List lists a project's tasks
func (s *LaunchTaskService) List(ctx context.Context, project *models.Project, status *models.LaunchTaskStatus) ([]models.LaunchTask, error) {
	tasks, err := s.repos.WithContext(ctx).LaunchTasks.ListByProject(project.ID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create adds a task to the checklist. A task created as COMPLETED is
// recorded and announced like one completed later.
func (s *LaunchTaskService) Create(ctx context.Context, sess auth.Session, project *models.Project, input CreateTaskInput) (*models.LaunchTask, error) {
	task := &models.LaunchTask{
		ProjectID:   project.ID,
		TaskName:    input.TaskName,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Notes:       input.Notes,
	}
	if task.Status == "" {
		task.Status = models.LaunchTaskPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == models.LaunchTaskCompleted {
		now := time.Now().UTC()
		task.CompletedDate = &now
	}

	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		if err := tx.LaunchTasks.Create(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		if _, err := s.activity.Record(tx, &project.ID, sess.UserID,
			activity.AssetGenerated{EntityType: activity.EntityLaunchTask, EntityID: task.ID, Name: task.TaskName},
			fmt.Sprintf("Added launch task %s", task.TaskName)); err != nil {
			return err
		}
		if task.CompletedDate != nil {
			return s.recordCompletion(tx, sess, project, task, *task.CompletedDate)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update. Moving to COMPLETED stamps
// completedDate, records TASK_COMPLETED and tells the lead strategist;
// moving away from COMPLETED clears completedDate.
func (s *LaunchTaskService) Update(ctx context.Context, sess auth.Session, project *models.Project, taskID string, input UpdateTaskInput) (*models.LaunchTask, error) {
	var task *models.LaunchTask
	err := s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		var err error
		task, err = tx.LaunchTasks.FindInProject(project.ID, taskID)
		if err != nil {
			return notFound(err, ErrTaskNotFound, "find task")
		}

		wasCompleted := task.Status == models.LaunchTaskCompleted

		var fields []string
		apply(&task.TaskName, input.TaskName, "taskName", &fields)
		apply(&task.Description, input.Description, "description", &fields)
		apply(&task.Status, input.Status, "status", &fields)
		apply(&task.Priority, input.Priority, "priority", &fields)
		apply(&task.Notes, input.Notes, "notes", &fields)
		if input.SetDueDate && !sameTime(task.DueDate, input.DueDate) {
			task.DueDate = input.DueDate
			fields = append(fields, "dueDate")
		}
		if len(fields) == 0 {
			return nil
		}

		isCompleted := task.Status == models.LaunchTaskCompleted
		now := time.Now().UTC()
		switch {
		case isCompleted && !wasCompleted:
			task.CompletedDate = &now
		case !isCompleted && wasCompleted:
			task.CompletedDate = nil
		}

		if err := tx.LaunchTasks.Update(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		if isCompleted && !wasCompleted {
			return s.recordCompletion(tx, sess, project, task, now)
		}
		_, err = s.activity.Record(tx, &project.ID, sess.UserID,
			activity.TaskUpdated{TaskID: task.ID, Fields: fields, Status: string(task.Status)},
			fmt.Sprintf("Updated launch task %s", task.TaskName))
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *LaunchTaskService) recordCompletion(tx *repository.Repositories, sess auth.Session, project *models.Project, task *models.LaunchTask, at time.Time) error {
	if _, err := s.activity.Record(tx, &project.ID, sess.UserID,
		activity.TaskCompleted{TaskID: task.ID, TaskName: task.TaskName, CompletedAt: at},
		fmt.Sprintf("Completed launch task %s", task.TaskName)); err != nil {
		return err
	}

	_, err := s.notifier.Notify(tx, NotifyInput{
		RecipientID:   deref(project.LeadStrategistID),
		Type:          models.NotificationTaskCompleted,
		Title:         "Launch task completed",
		Message:       fmt.Sprintf("%s completed %s on %s", sess.FullName, task.TaskName, project.ProjectName),
		Link:          fmt.Sprintf("/projects/%s/launch", project.ID),
		TriggeredByID: sess.UserID,
	})
	return err
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
