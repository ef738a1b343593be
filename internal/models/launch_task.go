package models

import "time"

type LaunchTaskStatus string

const (
	LaunchTaskPending    LaunchTaskStatus = "PENDING"
	LaunchTaskInProgress LaunchTaskStatus = "IN_PROGRESS"
	LaunchTaskCompleted  LaunchTaskStatus = "COMPLETED"
	LaunchTaskBlocked    LaunchTaskStatus = "BLOCKED"
	LaunchTaskCancelled  LaunchTaskStatus = "CANCELLED"
)

func (s LaunchTaskStatus) Valid() bool {
	switch s {
	case LaunchTaskPending, LaunchTaskInProgress, LaunchTaskCompleted, LaunchTaskBlocked, LaunchTaskCancelled:
		return true
	}
	return false
}

type LaunchTaskPriority string

const (
	PriorityLow    LaunchTaskPriority = "LOW"
	PriorityMedium LaunchTaskPriority = "MEDIUM"
	PriorityHigh   LaunchTaskPriority = "HIGH"
	PriorityUrgent LaunchTaskPriority = "URGENT"
)

type LaunchTask struct {
	Base
	ProjectID     string             `gorm:"type:varchar(36);not null;index" json:"projectId"`
	TaskName      string             `gorm:"type:varchar(255);not null" json:"taskName"`
	Description   string             `gorm:"type:text" json:"description"`
	Status        LaunchTaskStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority      LaunchTaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	DueDate       *time.Time         `json:"dueDate"`
	CompletedDate *time.Time         `json:"completedDate"`
	Notes         string             `gorm:"type:text" json:"notes"`
}
