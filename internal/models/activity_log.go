package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrActivityImmutable is returned when something tries to rewrite an audit row.
var ErrActivityImmutable = errors.New("activity log entries are append-only")

// ActivityLog is an append-only audit row.
type ActivityLog struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID   *string        `gorm:"type:varchar(36);index" json:"projectId"`
	UserID      string         `gorm:"type:varchar(36);not null;index" json:"userId"`
	ActionType  string         `gorm:"type:varchar(40);not null;index" json:"actionType"`
	EntityType  string         `gorm:"type:varchar(30);not null;index" json:"entityType"`
	EntityID    string         `gorm:"type:varchar(36)" json:"entityId"`
	Description string         `gorm:"type:text" json:"description"`
	Metadata    datatypes.JSON `json:"metadata"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *ActivityLog) BeforeUpdate(tx *gorm.DB) error {
	return ErrActivityImmutable
}

func (a *ActivityLog) BeforeDelete(tx *gorm.DB) error {
	return ErrActivityImmutable
}
