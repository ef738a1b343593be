package dto

import (
	"time"

	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/models"
)

// ActivityDTO is an activity row with its metadata decoded to the typed payload.
type ActivityDTO struct {
	ID          string           `json:"id"`
	ProjectID   *string          `json:"projectId"`
	UserID      string           `json:"userId"`
	ActionType  string           `json:"actionType"`
	EntityType  string           `json:"entityType"`
	EntityID    string           `json:"entityId"`
	Description string           `json:"description"`
	Metadata    activity.Payload `json:"metadata"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ToActivityDTO decodes the stored metadata. Rows whose metadata cannot be
// decoded are still returned, without a payload.
func ToActivityDTO(row models.ActivityLog) ActivityDTO {
	payload, _ := activity.Decode(activity.ActionType(row.ActionType), row.Metadata)

	return ActivityDTO{
		ID:          row.ID,
		ProjectID:   row.ProjectID,
		UserID:      row.UserID,
		ActionType:  row.ActionType,
		EntityType:  row.EntityType,
		EntityID:    row.EntityID,
		Description: row.Description,
		Metadata:    payload,
		CreatedAt:   row.CreatedAt,
	}
}

// ToActivityDTOs converts a slice of rows.
func ToActivityDTOs(rows []models.ActivityLog) []ActivityDTO {
	out := make([]ActivityDTO, len(rows))
	for i, row := range rows {
		out[i] = ToActivityDTO(row)
	}
	return out
}

// MessageDTO is a project message, which is stored as a MESSAGE_SENT activity row.
type MessageDTO struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	SenderID  string    `json:"senderId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToMessageDTO converts a MESSAGE_SENT activity row.
func ToMessageDTO(row models.ActivityLog) MessageDTO {
	dto := MessageDTO{
		ID:        row.ID,
		SenderID:  row.UserID,
		Message:   row.Description,
		CreatedAt: row.CreatedAt,
	}
	if row.ProjectID != nil {
		dto.ProjectID = *row.ProjectID
	}
	return dto
}
