package models

type NotificationType string

const (
	NotificationNewMessage    NotificationType = "NEW_MESSAGE"
	NotificationProjectUpdate NotificationType = "PROJECT_UPDATE"
	NotificationTaskCompleted NotificationType = "TASK_COMPLETED"
	NotificationAssetApproved NotificationType = "ASSET_APPROVED"
	NotificationSystem        NotificationType = "SYSTEM"
)

type Notification struct {
	Base
	UserID        string           `gorm:"type:varchar(36);not null;index" json:"userId"`
	Type          NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title         string           `gorm:"type:varchar(255);not null" json:"title"`
	Message       string           `gorm:"type:text" json:"message"`
	Link          string           `gorm:"type:varchar(512)" json:"link"`
	IsRead        bool             `gorm:"not null;index" json:"isRead"`
	TriggeredByID *string          `gorm:"type:varchar(36)" json:"triggeredById"`
}
