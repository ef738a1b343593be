package dto

import "github.com/yukikurage/brand-studio-api/internal/models"

// NotificationListResponse is the body of GET /api/notifications.
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

// PreferencesResponse is the body of the preference endpoints.
type PreferencesResponse struct {
	Message     string                         `json:"message"`
	Preferences models.NotificationPreferences `json:"preferences"`
}

// UploadResponse is the body returned after a file upload.
type UploadResponse struct {
	URL         string `json:"url"`
	FileID      string `json:"fileId"`
	WebViewLink string `json:"webViewLink"`
}
