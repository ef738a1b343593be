package models

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusInReview  PostStatus = "IN_REVIEW"
	PostStatusApproved  PostStatus = "APPROVED"
	PostStatusScheduled PostStatus = "SCHEDULED"
	PostStatusPublished PostStatus = "PUBLISHED"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusInReview, PostStatusApproved, PostStatusScheduled, PostStatusPublished:
		return true
	}
	return false
}

type ContentPost struct {
	Base
	ProjectID     string     `gorm:"type:varchar(36);not null;index" json:"projectId"`
	PostTitle     string     `gorm:"type:varchar(255);not null" json:"postTitle"`
	Platform      string     `gorm:"type:varchar(50);not null" json:"platform"`
	Content       string     `gorm:"type:text" json:"content"`
	Status        PostStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	PublishedDate *time.Time `json:"publishedDate"`
}
