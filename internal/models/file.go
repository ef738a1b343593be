package models

import "time"

const (
	FolderProfile = "profile"
	FolderLogos   = "logos"
	FolderAssets  = "assets"
)

type File struct {
	Base
	ProjectID        *string    `gorm:"type:varchar(36);index" json:"projectId"`
	UploadedByID     string     `gorm:"type:varchar(36);not null" json:"uploadedById"`
	Filename         string     `gorm:"type:varchar(512);not null" json:"filename"`
	OriginalFilename string     `gorm:"type:varchar(255);not null" json:"originalFilename"`
	FileType         string     `gorm:"type:varchar(100);not null" json:"fileType"`
	Size             int64      `json:"size"`
	Folder           string     `gorm:"type:varchar(50);not null;index" json:"folder"`
	URL              string     `gorm:"type:varchar(1024)" json:"url"`
	IsDeleted        bool       `gorm:"not null;index" json:"isDeleted"`
	DeletedAt        *time.Time `json:"deletedAt,omitempty"`
}
