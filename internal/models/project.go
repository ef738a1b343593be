package models

type Project struct {
	Base
	ProjectName      string  `gorm:"type:varchar(255);not null" json:"projectName"`
	Description      string  `gorm:"type:text" json:"description"`
	CreatorEmail     string  `gorm:"type:varchar(255);not null;index" json:"creatorEmail"`
	LeadStrategistID *string `gorm:"type:varchar(36);index" json:"leadStrategistId"`
}
