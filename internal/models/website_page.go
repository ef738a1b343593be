package models

type SectionType string

const (
	SectionHero         SectionType = "HERO"
	SectionAbout        SectionType = "ABOUT"
	SectionFeatures     SectionType = "FEATURES"
	SectionServices     SectionType = "SERVICES"
	SectionTestimonials SectionType = "TESTIMONIALS"
	SectionPricing      SectionType = "PRICING"
	SectionFAQ          SectionType = "FAQ"
	SectionGallery      SectionType = "GALLERY"
	SectionContact      SectionType = "CONTACT"
	SectionCTA          SectionType = "CTA"
)

type WebsitePage struct {
	Base
	ProjectID string `gorm:"type:varchar(36);not null;index" json:"projectId"`
	PageName  string `gorm:"type:varchar(100);not null" json:"pageName"`
	Slug      string `gorm:"type:varchar(100);not null" json:"slug"`

	// Relations
	Sections []PageSection `gorm:"foreignKey:PageID" json:"sections,omitempty"`
}

type PageSection struct {
	Base
	PageID      string      `gorm:"type:varchar(36);not null;index" json:"pageId"`
	ProjectID   string      `gorm:"type:varchar(36);not null;index" json:"projectId"`
	SectionName string      `gorm:"type:varchar(100);not null" json:"sectionName"`
	SectionType SectionType `gorm:"type:varchar(20);not null" json:"sectionType"`
	OrderIndex  int         `gorm:"not null" json:"orderIndex"`
	Content     string      `gorm:"type:text" json:"content"`
	IsVisible   bool        `gorm:"not null" json:"isVisible"`
}
