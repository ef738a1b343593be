package models

type ColorPalette struct {
	Base
	ProjectID       string  `gorm:"type:varchar(36);not null;index" json:"projectId"`
	Name            string  `gorm:"type:varchar(100);not null" json:"name"`
	PrimaryColor    *string `gorm:"type:varchar(7)" json:"primaryColor"`
	SecondaryColor  *string `gorm:"type:varchar(7)" json:"secondaryColor"`
	AccentColor     *string `gorm:"type:varchar(7)" json:"accentColor"`
	NeutralColor    *string `gorm:"type:varchar(7)" json:"neutralColor"`
	BackgroundColor *string `gorm:"type:varchar(7)" json:"backgroundColor"`
	TextColor       *string `gorm:"type:varchar(7)" json:"textColor"`
	IsApproved      bool    `gorm:"not null" json:"isApproved"`
}

type Typography struct {
	Base
	ProjectID   string `gorm:"type:varchar(36);not null;index" json:"projectId"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	HeadingFont string `gorm:"type:varchar(100);not null" json:"headingFont"`
	BodyFont    string `gorm:"type:varchar(100);not null" json:"bodyFont"`
	AccentFont  string `gorm:"type:varchar(100)" json:"accentFont"`
	IsApproved  bool   `gorm:"not null" json:"isApproved"`
}

type CopyPurpose string

const (
	PurposeTagline            CopyPurpose = "TAGLINE"
	PurposeHeadline           CopyPurpose = "HEADLINE"
	PurposeBio                CopyPurpose = "BIO"
	PurposeProductDescription CopyPurpose = "PRODUCT_DESCRIPTION"
	PurposeSocialCaption      CopyPurpose = "SOCIAL_CAPTION"
	PurposeEmailSubject       CopyPurpose = "EMAIL_SUBJECT"
	PurposeCallToAction       CopyPurpose = "CALL_TO_ACTION"
)

func (p CopyPurpose) Valid() bool {
	switch p {
	case PurposeTagline, PurposeHeadline, PurposeBio, PurposeProductDescription,
		PurposeSocialCaption, PurposeEmailSubject, PurposeCallToAction:
		return true
	}
	return false
}

type CopySnippet struct {
	Base
	ProjectID  string      `gorm:"type:varchar(36);not null;index" json:"projectId"`
	Purpose    CopyPurpose `gorm:"type:varchar(30);not null;index" json:"purpose"`
	Content    string      `gorm:"type:text;not null" json:"content"`
	IsApproved bool        `gorm:"not null" json:"isApproved"`
	IsFavorite bool        `gorm:"not null" json:"isFavorite"`
}
