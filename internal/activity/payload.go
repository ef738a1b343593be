// Package activity defines the typed payloads stored on activity log rows.
//
// Each action type has exactly one payload struct. Payloads are serialized
// to the row's opaque metadata column by Encode and restored by Decode, so
// code above the storage boundary never handles untyped maps.
package activity

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type ActionType string

const (
	ActionProjectCreated   ActionType = "PROJECT_CREATED"
	ActionAssetGenerated   ActionType = "ASSET_GENERATED"
	ActionAssetUpdated     ActionType = "ASSET_UPDATED"
	ActionAssetApproved    ActionType = "ASSET_APPROVED"
	ActionAssetDeleted     ActionType = "ASSET_DELETED"
	ActionContentPublished ActionType = "CONTENT_PUBLISHED"
	ActionTaskUpdated      ActionType = "TASK_UPDATED"
	ActionTaskCompleted    ActionType = "TASK_COMPLETED"
	ActionMessageSent      ActionType = "MESSAGE_SENT"
	ActionFileUploaded     ActionType = "FILE_UPLOADED"
	ActionUserSignedUp     ActionType = "USER_SIGNUP"
	ActionUserDeactivated  ActionType = "USER_DEACTIVATED"
	ActionPasswordReset    ActionType = "PASSWORD_RESET"
)

type EntityType string

const (
	EntityProject     EntityType = "PROJECT"
	EntityPalette     EntityType = "COLOR_PALETTE"
	EntityTypography  EntityType = "TYPOGRAPHY"
	EntityCopySnippet EntityType = "COPY_SNIPPET"
	EntityLogo        EntityType = "LOGO"
	EntityFile        EntityType = "FILE"
	EntityContentPost EntityType = "CONTENT_POST"
	EntityLaunchTask  EntityType = "LAUNCH_TASK"
	EntityPage        EntityType = "WEBSITE_PAGE"
	EntityPageSection EntityType = "PAGE_SECTION"
	EntityMessage     EntityType = "MESSAGE"
	EntityUser        EntityType = "USER"
)

// Payload is implemented by every activity variant.
type Payload interface {
	Action() ActionType
	Subject() (EntityType, string)
}

type ProjectCreated struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
}

type AssetGenerated struct {
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	Name       string     `json:"name"`
	Count      int        `json:"count,omitempty"`
	AIAssisted bool       `json:"aiAssisted,omitempty"`
}

type AssetUpdated struct {
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	Fields     []string   `json:"fields"`
}

type AssetApproved struct {
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	Name       string     `json:"name"`
}

type AssetDeleted struct {
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	Name       string     `json:"name"`
}

type ContentPublished struct {
	PostID      string    `json:"postId"`
	Platform    string    `json:"platform"`
	PublishedAt time.Time `json:"publishedAt"`
}

type TaskUpdated struct {
	TaskID string   `json:"taskId"`
	Fields []string `json:"fields"`
	Status string   `json:"status"`
}

type TaskCompleted struct {
	TaskID      string    `json:"taskId"`
	TaskName    string    `json:"taskName"`
	CompletedAt time.Time `json:"completedAt"`
}

type MessageSent struct {
	MessageID   string `json:"messageId"`
	RecipientID string `json:"recipientId,omitempty"`
	Length      int    `json:"length"`
}

type FileUploaded struct {
	FileID   string `json:"fileId"`
	Folder   string `json:"folder"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type UserSignedUp struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type UserDeactivated struct {
	UserID string `json:"userId"`
	ByID   string `json:"byId"`
}

type PasswordReset struct {
	UserID string `json:"userId"`
}

func (ProjectCreated) Action() ActionType   { return ActionProjectCreated }
func (AssetGenerated) Action() ActionType   { return ActionAssetGenerated }
func (AssetUpdated) Action() ActionType     { return ActionAssetUpdated }
func (AssetApproved) Action() ActionType    { return ActionAssetApproved }
func (AssetDeleted) Action() ActionType     { return ActionAssetDeleted }
func (ContentPublished) Action() ActionType { return ActionContentPublished }
func (TaskUpdated) Action() ActionType      { return ActionTaskUpdated }
func (TaskCompleted) Action() ActionType    { return ActionTaskCompleted }
func (MessageSent) Action() ActionType      { return ActionMessageSent }
func (FileUploaded) Action() ActionType     { return ActionFileUploaded }
func (UserSignedUp) Action() ActionType     { return ActionUserSignedUp }
func (UserDeactivated) Action() ActionType  { return ActionUserDeactivated }
func (PasswordReset) Action() ActionType    { return ActionPasswordReset }

func (p ProjectCreated) Subject() (EntityType, string)   { return EntityProject, p.ProjectID }
func (p AssetGenerated) Subject() (EntityType, string)   { return p.EntityType, p.EntityID }
func (p AssetUpdated) Subject() (EntityType, string)     { return p.EntityType, p.EntityID }
func (p AssetApproved) Subject() (EntityType, string)    { return p.EntityType, p.EntityID }
func (p AssetDeleted) Subject() (EntityType, string)     { return p.EntityType, p.EntityID }
func (p ContentPublished) Subject() (EntityType, string) { return EntityContentPost, p.PostID }
func (p TaskUpdated) Subject() (EntityType, string)      { return EntityLaunchTask, p.TaskID }
func (p TaskCompleted) Subject() (EntityType, string)    { return EntityLaunchTask, p.TaskID }
func (p MessageSent) Subject() (EntityType, string)      { return EntityMessage, p.MessageID }
func (p FileUploaded) Subject() (EntityType, string)     { return EntityFile, p.FileID }
func (p UserSignedUp) Subject() (EntityType, string)     { return EntityUser, p.UserID }
func (p UserDeactivated) Subject() (EntityType, string)  { return EntityUser, p.UserID }
func (p PasswordReset) Subject() (EntityType, string)    { return EntityUser, p.UserID }

// Encode serializes a payload for the metadata column.
func Encode(p Payload) (datatypes.JSON, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", p.Action(), err)
	}
	return datatypes.JSON(raw), nil
}

// Decode restores the payload variant stored for the given action type.
func Decode(action ActionType, raw []byte) (Payload, error) {
	var p Payload
	switch action {
	case ActionProjectCreated:
		p = &ProjectCreated{}
	case ActionAssetGenerated:
		p = &AssetGenerated{}
	case ActionAssetUpdated:
		p = &AssetUpdated{}
	case ActionAssetApproved:
		p = &AssetApproved{}
	case ActionAssetDeleted:
		p = &AssetDeleted{}
	case ActionContentPublished:
		p = &ContentPublished{}
	case ActionTaskUpdated:
		p = &TaskUpdated{}
	case ActionTaskCompleted:
		p = &TaskCompleted{}
	case ActionMessageSent:
		p = &MessageSent{}
	case ActionFileUploaded:
		p = &FileUploaded{}
	case ActionUserSignedUp:
		p = &UserSignedUp{}
	case ActionUserDeactivated:
		p = &UserDeactivated{}
	case ActionPasswordReset:
		p = &PasswordReset{}
	default:
		return nil, fmt.Errorf("unknown activity action %q", action)
	}

	if len(raw) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", action, err)
	}
	return p, nil
}

// ValidAction reports whether a is a known action type.
func ValidAction(a ActionType) bool {
	_, err := Decode(a, nil)
	return err == nil
}
