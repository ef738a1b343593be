package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/brand-studio-api/internal/dto"
	apierrors "github.com/yukikurage/brand-studio-api/internal/errors"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/services"
	"github.com/yukikurage/brand-studio-api/internal/utils"
	"github.com/yukikurage/brand-studio-api/internal/validation"
)

// ContentHandler serves content posts, the launch checklist and website
// pages of a project.
type ContentHandler struct {
	contentService *services.ContentService
	taskService    *services.LaunchTaskService
	pageService    *services.PageService
	validator      *validation.Validator
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService *services.ContentService, taskService *services.LaunchTaskService, pageService *services.PageService, validator *validation.Validator) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		taskService:    taskService,
		pageService:    pageService,
		validator:      validator,
	}
}

// ListPosts returns a project's posts, optionally by status.
func (h *ContentHandler) ListPosts(c *gin.Context) {
	_, project, ok := requireProject(c)
	if !ok {
		return
	}

	var status *models.PostStatus
	if v := utils.QueryString(c, "status"); v != nil {
		s := models.PostStatus(*v)
		if !s.Valid() {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		status = &s
	}

	posts, err := h.contentService.List(c.Request.Context(), project, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// CreatePost drafts a post.
func (h *ContentHandler) CreatePost(c *gin.Context) {
	type PostRequest struct {
		PostTitle     string            `json:"postTitle" validate:"required,notblank,max=255"`
		Platform      string            `json:"platform" validate:"required,notblank,max=50"`
		Content       string            `json:"content" validate:"max=10000"`
		Status        models.PostStatus `json:"status" validate:"omitempty,oneof=DRAFT IN_REVIEW APPROVED SCHEDULED"`
		ScheduledDate *string           `json:"scheduledDate" validate:"omitempty,isodate"`
	}

	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req PostRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	post, err := h.contentService.Create(c.Request.Context(), sess, project, services.PostInput{
		PostTitle:     req.PostTitle,
		Platform:      req.Platform,
		Content:       req.Content,
		Status:        req.Status,
		ScheduledDate: parseOptionalDate(req.ScheduledDate),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// PublishPost publishes a post once.
func (h *ContentHandler) PublishPost(c *gin.Context) {
	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	post, err := h.contentService.Publish(c.Request.Context(), sess, project, c.Param("postId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListTasks returns the launch checklist, optionally by status.
func (h *ContentHandler) ListTasks(c *gin.Context) {
	_, project, ok := requireProject(c)
	if !ok {
		return
	}

	var status *models.LaunchTaskStatus
	if v := utils.QueryString(c, "status"); v != nil {
		s := models.LaunchTaskStatus(*v)
		if !s.Valid() {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		status = &s
	}

	tasks, err := h.taskService.List(c.Request.Context(), project, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask adds a launch task.
func (h *ContentHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		TaskName    string                    `json:"taskName" validate:"required,notblank,max=255"`
		Description string                    `json:"description" validate:"max=5000"`
		Status      models.LaunchTaskStatus   `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED BLOCKED CANCELLED"`
		Priority    models.LaunchTaskPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
		DueDate     *string                   `json:"dueDate" validate:"omitempty,isodate"`
		Notes       string                    `json:"notes" validate:"max=5000"`
	}

	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), sess, project, services.CreateTaskInput{
		TaskName:    req.TaskName,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     parseOptionalDate(req.DueDate),
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update. A null dueDate clears it.
func (h *ContentHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		TaskName    *string                    `json:"taskName" validate:"omitempty,notblank,max=255"`
		Description *string                    `json:"description" validate:"omitempty,max=5000"`
		Status      *models.LaunchTaskStatus   `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED BLOCKED CANCELLED"`
		Priority    *models.LaunchTaskPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
		Notes       *string                    `json:"notes" validate:"omitempty,max=5000"`
		DueDate     dto.Nullable[string]       `json:"dueDate" validate:"omitempty,isodate"`
	}

	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if apiErr := h.validator.BindPatch(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), sess, project, c.Param("taskId"), services.UpdateTaskInput{
		TaskName:    req.TaskName,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Notes:       req.Notes,
		SetDueDate:  req.DueDate.Set,
		DueDate:     parseOptionalDate(req.DueDate.Ptr()),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListPages returns a project's pages with their sections.
func (h *ContentHandler) ListPages(c *gin.Context) {
	_, project, ok := requireProject(c)
	if !ok {
		return
	}

	pages, err := h.pageService.ListPages(c.Request.Context(), project)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// CreatePage adds a website page.
func (h *ContentHandler) CreatePage(c *gin.Context) {
	type PageRequest struct {
		PageName string `json:"pageName" validate:"required,notblank,max=100"`
		Slug     string `json:"slug" validate:"required,notblank,max=100"`
	}

	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req PageRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	page, err := h.pageService.CreatePage(c.Request.Context(), sess, project, services.PageInput{
		PageName: req.PageName,
		Slug:     req.Slug,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, page)
}

// ListSections returns a page's sections in order.
func (h *ContentHandler) ListSections(c *gin.Context) {
	_, project, ok := requireProject(c)
	if !ok {
		return
	}

	sections, err := h.pageService.ListSections(c.Request.Context(), project, c.Param("pageId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// CreateSection adds a section at an explicit position.
func (h *ContentHandler) CreateSection(c *gin.Context) {
	type SectionRequest struct {
		SectionName string             `json:"sectionName" validate:"required,notblank,max=100"`
		SectionType models.SectionType `json:"sectionType" validate:"required,oneof=HERO ABOUT FEATURES SERVICES TESTIMONIALS PRICING FAQ GALLERY CONTACT CTA"`
		OrderIndex  *int               `json:"orderIndex" validate:"required,gte=0"`
		Content     string             `json:"content" validate:"max=20000"`
		IsVisible   *bool              `json:"isVisible"`
	}

	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req SectionRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	section, err := h.pageService.CreateSection(c.Request.Context(), sess, project, c.Param("pageId"), services.SectionInput{
		SectionName: req.SectionName,
		SectionType: req.SectionType,
		OrderIndex:  *req.OrderIndex,
		Content:     req.Content,
		IsVisible:   req.IsVisible,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, section)
}

// parseOptionalDate converts a value already checked by the isodate rule.
func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := validation.ParseDate(*s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
