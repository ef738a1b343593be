package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/brand-studio-api/internal/dto"
	apierrors "github.com/yukikurage/brand-studio-api/internal/errors"
	"github.com/yukikurage/brand-studio-api/internal/services"
	"github.com/yukikurage/brand-studio-api/internal/utils"
	"github.com/yukikurage/brand-studio-api/internal/validation"
)

// ActivityHandler serves the activity feed and project messages.
type ActivityHandler struct {
	activityService *services.ActivityService
	messageService  *services.MessageService
	validator       *validation.Validator
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService *services.ActivityService, messageService *services.MessageService, validator *validation.Validator) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		messageService:  messageService,
		validator:       validator,
	}
}

// ListActivity returns the newest activity visible to the caller.
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	entries, err := h.activityService.List(c.Request.Context(), sess, services.ActivityQuery{
		Limit:      utils.GetLimit(c),
		ProjectID:  utils.QueryString(c, "projectId"),
		EntityType: utils.QueryString(c, "entityType"),
		ActionType: utils.QueryString(c, "actionType"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": dto.ToActivityDTOs(entries)})
}

// SendMessage posts a message on a project.
func (h *ActivityHandler) SendMessage(c *gin.Context) {
	type SendMessageRequest struct {
		ProjectID string `json:"projectId" validate:"required,notblank"`
		Message   string `json:"message" validate:"required,notblank,max=5000"`
	}

	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	entry, err := h.messageService.Send(c.Request.Context(), sess, req.ProjectID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": dto.ToMessageDTO(*entry),
	})
}

// ListMessages returns a project's newest messages.
func (h *ActivityHandler) ListMessages(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	projectID := c.Query("projectId")
	if projectID == "" {
		apierrors.BadRequest(c, "projectId is required")
		return
	}

	entries, err := h.messageService.List(c.Request.Context(), sess, projectID, utils.GetLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	messages := make([]dto.MessageDTO, len(entries))
	for i, entry := range entries {
		messages[i] = dto.ToMessageDTO(entry)
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
