package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/brand-studio-api/internal/errors"
	"github.com/yukikurage/brand-studio-api/internal/services"
	"github.com/yukikurage/brand-studio-api/internal/validation"
)

// ProjectHandler serves the project list and project records.
type ProjectHandler struct {
	projectService *services.ProjectService
	validator      *validation.Validator
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, validator *validation.Validator) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, validator: validator}
}

// ListProjects returns the projects visible to the caller.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject returns the project loaded by RequireProjectAccess.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	_, project, ok := requireProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, project)
}

// CreateProject opens a project for a client.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		ProjectName      string  `json:"projectName" validate:"required,notblank,max=255"`
		Description      string  `json:"description" validate:"max=5000"`
		CreatorEmail     string  `json:"creatorEmail" validate:"required,email"`
		LeadStrategistID *string `json:"leadStrategistId" validate:"omitempty,uuid"`
	}

	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), sess, services.CreateProjectInput{
		ProjectName:      req.ProjectName,
		Description:      req.Description,
		CreatorEmail:     req.CreatorEmail,
		LeadStrategistID: req.LeadStrategistID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}
