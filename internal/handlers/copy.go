package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/brand-studio-api/internal/errors"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"github.com/yukikurage/brand-studio-api/internal/services"
	"github.com/yukikurage/brand-studio-api/internal/utils"
	"github.com/yukikurage/brand-studio-api/internal/validation"
)

// CopyHandler serves copy snippets.
type CopyHandler struct {
	copyService *services.CopyService
	validator   *validation.Validator
}

// NewCopyHandler creates a new CopyHandler.
func NewCopyHandler(copyService *services.CopyService, validator *validation.Validator) *CopyHandler {
	return &CopyHandler{copyService: copyService, validator: validator}
}

// ListCopy returns a project's snippets, optionally by purpose or
// favorites only.
func (h *CopyHandler) ListCopy(c *gin.Context) {
	_, project, ok := requireProject(c)
	if !ok {
		return
	}

	filter := repository.CopyFilter{FavoritesOnly: utils.QueryBool(c, "favorites")}
	if v := utils.QueryString(c, "purpose"); v != nil {
		purpose := models.CopyPurpose(*v)
		if !purpose.Valid() {
			apierrors.BadRequest(c, "Invalid purpose")
			return
		}
		filter.Purpose = &purpose
	}

	snippets, err := h.copyService.List(c.Request.Context(), project, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snippets": snippets})
}

// CreateCopy stores a hand-written snippet.
func (h *CopyHandler) CreateCopy(c *gin.Context) {
	type CopyRequest struct {
		Purpose models.CopyPurpose `json:"purpose" validate:"required,oneof=TAGLINE HEADLINE BIO PRODUCT_DESCRIPTION SOCIAL_CAPTION EMAIL_SUBJECT CALL_TO_ACTION"`
		Content string             `json:"content" validate:"required,notblank,max=5000"`
	}

	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req CopyRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	snippet, err := h.copyService.Create(c.Request.Context(), sess, project, services.CopyInput{
		Purpose: req.Purpose,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snippet)
}

// GenerateCopy drafts snippets with the AI generator.
func (h *CopyHandler) GenerateCopy(c *gin.Context) {
	type GenerateCopyRequest struct {
		Purpose models.CopyPurpose `json:"purpose" validate:"required,oneof=TAGLINE HEADLINE BIO PRODUCT_DESCRIPTION SOCIAL_CAPTION EMAIL_SUBJECT CALL_TO_ACTION"`
		Brief   string             `json:"brief" validate:"required,notblank,max=2000"`
		Tone    string             `json:"tone" validate:"max=100"`
		Count   int                `json:"count" validate:"omitempty,min=1,max=10"`
	}

	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req GenerateCopyRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	snippets, err := h.copyService.Generate(c.Request.Context(), sess, project, services.GenerateCopyInput{
		Purpose: req.Purpose,
		Brief:   req.Brief,
		Tone:    req.Tone,
		Count:   req.Count,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"snippets": snippets})
}

// UpdateCopy changes the fields present in the body.
func (h *CopyHandler) UpdateCopy(c *gin.Context) {
	type CopyPatchRequest struct {
		Purpose *models.CopyPurpose `json:"purpose" validate:"omitempty,oneof=TAGLINE HEADLINE BIO PRODUCT_DESCRIPTION SOCIAL_CAPTION EMAIL_SUBJECT CALL_TO_ACTION"`
		Content *string             `json:"content" validate:"omitempty,notblank,max=5000"`
	}

	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req CopyPatchRequest
	if apiErr := h.validator.BindPatch(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	snippet, err := h.copyService.Update(c.Request.Context(), sess, project, c.Param("snippetId"), services.CopyPatch{
		Purpose: req.Purpose,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snippet)
}

// ApproveCopy approves a snippet.
func (h *CopyHandler) ApproveCopy(c *gin.Context) {
	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	snippet, err := h.copyService.Approve(c.Request.Context(), sess, project, c.Param("snippetId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snippet)
}

// FavoriteCopy sets or clears the favorite flag.
func (h *CopyHandler) FavoriteCopy(c *gin.Context) {
	type FavoriteRequest struct {
		IsFavorite *bool `json:"isFavorite" validate:"required"`
	}

	_, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req FavoriteRequest
	if apiErr := h.validator.BindPatch(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	snippet, err := h.copyService.SetFavorite(c.Request.Context(), project, c.Param("snippetId"), *req.IsFavorite)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snippet)
}

// DeleteCopy removes a snippet.
func (h *CopyHandler) DeleteCopy(c *gin.Context) {
	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	if err := h.copyService.Delete(c.Request.Context(), sess, project, c.Param("snippetId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Copy snippet deleted successfully"})
}
