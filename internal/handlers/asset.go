package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/brand-studio-api/internal/errors"
	"github.com/yukikurage/brand-studio-api/internal/services"
	"github.com/yukikurage/brand-studio-api/internal/validation"
)

// AssetHandler serves color palettes and typography.
type AssetHandler struct {
	assetService *services.AssetService
	validator    *validation.Validator
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService *services.AssetService, validator *validation.Validator) *AssetHandler {
	return &AssetHandler{assetService: assetService, validator: validator}
}

// ListPalettes returns a project's palettes.
func (h *AssetHandler) ListPalettes(c *gin.Context) {
	_, project, ok := requireProject(c)
	if !ok {
		return
	}

	palettes, err := h.assetService.ListPalettes(c.Request.Context(), project)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"palettes": palettes})
}

// CreatePalette adds a palette to a project.
func (h *AssetHandler) CreatePalette(c *gin.Context) {
	type PaletteRequest struct {
		Name            string  `json:"name" validate:"required,notblank,min=3,max=100"`
		PrimaryColor    *string `json:"primaryColor" validate:"omitempty,hexcolor6"`
		SecondaryColor  *string `json:"secondaryColor" validate:"omitempty,hexcolor6"`
		AccentColor     *string `json:"accentColor" validate:"omitempty,hexcolor6"`
		NeutralColor    *string `json:"neutralColor" validate:"omitempty,hexcolor6"`
		BackgroundColor *string `json:"backgroundColor" validate:"omitempty,hexcolor6"`
		TextColor       *string `json:"textColor" validate:"omitempty,hexcolor6"`
	}

	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req PaletteRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	palette, err := h.assetService.CreatePalette(c.Request.Context(), sess, project, services.PaletteInput{
		Name:            req.Name,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		AccentColor:     req.AccentColor,
		NeutralColor:    req.NeutralColor,
		BackgroundColor: req.BackgroundColor,
		TextColor:       req.TextColor,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, palette)
}

// ApprovePalette approves a palette by its own ID.
func (h *AssetHandler) ApprovePalette(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	palette, err := h.assetService.ApprovePalette(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, palette)
}

// ListTypography returns a project's typography sets.
func (h *AssetHandler) ListTypography(c *gin.Context) {
	_, project, ok := requireProject(c)
	if !ok {
		return
	}

	sets, err := h.assetService.ListTypography(c.Request.Context(), project)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"typography": sets})
}

// CreateTypography adds a typography set to a project.
func (h *AssetHandler) CreateTypography(c *gin.Context) {
	type TypographyRequest struct {
		Name        string `json:"name" validate:"required,notblank,max=100"`
		HeadingFont string `json:"headingFont" validate:"required,notblank,max=100"`
		BodyFont    string `json:"bodyFont" validate:"required,notblank,max=100"`
		AccentFont  string `json:"accentFont" validate:"max=100"`
	}

	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req TypographyRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	typography, err := h.assetService.CreateTypography(c.Request.Context(), sess, project, services.TypographyInput{
		Name:        req.Name,
		HeadingFont: req.HeadingFont,
		BodyFont:    req.BodyFont,
		AccentFont:  req.AccentFont,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, typography)
}

// UpdateTypography changes the fields present in the body.
func (h *AssetHandler) UpdateTypography(c *gin.Context) {
	type TypographyPatchRequest struct {
		Name        *string `json:"name" validate:"omitempty,notblank,max=100"`
		HeadingFont *string `json:"headingFont" validate:"omitempty,notblank,max=100"`
		BodyFont    *string `json:"bodyFont" validate:"omitempty,notblank,max=100"`
		AccentFont  *string `json:"accentFont" validate:"omitempty,max=100"`
	}

	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	var req TypographyPatchRequest
	if apiErr := h.validator.BindPatch(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	typography, err := h.assetService.UpdateTypography(c.Request.Context(), sess, project, c.Param("typographyId"), services.TypographyPatch{
		Name:        req.Name,
		HeadingFont: req.HeadingFont,
		BodyFont:    req.BodyFont,
		AccentFont:  req.AccentFont,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, typography)
}

// ApproveTypography approves a typography set.
func (h *AssetHandler) ApproveTypography(c *gin.Context) {
	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	typography, err := h.assetService.ApproveTypography(c.Request.Context(), sess, project, c.Param("typographyId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, typography)
}

// DeleteTypography removes a typography set.
func (h *AssetHandler) DeleteTypography(c *gin.Context) {
	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	if err := h.assetService.DeleteTypography(c.Request.Context(), sess, project, c.Param("typographyId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Typography deleted successfully"})
}
