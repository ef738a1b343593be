package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/brand-studio-api/internal/services"
)

// FileHandler serves project uploads.
type FileHandler struct {
	fileService *services.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// ListFiles returns a project's live files, optionally in one folder.
func (h *FileHandler) ListFiles(c *gin.Context) {
	_, project, ok := requireProject(c)
	if !ok {
		return
	}

	files, err := h.fileService.List(c.Request.Context(), project, c.Query("folder"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

// UploadFile stores a multipart "file" in the "folder" form field's folder.
func (h *FileHandler) UploadFile(c *gin.Context) {
	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	upload, file, ok := formFile(c)
	if !ok {
		return
	}
	defer file.Close()

	stored, err := h.fileService.Upload(c.Request.Context(), sess, project, c.PostForm("folder"), upload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stored)
}

// DeleteFile soft-deletes a file.
func (h *FileHandler) DeleteFile(c *gin.Context) {
	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), sess, project, c.Param("fileId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

// ApproveLogo records the approval of a logo file.
func (h *FileHandler) ApproveLogo(c *gin.Context) {
	sess, project, ok := requireProject(c)
	if !ok {
		return
	}

	logo, err := h.fileService.ApproveLogo(c.Request.Context(), sess, project, c.Param("fileId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, logo)
}
