package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/formcraft/formcraft-backend/internal/model"
	"github.com/formcraft/formcraft-backend/internal/response"
	"github.com/formcraft/formcraft-backend/internal/service"
	"github.com/formcraft/formcraft-backend/internal/validator"
)

// LibraryHandler handles question library endpoints.
type LibraryHandler struct {
	libraryService *service.LibraryService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(libraryService *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// ListLibraries godoc
// GET /api/v1/libraries
// Lists libraries with pagination and optional search.
func (h *LibraryHandler) ListLibraries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	search := c.Query("search")

	libraries, pagination := h.libraryService.ListLibraries(page, perPage, search)
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"libraries": libraries}, pagination)
}

// GetLibrary godoc
// GET /api/v1/libraries/:library_id
func (h *LibraryHandler) GetLibrary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("library_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	library, ok := h.libraryService.GetLibrary(id)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrLibraryNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"library": library})
}

// CreateLibrary godoc
// POST /api/v1/libraries
func (h *LibraryHandler) CreateLibrary(c *gin.Context) {
	var req model.CreateLibraryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	library := h.libraryService.CreateLibrary(req)
	response.Success(c, http.StatusCreated, gin.H{"library": library})
}

// UpdateLibrary godoc
// PATCH /api/v1/libraries/:library_id
func (h *LibraryHandler) UpdateLibrary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("library_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateLibraryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	library, ok := h.libraryService.UpdateLibrary(id, req)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrLibraryNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"library": library})
}

// DeleteLibrary godoc
// DELETE /api/v1/libraries/:library_id
// Removes a library and everything it owns. Questionnaires that copied
// sections from it are frozen snapshots and are not touched.
func (h *LibraryHandler) DeleteLibrary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("library_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.libraryService.DeleteLibrary(id) {
		response.Fail(c, http.StatusNotFound, response.ErrLibraryNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "library deleted"})
}

// GetCurrentLibrary godoc
// GET /api/v1/libraries/current
func (h *LibraryHandler) GetCurrentLibrary(c *gin.Context) {
	library, ok := h.libraryService.CurrentLibrary()
	if !ok {
		response.Success(c, http.StatusOK, gin.H{"library": nil})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"library": library})
}

// SetCurrentLibrary godoc
// PUT /api/v1/libraries/current
// Selects the active library, or clears the selection with a null id.
func (h *LibraryHandler) SetCurrentLibrary(c *gin.Context) {
	var req model.SetCurrentLibraryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if !h.libraryService.SetCurrentLibrary(req.LibraryID) {
		response.Fail(c, http.StatusNotFound, response.ErrLibraryNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "current library updated"})
}
