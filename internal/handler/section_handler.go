package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/formcraft/formcraft-backend/internal/model"
	"github.com/formcraft/formcraft-backend/internal/response"
	"github.com/formcraft/formcraft-backend/internal/service"
	"github.com/formcraft/formcraft-backend/internal/validator"
)

// SectionHandler handles section endpoints nested under a library.
type SectionHandler struct {
	libraryService *service.LibraryService
}

// NewSectionHandler creates a new SectionHandler.
func NewSectionHandler(libraryService *service.LibraryService) *SectionHandler {
	return &SectionHandler{libraryService: libraryService}
}

func parseLibraryID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("library_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// CreateSection godoc
// POST /api/v1/libraries/:library_id/sections
func (h *SectionHandler) CreateSection(c *gin.Context) {
	libraryID, ok := parseLibraryID(c)
	if !ok {
		return
	}

	var req model.CreateSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section, ok := h.libraryService.AddSection(libraryID, req)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrLibraryNotFound)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"section": section})
}

// UpdateSection godoc
// PATCH /api/v1/libraries/:library_id/sections/:section_id
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	libraryID, ok := parseLibraryID(c)
	if !ok {
		return
	}
	sectionID, err := uuid.Parse(c.Param("section_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section, ok := h.libraryService.UpdateSection(libraryID, sectionID, req)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSectionNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"section": section})
}

// DeleteSection godoc
// DELETE /api/v1/libraries/:library_id/sections/:section_id
// Deleting a section removes its questions with it. Remaining sections
// keep their order values.
func (h *SectionHandler) DeleteSection(c *gin.Context) {
	libraryID, ok := parseLibraryID(c)
	if !ok {
		return
	}
	sectionID, err := uuid.Parse(c.Param("section_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.libraryService.DeleteSection(libraryID, sectionID) {
		response.Fail(c, http.StatusNotFound, response.ErrSectionNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "section deleted"})
}

// CopySection godoc
// POST /api/v1/libraries/:library_id/sections/:section_id/copy
// The copy gets fresh ids for itself and all of its questions and is
// appended at the end of the library.
func (h *SectionHandler) CopySection(c *gin.Context) {
	libraryID, ok := parseLibraryID(c)
	if !ok {
		return
	}
	sectionID, err := uuid.Parse(c.Param("section_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	section, ok := h.libraryService.CopySection(libraryID, sectionID)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSectionNotFound)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"section": section})
}

// ReorderSections godoc
// PUT /api/v1/libraries/:library_id/sections/order
// Assigns dense 1..N orders following the given id sequence.
func (h *SectionHandler) ReorderSections(c *gin.Context) {
	libraryID, ok := parseLibraryID(c)
	if !ok {
		return
	}

	var req model.ReorderSectionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sections, ok := h.libraryService.ReorderSections(libraryID, req.SectionIDs)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrLibraryNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}
