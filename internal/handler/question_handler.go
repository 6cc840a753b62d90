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

// QuestionHandler handles question endpoints nested under a section.
type QuestionHandler struct {
	libraryService *service.LibraryService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(libraryService *service.LibraryService) *QuestionHandler {
	return &QuestionHandler{libraryService: libraryService}
}

type questionPath struct {
	LibraryID  uuid.UUID
	SectionID  uuid.UUID
	QuestionID uuid.UUID
}

func parseSectionPath(c *gin.Context) (questionPath, bool) {
	var p questionPath
	var err error
	if p.LibraryID, err = uuid.Parse(c.Param("library_id")); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return p, false
	}
	if p.SectionID, err = uuid.Parse(c.Param("section_id")); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return p, false
	}
	return p, true
}

func parseQuestionPath(c *gin.Context) (questionPath, bool) {
	p, ok := parseSectionPath(c)
	if !ok {
		return p, false
	}
	var err error
	if p.QuestionID, err = uuid.Parse(c.Param("question_id")); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return p, false
	}
	return p, true
}

// CreateQuestion godoc
// POST /api/v1/libraries/:library_id/sections/:section_id/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	p, ok := parseSectionPath(c)
	if !ok {
		return
	}

	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, ok := h.libraryService.AddQuestion(p.LibraryID, p.SectionID, req)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSectionNotFound)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// UpdateQuestion godoc
// PATCH /api/v1/libraries/:library_id/sections/:section_id/questions/:question_id
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	p, ok := parseQuestionPath(c)
	if !ok {
		return
	}

	var req model.UpdateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, ok := h.libraryService.UpdateQuestion(p.LibraryID, p.SectionID, p.QuestionID, req)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// DeleteQuestion godoc
// DELETE /api/v1/libraries/:library_id/sections/:section_id/questions/:question_id
// Remaining questions keep their order values.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	p, ok := parseQuestionPath(c)
	if !ok {
		return
	}

	if !h.libraryService.DeleteQuestion(p.LibraryID, p.SectionID, p.QuestionID) {
		response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "question deleted"})
}

// CopyQuestion godoc
// POST /api/v1/libraries/:library_id/sections/:section_id/questions/:question_id/copy
// The copy keeps every field of the original, gets a fresh id and a
// " (Copy)" title suffix, and is appended at the end of the section.
func (h *QuestionHandler) CopyQuestion(c *gin.Context) {
	p, ok := parseQuestionPath(c)
	if !ok {
		return
	}

	question, ok := h.libraryService.CopyQuestion(p.LibraryID, p.SectionID, p.QuestionID)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// ReorderQuestions godoc
// PUT /api/v1/libraries/:library_id/sections/:section_id/questions/order
func (h *QuestionHandler) ReorderQuestions(c *gin.Context) {
	p, ok := parseSectionPath(c)
	if !ok {
		return
	}

	var req model.ReorderQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, ok := h.libraryService.ReorderQuestions(p.LibraryID, p.SectionID, req.QuestionIDs)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSectionNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}
