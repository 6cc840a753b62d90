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

// QuestionnaireHandler handles questionnaire assembly endpoints.
type QuestionnaireHandler struct {
	questionnaireService *service.QuestionnaireService
}

// NewQuestionnaireHandler creates a new QuestionnaireHandler.
func NewQuestionnaireHandler(questionnaireService *service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireService: questionnaireService}
}

func parseQuestionnaireID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("questionnaire_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// List godoc
// GET /api/v1/questionnaires
func (h *QuestionnaireHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	search := c.Query("search")
	status := c.Query("status")

	questionnaires, pagination := h.questionnaireService.List(page, perPage, search, status)
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questionnaires": questionnaires}, pagination)
}

// Get godoc
// GET /api/v1/questionnaires/:questionnaire_id
// The response embeds the resolved header and footer snippets; a
// dangling reference resolves to null.
func (h *QuestionnaireHandler) Get(c *gin.Context) {
	id, ok := parseQuestionnaireID(c)
	if !ok {
		return
	}

	questionnaire, ok := h.questionnaireService.Get(id)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questionnaire": questionnaire})
}

// Create godoc
// POST /api/v1/questionnaires
func (h *QuestionnaireHandler) Create(c *gin.Context) {
	var req model.CreateQuestionnaireRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questionnaire := h.questionnaireService.Create(req)
	response.Success(c, http.StatusCreated, gin.H{"questionnaire": questionnaire})
}

// Update godoc
// PATCH /api/v1/questionnaires/:questionnaire_id
func (h *QuestionnaireHandler) Update(c *gin.Context) {
	id, ok := parseQuestionnaireID(c)
	if !ok {
		return
	}

	var req model.UpdateQuestionnaireRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questionnaire, ok := h.questionnaireService.Update(id, req)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questionnaire": questionnaire})
}

// Delete godoc
// DELETE /api/v1/questionnaires/:questionnaire_id
func (h *QuestionnaireHandler) Delete(c *gin.Context) {
	id, ok := parseQuestionnaireID(c)
	if !ok {
		return
	}

	if !h.questionnaireService.Delete(id) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "questionnaire deleted"})
}

// Duplicate godoc
// POST /api/v1/questionnaires/:questionnaire_id/duplicate
// Every section and question in the duplicate gets a fresh id.
func (h *QuestionnaireHandler) Duplicate(c *gin.Context) {
	id, ok := parseQuestionnaireID(c)
	if !ok {
		return
	}

	questionnaire, ok := h.questionnaireService.Duplicate(id)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"questionnaire": questionnaire})
}

// AddSectionsFromLibrary godoc
// POST /api/v1/questionnaires/:questionnaire_id/sections/from-library
// Copies library sections into the questionnaire as frozen snapshots.
// Unknown section ids are skipped.
func (h *QuestionnaireHandler) AddSectionsFromLibrary(c *gin.Context) {
	id, ok := parseQuestionnaireID(c)
	if !ok {
		return
	}

	var req model.AddLibrarySectionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questionnaire, ok := h.questionnaireService.AddSectionsFromLibrary(id, req.SectionIDs)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questionnaire": questionnaire})
}

// AddSection godoc
// POST /api/v1/questionnaires/:questionnaire_id/sections
// Adds a custom section owned by the questionnaire itself.
func (h *QuestionnaireHandler) AddSection(c *gin.Context) {
	id, ok := parseQuestionnaireID(c)
	if !ok {
		return
	}

	var req model.CreateSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section, ok := h.questionnaireService.AddSection(id, req)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"section": section})
}

// UpdateStatus godoc
// PUT /api/v1/questionnaires/:questionnaire_id/status
// Any transition between draft, published and archived is allowed.
func (h *QuestionnaireHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseQuestionnaireID(c)
	if !ok {
		return
	}

	var req model.UpdateStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questionnaire, ok := h.questionnaireService.SetStatus(id, model.QuestionnaireStatus(req.Status))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questionnaire": questionnaire})
}
