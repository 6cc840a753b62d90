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

// HeaderFooterHandler serves both the /headers and /footers groups.
// The snippet type is fixed per handler instance by the route wiring.
type HeaderFooterHandler struct {
	headerFooterService *service.HeaderFooterService
	snippetType         model.HeaderFooterType
}

// NewHeaderFooterHandler creates a handler bound to one snippet type.
func NewHeaderFooterHandler(headerFooterService *service.HeaderFooterService, snippetType model.HeaderFooterType) *HeaderFooterHandler {
	return &HeaderFooterHandler{
		headerFooterService: headerFooterService,
		snippetType:         snippetType,
	}
}

// List godoc
// GET /api/v1/headers | GET /api/v1/footers
func (h *HeaderFooterHandler) List(c *gin.Context) {
	items := h.headerFooterService.List(h.snippetType)
	response.Success(c, http.StatusOK, gin.H{string(h.snippetType) + "s": items})
}

// Get godoc
// GET /api/v1/headers/:id | GET /api/v1/footers/:id
func (h *HeaderFooterHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	item, ok := h.headerFooterService.Get(h.snippetType, id)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{string(h.snippetType): item})
}

// Create godoc
// POST /api/v1/headers | POST /api/v1/footers
func (h *HeaderFooterHandler) Create(c *gin.Context) {
	var req model.CreateHeaderFooterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	item := h.headerFooterService.Create(h.snippetType, req)
	response.Success(c, http.StatusCreated, gin.H{string(h.snippetType): item})
}

// Update godoc
// PATCH /api/v1/headers/:id | PATCH /api/v1/footers/:id
func (h *HeaderFooterHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateHeaderFooterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	item, ok := h.headerFooterService.Update(h.snippetType, id, req)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{string(h.snippetType): item})
}

// Delete godoc
// DELETE /api/v1/headers/:id | DELETE /api/v1/footers/:id
// Questionnaires referencing the snippet keep the dangling id; lookups
// resolve it to null from then on.
func (h *HeaderFooterHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.headerFooterService.Delete(h.snippetType, id) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": string(h.snippetType) + " deleted"})
}
