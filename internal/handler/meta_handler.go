package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formcraft/formcraft-backend/internal/model"
	"github.com/formcraft/formcraft-backend/internal/response"
)

// MetaHandler serves static catalog data used by authoring clients.
type MetaHandler struct{}

// NewMetaHandler creates a new MetaHandler.
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type questionTypeEntry struct {
	Type  model.QuestionType `json:"type"`
	Label string             `json:"label"`
}

// QuestionTypes godoc
// GET /api/v1/question-types
// Lists every supported question type with its display label.
func (h *MetaHandler) QuestionTypes(c *gin.Context) {
	types := make([]questionTypeEntry, 0, len(model.AllQuestionTypes))
	for _, t := range model.AllQuestionTypes {
		types = append(types, questionTypeEntry{Type: t, Label: model.QuestionTypeLabels[t]})
	}
	response.Success(c, http.StatusOK, gin.H{"question_types": types})
}
