package model

import (
	"github.com/google/uuid"
)

// Section is an ordered, named grouping of questions. A section belongs
// to exactly one library or one questionnaire; its questions are owned
// exclusively by it.
type Section struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
	Order       int        `json:"order"`
	Hidden      bool       `json:"hidden"`
}

// CreateSectionRequest is the payload for adding a section.
type CreateSectionRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=500"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Hidden      bool   `json:"hidden"`
}

// UpdateSectionRequest is the payload for partially updating a section.
// Order is only reassigned when explicitly provided.
type UpdateSectionRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=500"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Hidden      *bool   `json:"hidden"`
	Order       *int    `json:"order" binding:"omitempty,min=1"`
}

// ReorderSectionsRequest is the payload for reordering a library's sections.
type ReorderSectionsRequest struct {
	SectionIDs []uuid.UUID `json:"section_ids" binding:"required,min=1"`
}
