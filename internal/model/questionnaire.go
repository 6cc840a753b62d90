package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionnaireStatus enumerates the lifecycle states of a questionnaire.
// All six directed transitions between the three states are permitted.
type QuestionnaireStatus string

const (
	QuestionnaireStatusDraft     QuestionnaireStatus = "draft"
	QuestionnaireStatusPublished QuestionnaireStatus = "published"
	QuestionnaireStatusArchived  QuestionnaireStatus = "archived"
)

// IsValid reports whether s is a known questionnaire status.
func (s QuestionnaireStatus) IsValid() bool {
	switch s {
	case QuestionnaireStatusDraft, QuestionnaireStatusPublished, QuestionnaireStatusArchived:
		return true
	}
	return false
}

// Questionnaire is an assembled, status-tracked document. Its sections
// are point-in-time copies of library sections (or custom sections) and
// evolve independently of their source. Header and footer are weak
// references by id; deleting the referenced snippet leaves the id
// dangling on purpose.
type Questionnaire struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	HeaderID    *uuid.UUID          `json:"header_id,omitempty"`
	FooterID    *uuid.UUID          `json:"footer_id,omitempty"`
	Sections    []Section           `json:"sections"`
	Status      QuestionnaireStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CreateQuestionnaireRequest is the payload for creating a questionnaire.
type CreateQuestionnaireRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=255"`
	Description string     `json:"description" binding:"omitempty,max=2000"`
	HeaderID    *uuid.UUID `json:"header_id" binding:"omitempty"`
	FooterID    *uuid.UUID `json:"footer_id" binding:"omitempty"`
	Status      string     `json:"status" binding:"omitempty,oneof=draft published archived"`
}

// UpdateQuestionnaireRequest is the payload for partially updating a
// questionnaire's own fields (status changes go through the status
// endpoint). Header/footer pointers use a double-pointer-free scheme:
// the Clear flags detach a reference, the IDs reattach one.
type UpdateQuestionnaireRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	HeaderID    *uuid.UUID `json:"header_id" binding:"omitempty"`
	FooterID    *uuid.UUID `json:"footer_id" binding:"omitempty"`
	ClearHeader bool       `json:"clear_header"`
	ClearFooter bool       `json:"clear_footer"`
}

// AddLibrarySectionsRequest copies sections from the question library
// into a questionnaire.
type AddLibrarySectionsRequest struct {
	SectionIDs []uuid.UUID `json:"section_ids" binding:"required,min=1"`
}

// UpdateStatusRequest changes a questionnaire's lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft published archived"`
}
