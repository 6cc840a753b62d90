package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionLibrary is a named, persistent collection of sections used as
// a template source for questionnaires.
type QuestionLibrary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Sections    []Section `json:"sections"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateLibraryRequest is the payload for creating a new library.
// Libraries always start with an empty section list.
type CreateLibraryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// UpdateLibraryRequest is the payload for partially updating a library.
type UpdateLibraryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// SetCurrentLibraryRequest selects (or clears) the active library.
type SetCurrentLibraryRequest struct {
	LibraryID *uuid.UUID `json:"library_id"`
}
