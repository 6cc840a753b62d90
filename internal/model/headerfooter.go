package model

import (
	"time"

	"github.com/google/uuid"
)

// HeaderFooterType tags a snippet as a header or a footer.
type HeaderFooterType string

const (
	HeaderFooterTypeHeader HeaderFooterType = "header"
	HeaderFooterTypeFooter HeaderFooterType = "footer"
)

// HeaderFooter is a named, reusable rich-text snippet attachable to
// questionnaires by id. Content is opaque HTML; the core never parses it.
type HeaderFooter struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Content   string           `json:"content"`
	Type      HeaderFooterType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// CreateHeaderFooterRequest is the payload for creating a header or
// footer. The type tag is taken from the route, not the body.
type CreateHeaderFooterRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Content string `json:"content" binding:"required"`
}

// UpdateHeaderFooterRequest is the payload for partially updating a
// header or footer.
type UpdateHeaderFooterRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Content *string `json:"content" binding:"omitempty"`
}
