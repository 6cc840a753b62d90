package model

import (
	"github.com/google/uuid"
)

// QuestionType is the closed set of input formats a question may declare.
type QuestionType string

const (
	QuestionTypeText     QuestionType = "text"
	QuestionTypeTextarea QuestionType = "textarea"
	QuestionTypeEmail    QuestionType = "email"
	QuestionTypeURL      QuestionType = "url"
	QuestionTypePhone    QuestionType = "phone"
	QuestionTypeRichText QuestionType = "richtext"
	QuestionTypeChoice   QuestionType = "choice"
	QuestionTypeChoices  QuestionType = "choices"
	QuestionTypeNumber   QuestionType = "number"
	QuestionTypeDecimal  QuestionType = "decimal"
	QuestionTypeCurrency QuestionType = "currency"
	QuestionTypeDate     QuestionType = "date"
	QuestionTypeDatetime QuestionType = "datetime"
	QuestionTypeBoolean  QuestionType = "boolean"
	QuestionTypeFile     QuestionType = "file"
	QuestionTypeImage    QuestionType = "image"
	QuestionTypeTicker   QuestionType = "ticker"
	QuestionTypeTable    QuestionType = "table"
)

// AllQuestionTypes lists every question type in catalog order.
var AllQuestionTypes = []QuestionType{
	QuestionTypeText,
	QuestionTypeTextarea,
	QuestionTypeEmail,
	QuestionTypeURL,
	QuestionTypePhone,
	QuestionTypeRichText,
	QuestionTypeChoice,
	QuestionTypeChoices,
	QuestionTypeNumber,
	QuestionTypeDecimal,
	QuestionTypeCurrency,
	QuestionTypeDate,
	QuestionTypeDatetime,
	QuestionTypeBoolean,
	QuestionTypeFile,
	QuestionTypeImage,
	QuestionTypeTicker,
	QuestionTypeTable,
}

// QuestionTypeLabels maps each question type to its display name.
var QuestionTypeLabels = map[QuestionType]string{
	QuestionTypeText:     "Single Line Text",
	QuestionTypeTextarea: "Multiple Line Text",
	QuestionTypeEmail:    "Email Address",
	QuestionTypeURL:      "URL",
	QuestionTypePhone:    "Phone Number",
	QuestionTypeRichText: "Rich Text",
	QuestionTypeChoice:   "Single Choice",
	QuestionTypeChoices:  "Multiple Choice",
	QuestionTypeNumber:   "Whole Number",
	QuestionTypeDecimal:  "Decimal Number",
	QuestionTypeCurrency: "Currency",
	QuestionTypeDate:     "Date Only",
	QuestionTypeDatetime: "Date and Time",
	QuestionTypeBoolean:  "Yes/No",
	QuestionTypeFile:     "File Upload",
	QuestionTypeImage:    "Image Upload",
	QuestionTypeTicker:   "Ticker Symbol",
	QuestionTypeTable:    "Table",
}

// IsValid reports whether t is one of the known question types.
func (t QuestionType) IsValid() bool {
	_, ok := QuestionTypeLabels[t]
	return ok
}

// QuestionValidation is an optional validation config carried on a
// question. The authoring core stores and round-trips it but never
// executes it.
type QuestionValidation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
}

// Question represents a single question within a section.
type Question struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	Type            QuestionType        `json:"type"`
	Options         []string            `json:"options,omitempty"`
	Required        bool                `json:"required"`
	Placeholder     string              `json:"placeholder,omitempty"`
	Validation      *QuestionValidation `json:"validation,omitempty"`
	BulletPoints    []string            `json:"bullet_points,omitempty"`
	FacilityNumber  string              `json:"facility_number,omitempty"`
	Order           int                 `json:"order"`
	Hidden          bool                `json:"hidden"`
	TableColumns    []string            `json:"table_columns,omitempty"`
	TableRowHeaders []string            `json:"table_row_headers,omitempty"`
	TableRows       [][]string          `json:"table_rows,omitempty"`
}

// CreateQuestionRequest is the payload for adding a question to a section.
type CreateQuestionRequest struct {
	Title           string              `json:"title" binding:"required,min=1,max=500"`
	Description     string              `json:"description" binding:"omitempty,max=2000"`
	Type            string              `json:"type" binding:"required,oneof=text textarea email url phone richtext choice choices number decimal currency date datetime boolean file image ticker table"`
	Options         []string            `json:"options" binding:"omitempty,dive,max=500"`
	Required        bool                `json:"required"`
	Placeholder     string              `json:"placeholder" binding:"omitempty,max=500"`
	Validation      *QuestionValidation `json:"validation" binding:"omitempty"`
	BulletPoints    []string            `json:"bullet_points" binding:"omitempty,dive,max=1000"`
	FacilityNumber  string              `json:"facility_number" binding:"omitempty,max=100"`
	Hidden          bool                `json:"hidden"`
	TableColumns    []string            `json:"table_columns" binding:"omitempty,dive,max=200"`
	TableRowHeaders []string            `json:"table_row_headers" binding:"omitempty,dive,max=200"`
	TableRows       [][]string          `json:"table_rows" binding:"omitempty"`
}

// UpdateQuestionRequest is the payload for partially updating a question.
// Pointer fields distinguish "not provided" from zero values.
type UpdateQuestionRequest struct {
	Title           *string             `json:"title" binding:"omitempty,min=1,max=500"`
	Description     *string             `json:"description" binding:"omitempty,max=2000"`
	Type            *string             `json:"type" binding:"omitempty,oneof=text textarea email url phone richtext choice choices number decimal currency date datetime boolean file image ticker table"`
	Options         *[]string           `json:"options" binding:"omitempty,dive,max=500"`
	Required        *bool               `json:"required"`
	Placeholder     *string             `json:"placeholder" binding:"omitempty,max=500"`
	Validation      *QuestionValidation `json:"validation" binding:"omitempty"`
	BulletPoints    *[]string           `json:"bullet_points" binding:"omitempty,dive,max=1000"`
	FacilityNumber  *string             `json:"facility_number" binding:"omitempty,max=100"`
	Hidden          *bool               `json:"hidden"`
	TableColumns    *[]string           `json:"table_columns" binding:"omitempty,dive,max=200"`
	TableRowHeaders *[]string           `json:"table_row_headers" binding:"omitempty,dive,max=200"`
	TableRows       *[][]string         `json:"table_rows" binding:"omitempty"`
	Order           *int                `json:"order" binding:"omitempty,min=1"`
}

// ReorderQuestionsRequest is the payload for reordering a section's questions.
type ReorderQuestionsRequest struct {
	QuestionIDs []uuid.UUID `json:"question_ids" binding:"required,min=1"`
}
