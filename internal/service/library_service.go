package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/formcraft/formcraft-backend/internal/model"
	"github.com/formcraft/formcraft-backend/internal/repository"
	"github.com/formcraft/formcraft-backend/internal/response"
)

// LibraryService handles question library business logic. The ordering
// and copy semantics live in the repository; this layer adds list
// pagination/search and request-to-entity mapping.
type LibraryService struct {
	libraryRepo *repository.LibraryRepository
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(libraryRepo *repository.LibraryRepository) *LibraryService {
	return &LibraryService{libraryRepo: libraryRepo}
}

// ListLibraries retrieves libraries with pagination and optional
// case-insensitive name/description search.
func (s *LibraryService) ListLibraries(page, perPage int, search string) ([]model.QuestionLibrary, *response.Pagination) {
	page, perPage = clampPage(page, perPage)

	all := s.libraryRepo.List()
	if search != "" {
		needle := strings.ToLower(search)
		filtered := make([]model.QuestionLibrary, 0, len(all))
		for _, lib := range all {
			if strings.Contains(strings.ToLower(lib.Name), needle) ||
				strings.Contains(strings.ToLower(lib.Description), needle) {
				filtered = append(filtered, lib)
			}
		}
		all = filtered
	}

	items, pagination := paginate(all, page, perPage)
	return items, pagination
}

// GetLibrary retrieves a specific library.
func (s *LibraryService) GetLibrary(id uuid.UUID) (model.QuestionLibrary, bool) {
	return s.libraryRepo.Get(id)
}

// CreateLibrary creates a new, empty library.
func (s *LibraryService) CreateLibrary(req model.CreateLibraryRequest) model.QuestionLibrary {
	return s.libraryRepo.Create(req.Name, req.Description)
}

// UpdateLibrary partially updates a library.
func (s *LibraryService) UpdateLibrary(id uuid.UUID, req model.UpdateLibraryRequest) (model.QuestionLibrary, bool) {
	return s.libraryRepo.Update(id, req)
}

// DeleteLibrary removes a library, cascading to its sections and questions.
func (s *LibraryService) DeleteLibrary(id uuid.UUID) bool {
	return s.libraryRepo.Delete(id)
}

// CurrentLibrary returns the active library selection, if any.
func (s *LibraryService) CurrentLibrary() (model.QuestionLibrary, bool) {
	return s.libraryRepo.Current()
}

// SetCurrentLibrary selects or clears the active library.
func (s *LibraryService) SetCurrentLibrary(id *uuid.UUID) bool {
	return s.libraryRepo.SetCurrent(id)
}

// AddSection appends a new section to a library.
func (s *LibraryService) AddSection(libraryID uuid.UUID, req model.CreateSectionRequest) (model.Section, bool) {
	return s.libraryRepo.AddSection(libraryID, req)
}

// UpdateSection partially updates a section.
func (s *LibraryService) UpdateSection(libraryID, sectionID uuid.UUID, req model.UpdateSectionRequest) (model.Section, bool) {
	return s.libraryRepo.UpdateSection(libraryID, sectionID, req)
}

// DeleteSection removes a section and its questions.
func (s *LibraryService) DeleteSection(libraryID, sectionID uuid.UUID) bool {
	return s.libraryRepo.DeleteSection(libraryID, sectionID)
}

// CopySection duplicates a section within its library.
func (s *LibraryService) CopySection(libraryID, sectionID uuid.UUID) (model.Section, bool) {
	return s.libraryRepo.CopySection(libraryID, sectionID)
}

// ReorderSections applies a new section order to a library.
func (s *LibraryService) ReorderSections(libraryID uuid.UUID, sectionIDs []uuid.UUID) ([]model.Section, bool) {
	return s.libraryRepo.ReorderSections(libraryID, sectionIDs)
}

// AddQuestion appends a question to a section.
func (s *LibraryService) AddQuestion(libraryID, sectionID uuid.UUID, req model.CreateQuestionRequest) (model.Question, bool) {
	q := model.Question{
		Title:           req.Title,
		Description:     req.Description,
		Type:            model.QuestionType(req.Type),
		Options:         req.Options,
		Required:        req.Required,
		Placeholder:     req.Placeholder,
		Validation:      req.Validation,
		BulletPoints:    req.BulletPoints,
		FacilityNumber:  req.FacilityNumber,
		Hidden:          req.Hidden,
		TableColumns:    req.TableColumns,
		TableRowHeaders: req.TableRowHeaders,
		TableRows:       req.TableRows,
	}
	return s.libraryRepo.AddQuestion(libraryID, sectionID, q)
}

// UpdateQuestion partially updates a question.
func (s *LibraryService) UpdateQuestion(libraryID, sectionID, questionID uuid.UUID, req model.UpdateQuestionRequest) (model.Question, bool) {
	return s.libraryRepo.UpdateQuestion(libraryID, sectionID, questionID, req)
}

// DeleteQuestion removes a question.
func (s *LibraryService) DeleteQuestion(libraryID, sectionID, questionID uuid.UUID) bool {
	return s.libraryRepo.DeleteQuestion(libraryID, sectionID, questionID)
}

// CopyQuestion duplicates a question within its section.
func (s *LibraryService) CopyQuestion(libraryID, sectionID, questionID uuid.UUID) (model.Question, bool) {
	return s.libraryRepo.CopyQuestion(libraryID, sectionID, questionID)
}

// ReorderQuestions applies a new question order within a section.
func (s *LibraryService) ReorderQuestions(libraryID, sectionID uuid.UUID, questionIDs []uuid.UUID) ([]model.Question, bool) {
	return s.libraryRepo.ReorderQuestions(libraryID, sectionID, questionIDs)
}
