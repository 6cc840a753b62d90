package service

import (
	"github.com/google/uuid"

	"github.com/formcraft/formcraft-backend/internal/model"
	"github.com/formcraft/formcraft-backend/internal/repository"
)

// HeaderFooterService handles reusable header/footer snippet logic.
type HeaderFooterService struct {
	headerFooterRepo *repository.HeaderFooterRepository
}

// NewHeaderFooterService creates a new HeaderFooterService.
func NewHeaderFooterService(headerFooterRepo *repository.HeaderFooterRepository) *HeaderFooterService {
	return &HeaderFooterService{headerFooterRepo: headerFooterRepo}
}

// List retrieves all snippets of the given type.
func (s *HeaderFooterService) List(t model.HeaderFooterType) []model.HeaderFooter {
	return s.headerFooterRepo.List(t)
}

// Get retrieves a specific snippet.
func (s *HeaderFooterService) Get(t model.HeaderFooterType, id uuid.UUID) (model.HeaderFooter, bool) {
	return s.headerFooterRepo.Get(t, id)
}

// Create adds a new snippet of the given type.
func (s *HeaderFooterService) Create(t model.HeaderFooterType, req model.CreateHeaderFooterRequest) model.HeaderFooter {
	return s.headerFooterRepo.Create(t, req.Name, req.Content)
}

// Update partially updates a snippet.
func (s *HeaderFooterService) Update(t model.HeaderFooterType, id uuid.UUID, req model.UpdateHeaderFooterRequest) (model.HeaderFooter, bool) {
	return s.headerFooterRepo.Update(t, id, req)
}

// Delete removes a snippet. References from questionnaires are weak and
// are deliberately not cleared.
func (s *HeaderFooterService) Delete(t model.HeaderFooterType, id uuid.UUID) bool {
	return s.headerFooterRepo.Delete(t, id)
}
