package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/formcraft/formcraft-backend/internal/model"
	"github.com/formcraft/formcraft-backend/internal/repository"
	"github.com/formcraft/formcraft-backend/internal/response"
)

// QuestionnaireService assembles questionnaires from library sections and
// header/footer references. It reads the library and header/footer
// stores but never mutates them: sections are copied in as frozen
// snapshots that evolve independently of their source, and header/footer
// linkage is by id only.
type QuestionnaireService struct {
	questionnaireRepo *repository.QuestionnaireRepository
	libraryRepo       *repository.LibraryRepository
	headerFooterRepo  *repository.HeaderFooterRepository
	log               zerolog.Logger
}

// NewQuestionnaireService creates a new QuestionnaireService.
func NewQuestionnaireService(
	questionnaireRepo *repository.QuestionnaireRepository,
	libraryRepo *repository.LibraryRepository,
	headerFooterRepo *repository.HeaderFooterRepository,
	log zerolog.Logger,
) *QuestionnaireService {
	return &QuestionnaireService{
		questionnaireRepo: questionnaireRepo,
		libraryRepo:       libraryRepo,
		headerFooterRepo:  headerFooterRepo,
		log:               log.With().Str("component", "questionnaire_service").Logger(),
	}
}

// ResolvedQuestionnaire is a questionnaire with its header/footer
// references resolved for display. A dangling reference keeps its id but
// resolves to nil; deleting a snippet never rewrites questionnaires.
type ResolvedQuestionnaire struct {
	model.Questionnaire
	Header *model.HeaderFooter `json:"header,omitempty"`
	Footer *model.HeaderFooter `json:"footer,omitempty"`
}

// List retrieves questionnaires with pagination, optional title search,
// and optional status filter.
func (s *QuestionnaireService) List(page, perPage int, search, status string) ([]model.Questionnaire, *response.Pagination) {
	page, perPage = clampPage(page, perPage)

	all := s.questionnaireRepo.List()
	filtered := make([]model.Questionnaire, 0, len(all))
	needle := strings.ToLower(search)
	for _, q := range all {
		if status != "" && string(q.Status) != status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(q.Title), needle) {
			continue
		}
		filtered = append(filtered, q)
	}

	items, pagination := paginate(filtered, page, perPage)
	return items, pagination
}

// Get retrieves a questionnaire with header/footer resolution.
func (s *QuestionnaireService) Get(id uuid.UUID) (ResolvedQuestionnaire, bool) {
	q, ok := s.questionnaireRepo.Get(id)
	if !ok {
		return ResolvedQuestionnaire{}, false
	}
	return s.resolve(q), true
}

func (s *QuestionnaireService) resolve(q model.Questionnaire) ResolvedQuestionnaire {
	out := ResolvedQuestionnaire{Questionnaire: q}
	if q.HeaderID != nil {
		if hf, ok := s.headerFooterRepo.Get(model.HeaderFooterTypeHeader, *q.HeaderID); ok {
			out.Header = &hf
		}
	}
	if q.FooterID != nil {
		if hf, ok := s.headerFooterRepo.Get(model.HeaderFooterTypeFooter, *q.FooterID); ok {
			out.Footer = &hf
		}
	}
	return out
}

// Create builds a new questionnaire with no sections.
func (s *QuestionnaireService) Create(req model.CreateQuestionnaireRequest) model.Questionnaire {
	status := model.QuestionnaireStatus(req.Status)
	if status == "" {
		status = model.QuestionnaireStatusDraft
	}
	now := time.Now().UTC()
	q := model.Questionnaire{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		HeaderID:    req.HeaderID,
		FooterID:    req.FooterID,
		Sections:    []model.Section{},
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.questionnaireRepo.Insert(q)
	return q
}

// Update partially updates a questionnaire's own fields.
func (s *QuestionnaireService) Update(id uuid.UUID, req model.UpdateQuestionnaireRequest) (model.Questionnaire, bool) {
	q, ok := s.questionnaireRepo.Get(id)
	if !ok {
		return model.Questionnaire{}, false
	}
	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.Description != nil {
		q.Description = *req.Description
	}
	if req.ClearHeader {
		q.HeaderID = nil
	} else if req.HeaderID != nil {
		q.HeaderID = req.HeaderID
	}
	if req.ClearFooter {
		q.FooterID = nil
	} else if req.FooterID != nil {
		q.FooterID = req.FooterID
	}
	q.UpdatedAt = time.Now().UTC()
	s.questionnaireRepo.Replace(q)
	return q, true
}

// Delete removes a questionnaire.
func (s *QuestionnaireService) Delete(id uuid.UUID) bool {
	return s.questionnaireRepo.Delete(id)
}

// Duplicate deep-copies a questionnaire: new id and timestamps, title
// suffixed " (Copy)". Every copied section and question gets a fresh id
// so the two documents can never alias each other.
func (s *QuestionnaireService) Duplicate(id uuid.UUID) (model.Questionnaire, bool) {
	src, ok := s.questionnaireRepo.Get(id)
	if !ok {
		return model.Questionnaire{}, false
	}
	now := time.Now().UTC()
	dup := src
	dup.ID = uuid.New()
	dup.Title = src.Title + " (Copy)"
	dup.CreatedAt = now
	dup.UpdatedAt = now
	dup.Sections = make([]model.Section, len(src.Sections))
	for i, sec := range src.Sections {
		fresh := model.FreshSectionCopy(sec)
		fresh.Order = sec.Order
		dup.Sections[i] = fresh
	}
	s.questionnaireRepo.Insert(dup)
	return dup, true
}

// AddSectionsFromLibrary copies the named library sections into a
// questionnaire. Each section id is resolved across all libraries,
// first match wins; unknown ids are skipped. Copies get fresh section
// and question ids, questions renumbered 1..N, and the section order
// continues after the questionnaire's highest existing order.
func (s *QuestionnaireService) AddSectionsFromLibrary(id uuid.UUID, sectionIDs []uuid.UUID) (model.Questionnaire, bool) {
	q, ok := s.questionnaireRepo.Get(id)
	if !ok {
		return model.Questionnaire{}, false
	}

	libraries := s.libraryRepo.List()
	next := maxSectionOrder(q.Sections) + 1

	for _, sectionID := range sectionIDs {
		src, found := findLibrarySection(libraries, sectionID)
		if !found {
			s.log.Debug().Str("section_id", sectionID.String()).Msg("Section not found in any library, skipping")
			continue
		}
		clone := model.FreshSectionCopy(src)
		clone.Order = next
		next++
		q.Sections = append(q.Sections, clone)
	}

	q.UpdatedAt = time.Now().UTC()
	s.questionnaireRepo.Replace(q)
	return q, true
}

// AddSection appends a custom (non-library) section to a questionnaire.
func (s *QuestionnaireService) AddSection(id uuid.UUID, req model.CreateSectionRequest) (model.Section, bool) {
	q, ok := s.questionnaireRepo.Get(id)
	if !ok {
		return model.Section{}, false
	}
	sec := model.Section{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Questions:   []model.Question{},
		Order:       maxSectionOrder(q.Sections) + 1,
		Hidden:      req.Hidden,
	}
	q.Sections = append(q.Sections, sec)
	q.UpdatedAt = time.Now().UTC()
	s.questionnaireRepo.Replace(q)
	return sec, true
}

// SetStatus changes the lifecycle status. All transitions between draft,
// published, and archived are permitted.
func (s *QuestionnaireService) SetStatus(id uuid.UUID, status model.QuestionnaireStatus) (model.Questionnaire, bool) {
	q, ok := s.questionnaireRepo.Get(id)
	if !ok {
		return model.Questionnaire{}, false
	}
	q.Status = status
	q.UpdatedAt = time.Now().UTC()
	s.questionnaireRepo.Replace(q)
	return q, true
}

func maxSectionOrder(sections []model.Section) int {
	max := 0
	for _, sec := range sections {
		if sec.Order > max {
			max = sec.Order
		}
	}
	return max
}

func findLibrarySection(libraries []model.QuestionLibrary, id uuid.UUID) (model.Section, bool) {
	for _, lib := range libraries {
		for _, sec := range lib.Sections {
			if sec.ID == id {
				return sec, true
			}
		}
	}
	return model.Section{}, false
}
