package repository

import (
	"sync"

	"github.com/google/uuid"

	"github.com/formcraft/formcraft-backend/internal/model"
)

// QuestionnaireRepository holds assembled questionnaires. Unlike the
// library and header/footer stores this collection is session-scoped and
// never persisted: questionnaires are a frozen workspace built from
// point-in-time copies of library sections.
type QuestionnaireRepository struct {
	mu             sync.RWMutex
	questionnaires []model.Questionnaire
}

// NewQuestionnaireRepository creates an empty QuestionnaireRepository.
func NewQuestionnaireRepository() *QuestionnaireRepository {
	return &QuestionnaireRepository{questionnaires: []model.Questionnaire{}}
}

// List returns deep copies of all questionnaires in insertion order.
func (r *QuestionnaireRepository) List() []model.Questionnaire {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Questionnaire, len(r.questionnaires))
	for i, q := range r.questionnaires {
		out[i] = cloneQuestionnaire(q)
	}
	return out
}

// Get returns a deep copy of the questionnaire with the given id.
func (r *QuestionnaireRepository) Get(id uuid.UUID) (model.Questionnaire, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.questionnaires {
		if q.ID == id {
			return cloneQuestionnaire(q), true
		}
	}
	return model.Questionnaire{}, false
}

// Insert appends a fully built questionnaire.
func (r *QuestionnaireRepository) Insert(q model.Questionnaire) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questionnaires = append(r.questionnaires, cloneQuestionnaire(q))
}

// Replace swaps the stored questionnaire with the same id for q.
// No-op if the id is not found.
func (r *QuestionnaireRepository) Replace(q model.Questionnaire) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.questionnaires {
		if r.questionnaires[i].ID == q.ID {
			r.questionnaires[i] = cloneQuestionnaire(q)
			return true
		}
	}
	return false
}

// Delete removes the questionnaire with the given id.
func (r *QuestionnaireRepository) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, q := range r.questionnaires {
		if q.ID == id {
			r.questionnaires = append(r.questionnaires[:i], r.questionnaires[i+1:]...)
			return true
		}
	}
	return false
}

func cloneQuestionnaire(q model.Questionnaire) model.Questionnaire {
	out := q
	if q.HeaderID != nil {
		id := *q.HeaderID
		out.HeaderID = &id
	}
	if q.FooterID != nil {
		id := *q.FooterID
		out.FooterID = &id
	}
	out.Sections = make([]model.Section, len(q.Sections))
	for i, s := range q.Sections {
		out.Sections[i] = model.CloneSection(s)
	}
	return out
}
