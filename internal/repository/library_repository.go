package repository

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/formcraft/formcraft-backend/internal/model"
)

// LibrarySlot is the snapshot slot name for the question library store.
const LibrarySlot = "question-library-store"

// librarySnapshotVersion guards the persisted schema. A payload carrying
// a different version is discarded and the store starts empty.
const librarySnapshotVersion = 1

// librarySnapshot is the serialized full state of the library store.
type librarySnapshot struct {
	Version          int                     `json:"version"`
	Libraries        []model.QuestionLibrary `json:"libraries"`
	CurrentLibraryID *uuid.UUID              `json:"current_library_id,omitempty"`
}

// LibraryRepository is the single source of truth for question libraries
// and the current-library selection. State lives in memory; after every
// mutation the full state is handed to the snapshot sink (write-through,
// fire-and-forget). Lookups of missing ids are silent no-ops: the bool
// return reports whether an effect occurred, nothing errors or panics.
type LibraryRepository struct {
	mu        sync.RWMutex
	libraries []model.QuestionLibrary
	currentID *uuid.UUID
	sink      SnapshotSink
	log       zerolog.Logger
}

// NewLibraryRepository creates an empty LibraryRepository.
func NewLibraryRepository(sink SnapshotSink, log zerolog.Logger) *LibraryRepository {
	return &LibraryRepository{
		libraries: []model.QuestionLibrary{},
		sink:      sink,
		log:       log.With().Str("component", "library_repository").Logger(),
	}
}

// Rehydrate restores state from a persisted snapshot payload. Absent,
// malformed, or version-mismatched payloads leave the store empty.
func (r *LibraryRepository) Rehydrate(payload []byte) {
	if len(payload) == 0 {
		return
	}
	var snap librarySnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		r.log.Warn().Err(err).Msg("Discarding malformed library snapshot")
		return
	}
	if snap.Version != librarySnapshotVersion {
		r.log.Warn().
			Int("found", snap.Version).
			Int("want", librarySnapshotVersion).
			Msg("Discarding library snapshot with incompatible version")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.libraries = snap.Libraries
	if r.libraries == nil {
		r.libraries = []model.QuestionLibrary{}
	}
	r.currentID = snap.CurrentLibraryID
}

// persist serializes the full state and hands it to the sink.
// Must be called with the write lock held.
func (r *LibraryRepository) persist() {
	snap := librarySnapshot{
		Version:          librarySnapshotVersion,
		Libraries:        r.libraries,
		CurrentLibraryID: r.currentID,
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		r.log.Error().Err(err).Msg("Marshal library snapshot failed")
		return
	}
	r.sink.Persist(LibrarySlot, librarySnapshotVersion, payload)
}

// ────────────────────────────────────────────────────────────────────────────
// Libraries
// ────────────────────────────────────────────────────────────────────────────

// List returns deep copies of all libraries in insertion order.
func (r *LibraryRepository) List() []model.QuestionLibrary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.QuestionLibrary, len(r.libraries))
	for i, lib := range r.libraries {
		out[i] = cloneLibrary(lib)
	}
	return out
}

// Get returns a deep copy of the library with the given id.
func (r *LibraryRepository) Get(id uuid.UUID) (model.QuestionLibrary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, lib := range r.libraries {
		if lib.ID == id {
			return cloneLibrary(lib), true
		}
	}
	return model.QuestionLibrary{}, false
}

// Create appends a new library with a generated id and fresh timestamps.
// Libraries always start with an empty section list.
func (r *LibraryRepository) Create(name, description string) model.QuestionLibrary {
	now := time.Now().UTC()
	lib := model.QuestionLibrary{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Sections:    []model.Section{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.libraries = append(r.libraries, lib)
	r.persist()
	return cloneLibrary(lib)
}

// Update merges the provided fields into the matching library and bumps
// its updatedAt. No-op if the id is not found.
func (r *LibraryRepository) Update(id uuid.UUID, req model.UpdateLibraryRequest) (model.QuestionLibrary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := r.findLibrary(id)
	if lib == nil {
		return model.QuestionLibrary{}, false
	}
	if req.Name != nil {
		lib.Name = *req.Name
	}
	if req.Description != nil {
		lib.Description = *req.Description
	}
	lib.UpdatedAt = time.Now().UTC()
	r.persist()
	return cloneLibrary(*lib), true
}

// Delete removes a library and everything it owns. Clears the current
// selection if it pointed at the removed library.
func (r *LibraryRepository) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, lib := range r.libraries {
		if lib.ID == id {
			r.libraries = append(r.libraries[:i], r.libraries[i+1:]...)
			if r.currentID != nil && *r.currentID == id {
				r.currentID = nil
			}
			r.persist()
			return true
		}
	}
	return false
}

// SetCurrent selects the active library, or clears the selection when id
// is nil. Selecting an unknown id is a no-op.
func (r *LibraryRepository) SetCurrent(id *uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == nil {
		r.currentID = nil
		r.persist()
		return true
	}
	if r.findLibrary(*id) == nil {
		return false
	}
	cur := *id
	r.currentID = &cur
	r.persist()
	return true
}

// Current returns the currently selected library, if any.
func (r *LibraryRepository) Current() (model.QuestionLibrary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.currentID == nil {
		return model.QuestionLibrary{}, false
	}
	for _, lib := range r.libraries {
		if lib.ID == *r.currentID {
			return cloneLibrary(lib), true
		}
	}
	return model.QuestionLibrary{}, false
}

// ────────────────────────────────────────────────────────────────────────────
// Sections
// ────────────────────────────────────────────────────────────────────────────

// AddSection appends a new empty section to a library. Its order is one
// past the highest existing order in the library (1 on an empty library).
func (r *LibraryRepository) AddSection(libraryID uuid.UUID, req model.CreateSectionRequest) (model.Section, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := r.findLibrary(libraryID)
	if lib == nil {
		return model.Section{}, false
	}
	sec := model.Section{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Questions:   []model.Question{},
		Order:       maxSectionOrder(lib.Sections) + 1,
		Hidden:      req.Hidden,
	}
	lib.Sections = append(lib.Sections, sec)
	lib.UpdatedAt = time.Now().UTC()
	r.persist()
	return model.CloneSection(sec), true
}

// UpdateSection merges the provided fields into the matching section.
// Order is only reassigned when explicitly provided.
func (r *LibraryRepository) UpdateSection(libraryID, sectionID uuid.UUID, req model.UpdateSectionRequest) (model.Section, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := r.findLibrary(libraryID)
	if lib == nil {
		return model.Section{}, false
	}
	sec := findSection(lib, sectionID)
	if sec == nil {
		return model.Section{}, false
	}
	if req.Title != nil {
		sec.Title = *req.Title
	}
	if req.Description != nil {
		sec.Description = *req.Description
	}
	if req.Hidden != nil {
		sec.Hidden = *req.Hidden
	}
	if req.Order != nil {
		sec.Order = *req.Order
	}
	lib.UpdatedAt = time.Now().UTC()
	r.persist()
	return model.CloneSection(*sec), true
}

// DeleteSection removes a section and all of its questions.
func (r *LibraryRepository) DeleteSection(libraryID, sectionID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := r.findLibrary(libraryID)
	if lib == nil {
		return false
	}
	for i, sec := range lib.Sections {
		if sec.ID == sectionID {
			lib.Sections = append(lib.Sections[:i], lib.Sections[i+1:]...)
			lib.UpdatedAt = time.Now().UTC()
			r.persist()
			return true
		}
	}
	return false
}

// CopySection deep-clones a section within its library. The copy gets a
// new id, a " (Copy)" title suffix, and order max+1; every cloned
// question gets a new id and is renumbered 1..N in original order.
func (r *LibraryRepository) CopySection(libraryID, sectionID uuid.UUID) (model.Section, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := r.findLibrary(libraryID)
	if lib == nil {
		return model.Section{}, false
	}
	src := findSection(lib, sectionID)
	if src == nil {
		return model.Section{}, false
	}
	dup := model.FreshSectionCopy(*src)
	dup.Title = src.Title + " (Copy)"
	dup.Order = maxSectionOrder(lib.Sections) + 1
	lib.Sections = append(lib.Sections, dup)
	lib.UpdatedAt = time.Now().UTC()
	r.persist()
	return model.CloneSection(dup), true
}

// ReorderSections reassigns each section's order to its 1-based position
// in the supplied id sequence. Ids not present in the library are
// skipped; sections missing from the sequence are dropped (the caller is
// expected to pass a full permutation).
func (r *LibraryRepository) ReorderSections(libraryID uuid.UUID, sectionIDs []uuid.UUID) ([]model.Section, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := r.findLibrary(libraryID)
	if lib == nil {
		return nil, false
	}
	reordered := make([]model.Section, 0, len(lib.Sections))
	for _, id := range sectionIDs {
		if sec := findSection(lib, id); sec != nil {
			s := *sec
			s.Order = len(reordered) + 1
			reordered = append(reordered, s)
		}
	}
	lib.Sections = reordered
	lib.UpdatedAt = time.Now().UTC()
	r.persist()

	out := make([]model.Section, len(reordered))
	for i, sec := range reordered {
		out[i] = model.CloneSection(sec)
	}
	return out, true
}

// ────────────────────────────────────────────────────────────────────────────
// Questions
// ────────────────────────────────────────────────────────────────────────────

// AddQuestion appends a question to a section. The repository assigns the
// id and the order (max existing + 1); all other fields come from q.
func (r *LibraryRepository) AddQuestion(libraryID, sectionID uuid.UUID, q model.Question) (model.Question, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := r.findLibrary(libraryID)
	if lib == nil {
		return model.Question{}, false
	}
	sec := findSection(lib, sectionID)
	if sec == nil {
		return model.Question{}, false
	}
	q = model.CloneQuestion(q)
	q.ID = uuid.New()
	q.Order = maxQuestionOrder(sec.Questions) + 1
	sec.Questions = append(sec.Questions, q)
	lib.UpdatedAt = time.Now().UTC()
	r.persist()
	return model.CloneQuestion(q), true
}

// UpdateQuestion merges the provided fields onto the matching question.
func (r *LibraryRepository) UpdateQuestion(libraryID, sectionID, questionID uuid.UUID, req model.UpdateQuestionRequest) (model.Question, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := r.findLibrary(libraryID)
	if lib == nil {
		return model.Question{}, false
	}
	sec := findSection(lib, sectionID)
	if sec == nil {
		return model.Question{}, false
	}
	q := findQuestion(sec, questionID)
	if q == nil {
		return model.Question{}, false
	}
	applyQuestionUpdate(q, req)
	lib.UpdatedAt = time.Now().UTC()
	r.persist()
	return model.CloneQuestion(*q), true
}

// DeleteQuestion removes a question from its section.
func (r *LibraryRepository) DeleteQuestion(libraryID, sectionID, questionID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := r.findLibrary(libraryID)
	if lib == nil {
		return false
	}
	sec := findSection(lib, sectionID)
	if sec == nil {
		return false
	}
	for i, q := range sec.Questions {
		if q.ID == questionID {
			sec.Questions = append(sec.Questions[:i], sec.Questions[i+1:]...)
			lib.UpdatedAt = time.Now().UTC()
			r.persist()
			return true
		}
	}
	return false
}

// CopyQuestion clones a question within its section: new id, " (Copy)"
// title suffix, order max+1. All other fields are copied verbatim,
// table contents included.
func (r *LibraryRepository) CopyQuestion(libraryID, sectionID, questionID uuid.UUID) (model.Question, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := r.findLibrary(libraryID)
	if lib == nil {
		return model.Question{}, false
	}
	sec := findSection(lib, sectionID)
	if sec == nil {
		return model.Question{}, false
	}
	src := findQuestion(sec, questionID)
	if src == nil {
		return model.Question{}, false
	}
	dup := model.CloneQuestion(*src)
	dup.ID = uuid.New()
	dup.Title = src.Title + " (Copy)"
	dup.Order = maxQuestionOrder(sec.Questions) + 1
	sec.Questions = append(sec.Questions, dup)
	lib.UpdatedAt = time.Now().UTC()
	r.persist()
	return model.CloneQuestion(dup), true
}

// ReorderQuestions reassigns each question's order to its 1-based
// position in the supplied id sequence, scoped to one section. Question
// count and ids never change through a reorder of a full permutation.
func (r *LibraryRepository) ReorderQuestions(libraryID, sectionID uuid.UUID, questionIDs []uuid.UUID) ([]model.Question, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := r.findLibrary(libraryID)
	if lib == nil {
		return nil, false
	}
	sec := findSection(lib, sectionID)
	if sec == nil {
		return nil, false
	}
	reordered := make([]model.Question, 0, len(sec.Questions))
	for _, id := range questionIDs {
		if q := findQuestion(sec, id); q != nil {
			nq := *q
			nq.Order = len(reordered) + 1
			reordered = append(reordered, nq)
		}
	}
	sec.Questions = reordered
	lib.UpdatedAt = time.Now().UTC()
	r.persist()

	out := make([]model.Question, len(reordered))
	for i, q := range reordered {
		out[i] = model.CloneQuestion(q)
	}
	return out, true
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

func (r *LibraryRepository) findLibrary(id uuid.UUID) *model.QuestionLibrary {
	for i := range r.libraries {
		if r.libraries[i].ID == id {
			return &r.libraries[i]
		}
	}
	return nil
}

func findSection(lib *model.QuestionLibrary, id uuid.UUID) *model.Section {
	for i := range lib.Sections {
		if lib.Sections[i].ID == id {
			return &lib.Sections[i]
		}
	}
	return nil
}

func findQuestion(sec *model.Section, id uuid.UUID) *model.Question {
	for i := range sec.Questions {
		if sec.Questions[i].ID == id {
			return &sec.Questions[i]
		}
	}
	return nil
}

func maxSectionOrder(sections []model.Section) int {
	max := 0
	for _, s := range sections {
		if s.Order > max {
			max = s.Order
		}
	}
	return max
}

func maxQuestionOrder(questions []model.Question) int {
	max := 0
	for _, q := range questions {
		if q.Order > max {
			max = q.Order
		}
	}
	return max
}

func applyQuestionUpdate(q *model.Question, req model.UpdateQuestionRequest) {
	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.Description != nil {
		q.Description = *req.Description
	}
	if req.Type != nil {
		q.Type = model.QuestionType(*req.Type)
	}
	if req.Options != nil {
		q.Options = *req.Options
	}
	if req.Required != nil {
		q.Required = *req.Required
	}
	if req.Placeholder != nil {
		q.Placeholder = *req.Placeholder
	}
	if req.Validation != nil {
		q.Validation = req.Validation
	}
	if req.BulletPoints != nil {
		q.BulletPoints = *req.BulletPoints
	}
	if req.FacilityNumber != nil {
		q.FacilityNumber = *req.FacilityNumber
	}
	if req.Hidden != nil {
		q.Hidden = *req.Hidden
	}
	if req.TableColumns != nil {
		q.TableColumns = *req.TableColumns
	}
	if req.TableRowHeaders != nil {
		q.TableRowHeaders = *req.TableRowHeaders
	}
	if req.TableRows != nil {
		q.TableRows = *req.TableRows
	}
	if req.Order != nil {
		q.Order = *req.Order
	}
}

func cloneLibrary(lib model.QuestionLibrary) model.QuestionLibrary {
	out := lib
	out.Sections = make([]model.Section, len(lib.Sections))
	for i, s := range lib.Sections {
		out.Sections[i] = model.CloneSection(s)
	}
	return out
}
