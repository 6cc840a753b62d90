package repository

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/formcraft/formcraft-backend/internal/model"
)

// HeaderFooterSlot is the snapshot slot name for the header/footer store.
const HeaderFooterSlot = "header-footer-store"

const headerFooterSnapshotVersion = 1

type headerFooterSnapshot struct {
	Version int                  `json:"version"`
	Headers []model.HeaderFooter `json:"headers"`
	Footers []model.HeaderFooter `json:"footers"`
}

// HeaderFooterRepository owns the reusable header and footer snippets.
// Headers and footers live in separate collections but share one entity
// shape and operation set, so every method is keyed by the type tag.
// Same persistence discipline as the library store: in-memory state,
// write-through snapshot after every mutation.
type HeaderFooterRepository struct {
	mu      sync.RWMutex
	headers []model.HeaderFooter
	footers []model.HeaderFooter
	sink    SnapshotSink
	log     zerolog.Logger
}

// NewHeaderFooterRepository creates an empty HeaderFooterRepository.
func NewHeaderFooterRepository(sink SnapshotSink, log zerolog.Logger) *HeaderFooterRepository {
	return &HeaderFooterRepository{
		headers: []model.HeaderFooter{},
		footers: []model.HeaderFooter{},
		sink:    sink,
		log:     log.With().Str("component", "headerfooter_repository").Logger(),
	}
}

// Rehydrate restores state from a persisted snapshot payload. Absent,
// malformed, or version-mismatched payloads leave the store empty.
func (r *HeaderFooterRepository) Rehydrate(payload []byte) {
	if len(payload) == 0 {
		return
	}
	var snap headerFooterSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		r.log.Warn().Err(err).Msg("Discarding malformed header/footer snapshot")
		return
	}
	if snap.Version != headerFooterSnapshotVersion {
		r.log.Warn().
			Int("found", snap.Version).
			Int("want", headerFooterSnapshotVersion).
			Msg("Discarding header/footer snapshot with incompatible version")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.headers = snap.Headers
	r.footers = snap.Footers
	if r.headers == nil {
		r.headers = []model.HeaderFooter{}
	}
	if r.footers == nil {
		r.footers = []model.HeaderFooter{}
	}
}

// persist must be called with the write lock held.
func (r *HeaderFooterRepository) persist() {
	payload, err := json.Marshal(headerFooterSnapshot{
		Version: headerFooterSnapshotVersion,
		Headers: r.headers,
		Footers: r.footers,
	})
	if err != nil {
		r.log.Error().Err(err).Msg("Marshal header/footer snapshot failed")
		return
	}
	r.sink.Persist(HeaderFooterSlot, headerFooterSnapshotVersion, payload)
}

func (r *HeaderFooterRepository) collection(t model.HeaderFooterType) *[]model.HeaderFooter {
	if t == model.HeaderFooterTypeFooter {
		return &r.footers
	}
	return &r.headers
}

// List returns all snippets of the given type in insertion order.
func (r *HeaderFooterRepository) List(t model.HeaderFooterType) []model.HeaderFooter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := *r.collection(t)
	out := make([]model.HeaderFooter, len(src))
	copy(out, src)
	return out
}

// Get returns the snippet of the given type with the given id.
func (r *HeaderFooterRepository) Get(t model.HeaderFooterType, id uuid.UUID) (model.HeaderFooter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, hf := range *r.collection(t) {
		if hf.ID == id {
			return hf, true
		}
	}
	return model.HeaderFooter{}, false
}

// Create appends a new snippet with a generated id, the type tag, and
// both timestamps set to now.
func (r *HeaderFooterRepository) Create(t model.HeaderFooterType, name, content string) model.HeaderFooter {
	now := time.Now().UTC()
	hf := model.HeaderFooter{
		ID:        uuid.New(),
		Name:      name,
		Content:   content,
		Type:      t,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	col := r.collection(t)
	*col = append(*col, hf)
	r.persist()
	return hf
}

// Update merges the provided fields into the matching snippet and bumps
// its updatedAt. No-op if the id is not found.
func (r *HeaderFooterRepository) Update(t model.HeaderFooterType, id uuid.UUID, req model.UpdateHeaderFooterRequest) (model.HeaderFooter, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	col := r.collection(t)
	for i := range *col {
		if (*col)[i].ID == id {
			if req.Name != nil {
				(*col)[i].Name = *req.Name
			}
			if req.Content != nil {
				(*col)[i].Content = *req.Content
			}
			(*col)[i].UpdatedAt = time.Now().UTC()
			r.persist()
			return (*col)[i], true
		}
	}
	return model.HeaderFooter{}, false
}

// Delete removes the matching snippet. Questionnaires referencing it by
// id are left untouched; the reference simply dangles.
func (r *HeaderFooterRepository) Delete(t model.HeaderFooterType, id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	col := r.collection(t)
	for i, hf := range *col {
		if hf.ID == id {
			*col = append((*col)[:i], (*col)[i+1:]...)
			r.persist()
			return true
		}
	}
	return false
}
