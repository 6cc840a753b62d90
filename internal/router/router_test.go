package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/formcraft/formcraft-backend/internal/config"
	"github.com/formcraft/formcraft-backend/internal/handler"
	"github.com/formcraft/formcraft-backend/internal/model"
	"github.com/formcraft/formcraft-backend/internal/repository"
	"github.com/formcraft/formcraft-backend/internal/service"
	"github.com/formcraft/formcraft-backend/internal/validator"
)

type nopSink struct{}

func (nopSink) Persist(string, int, []byte) {}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	validator.Setup()

	cfg := &config.Config{
		GinMode:   gin.TestMode,
		UploadDir: t.TempDir(),
	}

	libraryRepo := repository.NewLibraryRepository(nopSink{}, zerolog.Nop())
	headerFooterRepo := repository.NewHeaderFooterRepository(nopSink{}, zerolog.Nop())
	questionnaireRepo := repository.NewQuestionnaireRepository()

	libraryService := service.NewLibraryService(libraryRepo)
	headerFooterService := service.NewHeaderFooterService(headerFooterRepo)
	questionnaireService := service.NewQuestionnaireService(questionnaireRepo, libraryRepo, headerFooterRepo, zerolog.Nop())
	mediaService := service.NewMediaService(cfg)

	handlers := &Handlers{
		Library:       handler.NewLibraryHandler(libraryService),
		Section:       handler.NewSectionHandler(libraryService),
		Question:      handler.NewQuestionHandler(libraryService),
		Header:        handler.NewHeaderFooterHandler(headerFooterService, model.HeaderFooterTypeHeader),
		Footer:        handler.NewHeaderFooterHandler(headerFooterService, model.HeaderFooterTypeFooter),
		Questionnaire: handler.NewQuestionnaireHandler(questionnaireService),
		Media:         handler.NewMediaHandler(mediaService),
		Meta:          handler.NewMetaHandler(),
	}

	return SetupRouter(handlers, cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("bad response body %q: %v", w.Body.String(), err)
	}
	return envelope.Data
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestQuestionTypeCatalogEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/question-types", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data := decodeData(t, w)
	types, ok := data["question_types"].([]interface{})
	if !ok || len(types) != 18 {
		t.Fatalf("expected 18 question types, got %v", data["question_types"])
	}
}

func TestLibraryLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	// Create a library.
	w := doJSON(t, r, http.MethodPost, "/api/v1/libraries", gin.H{"name": "Site Checks"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create library: %d %s", w.Code, w.Body.String())
	}
	lib := decodeData(t, w)["library"].(map[string]interface{})
	libID := lib["id"].(string)

	// Add a section and a question.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/libraries/%s/sections", libID), gin.H{"title": "Entrance"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create section: %d %s", w.Code, w.Body.String())
	}
	sec := decodeData(t, w)["section"].(map[string]interface{})
	secID := sec["id"].(string)

	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/libraries/%s/sections/%s/questions", libID, secID),
		gin.H{"title": "Door locked", "type": "boolean"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create question: %d %s", w.Code, w.Body.String())
	}
	q := decodeData(t, w)["question"].(map[string]interface{})
	if q["order"].(float64) != 1 {
		t.Fatalf("expected order 1, got %v", q["order"])
	}

	// Copy the section; the copy carries the question.
	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/libraries/%s/sections/%s/copy", libID, secID), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("copy section: %d %s", w.Code, w.Body.String())
	}
	dup := decodeData(t, w)["section"].(map[string]interface{})
	if dup["title"].(string) != "Entrance (Copy)" {
		t.Fatalf("copy title wrong: %v", dup["title"])
	}
	if dup["id"].(string) == secID {
		t.Fatal("copied section reused the id")
	}

	// Select it as current, then delete it: selection must clear.
	w = doJSON(t, r, http.MethodPut, "/api/v1/libraries/current", gin.H{"library_id": libID})
	if w.Code != http.StatusOK {
		t.Fatalf("set current: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodDelete, "/api/v1/libraries/"+libID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete library: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, "/api/v1/libraries/current", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get current: %d", w.Code)
	}
	if decodeData(t, w)["library"] != nil {
		t.Fatal("current selection survived library delete")
	}
}

func TestValidationErrorsReturnFieldMap(t *testing.T) {
	r := newTestRouter(t)

	// Missing required name.
	w := doJSON(t, r, http.MethodPost, "/api/v1/libraries", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var envelope struct {
		Error *struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Error == nil || len(envelope.Error.Fields) == 0 {
		t.Fatalf("expected field errors, got %s", w.Body.String())
	}
}

func TestUnknownIDsReturn404(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/libraries/91b1df13-3b1c-4f0f-9984-ab7c2a4f02a1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/libraries/not-a-uuid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
}

func TestQuestionnaireAssemblyOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	// Seed a library section with one question.
	w := doJSON(t, r, http.MethodPost, "/api/v1/libraries", gin.H{"name": "Lib"})
	libID := decodeData(t, w)["library"].(map[string]interface{})["id"].(string)
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/libraries/%s/sections", libID), gin.H{"title": "S1"})
	secID := decodeData(t, w)["section"].(map[string]interface{})["id"].(string)
	doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/libraries/%s/sections/%s/questions", libID, secID),
		gin.H{"title": "Q1", "type": "text"})

	// Create a questionnaire and pull the section in.
	w = doJSON(t, r, http.MethodPost, "/api/v1/questionnaires", gin.H{"title": "Audit"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create questionnaire: %d %s", w.Code, w.Body.String())
	}
	qnID := decodeData(t, w)["questionnaire"].(map[string]interface{})["id"].(string)

	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/questionnaires/%s/sections/from-library", qnID),
		gin.H{"section_ids": []string{secID}})
	if w.Code != http.StatusOK {
		t.Fatalf("from-library: %d %s", w.Code, w.Body.String())
	}
	qn := decodeData(t, w)["questionnaire"].(map[string]interface{})
	sections := qn["sections"].([]interface{})
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].(map[string]interface{})["id"].(string) == secID {
		t.Fatal("questionnaire section aliases the library section")
	}

	// Publish it.
	w = doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/v1/questionnaires/%s/status", qnID),
		gin.H{"status": "published"})
	if w.Code != http.StatusOK {
		t.Fatalf("publish: %d %s", w.Code, w.Body.String())
	}
	got := decodeData(t, w)["questionnaire"].(map[string]interface{})
	if got["status"].(string) != "published" {
		t.Fatalf("status not updated: %v", got["status"])
	}
}

func TestHeaderAndFooterGroupsAreIsolated(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/headers", gin.H{"name": "Letterhead", "content": "<h1>Acme</h1>"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create header: %d %s", w.Code, w.Body.String())
	}
	headerID := decodeData(t, w)["header"].(map[string]interface{})["id"].(string)

	// The header id does not exist in the footer namespace.
	w = doJSON(t, r, http.MethodGet, "/api/v1/footers/"+headerID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 across namespaces, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/headers/"+headerID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get header: %d", w.Code)
	}
}
