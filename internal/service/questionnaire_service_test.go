package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/formcraft/formcraft-backend/internal/model"
	"github.com/formcraft/formcraft-backend/internal/repository"
)

// nopSink discards snapshot payloads; persistence is covered by the
// repository tests.
type nopSink struct{}

func (nopSink) Persist(string, int, []byte) {}

type questionnaireFixture struct {
	svc          *QuestionnaireService
	libraryRepo  *repository.LibraryRepository
	headerFooter *repository.HeaderFooterRepository
}

func newQuestionnaireFixture() *questionnaireFixture {
	libraryRepo := repository.NewLibraryRepository(nopSink{}, zerolog.Nop())
	headerFooter := repository.NewHeaderFooterRepository(nopSink{}, zerolog.Nop())
	svc := NewQuestionnaireService(
		repository.NewQuestionnaireRepository(),
		libraryRepo,
		headerFooter,
		zerolog.Nop(),
	)
	return &questionnaireFixture{svc: svc, libraryRepo: libraryRepo, headerFooter: headerFooter}
}

func (f *questionnaireFixture) seedLibrarySection(t *testing.T, questionTitles ...string) (model.QuestionLibrary, model.Section) {
	t.Helper()
	lib := f.libraryRepo.Create("Library", "")
	sec, ok := f.libraryRepo.AddSection(lib.ID, model.CreateSectionRequest{Title: "Section"})
	if !ok {
		t.Fatal("AddSection failed")
	}
	for _, title := range questionTitles {
		if _, ok := f.libraryRepo.AddQuestion(lib.ID, sec.ID, model.Question{Title: title, Type: model.QuestionTypeText}); !ok {
			t.Fatalf("AddQuestion(%q) failed", title)
		}
	}
	got, _ := f.libraryRepo.Get(lib.ID)
	return got, got.Sections[0]
}

func TestCreateQuestionnaireDefaultsToDraft(t *testing.T) {
	f := newQuestionnaireFixture()

	q := f.svc.Create(model.CreateQuestionnaireRequest{Title: "Site Survey"})
	if q.Status != model.QuestionnaireStatusDraft {
		t.Fatalf("expected draft, got %q", q.Status)
	}
	if len(q.Sections) != 0 {
		t.Fatal("expected no sections")
	}
}

func TestAddSectionsFromLibraryCopiesAreFrozen(t *testing.T) {
	f := newQuestionnaireFixture()
	lib, sec := f.seedLibrarySection(t, "Exits clear", "Alarms tested")

	q := f.svc.Create(model.CreateQuestionnaireRequest{Title: "Audit"})
	got, ok := f.svc.AddSectionsFromLibrary(q.ID, []uuid.UUID{sec.ID})
	if !ok {
		t.Fatal("AddSectionsFromLibrary failed")
	}
	if len(got.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(got.Sections))
	}
	copied := got.Sections[0]
	if copied.ID == sec.ID {
		t.Fatal("copied section reused the library id")
	}
	if len(copied.Questions) != 2 || copied.Questions[0].Order != 1 || copied.Questions[1].Order != 2 {
		t.Fatalf("questions not renumbered densely: %+v", copied.Questions)
	}
	for i, cq := range copied.Questions {
		if cq.ID == sec.Questions[i].ID {
			t.Fatal("copied question reused a library id")
		}
	}

	// Editing the library afterwards leaves the copy untouched.
	title := "Renamed"
	f.libraryRepo.UpdateQuestion(lib.ID, sec.ID, sec.Questions[0].ID, model.UpdateQuestionRequest{Title: &title})
	after, _ := f.svc.Get(q.ID)
	if after.Sections[0].Questions[0].Title != "Exits clear" {
		t.Fatal("questionnaire copy tracked a library edit")
	}

	// Deleting the whole library does not cascade.
	f.libraryRepo.Delete(lib.ID)
	after, ok = f.svc.Get(q.ID)
	if !ok || len(after.Sections) != 1 {
		t.Fatal("library delete cascaded into questionnaire")
	}
}

func TestAddSectionsFromLibrarySkipsUnknownIDs(t *testing.T) {
	f := newQuestionnaireFixture()
	_, sec := f.seedLibrarySection(t, "Only question")

	q := f.svc.Create(model.CreateQuestionnaireRequest{Title: "Audit"})
	got, ok := f.svc.AddSectionsFromLibrary(q.ID, []uuid.UUID{uuid.New(), sec.ID, uuid.New()})
	if !ok {
		t.Fatal("AddSectionsFromLibrary failed")
	}
	if len(got.Sections) != 1 {
		t.Fatalf("expected unknown ids skipped, got %d sections", len(got.Sections))
	}
	if got.Sections[0].Order != 1 {
		t.Fatalf("expected order 1, got %d", got.Sections[0].Order)
	}
}

func TestDuplicateQuestionnaireFreshIDs(t *testing.T) {
	f := newQuestionnaireFixture()
	_, sec := f.seedLibrarySection(t, "Q1")

	q := f.svc.Create(model.CreateQuestionnaireRequest{Title: "Audit"})
	f.svc.AddSectionsFromLibrary(q.ID, []uuid.UUID{sec.ID})

	dup, ok := f.svc.Duplicate(q.ID)
	if !ok {
		t.Fatal("Duplicate failed")
	}
	if dup.ID == q.ID {
		t.Fatal("duplicate reused the questionnaire id")
	}
	if dup.Title != "Audit (Copy)" {
		t.Fatalf("unexpected title %q", dup.Title)
	}

	orig, _ := f.svc.Get(q.ID)
	if dup.Sections[0].ID == orig.Sections[0].ID {
		t.Fatal("duplicate shares a section id with the original")
	}
	if dup.Sections[0].Questions[0].ID == orig.Sections[0].Questions[0].ID {
		t.Fatal("duplicate shares a question id with the original")
	}
	if dup.Sections[0].Order != orig.Sections[0].Order {
		t.Fatal("duplicate must preserve section ordering")
	}
}

func TestGetResolvesHeaderAndDanglingFooter(t *testing.T) {
	f := newQuestionnaireFixture()
	header := f.headerFooter.Create(model.HeaderFooterTypeHeader, "Letterhead", "<h1>Acme</h1>")
	footer := f.headerFooter.Create(model.HeaderFooterTypeFooter, "Legal", "<small>v1</small>")

	q := f.svc.Create(model.CreateQuestionnaireRequest{
		Title:    "Audit",
		HeaderID: &header.ID,
		FooterID: &footer.ID,
	})

	resolved, ok := f.svc.Get(q.ID)
	if !ok || resolved.Header == nil || resolved.Footer == nil {
		t.Fatalf("expected both snippets resolved: %+v", resolved)
	}

	// Deleting the footer leaves the reference dangling: the id stays
	// on the questionnaire but resolution yields nil.
	f.headerFooter.Delete(model.HeaderFooterTypeFooter, footer.ID)
	resolved, _ = f.svc.Get(q.ID)
	if resolved.FooterID == nil {
		t.Fatal("dangling footer id was erased")
	}
	if resolved.Footer != nil {
		t.Fatal("deleted footer still resolved")
	}
	if resolved.Header == nil {
		t.Fatal("header resolution broken by footer delete")
	}
}

func TestUpdateClearsHeaderExplicitly(t *testing.T) {
	f := newQuestionnaireFixture()
	header := f.headerFooter.Create(model.HeaderFooterTypeHeader, "Letterhead", "x")

	q := f.svc.Create(model.CreateQuestionnaireRequest{Title: "Audit", HeaderID: &header.ID})

	got, ok := f.svc.Update(q.ID, model.UpdateQuestionnaireRequest{ClearHeader: true})
	if !ok {
		t.Fatal("Update failed")
	}
	if got.HeaderID != nil {
		t.Fatal("ClearHeader did not remove the reference")
	}

	// An update without header fields leaves the reference alone.
	title := "Renamed"
	got, _ = f.svc.Update(q.ID, model.UpdateQuestionnaireRequest{Title: &title})
	if got.Title != "Renamed" || got.HeaderID != nil {
		t.Fatalf("unexpected state after partial update: %+v", got)
	}
}

func TestStatusTransitionsAllAllowed(t *testing.T) {
	f := newQuestionnaireFixture()
	q := f.svc.Create(model.CreateQuestionnaireRequest{Title: "Audit"})

	for _, status := range []model.QuestionnaireStatus{
		model.QuestionnaireStatusPublished,
		model.QuestionnaireStatusArchived,
		model.QuestionnaireStatusDraft,
		model.QuestionnaireStatusArchived,
	} {
		got, ok := f.svc.SetStatus(q.ID, status)
		if !ok || got.Status != status {
			t.Fatalf("transition to %q failed: %+v ok=%v", status, got, ok)
		}
	}
}

func TestListFiltersByStatusAndSearch(t *testing.T) {
	f := newQuestionnaireFixture()
	a := f.svc.Create(model.CreateQuestionnaireRequest{Title: "Annual Audit"})
	f.svc.Create(model.CreateQuestionnaireRequest{Title: "Quick Poll"})
	f.svc.SetStatus(a.ID, model.QuestionnaireStatusPublished)

	items, pagination := f.svc.List(1, 10, "audit", "")
	if len(items) != 1 || items[0].ID != a.ID {
		t.Fatalf("search filter wrong: %+v", items)
	}
	if pagination.TotalItems != 1 {
		t.Fatalf("expected total 1, got %d", pagination.TotalItems)
	}

	items, _ = f.svc.List(1, 10, "", "published")
	if len(items) != 1 || items[0].ID != a.ID {
		t.Fatalf("status filter wrong: %+v", items)
	}

	items, _ = f.svc.List(1, 10, "", "archived")
	if len(items) != 0 {
		t.Fatalf("expected no archived questionnaires, got %d", len(items))
	}
}

func TestAddCustomSectionOrders(t *testing.T) {
	f := newQuestionnaireFixture()
	q := f.svc.Create(model.CreateQuestionnaireRequest{Title: "Audit"})

	s1, ok := f.svc.AddSection(q.ID, model.CreateSectionRequest{Title: "Intro"})
	if !ok || s1.Order != 1 {
		t.Fatalf("first section: %+v ok=%v", s1, ok)
	}
	s2, _ := f.svc.AddSection(q.ID, model.CreateSectionRequest{Title: "Details"})
	if s2.Order != 2 {
		t.Fatalf("expected order 2, got %d", s2.Order)
	}
}
