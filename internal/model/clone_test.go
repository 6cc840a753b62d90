package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestCloneQuestionDoesNotAlias(t *testing.T) {
	min := 5.0
	src := Question{
		ID:         uuid.New(),
		Title:      "Readings",
		Type:       QuestionTypeTable,
		Options:    []string{"a", "b"},
		Validation: &QuestionValidation{Min: &min},
		TableRows:  [][]string{{"x"}},
	}

	dup := CloneQuestion(src)
	dup.Options[0] = "changed"
	dup.TableRows[0][0] = "changed"
	*dup.Validation.Min = 99

	if src.Options[0] != "a" {
		t.Fatal("options aliased")
	}
	if src.TableRows[0][0] != "x" {
		t.Fatal("table rows aliased")
	}
	if *src.Validation.Min != 5.0 {
		t.Fatal("validation aliased")
	}
	if dup.ID != src.ID {
		t.Fatal("CloneQuestion must keep the id")
	}
}

func TestFreshSectionCopyRenumbers(t *testing.T) {
	src := Section{
		ID:    uuid.New(),
		Title: "Walkthrough",
		Questions: []Question{
			{ID: uuid.New(), Title: "Late", Order: 7},
			{ID: uuid.New(), Title: "Early", Order: 2},
		},
		Order: 4,
	}

	dup := FreshSectionCopy(src)
	if dup.ID == src.ID {
		t.Fatal("expected a fresh section id")
	}
	if dup.Order != 4 {
		t.Fatal("section order is the caller's to assign, must carry over unchanged")
	}
	if len(dup.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(dup.Questions))
	}
	// Sorted by original order, then renumbered densely.
	if dup.Questions[0].Title != "Early" || dup.Questions[0].Order != 1 {
		t.Fatalf("first question wrong: %+v", dup.Questions[0])
	}
	if dup.Questions[1].Title != "Late" || dup.Questions[1].Order != 2 {
		t.Fatalf("second question wrong: %+v", dup.Questions[1])
	}
	for i, q := range dup.Questions {
		if q.ID == src.Questions[i].ID {
			t.Fatal("question id reused")
		}
	}
}

func TestQuestionTypeCatalog(t *testing.T) {
	if len(AllQuestionTypes) != 18 {
		t.Fatalf("expected 18 question types, got %d", len(AllQuestionTypes))
	}
	for _, qt := range AllQuestionTypes {
		if !qt.IsValid() {
			t.Fatalf("catalog type %q not valid", qt)
		}
		if QuestionTypeLabels[qt] == "" {
			t.Fatalf("catalog type %q has no label", qt)
		}
	}
	if QuestionType("slider").IsValid() {
		t.Fatal("unknown type reported valid")
	}
}
