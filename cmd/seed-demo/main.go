package main

import (
	"context"
	"fmt"
	"time"

	"github.com/formcraft/formcraft-backend/internal/config"
	"github.com/formcraft/formcraft-backend/internal/database"
	"github.com/formcraft/formcraft-backend/internal/logger"
	"github.com/formcraft/formcraft-backend/internal/model"
	"github.com/formcraft/formcraft-backend/internal/repository"
	"github.com/formcraft/formcraft-backend/internal/service"
	"github.com/formcraft/formcraft-backend/internal/worker"
)

// Seeds a demo library with one section per question type so the
// authoring UI has something to show on first run.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.NewSnapshotDB(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open snapshot database")
	}
	defer db.Close()

	snapshotRepo := repository.NewSnapshotRepository(db)
	snapshotWorker := worker.NewSnapshotWorker(snapshotRepo, log)

	libraryRepo := repository.NewLibraryRepository(snapshotWorker, log)
	if payload, _, ok, err := snapshotRepo.Load(ctx, repository.LibrarySlot); err != nil {
		log.Fatal().Err(err).Msg("Failed to load library snapshot")
	} else if ok {
		libraryRepo.Rehydrate(payload)
	}

	libraryService := service.NewLibraryService(libraryRepo)

	fmt.Println("=== Seeding Demo Library ===")

	library := libraryService.CreateLibrary(model.CreateLibraryRequest{
		Name:        "Demo Library",
		Description: "Sample sections covering every question type",
	})
	fmt.Printf("Created library %s\n", library.ID)

	min := 0.0
	max := 100.0

	sections := []struct {
		title     string
		questions []model.CreateQuestionRequest
	}{
		{
			title: "Contact Details",
			questions: []model.CreateQuestionRequest{
				{Title: "Full name", Type: "text", Required: true, Placeholder: "Jane Doe"},
				{Title: "About yourself", Type: "textarea", Placeholder: "A few sentences"},
				{Title: "Email address", Type: "email", Required: true},
				{Title: "Company website", Type: "url"},
				{Title: "Phone number", Type: "phone"},
			},
		},
		{
			title: "Preferences",
			questions: []model.CreateQuestionRequest{
				{Title: "Preferred contact method", Type: "choice", Options: []string{"Email", "Phone", "Post"}, Required: true},
				{Title: "Topics of interest", Type: "choices", Options: []string{"Products", "Pricing", "Support", "Partnership"}},
				{Title: "Subscribe to newsletter", Type: "boolean"},
				{Title: "Additional notes", Type: "richtext"},
			},
		},
		{
			title: "Figures",
			questions: []model.CreateQuestionRequest{
				{Title: "Team size", Type: "number", Validation: &model.QuestionValidation{Min: &min, Max: &max}},
				{Title: "Average score", Type: "decimal"},
				{Title: "Annual budget", Type: "currency"},
				{Title: "Stock ticker", Type: "ticker", Placeholder: "ACME"},
			},
		},
		{
			title: "Schedule",
			questions: []model.CreateQuestionRequest{
				{Title: "Preferred start date", Type: "date"},
				{Title: "Kickoff meeting", Type: "datetime"},
			},
		},
		{
			title: "Attachments",
			questions: []model.CreateQuestionRequest{
				{Title: "Supporting document", Type: "file"},
				{Title: "Site photo", Type: "image"},
				{
					Title:           "Quarterly figures",
					Type:            "table",
					TableColumns:    []string{"Q1", "Q2", "Q3", "Q4"},
					TableRowHeaders: []string{"Revenue", "Costs"},
					TableRows:       [][]string{{"", "", "", ""}, {"", "", "", ""}},
				},
			},
		},
	}

	for _, s := range sections {
		section, ok := libraryService.AddSection(library.ID, model.CreateSectionRequest{Title: s.title})
		if !ok {
			log.Fatal().Str("section", s.title).Msg("Failed to add section")
		}
		for _, q := range s.questions {
			if _, ok := libraryService.AddQuestion(library.ID, section.ID, q); !ok {
				log.Fatal().Str("question", q.Title).Msg("Failed to add question")
			}
		}
		fmt.Printf("Added section %q with %d questions\n", s.title, len(s.questions))
	}

	libraryService.SetCurrentLibrary(&library.ID)

	// Repos persist through the async worker; flush before exiting so
	// the seed actually reaches the database.
	snapshotWorker.Flush(ctx)

	fmt.Println("=== Done ===")
}
