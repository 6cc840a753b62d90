package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/formcraft/formcraft-backend/internal/config"
	"github.com/formcraft/formcraft-backend/internal/handler"
	"github.com/formcraft/formcraft-backend/internal/middleware"
	"github.com/formcraft/formcraft-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Library       *handler.LibraryHandler
	Section       *handler.SectionHandler
	Question      *handler.QuestionHandler
	Header        *handler.HeaderFooterHandler
	Footer        *handler.HeaderFooterHandler
	Questionnaire *handler.QuestionnaireHandler
	Media         *handler.MediaHandler
	Meta          *handler.MetaHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		// Static catalog data.
		api.GET("/question-types", handlers.Meta.QuestionTypes)

		// Media upload for image and file questions.
		api.POST("/media/upload", handlers.Media.Upload)

		// Question libraries. The /current routes must be registered
		// before the :library_id routes so Gin does not treat "current"
		// as an id.
		libraries := api.Group("/libraries")
		{
			libraries.GET("", handlers.Library.ListLibraries)
			libraries.POST("", handlers.Library.CreateLibrary)
			libraries.GET("/current", handlers.Library.GetCurrentLibrary)
			libraries.PUT("/current", handlers.Library.SetCurrentLibrary)
			libraries.GET("/:library_id", handlers.Library.GetLibrary)
			libraries.PATCH("/:library_id", handlers.Library.UpdateLibrary)
			libraries.DELETE("/:library_id", handlers.Library.DeleteLibrary)

			// Sections within a library.
			libraries.POST("/:library_id/sections", handlers.Section.CreateSection)
			libraries.PUT("/:library_id/sections/order", handlers.Section.ReorderSections)
			libraries.PATCH("/:library_id/sections/:section_id", handlers.Section.UpdateSection)
			libraries.DELETE("/:library_id/sections/:section_id", handlers.Section.DeleteSection)
			libraries.POST("/:library_id/sections/:section_id/copy", handlers.Section.CopySection)

			// Questions within a section.
			libraries.POST("/:library_id/sections/:section_id/questions", handlers.Question.CreateQuestion)
			libraries.PUT("/:library_id/sections/:section_id/questions/order", handlers.Question.ReorderQuestions)
			libraries.PATCH("/:library_id/sections/:section_id/questions/:question_id", handlers.Question.UpdateQuestion)
			libraries.DELETE("/:library_id/sections/:section_id/questions/:question_id", handlers.Question.DeleteQuestion)
			libraries.POST("/:library_id/sections/:section_id/questions/:question_id/copy", handlers.Question.CopyQuestion)
		}

		// Header and footer snippet stores.
		headers := api.Group("/headers")
		{
			headers.GET("", handlers.Header.List)
			headers.POST("", handlers.Header.Create)
			headers.GET("/:id", handlers.Header.Get)
			headers.PATCH("/:id", handlers.Header.Update)
			headers.DELETE("/:id", handlers.Header.Delete)
		}
		footers := api.Group("/footers")
		{
			footers.GET("", handlers.Footer.List)
			footers.POST("", handlers.Footer.Create)
			footers.GET("/:id", handlers.Footer.Get)
			footers.PATCH("/:id", handlers.Footer.Update)
			footers.DELETE("/:id", handlers.Footer.Delete)
		}

		// Questionnaire assembly.
		questionnaires := api.Group("/questionnaires")
		{
			questionnaires.GET("", handlers.Questionnaire.List)
			questionnaires.POST("", handlers.Questionnaire.Create)
			questionnaires.GET("/:questionnaire_id", handlers.Questionnaire.Get)
			questionnaires.PATCH("/:questionnaire_id", handlers.Questionnaire.Update)
			questionnaires.DELETE("/:questionnaire_id", handlers.Questionnaire.Delete)
			questionnaires.POST("/:questionnaire_id/duplicate", handlers.Questionnaire.Duplicate)
			questionnaires.POST("/:questionnaire_id/sections", handlers.Questionnaire.AddSection)
			questionnaires.POST("/:questionnaire_id/sections/from-library", handlers.Questionnaire.AddSectionsFromLibrary)
			questionnaires.PUT("/:questionnaire_id/status", handlers.Questionnaire.UpdateStatus)
		}
	}

	return router
}
