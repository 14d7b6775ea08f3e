package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvscreen-backend/internal/candidates"
	"cvscreen-backend/internal/documents"
	"cvscreen-backend/internal/llm"
	openai "cvscreen-backend/internal/llm/openai"
	"cvscreen-backend/internal/shared/config"
	"cvscreen-backend/internal/shared/server/middleware"
	"cvscreen-backend/internal/shared/server/respond"
	"cvscreen-backend/internal/shared/storage/db"
	"cvscreen-backend/internal/shared/storage/object"
	localstore "cvscreen-backend/internal/shared/storage/object/local"
)

// App holds shared dependencies wired by Build.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	DocumentsRepo  documents.Repo
	CandidatesRepo candidates.Repo

	DocumentsService  *documents.Service
	CandidatesService *candidates.Service

	DocumentsHandler  *documents.Handler
	CandidatesHandler *candidates.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB := buildDB(ctx, cfg)
	store := localstore.New(cfg.LocalStoreDir)
	llmClient := buildLLM(cfg)

	var docRepo documents.Repo
	var candRepo candidates.Repo
	if sqlDB != nil {
		docRepo = &documents.PGRepo{DB: sqlDB}
		candRepo = &candidates.PGRepo{DB: sqlDB}
	} else {
		docRepo = documents.NewMemoryRepo()
		candRepo = candidates.NewMemoryRepo()
	}

	docSvc := &documents.Service{Store: store, Repo: docRepo}
	candSvc := &candidates.Service{
		Docs:          docSvc,
		LLM:           llmClient,
		Repo:          candRepo,
		ReferenceYear: cfg.ReferenceYear,
	}

	app := &App{
		Config:            cfg,
		DB:                sqlDB,
		Store:             store,
		LLM:               llmClient,
		DocumentsRepo:     docRepo,
		CandidatesRepo:    candRepo,
		DocumentsService:  docSvc,
		CandidatesService: candSvc,
		DocumentsHandler:  documents.NewHandler(docSvc),
		CandidatesHandler: candidates.NewHandler(candSvc),
	}
	app.Router = buildRouter(app)
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	dbConn, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, dbConn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		dbConn.Close()
		return nil
	}
	return dbConn
}

// buildLLM constructs the retry-wrapped OpenAI client, or a disabled client
// that fails fast when no API key is configured.
func buildLLM(cfg config.Config) llm.Client {
	if cfg.OpenAIAPIKey == "" {
		log.Printf("OPENAI_API_KEY not set, LLM features disabled")
		return llm.Disabled{}
	}
	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	if err != nil {
		log.Printf("openai client init failed, LLM features disabled: %v", err)
		return llm.Disabled{}
	}
	return llm.NewRetry(client)
}

func buildRouter(app *App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(app.Config.CORSAllowOrigin),
	)

	// LLM-backed endpoints are the expensive ones; throttle them per client.
	llmLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"LLM": {Rate: 0.5, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			switch c.FullPath() {
			case "/api/analyze-cv/", "/api/chatbot/":
				return "LLM"
			}
			return ""
		},
		DefaultGroup: "NONE",
	})

	api := r.Group("/api")
	api.Use(llmLimit)
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	app.DocumentsHandler.RegisterRoutes(api)
	app.CandidatesHandler.RegisterRoutes(api)

	r.Static("/files", app.Config.LocalStoreDir)

	return r
}
