package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/analyses"
	"resume-matcher/internal/documents"
	"resume-matcher/internal/jobposting"
	"resume-matcher/internal/match"
	"resume-matcher/internal/match/sections"
	"resume-matcher/internal/services/health"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/server"
	"resume-matcher/internal/shared/storage/db"
	"resume-matcher/internal/shared/storage/object"
	localstore "resume-matcher/internal/shared/storage/object/local"
	s3store "resume-matcher/internal/shared/storage/object/s3"
	"resume-matcher/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Engine           *match.Engine
	DocumentsRepo    documents.Repo
	DocumentsService *documents.Service
	AnalysesService  *analyses.Service
	DocumentsHandler *documents.Handler
	AnalysisHandler  *analyses.Handler
	Health           *health.Service
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	telemetry.SetLevel(cfg.LogLevel)
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Engine: NewEngine(cfg.ExampleSeed),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		AnalysisHandler: app.AnalysisHandler,
		Health:          app.Health,
	})

	return app, nil
}

// NewEngine builds the matching engine. A non-zero seed picks keyword
// example sentences pseudo-randomly; zero keeps the first template.
func NewEngine(seed int64) *match.Engine {
	examples := sections.FirstTemplate()
	if seed != 0 {
		examples = sections.SeededTemplates(seed)
	}
	return match.New(
		match.WithExamples(examples),
		match.WithFailureHandler(func(title string, err error) {
			telemetry.Error("section.evaluation_failed", map[string]any{
				"section": title,
				"error":   err,
			})
		}),
	)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, db.ErrNoDatabaseURL
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			sqlDB = nil
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database unavailable; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var docRepo documents.Repo
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
	}

	docSvc := &documents.Service{
		Store:           app.Store,
		Repo:            docRepo,
		StorageProvider: app.Config.ObjectStoreType,
		MaxBytes:        app.Config.MaxUploadBytes,
	}

	analysisSvc := &analyses.Service{
		Engine: app.Engine,
		Docs:   docSvc,
		FetchOptions: jobposting.Options{
			Timeout: app.Config.JobFetchTimeout,
		},
	}

	app.DocumentsRepo = docRepo
	app.DocumentsService = docSvc
	app.AnalysesService = analysisSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.AnalysisHandler = analyses.NewHandler(analysisSvc, app.Config.MaxUploadBytes)
	app.Health = health.NewService(app.DB, app.Config.ObjectStoreType)
}
