package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/account"
	"resume-screener/internal/analyses"
	googleauth "resume-screener/internal/auth"
	"resume-screener/internal/documents"
	"resume-screener/internal/llm"
	openai "resume-screener/internal/llm/openai"
	"resume-screener/internal/queue"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/storage/object"
	localstore "resume-screener/internal/shared/storage/object/local"
	s3store "resume-screener/internal/shared/storage/object/s3"
	"resume-screener/internal/users"
)

// App holds shared dependencies for the API server and the queue worker.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Store             object.ObjectStore
	Queue             queue.Client
	DocumentsRepo     documents.DocumentsRepo
	AnalysesRepo      analyses.Repo
	UsersRepo         users.Repo
	DocumentsService  *documents.Service
	AnalysesService   *analyses.Service
	AnalysisProcessor AnalysisProcessor
	AccountService    *account.Service
	UsersService      *users.Service
	DocumentsHandler  *documents.Handler
	AnalysisHandler   *analyses.Handler
	AccountHandler    *account.Handler
	UsersHandler      *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// AnalysisProcessor allows callers to override analysis processing for tests.
type AnalysisProcessor interface {
	ProcessAnalysis(ctx context.Context, analysisID string) error
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		AnalysisHandler: app.AnalysisHandler,
		AccountHandler:  app.AccountHandler,
		UserHandler:     app.UsersHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
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

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.SQSQueueURL, cfg.AWSRegion)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var docRepo documents.DocumentsRepo
	var analysisRepo analyses.Repo
	var userRepo users.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		analysisRepo = &analyses.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	docSvc := &documents.Service{
		Store:           app.Store,
		Repo:            docRepo,
		StorageProvider: app.Config.ObjectStoreType,
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = openaiClient
	}

	analysisSvc := &analyses.Service{
		Repo:           analysisRepo,
		DocRepo:        docRepo,
		Store:          app.Store,
		Queue:          app.Queue,
		LLM:            llmClient,
		Provider:       app.Config.LLMProvider,
		Model:          app.Config.LLMModel,
		ScoringVersion: app.Config.ScoringVersion,
	}

	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.DocumentsRepo = docRepo
	app.AnalysesRepo = analysisRepo
	app.UsersRepo = userRepo
	app.DocumentsService = docSvc
	app.AnalysesService = analysisSvc
	app.AnalysisProcessor = analysisSvc
	app.AccountService = account.NewService(docRepo, analysisRepo)
	app.UsersService = userSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.AnalysisHandler = analyses.NewHandler(analysisSvc)
	app.AccountHandler = account.NewHandler(app.AccountService)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	if app.DocumentsHandler == nil || app.AnalysisHandler == nil {
		return errors.New("failed to initialize handlers")
	}

	return nil
}
