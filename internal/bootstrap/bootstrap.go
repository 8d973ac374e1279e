package bootstrap

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/unijournal/internal/app/controllers"
	"github.com/yigit/unijournal/internal/app/dataset"
	appModels "github.com/yigit/unijournal/internal/app/models"
	appRepos "github.com/yigit/unijournal/internal/app/repositories"
	appRoutes "github.com/yigit/unijournal/internal/app/routes"
	appServices "github.com/yigit/unijournal/internal/app/services"
	"github.com/yigit/unijournal/internal/config"
	appMiddleware "github.com/yigit/unijournal/internal/middleware"
	"github.com/yigit/unijournal/internal/pkg/logger"
	"github.com/yigit/unijournal/internal/seed"
)

// DefaultConfigPath is where the configuration file is looked up
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	Services          *appServices.Services
	JournalController *appControllers.JournalController
	StudentController *appControllers.StudentController
	ImportController  *appControllers.ImportController
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// Logs go to out, or stdout when out is nil.
func LoadConfigAndSetupLogger(configPath string, out io.Writer) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		Output: out,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// InitialDataset returns the dataset the journal starts with
func InitialDataset(cfg *config.Config, lgr zerolog.Logger) appModels.Dataset {
	if !cfg.Seed.Enabled {
		lgr.Info().Msg("Seed data disabled, starting with an empty journal")
		return appModels.Dataset{}
	}
	return seed.CreateDefaultData(lgr)
}

// NewReconciler creates the import reconciler with the configured defaults
func NewReconciler(cfg *config.Config, lgr zerolog.Logger) *dataset.Reconciler {
	return dataset.NewReconciler(dataset.Options{
		DefaultSemester: cfg.Import.DefaultSemester,
		DefaultYear:     cfg.Import.DefaultYear,
		Logger:          &lgr,
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, initial appModels.Dataset, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(initial)
	deps.Services = appServices.NewServices(deps.Repos, NewReconciler(cfg, lgr))

	deps.JournalController = appControllers.NewJournalController(deps.Services.Journal)
	deps.StudentController = appControllers.NewStudentController(deps.Services.Journal, deps.Services.Grade, deps.Services.Stats)
	deps.ImportController = appControllers.NewImportController(deps.Services.Import, cfg.MaxUploadBytes())

	lgr.Info().Msg("Dependencies initialized")
	return deps
}

// SetupRouter creates the gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch cfg.Server.Mode {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes()
	router.Use(appMiddleware.Recovery())
	router.Use(appMiddleware.RequestLogger())
	// Multipart framing adds a little on top of the file itself
	router.Use(appMiddleware.MaxBodySize(cfg.MaxUploadBytes() + 1<<20))

	appRoutes.SetupRouter(router, deps.JournalController, deps.StudentController, deps.ImportController)

	lgr.Info().Str("mode", gin.Mode()).Msg("Router configured")
	return router
}
