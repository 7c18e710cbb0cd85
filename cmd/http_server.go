package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/auth"
	authPostgres "github.com/clinicore/hr-management/internal/auth/postgres"
	"github.com/clinicore/hr-management/internal/authz"
	"github.com/clinicore/hr-management/internal/client"
	clientPostgres "github.com/clinicore/hr-management/internal/client/postgres"
	"github.com/clinicore/hr-management/internal/department"
	departmentPostgres "github.com/clinicore/hr-management/internal/department/postgres"
	"github.com/clinicore/hr-management/internal/employee"
	employeePostgres "github.com/clinicore/hr-management/internal/employee/postgres"
	"github.com/clinicore/hr-management/internal/position"
	positionPostgres "github.com/clinicore/hr-management/internal/position/postgres"
	"github.com/clinicore/hr-management/internal/project"
	projectPostgres "github.com/clinicore/hr-management/internal/project/postgres"
	"github.com/clinicore/hr-management/internal/transport/rest"
	"github.com/clinicore/hr-management/internal/transport/swagger"
	"github.com/clinicore/hr-management/internal/workspace"
	workspacePostgres "github.com/clinicore/hr-management/internal/workspace/postgres"
	"github.com/clinicore/hr-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	lg := deps.Logger

	// Repositories
	authRepo := authPostgres.NewRepository(deps.Gorm)
	employeeRepo := employeePostgres.NewRepository(deps.Gorm)
	departmentRepo := departmentPostgres.NewRepository(deps.Gorm)
	positionRepo := positionPostgres.NewRepository(deps.Gorm)
	clientRepo := clientPostgres.NewRepository(deps.Gorm)
	projectRepo := projectPostgres.NewRepository(deps.Gorm)
	workspaceRepo := workspacePostgres.NewRepository(deps.Gorm)

	// The workspace repository also answers assigned-scope checks.
	authorizer := authz.NewAuthorizer(workspaceRepo, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	// Services
	authService := auth.NewService(authRepo, tokenGen, lg, cfg.Security.BCryptCost)
	employeeService := employee.NewService(employeeRepo, lg, cfg.Security.BCryptCost)
	departmentService := department.NewService(departmentRepo, lg)
	positionService := position.NewService(positionRepo, lg)
	clientService := client.NewService(clientRepo, lg, cfg.Security.BCryptCost)
	projectService := project.NewService(projectRepo, lg)
	workspaceService := workspace.NewService(workspaceRepo, lg)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		Employee:   employee.NewHandler(employeeService),
		Department: department.NewHandler(departmentService),
		Position:   position.NewHandler(positionService),
		Client:     client.NewHandler(clientService),
		Project:    project.NewHandler(projectService),
		Workspace:  workspace.NewHandler(workspaceService),
	}

	// Surface a broken API document at startup rather than on the first
	// /swagger request.
	if _, err := swagger.LoadSpec("./api/openapi.yml"); err != nil {
		lg.Warn("openapi spec not loadable, swagger UI degraded", "error", err)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, authorizer, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the database. Postgres shares one pgx-backed pool between
// sqlx (health checks) and GORM; the sqlite driver exists for local
// development without a Postgres instance.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	if cfg.Driver == "sqlite" {
		gormDB, err := gorm.Open(sqlite.Open(cfg.Source), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, err
		}
		return sqlx.NewDb(sqlDB, "sqlite"), gormDB, nil
	}

	dbConn, err := sqlx.Connect("pgx", cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: dbConn.DB}), &gorm.Config{TranslateError: true})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return dbConn, gormDB, nil
}
