package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealdesk/dealdesk/internal/audit"
	"github.com/dealdesk/dealdesk/internal/auth"
	"github.com/dealdesk/dealdesk/internal/config"
	"github.com/dealdesk/dealdesk/internal/database"
	auditdb "github.com/dealdesk/dealdesk/internal/database/audit"
	"github.com/dealdesk/dealdesk/internal/database/emails"
	"github.com/dealdesk/dealdesk/internal/database/imports"
	"github.com/dealdesk/dealdesk/internal/database/templates"
	http_controllers "github.com/dealdesk/dealdesk/internal/http"
	"github.com/dealdesk/dealdesk/internal/importer"
	"github.com/dealdesk/dealdesk/internal/scheduler"
	"github.com/dealdesk/dealdesk/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires up the application and starts serving.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting dealdesk v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	templateStore := templates.NewRepository(db.DB)
	emailStore := emails.NewRepository(db.DB)
	importStore := imports.NewRepository(db.DB)

	archiver := audit.NewArchiver(cfg.Audit.Dir)
	auditor := audit.NewService(auditdb.NewRepository(db.DB))

	pipeline := importer.NewPipeline(templateStore, emailStore, importStore, archiver)

	authService := auth.NewService(db.DB, cfg.Auth)
	hasUsers, _ := authService.HasUsers()
	if !hasUsers {
		log.Printf("No users found. Run 'create-user' to create a coordinator account.")
	}

	// Background task queue for retention maintenance
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCleanupAuditEventsQueue(auditor),
			tasks.NewCleanupArchivesQueue(archiver),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// Seed periodic cleanup of audit events and archived payloads
		if _, err := taskClient.Add(
			tasks.CleanupAuditEventsTask{RetentionDays: cfg.Audit.RetentionDays},
		).Save(); err != nil {
			log.Printf("WARNING: failed to enqueue audit cleanup task: %v", err)
		}
		if _, err := taskClient.Add(
			tasks.CleanupArchivesTask{RetentionDays: cfg.Audit.RetentionDays},
		).Save(); err != nil {
			log.Printf("WARNING: failed to enqueue archive cleanup task: %v", err)
		}
	}

	// Watchdog for import runs stuck in processing
	watchdog := scheduler.NewImportWatchdog(importStore, cfg.Watchdog)
	if err := watchdog.Start(context.Background()); err != nil {
		log.Printf("WARNING: failed to start import watchdog: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		AuthService:    authService,
		Auditor:        auditor,
		Pipeline:       pipeline,
		ImportStore:    importStore,
		TemplateStore:  templateStore,
		MaxImportBytes: cfg.Global.MaxImportBytes,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		watchdog.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
