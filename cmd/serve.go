package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invoice-service/internal/config"
	"invoice-service/internal/database/minio"
	"invoice-service/internal/database/postgres"
	"invoice-service/internal/database/redis"
	"invoice-service/internal/email"
	"invoice-service/internal/handlers"
	"invoice-service/internal/logger"
	"invoice-service/internal/repository"
	"invoice-service/internal/services"

	"github.com/spf13/cobra"
)

const (
	dbConnectAttempts = 10
	dbRetryWait       = 3 * time.Second
	shutdownTimeout   = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. The schema is migrated on startup.

Required environment variables:
  DATABASE_URL or POSTGRES_HOST (+ POSTGRES_USER, POSTGRES_PWD, DB_NAME)
  JWT_SECRET

Optional:
  REDIS_HOST       - shared token revocation list (in-memory otherwise)
  MINIO_ENDPOINT   - archive rendered invoices and uploads
  SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM
  INVOICE_DIR, UPLOAD_DIR, PORT, LOG_LEVEL, LOG_FORMAT, LOG_DIR`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("main")

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.ConnectWithRetry(ctx, cfg.PostgresCfg, dbConnectAttempts, dbRetryWait)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	var blacklist services.ITokenBlacklist = services.NewMemoryBlacklist()
	if cfg.RedisCfg.Enabled() {
		rc, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
		if err != nil {
			return err
		}
		defer rc.Close()
		blacklist = rc
		log.Info().Str("host", cfg.RedisCfg.Host).Msg("using redis token revocation list")
	}

	var archive services.IDocumentArchive = services.NoopArchive{}
	if cfg.MinioCfg.Enabled() {
		mc, err := minio.NewMinioClient(ctx, cfg.MinioCfg)
		if err != nil {
			return err
		}
		archive = mc
		log.Info().Str("bucket", cfg.MinioCfg.MinioBucket).Msg("archiving documents to object storage")
	}

	if err := os.MkdirAll(cfg.StorageCfg.InvoiceDir, 0o755); err != nil {
		return fmt.Errorf("failed to create invoice directory: %w", err)
	}
	branding := services.NewBrandingStore(cfg.StorageCfg.UploadDir, archive)
	if err := branding.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create upload directories: %w", err)
	}

	// repositories
	clientRepo := repository.NewClientRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	bankRepo := repository.NewBankDetailRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	userRepo := repository.NewUserRepository(db)

	// services
	renderer := services.NewPDFRenderer(cfg.StorageCfg.InvoiceDir, cfg.StorageCfg.UploadDir)
	invoiceService := services.NewInvoiceService(invoiceRepo, clientRepo, settingsRepo, companyRepo, bankRepo,
		renderer, email.NewEmailService(cfg.SMTPCfg), archive)

	router := handlers.NewRouter(handlers.RouterDeps{
		InvoiceDir:      cfg.StorageCfg.InvoiceDir,
		DB:              db,
		UserService:     services.NewUserService(userRepo, services.NewJWTService(cfg.AuthCfg.JWTSecret), blacklist),
		InvoiceService:  invoiceService,
		ExportService:   services.NewExportService(invoiceService),
		ClientService:   services.NewClientService(clientRepo, invoiceRepo),
		CompanyService:  services.NewCompanyService(companyRepo, settingsRepo),
		BankService:     services.NewBankDetailService(bankRepo, settingsRepo),
		SettingsService: services.NewSettingsService(settingsRepo, companyRepo, bankRepo, branding),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting invoice-service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
