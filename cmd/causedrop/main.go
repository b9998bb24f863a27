package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/ansh808s/cause-drop/internal/cache"
	"github.com/ansh808s/cause-drop/internal/chain"
	"github.com/ansh808s/cause-drop/internal/config"
	"github.com/ansh808s/cause-drop/internal/db"
	"github.com/ansh808s/cause-drop/internal/handler"
	"github.com/ansh808s/cause-drop/internal/job"
	"github.com/ansh808s/cause-drop/internal/middleware"
	"github.com/ansh808s/cause-drop/internal/repo"
	"github.com/ansh808s/cause-drop/internal/schedule"
	"github.com/ansh808s/cause-drop/internal/service"
	"github.com/ansh808s/cause-drop/internal/uploader"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "causedrop",
		Short: "causedrop backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run causedrop server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("rpc_endpoint", cfg.Solana.RPCEndpoint),
	)

	userRepo := repo.NewUserRepo(conn)
	campaignRepo := repo.NewCampaignRepo(conn)
	donationRepo := repo.NewDonationRepo(conn)

	campaignCache := cache.NewCampaignCache(cfg.CampaignCacheSize, time.Minute)
	solanaChain := chain.NewSolana(cfg.Solana.RPCEndpoint)

	jwtTTL := time.Hour * time.Duration(cfg.JWTTTLHours)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), jwtTTL, cfg.SignDomain)
	campaignService := service.NewCampaignService(campaignRepo, userRepo, campaignCache)
	donationService := service.NewDonationService(campaignRepo, donationRepo, campaignCache, solanaChain, cfg.Solana.ActionBase)

	presigner, err := uploader.NewPresigner(context.Background(), cfg.Upload)
	if err != nil {
		return fmt.Errorf("init presigner: %w", err)
	}

	deps := handler.RouterDeps{
		Auth:         handler.NewAuthHandler(authService),
		Campaigns:    handler.NewCampaignHandler(campaignService, donationService),
		Actions:      handler.NewActionHandler(donationService),
		Uploads:      handler.NewUploadHandler(presigner),
		Health:       handler.NewHealthHandler(conn),
		Users:        userRepo,
		JWTSecret:    []byte(cfg.JWTSecret),
		SignInWindow: time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	scheduler := schedule.NewCronScheduler()
	reconcileJob := job.NewDonationReconcileJob(campaignRepo, donationRepo, campaignCache)
	if err := scheduler.AddJob(reconcileJob, cfg.ReconcileSchedule); err != nil {
		return fmt.Errorf("schedule reconcile job: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
