package server

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
	"github.com/spf13/cobra"

	"github.com/dondigital/storefront/cmd"
	"github.com/dondigital/storefront/internal/api"
	"github.com/dondigital/storefront/internal/config"
	"github.com/dondigital/storefront/internal/database"
	"github.com/dondigital/storefront/internal/models"
	"github.com/dondigital/storefront/internal/monitor"
	"github.com/dondigital/storefront/internal/repository"
	"github.com/dondigital/storefront/internal/services"
	"github.com/dondigital/storefront/internal/workers"
)

// RunServerCmd represents the 'run-server' Cobra command: it initializes the
// database, wires the services, starts the click workers and the stock
// monitor, then serves the HTTP API until a shutdown signal arrives.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Start the storefront API server and background processes.",
	Long: `This command connects to the store, runs schema migrations, starts the
asynchronous click workers and the stock monitor, then launches the HTTP
server.`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to the database: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate the database: %v", err)
		}

		affiliatorRepo := repository.NewAffiliatorRepository(db)
		referralRepo := repository.NewReferralRepository(db)
		commentRepo := repository.NewCommentRepository(db)
		productRepo := repository.NewProductRepository(db)
		statsRepo := repository.NewStatisticsRepository(db)
		log.Println("Repositories initialized.")

		svcs := api.Services{
			Affiliators: services.NewAffiliatorService(affiliatorRepo, cfg.Server.BaseURL, cfg.Referral.CodeSuffixLength),
			Comments:    services.NewCommentService(commentRepo),
			Products:    services.NewProductService(productRepo, statsRepo),
			Referrals:   services.NewReferralService(affiliatorRepo, referralRepo),
			Statistics:  services.NewStatisticsService(statsRepo),
		}
		log.Println("Services initialized.")

		clickEvents := make(chan models.ClickEvent, cfg.Analytics.BufferSize)
		api.ClickEventsChannel = clickEvents
		workers.StartClickWorkers(cfg.Analytics.WorkerCount, clickEvents, svcs.Referrals)
		log.Printf("Click events channel initialized with a buffer of %d. %d worker(s) started.",
			cfg.Analytics.BufferSize, cfg.Analytics.WorkerCount)

		monitorInterval := time.Duration(cfg.Monitor.IntervalMinutes) * time.Minute
		stockMonitor := monitor.NewStockMonitor(productRepo, statsRepo, monitorInterval)
		go stockMonitor.Start()
		log.Printf("Stock monitor started with an interval of %v.", monitorInterval)

		router := gin.Default()
		api.SetupRoutes(router, svcs, cfg.Analytics.BufferSize)
		log.Println("API routes configured.")

		serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
		srv := &http.Server{
			Addr:    serverAddr,
			Handler: router,
		}

		go func() {
			log.Printf("Starting server on %s", serverAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutdown signal received. Stopping server...")

		// Stop accepting requests, then give in-flight requests and the
		// click workers a moment to finish.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shut down: %v", err)
		}
		close(clickEvents)
		time.Sleep(time.Second)

		log.Println("Server stopped cleanly.")
	},
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}
