package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/dondigital/storefront/cmd"
	"github.com/dondigital/storefront/internal/config"
	"github.com/dondigital/storefront/internal/database"
	"github.com/dondigital/storefront/internal/models"
	"github.com/dondigital/storefront/internal/repository"
)

// defaultTiers are the storefront's standard Robux tiers, used to populate a
// fresh local database.
var defaultTiers = []models.Product{
	{Tier: "Starter", RobuxAmount: 100, Price: 95, PriceLabel: "₱95", Icon: models.DefaultProductIcon},
	{Tier: "Basic", RobuxAmount: 250, Price: 225, PriceLabel: "₱225", Icon: models.DefaultProductIcon},
	{Tier: "Standard", RobuxAmount: 500, Price: 430, PriceLabel: "₱430", Icon: models.DefaultProductIcon},
	{Tier: "Premium", RobuxAmount: 1000, Price: 850, PriceLabel: "₱850", Icon: models.DefaultProductIcon},
	{Tier: "Ultimate", RobuxAmount: 2200, Price: 1800, PriceLabel: "₱1,800", Icon: models.DefaultProductIcon},
}

// SeedCmd represents the 'seed' command: it fills an empty local database
// with the default product tiers and an initial Robux balance so the
// storefront can be exercised right away.
var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seeds the database with default products and an initial balance.",
	Run: func(cobraCmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}

		productRepo := repository.NewProductRepository(db)
		existing, err := productRepo.GetAllByRobuxAsc()
		if err != nil {
			log.Fatalf("Failed to inspect products: %v", err)
		}
		if len(existing) > 0 {
			fmt.Printf("Database already has %d product(s); nothing to seed.\n", len(existing))
			return
		}

		for i := range defaultTiers {
			product := defaultTiers[i]
			if err := productRepo.Create(&product); err != nil {
				log.Fatalf("Failed to seed product %s: %v", product.Tier, err)
			}
		}

		statsRepo := repository.NewStatisticsRepository(db)
		if _, err := statsRepo.Update(5000, "09:00", "21:00"); err != nil {
			log.Fatalf("Failed to seed statistics: %v", err)
		}

		fmt.Printf("Seeded %d products and the statistics row.\n", len(defaultTiers))
	},
}

func init() {
	cmd.RootCmd.AddCommand(SeedCmd)
}
