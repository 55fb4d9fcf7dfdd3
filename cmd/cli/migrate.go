package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/dondigital/storefront/cmd"
	"github.com/dondigital/storefront/internal/config"
	"github.com/dondigital/storefront/internal/database"
)

// MigrateCmd represents the 'migrate' command: schema creation and updates.
var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Executes database migrations to create or update tables.",
	Long: `This command connects to the configured database and runs GORM automatic
migrations for the affiliators, comments, products, statistics,
referral_clicks and referral_conversions tables. It also creates the
statistics singleton row and the vw_top_affiliators leaderboard view.`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("FATAL: Failed to get underlying SQL database: %v", err)
		}
		defer sqlDB.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}

		fmt.Println("Database migration completed successfully.")
	},
}

func init() {
	cmd.RootCmd.AddCommand(MigrateCmd)
}
