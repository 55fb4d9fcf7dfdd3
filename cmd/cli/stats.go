package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dondigital/storefront/cmd"
	"github.com/dondigital/storefront/internal/config"
	"github.com/dondigital/storefront/internal/database"
	"github.com/dondigital/storefront/internal/repository"
	"github.com/dondigital/storefront/internal/services"
)

// StatsCmd represents the 'stats' command. Without arguments it prints the
// affiliator leaderboard; with a referral code it prints that affiliator's
// counters plus the number of recorded click events.
var StatsCmd = &cobra.Command{
	Use:   "stats [referral-code]",
	Short: "Show affiliator statistics",
	Long:  `Prints the affiliator leaderboard, or the detailed counters for one referral code.`,
	Args:  cobra.MaximumNArgs(1),
	Run:   runStats,
}

func init() {
	cmd.RootCmd.AddCommand(StatsCmd)
}

func runStats(cobraCmd *cobra.Command, args []string) {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	affiliatorRepo := repository.NewAffiliatorRepository(db)
	referralRepo := repository.NewReferralRepository(db)

	if len(args) == 1 {
		code := args[0]
		affiliator, err := affiliatorRepo.GetByReferralCode(code)
		if err != nil {
			fmt.Printf("Error: no affiliator found for referral code %q\n", code)
			os.Exit(1)
		}
		recorded, err := referralRepo.CountClicksByCode(code)
		if err != nil {
			log.Fatalf("Failed to count clicks: %v", err)
		}

		fmt.Printf("Affiliator:        %s\n", affiliator.Username)
		fmt.Printf("Referral code:     %s\n", code)
		fmt.Printf("Active:            %t\n", affiliator.IsActive)
		fmt.Printf("Total earned:      %.2f Robux\n", affiliator.TotalRobuxEarned)
		fmt.Printf("Click counter:     %d\n", affiliator.TotalClicks)
		fmt.Printf("Recorded clicks:   %d\n", recorded)
		fmt.Printf("Conversions:       %d\n", affiliator.TotalConversions)
		return
	}

	svc := services.NewAffiliatorService(affiliatorRepo, cfg.Server.BaseURL, cfg.Referral.CodeSuffixLength)
	entries, err := svc.Leaderboard(20)
	if err != nil {
		log.Fatalf("Failed to load leaderboard: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No affiliators with referral codes yet.")
		return
	}

	fmt.Printf("%-20s %-12s %10s %8s %8s %8s\n", "USERNAME", "CODE", "EARNED", "CLICKS", "CONV", "RATE%")
	for _, e := range entries {
		code := ""
		if e.ReferralCode != nil {
			code = *e.ReferralCode
		}
		fmt.Printf("%-20s %-12s %10.2f %8d %8d %8.2f\n",
			e.Username, code, e.RobuxEarned, e.TotalClicks, e.TotalConversions, e.ConversionRate)
	}
}
