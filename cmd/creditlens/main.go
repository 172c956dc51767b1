package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creditlens/creditlens-go/pkg/creditlens"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func main() {
	days := flag.Int("days", 90, "Transaction history window in days")
	export := flag.Bool("export", false, "Export the full profile to a JSON file")
	output := flag.String("o", "", "Output path for the JSON export (default: credit_profile_<timestamp>.json)")
	environment := flag.String("env", "", "Provider environment: sandbox or production (default: sandbox)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	// Credentials come from the environment, optionally via a .env file
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using process environment")
	}

	required := []string{"CARDS_CLIENT_ID", "CARDS_SECRET", "BUREAU_CLIENT_ID", "BUREAU_CLIENT_SECRET"}
	var missing []string
	for _, name := range required {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		log.Errorf("Missing environment variables: %s", strings.Join(missing, ", "))
		fmt.Println("\nCreate a .env file with:")
		for _, name := range required {
			fmt.Printf("   %s=your_value_here\n", name)
		}
		os.Exit(1)
	}

	client, err := creditlens.NewClient(&creditlens.ClientOptions{
		Environment:        *environment,
		CardsClientID:      os.Getenv("CARDS_CLIENT_ID"),
		CardsSecret:        os.Getenv("CARDS_SECRET"),
		BureauClientID:     os.Getenv("BUREAU_CLIENT_ID"),
		BureauClientSecret: os.Getenv("BUREAU_CLIENT_SECRET"),
		SentryDSN:          os.Getenv("SENTRY_DSN"),
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	accessToken := os.Getenv("CARDS_ACCESS_TOKEN")
	if accessToken == "" {
		log.Warn("CARDS_ACCESS_TOKEN not set, card data will be unavailable")
	}

	consumer := consumerFromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Infof("Building credit profile over the last %d days", *days)
	profile, err := client.Profile.GetComplete(ctx, accessToken, consumer, *days)
	if err != nil {
		log.Fatalf("Failed to build profile: %v", err)
	}

	printSummary(profile)

	if *export {
		path, err := exportProfile(profile, *output)
		if err != nil {
			log.Fatalf("Failed to export profile: %v", err)
		}
		fmt.Printf("\n✓ Profile exported to: %s\n", path)
	}
}

// consumerFromEnv reads the bureau consumer identity, with sandbox-friendly
// defaults matching the bureau's test fixtures
func consumerFromEnv() *creditlens.ConsumerInfo {
	return &creditlens.ConsumerInfo{
		FirstName: envOr("CONSUMER_FIRST_NAME", "John"),
		LastName:  envOr("CONSUMER_LAST_NAME", "Doe"),
		SSN:       envOr("CONSUMER_SSN", "666112222"),
		DOB:       envOr("CONSUMER_DOB", "1980-01-01"),
		Address: &creditlens.Address{
			Line1: envOr("CONSUMER_ADDRESS_LINE1", "123 Main St"),
			City:  envOr("CONSUMER_CITY", "New York"),
			State: envOr("CONSUMER_STATE", "NY"),
			Zip:   envOr("CONSUMER_ZIP", "10001"),
		},
	}
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// scoreRating maps a score to its consumer-facing band
func scoreRating(score int) string {
	switch {
	case score >= 740:
		return "Excellent"
	case score >= 670:
		return "Good"
	case score >= 580:
		return "Fair"
	default:
		return "Poor"
	}
}

func printSummary(profile *creditlens.CreditProfile) {
	summary := profile.CombinedSummary

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("COMPLETE CREDIT PROFILE SUMMARY")
	fmt.Println(strings.Repeat("=", 60))

	if profile.CardData.HasError() {
		fmt.Printf("\n⚠️  Card provider unavailable: %s\n", profile.CardData.Error)
	}
	if profile.BureauData.HasError() {
		fmt.Printf("\n⚠️  Credit bureau unavailable: %s\n", profile.BureauData.Error)
	}

	if summary.CreditScore != nil {
		fmt.Printf("\n📊 CREDIT SCORE: %d\n", *summary.CreditScore)
		fmt.Printf("   Rating: %s\n", scoreRating(*summary.CreditScore))
	}

	snapshot := summary.FinancialSnapshot
	fmt.Println("\n💳 CREDIT CARDS:")
	fmt.Printf("   Total Cards: %d\n", snapshot.TotalCreditCards)
	fmt.Printf("   Total Balance: $%s\n", snapshot.TotalBalance.StringFixed(2))
	fmt.Printf("   Total Limit: $%s\n", snapshot.TotalCreditLimit.StringFixed(2))
	fmt.Printf("   Utilization: %s%%\n", snapshot.OverallUtilization.StringFixed(1))
	fmt.Printf("   Monthly Spending: $%s\n", snapshot.MonthlySpending.StringFixed(2))
	fmt.Printf("   Recent Transactions: %d\n", snapshot.RecentTransactionsCount)

	health := summary.CreditHealth
	fmt.Println("\n🏥 CREDIT HEALTH:")
	fmt.Printf("   Open Accounts: %d\n", health.OpenAccounts)
	fmt.Printf("   Delinquent Accounts: %d\n", health.DelinquentAccounts)
	fmt.Printf("   Hard Inquiries: %d\n", health.HardInquiries)
	fmt.Printf("   Public Records: %d\n", health.PublicRecords)

	if len(summary.Recommendations) > 0 {
		fmt.Println("\n💡 RECOMMENDATIONS:")
		for _, rec := range summary.Recommendations {
			fmt.Printf("   %s [%s] %s\n", priorityEmoji(rec.Priority), strings.ToUpper(rec.Priority), rec.Message)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
}

func priorityEmoji(priority string) string {
	switch priority {
	case "critical":
		return "🔴"
	case "high":
		return "🟠"
	case "medium":
		return "🟡"
	default:
		return "🟢"
	}
}

func exportProfile(profile *creditlens.CreditProfile, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("credit_profile_%s.json", time.Now().Format("20060102_150405"))
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
