package main

import (
	"context"
	"log"
	"os"

	"github.com/creditlens/creditlens-go/pkg/creditlens"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// Provider credentials come from the environment
	cardsClientID := os.Getenv("CARDS_CLIENT_ID")
	cardsSecret := os.Getenv("CARDS_SECRET")
	if cardsClientID == "" || cardsSecret == "" {
		log.Fatal("CARDS_CLIENT_ID and CARDS_SECRET environment variables are required")
	}

	client, err := creditlens.NewClient(&creditlens.ClientOptions{
		Environment:        os.Getenv("CREDITLENS_ENV"),
		CardsClientID:      cardsClientID,
		CardsSecret:        cardsSecret,
		BureauClientID:     os.Getenv("BUREAU_CLIENT_ID"),
		BureauClientSecret: os.Getenv("BUREAU_CLIENT_SECRET"),
		SentryDSN:          os.Getenv("SENTRY_DSN"),
	})
	if err != nil {
		log.Fatalf("failed to initialize creditlens client: %v", err)
	}
	defer client.Close()

	// Create MCP server with v1.0.0 API
	impl := &mcp.Implementation{
		Name:    "creditlens",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	// Register all tools
	registerTools(server, client)

	// Run server over stdio transport (for Claude Desktop)
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func registerTools(server *mcp.Server, client *creditlens.Client) {
	// Create tools instance with client
	tools := &creditTools{client: client}

	// Register all tools using v1.0.0 API
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_card_data",
		Description: "Get all credit cards for an access token with per-card balances, limits and utilization, plus recent transactions. Returns card summaries and portfolio totals.",
	}, tools.GetCardData)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_spending_analysis",
		Description: "Analyze card transactions over a date window. Returns monthly spending buckets, top 5 categories, top 10 merchants, and total gross spend.",
	}, tools.GetSpendingAnalysis)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_credit_summary",
		Description: "Pull a consumer's credit report from the bureau and summarize it: score, account counts, balances, overall utilization, delinquencies, hard inquiries and public records.",
	}, tools.GetCreditSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_complete_profile",
		Description: "Build the complete credit profile combining card data and the bureau report: financial snapshot, credit health, and prioritized recommendations. Either provider may fail independently without failing the profile.",
	}, tools.GetCompleteProfile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_link_token",
		Description: "Create a link token to connect a new card account for a user.",
	}, tools.CreateLinkToken)
}
