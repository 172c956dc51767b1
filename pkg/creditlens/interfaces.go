package creditlens

import "context"

// CardService handles all card/transaction provider operations
type CardService interface {
	// GetAccounts retrieves all accounts for an access token
	GetAccounts(ctx context.Context, accessToken string) ([]*Account, error)

	// GetTransactions retrieves transactions for a date window
	GetTransactions(ctx context.Context, accessToken string, params *TransactionParams) ([]*Transaction, error)

	// GetCardData assembles the credit-card document for a token
	GetCardData(ctx context.Context, accessToken string, days int) (*CardData, error)

	// CreateLinkToken starts the provider link flow
	CreateLinkToken(ctx context.Context, userID string) (*LinkToken, error)
}

// BureauService handles all credit-bureau operations
type BureauService interface {
	// GetReport fetches the full credit report
	GetReport(ctx context.Context, consumer *ConsumerInfo) (*CreditReport, error)

	// GetScore returns the report's risk-model block
	GetScore(ctx context.Context, consumer *ConsumerInfo) (*RiskModel, error)

	// GetTradeLines returns flattened credit accounts with utilization
	GetTradeLines(ctx context.Context, consumer *ConsumerInfo) ([]*TradeLineAccount, error)

	// GetSummary derives the aggregate credit summary
	GetSummary(ctx context.Context, consumer *ConsumerInfo) (*CreditSummary, error)
}

// ProfileService builds combined consumer profiles
type ProfileService interface {
	// GetComplete fetches both providers and builds the combined summary
	GetComplete(ctx context.Context, accessToken string, consumer *ConsumerInfo, days int) (*CreditProfile, error)

	// AnalyzeSpending runs the spending analysis over the transaction window
	AnalyzeSpending(ctx context.Context, accessToken string, days int) (*TransactionAnalysis, error)
}
