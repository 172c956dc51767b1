package main

import (
	"context"
	"fmt"

	"github.com/creditlens/creditlens-go/pkg/creditlens"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// creditTools holds the creditlens client and implements all tool handlers
type creditTools struct {
	client *creditlens.Client
}

func consumerFromInput(in ConsumerInput) (*creditlens.ConsumerInfo, error) {
	if in.FirstName == "" || in.LastName == "" || in.SSN == "" || in.DOB == "" {
		return nil, fmt.Errorf("firstName, lastName, ssn and dob are all required")
	}
	return &creditlens.ConsumerInfo{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		SSN:       in.SSN,
		DOB:       in.DOB,
	}, nil
}

// ConsumerInput identifies the consumer for bureau-backed tools
type ConsumerInput struct {
	FirstName string `json:"firstName" jsonschema:"Consumer first name"`
	LastName  string `json:"lastName" jsonschema:"Consumer last name"`
	SSN       string `json:"ssn" jsonschema:"Social security number (digits only)"`
	DOB       string `json:"dob" jsonschema:"Date of birth in YYYY-MM-DD format"`
}

// GetCardData tool - retrieves credit cards and recent transactions
type GetCardDataInput struct {
	AccessToken string `json:"accessToken" jsonschema:"Card provider access token"`
	Days        int    `json:"days,omitempty" jsonschema:"Transaction history window in days (default: 30)"`
}

type CardEntry struct {
	Name               string  `json:"name" jsonschema:"Card display name"`
	AccountID          string  `json:"accountId" jsonschema:"Provider account ID"`
	CurrentBalance     float64 `json:"currentBalance" jsonschema:"Current balance"`
	CreditLimit        float64 `json:"creditLimit" jsonschema:"Credit limit (0 if not reported)"`
	UtilizationPercent float64 `json:"utilizationPercent" jsonschema:"Balance as a percentage of the limit"`
}

type GetCardDataOutput struct {
	Cards             []CardEntry `json:"cards" jsonschema:"List of credit cards"`
	TotalCards        int         `json:"totalCards" jsonschema:"Number of credit cards"`
	TotalBalance      float64     `json:"totalBalance" jsonschema:"Combined balance across all cards"`
	TotalLimit        float64     `json:"totalLimit" jsonschema:"Combined credit limit across all cards"`
	TransactionsCount int         `json:"transactionsCount" jsonschema:"Number of transactions in the window"`
}

func (t *creditTools) GetCardData(ctx context.Context, req *mcp.CallToolRequest, input GetCardDataInput) (*mcp.CallToolResult, GetCardDataOutput, error) {
	data, err := t.client.Cards.GetCardData(ctx, input.AccessToken, input.Days)
	if err != nil {
		return nil, GetCardDataOutput{}, fmt.Errorf("failed to fetch card data: %w", err)
	}

	// Convert to output format
	var cards []CardEntry
	for _, card := range data.CreditCards {
		entry := CardEntry{
			Name:               card.Name,
			AccountID:          card.AccountID,
			CurrentBalance:     card.CurrentBalance.InexactFloat64(),
			UtilizationPercent: card.UtilizationPercent.InexactFloat64(),
		}
		if card.CreditLimit != nil {
			entry.CreditLimit = card.CreditLimit.InexactFloat64()
		}
		cards = append(cards, entry)
	}

	return nil, GetCardDataOutput{
		Cards:             cards,
		TotalCards:        data.TotalCards,
		TotalBalance:      data.TotalBalance.InexactFloat64(),
		TotalLimit:        data.TotalLimit.InexactFloat64(),
		TransactionsCount: len(data.Transactions),
	}, nil
}

// GetSpendingAnalysis tool - analyzes spending over the transaction window
type GetSpendingAnalysisInput struct {
	AccessToken string `json:"accessToken" jsonschema:"Card provider access token"`
	Days        int    `json:"days,omitempty" jsonschema:"Transaction history window in days (default: 30)"`
}

type RankedTotal struct {
	Name  string  `json:"name" jsonschema:"Category or merchant name"`
	Total float64 `json:"total" jsonschema:"Gross spend"`
}

type GetSpendingAnalysisOutput struct {
	MonthlySpending map[string]float64 `json:"monthlySpending" jsonschema:"Gross spend per month keyed by YYYY-MM"`
	TopCategories   []RankedTotal      `json:"topCategories" jsonschema:"Top spending categories, highest first"`
	TopMerchants    []RankedTotal      `json:"topMerchants" jsonschema:"Top merchants, highest first"`
	TotalSpent      float64            `json:"totalSpent" jsonschema:"Total gross spend in the window"`
}

func (t *creditTools) GetSpendingAnalysis(ctx context.Context, req *mcp.CallToolRequest, input GetSpendingAnalysisInput) (*mcp.CallToolResult, GetSpendingAnalysisOutput, error) {
	analysis, err := t.client.Profile.AnalyzeSpending(ctx, input.AccessToken, input.Days)
	if err != nil {
		return nil, GetSpendingAnalysisOutput{}, fmt.Errorf("failed to analyze spending: %w", err)
	}

	monthly := make(map[string]float64, len(analysis.MonthlySpending))
	for month, total := range analysis.MonthlySpending {
		monthly[month] = total.InexactFloat64()
	}

	var categories []RankedTotal
	for _, c := range analysis.TopCategories {
		categories = append(categories, RankedTotal{Name: c.Category, Total: c.Total.InexactFloat64()})
	}

	var merchants []RankedTotal
	for _, m := range analysis.TopMerchants {
		merchants = append(merchants, RankedTotal{Name: m.Merchant, Total: m.Total.InexactFloat64()})
	}

	return nil, GetSpendingAnalysisOutput{
		MonthlySpending: monthly,
		TopCategories:   categories,
		TopMerchants:    merchants,
		TotalSpent:      analysis.TotalSpent.InexactFloat64(),
	}, nil
}

// GetCreditSummary tool - pulls and summarizes the bureau report
type GetCreditSummaryInput struct {
	Consumer ConsumerInput `json:"consumer" jsonschema:"Consumer identity for the bureau pull"`
}

type GetCreditSummaryOutput struct {
	CreditScore        *int    `json:"creditScore" jsonschema:"Credit score (null if not on the report)"`
	TotalAccounts      int     `json:"totalAccounts" jsonschema:"Total accounts on the report"`
	OpenAccounts       int     `json:"openAccounts" jsonschema:"Open accounts"`
	ClosedAccounts     int     `json:"closedAccounts" jsonschema:"Closed accounts"`
	TotalBalance       float64 `json:"totalBalance" jsonschema:"Combined balance across accounts"`
	TotalCreditLimit   float64 `json:"totalCreditLimit" jsonschema:"Combined credit limit across accounts"`
	OverallUtilization float64 `json:"overallUtilization" jsonschema:"Overall utilization percentage"`
	DelinquentAccounts int     `json:"delinquentAccounts" jsonschema:"Accounts not in good standing"`
	HardInquiries      int     `json:"hardInquiries" jsonschema:"Hard credit inquiries"`
	PublicRecords      int     `json:"publicRecords" jsonschema:"Public records on file"`
}

func (t *creditTools) GetCreditSummary(ctx context.Context, req *mcp.CallToolRequest, input GetCreditSummaryInput) (*mcp.CallToolResult, GetCreditSummaryOutput, error) {
	consumer, err := consumerFromInput(input.Consumer)
	if err != nil {
		return nil, GetCreditSummaryOutput{}, err
	}

	summary, err := t.client.Bureau.GetSummary(ctx, consumer)
	if err != nil {
		return nil, GetCreditSummaryOutput{}, fmt.Errorf("failed to fetch credit summary: %w", err)
	}

	return nil, GetCreditSummaryOutput{
		CreditScore:        summary.CreditScore,
		TotalAccounts:      summary.TotalAccounts,
		OpenAccounts:       summary.OpenAccounts,
		ClosedAccounts:     summary.ClosedAccounts,
		TotalBalance:       summary.TotalBalance.InexactFloat64(),
		TotalCreditLimit:   summary.TotalCreditLimit.InexactFloat64(),
		OverallUtilization: summary.OverallUtilization.InexactFloat64(),
		DelinquentAccounts: summary.DelinquentAccounts,
		HardInquiries:      summary.HardInquiries,
		PublicRecords:      summary.PublicRecords,
	}, nil
}

// GetCompleteProfile tool - builds the combined credit profile
type GetCompleteProfileInput struct {
	AccessToken string        `json:"accessToken" jsonschema:"Card provider access token"`
	Consumer    ConsumerInput `json:"consumer" jsonschema:"Consumer identity for the bureau pull"`
	Days        int           `json:"days,omitempty" jsonschema:"Transaction history window in days (default: 30)"`
}

type RecommendationEntry struct {
	Priority string `json:"priority" jsonschema:"critical, high, medium or low"`
	Category string `json:"category" jsonschema:"Rule category (credit_score, utilization, payment_history, inquiries)"`
	Message  string `json:"message" jsonschema:"Action item text"`
}

type GetCompleteProfileOutput struct {
	GeneratedAt        string                `json:"generatedAt" jsonschema:"Profile generation timestamp (RFC 3339)"`
	CreditScore        *int                  `json:"creditScore" jsonschema:"Credit score (null when the bureau side failed or has no score)"`
	CardError          string                `json:"cardError,omitempty" jsonschema:"Card provider failure message, if any"`
	BureauError        string                `json:"bureauError,omitempty" jsonschema:"Bureau failure message, if any"`
	TotalCreditCards   int                   `json:"totalCreditCards" jsonschema:"Number of credit cards"`
	TotalBalance       float64               `json:"totalBalance" jsonschema:"Combined card balance"`
	TotalCreditLimit   float64               `json:"totalCreditLimit" jsonschema:"Combined card limit"`
	OverallUtilization float64               `json:"overallUtilization" jsonschema:"Reconciled overall utilization percentage"`
	MonthlySpending    float64               `json:"monthlySpending" jsonschema:"Net cash flow over the trailing 30 days"`
	OpenAccounts       int                   `json:"openAccounts" jsonschema:"Open accounts on the bureau report"`
	DelinquentAccounts int                   `json:"delinquentAccounts" jsonschema:"Delinquent accounts on the bureau report"`
	HardInquiries      int                   `json:"hardInquiries" jsonschema:"Hard inquiries on the bureau report"`
	Recommendations    []RecommendationEntry `json:"recommendations" jsonschema:"Prioritized action items"`
}

func (t *creditTools) GetCompleteProfile(ctx context.Context, req *mcp.CallToolRequest, input GetCompleteProfileInput) (*mcp.CallToolResult, GetCompleteProfileOutput, error) {
	consumer, err := consumerFromInput(input.Consumer)
	if err != nil {
		return nil, GetCompleteProfileOutput{}, err
	}

	profile, err := t.client.Profile.GetComplete(ctx, input.AccessToken, consumer, input.Days)
	if err != nil {
		return nil, GetCompleteProfileOutput{}, fmt.Errorf("failed to build profile: %w", err)
	}

	combined := profile.CombinedSummary
	output := GetCompleteProfileOutput{
		GeneratedAt:        profile.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		CreditScore:        combined.CreditScore,
		CardError:          profile.CardData.Error,
		BureauError:        profile.BureauData.Error,
		TotalCreditCards:   combined.FinancialSnapshot.TotalCreditCards,
		TotalBalance:       combined.FinancialSnapshot.TotalBalance.InexactFloat64(),
		TotalCreditLimit:   combined.FinancialSnapshot.TotalCreditLimit.InexactFloat64(),
		OverallUtilization: combined.FinancialSnapshot.OverallUtilization.InexactFloat64(),
		MonthlySpending:    combined.FinancialSnapshot.MonthlySpending.InexactFloat64(),
		OpenAccounts:       combined.CreditHealth.OpenAccounts,
		DelinquentAccounts: combined.CreditHealth.DelinquentAccounts,
		HardInquiries:      combined.CreditHealth.HardInquiries,
	}

	for _, rec := range combined.Recommendations {
		output.Recommendations = append(output.Recommendations, RecommendationEntry{
			Priority: rec.Priority,
			Category: rec.Category,
			Message:  rec.Message,
		})
	}

	return nil, output, nil
}

// CreateLinkToken tool - starts the card provider link flow
type CreateLinkTokenInput struct {
	UserID string `json:"userId" jsonschema:"Stable identifier for the end user"`
}

type CreateLinkTokenOutput struct {
	LinkToken  string `json:"linkToken" jsonschema:"Token for the provider link widget"`
	Expiration string `json:"expiration" jsonschema:"Token expiration timestamp"`
}

func (t *creditTools) CreateLinkToken(ctx context.Context, req *mcp.CallToolRequest, input CreateLinkTokenInput) (*mcp.CallToolResult, CreateLinkTokenOutput, error) {
	if input.UserID == "" {
		return nil, CreateLinkTokenOutput{}, fmt.Errorf("userId is required")
	}

	token, err := t.client.Cards.CreateLinkToken(ctx, input.UserID)
	if err != nil {
		return nil, CreateLinkTokenOutput{}, fmt.Errorf("failed to create link token: %w", err)
	}

	return nil, CreateLinkTokenOutput{
		LinkToken:  token.LinkToken,
		Expiration: token.Expiration.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
