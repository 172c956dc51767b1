package creditlens

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)

func healthyCards() *CardData {
	return &CardData{
		CreditCards: []*CardSummary{
			{Name: "Card A", CurrentBalance: decimal.NewFromInt(1500), CreditLimit: dec("10000")},
		},
		TotalCards:   1,
		TotalBalance: decimal.NewFromInt(1500),
		TotalLimit:   decimal.NewFromInt(10000),
		Transactions: []*Transaction{
			txn("2025-11-10", 120, []string{"Food"}, "Grocer"),
			txn("2025-11-12", -20, []string{"Food"}, "Refund"),
		},
	}
}

func healthyCredit() *CreditSummary {
	return &CreditSummary{
		CreditScore:        intPtr(742),
		TotalAccounts:      2,
		OpenAccounts:       2,
		TotalBalance:       decimal.NewFromInt(2000),
		TotalCreditLimit:   decimal.NewFromInt(25000),
		OverallUtilization: decimal.NewFromInt(8),
		DelinquentAccounts: 0,
		HardInquiries:      1,
		PublicRecords:      0,
		Accounts:           []*TradeLineView{},
		ReportDate:         testNow,
	}
}

func TestBuildCombinedSummary_BothSidesHealthy(t *testing.T) {
	summary := BuildCombinedSummary(healthyCards(), healthyCredit(), testNow)

	require.NotNil(t, summary.CreditScore)
	assert.Equal(t, 742, *summary.CreditScore)

	assert.Equal(t, 1, summary.FinancialSnapshot.TotalCreditCards)
	assert.Equal(t, "1500", summary.FinancialSnapshot.TotalBalance.String())
	assert.Equal(t, "10000", summary.FinancialSnapshot.TotalCreditLimit.String())
	assert.Equal(t, 2, summary.FinancialSnapshot.RecentTransactionsCount)

	// Signed sum: 120 - 20
	assert.Equal(t, "100", summary.FinancialSnapshot.MonthlySpending.String())

	// 1500 / 10000 from provider totals, bureau figure unused
	assert.Equal(t, "15", summary.FinancialSnapshot.OverallUtilization.String())

	assert.Equal(t, 2, summary.CreditHealth.OpenAccounts)
	assert.Equal(t, 1, summary.CreditHealth.HardInquiries)

	// Score 742 in the excellent band, utilization 15 in the elevated band
	require.Len(t, summary.Recommendations, 2)
	assert.Equal(t, "credit_score", summary.Recommendations[0].Category)
	assert.Equal(t, "low", summary.Recommendations[0].Priority)
	assert.Equal(t, "utilization", summary.Recommendations[1].Category)
	assert.Equal(t, "medium", summary.Recommendations[1].Priority)
}

func TestBuildCombinedSummary_CardErrorZerosThatSideOnly(t *testing.T) {
	cards := &CardData{Error: "provider unavailable"}
	summary := BuildCombinedSummary(cards, healthyCredit(), testNow)

	assert.Equal(t, 0, summary.FinancialSnapshot.TotalCreditCards)
	assert.True(t, summary.FinancialSnapshot.TotalBalance.IsZero())
	assert.True(t, summary.FinancialSnapshot.MonthlySpending.IsZero())

	// Bureau side still counts, including the utilization fallback
	require.NotNil(t, summary.CreditScore)
	assert.Equal(t, 742, *summary.CreditScore)
	assert.Equal(t, "8", summary.FinancialSnapshot.OverallUtilization.String())
	assert.Equal(t, 2, summary.CreditHealth.OpenAccounts)
}

func TestBuildCombinedSummary_BureauErrorZerosThatSideOnly(t *testing.T) {
	credit := &CreditSummary{Error: "bureau unavailable", OverallUtilization: decimal.NewFromInt(99)}
	summary := BuildCombinedSummary(healthyCards(), credit, testNow)

	assert.Nil(t, summary.CreditScore)
	assert.Equal(t, CreditHealth{}, summary.CreditHealth)

	// Provider utilization still computed; no fallback to the errored bureau
	assert.Equal(t, "15", summary.FinancialSnapshot.OverallUtilization.String())
	assert.Equal(t, 1, summary.FinancialSnapshot.TotalCreditCards)
}

func TestBuildCombinedSummary_BothSidesErrored(t *testing.T) {
	summary := BuildCombinedSummary(
		&CardData{Error: "down"},
		&CreditSummary{Error: "down"},
		testNow,
	)

	assert.Nil(t, summary.CreditScore)
	assert.True(t, summary.FinancialSnapshot.OverallUtilization.IsZero())
	assert.NotNil(t, summary.Recommendations)
	assert.Empty(t, summary.Recommendations)
}

func TestBuildCombinedSummary_NilInputsTreatedAsErrored(t *testing.T) {
	summary := BuildCombinedSummary(nil, nil, testNow)

	assert.Nil(t, summary.CreditScore)
	assert.True(t, summary.FinancialSnapshot.MonthlySpending.IsZero())
	assert.Empty(t, summary.Recommendations)
}

func TestBuildCombinedSummary_UtilizationFallsBackWhenProviderZero(t *testing.T) {
	cards := healthyCards()
	cards.TotalBalance = decimal.Zero
	credit := healthyCredit()
	credit.OverallUtilization = decimal.NewFromInt(42)

	summary := BuildCombinedSummary(cards, credit, testNow)

	assert.Equal(t, "42", summary.FinancialSnapshot.OverallUtilization.String())
}

func TestBuildCombinedSummary_ThirtyDayWindowBoundary(t *testing.T) {
	cards := &CardData{
		Transactions: []*Transaction{
			txn("2025-10-21", 10, nil, "on the boundary"), // exactly 30 days back, inclusive
			txn("2025-10-20", 100, nil, "outside"),
			txn("2025-11-19", 5, nil, "inside"),
			txn("", 1000, nil, "undated, excluded"),
			nil,
		},
	}

	summary := BuildCombinedSummary(cards, &CreditSummary{Error: "down"}, testNow)

	assert.Equal(t, "15", summary.FinancialSnapshot.MonthlySpending.String())
	assert.Equal(t, 5, summary.FinancialSnapshot.RecentTransactionsCount)
}

func TestProfileService_GetComplete(t *testing.T) {
	cards := new(MockTransport)
	bureau := new(MockTransport)
	tokens := new(MockTokenSource)
	client := newTestClient(cards, bureau, tokens, testNow)

	cards.On("Do", mock.Anything, "POST", accountsGetEndpoint, mock.Anything, mock.Anything).
		Return(`{"accounts":[{"account_id":"acc-1","name":"Card A","type":"credit","balances":{"current":1500,"limit":10000}}]}`, nil)
	cards.On("Do", mock.Anything, "POST", transactionsGetEndpoint, mock.Anything, mock.Anything).
		Return(`{"transactions":[{"transaction_id":"t1","account_id":"acc-1","date":"2025-11-10","amount":120,"name":"Grocer","category":["Food"]}],"total_transactions":1}`, nil)

	tokens.On("Token", mock.Anything).Return("bureau-token", nil)
	bureau.On("SetAuth", "Bearer bureau-token").Return()
	bureau.On("Do", mock.Anything, "POST", creditReportEndpoint, mock.Anything, mock.Anything).
		Return(`{"creditReport":{"riskModel":{"score":742},"tradeline":[{"creditorName":"Bank A","accountStatus":"Open","balance":2000,"highCredit":25000,"paymentStatus":"C"}]}}`, nil)

	profile, err := client.Profile.GetComplete(context.Background(), "access-token", &ConsumerInfo{FirstName: "Jane"}, 30)

	require.NoError(t, err)
	assert.Equal(t, testNow, profile.GeneratedAt)
	assert.False(t, profile.CardData.HasError())
	assert.False(t, profile.BureauData.HasError())
	assert.Equal(t, 742, *profile.CombinedSummary.CreditScore)
	assert.Equal(t, "15", profile.CombinedSummary.FinancialSnapshot.OverallUtilization.String())

	cards.AssertExpectations(t)
	bureau.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestProfileService_GetComplete_BureauFailureDegrades(t *testing.T) {
	cards := new(MockTransport)
	bureau := new(MockTransport)
	tokens := new(MockTokenSource)
	client := newTestClient(cards, bureau, tokens, testNow)

	cards.On("Do", mock.Anything, "POST", accountsGetEndpoint, mock.Anything, mock.Anything).
		Return(`{"accounts":[{"account_id":"acc-1","name":"Card A","type":"credit","balances":{"current":500,"limit":10000}}]}`, nil)
	cards.On("Do", mock.Anything, "POST", transactionsGetEndpoint, mock.Anything, mock.Anything).
		Return(`{"transactions":[],"total_transactions":0}`, nil)

	tokens.On("Token", mock.Anything).Return("", ErrNotAuthenticated)

	profile, err := client.Profile.GetComplete(context.Background(), "access-token", &ConsumerInfo{}, 30)

	require.NoError(t, err)
	assert.False(t, profile.CardData.HasError())
	assert.True(t, profile.BureauData.HasError())
	assert.Contains(t, profile.BureauData.Error, "failed to get bureau token")
	assert.Equal(t, testNow, profile.BureauData.ReportDate)
	assert.Nil(t, profile.CombinedSummary.CreditScore)
	assert.Equal(t, "5", profile.CombinedSummary.FinancialSnapshot.OverallUtilization.String())
}

func TestProfileService_GetComplete_CardFailureDegrades(t *testing.T) {
	cards := new(MockTransport)
	bureau := new(MockTransport)
	tokens := new(MockTokenSource)
	client := newTestClient(cards, bureau, tokens, testNow)

	cards.On("Do", mock.Anything, "POST", accountsGetEndpoint, mock.Anything, mock.Anything).
		Return(nil, ErrServerError)

	tokens.On("Token", mock.Anything).Return("bureau-token", nil)
	bureau.On("SetAuth", "Bearer bureau-token").Return()
	bureau.On("Do", mock.Anything, "POST", creditReportEndpoint, mock.Anything, mock.Anything).
		Return(`{"creditReport":{"riskModel":{"score":650},"tradeline":[]}}`, nil)

	profile, err := client.Profile.GetComplete(context.Background(), "access-token", &ConsumerInfo{}, 30)

	require.NoError(t, err)
	assert.True(t, profile.CardData.HasError())
	assert.False(t, profile.BureauData.HasError())
	assert.Equal(t, 650, *profile.CombinedSummary.CreditScore)

	// Fair score band still produces a recommendation
	require.NotEmpty(t, profile.CombinedSummary.Recommendations)
	assert.Equal(t, "credit_score", profile.CombinedSummary.Recommendations[0].Category)
	assert.Equal(t, "medium", profile.CombinedSummary.Recommendations[0].Priority)
}

func TestProfileService_AnalyzeSpending(t *testing.T) {
	cards := new(MockTransport)
	client := newTestClient(cards, new(MockTransport), new(MockTokenSource), testNow)

	cards.On("Do", mock.Anything, "POST", accountsGetEndpoint, mock.Anything, mock.Anything).
		Return(`{"accounts":[{"account_id":"acc-1","name":"Card A","type":"credit","balances":{"current":0}}]}`, nil)
	cards.On("Do", mock.Anything, "POST", transactionsGetEndpoint, mock.Anything, mock.Anything).
		Return(`{"transactions":[
			{"transaction_id":"t1","account_id":"acc-1","date":"2025-11-10","amount":50,"name":"Cafe","category":["Food"]},
			{"transaction_id":"t2","account_id":"acc-1","date":"2025-10-15","amount":100,"name":"Store","category":["Shopping"]}
		],"total_transactions":2}`, nil)

	analysis, err := client.Profile.AnalyzeSpending(context.Background(), "access-token", 60)

	require.NoError(t, err)
	assert.Equal(t, "150", analysis.TotalSpent.String())
	assert.Equal(t, []string{"2025-10", "2025-11"}, analysis.Months())
	assert.Equal(t, "Shopping", analysis.TopCategories[0].Category)
}

func TestProfileService_AnalyzeSpending_PropagatesError(t *testing.T) {
	client := newTestClient(new(MockTransport), new(MockTransport), new(MockTokenSource), testNow)

	_, err := client.Profile.AnalyzeSpending(context.Background(), "", 30)
	assert.ErrorIs(t, err, ErrMissingAccessToken)
}

func TestCreditProfile_JSONRoundTrip(t *testing.T) {
	profile := &CreditProfile{
		GeneratedAt:     testNow,
		CardData:        healthyCards(),
		BureauData:      healthyCredit(),
		CombinedSummary: BuildCombinedSummary(healthyCards(), healthyCredit(), testNow),
	}

	data, err := json.Marshal(profile)
	require.NoError(t, err)

	// Money must serialize as JSON numbers, not strings
	assert.Contains(t, string(data), `"total_balance":1500`)
	assert.Contains(t, string(data), `"overall_utilization":15`)

	var decoded CreditProfile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.CardData.TotalBalance.Equal(profile.CardData.TotalBalance))
	assert.Equal(t, *profile.CombinedSummary.CreditScore, *decoded.CombinedSummary.CreditScore)
	assert.Len(t, decoded.CombinedSummary.Recommendations, len(profile.CombinedSummary.Recommendations))
}
