package creditlens

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// recentWindowDays is the trailing window for the combined summary's
// monthly-spending figure
const recentWindowDays = 30

// BuildCombinedSummary merges the card provider document and the bureau
// summary into one presentation document. Either input may carry an error
// marker; that side contributes zeros and the other side still counts.
// The clock is injected so the 30-day window is deterministic under test.
//
// MonthlySpending sums SIGNED amounts (net cash flow over the window);
// everything in TransactionAnalysis uses absolute amounts (gross spend).
// The asymmetry is deliberate, keep it.
func BuildCombinedSummary(cards *CardData, credit *CreditSummary, now time.Time) *CombinedSummary {
	summary := &CombinedSummary{
		FinancialSnapshot: FinancialSnapshot{
			TotalBalance:       decimal.Zero,
			TotalCreditLimit:   decimal.Zero,
			OverallUtilization: decimal.Zero,
			MonthlySpending:    decimal.Zero,
		},
		Recommendations: []*Recommendation{},
	}

	if !credit.HasError() {
		summary.CreditScore = credit.CreditScore
		summary.CreditHealth = CreditHealth{
			OpenAccounts:       credit.OpenAccounts,
			DelinquentAccounts: credit.DelinquentAccounts,
			HardInquiries:      credit.HardInquiries,
			PublicRecords:      credit.PublicRecords,
		}
	}

	if !cards.HasError() {
		summary.FinancialSnapshot.TotalCreditCards = cards.TotalCards
		summary.FinancialSnapshot.TotalBalance = cards.TotalBalance
		summary.FinancialSnapshot.TotalCreditLimit = cards.TotalLimit
		summary.FinancialSnapshot.RecentTransactionsCount = len(cards.Transactions)

		// Net cash flow over the trailing 30 days, boundary inclusive.
		// Transactions without a usable date stay out of the window.
		cutoff := now.AddDate(0, 0, -recentWindowDays)
		cutoffDate := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)
		for _, txn := range cards.Transactions {
			if txn == nil || txn.Date.IsZero() {
				continue
			}
			if !txn.Date.Before(cutoffDate) {
				summary.FinancialSnapshot.MonthlySpending = summary.FinancialSnapshot.MonthlySpending.Add(txn.Amount)
			}
		}
	}

	// Utilization reconciliation: the card provider's own totals win, but a
	// zero result falls back to the bureau figure. Order matters, this is a
	// precedence rule, not two interchangeable sources.
	utilization := UtilizationPercent(&summary.FinancialSnapshot.TotalBalance, &summary.FinancialSnapshot.TotalCreditLimit)
	if utilization.IsZero() && !credit.HasError() {
		utilization = credit.OverallUtilization
	}
	summary.FinancialSnapshot.OverallUtilization = utilization

	summary.Recommendations = GenerateRecommendations(
		summary.CreditScore,
		utilization,
		summary.CreditHealth.DelinquentAccounts,
		summary.CreditHealth.HardInquiries,
	)

	return summary
}

// profileService implements the ProfileService interface
type profileService struct {
	client *Client
}

// GetComplete fetches both provider documents and builds the combined
// summary. A provider failure degrades that provider's document to an
// error marker instead of failing the whole profile.
func (s *profileService) GetComplete(ctx context.Context, accessToken string, consumer *ConsumerInfo, days int) (*CreditProfile, error) {
	now := s.client.now()
	profile := &CreditProfile{GeneratedAt: now}

	cardData, err := s.client.Cards.GetCardData(ctx, accessToken, days)
	if err != nil {
		s.client.captureError(ctx, err, "cards")
		if s.client.options.Logger != nil {
			s.client.options.Logger.Warn("Card provider fetch failed", "error", err)
		}
		cardData = &CardData{Error: err.Error()}
	}
	profile.CardData = cardData

	bureauData, err := s.client.Bureau.GetSummary(ctx, consumer)
	if err != nil {
		s.client.captureError(ctx, err, "bureau")
		if s.client.options.Logger != nil {
			s.client.options.Logger.Warn("Bureau fetch failed", "error", err)
		}
		bureauData = &CreditSummary{Error: err.Error(), ReportDate: now, Accounts: []*TradeLineView{}}
	}
	profile.BureauData = bureauData

	profile.CombinedSummary = BuildCombinedSummary(cardData, bureauData, now)

	return profile, nil
}

// AnalyzeSpending fetches the card provider's transaction window and runs
// the spending analysis over it
func (s *profileService) AnalyzeSpending(ctx context.Context, accessToken string, days int) (*TransactionAnalysis, error) {
	cardData, err := s.client.Cards.GetCardData(ctx, accessToken, days)
	if err != nil {
		return nil, err
	}
	return AnalyzeTransactions(cardData.Transactions), nil
}
