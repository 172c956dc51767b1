package creditlens

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	maxTopCategories = 5
	maxTopMerchants  = 10

	fallbackCategory = "Other"
	fallbackMerchant = "Unknown"
)

// AnalyzeTransactions groups transactions by month, category and merchant
// and returns ranked spending totals. All buckets accumulate absolute
// amounts: refunds and payments count toward gross spend here, net cash
// flow is the combined summary's concern. An empty input yields an empty
// analysis, not an error.
func AnalyzeTransactions(transactions []*Transaction) *TransactionAnalysis {
	analysis := &TransactionAnalysis{
		MonthlySpending: map[string]decimal.Decimal{},
		TopCategories:   []CategoryTotal{},
		TopMerchants:    []MerchantTotal{},
		TotalSpent:      decimal.Zero,
	}

	if len(transactions) == 0 {
		return analysis
	}

	categoryTotals := map[string]decimal.Decimal{}
	categoryOrder := []string{}
	merchantTotals := map[string]decimal.Decimal{}
	merchantOrder := []string{}

	for _, txn := range transactions {
		if txn == nil {
			continue
		}

		amount := txn.Amount.Abs()

		// Monthly bucket; a transaction without a usable date still counts
		// toward category and merchant totals
		if month := txn.Date.MonthKey(); month != "" {
			analysis.MonthlySpending[month] = analysis.MonthlySpending[month].Add(amount)
		}

		category := fallbackCategory
		if len(txn.Category) > 0 {
			category = txn.Category[0]
		}
		if _, seen := categoryTotals[category]; !seen {
			categoryOrder = append(categoryOrder, category)
		}
		categoryTotals[category] = categoryTotals[category].Add(amount)

		merchant := txn.Name
		if merchant == "" {
			merchant = fallbackMerchant
		}
		if _, seen := merchantTotals[merchant]; !seen {
			merchantOrder = append(merchantOrder, merchant)
		}
		merchantTotals[merchant] = merchantTotals[merchant].Add(amount)
	}

	// Rank descending by total; the stable sort keeps first-seen order on ties
	for _, category := range categoryOrder {
		analysis.TopCategories = append(analysis.TopCategories, CategoryTotal{
			Category: category,
			Total:    categoryTotals[category],
		})
	}
	sort.SliceStable(analysis.TopCategories, func(i, j int) bool {
		return analysis.TopCategories[i].Total.GreaterThan(analysis.TopCategories[j].Total)
	})
	if len(analysis.TopCategories) > maxTopCategories {
		analysis.TopCategories = analysis.TopCategories[:maxTopCategories]
	}

	for _, merchant := range merchantOrder {
		total := merchantTotals[merchant]
		analysis.TopMerchants = append(analysis.TopMerchants, MerchantTotal{
			Merchant: merchant,
			Total:    total,
		})
		analysis.TotalSpent = analysis.TotalSpent.Add(total)
	}
	sort.SliceStable(analysis.TopMerchants, func(i, j int) bool {
		return analysis.TopMerchants[i].Total.GreaterThan(analysis.TopMerchants[j].Total)
	})
	if len(analysis.TopMerchants) > maxTopMerchants {
		analysis.TopMerchants = analysis.TopMerchants[:maxTopMerchants]
	}

	return analysis
}
