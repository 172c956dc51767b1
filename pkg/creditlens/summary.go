package creditlens

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// currentPaymentCode is the bureau's payment-status code for an account in
// good standing; anything else present counts as delinquent
const currentPaymentCode = "C"

const hardInquiryType = "hard"

// SummarizeReport derives aggregate metrics from a bureau report. Every
// section of the report is optional: a missing section contributes zeros
// and a missing report body yields the all-zero summary with a nil score.
// The function never fails.
func SummarizeReport(report *CreditReport, reportDate time.Time) *CreditSummary {
	summary := &CreditSummary{
		TotalBalance:       decimal.Zero,
		TotalCreditLimit:   decimal.Zero,
		OverallUtilization: decimal.Zero,
		Accounts:           []*TradeLineView{},
		ReportDate:         reportDate,
	}

	if report == nil || report.CreditReport == nil {
		return summary
	}
	body := report.CreditReport

	if body.RiskModel != nil {
		summary.CreditScore = body.RiskModel.Score
	}

	summary.TotalAccounts = len(body.TradeLines)
	for _, tl := range body.TradeLines {
		if tl == nil {
			continue
		}

		if strings.Contains(strings.ToLower(tl.AccountStatus), "open") {
			summary.OpenAccounts++
		} else {
			summary.ClosedAccounts++
		}

		balance := decimal.Zero
		if tl.Balance != nil {
			balance = *tl.Balance
		}
		limit := decimal.Zero
		if tl.HighCredit != nil {
			limit = *tl.HighCredit
		}
		summary.TotalBalance = summary.TotalBalance.Add(balance)
		summary.TotalCreditLimit = summary.TotalCreditLimit.Add(limit)

		if tl.PaymentStatus != "" && tl.PaymentStatus != currentPaymentCode {
			summary.DelinquentAccounts++
		}

		summary.Accounts = append(summary.Accounts, &TradeLineView{
			Creditor: tl.CreditorName,
			Type:     tl.AccountType,
			Balance:  balance,
			Limit:    limit,
			Status:   tl.AccountStatus,
		})
	}

	summary.OverallUtilization = UtilizationPercent(&summary.TotalBalance, &summary.TotalCreditLimit)

	for _, inq := range body.Inquiries {
		if inq != nil && inq.Type == hardInquiryType {
			summary.HardInquiries++
		}
	}

	summary.PublicRecords = len(body.PublicRecords)

	return summary
}
