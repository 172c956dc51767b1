package creditlens

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const creditReportEndpoint = "/consumerservices/credit-profile/v2/credit-report"

// bureauService implements the BureauService interface
type bureauService struct {
	client *Client
}

// creditReportRequest is the bureau's credit-profile request payload
type creditReportRequest struct {
	ConsumerPII        *ConsumerInfo      `json:"consumerPii"`
	Requestor          requestor          `json:"requestor"`
	PermissiblePurpose permissiblePurpose `json:"permissiblePurpose"`
	AddOns             addOns             `json:"addOns"`
}

type requestor struct {
	SubscriberCode string `json:"subscriberCode"`
}

type permissiblePurpose struct {
	Type  string `json:"type"`
	Terms string `json:"terms"`
}

type addOns struct {
	ScoreIndicator bool `json:"scoreIndicator"`
}

// GetReport fetches the full credit report for a consumer
func (s *bureauService) GetReport(ctx context.Context, consumer *ConsumerInfo) (*CreditReport, error) {
	return s.getReport(ctx, consumer, true)
}

func (s *bureauService) getReport(ctx context.Context, consumer *ConsumerInfo, includeScore bool) (*CreditReport, error) {
	if consumer == nil {
		return nil, errors.New("consumer info is required")
	}

	token, err := s.client.bureauTokens.Token(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bureau token")
	}
	s.client.bureau.SetAuth("Bearer " + token)

	payload := &creditReportRequest{
		ConsumerPII: consumer,
		Requestor:   requestor{SubscriberCode: s.client.options.BureauClientID},
		// Consumer requesting their own credit
		PermissiblePurpose: permissiblePurpose{Type: "OwnCredit", Terms: "Y"},
		AddOns:             addOns{ScoreIndicator: includeScore},
	}

	var report CreditReport
	if err := s.client.bureau.Do(ctx, "POST", creditReportEndpoint, payload, &report); err != nil {
		return nil, errors.Wrap(err, "failed to fetch credit report")
	}

	return &report, nil
}

// GetScore returns the risk-model block of the report
func (s *bureauService) GetScore(ctx context.Context, consumer *ConsumerInfo) (*RiskModel, error) {
	report, err := s.getReport(ctx, consumer, true)
	if err != nil {
		return nil, err
	}

	if report.CreditReport == nil || report.CreditReport.RiskModel == nil {
		return nil, errors.Wrap(ErrNotFound, "score not found in report")
	}

	return report.CreditReport.RiskModel, nil
}

// GetTradeLines returns the report's credit accounts flattened with
// per-account utilization
func (s *bureauService) GetTradeLines(ctx context.Context, consumer *ConsumerInfo) ([]*TradeLineAccount, error) {
	report, err := s.getReport(ctx, consumer, false)
	if err != nil {
		return nil, err
	}

	accounts := []*TradeLineAccount{}
	if report.CreditReport == nil {
		return accounts, nil
	}

	for _, tl := range report.CreditReport.TradeLines {
		if tl == nil {
			continue
		}
		accounts = append(accounts, &TradeLineAccount{
			Creditor:        tl.CreditorName,
			AccountType:     tl.AccountType,
			AccountNumber:   maskAccountNumber(tl.AccountNumber),
			OpenDate:        tl.DateOpened,
			Status:          tl.AccountStatus,
			Balance:         tl.Balance,
			CreditLimit:     tl.HighCredit,
			PaymentStatus:   tl.PaymentStatus,
			LastPaymentDate: tl.LastPaymentDate,
			MonthlyPayment:  tl.MonthlyPayment,
			Utilization:     UtilizationPercent(tl.Balance, tl.HighCredit),
		})
	}

	return accounts, nil
}

// GetSummary fetches the report and derives the aggregate credit summary
func (s *bureauService) GetSummary(ctx context.Context, consumer *ConsumerInfo) (*CreditSummary, error) {
	report, err := s.getReport(ctx, consumer, true)
	if err != nil {
		return nil, err
	}

	return SummarizeReport(report, s.client.now()), nil
}

// TradeLineAccount is a flattened tradeline with derived utilization
type TradeLineAccount struct {
	Creditor        string           `json:"creditor"`
	AccountType     string           `json:"account_type"`
	AccountNumber   string           `json:"account_number,omitempty"`
	OpenDate        string           `json:"open_date,omitempty"`
	Status          string           `json:"status"`
	Balance         *decimal.Decimal `json:"balance"`
	CreditLimit     *decimal.Decimal `json:"credit_limit"`
	PaymentStatus   string           `json:"payment_status"`
	LastPaymentDate string           `json:"last_payment_date,omitempty"`
	MonthlyPayment  *decimal.Decimal `json:"monthly_payment,omitempty"`
	Utilization     decimal.Decimal  `json:"utilization"`
}

// maskAccountNumber keeps only the last four digits
func maskAccountNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}
