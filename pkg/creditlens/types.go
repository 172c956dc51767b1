package creditlens

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Profile documents serialize money as plain JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Account represents a raw account record from the card provider
type Account struct {
	AccountID    string           `json:"account_id"`
	Name         string           `json:"name"`
	OfficialName string           `json:"official_name,omitempty"`
	Type         string           `json:"type"`
	Subtype      string           `json:"subtype,omitempty"`
	Mask         string           `json:"mask,omitempty"`
	Balances     *AccountBalances `json:"balances"`
}

// AccountBalances holds the balance block of a provider account
type AccountBalances struct {
	Current     decimal.Decimal  `json:"current"`
	Available   *decimal.Decimal `json:"available"`
	Limit       *decimal.Decimal `json:"limit"`
	Currency    string           `json:"iso_currency_code,omitempty"`
	LastUpdated *time.Time       `json:"last_updated_datetime,omitempty"`
}

// Transaction represents a single card transaction
type Transaction struct {
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Date          Date            `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Name          string          `json:"name"`
	MerchantName  string          `json:"merchant_name,omitempty"`
	Category      []string        `json:"category"`
	Pending       bool            `json:"pending"`
}

// CardSummary is the derived per-card view with utilization
type CardSummary struct {
	Name               string           `json:"name"`
	AccountID          string           `json:"account_id"`
	CurrentBalance     decimal.Decimal  `json:"current_balance"`
	CreditLimit        *decimal.Decimal `json:"credit_limit"`
	Available          *decimal.Decimal `json:"available"`
	UtilizationPercent decimal.Decimal  `json:"utilization_percent"`
	LastUpdated        *time.Time       `json:"last_updated,omitempty"`
}

// CardData is the card provider document: credit cards, totals and the
// transaction window. A non-empty Error marks a failed fetch; all other
// fields are zero in that case.
type CardData struct {
	CreditCards  []*CardSummary  `json:"credit_cards"`
	TotalCards   int             `json:"total_cards"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	TotalLimit   decimal.Decimal `json:"total_limit"`
	Transactions []*Transaction  `json:"transactions"`
	Error        string          `json:"error,omitempty"`
}

// HasError reports whether the document carries a provider error marker
func (d *CardData) HasError() bool {
	return d == nil || d.Error != ""
}

// CreditReport is the bureau report envelope
type CreditReport struct {
	CreditReport *CreditReportBody `json:"creditReport"`
}

// CreditReportBody holds the optional sections of a bureau report
type CreditReportBody struct {
	RiskModel     *RiskModel      `json:"riskModel"`
	TradeLines    []*TradeLine    `json:"tradeline"`
	Inquiries     []*Inquiry      `json:"inquiry"`
	PublicRecords []*PublicRecord `json:"publicRecord"`
}

// RiskModel holds the bureau's score block
type RiskModel struct {
	Score          *int     `json:"score"`
	ScoreFactors   []string `json:"scoreFactors,omitempty"`
	ModelIndicator string   `json:"modelIndicator,omitempty"`
}

// TradeLine is one credit account record within a bureau report
type TradeLine struct {
	CreditorName    string           `json:"creditorName"`
	AccountType     string           `json:"accountType"`
	AccountNumber   string           `json:"accountNumber,omitempty"`
	DateOpened      string           `json:"dateOpened,omitempty"`
	AccountStatus   string           `json:"accountStatus"`
	Balance         *decimal.Decimal `json:"balance"`
	HighCredit      *decimal.Decimal `json:"highCredit"`
	PaymentStatus   string           `json:"paymentStatus"`
	PaymentHistory  []string         `json:"paymentHistory,omitempty"`
	LastPaymentDate string           `json:"lastPaymentDate,omitempty"`
	MonthlyPayment  *decimal.Decimal `json:"monthlyPayment,omitempty"`
}

// Inquiry is a credit check entry; type is "hard" or "soft"
type Inquiry struct {
	Type       string `json:"type"`
	Subscriber string `json:"subscriber,omitempty"`
	Date       string `json:"date,omitempty"`
}

// PublicRecord is a public-record entry on a bureau report
type PublicRecord struct {
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
	Date   string `json:"date,omitempty"`
}

// TradeLineView is the flattened account view carried on a CreditSummary
type TradeLineView struct {
	Creditor string          `json:"creditor"`
	Type     string          `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Limit    decimal.Decimal `json:"limit"`
	Status   string          `json:"status"`
}

// CreditSummary is the derived snapshot of a bureau report. A non-empty
// Error marks a failed fetch.
type CreditSummary struct {
	CreditScore        *int             `json:"credit_score"`
	TotalAccounts      int              `json:"total_accounts"`
	OpenAccounts       int              `json:"open_accounts"`
	ClosedAccounts     int              `json:"closed_accounts"`
	TotalBalance       decimal.Decimal  `json:"total_balance"`
	TotalCreditLimit   decimal.Decimal  `json:"total_credit_limit"`
	OverallUtilization decimal.Decimal  `json:"overall_utilization"`
	DelinquentAccounts int              `json:"delinquent_accounts"`
	HardInquiries      int              `json:"hard_inquiries"`
	PublicRecords      int              `json:"public_records"`
	Accounts           []*TradeLineView `json:"accounts"`
	ReportDate         time.Time        `json:"report_date"`
	Error              string           `json:"error,omitempty"`
}

// HasError reports whether the summary carries a provider error marker
func (s *CreditSummary) HasError() bool {
	return s == nil || s.Error != ""
}

// CategoryTotal is one entry of a ranked category list
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MerchantTotal is one entry of a ranked merchant list
type MerchantTotal struct {
	Merchant string          `json:"merchant"`
	Total    decimal.Decimal `json:"total"`
}

// TransactionAnalysis is the derived spending breakdown of a set of
// transactions. Monetary buckets accumulate absolute amounts (gross spend).
type TransactionAnalysis struct {
	MonthlySpending map[string]decimal.Decimal `json:"monthly_spending"`
	TopCategories   []CategoryTotal            `json:"top_categories"`
	TopMerchants    []MerchantTotal            `json:"top_merchants"`
	TotalSpent      decimal.Decimal            `json:"total_spent"`
}

// Months returns the monthly-spending keys in ascending order
func (a *TransactionAnalysis) Months() []string {
	months := make([]string, 0, len(a.MonthlySpending))
	for month := range a.MonthlySpending {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}

// FinancialSnapshot is the card-provider side of a combined summary.
// MonthlySpending sums signed amounts over the trailing 30 days (net cash
// flow), unlike the analysis buckets which use absolute amounts; the
// asymmetry is intentional.
type FinancialSnapshot struct {
	TotalCreditCards        int             `json:"total_credit_cards"`
	TotalBalance            decimal.Decimal `json:"total_balance"`
	TotalCreditLimit        decimal.Decimal `json:"total_credit_limit"`
	OverallUtilization      decimal.Decimal `json:"overall_utilization"`
	RecentTransactionsCount int             `json:"recent_transactions_count"`
	MonthlySpending         decimal.Decimal `json:"monthly_spending"`
}

// CreditHealth is the bureau side of a combined summary
type CreditHealth struct {
	OpenAccounts       int `json:"open_accounts"`
	DelinquentAccounts int `json:"delinquent_accounts"`
	HardInquiries      int `json:"hard_inquiries"`
	PublicRecords      int `json:"public_records"`
}

// Recommendation is one prioritized action item
type Recommendation struct {
	Priority string `json:"priority"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// CombinedSummary merges card-provider and bureau data for presentation
type CombinedSummary struct {
	CreditScore       *int              `json:"credit_score"`
	FinancialSnapshot FinancialSnapshot `json:"financial_snapshot"`
	CreditHealth      CreditHealth      `json:"credit_health"`
	Recommendations   []*Recommendation `json:"recommendations"`
}

// CreditProfile is the full document returned by the profile service
type CreditProfile struct {
	GeneratedAt     time.Time        `json:"generated_at"`
	CardData        *CardData        `json:"card_data"`
	BureauData      *CreditSummary   `json:"bureau_data"`
	CombinedSummary *CombinedSummary `json:"combined_summary"`
}

// ConsumerInfo identifies a consumer to the credit bureau
type ConsumerInfo struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	SSN       string   `json:"ssn"`
	DOB       string   `json:"dob"`
	Address   *Address `json:"address,omitempty"`
}

// Address is a consumer mailing address
type Address struct {
	Line1 string `json:"line1"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// LinkToken is returned by the card provider's link flow
type LinkToken struct {
	LinkToken  string    `json:"link_token"`
	Expiration time.Time `json:"expiration"`
	RequestID  string    `json:"request_id,omitempty"`
}

// TransactionParams filters a transaction fetch
type TransactionParams struct {
	StartDate  time.Time
	EndDate    time.Time
	AccountIDs []string
}
