package creditlens

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	accountsGetEndpoint     = "/accounts/get"
	transactionsGetEndpoint = "/transactions/get"
	linkTokenEndpoint       = "/link/token/create"

	creditAccountType = "credit"

	// transactionsPageSize is the provider's maximum page size
	transactionsPageSize = 500

	// defaultTransactionDays is the default history window
	defaultTransactionDays = 30
)

// cardService implements the CardService interface
type cardService struct {
	client *Client
}

// GetAccounts retrieves all accounts available to the access token
func (s *cardService) GetAccounts(ctx context.Context, accessToken string) ([]*Account, error) {
	body := map[string]interface{}{
		"client_id":    s.client.options.CardsClientID,
		"secret":       s.client.options.CardsSecret,
		"access_token": accessToken,
	}

	var result struct {
		Accounts  []*Account `json:"accounts"`
		RequestID string     `json:"request_id"`
	}

	if err := s.client.cards.Do(ctx, "POST", accountsGetEndpoint, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get accounts")
	}

	return result.Accounts, nil
}

// GetTransactions retrieves transactions for the given window, following
// offset pagination until the provider's reported total is reached
func (s *cardService) GetTransactions(ctx context.Context, accessToken string, params *TransactionParams) ([]*Transaction, error) {
	if params == nil {
		params = &TransactionParams{}
	}

	endDate := params.EndDate
	if endDate.IsZero() {
		endDate = s.client.now()
	}
	startDate := params.StartDate
	if startDate.IsZero() {
		startDate = endDate.AddDate(0, 0, -defaultTransactionDays)
	}

	options := map[string]interface{}{
		"count": transactionsPageSize,
	}
	if len(params.AccountIDs) > 0 {
		options["account_ids"] = params.AccountIDs
	}

	body := map[string]interface{}{
		"client_id":    s.client.options.CardsClientID,
		"secret":       s.client.options.CardsSecret,
		"access_token": accessToken,
		"start_date":   startDate.Format("2006-01-02"),
		"end_date":     endDate.Format("2006-01-02"),
		"options":      options,
	}

	var result struct {
		Transactions      []*Transaction `json:"transactions"`
		TotalTransactions int            `json:"total_transactions"`
	}

	if err := s.client.cards.Do(ctx, "POST", transactionsGetEndpoint, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get transactions")
	}

	transactions := result.Transactions

	// Page through the remainder
	for len(transactions) < result.TotalTransactions {
		options["offset"] = len(transactions)

		var page struct {
			Transactions      []*Transaction `json:"transactions"`
			TotalTransactions int            `json:"total_transactions"`
		}
		if err := s.client.cards.Do(ctx, "POST", transactionsGetEndpoint, body, &page); err != nil {
			return nil, errors.Wrap(err, "failed to get transactions page")
		}
		if len(page.Transactions) == 0 {
			break
		}
		transactions = append(transactions, page.Transactions...)
	}

	return transactions, nil
}

// GetCardData assembles the card provider document: credit-card accounts
// with per-card utilization, their totals, and the transaction window.
// Results are cached for the client's cache TTL, keyed by token and window.
func (s *cardService) GetCardData(ctx context.Context, accessToken string, days int) (*CardData, error) {
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}
	if days <= 0 {
		days = defaultTransactionDays
	}

	cacheKey := fingerprint("card_data", accessToken, strconv.Itoa(days))
	if cached, ok := s.client.cache.get(cacheKey); ok {
		if data, ok := cached.(*CardData); ok {
			return data, nil
		}
	}

	accounts, err := s.GetAccounts(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	var cards []*Account
	for _, account := range accounts {
		if account != nil && account.Type == creditAccountType {
			cards = append(cards, account)
		}
	}

	cardIDs := make([]string, 0, len(cards))
	for _, card := range cards {
		cardIDs = append(cardIDs, card.AccountID)
	}

	now := s.client.now()
	transactions, err := s.GetTransactions(ctx, accessToken, &TransactionParams{
		StartDate:  now.AddDate(0, 0, -days),
		EndDate:    now,
		AccountIDs: cardIDs,
	})
	if err != nil {
		return nil, err
	}

	data := &CardData{
		CreditCards:  []*CardSummary{},
		TotalCards:   len(cards),
		TotalBalance: decimal.Zero,
		TotalLimit:   decimal.Zero,
		Transactions: transactions,
	}

	for _, card := range cards {
		balances := card.Balances
		if balances == nil {
			balances = &AccountBalances{}
		}

		summary := &CardSummary{
			Name:               card.Name,
			AccountID:          card.AccountID,
			CurrentBalance:     balances.Current,
			CreditLimit:        balances.Limit,
			Available:          balances.Available,
			UtilizationPercent: UtilizationPercent(&balances.Current, balances.Limit),
			LastUpdated:        balances.LastUpdated,
		}
		data.CreditCards = append(data.CreditCards, summary)

		data.TotalBalance = data.TotalBalance.Add(balances.Current)
		if balances.Limit != nil {
			data.TotalLimit = data.TotalLimit.Add(*balances.Limit)
		}
	}

	s.client.cache.set(cacheKey, data)

	return data, nil
}

// CreateLinkToken starts the provider's link flow for a user
func (s *cardService) CreateLinkToken(ctx context.Context, userID string) (*LinkToken, error) {
	body := map[string]interface{}{
		"client_id":     s.client.options.CardsClientID,
		"secret":        s.client.options.CardsSecret,
		"client_name":   "Credit History App",
		"products":      []string{"transactions", "auth"},
		"country_codes": []string{"US"},
		"language":      "en",
		"user": map[string]string{
			"client_user_id": userID,
		},
	}

	var result LinkToken
	if err := s.client.cards.Do(ctx, "POST", linkTokenEndpoint, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to create link token")
	}

	return &result, nil
}
