package creditlens

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// UtilizationPercent returns balance/limit as a percentage rounded to two
// decimal places. It returns zero when the limit is nil or not positive,
// or when the balance is nil. Every utilization figure in the module goes
// through this function so the edge cases behave identically everywhere.
func UtilizationPercent(balance, limit *decimal.Decimal) decimal.Decimal {
	if balance == nil || limit == nil || !limit.IsPositive() {
		return decimal.Zero
	}
	return balance.Div(*limit).Mul(hundred).Round(2)
}
