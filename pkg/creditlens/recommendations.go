package creditlens

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Score bands (standard FICO ranges)
const (
	scorePoorCeiling = 580
	scoreFairCeiling = 670
	scoreGoodFloor   = 740
)

var (
	utilizationHigh     = decimal.NewFromInt(30)
	utilizationElevated = decimal.NewFromInt(10)
)

const maxHardInquiries = 5

// GenerateRecommendations produces prioritized action items from combined
// credit metrics. Rules are evaluated independently in a fixed order, so a
// profile can collect several recommendations; bands outside the explicit
// thresholds (a score of 700, say) produce none.
func GenerateRecommendations(score *int, utilization decimal.Decimal, delinquent, inquiries int) []*Recommendation {
	recommendations := []*Recommendation{}

	if score != nil {
		switch {
		case *score < scorePoorCeiling:
			recommendations = append(recommendations, &Recommendation{
				Priority: "high",
				Category: "credit_score",
				Message:  "Your credit score is in the poor range. Focus on paying bills on time and reducing debt.",
			})
		case *score < scoreFairCeiling:
			recommendations = append(recommendations, &Recommendation{
				Priority: "medium",
				Category: "credit_score",
				Message:  "Your credit score is fair. Continue building positive payment history.",
			})
		case *score >= scoreGoodFloor:
			recommendations = append(recommendations, &Recommendation{
				Priority: "low",
				Category: "credit_score",
				Message:  "Great credit score! You qualify for the best rates and terms.",
			})
		}
	}

	if utilization.GreaterThan(utilizationHigh) {
		recommendations = append(recommendations, &Recommendation{
			Priority: "high",
			Category: "utilization",
			Message:  fmt.Sprintf("Credit utilization is %s%%. Try to keep it below 30%% by paying down balances.", utilization.StringFixed(1)),
		})
	} else if utilization.GreaterThan(utilizationElevated) {
		recommendations = append(recommendations, &Recommendation{
			Priority: "medium",
			Category: "utilization",
			Message:  fmt.Sprintf("Credit utilization is %s%%. Keeping it below 10%% could improve your score.", utilization.StringFixed(1)),
		})
	}

	if delinquent > 0 {
		recommendations = append(recommendations, &Recommendation{
			Priority: "critical",
			Category: "payment_history",
			Message:  fmt.Sprintf("You have %d delinquent account(s). Bring these current immediately to prevent further damage.", delinquent),
		})
	}

	if inquiries > maxHardInquiries {
		recommendations = append(recommendations, &Recommendation{
			Priority: "medium",
			Category: "inquiries",
			Message:  fmt.Sprintf("You have %d hard inquiries. Avoid applying for new credit for a while.", inquiries),
		})
	}

	return recommendations
}
