package billing

import "github.com/shopspring/decimal"

var daysPerYear = decimal.NewFromInt(365)

// LateInterest is simple interest on amount at an annual percentage rate
// for the given number of days, rounded to the cent. Non-positive inputs
// yield zero.
func LateInterest(amount Cents, annualRatePercent decimal.Decimal, days int) Cents {
	if amount <= 0 || days <= 0 || !annualRatePercent.IsPositive() {
		return 0
	}
	interest := amount.Decimal().
		Mul(annualRatePercent).
		Div(hundred).
		Mul(decimal.NewFromInt(int64(days))).
		Div(daysPerYear)
	return RoundCents(interest)
}
