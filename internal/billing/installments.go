package billing

import (
	"github.com/shopspring/decimal"
)

// RemainderPolicy decides which installment carries the cents left over when
// the total does not split evenly.
type RemainderPolicy int

const (
	// RemainderFirst adds the leftover cents to installment 1.
	RemainderFirst RemainderPolicy = iota
	// RemainderLast adds the leftover cents to the final installment.
	RemainderLast
)

// ParseRemainderPolicy maps "first" and "last" to a policy.
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch s {
	case "", "first":
		return RemainderFirst, nil
	case "last":
		return RemainderLast, nil
	}
	return RemainderFirst, invalidf("remainder policy %q must be first or last", s)
}

func (p RemainderPolicy) String() string {
	if p == RemainderLast {
		return "last"
	}
	return "first"
}

// Installment is one monthly portion of a purchase.
type Installment struct {
	Index       int         `json:"index"`
	Competencia Competencia `json:"competencia"`
	Amount      Cents       `json:"amount"`
}

// MaxInstallments bounds the schedule length.
const MaxInstallments = 420

// ExpandInstallments splits a purchase into installmentCount monthly
// installments starting at the competência of purchaseDate. The first
// installment carries any leftover cents.
func ExpandInstallments(purchaseDate Date, closingDay int, totalAmount decimal.Decimal, installmentCount int) ([]Installment, error) {
	return ExpandInstallmentsWithPolicy(purchaseDate, closingDay, totalAmount, installmentCount, RemainderFirst)
}

// ExpandInstallmentsWithPolicy is ExpandInstallments with an explicit remainder policy.
func ExpandInstallmentsWithPolicy(purchaseDate Date, closingDay int, totalAmount decimal.Decimal, installmentCount int, policy RemainderPolicy) ([]Installment, error) {
	if installmentCount < 1 {
		return nil, invalidf("installment count %d must be at least 1", installmentCount)
	}
	if installmentCount > MaxInstallments {
		return nil, invalidf("installment count %d exceeds %d", installmentCount, MaxInstallments)
	}
	if !totalAmount.IsPositive() {
		return nil, invalidf("total amount %s must be positive", totalAmount.String())
	}
	total, err := ToCents(totalAmount)
	if err != nil {
		return nil, err
	}
	first, err := ResolveCompetencia(purchaseDate, closingDay)
	if err != nil {
		return nil, err
	}

	amounts := SplitCents(total, installmentCount, policy)
	out := make([]Installment, installmentCount)
	for i := range out {
		out[i] = Installment{
			Index:       i + 1,
			Competencia: first.AddMonths(i),
			Amount:      amounts[i],
		}
	}
	return out, nil
}

// SplitCents divides total into n parts that differ by at most the leftover
// and sum to total exactly. n must be positive.
func SplitCents(total Cents, n int, policy RemainderPolicy) []Cents {
	base := total / Cents(n)
	rest := total - base*Cents(n)
	parts := make([]Cents, n)
	for i := range parts {
		parts[i] = base
	}
	if policy == RemainderLast {
		parts[n-1] += rest
	} else {
		parts[0] += rest
	}
	return parts
}

// Sum adds up installment amounts.
func Sum(installments []Installment) Cents {
	var total Cents
	for _, in := range installments {
		total += in.Amount
	}
	return total
}
