package billing

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// installmentSuffix matches the "(2/10)", "2/10", "- 2/10" and "Parcela 2/10"
// tails that repeated installments of one purchase carry.
var installmentSuffix = regexp.MustCompile(`(?i)\s*(?:-\s*)?(?:\(\s*(\d{1,3})\s*/\s*(\d{1,3})\s*\)|(?:parcela\s+)?(\d{1,3})\s*/\s*(\d{1,3}))\s*$`)

// BaseDescription strips an installment suffix from a description. A tail
// only counts as a suffix when 1 <= index <= count <= MaxInstallments, so
// "Seguro 2024/2025" keeps its years.
func BaseDescription(description string) string {
	description = strings.TrimSpace(description)
	m := installmentSuffix.FindStringSubmatchIndex(description)
	if m == nil {
		return description
	}
	if m[0] > 0 && isDigit(description[m[0]-1]) {
		return description
	}
	// groups 1-2 hold the parenthesized form, 3-4 the bare one
	g := 1
	if m[2] < 0 {
		g = 3
	}
	i, _ := strconv.Atoi(description[m[2*g]:m[2*g+1]])
	n, _ := strconv.Atoi(description[m[2*g+2]:m[2*g+3]])
	if i < 1 || i > n || n > MaxInstallments {
		return description
	}
	return strings.TrimSpace(description[:m[0]])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// GroupKey identifies the purchase an installment line belongs to when no
// purchase id is available.
func GroupKey(description string, purchaseDate Date) string {
	return strings.ToLower(BaseDescription(description)) + "|" + purchaseDate.String()
}

// UsageLine is one installment as seen by usage and projection reports.
type UsageLine struct {
	PurchaseID   int64
	Description  string
	PurchaseDate Date
	Index        int
	Competencia  Competencia
	Amount       Cents
}

func (l UsageLine) key() string {
	if l.PurchaseID != 0 {
		return fmt.Sprintf("purchase:%d", l.PurchaseID)
	}
	return GroupKey(l.Description, l.PurchaseDate)
}

// GroupUsage is what is still owed on one purchase.
type GroupUsage struct {
	Key              string `json:"key"`
	Description      string `json:"description"`
	PurchaseDate     Date   `json:"purchase_date"`
	Remaining        Cents  `json:"remaining"`
	InstallmentsLeft int    `json:"installments_left"`
}

// Usage is the committed amount of a card from the open cycle onwards.
type Usage struct {
	Open   Competencia  `json:"open_competencia"`
	Total  Cents        `json:"total"`
	Groups []GroupUsage `json:"groups"`
}

// AggregateUsage sums every installment billed in open or later. Lines with
// the same purchase and installment index are counted once.
func AggregateUsage(lines []UsageLine, open Competencia) Usage {
	type group struct {
		usage GroupUsage
		seen  map[int]bool
	}
	groups := make(map[string]*group)

	for _, l := range lines {
		if l.Competencia.Before(open) {
			continue
		}
		k := l.key()
		g, ok := groups[k]
		if !ok {
			g = &group{
				usage: GroupUsage{
					Key:          k,
					Description:  BaseDescription(l.Description),
					PurchaseDate: l.PurchaseDate,
				},
				seen: make(map[int]bool),
			}
			groups[k] = g
		}
		if g.seen[l.Index] {
			continue
		}
		g.seen[l.Index] = true
		g.usage.Remaining += l.Amount
		g.usage.InstallmentsLeft++
	}

	out := Usage{Open: open, Groups: make([]GroupUsage, 0, len(groups))}
	for _, g := range groups {
		out.Total += g.usage.Remaining
		out.Groups = append(out.Groups, g.usage)
	}
	sort.Slice(out.Groups, func(i, j int) bool {
		a, b := out.Groups[i], out.Groups[j]
		if c := a.PurchaseDate.Compare(b.PurchaseDate); c != 0 {
			return c < 0
		}
		return a.Key < b.Key
	})
	return out
}

// MonthTotal is the expected invoice amount of one competência.
type MonthTotal struct {
	Competencia  Competencia `json:"competencia"`
	Total        Cents       `json:"total"`
	Installments int         `json:"installments"`
}

// ProjectInvoices totals lines per competência for months consecutive
// competências starting at from. Months without lines are reported as zero.
func ProjectInvoices(lines []UsageLine, from Competencia, months int) ([]MonthTotal, error) {
	if months < 1 {
		return nil, invalidf("months %d must be at least 1", months)
	}
	if months > MaxInstallments {
		return nil, invalidf("months %d exceeds %d", months, MaxInstallments)
	}
	out := make([]MonthTotal, months)
	for i := range out {
		out[i].Competencia = from.AddMonths(i)
	}
	seen := make(map[string]bool)
	for _, l := range lines {
		i := from.MonthsUntil(l.Competencia)
		if i < 0 || i >= months {
			continue
		}
		k := fmt.Sprintf("%s#%d", l.key(), l.Index)
		if seen[k] {
			continue
		}
		seen[k] = true
		out[i].Total += l.Amount
		out[i].Installments++
	}
	return out, nil
}
