package service

import (
	"github.com/RubachokBoss/hostel-report-service/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FeeSummary разбивает сумму по статусам. Other - статусы вне paid/pending/overdue.
type FeeSummary struct {
	Total   decimal.Decimal
	Paid    decimal.Decimal
	Pending decimal.Decimal
	Overdue decimal.Decimal
	Other   decimal.Decimal
	Count   int
}

func Summarize(fees []models.Fee) FeeSummary {
	var s FeeSummary
	s.Add(fees...)
	return s
}

func (s *FeeSummary) Add(fees ...models.Fee) {
	for _, fee := range fees {
		amount := fee.Amount.Decimal
		s.Total = s.Total.Add(amount)
		s.Count++

		switch fee.NormalizedStatus() {
		case models.FeeStatusPaid:
			s.Paid = s.Paid.Add(amount)
		case models.FeeStatusPending:
			s.Pending = s.Pending.Add(amount)
		case models.FeeStatusOverdue:
			s.Overdue = s.Overdue.Add(amount)
		default:
			s.Other = s.Other.Add(amount)
		}
	}
}

func (s FeeSummary) Merge(other FeeSummary) FeeSummary {
	return FeeSummary{
		Total:   s.Total.Add(other.Total),
		Paid:    s.Paid.Add(other.Paid),
		Pending: s.Pending.Add(other.Pending),
		Overdue: s.Overdue.Add(other.Overdue),
		Other:   s.Other.Add(other.Other),
		Count:   s.Count + other.Count,
	}
}

// CollectionRate - доля оплаченного в процентах, 0 при нулевой сумме
func (s FeeSummary) CollectionRate() decimal.Decimal {
	if s.Total.IsZero() {
		return decimal.Zero
	}
	return s.Paid.Div(s.Total).Mul(hundred)
}

func FormatRate(rate decimal.Decimal) string {
	return rate.StringFixed(1) + "%"
}
