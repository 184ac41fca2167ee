package service

import (
	model "edumarkaz_backend/internals/features/billing/model"
)

// ResolveOwed computes the effective amount a student owes for one group
// and one billing period, given every non-voided payment of that period.
//
// Discounts accumulate additively across the period's payments: percent
// discounts sum (not compound) and apply to the group price first, fixed
// discounts sum and subtract after. The result never goes below zero and
// is order-independent.
func ResolveOwed(groupPrice int64, payments []model.PaymentModel) int64 {
	var totalPercent int64
	var totalFixed int64
	for i := range payments {
		if payments[i].IsVoided() {
			continue
		}
		totalPercent += int64(payments[i].PaymentDiscountPercent)
		totalFixed += payments[i].PaymentDiscountFixed
	}

	if totalPercent > 100 {
		totalPercent = 100
	}

	// Integer round-half-up of groupPrice * (100 - pct) / 100.
	afterPercent := groupPrice
	if totalPercent > 0 {
		afterPercent = (groupPrice*(100-totalPercent) + 50) / 100
	}

	owed := afterPercent - totalFixed
	if owed < 0 {
		owed = 0
	}
	return owed
}

// SumPaid totals the received amounts of the non-voided rows.
func SumPaid(payments []model.PaymentModel) int64 {
	var total int64
	for i := range payments {
		if payments[i].IsVoided() {
			continue
		}
		total += payments[i].PaymentPrice
	}
	return total
}
