package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	repository "edumarkaz_backend/internals/features/billing/repository"
	helper "edumarkaz_backend/internals/helpers"
)

// RevenueShare is a teacher's cut of the revenue collected for the
// groups they teach within one window.
type RevenueShare struct {
	Rate  int   `json:"commission_rate"`
	Total int64 `json:"total_revenue"`
	Share int64 `json:"share"`
}

// MonthRevenue is one bucket of the yearly series.
type MonthRevenue struct {
	Month string `json:"month"` // "01".."12"
	Total int64  `json:"total_revenue"`
	Share int64  `json:"share"`
}

// applyRate keeps the historical contract: rate 0 means no commission
// agreed, so the employee takes the full collected sum, not zero.
func applyRate(total int64, rate int) int64 {
	if rate == 0 {
		return total
	}
	return total * int64(rate) / 100
}

// AttributeRevenue computes the employee's share for one period.
func (a *Aggregator) AttributeRevenue(ctx context.Context, schoolID, employeeID uuid.UUID, period string) (*RevenueShare, error) {
	w, err := helper.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	rate, err := a.Directory.GetCommissionRate(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	groupIDs, err := a.Directory.GroupIDsTaughtBy(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(groupIDs) == 0 {
		return &RevenueShare{Rate: rate}, nil
	}

	total, err := a.Ledger.SumPrice(ctx, repository.PaymentFilter{
		SchoolID: schoolID,
		GroupIDs: groupIDs,
		From:     &w.Start,
		To:       &w.End,
	})
	if err != nil {
		return nil, err
	}

	return &RevenueShare{Rate: rate, Total: total, Share: applyRate(total, rate)}, nil
}

// YearlyRevenue is the 12-bucket series for one calendar year, one
// aggregation per month.
func (a *Aggregator) YearlyRevenue(ctx context.Context, schoolID, employeeID uuid.UUID, year string) ([]MonthRevenue, error) {
	w, err := helper.ParsePeriod(year)
	if err != nil {
		return nil, err
	}
	if w.Kind != helper.PeriodYear {
		return nil, fmt.Errorf("%w: yearly series needs a \"YYYY\" period, got %q", helper.ErrInvalidPeriod, year)
	}

	rate, err := a.Directory.GetCommissionRate(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	groupIDs, err := a.Directory.GroupIDsTaughtBy(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	series := make([]MonthRevenue, 0, 12)
	for m := 0; m < 12; m++ {
		start := w.Start.AddDate(0, m, 0)
		end := start.AddDate(0, 1, 0)
		bucket := MonthRevenue{Month: start.Format("01")}

		if len(groupIDs) > 0 {
			total, err := a.Ledger.SumPrice(ctx, repository.PaymentFilter{
				SchoolID: schoolID,
				GroupIDs: groupIDs,
				From:     &start,
				To:       &end,
			})
			if err != nil {
				return nil, err
			}
			bucket.Total = total
			bucket.Share = applyRate(total, rate)
		}
		series = append(series, bucket)
	}
	return series, nil
}
