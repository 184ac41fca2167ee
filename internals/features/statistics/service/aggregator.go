package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	repository "edumarkaz_backend/internals/features/billing/repository"
	helper "edumarkaz_backend/internals/helpers"
)

// TotalRowLabel names the synthesized bucket appended after the
// per-method rows ("Tushum" on the printed reports).
const TotalRowLabel = "Revenue"

// StatRow is one aggregation bucket: a method label with its transaction
// count and collected sum for the window.
type StatRow struct {
	Method string `json:"method"`
	Count  int64  `json:"count"`
	Sum    int64  `json:"sum"`
}

// Directory is the slice of the read-only directory the statistics
// services need. *directoryservice.Service satisfies it.
type Directory interface {
	ListMethods(ctx context.Context, schoolID uuid.UUID) ([]string, error)
	GroupIDsTaughtBy(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error)
	GetCommissionRate(ctx context.Context, employeeID uuid.UUID) (int, error)
}

// Scope optionally narrows an aggregation to one group or to the groups
// taught by one employee.
type Scope struct {
	GroupID    *uuid.UUID
	EmployeeID *uuid.UUID
}

// Aggregator buckets ledger rows by method over a day, month or year
// window.
type Aggregator struct {
	Ledger    repository.LedgerStore
	Directory Directory
}

func NewAggregator(ledger repository.LedgerStore, dir Directory) *Aggregator {
	return &Aggregator{Ledger: ledger, Directory: dir}
}

// Aggregate returns one row per catalog method (zero-filled, catalog
// insertion order), any off-catalog labels found in the window (sorted,
// after the catalog rows), and the synthesized total row last. The total
// row's sum is computed independently of the grouped query so the two
// cannot drift apart.
func (a *Aggregator) Aggregate(ctx context.Context, schoolID uuid.UUID, period string, scope Scope) ([]StatRow, error) {
	w, err := helper.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	methods, err := a.Directory.ListMethods(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	f := repository.PaymentFilter{
		SchoolID: schoolID,
		From:     &w.Start,
		To:       &w.End,
		GroupID:  scope.GroupID,
	}

	zeroOnly := false
	if scope.EmployeeID != nil {
		groupIDs, err := a.Directory.GroupIDsTaughtBy(ctx, *scope.EmployeeID)
		if err != nil {
			return nil, err
		}
		if len(groupIDs) == 0 {
			// Employee teaches nothing: a valid all-zero answer.
			zeroOnly = true
		}
		f.GroupIDs = groupIDs
	}

	rows := make([]StatRow, 0, len(methods)+1)
	index := make(map[string]int, len(methods))
	for _, m := range methods {
		index[m] = len(rows)
		rows = append(rows, StatRow{Method: m})
	}

	if !zeroOnly {
		grouped, err := a.Ledger.SumByMethod(ctx, f)
		if err != nil {
			return nil, err
		}

		var extra []StatRow
		for _, g := range grouped {
			if i, ok := index[g.Method]; ok {
				rows[i].Count, rows[i].Sum = g.Count, g.Sum
			} else {
				extra = append(extra, StatRow{Method: g.Method, Count: g.Count, Sum: g.Sum})
			}
		}
		sort.Slice(extra, func(i, j int) bool { return extra[i].Method < extra[j].Method })
		rows = append(rows, extra...)
	}

	total := StatRow{Method: TotalRowLabel}
	for _, r := range rows {
		total.Count += r.Count
	}
	if !zeroOnly {
		sum, err := a.Ledger.SumPrice(ctx, f)
		if err != nil {
			return nil, err
		}
		total.Sum = sum
	}
	rows = append(rows, total)

	return rows, nil
}
