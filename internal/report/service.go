// Package report computes derived financial state: running balance, monthly
// totals, overdue counts and trailing trend series. Everything here is a
// read path; nothing writes.
package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// trendMonths is the window shown on the treasurer dashboard.
const trendMonths = 6

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	// Totals returns all-time sums of paid receita and despesa transactions.
	Totals(ctx context.Context) (revenue, expense int64, err error)

	// Monthly returns the paid receita/despesa sums for one calendar month.
	Monthly(ctx context.Context, month, year int) (MonthlySums, error)

	// OverdueFeeCount counts fees whose derived status at the given date is
	// atrasada.
	OverdueFeeCount(ctx context.Context, today time.Time) (int, error)
}

type MonthlySums struct {
	Revenue int64
	Expense int64
}

type TrendPoint struct {
	Label   string // "YYYY-MM"
	Revenue int64
	Expense int64
}

// Summary is the financial report payload shown to the club board.
type Summary struct {
	Balance        int64
	MonthlyRevenue int64
	MonthlyExpense int64
	OverdueFees    int
	Trend          []TrendPoint
	TotalRevenue   int64
	TotalExpense   int64
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Balance is the all-time difference between paid income and paid expenses.
func (s *Service) Balance(ctx context.Context) (int64, error) {
	revenue, expense, err := s.repo.Totals(ctx)
	if err != nil {
		return 0, err
	}

	return revenue - expense, nil
}

func (s *Service) Monthly(ctx context.Context, month, year int) (MonthlySums, error) {
	return s.repo.Monthly(ctx, month, year)
}

func (s *Service) OverdueFeeCount(ctx context.Context, today time.Time) (int, error) {
	return s.repo.OverdueFeeCount(ctx, today)
}

// Trend returns exactly n entries, one per calendar month ending at today's
// month, oldest first. Each month is an independent query; they run
// concurrently and nothing is cached between calls.
func (s *Service) Trend(ctx context.Context, n int, today time.Time) ([]TrendPoint, error) {
	if n <= 0 {
		return nil, fmt.Errorf("trend length must be positive, got %d", n)
	}

	points := make([]TrendPoint, n)

	g, gctx := errgroup.WithContext(ctx)

	for i := range n {
		offset := n - 1 - i
		ref := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -offset, 0)

		g.Go(func() error {
			sums, err := s.repo.Monthly(gctx, int(ref.Month()), ref.Year())
			if err != nil {
				return err
			}

			points[i] = TrendPoint{
				Label:   ref.Format("2006-01"),
				Revenue: sums.Revenue,
				Expense: sums.Expense,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("computing trend: %w", err)
	}

	return points, nil
}

// Summarize assembles the full financial report as of the given date.
func (s *Service) Summarize(ctx context.Context, today time.Time) (*Summary, error) {
	revenue, expense, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading totals: %w", err)
	}

	monthly, err := s.repo.Monthly(ctx, int(today.Month()), today.Year())
	if err != nil {
		return nil, fmt.Errorf("reading current month: %w", err)
	}

	overdue, err := s.repo.OverdueFeeCount(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("counting overdue fees: %w", err)
	}

	trend, err := s.Trend(ctx, trendMonths, today)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Balance:        revenue - expense,
		MonthlyRevenue: monthly.Revenue,
		MonthlyExpense: monthly.Expense,
		OverdueFees:    overdue,
		Trend:          trend,
		TotalRevenue:   revenue,
		TotalExpense:   expense,
	}, nil
}
