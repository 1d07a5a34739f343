// Package categorize maps raw bank statement descriptions to financial
// categories, so recurring counterparties land in the right bucket on import.
package categorize

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize
type Repository interface {
	FindCategory(ctx context.Context, rawDescription string) (*uuid.UUID, error)
	CreateRule(ctx context.Context, pattern string, categoryID uuid.UUID) error
	ListRules(ctx context.Context) ([]Rule, error)
}

type Rule struct {
	Pattern    string
	CategoryID uuid.UUID
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category a raw description maps to, or nil when no
// rule matches.
func (s *Service) Suggest(ctx context.Context, rawDescription string) (*uuid.UUID, error) {
	return s.repo.FindCategory(ctx, rawDescription)
}

// Learn remembers that descriptions containing the pattern belong to the
// given category.
func (s *Service) Learn(ctx context.Context, pattern string, categoryID uuid.UUID) error {
	return s.repo.CreateRule(ctx, pattern, categoryID)
}

func (s *Service) Rules(ctx context.Context) ([]Rule, error) {
	return s.repo.ListRules(ctx)
}
