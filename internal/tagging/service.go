// Package tagging learns name-to-tag rules from how users label their items
// and suggests tags for new or imported items that arrive without one.
package tagging

import (
	"context"
)

type Repository interface {
	FindTag(ctx context.Context, itemName string) (string, error)
	SaveRule(ctx context.Context, namePattern, tag string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find a tag for the given item name.
// Returns empty string if no rule matches.
func (s *Service) Suggest(ctx context.Context, itemName string) (string, error) {
	return s.repo.FindTag(ctx, itemName)
}

// Learn remembers that items matching the name pattern get the given tag.
func (s *Service) Learn(ctx context.Context, namePattern, tag string) error {
	return s.repo.SaveRule(ctx, namePattern, tag)
}
