package service

import (
	"github.com/VirenMohindra/citibike-sub002/internal/models"
	"github.com/VirenMohindra/citibike-sub002/internal/repository"
)

// StatsService handles business logic for trip economics summaries.
type StatsService struct {
	repo *repository.StatsRepository
}

// NewStatsService creates a new stats service
func NewStatsService(repo *repository.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// SavingsSummary aggregates a user's normalized trips against transit.
func (s *StatsService) SavingsSummary(userID string) (models.SavingsSummary, error) {
	return s.repo.SavingsSummary(userID)
}
