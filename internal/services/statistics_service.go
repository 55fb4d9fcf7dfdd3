package services

import (
	"github.com/dondigital/storefront/internal/models"
	"github.com/dondigital/storefront/internal/repository"
)

// StatisticsService wraps access to the global statistics singleton.
type StatisticsService struct {
	statsRepo repository.StatisticsRepository
}

// NewStatisticsService creates and returns a new StatisticsService.
func NewStatisticsService(statsRepo repository.StatisticsRepository) *StatisticsService {
	return &StatisticsService{statsRepo: statsRepo}
}

// Get returns the singleton row.
func (s *StatisticsService) Get() (*models.Statistics, error) {
	return s.statsRepo.Get()
}

// Update overwrites the balance and operating hours unconditionally.
func (s *StatisticsService) Update(currentRobux int, hoursStart, hoursEnd string) (*models.Statistics, error) {
	return s.statsRepo.Update(currentRobux, hoursStart, hoursEnd)
}
