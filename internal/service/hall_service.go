package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/model"
	"github.com/iliyamo/lecture-hall-booking/internal/repository"
)

// Availability is the advisory occupancy of one hall over a date range.
type Availability struct {
	HallCode    string                  `json:"hallCode"`
	DateStart   model.Date              `json:"dateStart"`
	DateEnd     model.Date              `json:"dateEnd"`
	BookedSlots []repository.BookedSlot `json:"bookedSlots"`
}

type HallService struct {
	halls  *repository.HallRepo
	events *repository.EventRepo
	logger *zap.Logger
}

func NewHallService(halls *repository.HallRepo, events *repository.EventRepo, logger *zap.Logger) *HallService {
	return &HallService{halls: halls, events: events, logger: logger}
}

// List returns the hall directory ordered by code.
func (s *HallService) List(ctx context.Context) ([]model.Hall, error) {
	halls, err := s.halls.List(ctx)
	if err != nil {
		s.logger.Error("store failure", zap.String("op", "list halls"), zap.Error(err))
		return nil, fmt.Errorf("%w: list halls: %w", ErrStoreFailure, err)
	}
	return halls, nil
}

// Availability reports the slots held by non-cancelled events of a hall
// whose date range overlaps [dateStart, dateEnd].  The overlap is checked
// on dates only; callers compare slot times themselves.
func (s *HallService) Availability(ctx context.Context, hallCode, dateStart, dateEnd string) (*Availability, error) {
	hallCode = strings.TrimSpace(hallCode)
	if hallCode == "" || strings.TrimSpace(dateStart) == "" || strings.TrimSpace(dateEnd) == "" {
		return nil, fmt.Errorf("%w: hallCode, dateStart and dateEnd are required", ErrValidation)
	}
	start, err := model.ParseDate(dateStart)
	if err != nil {
		return nil, fmt.Errorf("%w: dateStart must be YYYY-MM-DD", ErrValidation)
	}
	end, err := model.ParseDate(dateEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: dateEnd must be YYYY-MM-DD", ErrValidation)
	}
	if end.Before(start.Time) {
		return nil, fmt.Errorf("%w: dateEnd is before dateStart", ErrValidation)
	}

	if _, err := s.halls.GetByCode(ctx, hallCode); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return nil, fmt.Errorf("%w: hall %q", ErrNotFound, hallCode)
		}
		s.logger.Error("store failure", zap.String("op", "lookup hall"), zap.Error(err))
		return nil, fmt.Errorf("%w: lookup hall: %w", ErrStoreFailure, err)
	}

	slots, err := s.events.ListOccupiedSlots(ctx, hallCode, start, end)
	if err != nil {
		s.logger.Error("store failure", zap.String("op", "list occupied slots"), zap.Error(err))
		return nil, fmt.Errorf("%w: list occupied slots: %w", ErrStoreFailure, err)
	}
	return &Availability{HallCode: hallCode, DateStart: start, DateEnd: end, BookedSlots: slots}, nil
}
