package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/tripflow/itinerary-backend-go/internal/continuity"
	"github.com/tripflow/itinerary-backend-go/internal/models"
	"github.com/tripflow/itinerary-backend-go/internal/repository"
)

// ItineraryService handles business logic for itineraries: persistence
// plus continuity analysis and normalization.
type ItineraryService struct {
	itineraries  *repository.ItineraryRepository
	segments     *repository.SegmentRepository
	detector     *continuity.ContinuityDetector
	orchestrator *continuity.Orchestrator
}

// NewItineraryService creates a new itinerary service
func NewItineraryService(
	itineraries *repository.ItineraryRepository,
	segments *repository.SegmentRepository,
	detector *continuity.ContinuityDetector,
	orchestrator *continuity.Orchestrator,
) *ItineraryService {
	return &ItineraryService{
		itineraries:  itineraries,
		segments:     segments,
		detector:     detector,
		orchestrator: orchestrator,
	}
}

// Create stores an itinerary together with its initial segments
func (s *ItineraryService) Create(it *models.Itinerary, segments []models.Segment) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if err := s.itineraries.Create(it); err != nil {
		return fmt.Errorf("failed to create itinerary: %w", err)
	}

	for i := range segments {
		if segments[i].ID == "" {
			segments[i].ID = uuid.NewString()
		}
		segments[i].ItineraryID = it.ID
		if segments[i].Status == "" {
			segments[i].Status = models.StatusConfirmed
		}
		if err := s.segments.Create(&segments[i]); err != nil {
			return fmt.Errorf("failed to create segment %d: %w", i, err)
		}
	}
	return nil
}

// Get retrieves an itinerary with its ordered segments, or nil when absent
func (s *ItineraryService) Get(id string) (*models.ItineraryWithSegments, error) {
	it, err := s.itineraries.GetByID(id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, nil
	}

	segments, err := s.segments.ListByItinerary(id)
	if err != nil {
		return nil, err
	}

	return &models.ItineraryWithSegments{
		Itinerary: *it,
		Segments:  segments,
	}, nil
}

// List retrieves itineraries, newest first
func (s *ItineraryService) List(limit, offset int) ([]models.Itinerary, error) {
	return s.itineraries.List(limit, offset)
}

// DetectGaps runs gap detection only, without mutating anything
func (s *ItineraryService) DetectGaps(id string) ([]models.LocationGap, error) {
	segments, err := s.segments.ListByItinerary(id)
	if err != nil {
		return nil, err
	}
	return s.detector.DetectGaps(segments), nil
}

// Normalize runs the full continuity pipeline on the itinerary and
// persists the corrected sequence when it changed.
func (s *ItineraryService) Normalize(ctx context.Context, id string) (*models.NormalizationReport, error) {
	it, err := s.itineraries.GetByID(id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, nil
	}

	segments, err := s.segments.ListByItinerary(id)
	if err != nil {
		return nil, err
	}

	report := s.orchestrator.Normalize(ctx, segments)

	if report.Changed() {
		if err := s.segments.ReplaceForItinerary(id, report.Segments); err != nil {
			return nil, fmt.Errorf("failed to persist normalized segments: %w", err)
		}
		if err := s.itineraries.Touch(id); err != nil {
			return nil, err
		}
		log.Printf("[ItineraryService] Normalized itinerary %s: %d inserted, %d auto-fixed",
			id, len(report.InsertedSegments), report.AutoFixedCount)
	}

	return &report, nil
}
